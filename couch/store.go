package couch

import (
	"context"
	"fmt"
	_ "github.com/go-kivik/couchdb/v3"
	"github.com/go-kivik/kivik/v3"
	"github.com/jt05610/modelrepair"
	pf "github.com/jt05610/modelrepair/petrifile"
	"go.uber.org/zap"
)

// Store keeps petrifile documents in a CouchDB database, one document per
// net name.
type Store struct {
	cancel func()
	client *kivik.Client
	db     *kivik.DB
	revMap map[string]string
	logger *zap.Logger
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type record struct {
	ID  string `json:"_id"`
	Rev string `json:"_rev,omitempty"`
	pf.Document
}

// Open connects to uri and creates the database if it does not exist.
func Open(ctx context.Context, uri string, name string, opts ...Option) (*Store, error) {
	client, err := kivik.New("couch", uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
	}
	ctx, cancel := context.WithCancel(ctx)
	dbs, err := client.AllDBs(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
	}
	found := false
	for _, db := range dbs {
		if db == name {
			found = true
			break
		}
	}
	s := &Store{
		cancel: cancel,
		client: client,
		revMap: make(map[string]string),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !found {
		err = client.CreateDB(ctx, name)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
		}
		s.logger.Info("created database", zap.String("db", name))
	}
	s.db = client.DB(ctx, name)
	if err := s.db.Err(); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
	}
	return s, nil
}

func (s *Store) Close() error {
	s.cancel()
	return s.client.Close(context.Background())
}

// Save writes n under name, replacing any revision this store has seen.
func (s *Store) Save(ctx context.Context, name string, n *petri.Net) error {
	if _, ok := s.revMap[name]; !ok {
		if _, rev, err := s.db.GetMeta(ctx, name); err == nil {
			s.revMap[name] = rev
		}
	}
	doc := record{ID: name, Rev: s.revMap[name], Document: *pf.FromNet(n)}
	rev, err := s.db.Put(ctx, name, doc)
	if err != nil {
		return fmt.Errorf("%w: saving %s: %w", petri.ErrIO, name, err)
	}
	s.revMap[name] = rev
	s.logger.Debug("saved net", zap.String("name", name), zap.String("rev", rev))
	return nil
}

func (s *Store) Load(ctx context.Context, name string, opts ...petri.Option) (*petri.Net, error) {
	var doc record
	row := s.db.Get(ctx, name)
	err := row.ScanDoc(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: loading %s: %w", petri.ErrIO, name, err)
	}
	s.revMap[name] = row.Rev
	s.logger.Debug("loaded net", zap.String("name", name), zap.String("rev", row.Rev))
	return doc.Net(opts...)
}

// Remove deletes the document stored under name.
func (s *Store) Remove(ctx context.Context, name string) error {
	rev, ok := s.revMap[name]
	if !ok {
		var err error
		_, rev, err = s.db.GetMeta(ctx, name)
		if err != nil {
			return fmt.Errorf("%w: %w", petri.ErrIO, err)
		}
	}
	if _, err := s.db.Delete(ctx, name, rev); err != nil {
		return fmt.Errorf("%w: removing %s: %w", petri.ErrIO, name, err)
	}
	delete(s.revMap, name)
	return nil
}
