package yaml

import (
	"context"
	"fmt"
	"github.com/jt05610/modelrepair"
	pf "github.com/jt05610/modelrepair/petrifile"
	"gopkg.in/yaml.v3"
	"io"
)

var _ pf.Service = (*Service)(nil)

func init() {
	s := &Service{}
	pf.Register(".yaml", s)
	pf.Register(".yml", s)
	pf.Register(".petri", s)
}

type Service struct {
}

func (s *Service) Load(_ context.Context, r io.Reader) (*petri.Net, error) {
	var d pf.Document
	err := yaml.NewDecoder(r).Decode(&d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
	}
	return d.Net()
}

func (s *Service) Save(_ context.Context, w io.Writer, n *petri.Net) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(pf.FromNet(n)); err != nil {
		return fmt.Errorf("%w: %w", petri.ErrIO, err)
	}
	return enc.Close()
}

func (s *Service) Version() pf.Version {
	return pf.V1
}
