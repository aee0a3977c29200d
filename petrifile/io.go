package petrifile

import (
	"context"
	"fmt"
	"github.com/jt05610/modelrepair"
	"io"
	"path/filepath"
	"strings"
	"sync"
)

type Service interface {
	Load(ctx context.Context, r io.Reader) (*petri.Net, error)
	Save(ctx context.Context, w io.Writer, n *petri.Net) error
	Version() Version
}

type Version string

const (
	V1 Version = "v1"
)

var (
	mu       sync.RWMutex
	services = make(map[string]Service)
)

// Register makes a service available to ForPath for files ending in ext.
func Register(ext string, s Service) {
	mu.Lock()
	defer mu.Unlock()
	services[strings.ToLower(ext)] = s
}

// ForPath returns the service registered for the extension of path.
func ForPath(path string) (Service, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mu.RLock()
	defer mu.RUnlock()
	s, ok := services[ext]
	if !ok {
		return nil, fmt.Errorf("%w: no petrifile service for %q", petri.ErrIO, ext)
	}
	return s, nil
}
