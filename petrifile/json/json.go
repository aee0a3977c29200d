// Package json stores nets as JSON documents. Comments and trailing commas
// are accepted on load.
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/jt05610/modelrepair"
	pf "github.com/jt05610/modelrepair/petrifile"
	"github.com/tidwall/jsonc"
	"io"
)

var _ pf.Service = (*Service)(nil)

func init() {
	pf.Register(".json", &Service{})
	pf.Register(".jsonc", &Service{})
}

type Service struct {
	Indent string
}

func (s *Service) Load(_ context.Context, r io.Reader) (*petri.Net, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
	}
	var d pf.Document
	if err := json.Unmarshal(jsonc.ToJSON(raw), &d); err != nil {
		return nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
	}
	return d.Net()
}

func (s *Service) Save(_ context.Context, w io.Writer, n *petri.Net) error {
	enc := json.NewEncoder(w)
	if s.Indent != "" {
		enc.SetIndent("", s.Indent)
	}
	if err := enc.Encode(pf.FromNet(n)); err != nil {
		return fmt.Errorf("%w: %w", petri.ErrIO, err)
	}
	return nil
}

func (s *Service) Version() pf.Version {
	return pf.V1
}
