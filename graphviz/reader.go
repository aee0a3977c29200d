package graphviz

import (
	"fmt"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/jt05610/modelrepair"
	"io"
	"strconv"
)

type Reader struct {
	opts []petri.Option
}

// Load rebuilds a net from a DOT graph written by Writer.Flush: circles are
// places, boxes are transitions and an unlabelled arc has weight 1.
func (r *Reader) Load(reader io.Reader) (*petri.Net, error) {
	bytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
	}
	g, err := cgraph.ParseBytes(bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
	}
	defer func() {
		_ = g.Close()
	}()
	net := petri.New(r.opts...)
	isPlace := make(map[string]bool)
	labels := make(map[string]string)
	for node := g.FirstNode(); node != nil; node = g.NextNode(node) {
		label := node.Get("label")
		switch node.Get("shape") {
		case "circle":
			err = net.AddPlace(label)
			isPlace[node.Name()] = true
		case "box":
			err = net.AddTransition(label)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
		}
		labels[node.Name()] = label
	}
	for node := g.FirstNode(); node != nil; node = g.NextNode(node) {
		for edge := g.FirstOut(node); edge != nil; edge = g.NextOut(edge) {
			head := edge.Node()
			w := 1
			if l := edge.Get("label"); l != "" {
				if w, err = strconv.Atoi(l); err != nil {
					return nil, fmt.Errorf("%w: arc weight %q: %w", petri.ErrIO, l, err)
				}
			}
			src, dst := labels[node.Name()], labels[head.Name()]
			if isPlace[node.Name()] {
				err = net.SetInputFlow(src, dst, w)
			} else {
				err = net.SetOutputFlow(dst, src, w)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %w", petri.ErrIO, err)
			}
		}
	}
	return net, nil
}

func Loader(opts ...petri.Option) *Reader {
	return &Reader{opts: opts}
}
