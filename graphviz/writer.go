package graphviz

import (
	"fmt"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/jt05610/modelrepair"
	"github.com/jt05610/modelrepair/analysis"
	"io"
	"strconv"
)

var _ petri.Flusher[*petri.Net] = (*Writer)(nil)

type Writer struct {
	*Config
	g *cgraph.Graph
}

func (w *Writer) node(name, label string, shape cgraph.Shape) (*cgraph.Node, error) {
	node, err := w.g.CreateNode(name)
	if err != nil {
		return nil, err
	}
	node.SetShape(shape)
	node.SetLabel(label)
	node.Set("fontname", string(w.Font))
	return node, nil
}

func (w *Writer) arc(name string, src, dst *cgraph.Node, weight int) error {
	e, err := w.g.CreateEdge(name, src, dst)
	if err != nil {
		return err
	}
	if weight > 1 {
		e.SetLabel(strconv.Itoa(weight))
	}
	return nil
}

func (w *Writer) render(out io.Writer, build func() error) error {
	gv := graphviz.New()
	defer func() {
		_ = gv.Close()
	}()
	g, err := gv.Graph(graphviz.Name(w.Name))
	if err != nil {
		return err
	}
	defer func() {
		_ = g.Close()
	}()
	g.SetRankDir(cgraph.RankDir(w.RankDir))
	w.g = g
	if err := build(); err != nil {
		return err
	}
	return gv.Render(g, w.Format, out)
}

// Flush draws places as circles and transitions as boxes. Arcs carry their
// weight as label when it is greater than 1.
func (w *Writer) Flush(out io.Writer, net *petri.Net) error {
	return w.render(out, func() error {
		places := make(map[string]*cgraph.Node)
		for i, p := range net.Places() {
			node, err := w.node(fmt.Sprintf("p%d", i), p, cgraph.CircleShape)
			if err != nil {
				return err
			}
			places[p] = node
		}
		arcs := 0
		for i, t := range net.Transitions() {
			node, err := w.node(fmt.Sprintf("t%d", i), t, cgraph.BoxShape)
			if err != nil {
				return err
			}
			for _, p := range net.Places() {
				if in := net.Input(p, t); in > 0 {
					if err := w.arc(fmt.Sprintf("a%d", arcs), places[p], node, in); err != nil {
						return err
					}
					arcs++
				}
				if out := net.Output(p, t); out > 0 {
					if err := w.arc(fmt.Sprintf("a%d", arcs), node, places[p], out); err != nil {
						return err
					}
					arcs++
				}
			}
		}
		return nil
	})
}

func (w *Writer) FlushNet(out io.Writer, net *petri.Net) error {
	return w.Flush(out, net)
}

// FlushGraph draws one node per reachable marking, labelled with the marking,
// and one edge per firing, labelled with the transition. The initial marking
// is drawn with a double border. Markings reached but never expanded, as in
// an aborted exploration, are drawn dashed.
func (w *Writer) FlushGraph(out io.Writer, rg *analysis.Graph) error {
	return w.render(out, func() error {
		nodes := make(map[petri.Key]*cgraph.Node)
		initial := rg.Key(rg.Initial())
		for i, k := range rg.Keys() {
			m, _ := rg.Marking(k)
			node, err := w.node(fmt.Sprintf("m%d", i), m.String(), cgraph.EllipseShape)
			if err != nil {
				return err
			}
			if k == initial {
				node.Set("peripheries", "2")
			}
			nodes[k] = node
		}
		i := 0
		for _, k := range rg.Keys() {
			for _, e := range rg.Edges(k) {
				target := rg.Key(e.Target)
				dst, found := nodes[target]
				if !found {
					var err error
					dst, err = w.node(fmt.Sprintf("m%d", len(nodes)), e.Target.String(), cgraph.EllipseShape)
					if err != nil {
						return err
					}
					dst.Set("style", "dashed")
					nodes[target] = dst
				}
				edge, err := w.g.CreateEdge(fmt.Sprintf("e%d", i), nodes[k], dst)
				if err != nil {
					return err
				}
				edge.SetLabel(e.Transition)
				i++
			}
		}
		return nil
	})
}

type Font string

func (f Font) Or(other Font) Font {
	return f + "," + other
}

const (
	Helvetica  Font = "Helvetica"
	Arial      Font = "Arial"
	Roboto     Font = "Roboto"
	Montserrat Font = "Montserrat"
	SansSerif  Font = "sans-serif"
	Serif      Font = "Serif"
	Times      Font = "Times"
)

type RankDir string

const (
	LeftToRight RankDir = "LR"
	RightToLeft RankDir = "RL"
	TopToBottom RankDir = "TB"
	BottomToTop RankDir = "BT"
)

// Format is an output format of the graphviz renderer.
type Format = graphviz.Format

const (
	DOT Format = graphviz.XDOT
	SVG Format = graphviz.SVG
	PNG Format = graphviz.PNG
	JPG Format = graphviz.JPG
)

type Config struct {
	Name string
	Font
	RankDir
	// Format defaults to DOT.
	Format Format
}

func New(config *Config) *Writer {
	if config == nil {
		config = &Config{}
	}
	if config.Name == "" {
		config.Name = "petri"
	}
	if config.Font == "" {
		config.Font = Helvetica
	}
	if config.RankDir == "" {
		config.RankDir = LeftToRight
	}
	if config.Format == "" {
		config.Format = DOT
	}
	return &Writer{
		Config: config,
	}
}
