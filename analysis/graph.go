package analysis

import "github.com/jt05610/modelrepair"

// Edge is a single firing from one marking to the next.
type Edge struct {
	Transition string
	Target     petri.Marking
}

// Graph is a reachability graph: every visited marking mapped to its ordered
// list of direct successors.
type Graph struct {
	net      *petri.Net
	initial  petri.Marking
	order    []petri.Key
	markings map[petri.Key]petri.Marking
	edges    map[petri.Key][]Edge
}

func newGraph(net *petri.Net, initial petri.Marking) *Graph {
	return &Graph{
		net:      net,
		initial:  initial,
		order:    make([]petri.Key, 0),
		markings: make(map[petri.Key]petri.Marking),
		edges:    make(map[petri.Key][]Edge),
	}
}

func (g *Graph) add(k petri.Key, m petri.Marking, edges []Edge) {
	g.order = append(g.order, k)
	g.markings[k] = m
	g.edges[k] = edges
}

func (g *Graph) Net() *petri.Net { return g.net }

// Initial returns the completed initial marking.
func (g *Graph) Initial() petri.Marking { return g.initial.Clone() }

// Len is the number of visited markings.
func (g *Graph) Len() int { return len(g.order) }

// Keys returns the visited markings in discovery order.
func (g *Graph) Keys() []petri.Key {
	return append([]petri.Key(nil), g.order...)
}

func (g *Graph) Key(m petri.Marking) petri.Key {
	return g.net.Key(m)
}

func (g *Graph) Marking(k petri.Key) (petri.Marking, bool) {
	m, ok := g.markings[k]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// Contains reports whether m was visited.
func (g *Graph) Contains(m petri.Marking) bool {
	_, ok := g.markings[g.net.Key(m)]
	return ok
}

// Successors returns the direct successors of k in transition registration
// order.
func (g *Graph) Successors(k petri.Key) []petri.Marking {
	edges := g.edges[k]
	succ := make([]petri.Marking, len(edges))
	for i, e := range edges {
		succ[i] = e.Target.Clone()
	}
	return succ
}

func (g *Graph) Edges(k petri.Key) []Edge {
	return append([]Edge(nil), g.edges[k]...)
}

// Deadlocks lists the visited markings that enable no transition.
func (g *Graph) Deadlocks() []petri.Key {
	dead := make([]petri.Key, 0)
	for _, k := range g.order {
		if len(g.edges[k]) == 0 {
			dead = append(dead, k)
		}
	}
	return dead
}
