package analysis

import (
	"errors"
	"fmt"
	"github.com/expr-lang/expr"
	"github.com/jt05610/modelrepair"
)

var ErrQuery = errors.New("invalid query")

// Query returns, in discovery order, the markings of g for which the boolean
// expression holds. Place names are bound to their token counts.
func Query(g *Graph, expression string) ([]petri.Key, error) {
	env := make(map[string]interface{})
	for _, p := range g.net.Places() {
		env[p] = 0
	}
	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	matches := make([]petri.Key, 0)
	for _, k := range g.order {
		for p, v := range g.markings[k] {
			env[p] = v
		}
		ret, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQuery, err)
		}
		if ret.(bool) {
			matches = append(matches, k)
		}
	}
	return matches, nil
}
