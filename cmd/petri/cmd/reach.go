/*
Copyright © 2024 Jonathan Taylor <jonrtaylor12@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package cmd

import (
	"errors"
	"fmt"
	"github.com/jt05610/modelrepair/analysis"
	"github.com/spf13/cobra"
	"io"
)

var (
	deadlocksOnly bool
	showEdges     bool
)

func explorer() *analysis.Explorer {
	return analysis.NewExplorer(
		analysis.WithLogger(logger),
		analysis.WithMaxStates(config.MaxStates),
		analysis.WithTimeout(config.ExploreTimeout),
		analysis.WithMetrics(metrics),
	)
}

func printGraph(w io.Writer, g *analysis.Graph) {
	keys := g.Keys()
	if deadlocksOnly {
		keys = g.Deadlocks()
	}
	for _, k := range keys {
		m, _ := g.Marking(k)
		_, _ = fmt.Fprintln(w, m)
		if !showEdges {
			continue
		}
		for _, e := range g.Edges(k) {
			_, _ = fmt.Fprintf(w, "  --%s--> %s\n", e.Transition, e.Target)
		}
	}
	_, _ = fmt.Fprintf(w, "%d reachable markings, %d deadlocks\n", g.Len(), len(g.Deadlocks()))
}

// reachCmd represents the reach command
var reachCmd = &cobra.Command{
	Use:   "reach",
	Short: "Compute the reachability set of a net",
	Long: `Compute the markings reachable from the initial marking in breadth first
order. PETRI_MAX_STATES and PETRI_EXPLORE_TIMEOUT bound the search; when a
bound is hit the markings found so far are printed and the command fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, m, err := load(cmd.Context())
		if err != nil {
			return err
		}
		g, err := explorer().Explore(cmd.Context(), n, m)
		if g != nil {
			printGraph(cmd.OutOrStdout(), g)
		}
		if errors.Is(err, analysis.ErrExplorationAborted) {
			return fmt.Errorf("partial result: %w", err)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(reachCmd)
	reachCmd.Flags().BoolVar(&deadlocksOnly, "deadlocks", false, "only print markings without enabled transitions")
	reachCmd.Flags().BoolVarP(&showEdges, "edges", "e", false, "print the firings leaving each marking")
}
