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
	"fmt"
	"github.com/jt05610/modelrepair/graphviz"
	"github.com/spf13/cobra"
	"os"
	"path/filepath"
)

var (
	format    string
	outputDir string
	reachable bool
)

// vizCmd represents the viz command
var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Create a graphviz figure from a petri net",
	Long: `Create a graphviz figure from a petri net, or with --graph from its
reachability graph.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, m, err := load(cmd.Context())
		if err != nil {
			return err
		}
		outName := n.Name + "." + format
		if reachable {
			outName = n.Name + ".reach." + format
		}
		cfg := &graphviz.Config{
			Name:    n.Name,
			Font:    graphviz.Helvetica,
			RankDir: graphviz.LeftToRight,
			Format:  graphviz.Format(format),
		}
		outPath := filepath.Join(outputDir, outName)
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "writing figure for %s to %s...", inputFile, outPath)
		if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
			return err
		}
		df, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer func() {
			_ = df.Close()
		}()
		w := graphviz.New(cfg)
		if reachable {
			g, err := explorer().Explore(cmd.Context(), n, m)
			if err != nil {
				return err
			}
			err = w.FlushGraph(df, g)
		} else {
			err = w.FlushNet(df, n)
		}
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, "done")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vizCmd)
	vizCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "output directory")
	vizCmd.Flags().StringVar(&format, "format", "svg", "output format (dot, svg, png, jpg)")
	vizCmd.Flags().BoolVarP(&reachable, "graph", "g", false, "draw the reachability graph instead of the net")
}
