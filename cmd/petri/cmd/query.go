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
	"github.com/jt05610/modelrepair/analysis"
	"github.com/spf13/cobra"
)

var expression string

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "List reachable markings satisfying an expression",
	Long: `List the reachable markings for which a boolean expression over place
names holds, for example

  petri query -i mutex.yaml -e "busy > 1 || (idle == 0 && lock > 0)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, m, err := load(cmd.Context())
		if err != nil {
			return err
		}
		g, err := explorer().Explore(cmd.Context(), n, m)
		if err != nil {
			return err
		}
		keys, err := analysis.Query(g, expression)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, k := range keys {
			marking, _ := g.Marking(k)
			_, _ = fmt.Fprintln(out, marking)
		}
		_, _ = fmt.Fprintf(out, "%d of %d reachable markings match\n", len(keys), g.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&expression, "expr", "e", "", "boolean expression over place token counts")
	_ = queryCmd.MarkFlagRequired("expr")
}
