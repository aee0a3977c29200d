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
	"github.com/jt05610/modelrepair/ctl"
	"github.com/jt05610/modelrepair/lola"
	"github.com/jt05610/modelrepair/runner"
	"github.com/spf13/cobra"
)

var (
	formula string
	dryRun  bool
	keep    bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Model check a CTL formula with LoLA",
	Long: `Render the net, its initial marking and a CTL formula for LoLA and run
the checker found at PETRI_LOLA_PATH. The formula uses the checker syntax:

  petri check -i door.lola -f "NOT(E(TRUE U (closed == 0 AND opened == 0)))"

The exit code and output of the checker are printed as they are.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		phi, err := ctl.Parse(formula)
		if err != nil {
			return err
		}
		n, m, err := load(cmd.Context())
		if err != nil {
			return err
		}
		a, err := lola.New(logger).RenderArtifact(lola.Model{Net: n, Marking: m}, phi)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if dryRun {
			_, _ = fmt.Fprint(out, a)
			return nil
		}
		r := runner.New(runner.Config{
			Checker: config.LolaPath,
			Keep:    keep,
			Logger:  logger,
			Metrics: metrics,
		})
		res, err := r.Check(cmd.Context(), a)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, res.Stdout)
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
		_, _ = fmt.Fprintf(out, "rc: %d\n", res.Code)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&formula, "formula", "f", "", "CTL formula")
	checkCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the checker input instead of running it")
	checkCmd.Flags().BoolVar(&keep, "keep", false, "keep the net file handed to the checker")
	_ = checkCmd.MarkFlagRequired("formula")
}
