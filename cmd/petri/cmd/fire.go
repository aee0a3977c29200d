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
	"github.com/jt05610/modelrepair/marked"
	"github.com/spf13/cobra"
	"strings"
)

// fireCmd represents the fire command
var fireCmd = &cobra.Command{
	Use:   "fire [transition...]",
	Short: "Fire a sequence of transitions from the initial marking",
	Long: `Fire the given transitions in order, printing the marking after each
step. Without arguments the transitions enabled at the initial marking are
listed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, m, err := load(cmd.Context())
		if err != nil {
			return err
		}
		mn, err := marked.New(n, m)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, mn.Marking())
		for _, t := range args {
			if err := mn.Fire(t); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "--%s--> %s\n", t, mn.Marking())
		}
		_, _ = fmt.Fprintf(out, "enabled: [%s]\n", strings.Join(mn.Available(), ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fireCmd)
}
