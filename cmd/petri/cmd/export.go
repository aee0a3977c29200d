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
	"context"
	"fmt"
	"github.com/jt05610/modelrepair"
	"github.com/jt05610/modelrepair/lola"
	pf "github.com/jt05610/modelrepair/petrifile"
	"github.com/spf13/cobra"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var outputFile string

func save(ctx context.Context, out io.Writer, path string, n *petri.Net, m petri.Marking) error {
	if strings.EqualFold(filepath.Ext(path), ".lola") {
		return lola.New(logger).Flush(out, lola.Model{Net: n, Marking: m})
	}
	s, err := pf.ForPath(path)
	if err != nil {
		return err
	}
	return s.Save(ctx, out, n)
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert a net between petri file formats",
	Long: `Convert a net to the format given by the extension of --output: .json,
.yaml, .yml or .petri for petri files and .lola for the LoLA net format,
which also records the initial marking. couch://<name> stores the net in
CouchDB.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		n, m, err := load(ctx)
		if err != nil {
			return err
		}
		if name, ok := strings.CutPrefix(outputFile, couchScheme); ok {
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()
			return store.Save(ctx, name, n)
		}
		if outputFile == "" || outputFile == "-" {
			return save(ctx, cmd.OutOrStdout(), ".lola", n, m)
		}
		df, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("%w: %w", petri.ErrIO, err)
		}
		defer func() {
			_ = df.Close()
		}()
		if err := save(ctx, df, outputFile, n, m); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outputFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file, - or empty for LoLA on stdout")
}
