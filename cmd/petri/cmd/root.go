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
	"github.com/jt05610/modelrepair/env"
	"github.com/jt05610/modelrepair/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"os"
)

var (
	inputFile string
	envFile   string
	verbose   bool
	config    *env.Environment
	logger    = zap.NewNop()
	metrics   *observability.Collector
	shutdown  func(context.Context) error
	command   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "petri",
	Short: "Explore, export and model check place/transition nets",
	Long: `petri loads place/transition nets from petri files (json, yaml) or LoLA
net files and computes their reachability graphs, renders them for
graphviz, fires transitions and hands CTL properties to the LoLA model
checker.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		command, metrics, shutdown = cmd.Name(), nil, nil
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}
		var err error
		config, err = env.Load(nil, files...)
		if err != nil {
			return err
		}
		if verbose {
			config.LogLevel = zap.DebugLevel
		}
		logger, err = config.Logger(verbose)
		if err != nil {
			return err
		}
		metrics, err = observability.NewCollector(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		shutdown, err = observability.InitTracing(cmd.Context(), observability.TracingConfig{
			ServiceName: "petri",
			Exporter:    config.Tracing,
			Endpoint:    config.OTLPEndpoint,
			Writer:      cmd.ErrOrStderr(),
		}, logger)
		return err
	},
}

// finish runs after every command, including failed ones, so aborted runs
// still report their metrics and spans.
func finish() {
	if config != nil && config.Pushgateway != "" {
		if err := metrics.Push(config.Pushgateway, "petri_"+command); err != nil {
			logger.Warn("metrics not pushed", zap.Error(err))
		}
	}
	observability.ShutdownWithTimeout(context.Background(), shutdown, logger)
	shutdown = nil
	_ = logger.Sync()
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnFinalize(finish)
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "input net file (.json, .yaml, .lola) or couch://<name>")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file (default .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development logging at debug level")
}
