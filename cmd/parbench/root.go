// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/parbench/bench"
)

type rootOptions struct {
	verbose bool
	format  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "parbench",
		Short:         "Parallel loop partitioning and matrix multiply micro-benchmarks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.verbose {
				bench.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
			return nil
		},
	}

	opts.addFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newMandelCmd(opts),
		newMatMulCmd(opts),
		newCPUInfoCmd(),
	)
	return cmd
}

func (o *rootOptions) addFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log pool and per-trial details to stderr")
	fs.StringVar(&o.format, "format", "text", `report format: "text" or "bench" (go test -bench lines for benchstat)`)
}

func (o *rootOptions) reporter(w io.Writer) (bench.Reporter, error) {
	switch o.format {
	case "text":
		return bench.NewTextReporter(w), nil
	case "bench":
		return bench.NewGoBenchReporter(w), nil
	}
	return nil, fmt.Errorf("unknown --format %q", o.format)
}
