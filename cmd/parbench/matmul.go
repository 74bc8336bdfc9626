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
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/parbench/bench"
	"github.com/ajroetker/parbench/bench/contrib/matmul"
	"github.com/ajroetker/parbench/internal/cpuinfo"
	"github.com/ajroetker/parbench/internal/runner"
)

func newMatMulCmd(root *rootOptions) *cobra.Command {
	cfg := bench.DefaultMatMulConfig()
	strategies := lo.Map(cfg.Strategies, func(s matmul.Strategy, _ int) string { return s.String() })

	cmd := &cobra.Command{
		Use:   "matmul",
		Short: "Time naive and transposed matrix multiply, serial and parallel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := parseStrategies(lo.Uniq(strategies))
			if err != nil {
				return err
			}
			cfg.Strategies = parsed

			rep, err := root.reporter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			rep.Host(cpuinfo.Detect())

			_, err = runner.RunMatMul(cfg, rep)
			return err
		},
	}

	f := cmd.Flags()
	f.IntSliceVar(&cfg.Sizes, "sizes", cfg.Sizes, "matrix sizes n (n x n)")
	f.IntSliceVarP(&cfg.Threads, "threads", "t", cfg.Threads, "worker pool sizes")
	f.StringSliceVar(&strategies, "strategies", strategies, "strategies to run, in order")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for operand values")
	return cmd
}

func parseStrategies(names []string) ([]matmul.Strategy, error) {
	out := make([]matmul.Strategy, 0, len(names))
	for _, name := range names {
		s, err := matmul.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
