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

	"github.com/spf13/cobra"

	"github.com/ajroetker/parbench/bench"
	"github.com/ajroetker/parbench/bench/contrib/fractal"
	"github.com/ajroetker/parbench/internal/cpuinfo"
	"github.com/ajroetker/parbench/internal/runner"
)

func newMandelCmd(root *rootOptions) *cobra.Command {
	cfg := bench.DefaultFractalConfig()
	schedule := cfg.Schedule.String()
	viewport := []float64{cfg.Viewport.MinRe, cfg.Viewport.MaxRe, cfg.Viewport.MinIm, cfg.Viewport.MaxIm}

	cmd := &cobra.Command{
		Use:   "mandel",
		Short: "Time the escape-time rasterizer with rows spread across a worker pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sched, err := fractal.ParseSchedule(schedule)
			if err != nil {
				return err
			}
			cfg.Schedule = sched
			if len(viewport) != 4 {
				return fmt.Errorf("--viewport needs 4 values (min-re,max-re,min-im,max-im), got %d", len(viewport))
			}
			cfg.Viewport = fractal.Viewport{MinRe: viewport[0], MaxRe: viewport[1], MinIm: viewport[2], MaxIm: viewport[3]}

			rep, err := root.reporter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			rep.Host(cpuinfo.Detect())

			g, _, err := runner.RunFractal(cfg, rep)
			if err != nil {
				return err
			}
			if err := runner.ExportGrid(cmd.Context(), g, cfg.Output, cfg.BMPOutput); err != nil {
				return err
			}
			bench.Logger().Info("grid written", "pgm", cfg.Output, "bmp", cfg.BMPOutput)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&cfg.Width, "width", cfg.Width, "viewport width in cells")
	f.IntVar(&cfg.Height, "height", cfg.Height, "viewport height in cells")
	f.IntVar(&cfg.MaxIter, "max-iter", cfg.MaxIter, "escape-time iteration cap")
	f.IntVar(&cfg.Trials, "trials", cfg.Trials, "number of timed trials")
	f.IntVarP(&cfg.Threads, "threads", "t", cfg.Threads, "worker pool size")
	f.StringVar(&schedule, "schedule", schedule, `row schedule: "dynamic" or "static"`)
	f.Float64SliceVar(&viewport, "viewport", viewport, "complex-plane window as min-re,max-re,min-im,max-im")
	f.StringVarP(&cfg.Output, "out", "o", cfg.Output, "PGM output path (empty to skip)")
	f.StringVar(&cfg.BMPOutput, "bmp", cfg.BMPOutput, "optional grayscale BMP output path")
	return cmd
}
