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

// Package runner drives the timed benchmark runs: it owns the worker pools,
// calls the kernels and feeds a bench.Reporter.
package runner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/parbench/bench"
	"github.com/ajroetker/parbench/bench/contrib/fractal"
	"github.com/ajroetker/parbench/bench/contrib/matmul"
	"github.com/ajroetker/parbench/bench/contrib/raster"
	"github.com/ajroetker/parbench/bench/contrib/workerpool"
)

// ErrMismatch is returned when two strategies disagree on a product.
var ErrMismatch = errors.New("runner: strategies disagree")

// mismatchTolerance is the relative error allowed between strategies.
const mismatchTolerance = 1e-9

// RunFractal times cfg.Trials evaluations of the escape-time grid on a pool
// of cfg.Threads workers and returns the grid of the last trial.
func RunFractal(cfg bench.FractalConfig, rep bench.Reporter) (*fractal.Grid, bench.TrialStats, error) {
	var stats bench.TrialStats
	if err := cfg.Validate(); err != nil {
		return nil, stats, err
	}
	log := bench.Logger()

	g, err := fractal.NewGrid(cfg.Height, cfg.Width)
	if err != nil {
		return nil, stats, err
	}
	f := fractal.EscapeTimeFunc(cfg.Viewport, cfg.Height, cfg.Width, cfg.MaxIter)

	pool := workerpool.New(cfg.Threads)
	defer pool.Close()
	log.Info("fractal run", "width", cfg.Width, "height", cfg.Height, "max_iter", cfg.MaxIter,
		"trials", cfg.Trials, "threads", pool.NumWorkers(), "schedule", cfg.Schedule.String())

	rep.FractalStart(cfg)
	for trial := 1; trial <= cfg.Trials; trial++ {
		d := bench.Measure(func() {
			fractal.Evaluate(pool, g, f, fractal.WithSchedule(cfg.Schedule))
		})
		stats.Add(d)
		rep.FractalTrial(trial, cfg, d)
		log.Debug("fractal trial", "trial", trial, "elapsed", d)
	}
	rep.FractalDone(stats)
	log.Info("fractal done", "mean_ms", stats.MeanMillis(), "min", stats.Min(), "max", stats.Max())

	return g, stats, rep.Err()
}

// MatMulResult is the wall time of one strategy at one (size, threads) point.
type MatMulResult struct {
	Size     int
	Threads  int
	Strategy matmul.Strategy
	Elapsed  time.Duration
}

// RunMatMul runs every configured strategy once per (size, thread count)
// pair. Operands are filled from a PCG generator seeded by cfg.Seed; a fresh
// pool is created for each thread count. Every strategy's product is checked
// against the first one measured at the same point.
func RunMatMul(cfg bench.MatMulConfig, rep bench.Reporter) ([]MatMulResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := bench.Logger()
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	var results []MatMulResult
	for _, n := range cfg.Sizes {
		a, err := matmul.Random(n, rng)
		if err != nil {
			return results, err
		}
		b, err := matmul.Random(n, rng)
		if err != nil {
			return results, err
		}
		c, _ := matmul.NewMatrix(n)
		ref, _ := matmul.NewMatrix(n)

		rep.MatMulSize(n)
		for _, threads := range cfg.Threads {
			rep.MatMulThreads(n, threads)
			res, err := runMatMulPoint(cfg.Strategies, n, threads, a, b, c, ref, rep)
			results = append(results, res...)
			if err != nil {
				return results, err
			}
			rep.MatMulThreadsDone(n, threads)
			log.Debug("matmul point done", "n", n, "threads", threads)
		}
	}
	return results, rep.Err()
}

func runMatMulPoint(strategies []matmul.Strategy, n, threads int, a, b, c, ref *matmul.Matrix, rep bench.Reporter) ([]MatMulResult, error) {
	pool := workerpool.New(threads)
	defer pool.Close()

	results := make([]MatMulResult, 0, len(strategies))
	for i, s := range strategies {
		var err error
		d := bench.Measure(func() {
			err = matmul.Multiply(pool, s, a, b, c)
		})
		if err != nil {
			return results, err
		}
		results = append(results, MatMulResult{Size: n, Threads: threads, Strategy: s, Elapsed: d})
		rep.MatMulResult(n, threads, s, d)
		bench.Logger().Debug("matmul", "n", n, "threads", threads, "strategy", s.String(), "elapsed", d)

		if i == 0 {
			copy(ref.Data(), c.Data())
			continue
		}
		if idx, ok := firstMismatch(ref.Data(), c.Data()); !ok {
			return results, fmt.Errorf("%w: %s vs %s at n=%d, element %d: %g != %g",
				ErrMismatch, strategies[0], s, n, idx, ref.Data()[idx], c.Data()[idx])
		}
	}
	return results, nil
}

// firstMismatch returns the first index where want and got differ by more
// than mismatchTolerance relative to want.
func firstMismatch(want, got []float64) (int, bool) {
	for i, w := range want {
		diff := math.Abs(w - got[i])
		if diff > mismatchTolerance*max(math.Abs(w), 1) {
			return i, false
		}
	}
	return 0, true
}

// ExportGrid writes g as PGM and BMP concurrently. An empty path skips that
// format.
func ExportGrid(ctx context.Context, g *fractal.Grid, pgmPath, bmpPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var eg errgroup.Group
	if pgmPath != "" {
		eg.Go(func() error {
			if err := raster.SavePGM(pgmPath, g); err != nil {
				return fmt.Errorf("write %s: %w", pgmPath, err)
			}
			return nil
		})
	}
	if bmpPath != "" {
		eg.Go(func() error {
			if err := raster.SaveBMP(bmpPath, g); err != nil {
				return fmt.Errorf("write %s: %w", bmpPath, err)
			}
			return nil
		})
	}
	return eg.Wait()
}
