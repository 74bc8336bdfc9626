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

package bench

import (
	"errors"
	"fmt"

	"github.com/ajroetker/parbench/bench/contrib/fractal"
	"github.com/ajroetker/parbench/bench/contrib/matmul"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("bench: invalid config")

// FractalConfig parameterizes one escape-time benchmark run.
type FractalConfig struct {
	Width, Height int
	MaxIter       int
	Trials        int
	Threads       int
	Viewport      fractal.Viewport
	Schedule      fractal.Schedule

	// Output is the PGM path written after the last trial; empty skips it.
	Output string
	// BMPOutput is an optional grayscale BMP path.
	BMPOutput string
}

// DefaultFractalConfig returns a 640x480 viewport, 255 iterations,
// 10 trials on 8 workers with dynamic row scheduling.
func DefaultFractalConfig() FractalConfig {
	return FractalConfig{
		Width:    640,
		Height:   480,
		MaxIter:  fractal.DefaultMaxIter,
		Trials:   10,
		Threads:  8,
		Viewport: fractal.DefaultViewport,
		Schedule: fractal.ScheduleDynamic,
		Output:   "mandelbrot_parallel.pgm",
	}
}

// Validate reports the first invalid field.
func (c FractalConfig) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.MaxIter < 1:
		return fmt.Errorf("%w: max iterations %d < 1", ErrInvalidConfig, c.MaxIter)
	case c.Trials < 1:
		return fmt.Errorf("%w: trials %d < 1", ErrInvalidConfig, c.Trials)
	case c.Threads < 1:
		return fmt.Errorf("%w: threads %d < 1", ErrInvalidConfig, c.Threads)
	case c.Viewport.MaxRe <= c.Viewport.MinRe || c.Viewport.MaxIm <= c.Viewport.MinIm:
		return fmt.Errorf("%w: empty viewport %+v", ErrInvalidConfig, c.Viewport)
	}
	return nil
}

// MatMulConfig parameterizes a sweep over matrix sizes and thread counts.
type MatMulConfig struct {
	Sizes      []int
	Threads    []int
	Strategies []matmul.Strategy
	// Seed feeds the PCG generator that fills the operands.
	Seed uint64
}

// DefaultMatMulConfig returns sizes 256, 512, 1024, thread counts 1, 2, 4, 8
// and all four strategies.
func DefaultMatMulConfig() MatMulConfig {
	return MatMulConfig{
		Sizes:      []int{256, 512, 1024},
		Threads:    []int{1, 2, 4, 8},
		Strategies: matmul.Strategies(),
		Seed:       1,
	}
}

// Validate reports the first invalid field.
func (c MatMulConfig) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("%w: no matrix sizes", ErrInvalidConfig)
	}
	if len(c.Threads) == 0 {
		return fmt.Errorf("%w: no thread counts", ErrInvalidConfig)
	}
	if len(c.Strategies) == 0 {
		return fmt.Errorf("%w: no strategies", ErrInvalidConfig)
	}
	for _, n := range c.Sizes {
		if n < 0 {
			return fmt.Errorf("%w: matrix size %d", ErrInvalidConfig, n)
		}
	}
	for _, t := range c.Threads {
		if t < 1 {
			return fmt.Errorf("%w: thread count %d", ErrInvalidConfig, t)
		}
	}
	for _, s := range c.Strategies {
		if _, err := matmul.ParseStrategy(s.String()); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}
