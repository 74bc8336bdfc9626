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

package fractal

import (
	"fmt"

	"github.com/ajroetker/parbench/bench/contrib/workerpool"
)

// CellFunc computes the value of one grid cell. It must be pure: the result
// may depend only on (row, col).
type CellFunc func(row, col int) int

// Schedule selects how rows are handed to workers.
type Schedule int

const (
	// ScheduleDynamic hands out one row at a time to whichever worker is free.
	ScheduleDynamic Schedule = iota
	// ScheduleStatic gives each worker one contiguous band of rows up front.
	ScheduleStatic
)

func (s Schedule) String() string {
	switch s {
	case ScheduleDynamic:
		return "dynamic"
	case ScheduleStatic:
		return "static"
	default:
		return fmt.Sprintf("Schedule(%d)", int(s))
	}
}

// ParseSchedule converts "dynamic" or "static" to a Schedule.
func ParseSchedule(s string) (Schedule, error) {
	switch s {
	case "dynamic":
		return ScheduleDynamic, nil
	case "static":
		return ScheduleStatic, nil
	}
	return 0, fmt.Errorf("fractal: unknown schedule %q", s)
}

type evalOptions struct {
	schedule Schedule
}

// Option configures Evaluate.
type Option func(*evalOptions)

// WithSchedule overrides the default dynamic row schedule.
func WithSchedule(s Schedule) Option {
	return func(o *evalOptions) { o.schedule = s }
}

// Evaluate fills every cell of g with f(row, col).
//
// Rows are the unit of distribution: a worker computes all cells of a row
// left to right before taking another. With the default dynamic schedule each
// worker claims the next unprocessed row as soon as it finishes one, which
// keeps workers busy when per-row cost varies. Workers write disjoint rows, so
// no locking is needed. A nil pool evaluates serially on the caller.
func Evaluate(pool workerpool.Executor, g *Grid, f CellFunc, opts ...Option) {
	o := evalOptions{schedule: ScheduleDynamic}
	for _, opt := range opts {
		opt(&o)
	}

	if pool == nil {
		for row := range g.height {
			fillRow(g, f, row)
		}
		return
	}

	switch o.schedule {
	case ScheduleStatic:
		pool.ParallelFor(g.height, func(start, end int) {
			for row := start; row < end; row++ {
				fillRow(g, f, row)
			}
		})
	default:
		pool.ParallelForAtomic(g.height, func(row int) {
			fillRow(g, f, row)
		})
	}
}

func fillRow(g *Grid, f CellFunc, row int) {
	cells := g.cells[row*g.width : (row+1)*g.width]
	for col := range cells {
		cells[col] = f(row, col)
	}
}

// EscapeTimeFunc returns the CellFunc that samples vp on a height × width
// grid and applies EscapeTime with the given cap.
func EscapeTimeFunc(vp Viewport, height, width, maxIter int) CellFunc {
	return func(row, col int) int {
		return EscapeTime(vp.Point(row, col, height, width), maxIter)
	}
}

// Mandelbrot allocates a height × width grid and fills it with escape times
// over vp.
func Mandelbrot(pool workerpool.Executor, height, width, maxIter int, vp Viewport, opts ...Option) (*Grid, error) {
	g, err := NewGrid(height, width)
	if err != nil {
		return nil, err
	}
	Evaluate(pool, g, EscapeTimeFunc(vp, height, width, maxIter), opts...)
	return g, nil
}
