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

// Package fractal evaluates independent per-cell functions over a 2D grid in
// parallel, with the escape-time Mandelbrot test as the workload.
//
// Every cell is computed independently of the others, so rows can be spread
// across a worker pool without synchronization beyond the final join. The
// escape-time cost of a cell ranges from one step to the iteration cap, so the
// default schedule is dynamic: a worker takes one row, finishes it, then takes
// the next free row.
//
// Example:
//
//	pool := workerpool.New(8)
//	defer pool.Close()
//
//	g, err := fractal.Mandelbrot(pool, 480, 640, fractal.DefaultMaxIter, fractal.DefaultViewport)
package fractal
