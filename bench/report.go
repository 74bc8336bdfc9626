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
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/parbench/bench/contrib/matmul"
	"github.com/ajroetker/parbench/internal/cpuinfo"
)

// Reporter receives benchmark events in run order. Write errors are sticky
// and returned by Err.
type Reporter interface {
	Host(info cpuinfo.Info)

	FractalStart(cfg FractalConfig)
	FractalTrial(trial int, cfg FractalConfig, d time.Duration)
	FractalDone(stats TrialStats)

	MatMulSize(n int)
	MatMulThreads(n, threads int)
	MatMulResult(n, threads int, s matmul.Strategy, d time.Duration)
	MatMulThreadsDone(n, threads int)

	Err() error
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// TextReporter prints human-readable timings in the classic benchmark
// console layout:
//
//	Execution time of trial [1]: 0.012345 seconds
//	The average execution time of 10 trials is: 12.345678 ms
//
//	Matrix Size: 256x256
//	Threads: 4
//	Naive Serial: 0.021000 seconds
type TextReporter struct {
	out errWriter
	p   *message.Printer
}

// NewTextReporter writes to w. Counts in header lines are formatted for
// English.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{
		out: errWriter{w: w},
		p:   message.NewPrinter(language.English),
	}
}

func (r *TextReporter) Host(info cpuinfo.Info) {
	r.out.printf("Host: %s\n", info)
}

func (r *TextReporter) FractalStart(cfg FractalConfig) {
	r.out.printf("%s", r.p.Sprintf("Viewport: %dx%d (%d cells), max %d iterations, %d threads, %s schedule\n",
		cfg.Width, cfg.Height, cfg.Width*cfg.Height, cfg.MaxIter, cfg.Threads, cfg.Schedule))
}

func (r *TextReporter) FractalTrial(trial int, _ FractalConfig, d time.Duration) {
	r.out.printf("Execution time of trial [%d]: %f seconds\n", trial, d.Seconds())
}

func (r *TextReporter) FractalDone(stats TrialStats) {
	r.out.printf("The average execution time of %d trials is: %f ms\n", stats.Len(), stats.MeanMillis())
}

func (r *TextReporter) MatMulSize(n int) {
	r.out.printf("Matrix Size: %dx%d\n", n, n)
}

func (r *TextReporter) MatMulThreads(_, threads int) {
	r.out.printf("Threads: %d\n", threads)
}

func (r *TextReporter) MatMulResult(_, _ int, s matmul.Strategy, d time.Duration) {
	r.out.printf("%s: %f seconds\n", s.Label(), d.Seconds())
}

func (r *TextReporter) MatMulThreadsDone(_, _ int) {
	r.out.printf("\n")
}

func (r *TextReporter) Err() error { return r.out.err }

// GoBenchReporter prints one line per measurement in the format produced by
// "go test -bench", so results can be fed to benchstat. Each fractal trial is
// a separate line with the same name, which benchstat treats as -count runs.
type GoBenchReporter struct {
	out errWriter
}

// NewGoBenchReporter writes to w.
func NewGoBenchReporter(w io.Writer) *GoBenchReporter {
	return &GoBenchReporter{out: errWriter{w: w}}
}

func (r *GoBenchReporter) Host(info cpuinfo.Info) {
	r.out.printf("goos: %s\ngoarch: %s\npkg: github.com/ajroetker/parbench\ncpu: %s\n", info.GOOS, info.GOARCH, info.Level)
}

func (r *GoBenchReporter) FractalStart(FractalConfig) {}

func (r *GoBenchReporter) FractalTrial(_ int, cfg FractalConfig, d time.Duration) {
	r.line(fmt.Sprintf("Mandelbrot/%dx%d/iter=%d/%s/threads=%d", cfg.Width, cfg.Height, cfg.MaxIter, cfg.Schedule, cfg.Threads), d)
}

func (r *GoBenchReporter) FractalDone(TrialStats) {}

func (r *GoBenchReporter) MatMulSize(int) {}

func (r *GoBenchReporter) MatMulThreads(_, _ int) {}

func (r *GoBenchReporter) MatMulResult(n, threads int, s matmul.Strategy, d time.Duration) {
	r.line(fmt.Sprintf("MatMul/%s/n=%d/threads=%d", s, n, threads), d)
}

func (r *GoBenchReporter) MatMulThreadsDone(_, _ int) {}

func (r *GoBenchReporter) Err() error { return r.out.err }

func (r *GoBenchReporter) line(name string, d time.Duration) {
	r.out.printf("Benchmark%s \t%d\t%d ns/op\n", name, 1, d.Nanoseconds())
}
