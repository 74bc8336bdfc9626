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

package matmul

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/parbench/bench/contrib/workerpool"
)

var (
	// ErrUnknownStrategy is returned for a Strategy value outside the known set.
	ErrUnknownStrategy = errors.New("matmul: unknown strategy")

	// ErrNilPool is returned when a parallel strategy is requested without a pool.
	ErrNilPool = errors.New("matmul: parallel strategy requires a worker pool")
)

// Strategy names one of the multiply kernels.
type Strategy int

const (
	NaiveSerial Strategy = iota
	NaiveParallel
	TransposedSerial
	TransposedParallel
)

var strategyNames = [...]string{
	NaiveSerial:        "naive-serial",
	NaiveParallel:      "naive-parallel",
	TransposedSerial:   "transposed-serial",
	TransposedParallel: "transposed-parallel",
}

// Strategies returns every strategy in benchmark order.
func Strategies() []Strategy {
	return []Strategy{NaiveSerial, NaiveParallel, TransposedSerial, TransposedParallel}
}

// String returns the kebab-case identifier used on the command line.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// Label returns the display name, e.g. "Transposed Parallel".
func (s Strategy) Label() string {
	// A Caser carries state, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(s.String(), "-", " "))
}

// Parallel reports whether the strategy runs on a worker pool.
func (s Strategy) Parallel() bool {
	return s == NaiveParallel || s == TransposedParallel
}

// ParseStrategy converts an identifier produced by String back to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Multiply computes c = a * b with strategy s. The pool is only used by the
// parallel strategies and may be nil for the serial ones.
func Multiply(pool workerpool.Executor, s Strategy, a, b, c *Matrix) error {
	n := a.n
	if b.n != n || c.n != n {
		return fmt.Errorf("%w: %dx%d * %dx%d -> %dx%d", ErrDimensionMismatch, n, n, b.n, b.n, c.n, c.n)
	}
	if s.Parallel() && pool == nil {
		return ErrNilPool
	}

	switch s {
	case NaiveSerial:
		MatMul(a.data, b.data, c.data, n)
	case NaiveParallel:
		ParallelMatMul(pool, a.data, b.data, c.data, n)
	case TransposedSerial:
		MatMulT(a.data, b.data, c.data, n)
	case TransposedParallel:
		ParallelMatMulT(pool, a.data, b.data, c.data, n)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return nil
}
