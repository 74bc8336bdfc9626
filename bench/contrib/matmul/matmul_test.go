// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ajroetker/parbench/bench/contrib/workerpool"
)

// approx compares float64 slices within 1e-9 relative tolerance.
var approx = cmpopts.EquateApprox(1e-9, 1e-12)

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func mustRandom(t testing.TB, n int, rng *rand.Rand) *Matrix {
	t.Helper()
	m, err := Random(n, rng)
	if err != nil {
		t.Fatalf("Random(%d): %v", n, err)
	}
	return m
}

func mustNew(t testing.TB, n int) *Matrix {
	t.Helper()
	m, err := NewMatrix(n)
	if err != nil {
		t.Fatalf("NewMatrix(%d): %v", n, err)
	}
	return m
}

// referenceMatMul is an independent i-k-j implementation used as the oracle.
func referenceMatMul(a, b []float64, n int) []float64 {
	c := make([]float64, n*n)
	for i := range n {
		for p := range n {
			aip := a[i*n+p]
			for j := range n {
				c[i*n+j] += aip * b[p*n+j]
			}
		}
	}
	return c
}

// TestStrategiesAgree verifies every strategy produces the same product for
// a range of sizes and pool sizes.
func TestStrategiesAgree(t *testing.T) {
	rng := newRNG()
	for _, n := range []int{0, 1, 2, 3, 8, 17, 64} {
		a := mustRandom(t, n, rng)
		b := mustRandom(t, n, rng)
		want := referenceMatMul(a.Data(), b.Data(), n)

		for _, workers := range []int{1, 2, 4, 8} {
			pool := workerpool.New(workers)
			for _, s := range Strategies() {
				t.Run(fmt.Sprintf("n=%d/workers=%d/%s", n, workers, s), func(t *testing.T) {
					c := mustNew(t, n)
					if err := Multiply(pool, s, a, b, c); err != nil {
						t.Fatalf("Multiply: %v", err)
					}
					if diff := cmp.Diff(want, c.Data(), approx, cmpopts.EquateEmpty()); diff != "" {
						t.Errorf("product mismatch (-want +got):\n%s", diff)
					}
				})
			}
			pool.Close()
		}
	}
}

func TestSliceKernelsMatchSerial(t *testing.T) {
	pool := workerpool.New(3)
	defer pool.Close()

	const n = 31
	rng := newRNG()
	a := mustRandom(t, n, rng).Data()
	b := mustRandom(t, n, rng).Data()

	serial := make([]float64, n*n)
	MatMul(a, b, serial, n)

	kernels := map[string]func(c []float64){
		"ParallelMatMul":  func(c []float64) { ParallelMatMul(pool, a, b, c, n) },
		"MatMulT":         func(c []float64) { MatMulT(a, b, c, n) },
		"ParallelMatMulT": func(c []float64) { ParallelMatMulT(pool, a, b, c, n) },
	}
	for name, kernel := range kernels {
		t.Run(name, func(t *testing.T) {
			c := make([]float64, n*n)
			for i := range c {
				c[i] = -1 // every cell must be overwritten
			}
			kernel(c)
			if diff := cmp.Diff(serial, c, approx); diff != "" {
				t.Errorf("%s differs from MatMul (-want +got):\n%s", name, diff)
			}
		})
	}
}

func TestTransposeIsInvolution(t *testing.T) {
	rng := newRNG()
	for _, n := range []int{0, 1, 2, 5, 16} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			m := mustRandom(t, n, rng)
			back := m.Transpose().Transpose()
			// Exact comparison: transpose only moves values.
			if diff := cmp.Diff(m.Data(), back.Data(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("transpose twice changed matrix (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransposeLayout(t *testing.T) {
	src := []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	dst := make([]float64, 9)
	Transpose(src, dst, 3)

	want := []float64{
		1, 4, 7,
		2, 5, 8,
		3, 6, 9,
	}
	if diff := cmp.Diff(want, dst); diff != "" {
		t.Errorf("Transpose (-want +got):\n%s", diff)
	}
}

func TestIdentity(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	rng := newRNG()
	for _, n := range []int{1, 4, 19} {
		a := mustRandom(t, n, rng)
		id, err := Identity(n)
		if err != nil {
			t.Fatal(err)
		}
		for _, s := range Strategies() {
			t.Run(fmt.Sprintf("n=%d/%s", n, s), func(t *testing.T) {
				c := mustNew(t, n)
				if err := Multiply(pool, s, a, id, c); err != nil {
					t.Fatal(err)
				}
				if diff := cmp.Diff(a.Data(), c.Data(), approx); diff != "" {
					t.Errorf("A*I != A (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestZeroSize(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Close()

	a, b, c := mustNew(t, 0), mustNew(t, 0), mustNew(t, 0)
	for _, s := range Strategies() {
		if err := Multiply(pool, s, a, b, c); err != nil {
			t.Errorf("%s: Multiply on 0x0 returned %v", s, err)
		}
		if len(c.Data()) != 0 {
			t.Errorf("%s: output has %d elements, want 0", s, len(c.Data()))
		}
	}

	// Slice kernels accept nil buffers for n == 0.
	MatMul(nil, nil, nil, 0)
	ParallelMatMul(pool, nil, nil, nil, 0)
	MatMulT(nil, nil, nil, 0)
	ParallelMatMulT(pool, nil, nil, nil, 0)
	Transpose(nil, nil, 0)
}

func TestMultiplyErrors(t *testing.T) {
	a, b, c := mustNew(t, 2), mustNew(t, 3), mustNew(t, 2)

	if err := Multiply(nil, NaiveSerial, a, b, c); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("size mismatch: got %v, want ErrDimensionMismatch", err)
	}
	if err := Multiply(nil, NaiveParallel, a, a, c); !errors.Is(err, ErrNilPool) {
		t.Errorf("nil pool: got %v, want ErrNilPool", err)
	}
	if err := Multiply(nil, Strategy(42), a, a, c); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("unknown strategy: got %v, want ErrUnknownStrategy", err)
	}
	if _, err := NewMatrix(-1); !errors.Is(err, ErrNegativeSize) {
		t.Errorf("NewMatrix(-1): got %v, want ErrNegativeSize", err)
	}
	if _, err := FromSlice(2, make([]float64, 3)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("FromSlice short: got %v, want ErrDimensionMismatch", err)
	}
}

func TestShortSlicePanics(t *testing.T) {
	defer func() {
		if r := recover(); r != "matmul: B slice too short" {
			t.Errorf("recover() = %v, want B slice panic", r)
		}
	}()
	MatMul(make([]float64, 4), make([]float64, 3), make([]float64, 4), 2)
}

func TestStrategyNames(t *testing.T) {
	labels := map[Strategy]string{
		NaiveSerial:        "Naive Serial",
		NaiveParallel:      "Naive Parallel",
		TransposedSerial:   "Transposed Serial",
		TransposedParallel: "Transposed Parallel",
	}
	for _, s := range Strategies() {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStrategy(%q) = %v, %v", s.String(), got, err)
		}
		if s.Label() != labels[s] {
			t.Errorf("%v.Label() = %q, want %q", s, s.Label(), labels[s])
		}
	}
	if _, err := ParseStrategy("strassen"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("ParseStrategy(strassen) = %v, want ErrUnknownStrategy", err)
	}
}

func TestMatrixAccessors(t *testing.T) {
	m := mustNew(t, 3)
	m.Set(1, 2, 7.5)
	if m.At(1, 2) != 7.5 || m.Data()[5] != 7.5 {
		t.Errorf("Set/At row-major mismatch: %v", m.Data())
	}
	c := m.Clone()
	c.Set(1, 2, 0)
	if m.At(1, 2) != 7.5 {
		t.Error("Clone shares storage with original")
	}
}

func BenchmarkMultiply(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()

	rng := newRNG()
	for _, n := range []int{64, 256} {
		a := mustRandom(b, n, rng)
		bm := mustRandom(b, n, rng)
		c := mustNew(b, n)
		for _, s := range Strategies() {
			b.Run(fmt.Sprintf("%s/n=%d", s, n), func(b *testing.B) {
				b.SetBytes(int64(n * n * 8))
				for b.Loop() {
					_ = Multiply(pool, s, a, bm, c)
				}
			})
		}
	}
}
