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
	"math/rand/v2"
)

var (
	// ErrNegativeSize is returned when a matrix is requested with n < 0.
	ErrNegativeSize = errors.New("matmul: negative matrix size")

	// ErrDimensionMismatch is returned when operands of a multiply differ in size.
	ErrDimensionMismatch = errors.New("matmul: dimension mismatch")
)

// Matrix is an owned n x n matrix of float64 stored row-major in one
// contiguous slice of length n².
type Matrix struct {
	n    int
	data []float64
}

// NewMatrix allocates a zero n x n matrix. n == 0 yields a valid empty matrix.
func NewMatrix(n int) (*Matrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, n)
	}
	return &Matrix{n: n, data: make([]float64, n*n)}, nil
}

// FromSlice wraps data as an n x n matrix without copying.
func FromSlice(n int, data []float64) (*Matrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, n)
	}
	if len(data) != n*n {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrDimensionMismatch, len(data), n, n)
	}
	return &Matrix{n: n, data: data}, nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) (*Matrix, error) {
	m, err := NewMatrix(n)
	if err != nil {
		return nil, err
	}
	for i := range n {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// Random returns an n x n matrix with entries drawn uniformly from [0,1).
func Random(n int, rng *rand.Rand) (*Matrix, error) {
	m, err := NewMatrix(n)
	if err != nil {
		return nil, err
	}
	for i := range m.data {
		m.data[i] = rng.Float64()
	}
	return m, nil
}

// Size returns n.
func (m *Matrix) Size() int { return m.n }

// Data returns the row-major backing slice.
func (m *Matrix) Data() []float64 { return m.data }

// At returns element (i, j).
func (m *Matrix) At(i, j int) float64 {
	m.check(i, j)
	return m.data[i*m.n+j]
}

// Set stores v at (i, j).
func (m *Matrix) Set(i, j int, v float64) {
	m.check(i, j)
	m.data[i*m.n+j] = v
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{n: m.n, data: append([]float64(nil), m.data...)}
}

// Transpose returns a new matrix holding m transposed. Values are moved, not
// recomputed, so transposing twice reproduces m exactly.
func (m *Matrix) Transpose() *Matrix {
	t := &Matrix{n: m.n, data: make([]float64, len(m.data))}
	Transpose(m.data, t.data, m.n)
	return t
}

func (m *Matrix) check(i, j int) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		panic(fmt.Sprintf("matmul: index (%d,%d) out of range for %dx%d", i, j, m.n, m.n))
	}
}
