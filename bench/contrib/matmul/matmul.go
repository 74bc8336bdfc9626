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

import "github.com/ajroetker/parbench/bench/contrib/workerpool"

// checkOperands panics if any operand is too short for an n x n multiply.
func checkOperands(a, b, c []float64, n int) {
	if len(a) < n*n {
		panic("matmul: A slice too short")
	}
	if len(b) < n*n {
		panic("matmul: B slice too short")
	}
	if len(c) < n*n {
		panic("matmul: C slice too short")
	}
}

// MatMul computes C = A * B for n x n row-major matrices with the textbook
// i-j-k loop nest. The inner loop walks B down a column with stride n, which
// is cache-hostile for large n; it is kept as the baseline.
func MatMul(a, b, c []float64, n int) {
	if n == 0 {
		return
	}
	checkOperands(a, b, c, n)
	matmulRows(a, b, c, n, 0, n)
}

// ParallelMatMul computes C = A * B with the same access pattern as MatMul.
// Output rows are split into contiguous equal bands, one per worker; every
// row costs the same, so a static split balances well.
func ParallelMatMul(pool workerpool.Executor, a, b, c []float64, n int) {
	if n == 0 {
		return
	}
	checkOperands(a, b, c, n)
	pool.ParallelFor(n, func(start, end int) {
		matmulRows(a, b, c, n, start, end)
	})
}

func matmulRows(a, b, c []float64, n, rowStart, rowEnd int) {
	for i := rowStart; i < rowEnd; i++ {
		aRow := a[i*n : (i+1)*n]
		cRow := c[i*n : (i+1)*n]
		for j := range n {
			var dot float64
			for k, aik := range aRow {
				dot += aik * b[k*n+j]
			}
			cRow[j] = dot
		}
	}
}

// Transpose writes the transpose of the n x n matrix src into dst:
// dst[j*n+i] = src[i*n+j]. src and dst must not overlap.
func Transpose(src, dst []float64, n int) {
	if n == 0 {
		return
	}
	if len(src) < n*n {
		panic("matmul: src slice too short")
	}
	if len(dst) < n*n {
		panic("matmul: dst slice too short")
	}
	for i := range n {
		row := src[i*n : (i+1)*n]
		for j, v := range row {
			dst[j*n+i] = v
		}
	}
}

// MatMulT computes C = A * B by first transposing B into a scratch buffer so
// the contraction reads both operands contiguously. The O(n²) transpose is
// paid once per call; the scratch is freed when the call returns.
func MatMulT(a, b, c []float64, n int) {
	if n == 0 {
		return
	}
	checkOperands(a, b, c, n)
	bT := make([]float64, n*n)
	Transpose(b, bT, n)
	matmulTRows(a, bT, c, n, 0, n)
}

// ParallelMatMulT is MatMulT with output rows split into static bands across
// the pool. The transpose runs on the caller before the parallel region and
// the scratch is shared read-only by all workers.
func ParallelMatMulT(pool workerpool.Executor, a, b, c []float64, n int) {
	if n == 0 {
		return
	}
	checkOperands(a, b, c, n)
	bT := make([]float64, n*n)
	Transpose(b, bT, n)
	pool.ParallelFor(n, func(start, end int) {
		matmulTRows(a, bT, c, n, start, end)
	})
}

// matmulTRows computes rows [rowStart,rowEnd) of C from A and B^T.
// C[i,j] = dot(A[i,:], BT[j,:]), both rows contiguous.
func matmulTRows(a, bT, c []float64, n, rowStart, rowEnd int) {
	for i := rowStart; i < rowEnd; i++ {
		aRow := a[i*n : (i+1)*n]
		cRow := c[i*n : (i+1)*n]
		for j := range n {
			bRow := bT[j*n : (j+1)*n]
			var dot float64
			for k, aik := range aRow {
				dot += aik * bRow[k]
			}
			cRow[j] = dot
		}
	}
}
