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

// Package matmul provides dense square matrix multiplication kernels that
// differ only in loop partitioning and memory access order.
//
// Four strategies are provided:
//
//   - MatMul: naive i-j-k nest, B read with stride n in the inner loop
//   - ParallelMatMul: same nest, output rows split into static bands
//   - MatMulT: B transposed into a scratch copy first, inner loop contiguous
//   - ParallelMatMulT: transposed variant with static row bands
//
// All operate on flat row-major []float64 slices of length n². Results agree
// up to floating-point rounding; the transposed kernels sum in the same order
// as the naive ones, so in practice they are bit-identical.
//
// The Matrix type wraps a slice with its size and Multiply dispatches by
// Strategy:
//
//	pool := workerpool.New(4)
//	defer pool.Close()
//
//	a, _ := matmul.Random(512, rng)
//	b, _ := matmul.Random(512, rng)
//	c, _ := matmul.NewMatrix(512)
//	err := matmul.Multiply(pool, matmul.TransposedParallel, a, b, c)
package matmul
