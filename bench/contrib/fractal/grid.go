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
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a grid is requested with a negative
// width or height.
var ErrInvalidDimensions = errors.New("fractal: invalid grid dimensions")

// Grid is an owned height × width buffer of iteration counts stored row-major.
type Grid struct {
	width, height int
	cells         []int
}

// NewGrid allocates a zeroed grid. Zero-sized grids are valid.
func NewGrid(height, width int) (*Grid, error) {
	if height < 0 || width < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]int, height*width),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the value at (row, col). It panics if the cell is out of range.
func (g *Grid) At(row, col int) int {
	g.check(row, col)
	return g.cells[row*g.width+col]
}

// Set stores v at (row, col). It panics if the cell is out of range.
func (g *Grid) Set(row, col, v int) {
	g.check(row, col)
	g.cells[row*g.width+col] = v
}

// Row returns the backing slice for one row. Writes through it modify the grid.
func (g *Grid) Row(row int) []int {
	if row < 0 || row >= g.height {
		panic(fmt.Sprintf("fractal: row %d out of range [0,%d)", row, g.height))
	}
	return g.cells[row*g.width : (row+1)*g.width]
}

// Max returns the largest cell value, or 0 for an empty grid.
func (g *Grid) Max() int {
	m := 0
	for _, v := range g.cells {
		m = max(m, v)
	}
	return m
}

func (g *Grid) check(row, col int) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		panic(fmt.Sprintf("fractal: cell (%d,%d) out of range %dx%d", row, col, g.width, g.height))
	}
}
