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

// DefaultMaxIter is the iteration cap used when none is configured.
const DefaultMaxIter = 255

// escapeRadiusSq is |z|² at which a point is considered to have escaped.
const escapeRadiusSq = 4.0

// Complex is a point in the complex plane.
type Complex struct {
	Re, Im float64
}

// Viewport is the rectangle of the complex plane mapped onto a grid.
type Viewport struct {
	MinRe, MaxRe float64
	MinIm, MaxIm float64
}

// DefaultViewport covers [-2,2] × [-1.5,1.5], which frames the whole
// Mandelbrot set at a 4:3 aspect ratio.
var DefaultViewport = Viewport{MinRe: -2, MaxRe: 2, MinIm: -1.5, MaxIm: 1.5}

// Point maps the cell (row, col) of a height × width grid to its sample in
// the complex plane. Column 0 maps to MinRe and row 0 to MinIm; the map is
// linear in both axes.
func (v Viewport) Point(row, col, height, width int) Complex {
	return Complex{
		Re: v.MinRe + float64(col)*(v.MaxRe-v.MinRe)/float64(width),
		Im: v.MinIm + float64(row)*(v.MaxIm-v.MinIm)/float64(height),
	}
}

// EscapeTime iterates z ← z² + c from z = 0 and returns the number of steps
// after which |z|² >= 4, or maxIter if the orbit stays bounded that long.
//
// Points inside the set always cost maxIter steps while distant points return
// after one, which is why rows of a viewport have very uneven cost.
func EscapeTime(c Complex, maxIter int) int {
	var zr, zi float64
	for iter := 1; iter <= maxIter; iter++ {
		zr2 := zr * zr
		zi2 := zi * zi
		zi = 2*zr*zi + c.Im
		zr = zr2 - zi2 + c.Re
		if zr*zr+zi*zi >= escapeRadiusSq {
			return iter
		}
	}
	return maxIter
}
