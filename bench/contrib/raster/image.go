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

package raster

import (
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/bmp"

	"github.com/ajroetker/parbench/bench/contrib/fractal"
)

// Gray converts g to an 8-bit grayscale image, scaling values linearly so
// the grid maximum maps to white. An all-zero grid stays black.
func Gray(g *fractal.Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width(), g.Height()))
	peak := g.Max()
	if peak == 0 {
		return img
	}
	for row := range g.Height() {
		for col, v := range g.Row(row) {
			img.SetGray(col, row, color.Gray{Y: uint8(v * MaxGray / peak)})
		}
	}
	return img
}

// WriteBMP encodes g as a grayscale BMP.
func WriteBMP(w io.Writer, g *fractal.Grid) error {
	return bmp.Encode(w, Gray(g))
}

// SaveBMP writes g as a BMP to the named file.
func SaveBMP(path string, g *fractal.Grid) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteBMP(f, g)
}
