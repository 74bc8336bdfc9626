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

// Package raster dumps iteration-count grids to image files.
//
// The primary format is plain PGM (magic "P2"): a three-line header
// "P2", "<width> <height>", "255", then one text line per grid row with every
// value followed by a space. A gray BMP export is provided for viewers that
// do not read PGM.
package raster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ajroetker/parbench/bench/contrib/fractal"
)

// MaxGray is the maximum value written in the PGM header.
const MaxGray = 255

const pgmMagic = "P2"

var (
	// ErrBadMagic is returned when a PGM stream does not start with "P2".
	ErrBadMagic = errors.New("raster: not a plain PGM (P2) stream")

	// ErrMalformed is returned for truncated or non-numeric PGM content.
	ErrMalformed = errors.New("raster: malformed PGM")
)

// WritePGM writes g as a plain PGM image. Cell values above MaxGray are
// clamped so the output stays within the declared maximum.
func WritePGM(w io.Writer, g *fractal.Grid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n%d\n", pgmMagic, g.Width(), g.Height(), MaxGray)

	buf := make([]byte, 0, 8)
	for row := range g.Height() {
		for _, v := range g.Row(row) {
			buf = strconv.AppendInt(buf[:0], int64(clampGray(v)), 10)
			buf = append(buf, ' ')
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// SavePGM writes g to the named file, creating or truncating it.
func SavePGM(path string, g *fractal.Grid) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WritePGM(f, g)
}

// ReadPGM parses a plain PGM stream into a grid. Text from '#' to the end of
// a line is ignored. Sample values are returned as
// stored; they are not rescaled by the header maximum.
func ReadPGM(r io.Reader) (*fractal.Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var fields []string
	next := func() (string, error) {
		for len(fields) == 0 {
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return "", err
				}
				return "", io.ErrUnexpectedEOF
			}
			line := sc.Text()
			if i := strings.IndexByte(line, '#'); i >= 0 {
				line = line[:i]
			}
			fields = strings.Fields(line)
		}
		tok := fields[0]
		fields = fields[1:]
		return tok, nil
	}
	nextInt := func(what string) (int, error) {
		tok, err := next()
		if err != nil {
			return 0, fmt.Errorf("%w: reading %s: %v", ErrMalformed, what, err)
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: bad %s %q", ErrMalformed, what, tok)
		}
		return v, nil
	}

	magic, err := next()
	if err != nil || magic != pgmMagic {
		return nil, ErrBadMagic
	}
	width, err := nextInt("width")
	if err != nil {
		return nil, err
	}
	height, err := nextInt("height")
	if err != nil {
		return nil, err
	}
	if _, err := nextInt("maxval"); err != nil {
		return nil, err
	}

	g, err := fractal.NewGrid(height, width)
	if err != nil {
		return nil, err
	}
	for row := range height {
		cells := g.Row(row)
		for col := range cells {
			v, err := nextInt("sample")
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", row, col, err)
			}
			cells[col] = v
		}
	}
	return g, nil
}

func clampGray(v int) int {
	return min(max(v, 0), MaxGray)
}
