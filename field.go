/*
Copyright © 2018 the Windsaloft authors.
This file is part of Windsaloft.

Windsaloft is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Windsaloft is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Windsaloft.  If not, see <http://www.gnu.org/licenses/>.
*/

package windsaloft

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrRasterTooSmall is returned when a raster has fewer than
	// two rows or two columns.
	ErrRasterTooSmall = errors.New("raster is too small")

	// ErrShapeMismatch is returned when the U and V rasters do not
	// have the same shape.
	ErrShapeMismatch = errors.New("raster components are not the same shape")

	// ErrJaggedRaster is returned by DenseFromRows when the rows
	// do not all have the same length.
	ErrJaggedRaster = errors.New("raster rows are not all the same length")
)

// Field holds the eastward (U) and northward (V) components of a vector
// field on a global regular latitude/longitude grid. Row 0 is the
// northernmost row and column indices increase eastward, with the column
// after the last one wrapping around to column 0.
type Field struct {
	// U and V are the vector components, each with H rows and W columns.
	U, V *mat.Dense

	w, h int
}

// NewField creates a new field from copies of u and v, which must have
// the same shape with at least two rows and two columns.
func NewField(u, v mat.Matrix) (*Field, error) {
	uh, uw := u.Dims()
	vh, vw := v.Dims()
	if uh <= 1 || uw <= 1 || vh <= 1 || vw <= 1 {
		return nil, fmt.Errorf("windsaloft: %w: U is %dx%d and V is %dx%d",
			ErrRasterTooSmall, uh, uw, vh, vw)
	}
	if uh != vh || uw != vw {
		return nil, fmt.Errorf("windsaloft: %w: U is %dx%d but V is %dx%d",
			ErrShapeMismatch, uh, uw, vh, vw)
	}
	return &Field{
		U: mat.DenseCopyOf(u),
		V: mat.DenseCopyOf(v),
		w: uw,
		h: uh,
	}, nil
}

// DenseFromRows creates a matrix from a row-major slice of rows.
func DenseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("windsaloft: %w: raster has no data", ErrRasterTooSmall)
	}
	nx := len(rows[0])
	data := make([]float64, 0, len(rows)*nx)
	for j, row := range rows {
		if len(row) != nx {
			return nil, fmt.Errorf("windsaloft: %w: row %d has %d values but row 0 has %d",
				ErrJaggedRaster, j, len(row), nx)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), nx, data), nil
}

// Dims returns the number of rows and columns in the field.
func (f *Field) Dims() (h, w int) { return f.h, f.w }

// Value returns the direction of the field at fractional grid position
// (x, y), scaled so that the larger of the two components has a
// magnitude of one. Where the field is calm, (0, 0) is returned.
//
// x is expected to be in [0, W). Values of y beyond the first and last
// rows are extrapolated linearly from the boundary cells.
func (f *Field) Value(x, y float64) (u, v float64) {
	fx := math.Floor(x)
	x0 := wrapIndex(int(fx), f.w)
	x1 := (x0 + 1) % f.w
	y0 := int(math.Floor(y))
	if y0 < 0 {
		y0 = 0
	} else if y0 > f.h-2 {
		y0 = f.h - 2
	}
	y1 := y0 + 1

	xw1, yw1 := x-fx, y-float64(y0)
	xw0, yw0 := 1-xw1, 1-yw1

	// The off-diagonal corners take swapped weights: the eastern
	// corner of the upper row carries the row fraction and the
	// western corner of the lower row the column fraction.
	pw00, pw01 := yw0*xw0, yw1*xw0
	pw10, pw11 := yw0*xw1, yw1*xw1

	// The conversions keep the products from being fused so that
	// results do not depend on the target architecture.
	u = float64(f.U.At(y0, x0)*pw00) + float64(f.U.At(y0, x1)*pw01) +
		float64(f.U.At(y1, x0)*pw10) + float64(f.U.At(y1, x1)*pw11)
	v = float64(f.V.At(y0, x0)*pw00) + float64(f.V.At(y0, x1)*pw01) +
		float64(f.V.At(y1, x0)*pw10) + float64(f.V.At(y1, x1)*pw11)

	m := math.Max(math.Abs(u), math.Abs(v))
	if m == 0 {
		return u, v
	}
	return u / m, v / m
}

// shift returns the multiple of the grid width that must be added to x
// to bring it into [0, W).
func (f *Field) shift(x float64) float64 {
	w := float64(f.w)
	if x < 0 || x >= w {
		return -floorDiv(x, w) * w
	}
	return 0
}

// lonLat converts fractional grid coordinates to degrees longitude and
// latitude.
func (f *Field) lonLat(x, y float64) (lon, lat float64) {
	pixelSize := 180 / float64(f.h-1)
	return x*pixelSize - 180, y*-pixelSize + 90
}

// wrapIndex maps column index i into [0, n).
func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// floorDiv returns floor(x/y), derived from the remainder of x/y so that
// x - floorDiv(x, y)*y is consistent with floorMod.
func floorDiv(x, y float64) float64 {
	mod := math.Mod(x, y)
	div := (x - mod) / y
	if mod != 0 && (y < 0) != (mod < 0) {
		div--
	}
	fd := math.Floor(div)
	if div-fd > 0.5 {
		fd++
	}
	return fd
}

// floorMod returns the remainder of x/y with the sign of y.
func floorMod(x, y float64) float64 {
	mod := math.Mod(x, y)
	if mod != 0 && (y < 0) != (mod < 0) {
		mod += y
	}
	return mod
}
