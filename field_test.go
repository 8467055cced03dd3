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
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func testField(t *testing.T) *Field {
	u := mat.NewDense(3, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	})
	v := mat.NewDense(3, 4, nil)
	for j := 0; j < 3; j++ {
		for i := 0; i < 4; i++ {
			v.Set(j, i, 100)
		}
	}
	f, err := NewField(u, v)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestNewField(t *testing.T) {
	for _, test := range []struct {
		name   string
		uh, uw int
		vh, vw int
		err    error
	}{
		{name: "ok", uh: 2, uw: 2, vh: 2, vw: 2},
		{name: "one row", uh: 1, uw: 5, vh: 1, vw: 5, err: ErrRasterTooSmall},
		{name: "one column", uh: 5, uw: 1, vh: 5, vw: 1, err: ErrRasterTooSmall},
		{name: "mismatch", uh: 3, uw: 4, vh: 4, vw: 3, err: ErrShapeMismatch},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewField(mat.NewDense(test.uh, test.uw, nil), mat.NewDense(test.vh, test.vw, nil))
			if test.err == nil {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			if !errors.Is(err, test.err) {
				t.Errorf("have error %v, want %v", err, test.err)
			}
		})
	}
}

func TestNewFieldCopies(t *testing.T) {
	u := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	v := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	f, err := NewField(u, v)
	if err != nil {
		t.Fatal(err)
	}
	f.U.Set(0, 0, -1)
	if u.At(0, 0) != 1 {
		t.Errorf("input raster was modified: have %g, want 1", u.At(0, 0))
	}
	if h, w := f.Dims(); h != 2 || w != 2 {
		t.Errorf("have %dx%d, want 2x2", h, w)
	}
}

func TestDenseFromRows(t *testing.T) {
	d, err := DenseFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatal(err)
	}
	if r, c := d.Dims(); r != 2 || c != 3 {
		t.Errorf("have %dx%d, want 2x3", r, c)
	}
	if d.At(1, 0) != 4 {
		t.Errorf("have %g, want 4", d.At(1, 0))
	}
	if _, err = DenseFromRows([][]float64{{1, 2}, {3}}); !errors.Is(err, ErrJaggedRaster) {
		t.Errorf("have error %v, want %v", err, ErrJaggedRaster)
	}
	if _, err = DenseFromRows(nil); !errors.Is(err, ErrRasterTooSmall) {
		t.Errorf("have error %v, want %v", err, ErrRasterTooSmall)
	}
}

func TestFieldValue(t *testing.T) {
	f := testField(t)
	for _, test := range []struct {
		name  string
		x, y  float64
		wantU float64
	}{
		{name: "grid point", x: 1, y: 1, wantU: 0.06},
		{name: "column fraction", x: 3.5, y: 0, wantU: 0.06},
		{name: "row fraction", x: 0, y: 0.5, wantU: 0.015},
		{name: "wrapped west", x: -0.5, y: 0, wantU: 0.06},
		{name: "extrapolated south", x: 0, y: 2.5, wantU: 0.065},
	} {
		t.Run(test.name, func(t *testing.T) {
			u, v := f.Value(test.x, test.y)
			if !floats.EqualWithinAbs(u, test.wantU, 1.e-12) {
				t.Errorf("u: have %g, want %g", u, test.wantU)
			}
			if !floats.EqualWithinAbs(v, 1, 1.e-12) {
				t.Errorf("v: have %g, want 1", v)
			}
		})
	}
}

func TestFieldValueCalm(t *testing.T) {
	f, err := NewField(mat.NewDense(3, 3, nil), mat.NewDense(3, 3, nil))
	if err != nil {
		t.Fatal(err)
	}
	u, v := f.Value(1.3, 0.7)
	if u != 0 || v != 0 {
		t.Errorf("have (%g, %g), want (0, 0)", u, v)
	}
}

func TestFieldShift(t *testing.T) {
	f := testField(t)
	for _, test := range []struct {
		x, want float64
	}{
		{x: 0, want: 0},
		{x: 3.9, want: 0},
		{x: 4, want: -4},
		{x: 9.5, want: -8},
		{x: -1, want: 4},
		{x: -4.5, want: 8},
	} {
		if have := f.shift(test.x); have != test.want {
			t.Errorf("shift(%g): have %g, want %g", test.x, have, test.want)
		}
	}
}

func TestFieldLonLat(t *testing.T) {
	f := testField(t)
	for _, test := range []struct {
		x, y, lon, lat float64
	}{
		{x: 0, y: 0, lon: -180, lat: 90},
		{x: 2, y: 1, lon: 0, lat: 0},
		{x: 4, y: 2, lon: 180, lat: -90},
		{x: 0.5, y: 1.5, lon: -135, lat: -45},
	} {
		lon, lat := f.lonLat(test.x, test.y)
		if lon != test.lon || lat != test.lat {
			t.Errorf("lonLat(%g, %g): have (%g, %g), want (%g, %g)",
				test.x, test.y, lon, lat, test.lon, test.lat)
		}
	}
}

func TestFloorModDiv(t *testing.T) {
	for _, test := range []struct {
		x, y, div, mod float64
	}{
		{x: 5.5, y: 4, div: 1, mod: 1.5},
		{x: -1, y: 4, div: -1, mod: 3},
		{x: -8, y: 4, div: -2, mod: 0},
		{x: 3, y: 4, div: 0, mod: 3},
	} {
		if d := floorDiv(test.x, test.y); d != test.div {
			t.Errorf("floorDiv(%g, %g): have %g, want %g", test.x, test.y, d, test.div)
		}
		if m := floorMod(test.x, test.y); m != test.mod {
			t.Errorf("floorMod(%g, %g): have %g, want %g", test.x, test.y, m, test.mod)
		}
	}
}
