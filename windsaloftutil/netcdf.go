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

package windsaloftutil

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/mat"
)

// LoadVariable reads a two-dimensional slab of the named variable out of a
// NetCDF file. The last two dimensions of the variable are taken as
// latitude and longitude, and layer gives the indices of any leading
// dimensions such as time or height; missing indices are taken to be 0.
// If the file has a coordinate variable for the latitude dimension whose
// values increase, the rows are reversed so that the first row is the
// northernmost one.
func LoadVariable(r cdf.ReaderWriterAt, name string, layer []int) (*mat.Dense, error) {
	f, err := cdf.Open(r)
	if err != nil {
		return nil, fmt.Errorf("windsaloftutil: opening NetCDF file: %v", err)
	}
	dims := f.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, fmt.Errorf("windsaloftutil: variable %s not in NetCDF file", name)
	}
	if len(dims) < 2 {
		return nil, fmt.Errorf("windsaloftutil: variable %s has %d dimension(s); it needs at least 2", name, len(dims))
	}
	nLead := len(dims) - 2
	if len(layer) > nLead {
		return nil, fmt.Errorf("windsaloftutil: %d layer indices given but variable %s only has %d leading dimension(s)",
			len(layer), name, nLead)
	}
	ny, nx := dims[nLead], dims[nLead+1]

	begin, end := make([]int, len(dims)), make([]int, len(dims))
	for i := 0; i < nLead; i++ {
		var l int
		if i < len(layer) {
			l = layer[i]
		}
		// Record dimensions have a length of zero in the header.
		if l < 0 || (dims[i] != 0 && l >= dims[i]) {
			return nil, fmt.Errorf("windsaloftutil: index %d for dimension %d of variable %s is out of range [0, %d)",
				l, i, name, dims[i])
		}
		begin[i], end[i] = l, l
	}
	end[nLead], end[nLead+1] = ny-1, nx-1

	data := sparse.ZerosDense(ny, nx)
	rr := f.Reader(name, begin, end)
	buf := rr.Zero(ny * nx)
	if _, err := rr.Read(buf); err != nil {
		return nil, fmt.Errorf("windsaloftutil: reading NetCDF variable %s: %v", name, err)
	}
	switch b := buf.(type) {
	case []float32:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	case []float64:
		copy(data.Elements, b)
	default:
		return nil, fmt.Errorf("windsaloftutil: NetCDF variable %s has type %T; it must be float or double", name, buf)
	}

	ascending, err := latitudeAscends(f, f.Header.Dimensions(name)[nLead])
	if err != nil {
		return nil, err
	}
	if ascending {
		data = flipRows(data)
	}
	return mat.NewDense(ny, nx, data.Elements), nil
}

// latitudeAscends returns whether the coordinate variable for the given
// dimension exists and increases from its first to its last value.
func latitudeAscends(f *cdf.File, dim string) (bool, error) {
	lengths := f.Header.Lengths(dim)
	if len(lengths) != 1 || lengths[0] < 2 {
		return false, nil
	}
	r := f.Reader(dim, nil, nil)
	buf := r.Zero(lengths[0])
	if _, err := r.Read(buf); err != nil {
		return false, fmt.Errorf("windsaloftutil: reading NetCDF coordinate %s: %v", dim, err)
	}
	switch b := buf.(type) {
	case []float32:
		return b[len(b)-1] > b[0], nil
	case []float64:
		return b[len(b)-1] > b[0], nil
	case []int32:
		return b[len(b)-1] > b[0], nil
	case []int16:
		return b[len(b)-1] > b[0], nil
	}
	return false, nil
}

// flipRows returns a copy of the two-dimensional array d with the order
// of its rows reversed.
func flipRows(d *sparse.DenseArray) *sparse.DenseArray {
	ny, nx := d.Shape[0], d.Shape[1]
	o := sparse.ZerosDense(ny, nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			o.Set(d.Get(j, i), ny-1-j, i)
		}
	}
	return o
}

// LoadField reads the U and V wind components from the named variables in
// NetCDF files ufile and vfile, which may be the same file.
func LoadField(ufile, vfile, uvar, vvar string, layer []int) (u, v *mat.Dense, err error) {
	u, err = loadVariableFile(ufile, uvar, layer)
	if err != nil {
		return nil, nil, err
	}
	v, err = loadVariableFile(vfile, vvar, layer)
	if err != nil {
		return nil, nil, err
	}
	return u, v, nil
}

func loadVariableFile(filename, name string, layer []int) (*mat.Dense, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("windsaloftutil: opening wind file: %v", err)
	}
	defer f.Close()
	d, err := LoadVariable(f, name, layer)
	if err != nil {
		return nil, fmt.Errorf("%v (file %s)", err, filename)
	}
	return d, nil
}
