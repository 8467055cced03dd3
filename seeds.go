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
	"math"
	"sort"
)

// cell is an integer grid location.
type cell struct {
	x, y int
}

// seedIterator yields candidate seed cells in order of descending
// squared vector magnitude. It can only be consumed once.
type seedIterator struct {
	cells []cell
	pos   int
}

// newSeedIterator ranks every cell of f by u²+v². Cells whose squared
// magnitude is below minValueSq are set to zero in f and left out.
// Cells are grouped by their rounded squared magnitude; groups are
// visited from strongest to weakest and cells within a group in
// row-major order.
func newSeedIterator(f *Field, minValueSq float64) *seedIterator {
	groups := make(map[float64][]cell)
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			u, v := f.U.At(y, x), f.V.At(y, x)
			m := u*u + v*v
			if m < minValueSq {
				f.U.Set(y, x, 0)
				f.V.Set(y, x, 0)
				continue
			}
			if math.IsNaN(m) {
				continue
			}
			k := math.RoundToEven(m)
			groups[k] = append(groups[k], cell{x: x, y: y})
		}
	}
	keys := make([]float64, 0, len(groups))
	n := 0
	for k, g := range groups {
		keys = append(keys, k)
		n += len(g)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(keys)))

	it := &seedIterator{cells: make([]cell, 0, n)}
	for _, k := range keys {
		it.cells = append(it.cells, groups[k]...)
	}
	return it
}

// next returns the next seed cell, or false when the cells are
// exhausted.
func (it *seedIterator) next() (cell, bool) {
	if it.pos >= len(it.cells) {
		return cell{}, false
	}
	c := it.cells[it.pos]
	it.pos++
	return c, true
}

// len returns the number of cells that have not been visited yet.
func (it *seedIterator) len() int { return len(it.cells) - it.pos }
