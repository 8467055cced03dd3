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

// occupancy records which grid cells have already been claimed by a
// drawn line. Cells are never released during a run.
type occupancy struct {
	w, h int

	// dist is the radius of the square that must be unclaimed
	// around a new seed.
	dist int

	used []bool
}

func newOccupancy(w, h, dist int) *occupancy {
	return &occupancy{
		w:    w,
		h:    h,
		dist: dist,
		used: make([]bool, w*h),
	}
}

// isOutside returns whether (x, y) lies outside of the grid.
func (o *occupancy) isOutside(x, y int) bool {
	return x < 0 || x >= o.w || y < 0 || y >= o.h
}

// isFree returns whether (x, y) is inside the grid and no cell
// within dist of it has been claimed.
func (o *occupancy) isFree(x0, y0 int) bool {
	if o.isOutside(x0, y0) {
		return false
	}
	xLo, xHi := max(x0-o.dist, 0), min(x0+o.dist, o.w-1)
	yLo, yHi := max(y0-o.dist, 0), min(y0+o.dist, o.h-1)
	for y := yLo; y <= yHi; y++ {
		for x := xLo; x <= xHi; x++ {
			if o.used[y*o.w+x] {
				return false
			}
		}
	}
	return true
}

// claimed returns whether cell (x, y) has been claimed. (x, y) must be
// inside the grid.
func (o *occupancy) claimed(x, y int) bool {
	return o.used[y*o.w+x]
}

// claim marks cell (x, y) as used.
func (o *occupancy) claim(x, y int) {
	o.used[y*o.w+x] = true
}
