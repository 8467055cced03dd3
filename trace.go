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

	"github.com/ctessum/geom"
)

// Trace directions.
const (
	forward  = 1.
	backward = -1.
)

// tracer follows the field from seed cells, claiming every cell it
// passes through.
type tracer struct {
	f   *Field
	occ *occupancy

	zigzagDegrees float64
	minLength     int
}

// trace follows the field forward and backward from seed (x0, y0) and
// returns the resulting line in pixel coordinates, or nil if no
// acceptable line could be drawn.
//
// Each direction stops when it leaves the grid through a pole, runs
// into a claimed cell, turns by more than zigzagDegrees in one step, or
// reaches a calm point. A calm point claims the seed even when the
// line is later rejected, so that the seed is not tried again.
func (t *tracer) trace(x0, y0 int) geom.LineString {
	if t.occ.isOutside(x0, y0) || t.occ.claimed(x0, y0) {
		return nil
	}

	// Points found going backward are collected in reverse order.
	var fwd, back []geom.Point
	found := false
	for _, dir := range []float64{forward, backward} {
		x, y := float64(x0), float64(y0)
		var prevDir float64
		havePrev := false
		for {
			u, v := t.f.Value(x+t.f.shift(x), y)
			if u == 0 && v == 0 {
				t.occ.claim(x0, y0)
				break
			}
			if math.IsNaN(u) || math.IsNaN(v) {
				break
			}

			// The field is positive northward but rows increase
			// southward.
			x += u * dir
			y += -v * dir

			xr, yr := math.RoundToEven(x), math.RoundToEven(y)
			xr += t.f.shift(xr)
			ix, iy := int(xr), int(yr)
			if iy < 0 || iy >= t.f.h || t.occ.claimed(ix, iy) {
				break
			}

			currDir := math.RoundToEven(math.Atan2(u, v) * (180 / math.Pi))
			if havePrev {
				d := math.Abs(prevDir - currDir)
				d = math.Min(d, math.Abs(360-d))
				if d > t.zigzagDegrees {
					break
				}
			}
			prevDir, havePrev = currDir, true

			if dir == forward {
				fwd = append(fwd, geom.Point{X: x, Y: y})
			} else {
				back = append(back, geom.Point{X: x, Y: y})
			}
			found = true
			t.occ.claim(ix, iy)
		}
	}

	n := len(back) + 1 + len(fwd)
	if !found || n <= t.minLength {
		return nil
	}
	t.occ.claim(x0, y0)

	line := make(geom.LineString, 0, n)
	for i := len(back) - 1; i >= 0; i-- {
		line = append(line, back[i])
	}
	line = append(line, geom.Point{X: float64(x0), Y: float64(y0)})
	return append(line, fwd...)
}
