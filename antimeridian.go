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

// SplitAntimeridian converts line l from pixel coordinates to degrees
// longitude and latitude, splitting it into separate parts wherever it
// crosses the ±180° meridian. Pixel x coordinates outside of [0, W) are
// wrapped back onto the grid. At each crossing the current part ends on
// the meridian and the next part starts on the opposite side of it at
// the same latitude.
func (f *Field) SplitAntimeridian(l geom.LineString) geom.MultiLineString {
	if len(l) == 0 {
		return nil
	}
	w := float64(f.w)

	prev := l[0]
	sp := f.shift(prev.X)
	parts := geom.MultiLineString{{f.point(prev.X+sp, prev.Y)}}
	for _, p := range l[1:] {
		sn := f.shift(p.X)
		if sn != sp {
			yi := f.crossingY(prev, p)
			west, east := f.point(0, yi), f.point(w, yi)
			cur := len(parts) - 1
			if p.X > prev.X {
				parts[cur] = append(parts[cur], east)
				parts = append(parts, geom.LineString{west})
			} else {
				parts[cur] = append(parts[cur], west)
				parts = append(parts, geom.LineString{east})
			}
			sp = sn
		}
		prev = p
		cur := len(parts) - 1
		parts[cur] = append(parts[cur], f.point(p.X+sn, p.Y))
	}
	return parts
}

// crossingY returns the pixel y coordinate at which the segment from
// p0 to p1 crosses the edge of the grid.
func (f *Field) crossingY(p0, p1 geom.Point) float64 {
	w := float64(f.w)
	// delta is the x distance from p0 to the edge being crossed.
	delta := floorMod(p0.X, w)
	if p1.X > p0.X {
		delta = w - delta
	}
	return p0.Y + (p1.Y-p0.Y)/math.Abs(p1.X-p0.X)*delta
}

// point returns pixel location (x, y) as a longitude/latitude point.
func (f *Field) point(x, y float64) geom.Point {
	lon, lat := f.lonLat(x, y)
	return geom.Point{X: lon, Y: lat}
}
