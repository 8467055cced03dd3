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

import "github.com/ctessum/geom"

// SmoothLine applies n iterations of Chaikin's corner-cutting algorithm
// to l and returns the result. Every segment is replaced by points at
// one quarter and three quarters of its length, and the end points of l
// are kept, so each iteration turns a line of k points into one of 2k
// points. l itself is not modified. Lines with fewer than two points
// are returned as they are.
func SmoothLine(l geom.LineString, n int) geom.LineString {
	if len(l) < 2 {
		return l
	}
	first, last := l[0], l[len(l)-1]
	for iter := 0; iter < n; iter++ {
		s := make(geom.LineString, 0, 2*len(l))
		s = append(s, first)
		for i := 1; i < len(l); i++ {
			p0, p1 := l[i-1], l[i]
			s = append(s,
				geom.Point{X: 0.75*p0.X + 0.25*p1.X, Y: 0.75*p0.Y + 0.25*p1.Y},
				geom.Point{X: 0.25*p0.X + 0.75*p1.X, Y: 0.25*p0.Y + 0.75*p1.Y},
			)
		}
		l = append(s, last)
	}
	return l
}
