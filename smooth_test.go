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
	"reflect"
	"testing"

	"github.com/ctessum/geom"
)

func TestSmoothLine(t *testing.T) {
	l := geom.LineString{{X: 1, Y: 0}, {X: 2, Y: 10}}
	have := SmoothLine(l, 1)
	want := geom.LineString{{X: 1, Y: 0}, {X: 1.25, Y: 2.5}, {X: 1.75, Y: 7.5}, {X: 2, Y: 10}}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}
	if !reflect.DeepEqual(l, geom.LineString{{X: 1, Y: 0}, {X: 2, Y: 10}}) {
		t.Errorf("input was modified: %v", l)
	}
}

func TestSmoothLineIdentity(t *testing.T) {
	l := geom.LineString{{X: 0, Y: 0}, {X: 3, Y: 1}, {X: 4, Y: 5}}
	if have := SmoothLine(l, 0); !reflect.DeepEqual(have, l) {
		t.Errorf("have %v, want %v", have, l)
	}
	single := geom.LineString{{X: 7, Y: 8}}
	if have := SmoothLine(single, 3); !reflect.DeepEqual(have, single) {
		t.Errorf("have %v, want %v", have, single)
	}
	if have := SmoothLine(nil, 3); have != nil {
		t.Errorf("have %v, want nil", have)
	}
}

func TestSmoothLineLength(t *testing.T) {
	l := geom.LineString{{X: 0, Y: 0}, {X: 3, Y: 1}, {X: 4, Y: 5}, {X: -2, Y: 6.5}}
	for n, want := range []int{4, 8, 16, 32} {
		s := SmoothLine(l, n)
		if len(s) != want {
			t.Errorf("%d iterations: have %d points, want %d", n, len(s), want)
		}
		if s[0] != l[0] || s[len(s)-1] != l[len(l)-1] {
			t.Errorf("%d iterations: end points moved: have %v and %v", n, s[0], s[len(s)-1])
		}
	}
}
