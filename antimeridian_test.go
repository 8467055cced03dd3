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
	"github.com/kr/pretty"
)

func TestSplitAntimeridian(t *testing.T) {
	// 90° per pixel in both directions.
	f := constantField(t, 3, 4, 1, 0)

	for _, test := range []struct {
		name string
		l    geom.LineString
		want geom.MultiLineString
	}{
		{
			name: "no crossing",
			l:    geom.LineString{{X: 1, Y: 0}, {X: 2, Y: 1}},
			want: geom.MultiLineString{{{X: -90, Y: 90}, {X: 0, Y: 0}}},
		},
		{
			name: "eastward",
			l:    geom.LineString{{X: 3, Y: 1}, {X: 5, Y: 2}},
			want: geom.MultiLineString{
				{{X: 90, Y: 0}, {X: 180, Y: -45}},
				{{X: -180, Y: -45}, {X: -90, Y: -90}},
			},
		},
		{
			name: "westward",
			l:    geom.LineString{{X: 0.5, Y: 1}, {X: -1.5, Y: 2}},
			want: geom.MultiLineString{
				{{X: -135, Y: 0}, {X: -180, Y: -22.5}},
				{{X: 180, Y: -22.5}, {X: 45, Y: -90}},
			},
		},
		{
			name: "there and back",
			l:    geom.LineString{{X: 3, Y: 0}, {X: 5, Y: 0}, {X: 3, Y: 0}},
			want: geom.MultiLineString{
				{{X: 90, Y: 90}, {X: 180, Y: 90}},
				{{X: -180, Y: 90}, {X: -90, Y: 90}, {X: -180, Y: 90}},
				{{X: 180, Y: 90}, {X: 90, Y: 90}},
			},
		},
		{
			name: "empty",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			have := f.SplitAntimeridian(test.l)
			if !reflect.DeepEqual(have, test.want) {
				t.Errorf("have %v, want %v", have, test.want)
				t.Log(pretty.Diff(have, test.want))
			}
		})
	}
}

// Lines traced across the edge of the grid come back as more than one
// part, with the parts meeting at ±180°.
func TestSplitAntimeridianTrace(t *testing.T) {
	f := constantField(t, 5, 8, 1, 0)
	tr := newTracer(f, 30, 3)
	ml := f.SplitAntimeridian(tr.trace(2, 2))
	if len(ml) != 2 {
		t.Fatalf("have %d parts, want 2", len(ml))
	}
	end, start := ml[0][len(ml[0])-1], ml[1][0]
	if end.X != 180 || start.X != -180 || end.Y != start.Y {
		t.Errorf("parts should meet at the antimeridian: have %v and %v", end, start)
	}
	want := geom.MultiLineString{
		{{X: -90, Y: 0}, {X: -45, Y: 0}, {X: 0, Y: 0}, {X: 45, Y: 0}, {X: 90, Y: 0}, {X: 135, Y: 0}, {X: 180, Y: 0}},
		{{X: -180, Y: 0}, {X: -180, Y: 0}, {X: -135, Y: 0}, {X: -90, Y: 0}},
	}
	if !reflect.DeepEqual(ml, want) {
		t.Errorf("have %v, want %v", ml, want)
	}
}
