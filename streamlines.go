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

// Package windsaloft converts gridded wind fields into streamlines.
//
// The input is a pair of rasters holding the eastward (U) and northward
// (V) wind components on a global regular latitude/longitude grid. Lines
// are started at the strongest unclaimed grid cells and traced forward
// and backward through the field, and every cell a line passes through is
// claimed so that later lines keep their distance. The resulting lines
// are optionally smoothed, split at the antimeridian, and returned as
// multi-line features in degrees longitude and latitude.
package windsaloft

import (
	"errors"
	"time"

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Version gives the version number.
const Version = "0.1.0"

// ErrAlreadyRun is returned when Run is called more than once on the
// same Streamlines.
var ErrAlreadyRun = errors.New("windsaloft: streamlines have already been traced")

// Feature is a single streamline.
type Feature struct {
	// Geometry holds the line in degrees longitude (X) and latitude (Y),
	// with one part for each crossing of the antimeridian plus one.
	Geometry geom.MultiLineString

	// Properties holds attributes of the line. It always contains
	// an integer "id".
	Properties map[string]interface{}
}

// ID returns the sequential identifier of the feature.
func (f *Feature) ID() int {
	id, _ := f.Properties["id"].(int)
	return id
}

// Streamlines holds the state of one streamline conversion. It owns its
// copy of the wind field, which is modified as cells below the minimum
// value are zeroed, and the record of which cells have been claimed.
// It can be run only once and is not safe for concurrent use.
type Streamlines struct {
	cfg   Config
	field *Field
	occ   *occupancy
	ran   bool

	// Log receives progress messages. It defaults to the
	// logrus standard logger.
	Log logrus.FieldLogger
}

// New sets up a conversion of the wind field with components u and v
// using configuration cfg.
func New(u, v mat.Matrix, cfg Config) (*Streamlines, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f, err := NewField(u, v)
	if err != nil {
		return nil, err
	}
	return &Streamlines{
		cfg:   cfg,
		field: f,
		occ:   newOccupancy(f.w, f.h, cfg.PixelDist),
		Log:   logrus.StandardLogger(),
	}, nil
}

// Field returns the wind field being traced.
func (s *Streamlines) Field() *Field { return s.field }

// Run traces the streamlines. Seed cells are tried in order of
// descending wind speed; each one that is far enough from existing
// lines and yields a long enough line produces a feature. Features are
// numbered in the order they are produced, starting at zero.
func (s *Streamlines) Run() ([]*Feature, error) {
	if s.ran {
		return nil, ErrAlreadyRun
	}
	s.ran = true
	start := time.Now()

	seeds := newSeedIterator(s.field, s.cfg.minValueSquared())
	nSeeds := seeds.len()
	t := &tracer{
		f:             s.field,
		occ:           s.occ,
		zigzagDegrees: s.cfg.ZigzagDegrees,
		minLength:     s.cfg.MinLength,
	}

	var features []*Feature
	tried := 0
	for c, ok := seeds.next(); ok; c, ok = seeds.next() {
		if !s.occ.isFree(c.x, c.y) {
			continue
		}
		tried++
		line := t.trace(c.x, c.y)
		if line == nil {
			continue
		}
		line = SmoothLine(line, s.cfg.Smooth)
		id := len(features)
		features = append(features, &Feature{
			Geometry:   s.field.SplitAntimeridian(line),
			Properties: map[string]interface{}{"id": id},
		})
		s.Log.WithFields(logrus.Fields{
			"id":     id,
			"seed_x": c.x,
			"seed_y": c.y,
			"points": len(line),
		}).Debug("windsaloft: traced streamline")
	}

	s.Log.WithFields(logrus.Fields{
		"seeds":    nSeeds,
		"traced":   tried,
		"features": len(features),
		"duration": time.Since(start).String(),
	}).Info("windsaloft: streamlines complete")
	return features, nil
}

// JetStreams traces the streamlines of the wind field with components
// u and v using configuration cfg.
func JetStreams(u, v mat.Matrix, cfg Config) ([]*Feature, error) {
	s, err := New(u, v, cfg)
	if err != nil {
		return nil, err
	}
	return s.Run()
}
