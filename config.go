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
	"fmt"
)

// ErrInvalidConfig is returned when a run configuration holds
// out-of-range values.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings for one streamline conversion. The zero
// value is not useful; start from DefaultConfig.
type Config struct {
	// PixelDist is the radius, in grid cells, of the square around a
	// seed cell that must be free of previously drawn lines.
	PixelDist int

	// Smooth is the number of Chaikin smoothing iterations applied
	// to each line.
	Smooth int

	// ZigzagDegrees is the maximum change in heading, in degrees,
	// allowed between two consecutive steps of a line.
	ZigzagDegrees float64

	// MinLength is the number of points a line must exceed to be kept.
	MinLength int

	// MinValue is the minimum vector magnitude for a cell to be
	// used as a seed. Cells below it are treated as calm.
	MinValue float64
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() Config {
	return Config{
		PixelDist:     5,
		Smooth:        0,
		ZigzagDegrees: 30,
		MinLength:     30,
		MinValue:      0,
	}
}

// Validate checks that all settings are within their allowed ranges.
func (c Config) Validate() error {
	switch {
	case c.PixelDist < 0:
		return fmt.Errorf("windsaloft: %w: PixelDist must be >= 0 but is %d", ErrInvalidConfig, c.PixelDist)
	case c.Smooth < 0:
		return fmt.Errorf("windsaloft: %w: Smooth must be >= 0 but is %d", ErrInvalidConfig, c.Smooth)
	case !(c.ZigzagDegrees >= 0):
		return fmt.Errorf("windsaloft: %w: ZigzagDegrees must be >= 0 but is %g", ErrInvalidConfig, c.ZigzagDegrees)
	case c.MinLength < 0:
		return fmt.Errorf("windsaloft: %w: MinLength must be >= 0 but is %d", ErrInvalidConfig, c.MinLength)
	case !(c.MinValue >= 0):
		return fmt.Errorf("windsaloft: %w: MinValue must be >= 0 but is %g", ErrInvalidConfig, c.MinValue)
	}
	return nil
}

// minValueSquared is the squared magnitude threshold for seeding.
func (c Config) minValueSquared() float64 { return c.MinValue * c.MinValue }
