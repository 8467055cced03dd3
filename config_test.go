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
	"math"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		name string
		cfg  func(*Config)
	}{
		{name: "PixelDist", cfg: func(c *Config) { c.PixelDist = -1 }},
		{name: "Smooth", cfg: func(c *Config) { c.Smooth = -2 }},
		{name: "ZigzagDegrees", cfg: func(c *Config) { c.ZigzagDegrees = -0.5 }},
		{name: "ZigzagDegreesNaN", cfg: func(c *Config) { c.ZigzagDegrees = math.NaN() }},
		{name: "MinLength", cfg: func(c *Config) { c.MinLength = -30 }},
		{name: "MinValue", cfg: func(c *Config) { c.MinValue = -1 }},
	} {
		t.Run(test.name, func(t *testing.T) {
			c := DefaultConfig()
			test.cfg(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("have error %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}
