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

package windsaloftutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/windsaloft"
	"github.com/spf13/cast"
)

// Output formats.
const (
	formatGeoJSON   = "geojson"
	formatShapefile = "shapefile"
)

// EngineConfig returns the streamline tracing settings held in cfg.
func EngineConfig(cfg *viper.Viper) (windsaloft.Config, error) {
	var c windsaloft.Config
	var err error
	ints := []struct {
		name string
		dst  *int
	}{
		{"PixelDist", &c.PixelDist},
		{"Smooth", &c.Smooth},
		{"MinLength", &c.MinLength},
	}
	for _, v := range ints {
		if *v.dst, err = cast.ToIntE(cfg.Get(v.name)); err != nil {
			return c, fmt.Errorf("windsaloftutil: parsing %s: %v", v.name, err)
		}
	}
	floats := []struct {
		name string
		dst  *float64
	}{
		{"ZigzagDegrees", &c.ZigzagDegrees},
		{"MinValue", &c.MinValue},
	}
	for _, v := range floats {
		if *v.dst, err = cast.ToFloat64E(cfg.Get(v.name)); err != nil {
			return c, fmt.Errorf("windsaloftutil: parsing %s: %v", v.name, err)
		}
	}
	if err = c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// toIntSliceE converts s to a slice of integers. s may come from a
// configuration file, in which case it is a list, or from a command-line
// flag, in which case it is a JSON-formatted string.
func toIntSliceE(s interface{}) ([]int, error) {
	switch v := s.(type) {
	case nil:
		return nil, nil
	case []int:
		return v, nil
	case []interface{}:
		o := make([]int, len(v))
		for i, val := range v {
			var err error
			if o[i], err = cast.ToIntE(val); err != nil {
				return nil, err
			}
		}
		return o, nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, nil
		}
		var o []int
		if err := json.Unmarshal([]byte(v), &o); err != nil {
			return nil, err
		}
		return o, nil
	}
	return cast.ToIntSliceE(s)
}

// checkInputFile makes sure that an input file is specified and
// expands any environment variables in it.
func checkInputFile(name, f string) (string, error) {
	f = os.ExpandEnv(strings.TrimSpace(f))
	if f == "" {
		return "", fmt.Errorf("windsaloftutil: you need to specify the %s configuration variable (for example: %s=\"wind.nc\")", name, name)
	}
	return f, nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expand any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`windsaloftutil: you need to specify an output file configuration variable (for example: OutputFile="streamlines.geojson")`)
	}
	f = os.ExpandEnv(f)
	if _, err := outputFormat(f); err != nil {
		return f, err
	}
	if IsBlob(f) {
		provider, bucketName, _, err := splitBlobURL(f)
		if err != nil {
			return f, err
		}
		b, err := OpenBucket(context.TODO(), provider, bucketName)
		if err != nil {
			return f, fmt.Errorf("windsaloftutil: error when checking OutputFile location: %v", err)
		}
		b.Close()
		return f, nil
	}
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("windsaloftutil: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// outputFormat determines the output format from the file extension.
func outputFormat(f string) (string, error) {
	switch strings.ToLower(filepath.Ext(f)) {
	case ".geojson", ".json":
		return formatGeoJSON, nil
	case ".shp":
		return formatShapefile, nil
	default:
		return "", fmt.Errorf("windsaloftutil: OutputFile '%s' must have a .geojson, .json, or .shp extension", f)
	}
}

// newLogger creates a logger writing to w at the given level.
func newLogger(level string, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("windsaloftutil: invalid LogLevel: %v", err)
	}
	log := logrus.New()
	log.Out = w
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	log.Level = lvl
	return log, nil
}
