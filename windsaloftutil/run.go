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
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/windsaloft"
	"github.com/spatialmodel/windsaloft/internal/hash"
)

// Inputs specifies where the wind components are read from.
type Inputs struct {
	// UFile and VFile are the NetCDF files holding the eastward and
	// northward wind components. They may be local paths, URLs, or
	// blob storage locations, and may be the same file.
	UFile, VFile string

	// UVariable and VVariable are the names of the wind component
	// variables.
	UVariable, VVariable string

	// Layer holds the indices of the leading dimensions of the
	// variables to read.
	Layer []int
}

// runKey identifies the settings of one run.
type runKey struct {
	Inputs
	Config windsaloft.Config
}

// Streamlines reads the wind field described by in, traces its
// streamlines using cfg, and writes them to outputFile with coordinates
// rounded to precision decimal places. The output format is chosen by the
// file extension.
func Streamlines(ctx context.Context, log logrus.FieldLogger, in Inputs, outputFile string, cfg windsaloft.Config, precision int) error {
	start := time.Now()
	format, err := outputFormat(outputFile)
	if err != nil {
		return err
	}
	log = log.WithFields(logrus.Fields{
		"run":    hash.Hash(runKey{Inputs: in, Config: cfg}),
		"ufile":  in.UFile,
		"vfile":  in.VFile,
		"output": outputFile,
	})

	ufile, err := maybeDownload(ctx, in.UFile, log)
	if err != nil {
		return err
	}
	vfile := ufile
	if in.VFile != in.UFile {
		if vfile, err = maybeDownload(ctx, in.VFile, log); err != nil {
			return err
		}
	}
	u, v, err := LoadField(ufile, vfile, in.UVariable, in.VVariable, in.Layer)
	if err != nil {
		return err
	}
	h, w := u.Dims()
	log.WithFields(logrus.Fields{"rows": h, "columns": w}).Info("windsaloftutil: loaded wind field")

	s, err := windsaloft.New(u, v, cfg)
	if err != nil {
		return err
	}
	s.Log = log
	features, err := s.Run()
	if err != nil {
		return err
	}

	up := new(uploader)
	local := up.maybeUpload(outputFile)
	if up.err != nil {
		return fmt.Errorf("windsaloftutil: preparing output upload: %v", up.err)
	}
	if err = writeFeatures(local, format, features, precision); err != nil {
		return err
	}
	if err = up.uploadOutput(ctx); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"features": len(features),
		"duration": time.Since(start).String(),
	}).Info("windsaloftutil: wrote streamlines")
	return nil
}

func writeFeatures(fname, format string, features []*windsaloft.Feature, precision int) error {
	if format == formatShapefile {
		return windsaloft.WriteShapefile(fname, features)
	}
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("windsaloftutil: creating output file: %v", err)
	}
	if err = windsaloft.WriteGeoJSON(f, features, precision); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("windsaloftutil: closing output file: %v", err)
	}
	return nil
}
