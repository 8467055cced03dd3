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
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DefaultPrecision is the default number of decimal places kept in
// output coordinates.
const DefaultPrecision = 6

// wgs84 is the spatial reference of output shapefiles.
const wgs84 = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["Degree",0.017453292519943295]]`

// FeatureCollection converts features to a GeoJSON feature collection with
// coordinates rounded to precision decimal places. A negative precision
// leaves the coordinates as they are.
func FeatureCollection(features []*Feature, precision int) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		gf := geojson.NewFeature(toOrb(f.Geometry, precision))
		for k, v := range f.Properties {
			gf.Properties[k] = v
		}
		fc.Append(gf)
	}
	return fc
}

// WriteGeoJSON writes features to w as a GeoJSON feature collection.
func WriteGeoJSON(w io.Writer, features []*Feature, precision int) error {
	b, err := json.Marshal(FeatureCollection(features, precision))
	if err != nil {
		return fmt.Errorf("windsaloft: encoding GeoJSON: %v", err)
	}
	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("windsaloft: writing GeoJSON: %v", err)
	}
	return nil
}

// lineRecord is a shapefile row.
type lineRecord struct {
	geom.MultiLineString
	ID int
}

// WriteShapefile writes features to a polyline shapefile at filename,
// with each feature's id as an attribute. A WGS84 projection file is
// written alongside it.
func WriteShapefile(filename string, features []*Feature) error {
	e, err := shp.NewEncoder(filename, lineRecord{})
	if err != nil {
		return fmt.Errorf("windsaloft: creating shapefile: %v", err)
	}
	for _, f := range features {
		if err = e.Encode(lineRecord{MultiLineString: f.Geometry, ID: f.ID()}); err != nil {
			e.Close()
			return fmt.Errorf("windsaloft: writing shapefile feature %d: %v", f.ID(), err)
		}
	}
	e.Close()

	prj := strings.TrimSuffix(filename, ".shp") + ".prj"
	if err = os.WriteFile(prj, []byte(wgs84), 0644); err != nil {
		return fmt.Errorf("windsaloft: writing shapefile projection: %v", err)
	}
	return nil
}

// toOrb converts g to an orb geometry, rounding the coordinates.
func toOrb(g geom.MultiLineString, precision int) orb.MultiLineString {
	o := make(orb.MultiLineString, len(g))
	for i, l := range g {
		o[i] = make(orb.LineString, len(l))
		for j, p := range l {
			o[i][j] = orb.Point{round(p.X, precision), round(p.Y, precision)}
		}
	}
	return o
}

func round(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	s := math.Pow(10, float64(precision))
	return math.RoundToEven(v*s) / s
}
