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

	"github.com/lnashier/viper"
	"github.com/spatialmodel/windsaloft"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	def := windsaloft.DefaultConfig()

	// Options are the configuration options available to Windsaloft.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "UFile",
			usage: `
              UFile is the path to the NetCDF file holding the eastward
              wind component. It can be a local file, an http(s) URL, or
              a blob storage location (gs://, s3://, or file://).`,
			shorthand:  "u",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{streamlinesCmd.Flags()},
		},
		{
			name: "VFile",
			usage: `
              VFile is the path to the NetCDF file holding the northward
              wind component. If it is not specified, UFile is used.`,
			shorthand:  "v",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{streamlinesCmd.Flags()},
		},
		{
			name: "UVariable",
			usage: `
              UVariable is the name of the eastward wind variable.`,
			defaultVal: "u",
			flagsets:   []*pflag.FlagSet{streamlinesCmd.Flags()},
		},
		{
			name: "VVariable",
			usage: `
              VVariable is the name of the northward wind variable.`,
			defaultVal: "v",
			flagsets:   []*pflag.FlagSet{streamlinesCmd.Flags()},
		},
		{
			name: "Layer",
			usage: `
              Layer specifies the indices of the dimensions in front of
              latitude and longitude (for example time and pressure level)
              of the wind field to use. Missing indices are set to 0.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{streamlinesCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile specifies the path to the desired output file.
              The format is determined by the extension: .geojson or .json
              for GeoJSON and .shp for a shapefile. Blob storage locations
              are also accepted.`,
			shorthand:  "o",
			defaultVal: "streamlines.geojson",
			flagsets:   []*pflag.FlagSet{streamlinesCmd.Flags()},
		},
		{
			name: "PixelDist",
			usage: `
              PixelDist is the distance, in grid cells, that a new line
              must keep from existing lines at its starting point.`,
			defaultVal: def.PixelDist,
			flagsets:   []*pflag.FlagSet{streamlinesCmd.Flags()},
		},
		{
			name: "Smooth",
			usage: `
              Smooth is the number of Chaikin smoothing iterations applied
              to each line.`,
			defaultVal: def.Smooth,
			flagsets:   []*pflag.FlagSet{streamlinesCmd.Flags()},
		},
		{
			name: "ZigzagDegrees",
			usage: `
              ZigzagDegrees is the largest change in direction, in degrees,
              allowed between two steps of a line.`,
			defaultVal: def.ZigzagDegrees,
			flagsets:   []*pflag.FlagSet{streamlinesCmd.Flags()},
		},
		{
			name: "MinLength",
			usage: `
              MinLength is the number of points a line must exceed to be
              kept.`,
			defaultVal: def.MinLength,
			flagsets:   []*pflag.FlagSet{streamlinesCmd.Flags()},
		},
		{
			name: "MinValue",
			usage: `
              MinValue is the smallest wind speed at which a line can
              start. Slower cells are treated as calm.`,
			defaultVal: def.MinValue,
			flagsets:   []*pflag.FlagSet{streamlinesCmd.Flags()},
		},
		{
			name: "Precision",
			usage: `
              Precision is the number of decimal places kept in GeoJSON
              coordinates. A negative value keeps full precision.`,
			defaultVal: windsaloft.DefaultPrecision,
			flagsets:   []*pflag.FlagSet{streamlinesCmd.Flags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the level of log messages to print: one of
              trace, debug, info, warning, error, fatal, or panic.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("WINDSALOFT")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(streamlinesCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("windsaloft: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "windsaloft",
	Short: "Turn gridded wind fields into streamlines.",
	Long: `Windsaloft traces streamlines through global gridded wind fields, such as
jet stream level winds from a weather model, and writes them as lines of
longitude and latitude. Use the subcommands specified below to access the
functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'WINDSALOFT_var' where 'var' is the
name of the variable to be set. File paths are allowed to contain environment
variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Windsaloft.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Windsaloft v%s\n", windsaloft.Version)
	},
	DisableAutoGenTag: true,
}

var streamlinesCmd = &cobra.Command{
	Use:   "streamlines",
	Short: "Trace the streamlines of a wind field.",
	Long: `streamlines reads the eastward and northward wind components from NetCDF
files, traces streamlines through the field starting from the fastest winds,
and writes the lines to a GeoJSON file or shapefile. The last two dimensions
of the wind variables must be latitude and longitude on a global regular grid,
with the longitude spanning 360 degrees.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(Cfg.GetString("LogLevel"), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		in, err := inputs(Cfg.GetString("UFile"), Cfg.GetString("VFile"))
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		cfg, err := EngineConfig(Cfg)
		if err != nil {
			return err
		}
		precision, err := cast.ToIntE(Cfg.Get("Precision"))
		if err != nil {
			return fmt.Errorf("windsaloftutil: parsing Precision: %v", err)
		}
		return Streamlines(context.Background(), log, in, outputFile, cfg, precision)
	},
	DisableAutoGenTag: true,
}

// inputs collects the input settings from Cfg.
func inputs(ufile, vfile string) (Inputs, error) {
	var in Inputs
	var err error
	if in.UFile, err = checkInputFile("UFile", ufile); err != nil {
		return in, err
	}
	if vfile == "" {
		in.VFile = in.UFile
	} else if in.VFile, err = checkInputFile("VFile", vfile); err != nil {
		return in, err
	}
	in.UVariable = Cfg.GetString("UVariable")
	in.VVariable = Cfg.GetString("VVariable")
	if in.Layer, err = toIntSliceE(Cfg.Get("Layer")); err != nil {
		return in, fmt.Errorf("windsaloftutil: parsing Layer: %v", err)
	}
	return in, nil
}
