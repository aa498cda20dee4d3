/*
Copyright © 2026 the lagrangian authors.
This file is part of lagrangian.

lagrangian is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

lagrangian is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with lagrangian.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/BurntSushi/toml"
)

// ConfigData holds a map run's configuration: the time span and resolution
// of the integration, the output grid, and the paths to the velocity-field
// data. The field itself is described in a separate file, in the bespoke
// parameter format (see parameter.go), since it may list an arbitrary
// number of dated NetCDF files per velocity component.
type ConfigData struct {
	// Mode selects "fsle" or "ftle".
	Mode string

	// StartTime and EndTime bound the integration, as POSIX epoch seconds.
	StartTime float64
	EndTime   float64

	// TimeStep is the Runge-Kutta step size, in seconds.
	TimeStep float64

	// Stencil selects "triplet" or "quintuplet".
	Stencil string

	// Delta is the initial stencil half-width, in degrees.
	Delta float64

	// MinSeparation is the FSLE separation threshold, in degrees. Unused
	// in FTLE mode.
	MinSeparation float64

	// SphericalEquatorial selects spherical-equatorial transport; false
	// selects plane Cartesian transport.
	SphericalEquatorial bool

	// Grid describes the output lon/lat grid.
	Grid struct {
		NX, NY     int
		XMin, YMin float64
		Step       float64
	}

	// VelocityConfig is the path to a parameter file (see parameter.go)
	// describing both velocity components: repeated "U"/"V" keys list
	// each component's dated NetCDF files, and "U_NAME"/"V_NAME" name the
	// variable to read from them. "FILL_VALUE" is optional. Can include
	// environment variables.
	VelocityConfig string

	// VelocityUnit is the unit to convert the velocity variable to after
	// reading, or "" to use the file's own unit. Usually "m/s". Only an
	// identical unit string or a degree/radian pair converts; any other
	// pair of differing units is an ErrUnitError.
	VelocityUnit string

	// MaskVariable is the name of the NetCDF variable read from MaskFile.
	MaskVariable string

	// MaskFile, if set, is a NetCDF file whose MaskVariable values are
	// read once at the start time to mask land/undefined cells out of the
	// computation (a NaN value masks the cell). Can include environment
	// variables.
	MaskFile string

	// PoolSize is the number of GridReader slots kept open per velocity
	// component's TimeSeries. Must be at least 2.
	PoolSize int

	// NumWorkers is the number of goroutines used to advect cells in
	// parallel. 0 means use GOMAXPROCS.
	NumWorkers int

	// OutputFile is the path to the result file this run writes. Can
	// include environment variables.
	OutputFile string

	// Verbose turns on step-by-step progress logging.
	Verbose bool
}

// ReadConfigFile reads and parses a TOML run configuration file.
func ReadConfigFile(filename string) (*ConfigData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("the configuration file you have specified, %v, does not "+
			"appear to exist. Please check the file name and location and try again", filename)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	contents, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("problem reading configuration file: %v", err)
	}

	config := new(ConfigData)
	if _, err := toml.Decode(string(contents), config); err != nil {
		return nil, fmt.Errorf("there has been an error parsing the configuration file: %v", err)
	}

	config.VelocityConfig = os.ExpandEnv(config.VelocityConfig)
	config.MaskFile = os.ExpandEnv(config.MaskFile)
	config.OutputFile = os.ExpandEnv(config.OutputFile)

	if config.PoolSize == 0 {
		config.PoolSize = 2
	}
	return config, nil
}
