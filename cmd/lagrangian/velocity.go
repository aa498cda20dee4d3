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
	"fmt"
	"strings"

	"github.com/oceanlab/lagrangian"
)

// velocityConfig is a TimeSeriesField's parsed backing configuration: the
// dated file lists and variable names of its u and v components, read from
// the "U"/"V"/"U_NAME"/"V_NAME"/"FILL_VALUE" keys of a single parameter
// file. This mirrors the original engine's field::TimeSerie constructor,
// which builds both component TimeSeries from one shared Parameter object
// rather than one file per component.
type velocityConfig struct {
	uFiles, vFiles map[float64]string
	uName, vName   string
	fillValue      float64
}

// readVelocityConfig loads path and extracts a velocityConfig. U and V are
// repeated keys, one value per entry, each value holding a date and a
// NetCDF path separated by whitespace:
//
//	U = 2016-01-01 00:00:00  /data/u_20160101.nc
//	U = 2016-01-02 00:00:00  /data/u_20160102.nc
//	V = 2016-01-01 00:00:00  /data/v_20160101.nc
//	U_NAME = eastward_sea_water_velocity
//	V_NAME = northward_sea_water_velocity
func readVelocityConfig(path string) (*velocityConfig, error) {
	p := lagrangian.NewParameter()
	if err := p.Load(path); err != nil {
		return nil, err
	}

	uFiles, err := readFileList(p, "U", path)
	if err != nil {
		return nil, err
	}
	vFiles, err := readFileList(p, "V", path)
	if err != nil {
		return nil, err
	}

	uName, ok := p.Value("U_NAME")
	if !ok {
		return nil, fmt.Errorf("lagrangian: %s: missing required key U_NAME", path)
	}
	vName, ok := p.Value("V_NAME")
	if !ok {
		return nil, fmt.Errorf("lagrangian: %s: missing required key V_NAME", path)
	}

	fillValue := 0.0
	if p.Exists("FILL_VALUE") {
		fillValue, err = p.Float64("FILL_VALUE")
		if err != nil {
			return nil, fmt.Errorf("lagrangian: %s: %w", path, err)
		}
	}

	return &velocityConfig{uFiles: uFiles, vFiles: vFiles, uName: uName, vName: vName, fillValue: fillValue}, nil
}

// readFileList extracts the {date: path} map out of key's repeated entries.
func readFileList(p *lagrangian.Parameter, key, path string) (map[float64]string, error) {
	entries := p.Values(key)
	if len(entries) == 0 {
		return nil, fmt.Errorf("lagrangian: %s: no %q entries found", path, key)
	}

	files := make(map[float64]string, len(entries))
	for _, entry := range entries {
		date, name, ok := splitDateAndPath(entry)
		if !ok {
			return nil, fmt.Errorf("lagrangian: %s: malformed %s entry %q", path, key, entry)
		}
		t, err := lagrangian.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("lagrangian: %s: %w", path, err)
		}
		files[t] = name
	}
	return files, nil
}

// splitDateAndPath separates a U/V entry's trailing whitespace-delimited
// path from its leading date, which may itself contain a space (between
// the calendar date and the time of day).
func splitDateAndPath(entry string) (date, path string, ok bool) {
	fields := strings.Fields(entry)
	switch len(fields) {
	case 2:
		return fields[0], fields[1], true
	case 3:
		return fields[0] + " " + fields[1], fields[2], true
	default:
		return "", "", false
	}
}
