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

package lagrangian

import (
	"fmt"
	"math"
)

// latitudeUnits and longitudeUnits enumerate the CF-convention spellings
// that identify a coordinate variable as latitude or longitude. Membership
// here is a string lookup, not a dimensional-analysis question, which is why
// this package does not reuse a general SI-unit library for it (see
// DESIGN.md).
var latitudeUnits = map[string]bool{
	"degrees_north": true,
	"degree_north":  true,
	"degree_N":      true,
	"degrees_N":     true,
	"degreeN":       true,
	"degreesN":      true,
}

var longitudeUnits = map[string]bool{
	"degrees_east": true,
	"degree_east":  true,
	"degree_E":     true,
	"degrees_E":    true,
	"degreeE":      true,
	"degreesE":     true,
}

// IsLatitudeUnit reports whether unit is one of the recognized spellings of
// a CF latitude unit.
func IsLatitudeUnit(unit string) bool {
	return latitudeUnits[unit]
}

// IsLongitudeUnit reports whether unit is one of the recognized spellings of
// a CF longitude unit.
func IsLongitudeUnit(unit string) bool {
	return longitudeUnits[unit]
}

// degreeUnits are units this package treats as "plain degrees" once an axis
// has been classified as latitude or longitude: after classification the
// distinguishing suffix (_north/_east/...) no longer matters, only the
// angular scale does.
var degreeUnits = map[string]bool{
	"degrees": true, "degree": true,
}

// radianUnits are units treated as radians.
var radianUnits = map[string]bool{
	"radians": true, "radian": true, "rad": true,
}

func init() {
	for u := range latitudeUnits {
		degreeUnits[u] = true
	}
	for u := range longitudeUnits {
		degreeUnits[u] = true
	}
}

// convertUnit converts value from the from unit to the to unit. The only
// conversions this engine ever needs are identity (the common case — data
// already in degrees) and radians<->degrees, since GridReader.Open forces
// every geographic axis to degrees on load (mirroring the C++ original's
// Netcdf::Open, which calls axis.Convert("degrees") unconditionally for any
// axis classified as latitude or longitude).
func convertUnit(value float64, from, to string) (float64, error) {
	if from == to {
		return value, nil
	}
	switch {
	case degreeUnits[from] && degreeUnits[to]:
		return value, nil
	case radianUnits[from] && radianUnits[to]:
		return value, nil
	case radianUnits[from] && degreeUnits[to]:
		return value * 180 / math.Pi, nil
	case degreeUnits[from] && radianUnits[to]:
		return value * math.Pi / 180, nil
	default:
		return 0, fmt.Errorf("lagrangian: convert %q to %q: %w", from, to, ErrUnitError)
	}
}
