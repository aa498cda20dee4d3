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

import "math"

// scaleMissing decorates raw variable data with CF-convention packing and
// missing-data attributes: scale_factor/add_offset unpacking, and
// valid_min/valid_max/valid_range/missing_value/_FillValue detection. Any
// value considered missing is mapped to NaN.
type scaleMissing struct {
	hasScaleOffset bool
	scale, offset  float64

	hasValidRange          bool
	hasValidMin, hasValidMax bool
	validMin, validMax     float64

	hasFillValue    bool
	fillValue       float64
	hasMissingValue bool
	missingValue    float64
}

// newScaleMissing builds a decorator with no attributes set: scale 1,
// offset 0, nothing missing. Used when a variable carries none of the CF
// packing/missing attributes.
func newScaleMissing() scaleMissing {
	return scaleMissing{scale: 1, offset: 0}
}

// attributeReader is the minimal surface scaleMissing needs from a variable
// to read its CF decoration attributes; netCDFReader implements it on top
// of cdf.Header.
type attributeReader interface {
	FloatAttribute(varname, attr string) (value float64, ok bool)
	FloatAttributePair(varname, attr string) (lo, hi float64, ok bool)
}

// newScaleMissingFromAttributes builds a decorator by reading the standard
// CF attributes for varname off r.
func newScaleMissingFromAttributes(r attributeReader, varname string) scaleMissing {
	sm := scaleMissing{scale: 1, offset: 0, validMin: -math.MaxFloat64, validMax: math.MaxFloat64}

	if v, ok := r.FloatAttribute(varname, "scale_factor"); ok {
		sm.scale = v
	}
	if v, ok := r.FloatAttribute(varname, "add_offset"); ok {
		sm.offset = v
	}
	sm.hasScaleOffset = sm.scale != 1 || sm.offset != 0

	if lo, hi, ok := r.FloatAttributePair(varname, "valid_range"); ok {
		sm.hasValidRange = true
		sm.validMin, sm.validMax = lo, hi
	}
	if v, ok := r.FloatAttribute(varname, "valid_min"); ok {
		sm.hasValidMin = true
		sm.validMin = v
	}
	if v, ok := r.FloatAttribute(varname, "valid_max"); ok {
		sm.hasValidMax = true
		sm.validMax = v
	}
	if v, ok := r.FloatAttribute(varname, "_FillValue"); ok {
		sm.hasFillValue = true
		sm.fillValue = v
	}
	if v, ok := r.FloatAttribute(varname, "missing_value"); ok {
		sm.hasMissingValue = true
		sm.missingValue = v
	}
	return sm
}

func (s scaleMissing) hasInvalidData() bool {
	return s.hasValidRange || s.hasValidMin || s.hasValidMax
}

func (s scaleMissing) hasMissing() bool {
	return s.hasInvalidData() || s.hasFillValue || s.hasMissingValue
}

func (s scaleMissing) isInvalidData(value float64) bool {
	if s.hasInvalidData() {
		return value < s.validMin || value > s.validMax
	}
	return false
}

func (s scaleMissing) isFillValue(value float64) bool {
	return s.hasFillValue && value == s.fillValue
}

func (s scaleMissing) isMissingValue(value float64) bool {
	return s.hasMissingValue && value == s.missingValue
}

// isMissing reports whether value should be treated as absent data: NaN,
// the recorded missing_value, the recorded _FillValue, or (when present)
// outside the valid data range.
func (s scaleMissing) isMissing(value float64) bool {
	if math.IsNaN(value) {
		return true
	}
	if s.isMissingValue(value) {
		return true
	}
	if s.isFillValue(value) {
		return true
	}
	return s.isInvalidData(value)
}

// convertScaleOffset applies value*scale+offset in place to every element
// of array that is not missing; missing elements become NaN.
func (s scaleMissing) convertScaleOffset(array []float64) {
	if !s.hasScaleOffset {
		s.setMissingToNaN(array)
		return
	}
	for i, v := range array {
		if s.isMissing(v) {
			array[i] = math.NaN()
		} else {
			array[i] = v*s.scale + s.offset
		}
	}
}

// setMissingToNaN replaces every missing element of array with NaN, without
// applying any scale/offset.
func (s scaleMissing) setMissingToNaN(array []float64) {
	if !s.hasMissing() {
		return
	}
	for i, v := range array {
		if s.isMissing(v) {
			array[i] = math.NaN()
		}
	}
}
