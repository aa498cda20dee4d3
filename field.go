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

// UnitType is the physical unit family a Field's velocity is expressed in.
type UnitType int

const (
	// Metric velocities are expressed in the metric system (e.g. m/s).
	Metric UnitType = iota
	// Angular velocities are expressed in the angular system (e.g. degrees/s).
	Angular
)

// GetUnit returns the unit string associated with a UnitType.
func (u UnitType) GetUnit() (string, error) {
	switch u {
	case Metric:
		return "m/s", nil
	case Angular:
		return "degrees/s", nil
	default:
		return "", fmt.Errorf("lagrangian: invalid unit type %d: %w", u, ErrInvalidArgument)
	}
}

// CoordinatesType is the coordinate system a Field's positions are
// expressed in.
type CoordinatesType int

const (
	// SphericalEquatorial coordinates are (longitude, latitude) in degrees
	// on the surface of a sphere.
	SphericalEquatorial CoordinatesType = iota
	// Cartesian coordinates are (x, y) on a flat plane.
	Cartesian
)

// Field computes a velocity at a given spatio-temporal position. It is the
// Go re-expression of the original engine's abstract Field base class: the
// C++ virtual-dispatch hierarchy becomes this interface, and each concrete
// field (TimeSeriesField, VonKarmanField) is a sealed implementation rather
// than a subclass.
type Field interface {
	// Fetch loads whatever backing data is needed to answer Compute calls
	// for any t in [t0, t1].
	Fetch(t0, t1 float64) error
	// Compute returns the velocity (u, v) at time t and position (x, y).
	// cell is an interpolation cache the caller owns and reuses across
	// nearby queries. ok is false where the field is undefined at this
	// point (e.g. over land, or outside the loaded grid).
	Compute(t, x, y float64, cell *cellProperties) (u, v float64, ok bool)
	// UnitType reports the physical unit family of this field's velocity.
	UnitType() UnitType
	// CoordinatesType reports the coordinate system of this field's
	// positions.
	CoordinatesType() CoordinatesType
}

// TimeSeriesField is a Field backed by two gridded, time-varying TimeSeries
// — one for each velocity component.
type TimeSeriesField struct {
	u, v            *TimeSeries
	unitType        UnitType
	coordinatesType CoordinatesType
}

// NewTimeSeriesField builds a Field from a pair of TimeSeries already
// configured for the u and v velocity components.
func NewTimeSeriesField(u, v *TimeSeries, unitType UnitType, coordinatesType CoordinatesType) *TimeSeriesField {
	return &TimeSeriesField{u: u, v: v, unitType: unitType, coordinatesType: coordinatesType}
}

// Fetch warms both components' reader pools for [t0, t1] on the caller's
// goroutine, mirroring the original engine's field::TimeSerie::Fetch
// (u_->Load(t0,t1); v_->Load(t0,t1)). MapEngine calls this once per time
// step before dispatching workers, so that Compute below never has to open
// a file itself — it only reads readers Fetch already resolved.
func (f *TimeSeriesField) Fetch(t0, t1 float64) error {
	if err := f.u.Load(t0, t1); err != nil {
		return err
	}
	if err := f.v.Load(t0, t1); err != nil {
		return err
	}
	return nil
}

func (f *TimeSeriesField) Compute(t, x, y float64, cell *cellProperties) (u, v float64, ok bool) {
	uVal, err := f.u.Interpolate(t, x, y, cell)
	if err != nil {
		return math.NaN(), math.NaN(), false
	}
	vVal, err := f.v.Interpolate(t, x, y, cell)
	if err != nil {
		return math.NaN(), math.NaN(), false
	}
	if math.IsNaN(uVal) || math.IsNaN(vVal) {
		return math.NaN(), math.NaN(), false
	}
	return uVal, vVal, true
}

func (f *TimeSeriesField) UnitType() UnitType               { return f.unitType }
func (f *TimeSeriesField) CoordinatesType() CoordinatesType { return f.coordinatesType }
