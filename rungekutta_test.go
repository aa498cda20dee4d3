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
	"math"
	"testing"
)

// constantField is a Field whose velocity never varies in time or space;
// RK4 over it should reduce to plain Euler advection, independent of step
// count or size.
type constantField struct {
	u, v            float64
	unitType        UnitType
	coordinatesType CoordinatesType
}

func (f *constantField) Fetch(t0, t1 float64) error { return nil }
func (f *constantField) Compute(t, x, y float64, cell *cellProperties) (float64, float64, bool) {
	return f.u, f.v, true
}
func (f *constantField) UnitType() UnitType               { return f.unitType }
func (f *constantField) CoordinatesType() CoordinatesType { return f.coordinatesType }

func TestRungeKuttaConstantCartesianField(t *testing.T) {
	field := &constantField{u: 2, v: -1, unitType: Metric, coordinatesType: Cartesian}
	rk := NewRungeKutta(10, field)
	cell := newCellProperties()

	x1, y1, ok := rk.Compute(0, 0, 0, &cell)
	if !ok {
		t.Fatal("Compute should succeed for a field defined everywhere")
	}
	if math.Abs(x1-20) > 1e-9 || math.Abs(y1-(-10)) > 1e-9 {
		t.Errorf("Compute = (%v, %v), want (20, -10)", x1, y1)
	}
}

// undefinedField always reports ok=false, modeling a field with gaps (land,
// outside the loaded grid).
type undefinedField struct{}

func (undefinedField) Fetch(t0, t1 float64) error { return nil }
func (undefinedField) Compute(t, x, y float64, cell *cellProperties) (float64, float64, bool) {
	return 0, 0, false
}
func (undefinedField) UnitType() UnitType               { return Metric }
func (undefinedField) CoordinatesType() CoordinatesType { return Cartesian }

func TestRungeKuttaFailsAtomically(t *testing.T) {
	rk := NewRungeKutta(10, undefinedField{})
	cell := newCellProperties()
	if _, _, ok := rk.Compute(0, 0, 0, &cell); ok {
		t.Fatal("Compute should fail when the field is undefined")
	}
}

func TestRungeKuttaZeroVelocityIsNoOp(t *testing.T) {
	field := &constantField{u: 0, v: 0, unitType: Metric, coordinatesType: Cartesian}
	rk := NewRungeKutta(100, field)
	cell := newCellProperties()
	x1, y1, ok := rk.Compute(0, 5, -5, &cell)
	if !ok || x1 != 5 || y1 != -5 {
		t.Errorf("Compute with zero velocity = (%v, %v, %v), want (5, -5, true)", x1, y1, ok)
	}
}

func TestRungeKuttaSphericalMoveRoundTrip(t *testing.T) {
	// Moving for zero time should leave position unchanged under the
	// spherical-equatorial transport too.
	x1, y1 := moveSphericalEquatorial(0, 10, 20, 5, 5)
	if math.Abs(x1-10) > 1e-6 || math.Abs(y1-20) > 1e-6 {
		t.Errorf("zero-duration spherical move changed position: (%v, %v)", x1, y1)
	}
}

func TestNewRungeKuttaPicksMoveByFieldKind(t *testing.T) {
	angular := &constantField{unitType: Angular, coordinatesType: SphericalEquatorial}
	rk := NewRungeKutta(1, angular)
	if rk.move == nil {
		t.Fatal("move function should always be set")
	}
	// Angular fields always move on the plane, never spherical-equatorial,
	// even when CoordinatesType claims otherwise.
	x1, y1 := rk.move(1, 0, 0, 1, 1)
	wantX, wantY := moveCartesian(1, 0, 0, 1, 1)
	if x1 != wantX || y1 != wantY {
		t.Errorf("angular field did not use Cartesian transport: got (%v, %v), want (%v, %v)", x1, y1, wantX, wantY)
	}
}
