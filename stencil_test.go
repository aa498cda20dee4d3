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

func TestIteratorForwardAndBackward(t *testing.T) {
	it := NewIterator(0, 30, 10)
	var steps []float64
	for it.GoAfter() {
		steps = append(steps, it.Time())
		it.Next()
	}
	want := []float64{0, 10, 20, 30}
	if len(steps) != len(want) {
		t.Fatalf("got %v steps, want %v", steps, want)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d = %v, want %v", i, steps[i], want[i])
		}
	}

	back := NewIterator(30, 0, 10)
	if back.Inc() >= 0 {
		t.Error("iterator built with begin > end should carry a negative increment")
	}
	var backSteps []float64
	for back.GoAfter() {
		backSteps = append(backSteps, back.Time())
		back.Next()
	}
	wantBack := []float64{30, 20, 10, 0}
	for i := range wantBack {
		if backSteps[i] != wantBack[i] {
			t.Errorf("backward step %d = %v, want %v", i, backSteps[i], wantBack[i])
		}
	}
}

func TestTripletLayout(t *testing.T) {
	p := NewTriplet(1, 2, 0.1, 0, false)
	if p.Size() != 3 {
		t.Fatalf("triplet should have 3 points, got %d", p.Size())
	}
	if p.X(0) != 1 || p.Y(0) != 2 {
		t.Errorf("center point = (%v, %v), want (1, 2)", p.X(0), p.Y(0))
	}
	if p.X(1) != 1.1 || p.Y(1) != 2 {
		t.Errorf("x-offset point = (%v, %v), want (1.1, 2)", p.X(1), p.Y(1))
	}
	if p.X(2) != 1 || p.Y(2) != 2.1 {
		t.Errorf("y-offset point = (%v, %v), want (1, 2.1)", p.X(2), p.Y(2))
	}
}

func TestQuintupletLayout(t *testing.T) {
	p := NewQuintuplet(0, 0, 1, 0, false)
	if p.Size() != 5 {
		t.Fatalf("quintuplet should have 5 points, got %d", p.Size())
	}
}

// identityField never moves any point — used to check that a stencil's
// strain tensor keeps its initial (delta, 0, 0, delta) layout (no
// deformation) when nothing advects.
type identityField struct{}

func (identityField) Fetch(t0, t1 float64) error { return nil }
func (identityField) Compute(t, x, y float64, cell *cellProperties) (float64, float64, bool) {
	return 0, 0, true
}
func (identityField) UnitType() UnitType               { return Metric }
func (identityField) CoordinatesType() CoordinatesType { return Cartesian }

func TestStrainTensorUnchangedUnderNoMotion(t *testing.T) {
	rk := NewRungeKutta(1, identityField{})
	it := NewIterator(0, 1, 1)
	cell := newCellProperties()

	triplet := NewTriplet(0, 0, 0.1, 0, false)
	if !triplet.Compute(rk, it, &cell) {
		t.Fatal("advection should succeed under an identically-zero field")
	}
	a00, a01, a10, a11 := triplet.StrainTensor()
	if a00 != 0.1 || a01 != 0 || a10 != 0 || a11 != 0.1 {
		t.Errorf("StrainTensor under no motion = (%v, %v, %v, %v), want (0.1, 0, 0, 0.1)", a00, a01, a10, a11)
	}
}

// uniformTranslationField moves every point by the same velocity, so a
// stencil's shape (and thus its strain tensor) should be unchanged by
// translation.
type uniformTranslationField struct{ u, v float64 }

func (f uniformTranslationField) Fetch(t0, t1 float64) error { return nil }
func (f uniformTranslationField) Compute(t, x, y float64, cell *cellProperties) (float64, float64, bool) {
	return f.u, f.v, true
}
func (uniformTranslationField) UnitType() UnitType               { return Metric }
func (uniformTranslationField) CoordinatesType() CoordinatesType { return Cartesian }

func TestStrainTensorTranslationInvariant(t *testing.T) {
	rk := NewRungeKutta(1, uniformTranslationField{u: 3, v: -2})
	it := NewIterator(0, 1, 1)
	cell := newCellProperties()

	triplet := NewTriplet(5, -5, 0.2, 0, false)
	if !triplet.Compute(rk, it, &cell) {
		t.Fatal("advection should succeed under a uniform field")
	}
	a00, a01, a10, a11 := triplet.StrainTensor()
	if math.Abs(a00-0.2) > 1e-9 || a01 != 0 || a10 != 0 || math.Abs(a11-0.2) > 1e-9 {
		t.Errorf("StrainTensor under uniform translation = (%v, %v, %v, %v), want (0.2, 0, 0, 0.2)", a00, a01, a10, a11)
	}
}

func TestPositionMissingAfterFailedAdvection(t *testing.T) {
	rk := NewRungeKutta(1, undefinedField{})
	it := NewIterator(0, 1, 1)
	cell := newCellProperties()

	p := NewTriplet(0, 0, 0.1, 0, false)
	if p.Compute(rk, it, &cell) {
		t.Fatal("advection should fail when the field is undefined everywhere")
	}
	// Compute itself never marks the stencil missing -- that is the
	// caller's responsibility (see Integrator/MapEngine).
	p.Missing()
	if !p.IsMissing() {
		t.Error("IsMissing should report true after Missing is called")
	}
}

func TestMaxDistanceCartesian(t *testing.T) {
	p := NewTriplet(0, 0, 3, 0, false)
	// center (0,0), (3,0), (0,3): both offset points are distance 3 away.
	if got := p.MaxDistance(); math.Abs(got-3) > 1e-9 {
		t.Errorf("MaxDistance = %v, want 3", got)
	}
}
