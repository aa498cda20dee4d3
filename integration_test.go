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

func TestComputeExponentsDegenerateWhenNeverAdvected(t *testing.T) {
	in, err := NewIntegrator(0, 1, 1, FTLE, 0, 0.1, identityField{})
	if err != nil {
		t.Fatal(err)
	}
	pos, err := in.SetInitialPoint(0, 0, TripletStencil, false)
	if err != nil {
		t.Fatal(err)
	}
	e, ok := in.ComputeExponents(pos)
	if ok {
		t.Fatal("ComputeExponents should report false when the stencil was never advected")
	}
	if !math.IsNaN(e.Lambda1) || !math.IsNaN(e.Lambda2) || !math.IsNaN(e.Theta1) || !math.IsNaN(e.Theta2) {
		t.Errorf("exponents should be NaN in the degenerate case, got %+v", e)
	}
}

func TestComputeExponentsUnderNoDeformation(t *testing.T) {
	in, err := NewIntegrator(0, 1, 1, FTLE, 0, 0.1, identityField{})
	if err != nil {
		t.Fatal(err)
	}
	pos, err := in.SetInitialPoint(0, 0, TripletStencil, false)
	if err != nil {
		t.Fatal(err)
	}
	cell := newCellProperties()
	it := in.GetIterator()
	for it.GoAfter() {
		if !in.Compute(it, pos, &cell) {
			t.Fatal("advection should succeed under an identically-zero field")
		}
		it.Next()
	}

	e, ok := in.ComputeExponents(pos)
	if !ok {
		t.Fatal("ComputeExponents should succeed once the stencil has advected")
	}
	if math.Abs(e.DeltaT-1) > 1e-9 {
		t.Errorf("DeltaT = %v, want 1", e.DeltaT)
	}
	if math.Abs(e.Lambda1) > 1e-9 || math.Abs(e.Lambda2) > 1e-9 {
		t.Errorf("Lambda1/Lambda2 under identity deformation = (%v, %v), want (0, 0)", e.Lambda1, e.Lambda2)
	}
	if math.Abs(e.Theta1-90) > 1e-9 || math.Abs(e.Theta2) > 1e-9 {
		t.Errorf("Theta1/Theta2 under a symmetric identity stencil = (%v, %v), want (90, 0)", e.Theta1, e.Theta2)
	}
}

func TestSeparationModeDispatch(t *testing.T) {
	ftle, err := NewIntegrator(0, 1, 1, FTLE, 0.5, 0.1, identityField{})
	if err != nil {
		t.Fatal(err)
	}
	wide := NewTriplet(0, 0, 10, 0, false)
	if ftle.Separation(wide) {
		t.Error("FTLE mode should never report separation, regardless of distance")
	}

	fsle, err := NewIntegrator(0, 1, 1, FSLE, 0.5, 0.1, identityField{})
	if err != nil {
		t.Fatal(err)
	}
	narrow := NewTriplet(0, 0, 0.01, 0, false)
	if fsle.Separation(narrow) {
		t.Error("a stencil narrower than MinSeparation should not be reported as separated")
	}
	if !fsle.Separation(wide) {
		t.Error("a stencil wider than MinSeparation should be reported as separated")
	}
}

func TestIntegratorRejectsNegativeStep(t *testing.T) {
	if _, err := NewIntegrator(0, 1, -1, FTLE, 0, 0.1, identityField{}); err == nil {
		t.Error("expected an error for a negative time step")
	}
}
