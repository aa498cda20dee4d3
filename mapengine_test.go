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

	"github.com/ctessum/sparse"
)

func TestSplitIndexesChunking(t *testing.T) {
	idx := []Index{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}, {2, 0}}
	chunks := splitIndexes(idx, 3)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total != len(idx) {
		t.Errorf("chunks cover %d indexes, want %d", total, len(idx))
	}
}

func TestSplitIndexesMoreWorkersThanItems(t *testing.T) {
	idx := []Index{{0, 0}, {1, 1}}
	chunks := splitIndexes(idx, 5)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 (one per item)", len(chunks))
	}
}

func TestSplitIndexesEmpty(t *testing.T) {
	if chunks := splitIndexes(nil, 4); chunks != nil {
		t.Errorf("splitIndexes(nil, 4) = %v, want nil", chunks)
	}
}

func TestPruneCompleted(t *testing.T) {
	idx := []Index{{0, 0}, {1, 1}, {2, 2}}
	done := func(i Index) bool { return i == (Index{1, 1}) }
	got := pruneCompleted(idx, done)
	want := []Index{{0, 0}, {2, 2}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// maskedReader reports only the cell at (0, 0) as masked (NaN).
type maskedReader struct{}

func (maskedReader) Open(string) error { return nil }
func (maskedReader) Load(string, string) error { return nil }
func (maskedReader) Interpolate(longitude, latitude, fillValue float64, cell *cellProperties) (float64, error) {
	if longitude == 0 && latitude == 0 {
		return math.NaN(), nil
	}
	return 1, nil
}
func (maskedReader) GetDateTime(string) (float64, error) { return 0, nil }
func (maskedReader) Axes() (x, y *Axis)                  { return nil, nil }

func TestMapEngineInitializeMaskedExcludesLandCells(t *testing.T) {
	props := NewMapProperties(2, 2, 0, 0, 1)
	engine := NewMapEngine(props)
	in, err := NewIntegrator(0, 1, 1, FTLE, 0, 0.1, identityField{})
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.InitializeMasked(in, maskedReader{}, TripletStencil); err != nil {
		t.Fatal(err)
	}
	if len(engine.indexes) != 3 {
		t.Errorf("got %d active cells, want 3 (4 minus the masked one)", len(engine.indexes))
	}
	if !engine.grid[0][0].IsCompleted() {
		t.Error("the masked cell (0, 0) should be marked completed")
	}
	if engine.grid[1][1].IsCompleted() {
		t.Error("an unmasked cell should not start out completed")
	}
}

func TestMapEngineComputeTrivialFTLE(t *testing.T) {
	props := NewMapProperties(1, 1, 0, 0, 1)
	engine := NewMapEngine(props)
	in, err := NewIntegrator(0, 1, 1, FTLE, 0, 0.1, identityField{})
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Initialize(in, TripletStencil); err != nil {
		t.Fatal(err)
	}
	if err := engine.Compute(in, 1); err != nil {
		t.Fatal(err)
	}

	lambda1 := engine.GetMapOfLambda1(in, -999)
	theta1 := engine.GetMapOfTheta1(in, -999)
	deltaT := engine.GetMapOfDeltaT(in, -999)
	separation := engine.GetMapOfFinalSeparation(in, -999)

	if got := lambda1.Get(0, 0); math.Abs(got) > 1e-9 {
		t.Errorf("Lambda1 under no deformation = %v, want 0", got)
	}
	if got := theta1.Get(0, 0); math.Abs(got-90) > 1e-9 {
		t.Errorf("Theta1 = %v, want 90", got)
	}
	if got := deltaT.Get(0, 0); math.Abs(got-1) > 1e-9 {
		t.Errorf("DeltaT = %v, want 1", got)
	}
	if got := separation.Get(0, 0); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("FinalSeparation = %v, want 0.1", got)
	}
}

func TestMapEngineComputeIsWorkerCountInvariant(t *testing.T) {
	run := func(numWorkers int) *sparse.DenseArray {
		props := NewMapProperties(3, 3, 0, 0, 1)
		engine := NewMapEngine(props)
		in, err := NewIntegrator(0, 2, 1, FTLE, 0, 0.1, NewVonKarmanField())
		if err != nil {
			t.Fatal(err)
		}
		if err := engine.Initialize(in, TripletStencil); err != nil {
			t.Fatal(err)
		}
		if err := engine.Compute(in, numWorkers); err != nil {
			t.Fatal(err)
		}
		return engine.GetMapOfLambda1(in, -999)
	}

	a := run(1)
	b := run(4)
	for iy := 0; iy < 3; iy++ {
		for ix := 0; ix < 3; ix++ {
			va, vb := a.Get(iy, ix), b.Get(iy, ix)
			if math.Abs(va-vb) > 1e-9 {
				t.Errorf("cell (%d, %d): 1 worker = %v, 4 workers = %v, want equal", ix, iy, va, vb)
			}
		}
	}
}
