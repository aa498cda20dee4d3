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
	"runtime"
	"sync"

	"github.com/ctessum/sparse"
)

// Index addresses one cell of a MapEngine's grid.
type Index struct {
	I, J int
}

// MapProperties describes a regular (lon, lat) grid: nx by ny points
// starting at (xMin, yMin) with uniform spacing step between both
// longitudes and latitudes.
type MapProperties struct {
	nx, ny     int
	xMin, yMin float64
	step       float64
}

// NewMapProperties builds the description of a regular grid.
func NewMapProperties(nx, ny int, xMin, yMin, step float64) MapProperties {
	return MapProperties{nx: nx, ny: ny, xMin: xMin, yMin: yMin, step: step}
}

// GetXValue returns the longitude of column ix.
func (m MapProperties) GetXValue(ix int) float64 { return m.xMin + float64(ix)*m.step }

// GetYValue returns the latitude of row iy.
func (m MapProperties) GetYValue(iy int) float64 { return m.yMin + float64(iy)*m.step }

// NX returns the number of longitudes in the grid.
func (m MapProperties) NX() int { return m.nx }

// NY returns the number of latitudes in the grid.
func (m MapProperties) NY() int { return m.ny }

// Step returns the grid spacing.
func (m MapProperties) Step() float64 { return m.step }

// MapEngine schedules the parallel, per-cell advection of a regular grid
// of stencils and extracts the resulting Lyapunov exponent maps. Each cell
// owns one Position, advected independently of its neighbors — the engine
// only coordinates when work starts and stops, never the advection itself.
//
// The original engine dispatches std::thread workers over a hand-rolled
// Splitter<Index>/SplitList<Index>, re-splitting the work list after each
// time step as cells complete. Here that becomes a goroutine/WaitGroup
// fan-out per step (matching run.go's Calculations and framework.go's
// UseReaders worker-striping idiom) followed by an in-place compaction of
// the index slice — no persistent thread pool is kept alive across steps.
type MapEngine struct {
	MapProperties

	grid        [][]*Position // grid[ix][iy]
	indexes     []Index
	stencilKind StencilKind
}

// NewMapEngine builds an uninitialized engine over the given grid; call
// Initialize or InitializeMasked before Compute.
func NewMapEngine(props MapProperties) *MapEngine {
	grid := make([][]*Position, props.nx)
	for ix := range grid {
		grid[ix] = make([]*Position, props.ny)
	}
	return &MapEngine{MapProperties: props, grid: grid}
}

// Initialize seeds every grid cell with a fresh stencil of the requested
// kind, centered on that cell's (lon, lat), and schedules every cell for
// computation.
func (m *MapEngine) Initialize(in *Integrator, kind StencilKind) error {
	spherical := in.field.CoordinatesType() == SphericalEquatorial
	m.indexes = m.indexes[:0]
	for ix := 0; ix < m.nx; ix++ {
		for iy := 0; iy < m.ny; iy++ {
			p, err := in.SetInitialPoint(m.GetXValue(ix), m.GetYValue(iy), kind, spherical)
			if err != nil {
				return err
			}
			m.grid[ix][iy] = p
			m.indexes = append(m.indexes, Index{ix, iy})
			m.stencilKind = kind
		}
	}
	return nil
}

// InitializeMasked is like Initialize, but cells where reader's value at
// (lon, lat) comes back NaN (land, under a mask, ...) are marked completed
// up front and excluded from the work list.
func (m *MapEngine) InitializeMasked(in *Integrator, reader Reader, kind StencilKind) error {
	spherical := in.field.CoordinatesType() == SphericalEquatorial
	cell := newCellProperties()
	m.indexes = m.indexes[:0]
	for ix := 0; ix < m.nx; ix++ {
		for iy := 0; iy < m.ny; iy++ {
			p, err := in.SetInitialPoint(m.GetXValue(ix), m.GetYValue(iy), kind, spherical)
			if err != nil {
				return err
			}
			v, err := reader.Interpolate(m.GetXValue(ix), m.GetYValue(iy), math.NaN(), &cell)
			if err != nil {
				return err
			}
			if math.IsNaN(v) {
				p.SetCompleted()
			} else {
				m.indexes = append(m.indexes, Index{ix, iy})
			}
			m.grid[ix][iy] = p
			m.stencilKind = kind
		}
	}
	return nil
}

// completed reports whether a grid cell no longer needs further advection.
func (m *MapEngine) completed(idx Index) bool {
	p := m.grid[idx.I][idx.J]
	return p.IsCompleted() || p.IsMissing()
}

// computeSubList advances every cell named in sub by one Runge-Kutta step
// at it's current time, using its own interpolation cell cache — workers
// never share a cache, matching the per-worker CellProperties the original
// engine constructs fresh inside each ComputeHt call.
func (m *MapEngine) computeSubList(sub []Index, in *Integrator, it *Iterator) {
	cell := newCellProperties()
	for _, idx := range sub {
		p := m.grid[idx.I][idx.J]
		if !in.Compute(it, p, &cell) {
			p.Missing()
			continue
		}
		if in.Separation(p) {
			p.SetCompleted()
		}
	}
}

// Compute drives the map to completion: at every time step it fetches the
// field data required, advances every still-active cell in parallel across
// numWorkers goroutines, then compacts the active-cell list by dropping
// cells that finished this step. numWorkers <= 0 means use GOMAXPROCS.
func (m *MapEngine) Compute(in *Integrator, numWorkers int) error {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	total := len(m.indexes)
	it := in.GetIterator()

	for it.GoAfter() {
		if err := in.Fetch(it.Time()); err != nil {
			return fmt.Errorf("lagrangian: map engine: %w", err)
		}

		Debug("start time step %v (%d cells)", it.Time(), len(m.indexes))

		chunks := splitIndexes(m.indexes, numWorkers)
		var wg sync.WaitGroup
		for _, chunk := range chunks {
			chunk := chunk
			wg.Add(1)
			go func() {
				defer wg.Done()
				m.computeSubList(chunk, in, it)
			}()
		}
		wg.Wait()

		m.indexes = pruneCompleted(m.indexes, m.completed)

		if total > 0 {
			Debug("close time step %v (%.02f%% completed)", it.Time(), float64(total-len(m.indexes))/float64(total)*100)
		}

		it.Next()
	}
	return nil
}

// splitIndexes partitions idx into at most n roughly equal contiguous
// chunks, skipping empty chunks.
func splitIndexes(idx []Index, n int) [][]Index {
	if n < 1 {
		n = 1
	}
	if len(idx) == 0 {
		return nil
	}
	if n > len(idx) {
		n = len(idx)
	}
	chunks := make([][]Index, 0, n)
	size := (len(idx) + n - 1) / n
	for start := 0; start < len(idx); start += size {
		end := start + size
		if end > len(idx) {
			end = len(idx)
		}
		chunks = append(chunks, idx[start:end])
	}
	return chunks
}

// pruneCompleted compacts idx in place, keeping only entries for which
// done reports false.
func pruneCompleted(idx []Index, done func(Index) bool) []Index {
	out := idx[:0]
	for _, i := range idx {
		if !done(i) {
			out = append(out, i)
		}
	}
	return out
}

// exponentGetter extracts one scalar field of an Exponents result.
type exponentGetter func(Exponents) float64

// getMapOfExponents is the shared engine behind every GetMapOf* method
// below: for every grid cell, it computes the cell's Lyapunov exponents
// (if the stencil was ever advected) and extracts one scalar from the
// result, falling back to a mode-appropriate default for cells that never
// finished (FSLE only — FTLE cells are always run to completion).
func (m *MapEngine) getMapOfExponents(in *Integrator, nan float64, get, getUndefined exponentGetter) *sparse.DenseArray {
	result := sparse.ZerosDense(m.ny, m.nx)
	for ix := 0; ix < m.nx; ix++ {
		for iy := 0; iy < m.ny; iy++ {
			p := m.grid[ix][iy]
			if p.IsMissing() {
				result.Set(nan, iy, ix)
				continue
			}
			e, defined := in.ComputeExponents(p)
			switch {
			case in.mode == FTLE:
				if defined {
					result.Set(get(e), iy, ix)
				} else {
					result.Set(math.NaN(), iy, ix)
				}
			case p.IsCompleted():
				// An un-advected completed cell (pre-masked) keeps NaN
				// exponents and orientations, a zero DeltaT and its
				// initial separation.
				result.Set(get(e), iy, ix)
			default:
				result.Set(getUndefined(e), iy, ix)
			}
		}
	}
	return result
}

// GetMapOfLambda1 returns the grid of exponents associated with the
// maximum eigenvalue of the Cauchy-Green strain tensor.
func (m *MapEngine) GetMapOfLambda1(in *Integrator, nan float64) *sparse.DenseArray {
	return m.getMapOfExponents(in, nan,
		func(e Exponents) float64 { return e.Lambda1 },
		func(Exponents) float64 { return 0 })
}

// GetMapOfLambda2 returns the grid of exponents associated with the
// minimum eigenvalue of the Cauchy-Green strain tensor.
func (m *MapEngine) GetMapOfLambda2(in *Integrator, nan float64) *sparse.DenseArray {
	return m.getMapOfExponents(in, nan,
		func(e Exponents) float64 { return e.Lambda2 },
		func(Exponents) float64 { return 0 })
}

// GetMapOfTheta1 returns the grid of orientations (degrees) of the
// eigenvector associated with the maximum eigenvalue.
func (m *MapEngine) GetMapOfTheta1(in *Integrator, nan float64) *sparse.DenseArray {
	return m.getMapOfExponents(in, nan,
		func(e Exponents) float64 { return e.Theta1 },
		func(Exponents) float64 { return 0 })
}

// GetMapOfTheta2 returns the grid of orientations (degrees) of the
// eigenvector associated with the minimum eigenvalue.
func (m *MapEngine) GetMapOfTheta2(in *Integrator, nan float64) *sparse.DenseArray {
	return m.getMapOfExponents(in, nan,
		func(e Exponents) float64 { return e.Theta2 },
		func(Exponents) float64 { return 0 })
}

// GetMapOfDeltaT returns the grid of effective advection times (seconds).
func (m *MapEngine) GetMapOfDeltaT(in *Integrator, nan float64) *sparse.DenseArray {
	return m.getMapOfExponents(in, nan,
		func(e Exponents) float64 { return e.DeltaT },
		func(e Exponents) float64 { return e.DeltaT })
}

// GetMapOfFinalSeparation returns the grid of final particle separations
// (degrees, or Cartesian units for a Cartesian field).
func (m *MapEngine) GetMapOfFinalSeparation(in *Integrator, nan float64) *sparse.DenseArray {
	return m.getMapOfExponents(in, nan,
		func(e Exponents) float64 { return e.FinalSeparation },
		func(e Exponents) float64 { return e.FinalSeparation })
}
