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

// Iterator walks a time interval [begin, end] in steps of inc, automatically
// running forward or backward depending on whether begin is before or after
// end.
type Iterator struct {
	end, inc, ix float64
}

// NewIterator builds an Iterator over [begin, end] with step size inc
// (inc's sign is inferred from begin/end, not taken from the caller).
func NewIterator(begin, end, inc float64) *Iterator {
	if begin > end {
		inc = -inc
	}
	return &Iterator{end: end, inc: inc, ix: begin}
}

// GoAfter reports whether there is still a time step to take within the
// defined interval.
func (it *Iterator) GoAfter() bool {
	if it.inc > 0 {
		return it.ix <= it.end
	}
	return it.ix >= it.end
}

// Next advances the iterator by one step.
func (it *Iterator) Next() { it.ix += it.inc }

// Time returns the iterator's current position.
func (it *Iterator) Time() float64 { return it.ix }

// Inc returns the (signed) time step.
func (it *Iterator) Inc() float64 { return it.inc }

func distance(x0, y0, x1, y1 float64) float64 {
	dx, dy := x1-x0, y1-y0
	return math.Sqrt(dx*dx + dy*dy)
}

func geodeticDistance(lon0, lat0, lon1, lat1 float64) float64 {
	toRad := math.Pi / 180
	y0, x0 := lat0*toRad, lon0*toRad
	y1, x1 := lat1*toRad, lon1*toRad
	return math.Acos(math.Sin(y0)*math.Sin(y1)+math.Cos(y0)*math.Cos(y1)*math.Cos(x1-x0)) * 180 / math.Pi
}

// stencilKind selects a Position's point layout and strain-tensor formula.
// The C++ original expresses Triplet/Quintuplet as subclasses overriding a
// virtual StrainTensor; here the point count and differencing formula are a
// constructor-time choice on one struct, per the interface/sealed-variant
// re-expression in the Design Notes.
type stencilKind int

const (
	kindTriplet stencilKind = iota
	kindQuintuplet
)

// Position tracks the current location of the N points making up a
// Triplet or Quintuplet stencil, advected together by a RungeKutta
// integrator. All N points must remain defined for the stencil to stay
// usable — see Compute.
type Position struct {
	kind      stencilKind
	x, y      []float64
	time      float64
	completed bool
	spherical bool
}

// NewTriplet builds a 3-point stencil centered on (x, y): the center point
// plus one offset by delta in x and one offset by delta in y.
//
//	M0 = (x, y)       M1 = (x+delta, y)       M2 = (x, y+delta)
func NewTriplet(x, y, delta, startTime float64, sphericalEquatorial bool) *Position {
	return &Position{
		kind:      kindTriplet,
		x:         []float64{x, x + delta, x},
		y:         []float64{y, y, y + delta},
		time:      startTime,
		spherical: sphericalEquatorial,
	}
}

// NewQuintuplet builds a 5-point stencil centered on (x, y): the center
// point plus points offset by ±delta along each axis.
func NewQuintuplet(x, y, delta, startTime float64, sphericalEquatorial bool) *Position {
	return &Position{
		kind:      kindQuintuplet,
		x:         []float64{x, x + delta, x, x - delta, x},
		y:         []float64{y, y, y + delta, y, y - delta},
		time:      startTime,
		spherical: sphericalEquatorial,
	}
}

// Size returns the number of points in the stencil.
func (p *Position) Size() int { return len(p.x) }

// X returns the longitude of point idx.
func (p *Position) X(idx int) float64 { return p.x[idx] }

// Y returns the latitude of point idx.
func (p *Position) Y(idx int) float64 { return p.y[idx] }

// Time returns the time of the last successful advection (or the start
// time, if Compute has never succeeded).
func (p *Position) Time() float64 { return p.time }

// IsCompleted reports whether the caller has marked this stencil's
// integration as finished.
func (p *Position) IsCompleted() bool { return p.completed }

// SetCompleted marks the integration as finished.
func (p *Position) SetCompleted() { p.completed = true }

// Missing clears the stencil's points, marking it permanently undefined.
func (p *Position) Missing() {
	p.x = nil
	p.y = nil
}

// IsMissing reports whether the stencil has been cleared by Missing, or
// never initialized.
func (p *Position) IsMissing() bool { return len(p.x) == 0 }

// MaxDistance returns the largest distance between the center point and any
// other point in the stencil — distance is spherical-geodetic in degrees
// for a spherical-equatorial stencil, Euclidean otherwise.
func (p *Position) MaxDistance() float64 {
	d := distance
	if p.spherical {
		d = geodeticDistance
	}
	result := 0.0
	for idx := 1; idx < len(p.x); idx++ {
		if dist := d(p.x[0], p.y[0], p.x[idx], p.y[idx]); dist > result {
			result = dist
		}
	}
	return result
}

// Compute advects every point of the stencil by one Runge-Kutta step. If
// any single point's advection fails, the whole stencil is left unchanged
// and false is returned — points never move independently of each other.
func (p *Position) Compute(rk *RungeKutta, it *Iterator, cell *cellProperties) bool {
	nx := make([]float64, len(p.x))
	ny := make([]float64, len(p.y))

	for idx := range p.x {
		x, y, ok := rk.Compute(it.Time(), p.x[idx], p.y[idx], cell)
		if !ok {
			return false
		}
		nx[idx], ny[idx] = x, y
	}

	p.x, p.y, p.time = nx, ny, it.Time()
	return true
}

// StrainTensor returns the discrete deformation gradient of the stencil:
// how far the outer points have moved relative to the center, along each
// axis. Triplet differences against the center point; Quintuplet
// differences the two points on either side of each axis, which cancels
// first-order center-point error.
func (p *Position) StrainTensor() (a00, a01, a10, a11 float64) {
	switch p.kind {
	case kindTriplet:
		return p.x[1] - p.x[0], p.x[2] - p.x[0], p.y[1] - p.y[0], p.y[2] - p.y[0]
	case kindQuintuplet:
		return p.x[1] - p.x[3], p.x[2] - p.x[4], p.y[1] - p.y[3], p.y[2] - p.y[4]
	default:
		return math.NaN(), math.NaN(), math.NaN(), math.NaN()
	}
}
