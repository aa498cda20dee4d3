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

// Mode selects whether an Integrator computes Finite-Size or Finite-Time
// Lyapunov Exponents.
type Mode int

const (
	// FSLE: integration stops early once neighboring particles separate
	// past MinSeparation.
	FSLE Mode = iota
	// FTLE: integration always runs the full [start, end] interval.
	FTLE
)

// StencilKind selects the point layout used to sample the deformation
// gradient around a grid point.
type StencilKind int

const (
	TripletStencil StencilKind = iota
	QuintupletStencil
)

// normalizeLongitude brings x into [-halfCircle, halfCircle), used to keep
// the strain tensor's x-components from seeing a spurious 360° jump at the
// date line.
func normalizeLongitude(x, circle, halfCircle float64) float64 {
	for x < -halfCircle {
		x += circle
	}
	for x >= halfCircle {
		x -= circle
	}
	return x
}

// Exponents holds the Lyapunov coefficients computed for a single stencil:
// the advection time actually used, the final particle separation, the two
// exponents (associated with the maximum/minimum eigenvalue of the
// Cauchy-Green strain tensor) and their orientations in degrees.
type Exponents struct {
	DeltaT          float64
	FinalSeparation float64
	Lambda1, Lambda2 float64
	Theta1, Theta2   float64
}

// NaN marks the Lyapunov coefficients themselves as undefined, leaving
// DeltaT and FinalSeparation as diagnostics — they are meaningful even for
// a stencil whose integration never separated or never advanced.
func (e *Exponents) setNaN() {
	e.Lambda1, e.Lambda2 = math.NaN(), math.NaN()
	e.Theta1, e.Theta2 = math.NaN(), math.NaN()
}

// Integrator drives the time-stepped advection of one stencil and computes
// Lyapunov exponents from its accumulated deformation. A single Integrator
// is immutable after construction and safe to share read-only across
// worker goroutines (MapEngine constructs one and hands it to every
// worker); the only per-stencil mutable state — the position and the
// interpolation cell cache — lives outside it, owned by the caller.
type Integrator struct {
	sizeOfInterval float64
	field          Field
	startTime      float64
	endTime        float64
	rk             *RungeKutta

	delta         float64
	mode          Mode
	minSeparation float64
	f2            float64
}

// NewIntegrator builds an Integrator over [startTime, endTime] with the
// given step (seconds). delta is the initial particle gap of the stencil,
// in degrees (or Cartesian units, for a Cartesian field). minSeparation is
// only meaningful in FSLE mode: a stencil is judged separated once its
// MaxDistance exceeds it.
func NewIntegrator(startTime, endTime, delta_t float64, mode Mode, minSeparation, delta float64, field Field) (*Integrator, error) {
	if delta_t <= 0 {
		return nil, fmt.Errorf("lagrangian: time delta must be positive: %w", ErrInvalidArgument)
	}
	signedInterval := delta_t
	if startTime > endTime {
		signedInterval = -delta_t
	}

	in := &Integrator{
		sizeOfInterval: delta_t,
		field:          field,
		startTime:      startTime,
		endTime:        endTime,
		rk:             NewRungeKutta(signedInterval, field),
		delta:          delta,
		mode:           mode,
		f2:             0.5 / (delta * delta),
	}
	switch mode {
	case FSLE:
		in.minSeparation = minSeparation
	case FTLE:
		in.minSeparation = -1
	default:
		return nil, fmt.Errorf("lagrangian: invalid integration mode: %w", ErrInvalidArgument)
	}
	return in, nil
}

// GetIterator returns a fresh Iterator over the integrator's time span.
func (in *Integrator) GetIterator() *Iterator {
	return NewIterator(in.startTime, in.endTime, in.sizeOfInterval)
}

// Fetch loads whatever data the field needs for the next step from t.
func (in *Integrator) Fetch(t float64) error {
	if in.startTime < in.endTime {
		return in.field.Fetch(t, t+in.sizeOfInterval)
	}
	return in.field.Fetch(t, t-in.sizeOfInterval)
}

// SetInitialPoint builds a new stencil of the requested kind, centered on
// (x, y), at the integrator's start time.
func (in *Integrator) SetInitialPoint(x, y float64, kind StencilKind, sphericalEquatorial bool) (*Position, error) {
	switch kind {
	case TripletStencil:
		return NewTriplet(x, y, in.delta, in.startTime, sphericalEquatorial), nil
	case QuintupletStencil:
		return NewQuintuplet(x, y, in.delta, in.startTime, sphericalEquatorial), nil
	default:
		return nil, fmt.Errorf("lagrangian: invalid stencil kind: %w", ErrInvalidArgument)
	}
}

// Separation reports whether position is considered separated: in FSLE
// mode, once its MaxDistance exceeds MinSeparation; in FTLE mode, never —
// FTLE always advects for the full time span.
func (in *Integrator) Separation(position *Position) bool {
	switch in.mode {
	case FSLE:
		return position.MaxDistance() > in.minSeparation
	default: // FTLE
		return false
	}
}

// Compute advances position by one Runge-Kutta step at it's current time.
func (in *Integrator) Compute(it *Iterator, position *Position, cell *cellProperties) bool {
	return position.Compute(in.rk, it, cell)
}

// ComputeExponents derives the Lyapunov exponents from a stencil's
// accumulated deformation relative to the integrator's start time. It
// returns false (leaving only DeltaT/FinalSeparation meaningful, and the
// exponents set to NaN) when the stencil was never advected at all — the
// degenerate case where elapsed time is zero.
func (in *Integrator) ComputeExponents(position *Position) (Exponents, bool) {
	var e Exponents
	e.DeltaT = position.Time() - in.startTime
	e.FinalSeparation = position.MaxDistance()

	if math.Abs(e.DeltaT) < epsilon {
		e.setNaN()
		return e, false
	}

	a00, a01, a10, a11 := position.StrainTensor()

	if in.field.UnitType() == Angular {
		a00 = normalizeLongitude(a00, 360, 180)
		a01 = normalizeLongitude(a01, 360, 180)
	}

	sq00, sq01, sq10, sq11 := a00*a00, a01*a01, a10*a10, a11*a11

	f1 := 1 / (2 * e.DeltaT)
	s1 := sq00 + sq01 + sq10 + sq11
	s2 := math.Sqrt((sq(a01+a10)+sq(a00-a11))*(sq(a01-a10)+sq(a00+a11)))

	e.Lambda1 = f1 * math.Log(in.f2*(s1+s2))
	e.Lambda2 = f1 * math.Log(in.f2*(s1-s2))

	if a01 == 0 && a10 == 0 {
		if a00 > a11 {
			e.Theta1, e.Theta2 = 0, 90
		} else {
			e.Theta2, e.Theta1 = 0, 90
		}
	} else {
		at1 := 2 * (a00*a01 + a10*a11)
		at2 := sq00 - sq01 + sq10 - sq11
		e.Theta1 = math.Atan(at1/(at2+s2)) * 180 / math.Pi
		e.Theta2 = -math.Atan(at1/(-at2+s2)) * 180 / math.Pi
	}

	return e, true
}

// epsilon matches the smallest representable gap the original engine
// treats as "no time has passed."
const epsilon = 2.220446049250313e-16
