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

// earthRadius is the mean Earth radius in meters used by the spherical
// equatorial transport step.
const earthRadius = 6371000.0

// moveFunc advances a point (x0, y0) by duration t under velocity (u, v).
type moveFunc func(t, x0, y0, u, v float64) (x1, y1 float64)

func moveCartesian(t, x0, y0, u, v float64) (x1, y1 float64) {
	return x0 + u*t, y0 + v*t
}

func moveSphericalEquatorial(t, x0, y0, u, v float64) (x1, y1 float64) {
	xr := x0 * math.Pi / 180
	yr := y0 * math.Pi / 180
	sinX, cosX := math.Sin(xr), math.Cos(xr)
	sinY, cosY := math.Sin(yr), math.Cos(yr)

	x := earthRadius * cosY * cosX
	y := earthRadius * cosY * sinX
	z := earthRadius * sinY

	x += (-u*sinX - v*cosX*sinY) * t
	y += (u*cosX - v*sinY*sinX) * t
	z += (v * cosY) * t

	x1 = math.Atan2(y, x) * 180 / math.Pi
	y1 = math.Asin(z/math.Sqrt(x*x+y*y+z*z)) * 180 / math.Pi
	return x1, y1
}

// RungeKutta integrates a Field's velocity with a fixed-step, classical
// 4th-order Runge-Kutta scheme. The transport function used to advance a
// point — plane Cartesian vs. spherical-equatorial — is chosen once at
// construction from the field's unit and coordinate types, exactly as the
// original engine's RungeKutta constructor sets its pMove_ function
// pointer once; here it becomes a stored closure instead.
type RungeKutta struct {
	h, h2, h6 float64
	field     Field
	move      moveFunc
}

// NewRungeKutta builds an integrator with step sizeOfInterval (seconds)
// over field.
func NewRungeKutta(sizeOfInterval float64, field Field) *RungeKutta {
	rk := &RungeKutta{h: sizeOfInterval, h2: sizeOfInterval / 2, h6: sizeOfInterval / 6, field: field}

	switch field.UnitType() {
	case Angular:
		rk.move = moveCartesian
	default: // Metric
		if field.CoordinatesType() == SphericalEquatorial {
			rk.move = moveSphericalEquatorial
		} else {
			rk.move = moveCartesian
		}
	}
	return rk
}

// Compute advances (x, y) at time t by one full Runge-Kutta step, returning
// the new position (xi, yi). It reports false, leaving xi/yi unset, the
// moment any of the four field evaluations is undefined — the whole step
// fails atomically rather than returning a partially-integrated position.
func (rk *RungeKutta) Compute(t, x, y float64, cell *cellProperties) (xi, yi float64, ok bool) {
	u1, v1, ok := rk.field.Compute(t, x, y, cell)
	if !ok {
		return 0, 0, false
	}
	xn, yn := rk.move(rk.h2, x, y, u1, v1)

	u2, v2, ok := rk.field.Compute(t+rk.h2, xn, yn, cell)
	if !ok {
		return 0, 0, false
	}
	xn, yn = rk.move(rk.h2, x, y, u2, v2)

	u3, v3, ok := rk.field.Compute(t+rk.h2, xn, yn, cell)
	if !ok {
		return 0, 0, false
	}
	xn, yn = rk.move(rk.h, x, y, u3, v3)

	u4, v4, ok := rk.field.Compute(t+rk.h, xn, yn, cell)
	if !ok {
		return 0, 0, false
	}
	xi, yi = rk.move(rk.h6, x, y, u1+2*(u2+u3)+u4, v1+2*(v2+v3)+v4)
	return xi, yi, true
}
