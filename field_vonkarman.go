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

// VonKarmanField is a closed-form analytic velocity field reproducing a von
// Kármán vortex street. It needs no backing files, which makes it useful
// for exercising RungeKutta/Stencil/Integrator without file I/O in tests.
// It is a Cartesian, metric-unit field: the Non-goals in spec.md exclude
// this as a production data source, but not as test scaffolding.
type VonKarmanField struct {
	a, w, r0, tc, alpha2, y0, l, u0 float64
}

// NewVonKarmanField builds a von Kármán field with the original engine's
// default parameters.
func NewVonKarmanField() *VonKarmanField {
	return &VonKarmanField{a: 1, w: 35.06, r0: 0.35, tc: 1, alpha2: 4, y0: 0.3, l: 2, u0: 14}
}

func fractionalPart(x float64) float64 {
	return x - math.Floor(x)
}

func (f *VonKarmanField) Fetch(t0, t1 float64) error { return nil }

func (f *VonKarmanField) Compute(t, x, y float64, cell *cellProperties) (u, v float64, ok bool) {
	x2 := x * x
	y2 := y * y
	rho := math.Sqrt(x2 + y2)
	xv1 := 1.0 + f.l*fractionalPart(t/f.tc)
	xv2 := 1.0 + f.l*fractionalPart((t-f.tc/2.0)/f.tc)
	d4 := math.Exp(-(x2-2*x+1)/f.alpha2 - y2)
	s := 1 - d4
	h1 := math.Abs(math.Sin(math.Pi * t / f.tc))
	h2 := math.Abs(math.Sin(math.Pi * (t - f.tc/2) / f.tc))
	g1 := math.Exp(-f.r0 * (f.alpha2*sq(y-f.y0) + sq(x-xv1)))
	g2 := math.Exp(-f.r0 * (f.alpha2*sq(y+f.y0) + sq(x-xv2)))
	g := s*f.u0*y + (g2*h2-g1*h1)*f.w
	a := -2 * f.r0
	b := a * f.alpha2
	gx := (d4*f.u0*(2*x-2)*y)/f.alpha2 + a*g2*h2*f.w*(-xv2-a*g1*h1*(x-xv1)+x)
	gy := b*g2*h2*f.w*(f.y0+y-b*g1*h1*(y-f.y0)) + f.u0*(2*d4*y2+s)
	fn := -math.Exp(-f.a * sq(rho-1))
	d11 := (-2 * f.a * (rho - 1)) / rho

	u = fn*(gy+(y*d11)*g) + gy
	v = -(fn*(gx+(x*d11)*g) + gx)
	return u, v, true
}

func sq(x float64) float64 { return x * x }

func (f *VonKarmanField) UnitType() UnitType               { return Metric }
func (f *VonKarmanField) CoordinatesType() CoordinatesType { return Cartesian }
