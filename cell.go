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

// cellProperties caches the bounding box and index corners of the last grid
// cell an Interpolate call landed in, so that repeated queries at nearby
// points (as happens constantly during RK4 sub-stepping) skip the axis
// binary search. It is always constructed fresh per call site — in
// particular each worker goroutine in MapEngine owns its own instance — so
// there is no shared mutable cache to guard with a mutex (see DESIGN.md's
// note on re-expressing per-thread C++ caches as owned Go values).
type cellProperties struct {
	x0, x1 float64
	y0, y1 float64
	ix0, ix1 int
	iy0, iy1 int
}

// newCellProperties returns a cell cache that contains() rejects for any
// point, forcing the first Interpolate call to perform a real search. This
// mirrors the C++ original's CellProperties::NONE() sentinel.
func newCellProperties() cellProperties {
	return cellProperties{x0: math.Inf(1)}
}

// contains reports whether (x, y) falls within the cached bounding box.
func (c cellProperties) contains(x, y float64) bool {
	return x >= c.x0 && x <= c.x1 && y >= c.y0 && y <= c.y1
}

// update replaces the cached bounding box and backing indices.
func (c *cellProperties) update(x0, x1, y0, y1 float64, ix0, ix1, iy0, iy1 int) {
	c.x0, c.x1, c.y0, c.y1 = x0, x1, y0, y1
	c.ix0, c.ix1, c.iy0, c.iy1 = ix0, ix1, iy0, iy1
}
