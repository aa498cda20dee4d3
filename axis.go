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

	"github.com/gonum/floats"
)

// AxisKind classifies what a coordinate axis represents.
type AxisKind int

const (
	AxisUnknown AxisKind = iota
	AxisLatitude
	AxisLongitude
	AxisTime
	AxisX
	AxisY
)

// isSame reports whether a and b are the same coordinate to within the
// tolerance the original engine uses to detect regular spacing.
func isSame(a, b float64) bool {
	return floats.EqualWithinAbs(a, b, 1e-4)
}

// Axis is a 1-D coordinate axis: a vector of monotonic values with a kind, a
// unit, and (for longitude axes) wraparound handling. It supports O(1) index
// lookup when the spacing is regular and O(log n) binary search otherwise.
//
// The C++ original dispatches index search through a stored member-function
// pointer chosen once at construction; here that becomes the stored closure
// searchIndex, chosen once in newAxis and never re-examined.
type Axis struct {
	kind    AxisKind
	points  []float64
	edges   []float64
	unit    string
	start   float64
	inc     float64
	regular bool
	ascending bool
	circle  bool

	searchIndex func(coordinate float64, bounded bool) int
}

// NewAxis builds an Axis from raw coordinate values. Longitude axes are
// unwrapped (monotonicity restored by adding/subtracting 360° past a
// crossing) before anything else is computed, exactly as the original
// engine's Axis::ComputeProperties pipeline does.
func NewAxis(points []float64, kind AxisKind, unit string) *Axis {
	a := &Axis{
		kind:   kind,
		points: append([]float64(nil), points...),
		unit:   unit,
	}
	a.computeProperties()
	return a
}

func (a *Axis) computeProperties() {
	a.normalizeLongitude()
	a.calcIsRegular()
	a.makeEdges()
	if a.regular {
		a.searchIndex = a.findIndexRegular
	} else {
		a.searchIndex = a.findIndexIrregular
	}
}

// normalizeLongitude restores monotonicity to a longitude axis that crosses
// the 0/360 (or -180/180) seam, by adding or subtracting a full turn to
// every point from the first break in monotonic order onward.
func (a *Axis) normalizeLongitude() {
	if len(a.points) < 2 {
		a.ascending = true
	} else {
		a.ascending = a.points[0] < a.points[1]
	}

	if a.kind != AxisLongitude {
		return
	}

	monotonic := true
	for ix := 1; ix < len(a.points); ix++ {
		if a.ascending {
			monotonic = a.points[ix-1] < a.points[ix]
		} else {
			monotonic = a.points[ix-1] > a.points[ix]
		}
		if !monotonic {
			break
		}
	}
	if monotonic {
		return
	}

	cross := false
	for ix := 1; ix < len(a.points); ix++ {
		if !cross {
			if a.ascending {
				cross = a.points[ix-1] > a.points[ix]
			} else {
				cross = a.points[ix-1] < a.points[ix]
			}
		}
		if cross {
			if a.ascending {
				a.points[ix] += 360
			} else {
				a.points[ix] -= 360
			}
		}
	}
}

// calcIsRegular determines whether points[i] == start + i*increment within
// tolerance, and whether a regular longitude axis is a full 360° circle.
func (a *Axis) calcIsRegular() {
	n := len(a.points)
	a.start = a.points[0]

	if n < 2 {
		a.regular = true
		a.inc = 1
		a.circle = false
		return
	}

	a.inc = (a.points[n-1] - a.start) / float64(n-1)
	a.regular = true
	for ix := 1; ix < n; ix++ {
		if !isSame(a.points[ix]-a.points[ix-1], a.inc) {
			a.regular = false
			break
		}
	}

	a.circle = a.regular && a.kind == AxisLongitude && isSame(a.inc*float64(n), 360)
}

// makeEdges computes the cell boundaries used by the irregular-axis binary
// search. Regular axes never need edges — their index is a closed-form
// division.
func (a *Axis) makeEdges() {
	if a.regular {
		return
	}
	n := len(a.points)
	a.edges = make([]float64, n+1)
	for ix := 1; ix < n; ix++ {
		a.edges[ix] = (a.points[ix-1] + a.points[ix]) / 2
	}
	a.edges[0] = 2*a.points[0] - a.edges[1]
	a.edges[n] = 2*a.points[n-1] - a.edges[n-1]
}

func (a *Axis) findIndexRegular(coordinate float64, bounded bool) int {
	index := int(math.Round((coordinate - a.start) / a.inc))
	if index < 0 {
		if bounded {
			return 0
		}
		return -1
	}
	if index >= len(a.points) {
		if bounded {
			return len(a.points) - 1
		}
		return -1
	}
	return index
}

// findIndexIrregular performs the binary search over edges. Equality with
// an edge belongs to the lower index on ascending axes and to the upper
// interval on descending axes — this asymmetry is preserved exactly as the
// original engine implements it; it is not a bug to "fix."
func (a *Axis) findIndexIrregular(coordinate float64, bounded bool) int {
	low := 0
	high := len(a.points)

	beforeFirst := coordinate < a.edges[low]
	pastLast := coordinate > a.edges[high]
	if !a.ascending {
		beforeFirst = coordinate > a.edges[low]
		pastLast = coordinate < a.edges[high]
	}
	if beforeFirst {
		if bounded {
			return 0
		}
		return -1
	}
	if pastLast {
		if bounded {
			return high - 1
		}
		return -1
	}

	if a.ascending {
		for high > low+1 {
			mid := (low + high) >> 1
			value := a.edges[mid]
			if value == coordinate {
				return mid - 1
			}
			if value < coordinate {
				low = mid
			} else {
				high = mid
			}
		}
		return low
	}

	for high > low+1 {
		mid := (low + high) >> 1
		value := a.edges[mid]
		if value == coordinate {
			return mid
		}
		if value < coordinate {
			high = mid
		} else {
			low = mid
		}
	}
	return high - 1
}

// FindIndex returns the index of the grid element containing coordinate, or
// -1 if coordinate falls outside the axis' range.
func (a *Axis) FindIndex(coordinate float64) int {
	return a.searchIndex(coordinate, false)
}

// FindIndexBounded is like FindIndex but clamps to the nearest valid index
// instead of returning -1 when coordinate is outside the axis' range.
func (a *Axis) FindIndexBounded(coordinate float64) int {
	return a.searchIndex(coordinate, true)
}

// FindIndexes returns the pair of indices bracketing coordinate, such that
// points[i0] <= coordinate < points[i1] (ascending) or the descending
// equivalent. It reports whether coordinate lies within the axis' area.
func (a *Axis) FindIndexes(coordinate float64) (i0, i1 int, ok bool) {
	i0 = a.FindIndex(coordinate)
	i1 = i0

	n := a.GetNumElements()
	switch {
	case i0 == -1 && a.circle:
		i0 = 0
		i1 = n - 1
	case n < 2:
		i1 = i0
	case i0 != -1:
		switch {
		case i0 == 0:
			i1++
		case i0 == n-1:
			i0--
		default:
			if a.GetCoordinateValue(i0)-coordinate > 1e-4 {
				i0--
			} else {
				i1++
			}
		}
		if a.circle {
			i0 = ((i0 % n) + n) % n
			i1 = ((i1 % n) + n) % n
		}
	}
	return i0, i1, i0 >= 0 && i1 < n
}

// Normalize brings coordinate into the range [GetStart(), GetStart()+circle],
// using the axis' starting value as the reference point for the remainder.
func (a *Axis) Normalize(coordinate, circle float64) float64 {
	if coordinate < a.start || coordinate > a.start+circle {
		result := math.Remainder(coordinate-a.start, circle)
		if result < 0 {
			result += circle
		}
		return result + a.start
	}
	return coordinate
}

// Convert rescales the axis' stored values from its current unit to unit,
// recomputing derived properties afterward. It is a no-op if the two units
// are equivalent (e.g. both already "degrees").
func (a *Axis) Convert(unit string) error {
	if a.unit == "" {
		return ErrUnitError
	}
	if a.unit == unit {
		return nil
	}
	for i, v := range a.points {
		c, err := convertUnit(v, a.unit, unit)
		if err != nil {
			return err
		}
		a.points[i] = c
	}
	a.unit = unit
	a.computeProperties()
	return nil
}

// GetCoordinateValue returns the ith coordinate value, 0 <= index < GetNumElements().
func (a *Axis) GetCoordinateValue(index int) float64 { return a.points[index] }

// GetNumElements returns the number of points on this axis.
func (a *Axis) GetNumElements() int { return len(a.points) }

// GetMinValue returns the minimum coordinate value.
func (a *Axis) GetMinValue() float64 {
	m := a.points[0]
	for _, v := range a.points[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// GetMaxValue returns the maximum coordinate value.
func (a *Axis) GetMaxValue() float64 {
	m := a.points[0]
	for _, v := range a.points[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// IsRegular reports whether points[i] == GetStart() + i*GetIncrement().
func (a *Axis) IsRegular() bool { return a.regular }

// IsCircle reports whether this is a full 360° regular longitude axis.
func (a *Axis) IsCircle() bool { return a.circle }

// Kind returns the axis' classification.
func (a *Axis) Kind() AxisKind { return a.kind }

// Unit returns the axis' unit string, and whether one is set.
func (a *Axis) Unit() (string, bool) { return a.unit, a.unit != "" }

// GetStart returns the starting value, meaningful when IsRegular is true.
func (a *Axis) GetStart() float64 { return a.start }

// GetIncrement returns the spacing, meaningful when IsRegular is true.
func (a *Axis) GetIncrement() float64 { return a.inc }

// Equal reports whether two axes carry the same points, unit and kind.
func (a *Axis) Equal(b *Axis) bool {
	if a.unit != b.unit || a.kind != b.kind || len(a.points) != len(b.points) {
		return false
	}
	for i := range a.points {
		if a.points[i] != b.points[i] {
			return false
		}
	}
	return true
}

// axisKindFromAttributes classifies an axis the way GridReader.Open does:
// by standard_name first, then by recognized unit string, then by a generic
// "axis" attribute (X/Y), falling back to AxisUnknown.
func axisKindFromAttributes(standardName, unit, genericAxis string) AxisKind {
	switch standardName {
	case "latitude":
		return AxisLatitude
	case "longitude":
		return AxisLongitude
	}
	if unit != "" {
		if IsLatitudeUnit(unit) {
			return AxisLatitude
		}
		if IsLongitudeUnit(unit) {
			return AxisLongitude
		}
	}
	switch genericAxis {
	case "Y", "y":
		return AxisY
	case "X", "x":
		return AxisX
	}
	return AxisUnknown
}
