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
	"os"
	"strings"
	"time"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// dateLayouts are the date-attribute formats this engine accepts, tried in
// order. The original engine's DateTime class accepts a handful of
// ISO-8601-ish variants; this module only needs to recover an epoch second
// count, so the full calendar machinery (see spec.md's epoch-only non-goal)
// is not reproduced.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate parses a NetCDF "date" attribute into POSIX epoch seconds.
func parseDate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.Unix()), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrSyntaxError)
}

// ParseDate parses a date string in one of the formats accepted throughout
// this package ("2006-01-02 15:04:05", "2006-01-02T15:04:05",
// "2006-01-02") into POSIX epoch seconds. Exported for callers building a
// TimeSeries' file list from their own configuration format.
func ParseDate(s string) (float64, error) {
	return parseDate(s)
}

// Reader abstracts a single time slice of gridded velocity data on disk.
// GridReader (netCDFReader below) is the only concrete implementation in
// this module, but TimeSeries is written against the interface so a second
// backend could be added without touching it — mirroring the Field
// interface's own separation of contract from implementation.
type Reader interface {
	// Open reads the file's header and discovers its spatial axes.
	Open(filename string) error
	// Load reads variable name (with optional unit conversion to unit, or
	// the variable's native unit if unit is empty) into memory.
	Load(name, unit string) error
	// Interpolate bilinearly samples the loaded variable at (longitude,
	// latitude), returning fillValue for points outside the grid. cell is
	// an in/out cache the caller owns and reuses across nearby queries.
	Interpolate(longitude, latitude, fillValue float64, cell *cellProperties) (float64, error)
	// GetDateTime reads the "date" attribute of variable name as a POSIX
	// epoch second count.
	GetDateTime(name string) (float64, error)
	// Axes returns the reader's x and y spatial axes.
	Axes() (x, y *Axis)
}

// netCDFReader is a Reader backed by github.com/ctessum/cdf. It implements
// the same Open/Load/Interpolate/GetDateTime shape as the original engine's
// Netcdf reader, with the CF-attribute axis discovery and bilinear
// interpolation reimplemented directly on top of cdf's low-level decode.
type netCDFReader struct {
	file *cdf.File
	f    *os.File

	axisX, axisY *Axis
	yx           bool // true if the loaded variable is shaped [y][x], false if [x][y]

	dims []int
	data []float64
	sm   scaleMissing
}

// NewGridReader returns a Reader backed by a NetCDF file, unopened.
func NewGridReader() Reader {
	return &netCDFReader{}
}

func (r *netCDFReader) Open(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("lagrangian: open %s: %w", filename, err)
	}
	file, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("lagrangian: open %s: %w", filename, err)
	}
	r.f, r.file = f, file

	for _, name := range file.Header.Variables() {
		dims := file.Header.Dimensions(name)
		if len(dims) != 1 || dims[0] != name {
			continue // not a coordinate variable
		}

		standardName, _ := r.stringAttribute(name, "standard_name")
		unit, _ := r.stringAttribute(name, "units")
		genericAxis, _ := r.stringAttribute(name, "axis")
		kind := axisKindFromAttributes(standardName, unit, genericAxis)
		if kind == AxisUnknown {
			continue
		}

		values := r.readFloats(name)
		axis := NewAxis(values, kind, unit)

		switch kind {
		case AxisLatitude, AxisY:
			r.axisY = axis
		case AxisLongitude, AxisX:
			r.axisX = axis
		}
	}

	if r.axisX == nil || r.axisY == nil {
		return fmt.Errorf("lagrangian: %s: %w", filename, ErrNoSpatialAxes)
	}

	// Axes are always worked with in degrees.
	if r.axisX.Kind() == AxisLongitude {
		if err := r.axisX.Convert("degrees"); err != nil {
			return fmt.Errorf("lagrangian: %s: %w", filename, err)
		}
	}
	if r.axisY.Kind() == AxisLatitude {
		if err := r.axisY.Convert("degrees"); err != nil {
			return fmt.Errorf("lagrangian: %s: %w", filename, err)
		}
	}
	return nil
}

func (r *netCDFReader) Axes() (x, y *Axis) { return r.axisX, r.axisY }

func (r *netCDFReader) Load(name, unit string) error {
	if r.file == nil {
		return ErrNoDataLoaded
	}
	dims := r.file.Header.Lengths(name)
	if len(dims) != 2 {
		return fmt.Errorf("lagrangian: %s: expected a 2-D variable, got %d dimensions", name, len(dims))
	}

	nread := dims[0] * dims[1]
	start := make([]int, 2)
	end := []int{dims[0], dims[1]}
	rdr := r.file.Reader(name, start, end)
	buf := rdr.Zero(nread)
	if _, err := rdr.Read(buf); err != nil {
		return fmt.Errorf("lagrangian: read %s: %w", name, err)
	}

	data := make([]float64, nread)
	switch v := buf.(type) {
	case []float64:
		copy(data, v)
	case []float32:
		for i, x := range v {
			data[i] = float64(x)
		}
	case []int32:
		for i, x := range v {
			data[i] = float64(x)
		}
	case []int16:
		for i, x := range v {
			data[i] = float64(x)
		}
	default:
		return fmt.Errorf("lagrangian: read %s: unsupported storage type %T", name, v)
	}

	r.sm = newScaleMissingFromAttributes(r, name)
	r.sm.convertScaleOffset(data)

	if unit != "" {
		nativeUnit, _ := r.stringAttribute(name, "units")
		if nativeUnit != "" && nativeUnit != unit {
			for i, v := range data {
				if math.IsNaN(v) {
					continue
				}
				c, err := convertUnit(v, nativeUnit, unit)
				if err != nil {
					return fmt.Errorf("lagrangian: %s: %w", name, err)
				}
				data[i] = c
			}
		}
	}

	r.dims = dims
	r.data = data
	r.yx = dims[0] == r.axisY.GetNumElements()
	return nil
}

// AsDenseArray returns the last-loaded variable as a sparse.DenseArray,
// shaped [ny][nx] regardless of the variable's on-disk index order.
func (r *netCDFReader) AsDenseArray() (*sparse.DenseArray, error) {
	if r.data == nil {
		return nil, ErrNoDataLoaded
	}
	ny, nx := r.axisY.GetNumElements(), r.axisX.GetNumElements()
	out := sparse.ZerosDense(ny, nx)
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			out.Set(r.getValue(ix, iy, math.NaN()), iy, ix)
		}
	}
	return out, nil
}

// getValue returns the value at (ix, iy), respecting the on-disk index
// order discovered in Load, or fillValue if out of bounds.
func (r *netCDFReader) getValue(ix, iy int, fillValue float64) float64 {
	nx, ny := r.axisX.GetNumElements(), r.axisY.GetNumElements()
	if ix < 0 || ix >= nx || iy < 0 || iy >= ny {
		return fillValue
	}
	var idx int
	if r.yx {
		idx = iy*nx + ix
	} else {
		idx = ix*ny + iy
	}
	return r.data[idx]
}

// bilinearInterpolation implements the same formula as the original
// engine's reader::netcdf::BilinearInterpolation.
func bilinearInterpolation(x0, x1, y0, y1, z00, z10, z01, z11, x, y float64) float64 {
	dx0 := x - x0
	dy0 := y - y0
	dx1 := x1 - x
	dy1 := y1 - y

	return (dy1*(dx1*z00+dx0*z10) + dy0*(dx1*z01+dx0*z11)) / ((x1 - x0) * (y1 - y0))
}

func (r *netCDFReader) Interpolate(longitude, latitude, fillValue float64, cell *cellProperties) (float64, error) {
	if r.data == nil {
		return 0, ErrNoDataLoaded
	}

	x := r.axisX.Normalize(longitude, 360)

	if !cell.contains(x, latitude) {
		ix0, ix1, okx := r.axisX.FindIndexes(x)
		iy0, iy1, oky := r.axisY.FindIndexes(latitude)
		if !okx || !oky {
			*cell = newCellProperties()
			return fillValue, nil
		}
		cell.update(
			r.axisX.GetCoordinateValue(ix0), r.axisX.GetCoordinateValue(ix1),
			r.axisY.GetCoordinateValue(iy0), r.axisY.GetCoordinateValue(iy1),
			ix0, ix1, iy0, iy1,
		)
	}

	return bilinearInterpolation(
		cell.x0, cell.x1, cell.y0, cell.y1,
		r.getValue(cell.ix0, cell.iy0, fillValue),
		r.getValue(cell.ix1, cell.iy0, fillValue),
		r.getValue(cell.ix0, cell.iy1, fillValue),
		r.getValue(cell.ix1, cell.iy1, fillValue),
		x, latitude,
	), nil
}

func (r *netCDFReader) GetDateTime(name string) (float64, error) {
	s, ok := r.stringAttribute(name, "date")
	if !ok {
		return 0, fmt.Errorf("lagrangian: %s:date: no such attribute", name)
	}
	t, err := parseDate(s)
	if err != nil {
		return 0, fmt.Errorf("lagrangian: %s:date: %w", name, err)
	}
	return t, nil
}

// stringAttribute reads a variable attribute, case-insensitively, as a
// string.
func (r *netCDFReader) stringAttribute(varname, attr string) (string, bool) {
	for _, a := range r.file.Header.Attributes(varname) {
		if !strings.EqualFold(a, attr) {
			continue
		}
		v := r.file.Header.GetAttribute(varname, a)
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

// FloatAttribute implements attributeReader for scaleMissing.
func (r *netCDFReader) FloatAttribute(varname, attr string) (float64, bool) {
	v := r.file.Header.GetAttribute(varname, attr)
	return scalarFloat(v)
}

// FloatAttributePair implements attributeReader for scaleMissing.
func (r *netCDFReader) FloatAttributePair(varname, attr string) (lo, hi float64, ok bool) {
	v := r.file.Header.GetAttribute(varname, attr)
	switch a := v.(type) {
	case []float64:
		if len(a) == 2 {
			return a[0], a[1], true
		}
	case []float32:
		if len(a) == 2 {
			return float64(a[0]), float64(a[1]), true
		}
	}
	return 0, 0, false
}

func scalarFloat(v interface{}) (float64, bool) {
	switch a := v.(type) {
	case float64:
		return a, true
	case float32:
		return float64(a), true
	case int32:
		return float64(a), true
	case int16:
		return float64(a), true
	case []float64:
		if len(a) == 1 {
			return a[0], true
		}
	case []float32:
		if len(a) == 1 {
			return float64(a[0]), true
		}
	}
	return 0, false
}

// readFloats reads an entire 1-D coordinate variable as float64.
func (r *netCDFReader) readFloats(name string) []float64 {
	dims := r.file.Header.Lengths(name)
	n := 1
	for _, d := range dims {
		n *= d
	}
	start := make([]int, len(dims))
	end := append([]int(nil), dims...)
	rdr := r.file.Reader(name, start, end)
	buf := rdr.Zero(n)
	rdr.Read(buf)

	out := make([]float64, n)
	switch v := buf.(type) {
	case []float64:
		copy(out, v)
	case []float32:
		for i, x := range v {
			out[i] = float64(x)
		}
	case []int32:
		for i, x := range v {
			out[i] = float64(x)
		}
	}
	return out
}
