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
	"context"
	"fmt"
	"sort"

	"github.com/ctessum/requestcache"
)

// TimeSeries is a time-ordered list of gridded data files covering the same
// variable, with a bounded pool of open GridReaders recycled by filename so
// that advancing through the series does not re-open a file already in
// memory. The recycling pool is requestcache-backed (requestcache.Memory),
// which gives TimeSeries the same "keep N most recently used slots" policy
// the original engine's hand-rolled filename map implemented, without
// re-deriving an LRU from scratch.
type TimeSeries struct {
	dates     []float64
	filenames []string

	varName   string
	unit      string
	fillValue float64

	cache *requestcache.Cache

	axisX, axisY *Axis
	sameCoords   bool
}

// NewTimeSeries builds a TimeSeries from a list of (date, filename) pairs,
// which need not already be sorted — they are sorted by date here, exactly
// as the original engine's FileList constructor does. poolSize bounds how
// many GridReaders are kept open concurrently.
func NewTimeSeries(files map[float64]string, varName, unit string, fillValue float64, poolSize int) (*TimeSeries, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("lagrangian: time series has no files: %w", ErrInvalidArgument)
	}
	if poolSize < 2 {
		return nil, fmt.Errorf("lagrangian: time series pool size must be at least 2: %w", ErrInvalidArgument)
	}

	ts := &TimeSeries{varName: varName, unit: unit, fillValue: fillValue}
	for d, f := range files {
		ts.dates = append(ts.dates, d)
		ts.filenames = append(ts.filenames, f)
	}
	sort.Sort(ts)

	ts.cache = requestcache.NewCache(ts.open, 1, requestcache.Memory(poolSize))

	first, err := ts.readerFor(ts.filenames[0])
	if err != nil {
		return nil, err
	}
	ts.axisX, ts.axisY = first.Axes()
	ts.sameCoords = true
	for _, f := range ts.filenames[1:] {
		r, err := ts.readerFor(f)
		if err != nil {
			return nil, err
		}
		x, y := r.Axes()
		if !x.Equal(ts.axisX) || !y.Equal(ts.axisY) {
			ts.sameCoords = false
		}
	}

	return ts, nil
}

// sort.Interface, to sort dates/filenames together by date.
func (ts *TimeSeries) Len() int      { return len(ts.dates) }
func (ts *TimeSeries) Swap(i, j int) {
	ts.dates[i], ts.dates[j] = ts.dates[j], ts.dates[i]
	ts.filenames[i], ts.filenames[j] = ts.filenames[j], ts.filenames[i]
}
func (ts *TimeSeries) Less(i, j int) bool { return ts.dates[i] < ts.dates[j] }

// SameCoordinates reports whether every file in the series shares the same
// spatial axes. When false, callers relying on a single (axisX, axisY) pair
// for the whole series should instead consult each bracketing reader's own
// Axes().
func (ts *TimeSeries) SameCoordinates() bool { return ts.sameCoords }

// Axes returns the series' spatial axes, valid when SameCoordinates is true.
func (ts *TimeSeries) Axes() (x, y *Axis) { return ts.axisX, ts.axisY }

// open is the requestcache ProcessFunc: it opens and loads the named file
// into a fresh GridReader.
func (ts *TimeSeries) open(_ context.Context, payload interface{}) (interface{}, error) {
	filename := payload.(string)
	r := NewGridReader()
	if err := r.Open(filename); err != nil {
		return nil, err
	}
	if err := r.Load(ts.varName, ts.unit); err != nil {
		return nil, err
	}
	return r, nil
}

func (ts *TimeSeries) readerFor(filename string) (Reader, error) {
	req := ts.cache.NewRequest(context.Background(), filename, filename)
	result, err := req.Result()
	if err != nil {
		return nil, fmt.Errorf("lagrangian: %s: %w", filename, err)
	}
	return result.(Reader), nil
}

// bracket returns the pair of indices (i0, i1) such that dates[i0] <= t <=
// dates[i1], and the weight of the upper reader ((t-dates[i0])/(dates[i1]-dates[i0])).
func (ts *TimeSeries) bracket(t float64) (i0, i1 int, weight float64, err error) {
	n := len(ts.dates)
	if t < ts.dates[0] || t > ts.dates[n-1] {
		return 0, 0, 0, fmt.Errorf("lagrangian: %w", ErrDateOutOfRange)
	}
	i1 = sort.Search(n, func(i int) bool { return ts.dates[i] >= t })
	if i1 == 0 {
		return 0, 0, 0, nil
	}
	i0 = i1 - 1
	if ts.dates[i1] == t {
		return i1, i1, 0, nil
	}
	weight = (t - ts.dates[i0]) / (ts.dates[i1] - ts.dates[i0])
	return i0, i1, weight, nil
}

// bracketReaders resolves the pair of readers bracketing t and the
// interpolation weight of the upper one. Resolving a reader only ever opens
// a file the first time it is requested (requestcache.Memory recycles
// already-open slots), but by the time this is called from Interpolate, Load
// is expected to have already warmed the pool so no real I/O happens here.
func (ts *TimeSeries) bracketReaders(t float64) (lower, upper Reader, weight float64, err error) {
	i0, i1, weight, err := ts.bracket(t)
	if err != nil {
		return nil, nil, 0, err
	}

	lower, err = ts.readerFor(ts.filenames[i0])
	if err != nil {
		return nil, nil, 0, err
	}
	upper, err = ts.readerFor(ts.filenames[i1])
	if err != nil {
		return nil, nil, 0, err
	}
	return lower, upper, weight, nil
}

// Load opens/recycles every reader spanning the union of the index ranges
// bracketing t0 and t1, so that later Interpolate calls over [t0, t1] never
// have to perform file I/O. This mirrors the original engine's
// TimeSerie::Load(double, double), which unions FindIndexes(t0) and
// FindIndexes(t1) before loading the resulting index range; here the
// requestcache-backed pool takes the place of its hand-rolled readers_
// buffer, so there is nothing to resize — only to pre-populate.
func (ts *TimeSeries) Load(t0, t1 float64) error {
	i00, i01, _, err := ts.bracket(t0)
	if err != nil {
		return err
	}
	i10, i11, _, err := ts.bracket(t1)
	if err != nil {
		return err
	}

	lo := minInt(i00, minInt(i01, minInt(i10, i11)))
	hi := maxInt(i00, maxInt(i01, maxInt(i10, i11)))
	for i := lo; i <= hi; i++ {
		if _, err := ts.readerFor(ts.filenames[i]); err != nil {
			return err
		}
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Interpolate samples the series at (t, longitude, latitude): time
// interpolation between the two bracketing readers, each itself bilinearly
// interpolated in space. cell is supplied by the caller — one per worker,
// reused across the u and v components exactly as the original engine's
// field::TimeSerie::Compute shares a single CellProperties between both
// velocity components — and must already be warmed by Load before this is
// called from inside worker goroutines.
func (ts *TimeSeries) Interpolate(t, longitude, latitude float64, cell *cellProperties) (float64, error) {
	lower, upper, weight, err := ts.bracketReaders(t)
	if err != nil {
		return 0, err
	}

	v0, err := lower.Interpolate(longitude, latitude, ts.fillValue, cell)
	if err != nil {
		return 0, err
	}
	if lower == upper || weight == 0 {
		return v0, nil
	}
	v1, err := upper.Interpolate(longitude, latitude, ts.fillValue, cell)
	if err != nil {
		return 0, err
	}
	return v0*(1-weight) + v1*weight, nil
}
