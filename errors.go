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

import "errors"

// Error kinds returned by this package. Callers should test for these with
// errors.Is rather than comparing strings, since every returned error is
// wrapped with additional context via fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidArgument indicates a caller-supplied value is out of its
	// valid domain (e.g. a negative pool size, an empty file list).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoSpatialAxes indicates a GridReader could not find both an x and
	// a y coordinate variable in the opened file.
	ErrNoSpatialAxes = errors.New("unable to find the description of spatial coordinates")

	// ErrNoDataLoaded indicates an operation that requires Load to have
	// been called was attempted on a reader with no data in memory.
	ErrNoDataLoaded = errors.New("no data loaded into memory")

	// ErrDateOutOfRange indicates a requested instant falls outside the
	// span covered by a TimeSeries' file list.
	ErrDateOutOfRange = errors.New("date outside of the time series range")

	// ErrUnitError indicates a unit string could not be matched to a known
	// family or converted to the requested target unit.
	ErrUnitError = errors.New("unit error")

	// ErrSyntaxError indicates malformed input to the bespoke parameter
	// file grammar (unbalanced quotes, missing key, bad include).
	ErrSyntaxError = errors.New("syntax error")
)
