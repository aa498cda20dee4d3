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

// Package result holds the bare numeric output of a map run: a set of named
// 2-D grids, gob-encoded to a single file. It intentionally does not write
// a CF-compliant NetCDF output file with coordinate variables and
// attributes — producing georeferenced output files in that sense is out
// of scope here, the same way it is out of scope for the reader.
package result

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/ctessum/sparse"
)

// Grid is one named output layer: Lambda1, Lambda2, Theta1, Theta2, DeltaT
// or FinalSeparation, each shaped [ny][nx] in row-major order.
type Grid struct {
	Name  string
	Shape []int
	Data  []float64
}

// FromDenseArray copies a sparse.DenseArray's shape and values into a named
// Grid.
func FromDenseArray(name string, a *sparse.DenseArray) Grid {
	data := make([]float64, len(a.Elements))
	copy(data, a.Elements)
	shape := make([]int, len(a.Shape))
	copy(shape, a.Shape)
	return Grid{Name: name, Shape: shape, Data: data}
}

// ToDenseArray rebuilds a sparse.DenseArray from a Grid.
func (g Grid) ToDenseArray() *sparse.DenseArray {
	a := sparse.ZerosDense(g.Shape...)
	copy(a.Elements, g.Data)
	return a
}

// Set is the full output of one map run: every requested exponent grid,
// keyed by name.
type Set struct {
	Grids []Grid
}

// Get returns the named grid, or nil if it wasn't produced.
func (s Set) Get(name string) *Grid {
	for i := range s.Grids {
		if s.Grids[i].Name == name {
			return &s.Grids[i]
		}
	}
	return nil
}

// WriteFile gob-encodes a Set to filename.
func WriteFile(filename string, s Set) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("lagrangian: result: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("lagrangian: result: encoding %s: %w", filename, err)
	}
	return nil
}

// ReadFile decodes a Set previously written by WriteFile.
func ReadFile(filename string) (Set, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Set{}, fmt.Errorf("lagrangian: result: %w", err)
	}
	defer f.Close()

	var s Set
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return Set{}, fmt.Errorf("lagrangian: result: decoding %s: %w", filename, err)
	}
	return s, nil
}
