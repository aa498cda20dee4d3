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

import "testing"

func TestCellPropertiesStartsEmpty(t *testing.T) {
	c := newCellProperties()
	if c.contains(0, 0) {
		t.Fatal("a freshly constructed cell cache should not contain any point")
	}
}

func TestCellPropertiesUpdateAndContains(t *testing.T) {
	c := newCellProperties()
	c.update(0, 1, 0, 1, 0, 1, 0, 1)
	if !c.contains(0.5, 0.5) {
		t.Error("point inside the cached box should be contained")
	}
	if c.contains(2, 2) {
		t.Error("point outside the cached box should not be contained")
	}
}
