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
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeParameterFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParameterCommentsAndContinuation(t *testing.T) {
	dir := t.TempDir()
	path := writeParameterFile(t, dir, "main.cfg", ""+
		"# a comment line\n"+
		"delta = 0.1 # trailing comment\n"+
		"note = this value \\\n"+
		"continues on the next line\n")

	p := NewParameter()
	if err := p.Load(path); err != nil {
		t.Fatal(err)
	}
	f, err := p.Float64("delta")
	if err != nil || f != 0.1 {
		t.Errorf("delta = %v, %v, want 0.1, nil", f, err)
	}
	v, ok := p.Value("note")
	if !ok || v != "this value continues on the next line" {
		t.Errorf("note = %q, %v, want joined continuation line", v, ok)
	}
}

func TestParameterIncludeResolvesRelativeToIncludingFile(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeParameterFile(t, sub, "included.cfg", "nested = 42\n")
	mainPath := writeParameterFile(t, root, "main.cfg", "#include \"sub/included.cfg\"\ntop = 1\n")

	p := NewParameter()
	if err := p.Load(mainPath); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.Value("nested"); v != "42" {
		t.Errorf("nested = %q, want 42", v)
	}
	if v, _ := p.Value("top"); v != "1" {
		t.Errorf("top = %q, want 1", v)
	}
}

func TestParameterEnvironmentInterpolation(t *testing.T) {
	t.Setenv("LAGRANGIAN_TEST_DIR", "/data/velocity")
	dir := t.TempDir()
	path := writeParameterFile(t, dir, "main.cfg", "file = ${LAGRANGIAN_TEST_DIR}/u.nc\n")

	p := NewParameter()
	if err := p.Load(path); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.Value("file"); v != "/data/velocity/u.nc" {
		t.Errorf("file = %q, want /data/velocity/u.nc", v)
	}
}

func TestParameterMultiValuedKey(t *testing.T) {
	dir := t.TempDir()
	path := writeParameterFile(t, dir, "main.cfg", ""+
		"file = 2017-05-01 a.nc\n"+
		"file = 2017-05-02 b.nc\n")

	p := NewParameter()
	if err := p.Load(path); err != nil {
		t.Fatal(err)
	}
	vs := p.Values("file")
	if len(vs) != 2 || vs[0] != "2017-05-01 a.nc" || vs[1] != "2017-05-02 b.nc" {
		t.Errorf("Values(\"file\") = %v, want both assignments in order", vs)
	}
}

func TestParameterAccessorErrors(t *testing.T) {
	p := NewParameter()
	if _, err := p.Float64("missing"); !errors.Is(err, ErrNoDataLoaded) {
		t.Errorf("Float64 on unset key: got %v, want ErrNoDataLoaded", err)
	}

	dir := t.TempDir()
	path := writeParameterFile(t, dir, "main.cfg", "bad = not-a-number\n")
	if err := p.Load(path); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Int("bad"); !errors.Is(err, ErrSyntaxError) {
		t.Errorf("Int on non-numeric value: got %v, want ErrSyntaxError", err)
	}
}

func TestParameterBoolAccessor(t *testing.T) {
	dir := t.TempDir()
	path := writeParameterFile(t, dir, "main.cfg", "verbose = true\n")
	p := NewParameter()
	if err := p.Load(path); err != nil {
		t.Fatal(err)
	}
	b, err := p.Bool("verbose")
	if err != nil || !b {
		t.Errorf("Bool(\"verbose\") = %v, %v, want true, nil", b, err)
	}
}
