// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"bytes"
	"errors"
	"testing"
)

func TestMemory_roundTrip(t *testing.T) {
	m := NewMemory([]Cell{1, 2, 3})
	for _, a := range []Cell{0, 2, 3, 17, 4000, 5000, 1 << 40, 1<<62 + 3} {
		if v, err := m.Read(a + 1); err != nil || (a+1 > 2 && v != 0) {
			t.Fatalf("Read(%d) before write: %d, %v", a+1, v, err)
		}
		v := -a - 42
		if err := m.Write(a, v); err != nil {
			t.Fatalf("Write(%d): %v", a, err)
		}
		if g, err := m.Read(a); err != nil || g != v {
			t.Fatalf("Read(%d): expected %d, got %d, %v", a, v, g, err)
		}
	}
}

func TestMemory_growth(t *testing.T) {
	var m Memory
	if v, _ := m.Read(10); v != 0 {
		t.Fatalf("zero Memory: expected 0, got %d", v)
	}
	m.Write(9, 1)
	if l := len(m.dense); l != 10 {
		t.Fatalf("expected dense length 10, got %d", l)
	}
	// far write goes to the sparse map
	far := Cell(len(m.dense) + sparseGap + 10)
	m.Write(far, 7)
	if len(m.sparse) != 1 || Cell(len(m.dense)) > far {
		t.Fatalf("expected a sparse cell, got dense %d, sparse %v", len(m.dense), m.sparse)
	}
	if l := m.Len(); l != int(far)+1 {
		t.Fatalf("expected Len %d, got %d", far+1, l)
	}
	// growing the dense part up to the sparse cell migrates it.
	for a := Cell(10); a <= far; a += sparseGap / 2 {
		m.Write(a, 1)
	}
	m.Write(far+1, 1)
	if len(m.sparse) != 0 {
		t.Fatalf("expected sparse cell migration, got %v", m.sparse)
	}
	if v, _ := m.Read(far); v != 7 {
		t.Fatalf("expected 7 after migration, got %d", v)
	}
	c := m.Cells()
	if len(c) != int(far)+2 || c[far] != 7 || c[9] != 1 {
		t.Fatalf("bad Cells() result: len %d", len(c))
	}
}

func TestMemory_farWrite(t *testing.T) {
	m := NewMemory([]Cell{99})
	m.Write(1<<40, 1)
	m.Write(1<<40+2, -3)
	if l := m.Len(); l != 1<<40+3 {
		t.Fatalf("expected Len %d, got %d", 1<<40+3, l)
	}
	if c := m.Cells(); len(c) != 1 || c[0] != 99 {
		t.Fatalf("expected [99], got %v", c)
	}
	addrs, vals := m.Sparse()
	if !cellsEqual(addrs, []Cell{1 << 40, 1<<40 + 2}) || !cellsEqual(vals, []Cell{1, -3}) {
		t.Fatalf("bad sparse cells: %v %v", addrs, vals)
	}
	var b bytes.Buffer
	if err := m.Dump(&b); err != nil {
		t.Fatal(err)
	}
	if exp := "99\n1099511627776:1\n1099511627778:-3\n"; b.String() != exp {
		t.Fatalf("expected %q, got %q", exp, b.String())
	}
}

func TestMemory_negative(t *testing.T) {
	var m Memory
	if _, err := m.Read(-1); !errors.Is(err, InvalidAddress) {
		t.Fatalf("Read(-1): expected InvalidAddress, got %v", err)
	}
	if err := m.Write(-5, 1); !errors.Is(err, InvalidAddress) {
		t.Fatalf("Write(-5): expected InvalidAddress, got %v", err)
	}
}

func cellsEqual(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}
