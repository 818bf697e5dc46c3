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
	"io"
	"sort"
	"strconv"

	"github.com/db47h/intcode/internal/errw"
)

// Writes that land further than sparseGap cells past the end of the dense
// part of the memory go to the sparse map instead of growing the slice.
const sparseGap = 4096

// Memory is the address space of a machine. Addresses start at 0 and
// unwritten cells read as 0. Memory grows to hold any written address: cells
// close to the program are kept in a slice, far away cells in a map.
//
// The zero value is an empty memory ready to use.
type Memory struct {
	dense  []Cell
	sparse map[Cell]Cell
}

// NewMemory returns a Memory holding a copy of the given cells at addresses
// 0 to len(cells)-1.
func NewMemory(cells []Cell) *Memory {
	m := &Memory{dense: make([]Cell, len(cells))}
	copy(m.dense, cells)
	return m
}

// Read returns the value stored at addr. It only fails if addr is negative.
func (m *Memory) Read(addr Cell) (Cell, error) {
	if addr < 0 {
		return 0, InvalidAddress
	}
	if addr < Cell(len(m.dense)) {
		return m.dense[addr], nil
	}
	return m.sparse[addr], nil
}

// Write stores v at addr, growing the memory as needed. It only fails if addr
// is negative.
func (m *Memory) Write(addr, v Cell) error {
	if addr < 0 {
		return InvalidAddress
	}
	l := Cell(len(m.dense))
	switch {
	case addr < l:
		m.dense[addr] = v
	case addr-l < sparseGap:
		m.grow(addr + 1)
		m.dense[addr] = v
	default:
		if m.sparse == nil {
			m.sparse = make(map[Cell]Cell)
		}
		m.sparse[addr] = v
	}
	return nil
}

// grow extends the dense slice to n cells and migrates any sparse cells that
// now fall into it.
func (m *Memory) grow(n Cell) {
	if n <= Cell(cap(m.dense)) {
		m.dense = m.dense[:n]
	} else {
		t := make([]Cell, n, n+n/2)
		copy(t, m.dense)
		m.dense = t
	}
	for a, v := range m.sparse {
		if a < n {
			m.dense[a] = v
			delete(m.sparse, a)
		}
	}
}

// Len returns one past the highest address ever written (or loaded).
func (m *Memory) Len() int {
	n := len(m.dense)
	for a := range m.sparse {
		if int(a) >= n {
			n = int(a) + 1
		}
	}
	return n
}

// Cells returns a copy of the contiguous part of the memory, starting at
// address 0. Cells written far beyond it are not included, see Sparse.
func (m *Memory) Cells() []Cell {
	return append([]Cell(nil), m.dense...)
}

// Sparse returns the addresses and values of the cells not returned by Cells,
// sorted by address.
func (m *Memory) Sparse() (addrs, vals []Cell) {
	for a := range m.sparse {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	vals = make([]Cell, len(addrs))
	for i, a := range addrs {
		vals[i] = m.sparse[a]
	}
	return addrs, vals
}

// Dump writes the contiguous part of the memory to w on a single line in the
// format read by Parse, followed by one addr:value line per sparse cell.
func (m *Memory) Dump(w io.Writer) error {
	ew := errw.New(w)
	Format(ew, m.dense)
	ew.Write([]byte{'\n'})
	addrs, vals := m.Sparse()
	for k, a := range addrs {
		ew.WriteString(strconv.FormatInt(int64(a), 10))
		ew.Write([]byte{':'})
		ew.WriteString(strconv.FormatInt(int64(vals[k]), 10))
		ew.Write([]byte{'\n'})
	}
	return ew.Err
}
