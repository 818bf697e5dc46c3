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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/errw"
	"github.com/pkg/errors"
)

// Parse reads an Intcode program: comma separated signed decimal integers.
// Leading and trailing white space is ignored, as is white space around
// commas.
func Parse(r io.Reader) ([]Cell, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Parse")
	}
	return parse(string(b))
}

// ParseString is like Parse for programs held in a string.
func ParseString(s string) ([]Cell, error) {
	return parse(s)
}

func parse(s string) ([]Cell, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("Parse: empty program")
	}
	fields := strings.Split(s, ",")
	prog := make([]Cell, len(fields))
	for k, f := range fields {
		n, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Parse: cell %d", k)
		}
		prog[k] = Cell(n)
	}
	return prog, nil
}

// Load loads a program from file fileName.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	prog, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return prog, nil
}

// Format writes cells to w in the format read by Parse.
func Format(w io.Writer, cells []Cell) error {
	a := make([]int64, len(cells))
	for k, c := range cells {
		a[k] = int64(c)
	}
	return errw.WriteInts(w, a, ",")
}

// FormatString returns cells in the format read by Parse.
func FormatString(cells []Cell) string {
	var b bytes.Buffer
	Format(&b, cells)
	return b.String()
}
