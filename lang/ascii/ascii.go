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

// Package ascii provides utility functions for Intcode programs that speak
// ASCII over their I/O channel: one character per value, lines terminated by
// a newline (10). Values outside of the ASCII range are program results.
package ascii

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/errw"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// MaxASCII is the largest value considered to be an ASCII character.
const MaxASCII = 127

// Encode returns the cells encoding s, one cell per byte.
func Encode(s string) []vm.Cell {
	c := make([]vm.Cell, len(s))
	for i := 0; i < len(s); i++ {
		c[i] = vm.Cell(s[i])
	}
	return c
}

// Line is like Encode but terminates the line with a newline if s does not
// already end with one.
func Line(s string) []vm.Cell {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return Encode(s)
}

// Decode splits cells into text and non-ASCII values. Text contains the
// characters in the range 0-127, values contains everything else, both in
// order of appearance.
func Decode(cells []vm.Cell) (text string, values []vm.Cell) {
	var b strings.Builder
	for _, c := range cells {
		if c >= 0 && c <= MaxASCII {
			b.WriteByte(byte(c))
			continue
		}
		values = append(values, c)
	}
	return b.String(), values
}

// Writer returns an output handler that writes ASCII values as characters to
// w, and other values as decimal numbers on their own line.
func Writer(w io.Writer) vm.OutHandler {
	ew := errw.New(w)
	return func(_ *vm.Instance, v vm.Cell) error {
		if v >= 0 && v <= MaxASCII {
			ew.Write([]byte{byte(v)})
			return ew.Err
		}
		io.WriteString(ew, strconv.FormatInt(int64(v), 10))
		ew.Write([]byte{'\n'})
		return ew.Err
	}
}

// Control characters handled by LineReader.
const (
	eot       = 4
	backspace = 8
	del       = 127
)

// LineReader returns an input handler that reads one line from r each time
// the machine needs input, and feeds it to the machine, newline included.
//
// If echo is not nil, LineReader assumes that r is a terminal in raw mode:
// typed characters are echoed to echo, backspace and delete erase the last
// character, and Ctrl-D on an empty line ends input. Carriage returns are
// converted to newlines.
//
// At the end of input, the handler returns io.EOF. A last line without a
// trailing newline is fed as is.
func LineReader(r io.Reader, echo io.Writer) vm.InHandler {
	br := bufio.NewReader(r)
	var ew *errw.ErrWriter
	if echo != nil {
		ew = errw.New(echo)
	}
	return func(i *vm.Instance) error {
		var line []byte
		for {
			c, err := br.ReadByte()
			if err != nil {
				if err == io.EOF && len(line) > 0 {
					i.Feed(Encode(string(line))...)
					return nil
				}
				if err == io.EOF {
					return err
				}
				return errors.Wrap(err, "read failed")
			}
			if ew == nil {
				line = append(line, c)
				if c == '\n' {
					break
				}
				continue
			}
			switch c {
			case eot:
				if len(line) == 0 {
					return io.EOF
				}
				continue
			case backspace, del:
				if len(line) > 0 {
					line = line[:len(line)-1]
					ew.Write([]byte{backspace, ' ', backspace})
				}
				continue
			case '\r':
				c = '\n'
			}
			line = append(line, c)
			ew.Write([]byte{c})
			if c == '\n' {
				break
			}
		}
		if ew != nil && ew.Err != nil {
			return ew.Err
		}
		i.Feed(Encode(string(line))...)
		return nil
	}
}
