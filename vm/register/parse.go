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

package register

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// deviceRegs is the number of registers available in the Device dialect.
const deviceRegs = 6

// Program is a parsed register machine program.
type Program struct {
	Dialect Dialect
	Code    []Instruction
	IP      int // register bound to the instruction pointer, -1 if none
}

// Parse parses a program in the given dialect, one instruction per line.
// Blank lines are ignored.
func Parse(r io.Reader, d Dialect) (*Program, error) {
	p := &Program{Dialect: d, IP: -1}
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		f := strings.Fields(s.Text())
		if len(f) == 0 {
			continue
		}
		if f[0] == "#ip" {
			if d != Device || len(f) != 2 || len(p.Code) > 0 || p.IP >= 0 {
				return nil, errors.Errorf("line %d: unexpected #ip directive", line)
			}
			reg, err := strconv.Atoi(f[1])
			if err != nil || reg < 0 || reg >= deviceRegs {
				return nil, errors.Errorf("line %d: invalid register %q", line, f[1])
			}
			p.IP = reg
			continue
		}
		in, err := parseInstruction(f, d)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		p.Code = append(p.Code, in)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "Parse")
	}
	return p, nil
}

// ParseString parses the program in s.
func ParseString(s string, d Dialect) (*Program, error) {
	return Parse(strings.NewReader(s), d)
}

// Load loads a program from the named file.
func Load(fileName string, d Dialect) (*Program, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	p, err := Parse(f, d)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return p, nil
}

func parseInstruction(f []string, d Dialect) (in Instruction, err error) {
	op, ok := lookup(f[0], d)
	if !ok {
		return in, errors.Errorf("unknown %v instruction %q", d, f[0])
	}
	in.Op = op
	if len(f)-1 != op.Args() {
		return in, errors.Errorf("%s: expected %d operands, got %d", f[0], op.Args(), len(f)-1)
	}
	args := [3]*Operand{&in.A, &in.B, &in.C}
	for k, s := range f[1:] {
		var o Operand
		if d == Device {
			o, err = deviceOperand(s, ops[op].kinds[k])
		} else {
			o, err = letterOperand(s)
		}
		if err != nil {
			return in, errors.Wrapf(err, "%s operand %d", f[0], k+1)
		}
		*args[k] = o
	}
	// operands written to must be registers. Toggled instructions can break
	// this rule; they are skipped at run time.
	if dst := in.dst(); dst != nil && !dst.IsReg {
		return in, errors.Errorf("%s: cannot write to immediate value", f[0])
	}
	return in, nil
}

func letterOperand(s string) (Operand, error) {
	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
		return Reg(int(s[0] - 'a')), nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Operand{}, errors.Errorf("invalid operand %q", s)
	}
	return Imm(vm.Cell(v)), nil
}

func deviceOperand(s string, kind byte) (Operand, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Operand{}, errors.Errorf("invalid operand %q", s)
	}
	switch kind {
	case 'r':
		if v < 0 || v >= deviceRegs {
			return Operand{}, errors.Errorf("invalid register %d", v)
		}
		return Reg(int(v)), nil
	case '_':
		return Operand{}, nil
	}
	return Imm(vm.Cell(v)), nil
}
