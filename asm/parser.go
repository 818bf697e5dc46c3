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

package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"
	"unicode/utf8"

	"github.com/db47h/intcode/vm"
)

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

// ErrAsm is the error type returned by Assemble. It holds up to 10 entries.
type ErrAsm []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsm) Error() string {
	var b strings.Builder
	for k, err := range e {
		if k > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Pos.String())
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	return b.String()
}

const maxErrors = 10

type parser struct {
	i      []vm.Cell
	pc     int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]labelSite
	data   bool
	errs   ErrAsm
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	return p
}

func (p *parser) write(v vm.Cell) {
	if p.pc >= len(p.i) {
		t := make([]vm.Cell, p.pc+1, 2*p.pc+16)
		copy(t, p.i)
		p.i = t
	}
	p.i[p.pc] = v
	p.pc++
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, struct {
			Pos scanner.Position
			Msg string
		}{pos, msg})
	}
}

func (p *parser) useLabel(name string, pos scanner.Position) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{pos, -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{pos, p.pc})
}

// scan returns the next token, skipping comments. It returns false at EOF.
func (p *parser) scan() (string, bool) {
	for {
		tok := p.s.Scan()
		if tok == scanner.EOF {
			return "", false
		}
		s := p.s.TokenText()
		if s != "(" {
			return s, true
		}
		for tok = p.s.Scan(); tok != scanner.EOF && p.s.TokenText() != ")"; tok = p.s.Scan() {
		}
	}
}

func isLabelName(s string) bool {
	if s == "" || s == "rb" || !(unicode.IsLetter(rune(s[0])) || s[0] == '_') {
		return false
	}
	for _, r := range s {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

// value parses an integer, a character literal or a constant. If s is a label
// name, it returns the name in lbl so that the caller can register a label
// use.
func (p *parser) value(s string) (v vm.Cell, lbl string, err error) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), "", nil
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return 0, "", fmt.Errorf("invalid character literal %s", s)
		}
		r, _ := utf8.DecodeRuneInString(u)
		return vm.Cell(r), "", nil
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), "", nil
	}
	if isLabelName(s) {
		return 0, s, nil
	}
	return 0, "", fmt.Errorf("invalid value %s", s)
}

// emit writes a value, registering a label use if needed.
func (p *parser) emit(s string, pos scanner.Position) {
	v, lbl, err := p.value(s)
	if err != nil {
		p.error(pos, err.Error())
	}
	if lbl != "" {
		p.useLabel(lbl, pos)
	}
	p.write(v)
}

// operand decodes the addressing mode of an operand. It returns the mode, the
// text of the value and, for rb+n and rb-n, the sign of the offset.
func operand(s string) (vm.Mode, string, vm.Cell) {
	s = strings.TrimSuffix(s, ",")
	switch {
	case len(s) > 2 && s[0] == '[' && s[len(s)-1] == ']':
		return vm.Position, s[1 : len(s)-1], 0
	case s == "rb":
		return vm.Relative, "0", 0
	case len(s) > 3 && s[:2] == "rb" && (s[2] == '+' || s[2] == '-'):
		if s[2] == '-' {
			return vm.Relative, s[3:], -1
		}
		return vm.Relative, s[3:], 1
	}
	return vm.Immediate, s, 0
}

func (p *parser) instruction(op vm.Op) {
	var (
		args  [3]string
		signs [3]vm.Cell
		at    [3]scanner.Position
		word  = vm.Cell(op)
		mul   = vm.Cell(100)
		pos   = p.s.Position
	)
	for k := 0; k < op.Params(); k++ {
		s, ok := p.scan()
		if !ok {
			p.error(pos, "missing operand for "+op.String())
			return
		}
		at[k] = p.s.Position
		m, v, sign := operand(s)
		if m == vm.Immediate && k == op.Dst() {
			p.error(at[k], "immediate write operand "+s)
		}
		word += vm.Cell(m) * mul
		mul *= 10
		args[k], signs[k] = v, sign
	}
	p.write(word)
	for k := 0; k < op.Params(); k++ {
		if signs[k] == 0 {
			p.emit(args[k], at[k])
			continue
		}
		v, lbl, err := p.value(args[k])
		if err != nil || lbl != "" {
			p.error(at[k], "invalid relative offset "+args[k])
		}
		p.write(signs[k] * v)
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) ([]vm.Cell, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for len(p.errs) < maxErrors {
		s, ok := p.scan()
		if !ok {
			break
		}
		pos := p.s.Position
		switch {
		case s[0] == ':':
			n := s[1:]
			if !isLabelName(n) {
				p.error(pos, "Invalid label name "+s)
				break
			}
			if cst, ok := p.consts[n]; ok {
				p.error(pos, "Label redefinition: "+n+", previously defined as a constant here: "+cst.pos.String())
				break
			}
			if l, ok := p.labels[n]; ok {
				if l.address != -1 {
					p.error(pos, "Label redefinition: "+n+", previous definition here: "+l.pos.String())
				}
				l.address = p.pc
				l.pos = pos
			} else {
				p.labels[n] = &label{labelSite{pos, p.pc}, nil}
			}
		case s == ".org":
			a, ok := p.scan()
			v, lbl, err := p.value(a)
			if !ok || err != nil || lbl != "" || v < 0 {
				p.error(pos, ".org: expected positive integer or constant")
				break
			}
			p.pc = int(v)
		case s == ".equ":
			n, _ := p.scan()
			if !isLabelName(n) {
				p.error(pos, ".equ: expected identifier, got "+n)
				break
			}
			if l, ok := p.labels[n]; ok {
				p.error(pos, ".equ: redefinition of "+n+", previously defined/used as a label here: "+l.pos.String())
				break
			}
			a, _ := p.scan()
			v, lbl, err := p.value(a)
			if err != nil || lbl != "" {
				p.error(pos, ".equ: expected integer or constant, got "+a)
				break
			}
			p.consts[n] = labelSite{pos, int(v)}
		case s == ".dat":
			p.data = true
		case s[0] == '.':
			p.error(pos, "Unknown dot directive: "+s)
		default:
			if op, ok := vm.OpByName(s); ok {
				p.data = false
				p.instruction(op)
				break
			}
			if !p.data {
				p.error(pos, "Unexpected token outside of .dat: "+s)
				break
			}
			p.emit(strings.TrimSuffix(s, ","), pos)
		}
	}

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			p.error(l.uses[0].pos, "Undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] += vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.i, nil
}
