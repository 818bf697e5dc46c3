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

// Package register implements the register machines of the assembunny, duet,
// sound and device dialects.
//
// All dialects are executed by the same interpreter loop and follow the same
// Step contract as vm.Instance: values sent by out or snd are returned as
// vm.Output events, rcv on an empty input queue returns vm.NeedInput, and
// jumping outside of the program halts the machine.
//
// The sound dialect runs duet programs with the sound semantics of snd and
// rcv: snd plays a sound and rcv x recovers the last played sound, returned as
// a vm.Output event, when x is not zero.
package register

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// ErrDivideByZero is returned by Step when a mod instruction has a zero
// divisor.
var ErrDivideByZero = errors.New("division by zero")

const numRegs = 26

// Machine is a register machine.
type Machine struct {
	code   []Instruction
	ip     int
	ipReg  int
	regs   [numRegs]vm.Cell
	device bool
	sound  bool

	played bool    // a sound has been played
	last   vm.Cell // last played sound

	status   vm.Status
	err      error
	input    []vm.Cell
	output   []vm.Cell
	counts   [numOps]int64
	insCount int64
}

// Option interface
type Option func(*Machine) error

// Input appends the given values to the input queue.
func Input(v ...vm.Cell) Option {
	return func(m *Machine) error { m.Feed(v...); return nil }
}

// Init sets the initial value of a register.
func Init(name string, v vm.Cell) Option {
	return func(m *Machine) error { return m.SetReg(name, v) }
}

// New creates a new machine running the given program. The program code is
// copied so that toggled instructions do not affect other machines.
func New(p *Program, opts ...Option) (*Machine, error) {
	m := &Machine{
		code:   append([]Instruction(nil), p.Code...),
		ipReg:  p.IP,
		device: p.Dialect == Device,
		sound:  p.Dialect == Sound,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Machine) regIndex(name string) (int, error) {
	if len(name) == 1 {
		c := name[0]
		switch {
		case m.device && c >= '0' && c < '0'+deviceRegs:
			return int(c - '0'), nil
		case !m.device && c >= 'a' && c <= 'z':
			return int(c - 'a'), nil
		}
	}
	return 0, errors.Errorf("invalid register name %q", name)
}

// Reg returns the value of the named register: a-z for the assembunny and
// duet dialects, 0-5 for the device dialect. Invalid names read as 0.
func (m *Machine) Reg(name string) vm.Cell {
	r, err := m.regIndex(name)
	if err != nil {
		return 0
	}
	return m.regs[r]
}

// SetReg sets the value of the named register.
func (m *Machine) SetReg(name string, v vm.Cell) error {
	r, err := m.regIndex(name)
	if err != nil {
		return err
	}
	m.regs[r] = v
	return nil
}

// IP returns the instruction pointer.
func (m *Machine) IP() int { return m.ip }

// Status returns the run status of the machine.
func (m *Machine) Status() vm.Status { return m.status }

// Halted reports whether the machine has halted.
func (m *Machine) Halted() bool { return m.status == vm.Halted }

// Count returns the number of times op has been executed.
func (m *Machine) Count(op Op) int64 {
	if op < 0 || op >= numOps {
		return 0
	}
	return m.counts[op]
}

// InstructionCount returns the number of instructions executed so far.
func (m *Machine) InstructionCount() int64 { return m.insCount }

// Feed appends values to the input queue.
func (m *Machine) Feed(v ...vm.Cell) {
	if len(v) == 0 {
		return
	}
	m.input = append(m.input, v...)
	if m.status == vm.Blocked {
		m.status = vm.Running
	}
}

// Pending returns the number of values waiting in the input queue.
func (m *Machine) Pending() int { return len(m.input) }

// TakeOutput returns the values buffered by Run and clears the buffer.
func (m *Machine) TakeOutput() []vm.Cell {
	o := m.output
	m.output = nil
	return o
}

func (m *Machine) value(o Operand) vm.Cell {
	if o.IsReg {
		return m.regs[o.Val]
	}
	return o.Val
}

// store writes v to the register o. Writes to immediate operands are
// ignored.
func (m *Machine) store(o *Operand, v vm.Cell) {
	if o.IsReg {
		m.regs[o.Val] = v
	}
}

// dst returns the operand written to by the instruction, if any.
func (in *Instruction) dst() *Operand {
	switch in.Op {
	case OpCpy:
		return &in.B
	case OpInc, OpDec, OpSet, OpAdd, OpSub, OpMul, OpMod, OpRcv:
		return &in.A
	case OpJnz, OpTgl, OpOut, OpJgz, OpSnd:
		return nil
	}
	return &in.C
}

func (m *Machine) toggle(target int) {
	if target < 0 || target >= len(m.code) {
		return
	}
	in := &m.code[target]
	switch in.Op.Args() {
	case 1:
		if in.Op == OpInc {
			in.Op = OpDec
		} else {
			in.Op = OpInc
		}
	case 2:
		if in.Op == OpJnz {
			in.Op = OpCpy
		} else {
			in.Op = OpJnz
		}
	}
}

// Step runs the machine until it outputs a value, blocks on input or halts.
// See vm.Instance.Step for the details of the contract.
func (m *Machine) Step() (ev vm.Event, v vm.Cell, err error) {
	switch m.status {
	case vm.Halted:
		return vm.Halt, 0, nil
	case vm.Faulted:
		return vm.Halt, 0, m.err
	}
	m.status = vm.Running

	for {
		if m.ip < 0 || m.ip >= len(m.code) {
			m.status = vm.Halted
			return vm.Halt, 0, nil
		}
		if m.ipReg >= 0 {
			m.regs[m.ipReg] = vm.Cell(m.ip)
		}
		in := &m.code[m.ip]
		next := m.ip + 1
		if dst := in.dst(); dst != nil && !dst.IsReg {
			// invalid toggled instruction
			m.ip = next
			continue
		}
		a, b := m.value(in.A), m.value(in.B)
		switch in.Op {
		case OpCpy:
			m.store(&in.B, a)
		case OpInc:
			m.store(&in.A, a+1)
		case OpDec:
			m.store(&in.A, a-1)
		case OpJnz:
			if a != 0 {
				next = m.ip + int(b)
			}
		case OpJgz:
			if a > 0 {
				next = m.ip + int(b)
			}
		case OpTgl:
			m.toggle(m.ip + int(a))
		case OpOut, OpSnd:
			if m.sound {
				m.last, m.played = a, true
				break
			}
			m.ip = next
			m.count(in.Op)
			return vm.Output, a, nil
		case OpRcv:
			if m.sound {
				if a == 0 || !m.played {
					break
				}
				m.ip = next
				m.count(in.Op)
				return vm.Output, m.last, nil
			}
			if len(m.input) == 0 {
				m.status = vm.Blocked
				return vm.NeedInput, 0, nil
			}
			v, m.input = m.input[0], m.input[1:]
			if len(m.input) == 0 {
				m.input = nil
			}
			m.store(&in.A, v)
		case OpSet:
			m.store(&in.A, b)
		case OpAdd:
			m.store(&in.A, a+b)
		case OpSub:
			m.store(&in.A, a-b)
		case OpMul:
			m.store(&in.A, a*b)
		case OpMod:
			if b == 0 {
				m.status = vm.Faulted
				m.err = errors.Wrapf(ErrDivideByZero, "%v @ip=%d", *in, m.ip)
				return vm.Halt, 0, m.err
			}
			m.store(&in.A, a%b)
		case OpAddr, OpAddi:
			m.store(&in.C, a+b)
		case OpMulr, OpMuli:
			m.store(&in.C, a*b)
		case OpBanr, OpBani:
			m.store(&in.C, a&b)
		case OpBorr, OpBori:
			m.store(&in.C, a|b)
		case OpSetr, OpSeti:
			m.store(&in.C, a)
		case OpGtir, OpGtri, OpGtrr:
			m.store(&in.C, bool2Cell(a > b))
		case OpEqir, OpEqri, OpEqrr:
			m.store(&in.C, bool2Cell(a == b))
		}
		m.count(in.Op)
		if m.ipReg >= 0 {
			next = int(m.regs[m.ipReg]) + 1
		}
		m.ip = next
	}
}

func (m *Machine) count(op Op) {
	m.counts[op]++
	m.insCount++
}

// Run runs the machine until it halts or blocks on input. Output values are
// buffered and can be retrieved with TakeOutput.
func (m *Machine) Run() (vm.Event, error) {
	for {
		ev, v, err := m.Step()
		if err != nil || ev != vm.Output {
			return ev, err
		}
		m.output = append(m.output, v)
	}
}

func bool2Cell(b bool) vm.Cell {
	if b {
		return 1
	}
	return 0
}
