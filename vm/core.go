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

import "github.com/pkg/errors"

// Event is the reason why Step returned control to its caller.
type Event int

// Step events.
const (
	Output    Event = iota // the machine output a value
	NeedInput              // the machine is blocked on an input instruction
	Halt                   // the machine halted
)

func (e Event) String() string {
	switch e {
	case Output:
		return "output"
	case NeedInput:
		return "need input"
	case Halt:
		return "halt"
	}
	return "unknown"
}

// Step runs the machine until something observable happens:
//
//   - an output instruction was executed: Step returns Output and the value;
//   - an input instruction found the input queue empty: Step returns NeedInput.
//     The PC is left on the input instruction, which will be executed again by
//     the next call to Step, presumably after some values have been fed to the
//     machine;
//   - a halt instruction was reached: Step returns Halt. Further calls to Step
//     return Halt as well.
//
// If a fatal error occurs, Step returns an *Error and the PC points to the
// instruction that triggered the error. The machine is then Faulted and every
// subsequent call to Step returns the same error.
func (i *Instance) Step() (ev Event, v Cell, err error) {
	switch i.status {
	case Halted:
		return Halt, 0, nil
	case Faulted:
		return Halt, 0, i.err
	}
	i.status = Running

	var (
		pc   Cell
		word Cell
		in   Instruction
	)
	fault := func(e error, addr Cell) error {
		i.status = Faulted
		i.err = &Error{Code: e.(ErrorCode), PC: pc, Word: word, Addr: addr}
		return i.err
	}

	for {
		pc = i.PC
		if word, err = i.Mem.Read(pc); err != nil {
			return Halt, 0, fault(err, pc)
		}
		if in, err = Decode(word); err != nil {
			return Halt, 0, fault(err, 0)
		}

		// resolve parameters: p holds values for read parameters, dst the
		// address of the write parameter.
		var (
			p   [3]Cell
			dst Cell
		)
		dstIdx := in.Op.Dst()
		for k := 0; k < in.Op.Params(); k++ {
			raw, _ := i.Mem.Read(pc + 1 + Cell(k))
			addr := raw
			switch in.Modes[k] {
			case Immediate:
				p[k] = raw
				continue
			case Relative:
				addr = i.RB + raw
			}
			if addr < 0 {
				return Halt, 0, fault(InvalidAddress, addr)
			}
			if k == dstIdx {
				dst = addr
			} else {
				p[k], _ = i.Mem.Read(addr)
			}
		}

		switch in.Op {
		case OpAdd:
			i.Mem.Write(dst, p[0]+p[1])
			i.PC += 4
		case OpMul:
			i.Mem.Write(dst, p[0]*p[1])
			i.PC += 4
		case OpIn:
			if len(i.input) == 0 && i.inH != nil {
				if err = i.inH(i); err != nil {
					i.status = Blocked
					return NeedInput, 0, errors.Wrap(err, "input handler")
				}
			}
			if len(i.input) == 0 {
				i.status = Blocked
				return NeedInput, 0, nil
			}
			v, i.input = i.input[0], i.input[1:]
			if len(i.input) == 0 {
				i.input = nil
			}
			i.Mem.Write(dst, v)
			i.PC += 2
		case OpOut:
			i.PC += 2
			i.insCount++
			return Output, p[0], nil
		case OpJumpTrue:
			if p[0] != 0 {
				i.PC = p[1]
			} else {
				i.PC += 3
			}
		case OpJumpFalse:
			if p[0] == 0 {
				i.PC = p[1]
			} else {
				i.PC += 3
			}
		case OpLess:
			i.Mem.Write(dst, bool2Cell(p[0] < p[1]))
			i.PC += 4
		case OpEqual:
			i.Mem.Write(dst, bool2Cell(p[0] == p[1]))
			i.PC += 4
		case OpRelBase:
			i.RB += p[0]
			i.PC += 2
		case OpHalt:
			i.status = Halted
			i.insCount++
			return Halt, 0, nil
		}
		i.insCount++
	}
}

// Run runs the machine until it halts or blocks on input. Every value output
// in the meantime is passed to the output handler, or buffered for
// TakeOutput if no handler is bound.
//
// Run returns NeedInput or Halt depending on which condition stopped the
// machine. A NeedInput return is not an error: the machine can be resumed by
// feeding it some input and calling Run again.
func (i *Instance) Run() (Event, error) {
	for {
		ev, v, err := i.Step()
		if err != nil {
			return ev, err
		}
		if ev != Output {
			return ev, nil
		}
		if i.outH == nil {
			i.output = append(i.output, v)
			continue
		}
		if err = i.outH(i, v); err != nil {
			return ev, errors.Wrapf(err, "output handler @pc=%d", i.PC)
		}
	}
}

func bool2Cell(b bool) Cell {
	if b {
		return 1
	}
	return 0
}
