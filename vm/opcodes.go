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

import "strconv"

// Op is an Intcode opcode: the two low decimal digits of an instruction word.
type Op int

// Intcode opcodes.
const (
	OpAdd       Op = 1
	OpMul       Op = 2
	OpIn        Op = 3
	OpOut       Op = 4
	OpJumpTrue  Op = 5
	OpJumpFalse Op = 6
	OpLess      Op = 7
	OpEqual     Op = 8
	OpRelBase   Op = 9
	OpHalt      Op = 99
)

// Mode is a parameter addressing mode.
type Mode int

// Parameter modes.
const (
	Position  Mode = 0 // parameter is an address
	Immediate Mode = 1 // parameter is the value itself
	Relative  Mode = 2 // parameter is an offset from the relative base
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

type opInfo struct {
	name   string
	params int
	dst    int // index of the write parameter, -1 if none
}

var opcodes = map[Op]opInfo{
	OpAdd:       {"add", 3, 2},
	OpMul:       {"mul", 3, 2},
	OpIn:        {"in", 1, 0},
	OpOut:       {"out", 1, -1},
	OpJumpTrue:  {"jt", 2, -1},
	OpJumpFalse: {"jf", 2, -1},
	OpLess:      {"lt", 3, 2},
	OpEqual:     {"eq", 3, 2},
	OpRelBase:   {"arb", 1, -1},
	OpHalt:      {"hlt", 0, -1},
}

var opcodeIndex = make(map[string]Op)

func init() {
	for op, i := range opcodes {
		opcodeIndex[i.name] = op
	}
}

// OpByName returns the opcode for the given assembler mnemonic.
func OpByName(name string) (Op, bool) {
	op, ok := opcodeIndex[name]
	return op, ok
}

// Valid reports whether op is part of the instruction set.
func (op Op) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Params returns the number of parameters taken by op.
func (op Op) Params() int { return opcodes[op].params }

// Dst returns the index of the parameter op writes to, or -1 if op does not
// write to memory.
func (op Op) Dst() int {
	if i, ok := opcodes[op]; ok {
		return i.dst
	}
	return -1
}

func (op Op) String() string {
	if i, ok := opcodes[op]; ok {
		return i.name
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Op
	Modes [3]Mode
}

// Len returns the number of cells taken by the instruction, including its
// parameters.
func (in Instruction) Len() int { return 1 + in.Op.Params() }

// Decode decodes an instruction word. Mode digits beyond the number of
// parameters of the opcode are ignored.
func Decode(word Cell) (Instruction, error) {
	var in Instruction
	if word < 0 {
		return in, InvalidOpcode
	}
	in.Op = Op(word % 100)
	info, ok := opcodes[in.Op]
	if !ok {
		return in, InvalidOpcode
	}
	word /= 100
	for k := 0; k < info.params; k++ {
		m := Mode(word % 10)
		word /= 10
		switch {
		case m > Relative:
			return in, InvalidMode
		case m == Immediate && k == info.dst:
			return in, IllegalImmediateWrite
		}
		in.Modes[k] = m
	}
	return in, nil
}
