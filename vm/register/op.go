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
	"strconv"
	"strings"

	"github.com/db47h/intcode/vm"
)

// Dialect selects the instruction set accepted by Parse.
type Dialect int

// Supported dialects.
const (
	Assembunny Dialect = iota // cpy inc dec jnz tgl out, registers a-z
	Duet                      // set add sub mul mod jnz jgz snd rcv, registers a-z
	Device                    // addr..eqrr with a #ip directive, registers 0-5
	Sound                     // duet instructions with snd/rcv playing and recovering sounds
)

func (d Dialect) String() string {
	switch d {
	case Assembunny:
		return "assembunny"
	case Duet:
		return "duet"
	case Device:
		return "device"
	case Sound:
		return "sound"
	}
	return "dialect(" + strconv.Itoa(int(d)) + ")"
}

// Op is a register machine opcode.
type Op int

// Opcodes. Some of them are shared between dialects.
const (
	OpCpy Op = iota
	OpInc
	OpDec
	OpJnz
	OpTgl
	OpOut
	OpSet
	OpAdd
	OpSub
	OpMul
	OpMod
	OpJgz
	OpSnd
	OpRcv
	OpAddr
	OpAddi
	OpMulr
	OpMuli
	OpBanr
	OpBani
	OpBorr
	OpBori
	OpSetr
	OpSeti
	OpGtir
	OpGtri
	OpGtrr
	OpEqir
	OpEqri
	OpEqrr
	numOps
)

const (
	bunny  = 1 << Assembunny
	duet   = 1 << Duet
	device = 1 << Device
	sound  = 1 << Sound
)

type opInfo struct {
	name     string
	args     int
	dialects uint
	kinds    string // device operand kinds: r register, i immediate, _ ignored
}

var ops = [numOps]opInfo{
	OpCpy:  {"cpy", 2, bunny, ""},
	OpInc:  {"inc", 1, bunny, ""},
	OpDec:  {"dec", 1, bunny, ""},
	OpJnz:  {"jnz", 2, bunny | duet | sound, ""},
	OpTgl:  {"tgl", 1, bunny, ""},
	OpOut:  {"out", 1, bunny, ""},
	OpSet:  {"set", 2, duet | sound, ""},
	OpAdd:  {"add", 2, duet | sound, ""},
	OpSub:  {"sub", 2, duet | sound, ""},
	OpMul:  {"mul", 2, duet | sound, ""},
	OpMod:  {"mod", 2, duet | sound, ""},
	OpJgz:  {"jgz", 2, duet | sound, ""},
	OpSnd:  {"snd", 1, duet | sound, ""},
	OpRcv:  {"rcv", 1, duet | sound, ""},
	OpAddr: {"addr", 3, device, "rrr"},
	OpAddi: {"addi", 3, device, "rir"},
	OpMulr: {"mulr", 3, device, "rrr"},
	OpMuli: {"muli", 3, device, "rir"},
	OpBanr: {"banr", 3, device, "rrr"},
	OpBani: {"bani", 3, device, "rir"},
	OpBorr: {"borr", 3, device, "rrr"},
	OpBori: {"bori", 3, device, "rir"},
	OpSetr: {"setr", 3, device, "r_r"},
	OpSeti: {"seti", 3, device, "i_r"},
	OpGtir: {"gtir", 3, device, "irr"},
	OpGtri: {"gtri", 3, device, "rir"},
	OpGtrr: {"gtrr", 3, device, "rrr"},
	OpEqir: {"eqir", 3, device, "irr"},
	OpEqri: {"eqri", 3, device, "rir"},
	OpEqrr: {"eqrr", 3, device, "rrr"},
}

func lookup(name string, d Dialect) (Op, bool) {
	for op := range ops {
		if ops[op].name == name && ops[op].dialects&(1<<d) != 0 {
			return Op(op), true
		}
	}
	return 0, false
}

// Args returns the number of operands taken by op.
func (op Op) Args() int {
	if op < 0 || op >= numOps {
		return 0
	}
	return ops[op].args
}

func (op Op) String() string {
	if op < 0 || op >= numOps {
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
	return ops[op].name
}

// Operand is an instruction operand: either a register or an immediate value.
type Operand struct {
	Val   vm.Cell // immediate value or register index
	IsReg bool
}

// Reg returns a register operand.
func Reg(index int) Operand { return Operand{vm.Cell(index), true} }

// Imm returns an immediate operand.
func Imm(v vm.Cell) Operand { return Operand{v, false} }

// Instruction is a decoded instruction. Operands not used by Op are zero.
type Instruction struct {
	Op      Op
	A, B, C Operand
}

func (in Instruction) String() string {
	var b strings.Builder
	b.WriteString(in.Op.String())
	for k, o := range []Operand{in.A, in.B, in.C}[:in.Op.Args()] {
		b.WriteByte(' ')
		switch {
		case ops[in.Op].dialects == device:
			if ops[in.Op].kinds[k] == '_' {
				b.WriteByte('0')
				break
			}
			b.WriteString(strconv.FormatInt(int64(o.Val), 10))
		case o.IsReg:
			b.WriteByte(byte('a' + o.Val))
		default:
			b.WriteString(strconv.FormatInt(int64(o.Val), 10))
		}
	}
	return b.String()
}
