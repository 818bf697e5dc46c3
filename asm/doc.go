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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	Instructions take their operands in the cells following them. The "dst"
//	column gives the operand written to, which may not be an immediate value.
//
//	opcode	asm	operands	dst	description
//	------	---	--------	---	------------------------------------------------
//	1	add	a, b, c		c	c = a + b
//	2	mul	a, b, c		c	c = a * b
//	3	in	a		a	read a value from the input queue into a
//	4	out	a			output a
//	5	jt	a, b			jump to b if a != 0
//	6	jf	a, b			jump to b if a == 0
//	7	lt	a, b, c		c	c = 1 if a < b, 0 otherwise
//	8	eq	a, b, c		c	c = 1 if a == b, 0 otherwise
//	9	arb	a			add a to the relative base
//	99	hlt				halt
//
// Operands:
//
// Operands may be separated by white space or by a comma followed by white
// space. The addressing mode is given by the syntax of the operand:
//
//	42	immediate: the value itself
//	[42]	position: the value stored at address 42
//	rb+4	relative: the value stored at address RB+4
//	rb-4	relative: the value stored at address RB-4
//	rb	relative: same as rb+0
//
// Any integer in immediate or position operands can be replaced by a
// character literal, a constant or a label name. Relative offsets accept
// integers and constants only.
//
// Comments:
//
// Comments are placed between parentheses. The parser is rather dumb and the
// parentheses must be separated from other tokens by at least one white
// space:
//
//	( this is a valid comment )
//	( this is a
//	  rather long
//	  multiline comment )
//
// Literals and label/const identifiers:
//
// Input is split at white space (space, tab or new line) into tokens. Then:
//
//   - If a token can be converted to a Go integer (see strconv.ParseInt), it will
//     be converted to an integer literal.
//   - If it is a Go character literal between single quotes, it will be converted to
//     the corresponding integer literal.
//   - If a token is the name of a defined constant, it will be replaced internally by
//     the constant's value.
//   - Otherwise the token is considered to be a label. Label names start with a
//     letter or an underscore, followed by letters, digits, '_', '-' or '.'.
//     "rb" is reserved.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and evaluate to the
// address of the next instruction or data cell. Forward references are ok:
//
//	:loop	in [x]
//		jf [x], end
//		out [x]
//		jt 1, loop
//	:end	hlt
//	:x	.dat 0
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal.
//
//	.org <value>
//
// Will place the next instruction at the address specified by the given integer
// literal or named constant.
//
//	.dat <value> ...
//
// Will compile the specified values (integers, named constants, character
// literals or label addresses) as-is, until the next instruction mnemonic or
// directive:
//
//	:table	.dat 65 'B'
//		.dat table
//
// The cells at addresses table+0, table+1 and table+2 will contain 65, 66 and
// the address of table.
//
// The disassembler output uses the same syntax and can be fed back to the
// assembler. Cells that do not decode to a valid instruction are written as
// .dat directives.
package asm
