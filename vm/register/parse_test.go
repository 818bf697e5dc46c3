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

package register_test

import (
	"testing"

	"github.com/db47h/intcode/vm/register"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := register.ParseString("#ip 3\n\naddi 3 16 3\nseti 1 7 2\n", register.Device)
	require.NoError(t, err)
	assert.Equal(t, 3, p.IP)
	require.Len(t, p.Code, 2)
	assert.Equal(t, register.Instruction{Op: register.OpAddi, A: register.Reg(3), B: register.Imm(16), C: register.Reg(3)}, p.Code[0])
	assert.Equal(t, "seti 1 0 2", p.Code[1].String())

	p, err = register.ParseString("cpy -3 b\njnz c d", register.Assembunny)
	require.NoError(t, err)
	assert.Equal(t, -1, p.IP)
	assert.Equal(t, "cpy -3 b", p.Code[0].String())
	assert.Equal(t, register.Instruction{Op: register.OpJnz, A: register.Reg(2), B: register.Reg(3)}, p.Code[1])
}

func TestParse_errors(t *testing.T) {
	var tests = [...]struct {
		code string
		d    register.Dialect
		msg  string
	}{
		{"inc a\nfoo b", register.Assembunny, "line 2: unknown assembunny instruction"},
		{"snd a\ncpy 1 a", register.Duet, "line 2: unknown duet instruction"},
		{"cpy a", register.Assembunny, "line 1: cpy: expected 2 operands"},
		{"inc 3", register.Assembunny, "line 1: inc: cannot write to immediate value"},
		{"set A 1", register.Duet, "line 1: set operand 1: invalid operand"},
		{"#ip 1", register.Assembunny, "line 1: unexpected #ip directive"},
		{"#ip 6", register.Device, "line 1: invalid register"},
		{"addr 0 1 6", register.Device, "line 1: addr operand 3: invalid register 6"},
		{"seti 0 0 1\n#ip 0", register.Device, "line 2: unexpected #ip directive"},
	}
	for _, test := range tests {
		_, err := register.ParseString(test.code, test.d)
		if assert.Error(t, err, test.code) {
			assert.Contains(t, err.Error(), test.msg, test.code)
		}
	}
}
