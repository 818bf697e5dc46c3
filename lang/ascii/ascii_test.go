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

package ascii_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	assert.Equal(t, []vm.Cell{'N', 'O', 'T', ' ', 'A', ' ', 'J', '\n'}, ascii.Line("NOT A J"))
	assert.Equal(t, ascii.Line("WALK\n"), ascii.Encode("WALK\n"))
	assert.Empty(t, ascii.Encode(""))

	text, values := ascii.Decode([]vm.Cell{'#', '.', '\n', 19348359, '#', -1})
	assert.Equal(t, "#.\n#", text)
	assert.Equal(t, []vm.Cell{19348359, -1}, values)
}

// echo program: reads characters and outputs them until it reads a newline,
// then outputs 1000 and halts.
const echo = "3,100,4,100,1008,100,10,101,1006,101,0,104,1000,99"

func TestWriter(t *testing.T) {
	var b bytes.Buffer
	i, err := vm.New(mustParse(t, echo), vm.Input(ascii.Line("hi")...), vm.BindOutHandler(ascii.Writer(&b)))
	require.NoError(t, err)
	ev, err := i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Halt, ev)
	assert.Equal(t, "hi\n1000\n", b.String())
}

func TestLineReader(t *testing.T) {
	prog := mustParse(t, echo)

	i, _ := vm.New(prog, vm.BindInHandler(ascii.LineReader(strings.NewReader("abc\nxyz\n"), nil)))
	ev, err := i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Halt, ev)
	text, values := ascii.Decode(i.TakeOutput())
	assert.Equal(t, "abc\n", text)
	assert.Equal(t, []vm.Cell{1000}, values)

	// end of input
	i, _ = vm.New(prog, vm.BindInHandler(ascii.LineReader(strings.NewReader(""), nil)))
	_, err = i.Run()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReader_raw(t *testing.T) {
	var echoed bytes.Buffer
	i, _ := vm.New(mustParse(t, echo), vm.BindInHandler(ascii.LineReader(strings.NewReader("abx\x7fc\r"), &echoed)))
	ev, err := i.Run()
	require.NoError(t, err)
	assert.Equal(t, vm.Halt, ev)
	text, _ := ascii.Decode(i.TakeOutput())
	assert.Equal(t, "abc\n", text)
	assert.Equal(t, "abx\b \bc\n", echoed.String())

	// Ctrl-D on an empty line
	i, _ = vm.New(mustParse(t, echo), vm.BindInHandler(ascii.LineReader(strings.NewReader("\x04"), &echoed)))
	_, err = i.Run()
	assert.ErrorIs(t, err, io.EOF)
}

func mustParse(t *testing.T, code string) []vm.Cell {
	t.Helper()
	prog, err := vm.ParseString(code)
	require.NoError(t, err)
	return prog
}
