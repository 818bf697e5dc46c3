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

package vm_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/db47h/intcode/vm"
)

type C []vm.Cell

func mustParse(t *testing.T, code string) []vm.Cell {
	t.Helper()
	prog, err := vm.ParseString(code)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return prog
}

// run runs code to completion with the given input and returns the output
// values and the instance.
func run(t *testing.T, code string, input ...vm.Cell) (C, *vm.Instance) {
	t.Helper()
	i, err := vm.New(mustParse(t, code), vm.Input(input...))
	if err != nil {
		t.Fatal(err)
	}
	ev, err := i.Run()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if ev != vm.Halt {
		t.Fatalf("expected halt, got %v", ev)
	}
	return i.TakeOutput(), i
}

func equal(a, b []vm.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCore_memory(t *testing.T) {
	var tests = [...]struct {
		code string
		mem  C
	}{
		{"1,9,10,3,2,3,11,0,99,30,40,50", C{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}},
		{"1,0,0,0,99", C{2, 0, 0, 0, 99}},
		{"2,3,0,3,99", C{2, 3, 0, 6, 99}},
		{"2,4,4,5,99,0", C{2, 4, 4, 5, 99, 9801}},
		{"1,1,1,4,99,5,6,0,99", C{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{"1002,4,3,4,33", C{1002, 4, 3, 4, 99}},
		{"1101,100,-1,4,0", C{1101, 100, -1, 4, 99}},
		{"1101,1,1,7,99", C{1101, 1, 1, 7, 99, 0, 0, 2}},
	}
	for _, test := range tests {
		_, i := run(t, test.code)
		if mem := i.Mem.Cells(); !equal(mem, test.mem) {
			t.Errorf("%s: expected memory %v, got %v", test.code, test.mem, mem)
		}
	}
}

const cmp8 = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31,1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104,999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

func TestCore_io(t *testing.T) {
	var tests = [...]struct {
		name string
		code string
		in   C
		out  C
	}{
		{"eq8 position", "3,9,8,9,10,9,4,9,99,-1,8", C{8}, C{1}},
		{"eq8 position", "3,9,8,9,10,9,4,9,99,-1,8", C{7}, C{0}},
		{"eq8 position", "3,9,8,9,10,9,4,9,99,-1,8", C{-8}, C{0}},
		{"lt8 position", "3,9,7,9,10,9,4,9,99,-1,8", C{5}, C{1}},
		{"lt8 position", "3,9,7,9,10,9,4,9,99,-1,8", C{8}, C{0}},
		{"eq8 immediate", "3,3,1108,-1,8,3,4,3,99", C{8}, C{1}},
		{"eq8 immediate", "3,3,1108,-1,8,3,4,3,99", C{9}, C{0}},
		{"lt8 immediate", "3,3,1107,-1,8,3,4,3,99", C{7}, C{1}},
		{"jump position", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", C{0}, C{0}},
		{"jump position", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", C{3}, C{1}},
		{"jump immediate", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", C{0}, C{0}},
		{"jump immediate", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", C{-2}, C{1}},
		{"cmp8", cmp8, C{7}, C{999}},
		{"cmp8", cmp8, C{8}, C{1000}},
		{"cmp8", cmp8, C{9}, C{1001}},
		{"echo", "3,0,4,0,99", C{1234}, C{1234}},
		{"big mul", "1102,34915192,34915192,7,4,7,99,0", nil, C{1219070632396864}},
		{"big imm", "104,1125899906842624,99", nil, C{1125899906842624}},
		{"relative", "109,2000,109,19,204,-34,99", nil, C{0}},
		{"relative in", "109,10,203,0,204,0,99", C{42}, C{42}},
	}
	for _, test := range tests {
		out, _ := run(t, test.code, test.in...)
		if !equal(out, test.out) {
			t.Errorf("%s %v: expected %v, got %v", test.name, test.in, test.out, out)
		}
	}
}

func TestCore_quine(t *testing.T) {
	code := "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"
	out, i := run(t, code)
	prog := mustParse(t, code)
	if !equal(out, prog) {
		t.Fatalf("expected %v, got %v", prog, out)
	}
	// the quine uses cells 100 and 101 as scratch space.
	if l := i.Mem.Len(); l != 102 {
		t.Fatalf("expected memory length 102, got %d", l)
	}
}

func TestCore_bigMul(t *testing.T) {
	out, _ := run(t, "1102,34915192,34915192,7,4,7,99,0")
	if len(out) != 1 {
		t.Fatalf("expected a single value, got %v", out)
	}
	if s := fmt.Sprint(out[0]); len(s) != 16 {
		t.Fatalf("expected a 16 digit number, got %s", s)
	}
}

func TestStep_suspend(t *testing.T) {
	i, err := vm.New(mustParse(t, "3,0,4,0,99"))
	if err != nil {
		t.Fatal(err)
	}
	ev, _, err := i.Step()
	if err != nil || ev != vm.NeedInput {
		t.Fatalf("expected NeedInput, got %v, %v", ev, err)
	}
	if i.PC != 0 || i.Status() != vm.Blocked {
		t.Fatalf("expected blocked at pc 0, got %v at pc %d", i.Status(), i.PC)
	}
	// still blocked without input
	if ev, _, _ = i.Step(); ev != vm.NeedInput {
		t.Fatalf("expected NeedInput, got %v", ev)
	}
	i.Feed(17)
	if i.Status() != vm.Running {
		t.Fatalf("expected running after Feed, got %v", i.Status())
	}
	ev, v, err := i.Step()
	if err != nil || ev != vm.Output || v != 17 {
		t.Fatalf("expected Output 17, got %v %d, %v", ev, v, err)
	}
	for n := 0; n < 2; n++ {
		if ev, _, err = i.Step(); err != nil || ev != vm.Halt {
			t.Fatalf("expected Halt, got %v, %v", ev, err)
		}
	}
	if !i.Halted() {
		t.Fatal("expected halted machine")
	}
	if n := i.InstructionCount(); n != 3 {
		t.Fatalf("expected 3 instructions, got %d", n)
	}
}

func TestStep_errors(t *testing.T) {
	var tests = [...]struct {
		code string
		err  vm.ErrorCode
		pc   vm.Cell
	}{
		{"42", vm.InvalidOpcode, 0},
		{"1101,1,1,5,-7", vm.InvalidOpcode, 4},
		{"301,0,0,0,99", vm.InvalidMode, 0},
		{"11101,1,1,0,99", vm.IllegalImmediateWrite, 0},
		{"103,0,99", vm.IllegalImmediateWrite, 0},
		{"1101,1,1,-1,99", vm.InvalidAddress, 0},
		{"1,-1,0,0,99", vm.InvalidAddress, 0},
		{"109,-5,21101,1,1,0,99", vm.InvalidAddress, 2},
		{"1105,1,-3", vm.InvalidAddress, -3},
	}
	for _, test := range tests {
		i, err := vm.New(mustParse(t, test.code))
		if err != nil {
			t.Fatal(err)
		}
		_, _, err = i.Step()
		if !errors.Is(err, test.err) {
			t.Errorf("%s: expected %v, got %v", test.code, test.err, err)
			continue
		}
		var e *vm.Error
		if !errors.As(err, &e) || e.PC != test.pc {
			t.Errorf("%s: expected error at pc %d, got %v", test.code, test.pc, err)
		}
		if i.Status() != vm.Faulted {
			t.Errorf("%s: expected faulted machine, got %v", test.code, i.Status())
		}
		// errors are sticky
		if _, _, err2 := i.Step(); err2 != err {
			t.Errorf("%s: expected sticky error, got %v", test.code, err2)
		}
	}
}

func TestRun_handlers(t *testing.T) {
	var out C
	calls := 0
	i, err := vm.New(mustParse(t, "3,20,3,21,1,20,21,22,4,22,99"),
		vm.BindInHandler(func(i *vm.Instance) error {
			calls++
			if calls == 1 {
				i.Feed(40, 2)
			}
			return nil
		}),
		vm.BindOutHandler(func(_ *vm.Instance, v vm.Cell) error {
			out = append(out, v)
			return nil
		}))
	if err != nil {
		t.Fatal(err)
	}
	ev, err := i.Run()
	if err != nil || ev != vm.Halt {
		t.Fatalf("expected Halt, got %v, %v", ev, err)
	}
	if calls != 1 || !equal(out, C{42}) {
		t.Fatalf("expected 1 handler call and output [42], got %d, %v", calls, out)
	}
	if o := i.TakeOutput(); o != nil {
		t.Fatalf("expected no buffered output, got %v", o)
	}

	// handler errors abort Run but leave the machine resumable.
	boom := errors.New("boom")
	i, _ = vm.New(mustParse(t, "3,0,4,0,99"), vm.BindInHandler(func(*vm.Instance) error { return boom }))
	if _, err = i.Run(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	i.Feed(5)
	if ev, _ = i.Run(); ev != vm.Halt || !equal(i.TakeOutput(), C{5}) {
		t.Fatal("machine did not resume after handler error")
	}
}
