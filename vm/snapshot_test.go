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
	"testing"

	"github.com/db47h/intcode/vm"
)

func TestSnapshot(t *testing.T) {
	// sums its inputs until it reads 0, copying each partial sum far away in
	// memory, then outputs the sum.
	prog := mustParse(t, "3,100,1006,100,16,1,100,101,101,1001,101,0,1000000,1105,1,0,4,101,99")
	i, err := vm.New(prog, vm.Input(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if ev, err := i.Run(); err != nil || ev != vm.NeedInput {
		t.Fatalf("expected NeedInput, got %v, %v", ev, err)
	}
	i.Feed(3)
	data, err := i.Snapshot()
	if err != nil {
		t.Fatalf("%+v", err)
	}

	j, err := vm.Restore(data)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if j.PC != i.PC || j.RB != i.RB || j.Status() != i.Status() || j.Pending() != 1 ||
		j.InstructionCount() != i.InstructionCount() || j.Mem.Len() != i.Mem.Len() {
		t.Fatalf("restored state mismatch: pc %d/%d, status %v/%v", j.PC, i.PC, j.Status(), i.Status())
	}
	if !equal(j.Mem.Cells(), i.Mem.Cells()) {
		t.Fatal("restored memory mismatch")
	}
	ja, jv := j.Mem.Sparse()
	ia, iv := i.Mem.Sparse()
	if len(ia) != 1 || !equal(ja, ia) || !equal(jv, iv) {
		t.Fatalf("restored sparse memory mismatch: %v/%v", ja, ia)
	}

	// both machines must behave the same from here.
	for _, m := range []*vm.Instance{i, j} {
		m.Feed(0)
		if ev, err := m.Run(); err != nil || ev != vm.Halt {
			t.Fatalf("expected Halt, got %v, %v", ev, err)
		}
		if out := m.TakeOutput(); !equal(out, C{6}) {
			t.Fatalf("expected [6], got %v", out)
		}
	}
}

func TestSnapshot_errors(t *testing.T) {
	i, _ := vm.New(C{42})
	i.Step()
	if _, err := i.Snapshot(); err == nil {
		t.Fatal("expected error on faulted machine snapshot")
	}
	if _, err := vm.Restore([]byte("garbage")); err == nil {
		t.Fatal("expected error on garbage snapshot")
	}
}
