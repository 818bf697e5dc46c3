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

// Cell is the raw type stored in a memory location.
type Cell int64

// Status is the run status of an Instance.
type Status int

// Run states.
const (
	Running Status = iota // ready to run or running
	Blocked               // suspended on an input instruction with an empty queue
	Halted                // executed a halt instruction
	Faulted               // aborted by a fatal error
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Blocked:
		return "blocked"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// Instance represents an Intcode machine.
type Instance struct {
	PC  Cell    // Program Counter (aka. Instruction Pointer)
	RB  Cell    // Relative base
	Mem *Memory // Memory image

	status   Status
	err      error
	input    []Cell
	output   []Cell
	insCount int64
	inH      InHandler
	outH     OutHandler
}

// Option interface
type Option func(*Instance) error

// Input appends the given values to the input queue.
func Input(v ...Cell) Option {
	return func(i *Instance) error { i.Feed(v...); return nil }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode machine instance.
//
// The program is copied into the instance memory starting at address 0, so
// the same program may be used to create any number of instances.
//
// Options will be set by calling SetOptions.
func New(program []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{
		Mem: NewMemory(program),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Status returns the run status of the machine.
func (i *Instance) Status() Status { return i.status }

// Halted reports whether the machine has executed a halt instruction.
func (i *Instance) Halted() bool { return i.status == Halted }

// Err returns the fatal error that aborted the machine, if any.
func (i *Instance) Err() error { return i.err }

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Peek returns the value at addr. Unwritten and negative addresses read as 0.
func (i *Instance) Peek(addr Cell) Cell {
	v, _ := i.Mem.Read(addr)
	return v
}

// Poke stores v at addr. This is meant for patching a program before
// running it.
func (i *Instance) Poke(addr, v Cell) error {
	return i.Mem.Write(addr, v)
}
