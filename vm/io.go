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

// InHandler is the function prototype for custom input handlers. It is called
// when an input instruction finds the input queue empty. The handler may
// supply input with Feed; if the queue is still empty when it returns, the
// machine suspends.
type InHandler func(i *Instance) error

// OutHandler is the function prototype for custom output handlers. It
// receives every value output by the machine during Run.
type OutHandler func(i *Instance, v Cell) error

// BindInHandler binds the provided input handler.
func BindInHandler(h InHandler) Option {
	return func(i *Instance) error {
		i.inH = h
		return nil
	}
}

// BindOutHandler binds the provided output handler. Without an output
// handler, values output during Run are buffered and can be retrieved with
// TakeOutput.
func BindOutHandler(h OutHandler) Option {
	return func(i *Instance) error {
		i.outH = h
		return nil
	}
}

// Feed appends values to the input queue. If the machine was blocked on
// input, it becomes runnable again.
func (i *Instance) Feed(v ...Cell) {
	i.input = append(i.input, v...)
	if len(i.input) > 0 && i.status == Blocked {
		i.status = Running
	}
}

// Pending returns the number of values waiting in the input queue.
func (i *Instance) Pending() int { return len(i.input) }

// TakeOutput returns the values buffered by Run when no output handler is
// bound, and empties the buffer.
func (i *Instance) TakeOutput() []Cell {
	o := i.output
	i.output = nil
	return o
}
