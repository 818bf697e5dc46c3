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

import "fmt"

// ErrorCode identifies the kind of fatal condition that aborted a machine.
// ErrorCode values are errors themselves, so that
//
//	errors.Is(err, vm.InvalidAddress)
//
// reports whether err was caused by a negative address.
type ErrorCode int

// Fatal error codes.
const (
	InvalidOpcode ErrorCode = iota + 1
	InvalidMode
	InvalidAddress
	IllegalImmediateWrite
)

func (c ErrorCode) Error() string {
	switch c {
	case InvalidOpcode:
		return "invalid opcode"
	case InvalidMode:
		return "invalid parameter mode"
	case InvalidAddress:
		return "invalid address"
	case IllegalImmediateWrite:
		return "immediate mode write parameter"
	}
	return fmt.Sprintf("unknown error (%d)", int(c))
}

// Error is returned by Step when the machine hits a fatal condition. The
// machine is then Faulted and cannot be resumed.
type Error struct {
	Code ErrorCode
	PC   Cell // address of the faulting instruction
	Word Cell // raw instruction word at PC
	Addr Cell // offending address, for InvalidAddress only
}

func (e *Error) Error() string {
	if e.Code == InvalidAddress {
		return fmt.Sprintf("%v %d executing %d at pc=%d", e.Code, e.Addr, e.Word, e.PC)
	}
	return fmt.Sprintf("%v executing %d at pc=%d", e.Code, e.Word, e.PC)
}

// Unwrap returns the error code.
func (e *Error) Unwrap() error { return e.Code }
