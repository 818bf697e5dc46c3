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

// Package vm implements the Intcode virtual machine.
//
// An Intcode program is a list of integers loaded into the machine memory
// starting at address 0. Instructions are encoded as a single word: the two
// low decimal digits are the opcode and the following digits give the
// addressing mode of each parameter (0: position, 1: immediate, 2: relative
// to the relative base register).
//
// Execution is driven by Step, which runs the machine until it outputs a
// value, blocks on an input instruction with an empty input queue, or
// halts. Being blocked on input is not an error: the caller feeds the machine
// more input with Feed and calls Step again. This makes it easy to run many
// machines side by side in a single goroutine and to route values between
// them (see package cluster).
//
// Run is a convenience wrapper around Step that collects output values until
// the machine blocks or halts.
//
// For all intents and purposes, the PC is not incremented in a single place;
// each opcode deals with the PC as needed. When Step returns an error, the
// PC points to the faulting instruction.
package vm
