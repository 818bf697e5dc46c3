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

// Package cluster provides orchestrators that run several machines in
// lock-step and route values between their I/O channels: a feedback loop, a
// pair of machines talking to each other, and a packet network with a NAT.
//
// Orchestrators are single threaded. Machines are driven through their Step
// method and the orchestrator is the only party that feeds them input.
package cluster

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Machine is the interface implemented by machines that can be orchestrated.
// It is implemented by *vm.Instance and *register.Machine.
type Machine interface {
	Step() (vm.Event, vm.Cell, error)
	Feed(v ...vm.Cell)
	Pending() int
}

// Errors returned by orchestrators.
var (
	ErrDeadlock = errors.New("deadlock")
	ErrNoOutput = errors.New("no output")
)

// Amplifiers creates one Intcode machine per phase setting, running the given
// program with the phase setting as first input value.
func Amplifiers(program []vm.Cell, phases []vm.Cell) ([]Machine, error) {
	ms := make([]Machine, len(phases))
	for k, p := range phases {
		i, err := vm.New(program, vm.Input(p))
		if err != nil {
			return nil, errors.Wrapf(err, "machine %d", k)
		}
		ms[k] = i
	}
	return ms, nil
}

// Loop runs the machines in a ring: the output of machine k is fed to
// machine k+1 and the output of the last machine is fed back to machine 0.
// The seed value is fed to machine 0 before starting.
//
// Loop returns the last value output by the last machine once it halts. It
// returns ErrNoOutput if the last machine halted without output, and
// ErrDeadlock if every machine is either halted or blocked on an empty input
// queue.
func Loop(ms []Machine, seed vm.Cell) (vm.Cell, error) {
	n := len(ms)
	if n == 0 {
		return 0, errors.New("Loop: no machines")
	}
	ms[0].Feed(seed)

	var (
		last    vm.Cell
		got     bool
		stalled int // consecutive machines that yielded without output
	)
	for cur := 0; ; {
		ev, v, err := ms[cur].Step()
		if err != nil {
			return 0, errors.Wrapf(err, "machine %d", cur)
		}
		switch ev {
		case vm.Output:
			ms[(cur+1)%n].Feed(v)
			if cur == n-1 {
				last, got = v, true
			}
			stalled = 0
			continue
		case vm.Halt:
			if cur == n-1 {
				if !got {
					return 0, ErrNoOutput
				}
				return last, nil
			}
		}
		if stalled++; stalled >= n {
			return 0, ErrDeadlock
		}
		cur = (cur + 1) % n
	}
}

// Permutations calls f with every permutation of vals. The slice passed to f
// is only valid until f returns. Iteration stops at the first error returned
// by f, and that error is returned.
func Permutations(vals []vm.Cell, f func([]vm.Cell) error) error {
	p := append([]vm.Cell(nil), vals...)
	var permute func(k int) error
	permute = func(k int) error {
		if k == len(p) {
			return f(p)
		}
		for i := k; i < len(p); i++ {
			p[k], p[i] = p[i], p[k]
			if err := permute(k + 1); err != nil {
				return err
			}
			p[k], p[i] = p[i], p[k]
		}
		return nil
	}
	return permute(0)
}
