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

package cluster

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// PairStats holds the result of Pair.
type PairStats struct {
	Sent     [2]int // number of values sent by each machine
	Deadlock bool   // true if the pair stopped because both machines were waiting
}

// Pair runs two machines in lock-step, each one's output feeding the other's
// input. Each machine runs until it blocks or halts, then the other one gets
// its turn.
//
// Pair returns when both machines have halted, or when neither can make
// progress: both are blocked on an empty queue or halted. The latter is a
// normal termination and is reported in PairStats.Deadlock.
func Pair(a, b Machine) (st PairStats, err error) {
	ms := [2]Machine{a, b}
	var halted [2]bool
	for {
		for k, m := range ms {
			if halted[k] {
				continue
			}
		run:
			for {
				ev, v, err := m.Step()
				if err != nil {
					return st, errors.Wrapf(err, "machine %d", k)
				}
				switch ev {
				case vm.Output:
					ms[1-k].Feed(v)
					st.Sent[k]++
				case vm.Halt:
					halted[k] = true
					break run
				default:
					break run
				}
			}
		}
		if halted[0] && halted[1] {
			return st, nil
		}
		if (halted[0] || ms[0].Pending() == 0) && (halted[1] || ms[1].Pending() == 0) {
			st.Deadlock = true
			return st, nil
		}
	}
}
