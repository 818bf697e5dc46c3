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

package main

import (
	"fmt"
	"strings"

	"github.com/db47h/intcode/cluster"
	"github.com/db47h/intcode/vm"
	"github.com/db47h/intcode/vm/register"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

func loopCmd(c *config, args []string) error {
	fs := newFlagSet("loop", "program")
	var phases cellList
	if err := phases.Set(c.Loop.Phases); err != nil {
		return errors.Wrap(err, "config loop.phases")
	}
	fs.Var(&phases, "phases", "comma separated phase `values`, one machine per value")
	seed := fs.Int64("seed", c.Loop.Seed, "seed value fed to the first machine")
	search := fs.Bool("search", false, "find the phase order giving the highest result")
	fs.Parse(args)

	fileName, err := programArg(fs)
	if err != nil {
		return err
	}
	prog, err := vm.Load(fileName)
	if err != nil {
		return err
	}

	run := func(p []vm.Cell) (vm.Cell, error) {
		ms, err := cluster.Amplifiers(prog, p)
		if err != nil {
			return 0, err
		}
		return cluster.Loop(ms, vm.Cell(*seed))
	}

	if !*search {
		v, err := run(phases)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, v)
		return nil
	}

	var (
		best  vm.Cell
		order []vm.Cell
	)
	err = cluster.Permutations(phases, func(p []vm.Cell) error {
		v, err := run(p)
		if err != nil {
			return errors.Wrapf(err, "phases %v", p)
		}
		log.Debugf("phases %v: %d", p, v)
		if order == nil || v > best {
			best, order = v, append(order[:0], p...)
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%d %s\n", best, vm.FormatString(order))
	return nil
}

func pairCmd(c *config, args []string) error {
	fs := newFlagSet("pair", "program")
	reg := fs.String("reg", "p", "register holding the program ID (0 or 1)")
	fs.Parse(args)

	fileName, err := programArg(fs)
	if err != nil {
		return err
	}
	p, err := register.Load(fileName, register.Duet)
	if err != nil {
		return err
	}
	var ms [2]*register.Machine
	for k := range ms {
		if ms[k], err = register.New(p, register.Init(*reg, vm.Cell(k))); err != nil {
			return err
		}
	}
	st, err := cluster.Pair(ms[0], ms[1])
	if err != nil {
		return err
	}
	log.Infof("deadlock: %v", st.Deadlock)
	fmt.Fprintln(stdout, st.Sent[0], st.Sent[1])
	return nil
}

func netCmd(c *config, args []string) error {
	fs := newFlagSet("net", "program")
	size := fs.Int("size", c.Net.Size, "number of machines")
	monitor := fs.Int64("monitor", c.Net.Monitor, "NAT monitor address")
	idle := fs.Int64("idle", c.Net.Idle, "value fed to idle machines")
	stop := fs.String("stop", c.Net.Stop, "stop condition: first (first packet to the monitor address) or repeat (same Y resent twice in a row by the NAT)")
	fs.Parse(args)

	var sf cluster.StopFunc
	switch strings.ToLower(*stop) {
	case "first":
		sf = cluster.FirstMonitored()
	case "repeat":
		sf = cluster.RepeatedResend()
	default:
		return errors.Errorf("net: invalid stop condition %q", *stop)
	}

	fileName, err := programArg(fs)
	if err != nil {
		return err
	}
	prog, err := vm.Load(fileName)
	if err != nil {
		return err
	}
	ms := make([]cluster.Machine, *size)
	for k := range ms {
		if ms[k], err = vm.New(prog); err != nil {
			return err
		}
	}
	n, err := cluster.NewNetwork(ms,
		cluster.Monitor(vm.Cell(*monitor)),
		cluster.IdleInput(vm.Cell(*idle)),
		cluster.Logger(commonlog.GetLogger("intcode.net")))
	if err != nil {
		return err
	}
	p, err := n.Run(sf)
	if err != nil {
		return err
	}
	log.Infof("NAT resends: %d", n.Resends())
	fmt.Fprintln(stdout, p.Y)
	return nil
}
