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
	"os"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/db47h/intcode/vm/register"
	"github.com/pkg/errors"
)

func asmCmd(c *config, args []string) error {
	fs := newFlagSet("asm", "source")
	out := fs.String("o", "", "write the program to `filename` instead of the standard output")
	fs.Parse(args)

	fileName, err := programArg(fs)
	if err != nil {
		return err
	}
	f, err := os.Open(fileName)
	if err != nil {
		return errors.Wrap(err, "asm")
	}
	defer f.Close()
	prog, err := asm.Assemble(fileName, f)
	if err != nil {
		return err
	}
	if *out == "" {
		if err = vm.Format(stdout, prog); err != nil {
			return err
		}
		_, err = stdout.Write([]byte{'\n'})
		return err
	}
	if err = os.WriteFile(*out, []byte(vm.FormatString(prog)+"\n"), 0644); err != nil {
		return errors.Wrap(err, "asm")
	}
	log.Infof("%d cells written to %s", len(prog), *out)
	return nil
}

func disCmd(c *config, args []string) error {
	fs := newFlagSet("dis", "program")
	base := fs.Int("base", 0, "address of the first cell to disassemble")
	count := fs.Int("n", 0, "number of cells to disassemble, 0 for all")
	fs.Parse(args)

	fileName, err := programArg(fs)
	if err != nil {
		return err
	}
	prog, err := vm.Load(fileName)
	if err != nil {
		return err
	}
	if *base < 0 || *base > len(prog) {
		return errors.Errorf("dis: base address %d out of range", *base)
	}
	end := len(prog)
	if *count > 0 && *base+*count < end {
		end = *base + *count
	}
	return asm.DisassembleAll(prog[*base:end], *base, stdout)
}

func parseDialect(s string) (register.Dialect, error) {
	for _, d := range []register.Dialect{register.Assembunny, register.Duet, register.Sound, register.Device} {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, errors.Errorf("unknown dialect %q", s)
}

func regCmd(c *config, args []string) error {
	fs := newFlagSet("reg", "program")
	var (
		inits assignList
		in    cellList
	)
	dialect := fs.String("dialect", c.Reg.Dialect, "program dialect: assembunny, duet, sound or device")
	limit := fs.Int("limit", 0, "stop after `n` output values, 0 for no limit")
	fs.Var(&inits, "set", "`reg=value` initial register values (can be repeated)")
	fs.Var(&in, "in", "comma separated input `values`")
	fs.Parse(args)

	d, err := parseDialect(*dialect)
	if err != nil {
		return err
	}
	fileName, err := programArg(fs)
	if err != nil {
		return err
	}
	p, err := register.Load(fileName, d)
	if err != nil {
		return err
	}
	opts := []register.Option{register.Input(in...)}
	for _, a := range inits {
		opts = append(opts, register.Init(a.key, a.value))
	}
	m, err := register.New(p, opts...)
	if err != nil {
		return err
	}

	n := 0
	for *limit == 0 || n < *limit {
		ev, v, err := m.Step()
		if err != nil {
			return err
		}
		if ev != vm.Output {
			log.Infof("machine stopped: %v", ev)
			break
		}
		fmt.Fprintln(stdout, v)
		n++
	}

	regs := "abcdefghijklmnopqrstuvwxyz"
	if d == register.Device {
		regs = "012345"
	}
	var b strings.Builder
	for k := range regs {
		if v := m.Reg(regs[k : k+1]); v != 0 || d == register.Device {
			fmt.Fprintf(&b, " %c=%d", regs[k], v)
		}
	}
	fmt.Fprintf(stdout, "registers:%s\n", b.String())
	log.Infof("%d instructions executed", m.InstructionCount())
	return nil
}
