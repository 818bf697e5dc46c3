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
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// numberWriter returns an output handler that writes values one per line.
func numberWriter(w io.Writer) vm.OutHandler {
	return func(_ *vm.Instance, v vm.Cell) error {
		b := strconv.AppendInt(nil, int64(v), 10)
		_, err := w.Write(append(b, '\n'))
		return err
	}
}

// numberReader returns an input handler that reads comma or space separated
// values from r, one line at a time. Empty lines are skipped.
func numberReader(r io.Reader) vm.InHandler {
	s := bufio.NewScanner(r)
	return func(i *vm.Instance) error {
		for s.Scan() {
			f := strings.FieldsFunc(s.Text(), func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
			if len(f) == 0 {
				continue
			}
			c, err := vm.ParseString(strings.Join(f, ","))
			if err != nil {
				return err
			}
			i.Feed(c...)
			return nil
		}
		if err := s.Err(); err != nil {
			return errors.Wrap(err, "read failed")
		}
		return io.EOF
	}
}

// flushed flushes the standard output before calling h.
func flushed(h vm.InHandler) vm.InHandler {
	return func(i *vm.Instance) error {
		if err := stdout.Flush(); err != nil {
			return err
		}
		return h(i)
	}
}

func runCmd(c *config, args []string) (err error) {
	fs := newFlagSet("run", "program")
	var (
		in      cellList
		patches assignList
		asciiIO = fs.Bool("ascii", c.Run.ASCII, "ASCII input and output")
		noRaw   = fs.Bool("noraw", c.Run.NoRaw, "disable raw terminal IO in ASCII mode")
		save    = fs.String("save", "", "save a snapshot to `filename` if the program stops before halting")
		resume  = fs.String("resume", "", "resume from snapshot `filename` instead of loading a program")
		dump    = fs.Bool("dump", false, "print the memory image upon exit")
	)
	fs.Var(&in, "in", "comma separated input `values`")
	fs.Var(&patches, "patch", "`addr=value` memory patches applied before running (can be repeated)")
	fs.Parse(args)

	var opts []vm.Option
	if *asciiIO {
		var echo io.Writer
		if !*noRaw {
			tearDown, err := setRawIO()
			if err == nil {
				defer tearDown()
				echo = os.Stdout
			} else {
				log.Debugf("raw IO: %v", err)
			}
		}
		opts = append(opts,
			vm.BindOutHandler(ascii.Writer(stdout)),
			vm.BindInHandler(flushed(ascii.LineReader(os.Stdin, echo))))
	} else {
		opts = append(opts,
			vm.BindOutHandler(numberWriter(stdout)),
			vm.BindInHandler(flushed(numberReader(os.Stdin))))
	}
	opts = append(opts, vm.Input(in...))

	var i *vm.Instance
	if *resume != "" {
		data, err := os.ReadFile(*resume)
		if err != nil {
			return errors.Wrap(err, "resume")
		}
		if i, err = vm.Restore(data, opts...); err != nil {
			return err
		}
		log.Infof("resumed %s at pc %d", *resume, i.PC)
	} else {
		fileName, err := programArg(fs)
		if err != nil {
			return err
		}
		prog, err := vm.Load(fileName)
		if err != nil {
			return err
		}
		if i, err = vm.New(prog, opts...); err != nil {
			return err
		}
	}

	for _, p := range patches {
		addr, err := strconv.ParseInt(p.key, 10, 64)
		if err != nil {
			return errors.Errorf("invalid patch address %q", p.key)
		}
		if err = i.Poke(vm.Cell(addr), p.value); err != nil {
			return errors.Wrapf(err, "patch %s", p.key)
		}
	}

	_, err = i.Run()
	if errors.Cause(err) == io.EOF {
		log.Infof("end of input, machine %v at pc %d", i.Status(), i.PC)
		err = nil
	}
	if err != nil {
		return &stateError{err, i}
	}
	log.Infof("%d instructions executed", i.InstructionCount())

	if *save != "" && !i.Halted() {
		data, err := i.Snapshot()
		if err != nil {
			return err
		}
		if err = os.WriteFile(*save, data, 0644); err != nil {
			return errors.Wrap(err, "save")
		}
		log.Infof("snapshot saved to %s", *save)
	}
	if *dump {
		err = i.Mem.Dump(stdout)
	}
	return err
}
