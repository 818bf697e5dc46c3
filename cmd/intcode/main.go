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
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log commonlog.Logger

type command struct {
	name  string
	usage string
	run   func(c *config, args []string) error
}

var commands = []command{
	{"run", "run a single Intcode program", runCmd},
	{"loop", "run copies of a program in a feedback loop", loopCmd},
	{"pair", "run two copies of a duet program talking to each other", pairCmd},
	{"net", "run copies of a program on a packet network", netCmd},
	{"reg", "run a register machine program", regCmd},
	{"asm", "assemble an Intcode program", asmCmd},
	{"dis", "disassemble an Intcode program", disCmd},
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "Usage: %s [flags] command [command flags] [args]\n\nFlags:\n", os.Args[0])
	flag.PrintDefaults()
	fmt.Fprintln(w, "\nCommands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-6s %s\n", c.name, c.usage)
	}
}

// stateError is an error that occurred while running a machine. With -debug,
// atExit prints the machine registers.
type stateError struct {
	err error
	i   *vm.Instance
}

func (e *stateError) Error() string { return e.err.Error() }
func (e *stateError) Cause() error  { return e.err }

func atExit(debug bool, err error) {
	if err == nil {
		return
	}
	report(os.Stderr, debug, err)
	os.Exit(1)
}

// report writes err to w. In debug mode, it prints the wrapped error chain
// with stack traces and the state of the machine if known.
func report(w io.Writer, debug bool, err error) {
	if !debug {
		fmt.Fprintf(w, "\n%v\n", err)
		return
	}
	se, ok := err.(*stateError)
	if ok {
		err = se.err
	}
	fmt.Fprintf(w, "\n%+v\n", err)
	if ok && se.i != nil {
		i := se.i
		fmt.Fprintf(w, "PC: %d (%d), RB: %d, status: %v, instructions: %d\n",
			i.PC, i.Peek(i.PC), i.RB, i.Status(), i.InstructionCount())
	}
}

func main() {
	var err error
	var c *config

	// flush output, catch and log errors
	defer func() {
		stdout.Flush()
		atExit(c != nil && c.Debug, err)
	}()

	flag.Usage = usage
	var (
		cfgFile   = flag.String("config", "", "load settings from TOML file `filename`")
		verbosity = flag.Int("v", 0, "log verbosity (0 = errors and warnings only)")
		debug     = flag.Bool("debug", false, "enable debug diagnostics")
	)
	flag.Parse()

	if c, err = loadConfig(*cfgFile); err != nil {
		return
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			c.Verbosity = *verbosity
		case "debug":
			c.Debug = *debug
		}
	})
	commonlog.Configure(c.Verbosity, nil)
	log = commonlog.GetLogger("intcode")

	args := flag.Args()
	if len(args) == 0 {
		usage()
		err = errors.New("no command")
		return
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			log.Debugf("command %s %v", cmd.name, args[1:])
			err = cmd.run(c, args[1:])
			return
		}
	}
	err = errors.Errorf("unknown command %q", args[0])
}

// stdout is the buffered standard output.
var stdout = bufio.NewWriter(os.Stdout)

func newFlagSet(name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s %s [flags] %s\n\nFlags:\n", os.Args[0], name, args)
		fs.PrintDefaults()
	}
	return fs
}

// programArg returns the single file name argument of a command.
func programArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		return "", errors.New(fs.Name() + ": expected one program file")
	}
	return fs.Arg(0), nil
}
