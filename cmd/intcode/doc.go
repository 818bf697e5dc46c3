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

// The intcode command line tool runs Intcode programs, alone or in clusters,
// as well as register machine programs, and assembles or disassembles
// Intcode programs.
//
// Usage:
//
//	intcode [flags] command [command flags] [args]
//
// Global flags:
//
//	-config filename
//		  load settings from TOML file filename
//	-debug
//		  enable debug diagnostics
//	-v int
//		  log verbosity (0 = errors and warnings only)
//
// Commands:
//
//	run [-in values] [-ascii] [-noraw] [-patch addr=value] [-save filename] [-resume filename] [-dump] program
//	loop [-phases values] [-seed n] [-search] program
//	pair [-reg name] program
//	net [-size n] [-monitor addr] [-idle n] [-stop first|repeat] program
//	reg [-dialect name] [-set reg=value] [-in values] [-limit n] program
//	asm [-o filename] source
//	dis [-base addr] [-n count] program
//
// run: runs a single program. Values given with -in are fed to the program
// before starting. When the program needs more input, it is read from the
// standard input: one line of comma or space separated values at a time, or
// one line of text with -ascii. In ASCII mode, the terminal is switched to
// raw mode unless -noraw is given. With -save, a snapshot of the machine is
// saved if input runs out before the program halts; -resume restarts it from
// the snapshot. -patch writes values to memory before running, e.g.
// "-patch 1=12,2=2". -dump prints the memory image upon exit.
//
// loop: runs one copy of the program per phase value, connected in a
// feedback loop. Each machine gets its phase value as first input and the
// seed is fed to the first machine. The last value output by the last machine
// is printed. With -search, every order of the phase values is tried and the
// highest result is printed along with the corresponding phase order.
//
// pair: runs two copies of a duet program, register p being set to the
// program ID, until both halt or wait for each other. Prints the number of
// values sent by each program.
//
// net: runs -size copies of the program on a packet network where each
// machine is fed its address and outputs packets as (address, X, Y) triples.
// Packets sent to the monitor address are kept by the NAT, which resends the
// last one to machine 0 when the network is idle. The Y value of the packet
// that triggered the stop condition is printed.
//
// reg: runs an assembunny, duet, sound or device register machine program,
// prints its output values, then the non-zero registers. The sound dialect
// prints every recovered sound; use -limit 1 to stop at the first one.
//
// The -debug flag prints a full stack trace and the machine state should a
// program crash.
//
// Configuration file:
//
// Settings can be loaded from a TOML file. Command line flags take precedence.
//
//	verbosity = 1
//	debug = false
//
//	[run]
//	ascii = true
//	noraw = false
//
//	[loop]
//	phases = "5,6,7,8,9"
//	seed = 0
//
//	[net]
//	size = 50
//	monitor = 255
//	idle = -1
//	stop = "repeat"
//
//	[reg]
//	dialect = "assembunny"
package main
