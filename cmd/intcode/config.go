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
	"flag"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// config holds the settings that can be loaded from a TOML file. Command line
// flags override them.
type config struct {
	Verbosity int  `toml:"verbosity"`
	Debug     bool `toml:"debug"`

	Run struct {
		ASCII bool `toml:"ascii"`
		NoRaw bool `toml:"noraw"`
	} `toml:"run"`

	Loop struct {
		Phases string `toml:"phases"`
		Seed   int64  `toml:"seed"`
	} `toml:"loop"`

	Net struct {
		Size    int    `toml:"size"`
		Monitor int64  `toml:"monitor"`
		Idle    int64  `toml:"idle"`
		Stop    string `toml:"stop"`
	} `toml:"net"`

	Reg struct {
		Dialect string `toml:"dialect"`
	} `toml:"reg"`
}

func defaultConfig() *config {
	c := new(config)
	c.Loop.Phases = "0,1,2,3,4"
	c.Net.Size = 50
	c.Net.Monitor = 255
	c.Net.Idle = -1
	c.Net.Stop = "repeat"
	c.Reg.Dialect = "assembunny"
	return c
}

// loadConfig loads the named TOML file over the defaults.
func loadConfig(fileName string) (*config, error) {
	c := defaultConfig()
	if fileName == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(fileName, c)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", fileName)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return nil, errors.Errorf("config %s: unknown key %s", fileName, u[0])
	}
	return c, nil
}

// cellList is a flag.Value for comma separated cell values.
type cellList []vm.Cell

func (l *cellList) String() string {
	var b strings.Builder
	for k, v := range *l {
		if k > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(v), 10))
	}
	return b.String()
}

func (l *cellList) Set(s string) error {
	if strings.TrimSpace(s) == "" {
		*l = nil
		return nil
	}
	c, err := vm.ParseString(s)
	if err != nil {
		return err
	}
	*l = c
	return nil
}

func (l *cellList) Get() interface{} { return []vm.Cell(*l) }

// assignment is an addr=value or name=value pair.
type assignment struct {
	key   string
	value vm.Cell
}

// assignList is a flag.Value for repeated key=value flags.
type assignList []assignment

func (l *assignList) String() string {
	var b strings.Builder
	for k, a := range *l {
		if k > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a.key)
		b.WriteByte('=')
		b.WriteString(strconv.FormatInt(int64(a.value), 10))
	}
	return b.String()
}

func (l *assignList) Set(s string) error {
	for _, f := range strings.Split(s, ",") {
		kv := strings.SplitN(strings.TrimSpace(f), "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			return errors.Errorf("invalid assignment %q", f)
		}
		v, err := strconv.ParseInt(strings.TrimSpace(kv[1]), 10, 64)
		if err != nil {
			return errors.Errorf("invalid value in %q", f)
		}
		*l = append(*l, assignment{kv[0], vm.Cell(v)})
	}
	return nil
}

func (l *assignList) Get() interface{} { return []assignment(*l) }

var (
	_ flag.Getter = (*cellList)(nil)
	_ flag.Getter = (*assignList)(nil)
)
