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

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

const snapshotVersion = 1

// snapshot is the serialized state of an Instance.
type snapshot struct {
	Version int    `cbor:"1,keyasint"`
	PC      Cell   `cbor:"2,keyasint"`
	RB      Cell   `cbor:"3,keyasint"`
	Status  Status `cbor:"4,keyasint"`
	Count   int64  `cbor:"5,keyasint"`
	Input   []Cell `cbor:"6,keyasint,omitempty"`
	Dense   []Cell `cbor:"7,keyasint"`
	Addrs   []Cell `cbor:"8,keyasint,omitempty"` // sparse cell addresses
	Vals    []Cell `cbor:"9,keyasint,omitempty"` // sparse cell values
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Snapshot returns the complete state of the machine: memory, registers,
// run status and pending input. Bound handlers and buffered output are not
// part of the snapshot.
//
// The snapshot is CBOR encoded and zstd compressed.
func (i *Instance) Snapshot() ([]byte, error) {
	if i.status == Faulted {
		return nil, errors.Wrap(i.err, "Snapshot: faulted machine")
	}
	s := snapshot{
		Version: snapshotVersion,
		PC:      i.PC,
		RB:      i.RB,
		Status:  i.status,
		Count:   i.insCount,
		Input:   i.input,
		Dense:   i.Mem.dense,
	}
	s.Addrs, s.Vals = i.Mem.Sparse()
	b, err := cborEncMode.Marshal(&s)
	if err != nil {
		return nil, errors.Wrap(err, "Snapshot")
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, errors.Wrap(err, "Snapshot")
	}
	defer enc.Close()
	return enc.EncodeAll(b, nil), nil
}

// Restore creates a new Instance from a snapshot returned by Snapshot.
// Handlers must be bound again with the opts argument.
func Restore(data []byte, opts ...Option) (*Instance, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.Wrap(err, "Restore")
	}
	defer dec.Close()
	b, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "Restore")
	}
	var s snapshot
	if err = cbor.Unmarshal(b, &s); err != nil {
		return nil, errors.Wrap(err, "Restore")
	}
	if s.Version != snapshotVersion {
		return nil, errors.Errorf("Restore: unsupported snapshot version %d", s.Version)
	}
	if len(s.Addrs) != len(s.Vals) {
		return nil, errors.New("Restore: corrupted sparse memory")
	}
	switch s.Status {
	case Running, Blocked, Halted:
	default:
		return nil, errors.Errorf("Restore: invalid status %d", s.Status)
	}
	i := &Instance{
		PC:       s.PC,
		RB:       s.RB,
		Mem:      &Memory{dense: s.Dense},
		status:   s.Status,
		insCount: s.Count,
		input:    s.Input,
	}
	for k, a := range s.Addrs {
		if err = i.Mem.Write(a, s.Vals[k]); err != nil {
			return nil, errors.Wrapf(err, "Restore: sparse cell %d", a)
		}
	}
	if err = i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}
