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

package cluster_test

import (
	"testing"

	"github.com/db47h/intcode/cluster"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// machine 1 sends (255, 7, 9), then both machines idle, discarding anything
// they receive.
const natNode = `
		in [addr]
		jf [addr], idle
		out 255
		out 7
		out 9
:idle	in [x]
		jt 1, idle
:addr	.dat 0
:x		.dat 0
`

// machine 1 sends (0, 3, 4). Machine 0 forwards the first packet it receives
// to 255.
const fwdNode = `
		in [addr]
		jf [addr], recv
		out 0
		out 3
		out 4
:idle	in [x]
		jt 1, idle
:recv	in [x]
		eq [x], -1, [t]
		jt [t], recv
		in [y]
		out 255
		out [x]
		out [y]
		jt 1, idle
:addr	.dat 0
:x		.dat 0
:y		.dat 0
:t		.dat 0
`

type recorder struct {
	events []cluster.Event
	stop   cluster.StopFunc
}

func (r *recorder) record(ev cluster.Event) bool {
	r.events = append(r.events, ev)
	return r.stop(ev)
}

func (r *recorder) kinds() []cluster.EventKind {
	var ks []cluster.EventKind
	for _, ev := range r.events {
		ks = append(ks, ev.Kind)
	}
	return ks
}

func TestNetwork_routing(t *testing.T) {
	n, err := cluster.NewNetwork(machines(t, mustAssemble(t, fwdNode), 2))
	require.NoError(t, err)
	r := recorder{stop: cluster.FirstMonitored()}
	p, err := n.Run(r.record)
	require.NoError(t, err)
	assert.Equal(t, cluster.Packet{Dst: 255, X: 3, Y: 4}, p)
	require.Len(t, r.events, 2)
	assert.Equal(t, cluster.Event{Kind: cluster.Sent, From: 1, Pass: 2, Packet: cluster.Packet{Dst: 0, X: 3, Y: 4}}, r.events[0])
	assert.Equal(t, cluster.Monitored, r.events[1].Kind)
	assert.Equal(t, 0, r.events[1].From)
	assert.Equal(t, 0, n.Resends())
}

func TestNetwork_nat(t *testing.T) {
	prog := mustAssemble(t, natNode)

	n, err := cluster.NewNetwork(machines(t, prog, 2))
	require.NoError(t, err)
	p, err := n.Run(cluster.FirstMonitored())
	require.NoError(t, err)
	assert.Equal(t, cluster.Packet{Dst: 255, X: 7, Y: 9}, p)

	// one resend per idle pass, stop on the second resend of the same Y.
	n, err = cluster.NewNetwork(machines(t, prog, 2))
	require.NoError(t, err)
	r := recorder{stop: cluster.RepeatedResend()}
	p, err = n.Run(r.record)
	require.NoError(t, err)
	assert.Equal(t, cluster.Packet{Dst: 0, X: 7, Y: 9}, p)
	assert.Equal(t, []cluster.EventKind{cluster.Monitored, cluster.Resent, cluster.Resent}, r.kinds())
	assert.Equal(t, 2, n.Resends())
	assert.Less(t, r.events[1].Pass, r.events[2].Pass)
	nat, ok := n.NAT()
	assert.True(t, ok)
	assert.Equal(t, vm.Cell(9), nat.Y)
}

func TestNetwork_options(t *testing.T) {
	prog := mustAssemble(t, natNode)
	_, err := cluster.NewNetwork(machines(t, prog, 2), cluster.Monitor(1))
	assert.Error(t, err)

	// with a different monitor address, 255 is unknown.
	n, err := cluster.NewNetwork(machines(t, prog, 2), cluster.Monitor(1000))
	require.NoError(t, err)
	_, err = n.Run(nil)
	assert.True(t, errors.Is(err, cluster.ErrUnknownAddress), "got %v", err)
}

func TestNetwork_errors(t *testing.T) {
	idle := mustAssemble(t, "in [addr] :idle in [addr] jt 1, idle :addr .dat 0")
	n, err := cluster.NewNetwork(machines(t, idle, 3))
	require.NoError(t, err)
	_, err = n.Run(nil)
	assert.Equal(t, cluster.ErrIdle, err)

	n, err = cluster.NewNetwork(machines(t, mustParse(t, "3,0,99"), 3))
	require.NoError(t, err)
	_, err = n.Run(nil)
	assert.Equal(t, cluster.ErrHalted, err)
}
