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
	"strconv"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

// Network errors.
var (
	ErrUnknownAddress = errors.New("unknown address")
	ErrIdle           = errors.New("network idle with nothing to resend")
	ErrHalted         = errors.New("all machines halted")
)

// Packet is a network packet. Machines send packets by outputting three
// values in a row: destination address, X and Y.
type Packet struct {
	Dst, X, Y vm.Cell
}

// EventKind is the kind of a network event.
type EventKind int

// Event kinds.
const (
	Sent      EventKind = iota // a packet was delivered to a machine
	Monitored                  // a packet was sent to the monitor address
	Resent                     // the NAT resent its last packet to address 0
)

func (k EventKind) String() string {
	switch k {
	case Sent:
		return "sent"
	case Monitored:
		return "monitored"
	case Resent:
		return "resent"
	}
	return "event(" + strconv.Itoa(int(k)) + ")"
}

// Event is a network event passed to a StopFunc.
type Event struct {
	Kind   EventKind
	From   int // sender address, -1 for the NAT
	Pass   int // scheduling pass during which the event occurred
	Packet Packet
}

// StopFunc is the network termination predicate. It is called for every
// event and returns true to stop the network. The packet of the event that
// stopped the network is returned by Network.Run.
type StopFunc func(Event) bool

// FirstMonitored returns a StopFunc that stops the network at the first packet
// sent to the monitor address.
func FirstMonitored() StopFunc {
	return func(ev Event) bool { return ev.Kind == Monitored }
}

// RepeatedResend returns a StopFunc that stops the network when the NAT
// resends two packets in a row with the same Y value.
func RepeatedResend() StopFunc {
	var (
		last vm.Cell
		seen bool
	)
	return func(ev Event) bool {
		if ev.Kind != Resent {
			return false
		}
		if seen && ev.Packet.Y == last {
			return true
		}
		last, seen = ev.Packet.Y, true
		return false
	}
}

// Option interface
type Option func(*Network) error

// Monitor sets the monitor address. Packets sent to this address are kept by
// the NAT. It must not be the address of a machine. The default is 255.
func Monitor(addr vm.Cell) Option {
	return func(n *Network) error {
		n.monitor = addr
		return nil
	}
}

// IdleInput sets the value fed to machines waiting for input with an empty
// queue. The default is -1.
func IdleInput(v vm.Cell) Option {
	return func(n *Network) error {
		n.idle = v
		return nil
	}
}

// Logger sets the logger used to trace packets.
func Logger(l commonlog.Logger) Option {
	return func(n *Network) error {
		n.log = l
		return nil
	}
}

type node struct {
	m       Machine
	halted  bool
	partial []vm.Cell
	idle    int // number of idle values at the head of the input queue
}

// Network is a packet network of machines. Machine k has address k.
//
// Machines are scheduled in passes: during a pass each machine that has not
// halted is stepped once. Every machine that blocks on an empty input queue
// is fed the idle value. A pass where no machine sent a value nor consumed
// anything else than idle values is an idle pass: the NAT then resends the
// last packet it received on the monitor address to machine 0.
type Network struct {
	nodes   []node
	monitor vm.Cell
	idle    vm.Cell
	log     commonlog.Logger

	nat     Packet
	hasNAT  bool
	resends int
	pass    int
}

// NewNetwork creates a new network. Each machine is fed its own address.
func NewNetwork(ms []Machine, opts ...Option) (*Network, error) {
	if len(ms) == 0 {
		return nil, errors.New("NewNetwork: no machines")
	}
	n := &Network{
		nodes:   make([]node, len(ms)),
		monitor: 255,
		idle:    -1,
		log:     commonlog.GetLogger("intcode.cluster"),
	}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, errors.Wrap(err, "NewNetwork")
		}
	}
	if n.monitor >= 0 && n.monitor < vm.Cell(len(ms)) {
		return nil, errors.Errorf("NewNetwork: monitor address %d is a machine address", n.monitor)
	}
	for k, m := range ms {
		n.nodes[k].m = m
		m.Feed(vm.Cell(k))
	}
	return n, nil
}

// Resends returns the number of packets resent by the NAT.
func (n *Network) Resends() int { return n.resends }

// NAT returns the last packet received on the monitor address.
func (n *Network) NAT() (Packet, bool) { return n.nat, n.hasNAT }

// Run runs the network until the stop function returns true, and returns the
// packet of the event that stopped it. If stop is nil, RepeatedResend is
// used.
func (n *Network) Run(stop StopFunc) (Packet, error) {
	if stop == nil {
		stop = RepeatedResend()
	}
	for ; ; n.pass++ {
		active, alive := false, false
		for addr := range n.nodes {
			nd := &n.nodes[addr]
			if nd.halted {
				continue
			}
			alive = true
			before := nd.m.Pending()
			ev, v, err := nd.m.Step()
			if err != nil {
				return Packet{}, errors.Wrapf(err, "machine %d", addr)
			}
			consumed := before - nd.m.Pending()
			if consumed > nd.idle {
				active = true
				nd.idle = 0
			} else {
				nd.idle -= consumed
			}
			switch ev {
			case vm.Output:
				active = true
				nd.partial = append(nd.partial, v)
				if len(nd.partial) < 3 {
					break
				}
				p := Packet{nd.partial[0], nd.partial[1], nd.partial[2]}
				nd.partial = nd.partial[:0]
				e, err := n.route(addr, p)
				if err != nil {
					return p, err
				}
				if stop(e) {
					return p, nil
				}
			case vm.NeedInput:
				nd.m.Feed(n.idle)
				nd.idle++
			case vm.Halt:
				nd.halted = true
				n.log.Debugf("machine %d halted", addr)
			}
		}
		if !alive {
			return Packet{}, ErrHalted
		}
		if active {
			continue
		}
		if !n.hasNAT {
			return Packet{}, ErrIdle
		}
		if n.nodes[0].halted {
			return n.nat, errors.Wrap(ErrHalted, "NAT destination")
		}
		n.resends++
		n.log.Infof("pass %d: network idle, NAT resends (%d, %d) to 0", n.pass, n.nat.X, n.nat.Y)
		p := Packet{0, n.nat.X, n.nat.Y}
		n.nodes[0].m.Feed(p.X, p.Y)
		if stop(Event{Kind: Resent, From: -1, Pass: n.pass, Packet: p}) {
			return p, nil
		}
	}
}

func (n *Network) route(from int, p Packet) (Event, error) {
	e := Event{Kind: Sent, From: from, Pass: n.pass, Packet: p}
	switch {
	case p.Dst == n.monitor:
		e.Kind = Monitored
		n.nat, n.hasNAT = p, true
		n.log.Debugf("%d -> NAT: (%d, %d)", from, p.X, p.Y)
	case p.Dst >= 0 && p.Dst < vm.Cell(len(n.nodes)):
		n.nodes[p.Dst].m.Feed(p.X, p.Y)
		n.log.Debugf("%d -> %d: (%d, %d)", from, p.Dst, p.X, p.Y)
	default:
		return e, errors.Wrapf(ErrUnknownAddress, "machine %d sent packet to %d", from, p.Dst)
	}
	return e, nil
}
