// This file is part of Gopher1541.
//
// Gopher1541 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher1541 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher1541.  If not, see <https://www.gnu.org/licenses/>.

package via

import (
	"fmt"

	"github.com/jetsetilly/gopher1541/hardware/alarm"
)

// Host is the processor that owns the chip.
type Host interface {
	// the index of the current cycle
	Clock() uint64

	// RMW is true if the current store is the second write of a
	// read-modify-write instruction. ClearRMW() is called by the chip once
	// the dummy write has been handled.
	RMW() bool
	ClearRMW()

	// SetIRQ is called whenever the level of the interrupt output changes or
	// might have changed. The clock is the cycle in which the change happened.
	SetIRQ(asserted bool, clk uint64)
}

// Ports are the devices connected to the two I/O ports and to the CA2/CB2
// outputs.
type Ports interface {
	// the output value of a port changed. the value has all input bits (as
	// defined by the data direction register) set
	StorePA(value uint8, old uint8)
	StorePB(value uint8, old uint8)

	// the value on the pins of a port
	ReadPA() uint8
	ReadPB() uint8

	// the level of the CA2/CB2 lines when they are configured as outputs
	SetCA2(level bool)
	SetCB2(level bool)
}

// Line is one of the four control lines of the chip.
type Line int

// List of valid Line values.
const (
	CA1 Line = iota
	CA2
	CB1
	CB2
)

func (l Line) String() string {
	switch l {
	case CA1:
		return "CA1"
	case CA2:
		return "CA2"
	case CB1:
		return "CB1"
	case CB2:
		return "CB2"
	}
	return "unknown line"
}

// Edge is the direction of a transition on a control line.
type Edge int

// List of valid Edge values.
const (
	Fall Edge = iota
	Rise
)

func (e Edge) String() string {
	if e == Rise {
		return "rise"
	}
	return "fall"
}

// Chip is a single 6522.
type Chip struct {
	name  string
	host  Host
	ports Ports

	regs [NumRegisters]uint8

	ifr uint8
	ier uint8

	// timer 1. the counter is not stored. it is calculated from tau, which
	// is the clock at which the counter was last loaded from the latch. tai
	// is the clock at which the next underflow interrupt is due
	tal uint16
	tau uint64
	tai uint64
	t1  *alarm.Alarm

	// timer 2. the counter is calculated from tbu
	tbl uint16
	tbu uint64
	tbi uint64
	t2  *alarm.Alarm

	// PB7 output state of timer 1
	pb7   bool
	pb7x  bool
	pb7o  bool
	pb7xx bool
	pb7sx bool

	// previous output values of the ports
	oldPA uint8
	oldPB uint8

	// state of the CA2 and CB2 outputs
	ca2 bool
	cb2 bool

	// level on the CB2 input. used by the shift register
	cb2In bool

	// number of bits shifted into the SR
	srBits uint8

	// input latches
	ila uint8
	ilb uint8

	// the most recently read value. written back by the dummy write of a
	// read-modify-write instruction
	lastRead uint8
}

// New is the preferred method of initialisation for the Chip type. The
// timer alarms are created in the alarm context.
func New(name string, host Host, ports Ports, alarms *alarm.Context) *Chip {
	c := &Chip{
		name:  name,
		host:  host,
		ports: ports,
	}
	c.t1 = alarms.New(fmt.Sprintf("%s T1", name), c.t1Alarm)
	c.t2 = alarms.New(fmt.Sprintf("%s T2", name), c.t2Alarm)
	c.Reset()
	return c
}

func (c *Chip) String() string {
	return fmt.Sprintf("%s: IFR=%02x IER=%02x ACR=%02x PCR=%02x T1=%04x T2=%04x",
		c.name, c.ifr, c.ier, c.regs[ACR], c.regs[PCR],
		c.t1Counter(c.host.Clock()), c.t2Counter(c.host.Clock()))
}

// Name returns the name of the chip as given to New().
func (c *Chip) Name() string {
	return c.name
}

// Reset the chip to its power-on state.
func (c *Chip) Reset() {
	for i := range c.regs {
		c.regs[i] = 0
	}
	for i := T1CL; i <= T2CH; i++ {
		c.regs[i] = 0xff
	}

	clk := c.host.Clock()

	c.tal = 0
	c.tbl = 0
	c.tau = clk
	c.tbu = clk
	c.tai = 0
	c.tbi = 0
	c.t1.Unset()
	c.t2.Unset()

	c.ier = 0
	c.ifr = 0
	c.updateIRQ(clk)

	c.pb7 = false
	c.pb7x = false
	c.pb7o = false
	c.pb7xx = false
	c.pb7sx = false

	c.oldPA = 0xff
	c.oldPB = 0xff

	c.ca2 = true
	c.cb2 = true
	c.cb2In = true
	c.ports.SetCA2(c.ca2)
	c.ports.SetCB2(c.cb2)

	c.srBits = 0
	c.ila = 0
	c.ilb = 0
	c.lastRead = 0
}

// CA2Pulse returns true if CA2 is configured to pulse low for one cycle after
// every access to port A.
func (c *Chip) CA2Pulse() bool {
	return c.ca2Pulse()
}

// IRQ returns true if the chip is asserting its interrupt line.
func (c *Chip) IRQ() bool {
	return c.ifr&c.ier&0x7f != 0
}

func (c *Chip) updateIRQ(clk uint64) {
	c.host.SetIRQ(c.IRQ(), clk)
}

// Rebase is the clock guard callback. Every clock value held by the chip is
// reduced by sub without changing the observable state of the timers.
func (c *Chip) Rebase(sub uint64) {
	// timer 1 is periodic with the reload period once the counter has
	// underflowed. moving tau forward by an even number of periods keeps
	// both the counter value and the PB7 phase. the clock has already been
	// reduced when the callback is run
	if c.tau >= sub {
		c.tau -= sub
	} else {
		clk := c.host.Clock() + sub
		period := 2 * (uint64(c.tal) + 2)
		if clk > c.tau {
			c.tau += ((clk - 1 - c.tau) / period) * period
		}
		if c.tau >= sub {
			c.tau -= sub
		} else {
			c.tau = 0
		}
	}

	// only the low 16 bits of the timer 2 counter are visible
	if c.tbu >= sub {
		c.tbu -= sub
	} else {
		c.tbu += ((sub-c.tbu)>>16 + 1) << 16
		c.tbu -= sub
	}

	if c.tai != 0 {
		c.tai = rebaseClock(c.tai, sub)
	}
	if c.tbi != 0 {
		c.tbi = rebaseClock(c.tbi, sub)
	}
}

func rebaseClock(clk uint64, sub uint64) uint64 {
	if clk > sub {
		return clk - sub
	}
	return 1
}
