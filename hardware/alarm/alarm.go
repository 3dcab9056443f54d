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

// Package alarm implements the scheduled events of a single processor.
//
// Each processor has one Context. Devices attached to the processor create
// alarms in that context and set them to go off at a clock value. The
// processor calls Dispatch() before every instruction and the alarms that are
// due are run in clock order.
//
// An alarm is unset before its callback is run so the callback can set the
// alarm again.
package alarm

import (
	"fmt"
	"math"
)

// Never is the clock value returned by NextPending() when no alarm is set.
const Never = math.MaxUint64

// Alarm is a single event in a Context.
type Alarm struct {
	ctx      *Context
	name     string
	callback func(offset uint64)

	clk     uint64
	pending bool
}

func (a *Alarm) String() string {
	if a.pending {
		return fmt.Sprintf("%s @ %d", a.name, a.clk)
	}
	return fmt.Sprintf("%s unset", a.name)
}

// Set the alarm to go off at clock. Setting a pending alarm moves it.
func (a *Alarm) Set(clk uint64) {
	a.clk = clk
	a.pending = true
	a.ctx.update()
}

// Unset the alarm. It is safe to unset an alarm that isn't pending.
func (a *Alarm) Unset() {
	if !a.pending {
		return
	}
	a.pending = false
	a.ctx.update()
}

// Pending returns true if the alarm is set.
func (a *Alarm) Pending() bool {
	return a.pending
}

// Clock returns the clock value the alarm is set to. Only meaningful if the
// alarm is pending.
func (a *Alarm) Clock() uint64 {
	return a.clk
}

// Context is the collection of alarms belonging to a processor.
type Context struct {
	name   string
	alarms []*Alarm

	// cached result for NextPending()
	next    uint64
	nextIdx int
}

// NewContext is the preferred method of initialisation for the Context type.
func NewContext(name string) *Context {
	return &Context{
		name:    name,
		next:    Never,
		nextIdx: -1,
	}
}

func (c *Context) String() string {
	return c.name
}

// New creates a new alarm in the context. The callback is given the number of
// cycles between the clock the alarm was set for and the clock at which it was
// dispatched.
func (c *Context) New(name string, callback func(offset uint64)) *Alarm {
	a := &Alarm{
		ctx:      c,
		name:     name,
		callback: callback,
	}
	c.alarms = append(c.alarms, a)
	return a
}

func (c *Context) update() {
	c.next = Never
	c.nextIdx = -1
	for i, a := range c.alarms {
		if a.pending && a.clk < c.next {
			c.next = a.clk
			c.nextIdx = i
		}
	}
}

// NextPending returns the clock of the earliest pending alarm. Returns Never if
// no alarm is pending.
func (c *Context) NextPending() uint64 {
	return c.next
}

// Dispatch runs every alarm that is due at or before the clock value.
func (c *Context) Dispatch(clk uint64) {
	for c.nextIdx >= 0 && c.next <= clk {
		a := c.alarms[c.nextIdx]
		a.pending = false
		c.update()
		a.callback(clk - a.clk)
	}
}

// Rebase subtracts sub from the clock of every pending alarm. An alarm that
// would go below zero is set to zero.
func (c *Context) Rebase(sub uint64) {
	for _, a := range c.alarms {
		if a.pending {
			if a.clk > sub {
				a.clk -= sub
			} else {
				a.clk = 0
			}
		}
	}
	c.update()
}

// UnsetAll clears every alarm in the context.
func (c *Context) UnsetAll() {
	for _, a := range c.alarms {
		a.pending = false
	}
	c.update()
}
