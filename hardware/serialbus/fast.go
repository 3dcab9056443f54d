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

package serialbus

import (
	"errors"
)

// HostPort is the host side of the fast serial and parallel side channels.
type HostPort interface {
	// SetFlag signals the FLAG input of the host's interface chip
	SetFlag()

	// ShiftIn places a byte in the host's serial data register
	ShiftIn(b uint8)
}

// Direction of a fast transfer.
type Direction int

// List of valid Direction values.
const (
	ToDrive Direction = iota
	ToHost
)

func (d Direction) String() string {
	if d == ToHost {
		return "to host"
	}
	return "to drive"
}

// ErrFastNotNegotiated is returned by FastTransfer() if either end has not
// agreed to use the fast side channel.
var ErrFastNotNegotiated = errors.New("serialbus: fast transfer not negotiated")

// ErrFastShiftMode is returned by FastTransfer() if the drive's shift register
// is not clocked in by the bus.
var ErrFastShiftMode = errors.New("serialbus: shift register not clocked by the bus")

// Fast is the byte-wide side channel between the host and a drive.
type Fast struct {
	bus  *Bus
	host HostPort

	hostReady bool
	ready     [MaxParticipants]bool
}

// NewFast is the preferred method of initialisation for the Fast type.
func NewFast(bus *Bus, host HostPort) *Fast {
	return &Fast{
		bus:  bus,
		host: host,
	}
}

// NegotiateHost records whether the host is using the fast side channel.
func (f *Fast) NegotiateHost(ready bool) {
	f.hostReady = ready
}

// Negotiate records whether the drive in the slot is using the fast side
// channel.
func (f *Fast) Negotiate(n int, ready bool) {
	checkSlot(n)
	f.ready[n] = ready
}

// Negotiated returns true if both the host and the drive in the slot have
// agreed to use the fast side channel.
func (f *Fast) Negotiated(n int) bool {
	checkSlot(n)
	return f.hostReady && f.ready[n]
}

// FastTransfer delivers a complete byte to the shift register at the other end
// of the side channel. The clock is the host clock of the transfer.
//
// The result is the same as clocking the eight bits of the byte, most
// significant bit first, into a shift register driven by an external clock.
func (f *Fast) FastTransfer(n int, b uint8, dir Direction, at uint64) error {
	if !f.Negotiated(n) {
		return ErrFastNotNegotiated
	}

	switch dir {
	case ToDrive:
		p := f.bus.slots[n].p
		if p == nil {
			return ErrFastNotNegotiated
		}
		if err := p.Execute(at); err != nil {
			return err
		}
		if !p.SerialChip().ShiftIn(b) {
			return ErrFastShiftMode
		}
	case ToHost:
		f.host.ShiftIn(b)
	}

	return nil
}
