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

package serialbus_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gopher1541/hardware/serialbus"
	"github.com/jetsetilly/gopher1541/hardware/via"
	"github.com/jetsetilly/gopher1541/logger"
	"github.com/jetsetilly/gopher1541/test"
)

type hostPort struct {
	flags   int
	shifted []uint8
}

func (h *hostPort) SetFlag() {
	h.flags++
}

func (h *hostPort) ShiftIn(b uint8) {
	h.shifted = append(h.shifted, b)
}

func TestFastNotNegotiated(t *testing.T) {
	bus := serialbus.NewBus(logger.Allow)
	h := &hostPort{}
	fast := serialbus.NewFast(bus, h)

	a := newParticipant("VIA1D8")
	bus.Attach(0, a, serialbus.ATNAcknowledge)

	err := fast.FastTransfer(0, 0x55, serialbus.ToHost, 10)
	test.ExpectSuccess(t, errors.Is(err, serialbus.ErrFastNotNegotiated))

	fast.NegotiateHost(true)
	err = fast.FastTransfer(0, 0x55, serialbus.ToHost, 10)
	test.ExpectSuccess(t, errors.Is(err, serialbus.ErrFastNotNegotiated))

	fast.Negotiate(0, true)
	test.ExpectSuccess(t, fast.Negotiated(0))
	test.ExpectFailure(t, fast.Negotiated(1))
	test.ExpectSuccess(t, fast.FastTransfer(0, 0x55, serialbus.ToHost, 10))
	test.ExpectEquality(t, len(h.shifted), 1)
	test.ExpectEquality(t, h.shifted[0], uint8(0x55))

	// nothing is attached to the slot
	fast.Negotiate(1, true)
	err = fast.FastTransfer(1, 0x55, serialbus.ToDrive, 10)
	test.ExpectSuccess(t, errors.Is(err, serialbus.ErrFastNotNegotiated))

	// the host withdraws
	fast.NegotiateHost(false)
	test.ExpectFailure(t, fast.Negotiated(0))
}

// a fast transfer leaves the drive's shift register in the same state as eight
// bits clocked in one at a time
func TestFastEquivalence(t *testing.T) {
	for v := 0; v < 256; v++ {
		b := uint8(v)

		bus := serialbus.NewBus(logger.Allow)
		fast := serialbus.NewFast(bus, &hostPort{})
		fast.NegotiateHost(true)
		fast.Negotiate(0, true)

		a := newParticipant("VIA1D8")
		a.chip.Store(via.ACR, 0x0c)
		bus.Attach(0, a, serialbus.ATNAcknowledge)

		clocked := newParticipant("VIA1D8")
		clocked.chip.Store(via.ACR, 0x0c)
		clocked.host.clk = 500

		test.DemandSuccess(t, fast.FastTransfer(0, b, serialbus.ToDrive, 500))
		test.ExpectEquality(t, a.executed[len(a.executed)-1], uint64(500), v)

		for i := 7; i >= 0; i-- {
			if b&(1<<i) != 0 {
				clocked.chip.Signal(via.CB2, via.Rise)
			} else {
				clocked.chip.Signal(via.CB2, via.Fall)
			}
			clocked.chip.Signal(via.CB1, via.Fall)
			clocked.chip.Signal(via.CB1, via.Rise)
		}

		test.ExpectEquality(t, a.chip.ShiftRegister(), b, v)
		test.ExpectEquality(t, clocked.chip.ShiftRegister(), b, v)
		test.ExpectEquality(t, a.chip.Peek(via.IFR), clocked.chip.Peek(via.IFR), v)
		test.ExpectEquality(t, a.chip.Peek(via.IFR)&via.IntSR, uint8(via.IntSR), v)
	}
}

// the byte is refused if the drive's shift register is not clocked by the bus
func TestFastShiftMode(t *testing.T) {
	bus := serialbus.NewBus(logger.Allow)
	fast := serialbus.NewFast(bus, &hostPort{})
	fast.NegotiateHost(true)
	fast.Negotiate(0, true)

	a := newParticipant("VIA1D8")
	bus.Attach(0, a, serialbus.ATNAcknowledge)
	ifr := a.chip.Peek(via.IFR)

	err := fast.FastTransfer(0, 0x5a, serialbus.ToDrive, 500)
	test.ExpectSuccess(t, errors.Is(err, serialbus.ErrFastShiftMode))
	test.ExpectEquality(t, a.chip.ShiftRegister(), uint8(0x00))
	test.ExpectEquality(t, a.chip.Peek(via.IFR), ifr)

	a.chip.Store(via.ACR, 0x0c)
	test.ExpectSuccess(t, fast.FastTransfer(0, 0x5a, serialbus.ToDrive, 500))
	test.ExpectEquality(t, a.chip.ShiftRegister(), uint8(0x5a))
}
