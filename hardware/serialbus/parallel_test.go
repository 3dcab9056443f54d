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
	"testing"

	"github.com/jetsetilly/gopher1541/hardware/serialbus"
	"github.com/jetsetilly/gopher1541/hardware/via"
	"github.com/jetsetilly/gopher1541/logger"
	"github.com/jetsetilly/gopher1541/test"
)

func TestParallel(t *testing.T) {
	bus := serialbus.NewBus(logger.Allow)
	h := &hostPort{}
	cable := serialbus.NewParallel(bus, h)

	a := newParticipant("VIA1D8")
	b := newParticipant("VIA1D9")
	bus.Attach(0, a, serialbus.ATNAcknowledge)
	bus.Attach(1, b, serialbus.ATNAcknowledge)
	cable.Enable(0, true)
	test.ExpectSuccess(t, cable.Enabled(0))
	test.ExpectFailure(t, cable.Enabled(1))
	test.ExpectEquality(t, cable.Value(), uint8(0xff))

	// drives that are not connected do not contribute
	cable.DriveWrite(0, 0x0f)
	cable.DriveWrite(1, 0x00)
	test.ExpectEquality(t, cable.Value(), uint8(0x0f))

	// a write without handshake does not strobe the drive
	test.ExpectSuccess(t, cable.HostWrite(0xf3, false, 100))
	test.ExpectEquality(t, cable.Value(), uint8(0x03))
	test.ExpectEquality(t, a.executed[len(a.executed)-1], uint64(100))
	test.ExpectEquality(t, a.chip.Peek(via.IFR)&via.IntCB1, uint8(0x00))

	// with handshake the drive sees a falling edge on CB1
	test.ExpectSuccess(t, cable.HostWrite(0xf3, true, 110))
	test.ExpectEquality(t, a.chip.Peek(via.IFR)&via.IntCB1, uint8(via.IntCB1))
	test.ExpectEquality(t, b.chip.Peek(via.IFR)&via.IntCB1, uint8(0x00))

	// reading always strobes the drive
	a.chip.Store(via.IFR, via.IntCB1)
	test.ExpectEquality(t, a.chip.Peek(via.IFR)&via.IntCB1, uint8(0x00))
	v, err := cable.HostRead(120)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x03))
	test.ExpectEquality(t, a.chip.Peek(via.IFR)&via.IntCB1, uint8(via.IntCB1))

	// drive handshakes reach the host only from connected drives
	cable.DriveHandshake(0)
	cable.DriveHandshake(1)
	test.ExpectEquality(t, h.flags, 1)

	// connecting a drive forgets its previous output
	cable.Enable(1, true)
	test.ExpectEquality(t, cable.Value(), uint8(0x03))
}
