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
	"github.com/jetsetilly/gopher1541/hardware/via"
)

// Parallel is the parallel cable between the host's user port and port A of
// the bus interface chip of one or more drives. The value on the cable is the
// logical AND of every output.
type Parallel struct {
	bus  *Bus
	host HostPort

	hostValue uint8
	values    [MaxParticipants]uint8
	enabled   [MaxParticipants]bool
}

// NewParallel is the preferred method of initialisation for the Parallel type.
func NewParallel(bus *Bus, host HostPort) *Parallel {
	p := &Parallel{
		bus:       bus,
		host:      host,
		hostValue: 0xff,
	}
	for i := range p.values {
		p.values[i] = 0xff
	}
	return p
}

// Enable connects or disconnects the drive in the slot.
func (p *Parallel) Enable(n int, enable bool) {
	checkSlot(n)
	p.enabled[n] = enable
	p.values[n] = 0xff
}

// Enabled returns true if the drive in the slot is connected to the cable.
func (p *Parallel) Enabled(n int) bool {
	checkSlot(n)
	return p.enabled[n]
}

// Value returns the value on the cable.
func (p *Parallel) Value() uint8 {
	v := p.hostValue
	for i := range p.values {
		if p.enabled[i] {
			v &= p.values[i]
		}
	}
	return v
}

// strobe every connected drive
func (p *Parallel) strobe() {
	for i := range p.enabled {
		if p.enabled[i] && p.bus.slots[i].p != nil {
			p.bus.slots[i].p.SerialChip().Signal(via.CB1, via.Fall)
		}
	}
}

// HostWrite changes the host's output. The connected drives are brought up to
// the clock first. If handshake is true the drives see a falling edge on CB1.
func (p *Parallel) HostWrite(v uint8, handshake bool, at uint64) error {
	p.bus.catchUp(at, -1)
	p.hostValue = v
	if handshake {
		p.strobe()
	}
	return p.bus.Err()
}

// HostRead returns the value on the cable after bringing the connected drives
// up to the clock. The read is always a handshake.
func (p *Parallel) HostRead(at uint64) (uint8, error) {
	p.bus.catchUp(at, -1)
	p.strobe()
	return p.Value(), p.bus.Err()
}

// DriveWrite changes the output of the drive in the slot.
func (p *Parallel) DriveWrite(n int, v uint8) {
	checkSlot(n)
	p.values[n] = v
}

// DriveHandshake signals the host's FLAG line on behalf of the drive in the
// slot.
func (p *Parallel) DriveHandshake(n int) {
	checkSlot(n)
	if p.enabled[n] {
		p.host.SetFlag()
	}
}
