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

package hardware

import (
	"github.com/jetsetilly/gopher1541/hardware/serialbus"
)

// HostPort is the host's end of the fast serial and parallel cable
// connections. It records the signals sent by the drives. Implements the
// serialbus.HostPort interface.
type HostPort struct {
	// number of times the FLAG line has been signalled
	Flags int

	// bytes shifted in over the fast serial connection, oldest first
	Shifted []uint8
}

// SetFlag implements the serialbus.HostPort interface.
func (p *HostPort) SetFlag() {
	p.Flags++
}

// ShiftIn implements the serialbus.HostPort interface.
func (p *HostPort) ShiftIn(b uint8) {
	p.Shifted = append(p.Shifted, b)
}

// Receive returns the oldest byte received over the fast serial connection.
// The ok value is false if no byte is waiting.
func (p *HostPort) Receive() (b uint8, ok bool) {
	if len(p.Shifted) == 0 {
		return 0, false
	}
	b = p.Shifted[0]
	p.Shifted = p.Shifted[1:]
	return b, true
}

// HostWrite changes the host's output to the serial bus. Each set bit of the
// value is a released line: bit 3 is ATN, bit 4 is CLK and bit 5 is DATA.
func (m *Machine) HostWrite(v uint8) error {
	return m.handleJam(m.Bus.HostWrite(v, m.clk))
}

// HostRead returns the serial bus as seen by the host. Bit 6 is CLK and bit 7
// is DATA. A set bit is a released line.
func (m *Machine) HostRead() (uint8, error) {
	v, err := m.Bus.HostRead(m.clk)
	return v, m.handleJam(err)
}

// ParallelWrite changes the host's output to the parallel cable.
func (m *Machine) ParallelWrite(v uint8, handshake bool) error {
	return m.handleJam(m.Parallel.HostWrite(v, handshake, m.clk))
}

// ParallelRead returns the value on the parallel cable.
func (m *Machine) ParallelRead() (uint8, error) {
	v, err := m.Parallel.HostRead(m.clk)
	return v, m.handleJam(err)
}

// FastReady tells the drives that the host is ready to use the fast serial
// connection.
func (m *Machine) FastReady(ready bool) {
	m.Fast.NegotiateHost(ready)
}

// FastSend transfers a byte to the drive in the slot over the fast serial
// connection.
func (m *Machine) FastSend(slot int, b uint8) error {
	if _, err := m.slot(slot); err != nil {
		return err
	}
	return m.handleJam(m.Fast.FastTransfer(slot, b, serialbus.ToDrive, m.clk))
}
