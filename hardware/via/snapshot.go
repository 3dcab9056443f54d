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
	"github.com/jetsetilly/gopher1541/snapshot"
)

// snapshot module version
const (
	SnapshotMajor = 1
	SnapshotMinor = 0
)

// Snapshot writes the state of the chip to a module named after the chip.
func (c *Chip) Snapshot(w *snapshot.Writer) {
	clk := c.host.Clock()
	c.dispatchDue(clk)

	m := w.Module(c.name, SnapshotMajor, SnapshotMinor)

	m.B(c.regs[PRA])
	m.B(c.regs[DDRA])
	m.B(c.regs[PRB])
	m.B(c.regs[DDRB])

	m.W(c.tal)
	m.W(c.t1Counter(clk))
	m.B(c.regs[T2LL])
	m.W(c.t2Counter(clk))

	var flags uint8
	if c.tai != 0 {
		flags |= 0x80
	}
	if c.tbi != 0 {
		flags |= 0x40
	}
	m.B(flags)

	m.B(c.regs[SR])
	m.B(c.regs[ACR])
	m.B(c.regs[PCR])
	m.B(c.ifr)
	m.B(c.ier)

	var pb7 uint8
	if (c.pb7 != c.pb7x) || c.pb7o {
		pb7 = 0x80
	}
	m.B(pb7)
	m.B(c.srBits)

	var cab uint8
	if c.ca2 {
		cab |= 0x80
	}
	if c.cb2 {
		cab |= 0x40
	}
	m.B(cab)

	m.B(c.ila)
	m.B(c.ilb)
}

type chipState struct {
	ora, ddra, orb, ddrb uint8
	tal, t1c             uint16
	t2ll                 uint8
	t2c                  uint16
	flags                uint8
	sr, acr, pcr         uint8
	ifr, ier             uint8
	pb7                  uint8
	srBits               uint8
	cab                  uint8
	ila, ilb             uint8
}

// Restore the state of the chip from the snapshot. The chip is not changed if
// an error is returned.
//
// The timers are restored relative to the current clock. The port outputs are
// not replayed to the devices connected to the ports.
func (c *Chip) Restore(r *snapshot.Reader) error {
	m, err := r.Module(c.name, SnapshotMajor, SnapshotMinor)
	if err != nil {
		return err
	}

	var s chipState
	s.ora = m.ReadB()
	s.ddra = m.ReadB()
	s.orb = m.ReadB()
	s.ddrb = m.ReadB()
	s.tal = m.ReadW()
	s.t1c = m.ReadW()
	s.t2ll = m.ReadB()
	s.t2c = m.ReadW()
	s.flags = m.ReadB()
	s.sr = m.ReadB()
	s.acr = m.ReadB()
	s.pcr = m.ReadB()
	s.ifr = m.ReadB()
	s.ier = m.ReadB()
	s.pb7 = m.ReadB()
	s.srBits = m.ReadB()
	s.cab = m.ReadB()
	s.ila = m.ReadB()
	s.ilb = m.ReadB()

	if err := m.Err(); err != nil {
		return err
	}

	clk := c.host.Clock()

	c.regs[PRA] = s.ora
	c.regs[PRANoHandshake] = s.ora
	c.regs[DDRA] = s.ddra
	c.regs[PRB] = s.orb
	c.regs[DDRB] = s.ddrb
	c.oldPA = s.ora | ^s.ddra
	c.oldPB = s.orb | ^s.ddrb

	c.tal = s.tal
	c.regs[T1LL] = uint8(s.tal)
	c.regs[T1LH] = uint8(s.tal >> 8)
	c.tau = clk + uint64(s.t1c) + 1
	c.tai = clk + uint64(s.t1c) + 1

	c.regs[T2LL] = s.t2ll
	c.updateTBL()
	c.tbu = clk + uint64(s.t2c) + 2
	c.tbi = clk + uint64(s.t2c) + 1

	if s.flags&0x80 == 0x80 {
		c.t1.Set(c.tai)
	} else {
		c.t1.Unset()
		c.tai = 0
	}
	if s.flags&0x40 == 0x40 {
		c.t2.Set(c.tbi)
	} else {
		c.t2.Unset()
		c.tbi = 0
	}

	c.regs[SR] = s.sr
	c.regs[ACR] = s.acr
	c.regs[PCR] = s.pcr
	c.ifr = s.ifr
	c.ier = s.ier

	c.pb7 = s.pb7 != 0
	c.pb7x = false
	c.pb7o = false
	c.pb7xx = false
	c.pb7sx = false

	c.srBits = s.srBits
	c.ca2 = s.cab&0x80 == 0x80
	c.cb2 = s.cab&0x40 == 0x40

	c.ila = s.ila
	c.ilb = s.ilb

	c.updateIRQ(clk)

	return nil
}
