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

// the control line modes of the PCR register
func (c *Chip) ca2IndependentInput() bool {
	return c.regs[PCR]&0x0a == 0x02
}

func (c *Chip) ca2Handshake() bool {
	return c.regs[PCR]&0x0c == 0x08
}

func (c *Chip) ca2Pulse() bool {
	return c.regs[PCR]&pcrCA2Mask == 0x0a
}

func (c *Chip) ca2Toggle() bool {
	return c.regs[PCR]&pcrCA2Mask == 0x08
}

func (c *Chip) cb2IndependentInput() bool {
	return c.regs[PCR]&0xa0 == 0x20
}

func (c *Chip) cb2Handshake() bool {
	return c.regs[PCR]&0xc0 == 0x80
}

func (c *Chip) cb2Pulse() bool {
	return c.regs[PCR]&pcrCB2Mask == 0xa0
}

func (c *Chip) cb2Toggle() bool {
	return c.regs[PCR]&pcrCB2Mask == 0x80
}

func (c *Chip) setCA2(level bool) {
	c.ca2 = level
	c.ports.SetCA2(level)
}

func (c *Chip) setCB2(level bool) {
	c.cb2 = level
	c.ports.SetCB2(level)
}

// access to port A clears the CA flags and performs the handshake. the
// handshake is run after the data transfer so the data is on the port when
// the other end sees CA2 fall
func (c *Chip) clearCA(clk uint64) {
	c.ifr &^= IntCA1
	if !c.ca2IndependentInput() {
		c.ifr &^= IntCA2
	}
	if c.ier&(IntCA1|IntCA2) != 0 {
		c.updateIRQ(clk)
	}
}

func (c *Chip) handshakeCA() {
	if c.ca2Handshake() {
		c.setCA2(false)
		if c.ca2Pulse() {
			c.setCA2(true)
		}
	}
}

func (c *Chip) clearCB(clk uint64) {
	c.ifr &^= IntCB1
	if !c.cb2IndependentInput() {
		c.ifr &^= IntCB2
	}
	if c.ier&(IntCB1|IntCB2) != 0 {
		c.updateIRQ(clk)
	}
}

func (c *Chip) handshakeCB() {
	if c.cb2Handshake() {
		c.setCB2(false)
		if c.cb2Pulse() {
			c.setCB2(true)
		}
	}
}

// Store writes a value to a register. If the host reports that this is the
// second write of a read-modify-write instruction, the value most recently
// read is written in the previous cycle first.
func (c *Chip) Store(reg uint8, v uint8) {
	clk := c.host.Clock()

	if c.host.RMW() {
		c.host.ClearRMW()
		if clk > 0 {
			c.store(reg, c.lastRead, clk-1)
		}
	}

	c.store(reg, v, clk)
}

func (c *Chip) store(reg uint8, v uint8, clk uint64) {
	reg &= 0x0f

	switch reg {
	case PRA:
		c.clearCA(clk)
		c.storePA(PRANoHandshake, v)
		c.handshakeCA()

	case PRANoHandshake:
		c.storePA(PRANoHandshake, v)

	case DDRA:
		c.storePA(DDRA, v)

	case PRB:
		c.clearCB(clk)
		c.storePB(PRB, v)
		c.handshakeCB()

	case DDRB:
		c.storePB(DDRB, v)

	case SR:
		c.regs[SR] = v
		c.srBits = 0
		if c.ifr&IntSR != 0 {
			c.ifr &^= IntSR
			c.updateIRQ(clk)
		}

	case T1CL, T1LL:
		c.regs[T1LL] = v
		c.updateTAL(clk)

	case T1CH:
		c.regs[T1LH] = v
		c.updateTAL(clk)

		// load counter from the latch
		c.tau = clk + uint64(c.tal) + 2
		c.tai = clk + uint64(c.tal) + 2
		c.t1.Set(c.tai)

		c.pb7 = false
		c.pb7o = false

		c.ifr &^= IntT1
		c.updateIRQ(clk)

	case T1LH:
		c.regs[T1LH] = v
		c.updateTAL(clk)
		c.ifr &^= IntT1
		c.updateIRQ(clk)

	case T2LL:
		c.regs[T2LL] = v
		c.updateTBL()

	case T2CH:
		c.regs[T2CH] = v
		c.updateTBL()
		c.tbu = clk + uint64(c.tbl) + 3
		c.tbi = clk + uint64(c.tbl) + 2
		c.t2.Set(c.tbi)
		c.ifr &^= IntT2
		c.updateIRQ(clk)

	case IFR:
		c.ifr &^= v
		c.updateIRQ(clk)

	case IER:
		if v&IntIRQ == IntIRQ {
			c.ier |= v & 0x7f
		} else {
			c.ier &^= v
		}
		c.updateIRQ(clk)

	case ACR:
		c.storeACR(v, clk)

	case PCR:
		c.storePCR(v)

	default:
		c.regs[reg] = v
	}
}

func (c *Chip) storePA(reg uint8, v uint8) {
	if reg == PRANoHandshake {
		c.regs[PRANoHandshake] = v
		reg = PRA
	}
	c.regs[reg] = v
	o := c.regs[PRA] | ^c.regs[DDRA]
	c.ports.StorePA(o, c.oldPA)
	c.oldPA = o
}

func (c *Chip) storePB(reg uint8, v uint8) {
	c.regs[reg] = v
	o := c.regs[PRB] | ^c.regs[DDRB]
	c.ports.StorePB(o, c.oldPB)
	c.oldPB = o
}

func (c *Chip) storeACR(v uint8, clk uint64) {
	c.updateTAL(clk)

	changed := c.regs[ACR] ^ v

	if changed&acrT1PB7 != 0 && v&acrT1PB7 != 0 {
		c.pb7 = !c.pb7x
	}

	if changed&acrT1FreeRun != 0 {
		c.pb7 = c.pb7 != c.pb7sx
		if v&acrT1FreeRun != 0 && (c.pb7x || c.pb7xx) {
			if c.tal != 0 {
				c.pb7o = true
			} else {
				c.pb7o = false
				if c.regs[ACR]&acrT1PB7 != 0 && c.pb7x && !c.pb7xx {
					c.pb7 = !c.pb7
				}
			}
		}
	}
	c.pb7sx = c.pb7x

	// switching on input latching latches the current value of the port
	if c.regs[ACR]&acrLatchPA == 0 && v&acrLatchPA != 0 {
		c.ila = c.ports.ReadPA()
	}
	if c.regs[ACR]&acrLatchPB == 0 && v&acrLatchPB != 0 {
		c.ilb = c.ports.ReadPB()
	}

	// changing the shift register mode restarts the bit count
	if changed&acrSRMask != 0 {
		c.srBits = 0
	}

	c.regs[ACR] = v
}

func (c *Chip) storePCR(v uint8) {
	switch v & pcrCA2Mask {
	case 0x0c:
		c.setCA2(false)
	default:
		c.setCA2(true)
	}

	switch v & pcrCB2Mask {
	case 0xc0:
		c.setCB2(false)
	default:
		c.setCB2(true)
	}

	c.regs[PCR] = v
}

// Read returns the value of a register, with all the side effects of a read by
// the processor.
func (c *Chip) Read(reg uint8) uint8 {
	clk := c.host.Clock()
	reg &= 0x0f

	if reg >= T1CL && reg <= IER {
		c.dispatchDue(clk)
	}

	var v uint8

	switch reg {
	case PRA:
		c.clearCA(clk)
		v = c.readPA()
		c.handshakeCA()

	case PRANoHandshake:
		v = c.readPA()

	case PRB:
		c.clearCB(clk)
		v = c.readPB(clk, false)

	case T1CL:
		c.ifr &^= IntT1
		c.updateIRQ(clk)
		v = uint8(c.t1Counter(clk))

	case T1CH:
		v = uint8(c.t1Counter(clk) >> 8)

	case T2CL:
		c.ifr &^= IntT2
		c.updateIRQ(clk)
		v = uint8(c.t2Counter(clk))

	case T2CH:
		v = uint8(c.t2Counter(clk) >> 8)

	case SR:
		v = c.regs[SR]
		c.srBits = 0
		if c.ifr&IntSR != 0 {
			c.ifr &^= IntSR
			c.updateIRQ(clk)
		}

	case IFR:
		v = c.ifrValue()

		// the edge flags of the control lines are cleared once the value has
		// been read
		if c.ifr&controlLineFlags != 0 {
			c.ifr &^= controlLineFlags
			c.updateIRQ(clk)
		}

	case IER:
		v = c.ier | IntIRQ

	default:
		v = c.regs[reg]
	}

	c.lastRead = v
	return v
}

func (c *Chip) ifrValue() uint8 {
	if c.ifr&c.ier != 0 {
		return c.ifr | IntIRQ
	}
	return c.ifr
}

func (c *Chip) readPA() uint8 {
	var v uint8
	if c.regs[ACR]&acrLatchPA == acrLatchPA {
		v = c.ila
	} else {
		v = c.ports.ReadPA()
	}
	c.ila = v
	return v
}

func (c *Chip) readPB(clk uint64, peek bool) uint8 {
	var v uint8
	if c.regs[ACR]&acrLatchPB == acrLatchPB {
		v = c.ilb
	} else {
		v = c.ports.ReadPB()
	}
	if !peek {
		c.ilb = v
	}

	v = (v &^ c.regs[DDRB]) | (c.regs[PRB] & c.regs[DDRB])

	if c.regs[ACR]&acrT1PB7 == acrT1PB7 {
		c.updateTAL(clk)
		v &= 0x7f
		if (c.pb7 != c.pb7x) || c.pb7o {
			v |= 0x80
		}
	}

	return v
}

// Peek returns the value of a register without the side effects of a read.
// The timers are still brought up to date.
func (c *Chip) Peek(reg uint8) uint8 {
	clk := c.host.Clock()
	reg &= 0x0f

	c.dispatchDue(clk)

	switch reg {
	case PRA, PRANoHandshake:
		if c.regs[ACR]&acrLatchPA == acrLatchPA {
			return c.ila
		}
		return c.ports.ReadPA()
	case PRB:
		return c.readPB(clk, true)
	case T1CL:
		return uint8(c.t1Counter(clk))
	case T1CH:
		return uint8(c.t1Counter(clk) >> 8)
	case T2CL:
		return uint8(c.t2Counter(clk))
	case T2CH:
		return uint8(c.t2Counter(clk) >> 8)
	case IFR:
		return c.ifrValue()
	case IER:
		return c.ier | IntIRQ
	}

	return c.regs[reg]
}
