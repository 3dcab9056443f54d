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

// shift register modes that are clocked by CB1
func (c *Chip) srExternalClock() bool {
	return c.regs[ACR]&acrSRExtClock == acrSRExtClock
}

func (c *Chip) srMode() uint8 {
	return c.regs[ACR] & acrSRMask
}

// Signal delivers an edge on one of the control lines.
func (c *Chip) Signal(line Line, edge Edge) {
	clk := c.host.Clock()

	switch line {
	case CA1:
		if (edge == Rise) != (c.regs[PCR]&pcrCA1Rise == pcrCA1Rise) {
			return
		}
		if c.ca2Toggle() && !c.ca2 {
			c.setCA2(true)
		}
		c.ifr |= IntCA1
		c.updateIRQ(clk)
		if c.regs[ACR]&acrLatchPA == acrLatchPA {
			c.ila = c.ports.ReadPA()
		}

	case CA2:
		if c.regs[PCR]&pcrCA2Output == pcrCA2Output {
			return
		}
		if ((uint8(edge)<<2)^c.regs[PCR])&0x04 == 0 {
			c.ifr |= IntCA2
			c.updateIRQ(clk)
		}

	case CB1:
		if c.srExternalClock() {
			c.clockSR(edge, clk)
			return
		}
		if (edge == Rise) != (c.regs[PCR]&pcrCB1Rise == pcrCB1Rise) {
			return
		}
		if c.cb2Toggle() && !c.cb2 {
			c.setCB2(true)
		}
		c.ifr |= IntCB1
		c.updateIRQ(clk)
		if c.regs[ACR]&acrLatchPB == acrLatchPB {
			c.ilb = c.ports.ReadPB()
		}

	case CB2:
		c.cb2In = edge == Rise

		// CB2 is the data line of the shift register
		if c.srMode() != 0 {
			return
		}
		if c.regs[PCR]&pcrCB2Output == pcrCB2Output {
			return
		}
		if ((uint8(edge)<<6)^c.regs[PCR])&0x40 == 0 {
			c.ifr |= IntCB2
			c.updateIRQ(clk)
		}
	}
}

// clockSR shifts one bit under control of an external clock on CB1. Bits are
// shifted in on the rising edge and out on the falling edge, most significant
// bit first.
func (c *Chip) clockSR(edge Edge, clk uint64) {
	switch c.srMode() {
	case 0x0c:
		if edge != Rise {
			return
		}
		c.regs[SR] <<= 1
		if c.cb2In {
			c.regs[SR] |= 0x01
		}

	case 0x1c:
		if edge != Fall {
			return
		}
		c.setCB2(c.regs[SR]&0x80 == 0x80)
		c.regs[SR] = c.regs[SR]<<1 | c.regs[SR]>>7

	default:
		return
	}

	c.srBits++
	if c.srBits >= 8 {
		c.srBits = 0
		c.ifr |= IntSR
		c.updateIRQ(clk)
	}
}

// ShiftIn places a complete byte in the shift register and raises the shift
// register interrupt flag. The result is the same as eight bits clocked in by
// CB1, the last of which is left on CB2.
//
// Returns false and does nothing if the shift register is not in the shift in
// under CB1 mode.
func (c *Chip) ShiftIn(b uint8) bool {
	if c.srMode() != 0x0c {
		return false
	}
	clk := c.host.Clock()
	c.regs[SR] = b
	c.srBits = 0
	c.cb2In = b&0x01 == 0x01
	c.ifr |= IntSR
	c.updateIRQ(clk)
	return true
}

// ShiftRegister returns the value of the shift register without the side
// effects of a read.
func (c *Chip) ShiftRegister() uint8 {
	return c.regs[SR]
}
