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

// value of the timer 1 counter at clock. after the first underflow the counter
// is reloaded from the latch every tal+2 cycles
func (c *Chip) t1Counter(clk uint64) uint16 {
	if clk < c.tau+1 {
		return uint16(c.tau + 1 - clk - 2)
	}
	return uint16(uint64(c.tal) - (clk-c.tau-1)%(uint64(c.tal)+2))
}

// value of the timer 2 counter at clock. timer 2 counts down continuously
func (c *Chip) t2Counter(clk uint64) uint16 {
	return uint16(c.tbu - clk - 2)
}

// updateTAL brings the timer 1 reload point and the PB7 state up to date
// before the latch changes.
func (c *Chip) updateTAL(clk uint64) {
	c.pb7x = false
	c.pb7xx = false

	if clk > c.tau {
		period := uint64(c.tal) + 2
		nuf := (uint64(c.tal) + 1 + clk - c.tau) / period

		if c.regs[ACR]&acrT1FreeRun == 0 {
			var sx uint64
			if c.pb7sx {
				sx = 1
			}
			if nuf > sx+1 || !c.pb7 {
				c.pb7o = true
				c.pb7sx = false
			}
		}
		if nuf&1 == 1 {
			c.pb7 = !c.pb7
		}

		c.tau = uint64(c.tal) + 1 + clk - (clk-c.tau-1)%period
		if clk == c.tau-uint64(c.tal)-1 {
			c.pb7xx = true
		}
	}

	if c.tau == clk {
		c.pb7x = true
	}

	c.tal = uint16(c.regs[T1LL]) | uint16(c.regs[T1LH])<<8
}

func (c *Chip) updateTBL() {
	c.tbl = uint16(c.regs[T2LL]) | uint16(c.regs[T2CH])<<8
}

// run the timer alarms that are due at clock. the alarm context only
// dispatches between instructions
func (c *Chip) dispatchDue(clk uint64) {
	if c.tai != 0 && c.tai <= clk {
		c.expireT1()
	}
	if c.tbi != 0 && c.tbi <= clk {
		c.expireT2()
	}
}

func (c *Chip) t1Alarm(_ uint64) {
	c.expireT1()
}

func (c *Chip) t2Alarm(_ uint64) {
	c.expireT2()
}

func (c *Chip) expireT1() {
	at := c.tai

	if c.regs[ACR]&acrT1FreeRun == 0 {
		c.t1.Unset()
		c.tai = 0
	} else {
		c.tai += uint64(c.tal) + 2
		c.t1.Set(c.tai)
	}

	c.ifr |= IntT1
	c.updateIRQ(at)
}

func (c *Chip) expireT2() {
	at := c.tbi

	c.t2.Unset()
	c.tbi = 0

	c.ifr |= IntT2
	c.updateIRQ(at)
}
