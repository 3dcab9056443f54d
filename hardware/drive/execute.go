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

package drive

import (
	"github.com/jetsetilly/gopher1541/hardware/alarm"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/logger"
)

// the drive clock must be beyond this point, which is roughly the length of
// the ROM's reset routine, before cycles are skipped on wake up
const resetSettle = 934639

// Execute runs the drive up to the host clock. Returns immediately if the
// drive is disabled, jammed or already running.
//
// Returns a JamError if the drive jams.
func (d *Drive) Execute(target uint64) error {
	if !d.enabled || d.executing {
		return nil
	}

	if d.jammed {
		if target > d.lastClk {
			d.lastClk = target
		}
		return nil
	}

	d.executing = true
	defer func() {
		d.executing = false
	}()

	d.wake(target)

	var cycles uint64
	if target > d.lastClk {
		cycles = target - d.lastClk
	}

	d.execTarget = target
	host := d.lastClk

	for cycles > 0 {
		n := cycles
		if n > MaxTicks {
			n = MaxTicks
		}

		d.chunkHost = host
		d.chunkClk = d.clk

		d.stopClk = d.clk + d.table.Ticks[n]
		if d.stopClk >= d.lastExcCycles {
			d.stopClk -= d.lastExcCycles
		} else {
			d.stopClk = 0
		}
		d.cycleAccum += d.table.Fraction[n]
		if d.cycleAccum >= 0x10000 {
			d.cycleAccum -= 0x10000
			d.stopClk++
		}

		cycles -= n
		host += n

		for d.clk < d.stopClk {
			if err := d.step(); err != nil {
				d.lastExcCycles = 0
				d.lastClk = target
				return err
			}
		}

		d.lastExcCycles = d.clk - d.stopClk
	}

	d.lastClk = target
	d.Guard.MaybeRebase()

	return nil
}

// a drive that has not been run for a long time does not catch up. the
// missing cycles are dropped instead
func (d *Drive) wake(target uint64) {
	if target > d.lastClk && target-d.lastClk > d.wakeThreshold && d.clk > resetSettle {
		logger.Logf(d.instance, d.name, "skipping cycles (%d)", target-d.lastClk)
		d.lastClk = target
	}
}

// step runs a single instruction
func (d *Drive) step() error {
	d.Alarms.Dispatch(d.clk)

	if d.Interrupts.ResetPending() {
		d.cpuReset()
		return nil
	}

	d.idle = false

	if err := d.CPU.ExecuteInstruction(d.clk, d.cycle); err != nil {
		return err
	}

	if d.CPU.Killed {
		return d.jam()
	}

	// the idle loop was left to service an interrupt
	if d.CPU.LastResult.Interrupt {
		d.idleValid = false
	}

	if d.idle {
		d.skipIdle()
	}

	return nil
}

// called by the CPU after every cycle
func (d *Drive) cycle() error {
	d.clk++
	return nil
}

// the drive is in the ROM's idle loop. the clock only ever jumps by a whole
// number of loop periods, so the drive reaches the same instruction boundaries
// it would have reached by running the loop, however the host clock is split
// into chunks. the period is the distance between the two most recent traps
// and it must have been seen twice in a row.
//
// with the trap method the clock jumps towards the next alarm, without going
// past the end of the chunk. with the skip method the jump is towards the end
// of the chunk and only if nothing is pending
func (d *Drive) skipIdle() {
	if !d.idleValid {
		d.idleValid = true
		d.idleClk = d.clk
		d.idlePeriod = 0
		return
	}

	period := d.clk - d.idleClk
	d.idleClk = d.clk
	if period != d.idlePeriod || period == 0 {
		d.idlePeriod = period
		return
	}

	limit := d.stopClk
	next := d.Alarms.NextPending()

	switch d.idleMethod {
	case preferences.IdleTrap:
		if next < limit {
			limit = next
		}
	case preferences.IdleSkip:
		if next != alarm.Never {
			return
		}
	default:
		return
	}

	if limit > d.clk {
		d.clk += (limit - d.clk) / period * period
		d.idleClk = d.clk
	}
}

// DrivingClock returns the host clock that corresponds to the current drive
// clock. While the drive is not running this is the host clock.
func (d *Drive) DrivingClock() uint64 {
	if !d.executing {
		return d.host.Clock()
	}
	if d.clk < d.chunkClk {
		return d.chunkHost
	}
	clk := d.chunkHost + ((d.clk-d.chunkClk)<<16)/d.table.Factor
	if clk > d.execTarget {
		clk = d.execTarget
	}
	return clk
}

// PreventOverflow is called by the host's clock guard after sub has been
// subtracted from the host clock. The drive is brought up to date before the
// host clock it has been run to is reduced by the same amount. The drive's own
// clock guard is then checked.
func (d *Drive) PreventOverflow(sub uint64) error {
	var err error

	if sub != 0 {
		if d.enabled {
			if d.lastClk < sub {
				err = d.Execute(d.host.Clock() + sub)
			}
			if d.lastClk >= sub {
				d.lastClk -= sub
			} else {
				d.lastClk = 0
			}
		} else {
			d.lastClk = d.host.Clock()
		}
	}

	d.Guard.MaybeRebase()

	return err
}
