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
	"fmt"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/snapshot"
)

// snapshot module version. the minor version is one because the clocks are
// 64 bit
const (
	SnapshotMajor = 1
	SnapshotMinor = 1
)

// ModuleName returns the name of the drive's processor module in a snapshot.
func (d *Drive) ModuleName() string {
	return fmt.Sprintf("DRIVECPU%d", preferences.FirstDevice+d.slot)
}

// Snapshot writes the state of the drive's processor, RAM and chips.
func (d *Drive) Snapshot(w *snapshot.Writer) {
	m := w.Module(d.ModuleName(), SnapshotMajor, SnapshotMinor)
	m.DW(uint32(d.clk))
	m.DW(uint32(d.clk >> 32))
	d.CPU.Snapshot(m)
	m.QW(d.lastClk)
	m.DW(uint32(d.cycleAccum))
	m.DW(uint32(d.lastExcCycles))
	d.Interrupts.Snapshot(m)
	m.BA(d.RAM.Data())

	d.VIA1.Snapshot(w)
	d.VIA2.Snapshot(w)
}

// Restore the state of the drive. The processor state is decoded completely
// before any of it is applied. The chips are restored afterwards because
// their timers are restored relative to the drive clock.
func (d *Drive) Restore(r *snapshot.Reader) error {
	m, err := r.Module(d.ModuleName(), SnapshotMajor, SnapshotMinor)
	if err != nil {
		return err
	}

	lo := uint64(m.ReadDW())
	hi := uint64(m.ReadDW())

	mc := *d.CPU
	if err := mc.Restore(m); err != nil {
		return err
	}

	lastClk := m.ReadQW()
	cycleAccum := uint64(m.ReadDW())
	lastExcCycles := uint64(m.ReadDW())

	ints := d.Interrupts.Copy()
	if err := ints.Restore(m); err != nil {
		return err
	}

	ram := m.ReadBA(d.RAM.Size())
	if err := m.Err(); err != nil {
		return err
	}
	if cycleAccum >= 0x10000 {
		return curated.Errorf("drive: %s: illegal cycle accumulator (%#x)", d.ModuleName(), cycleAccum)
	}

	d.clk = hi<<32 | lo
	*d.CPU = mc
	d.lastClk = lastClk
	d.cycleAccum = cycleAccum
	d.lastExcCycles = lastExcCycles
	*d.Interrupts = *ints
	_ = d.RAM.Load(ram)
	d.stopClk = d.clk
	d.jammed = d.CPU.Killed
	d.idleValid = false
	d.jamRestart = false

	if err := d.VIA1.Restore(r); err != nil {
		return err
	}
	return d.VIA2.Restore(r)
}
