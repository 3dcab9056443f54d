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

package cpu

import (
	"github.com/jetsetilly/gopher1541/hardware/cpu/instructions"
	"github.com/jetsetilly/gopher1541/snapshot"
)

// bits of the last opcode information
const (
	opinfoBranchDelay = 0x0100
	opinfoIRQDelay    = 0x0400
	opinfoKilled      = 0x1000
)

// Snapshot writes the registers and the interrupt delay state of the CPU to
// the snapshot module.
func (mc *CPU) Snapshot(m *snapshot.Module) {
	m.B(mc.A.Value())
	m.B(mc.X.Value())
	m.B(mc.Y.Value())
	m.B(mc.SP.Value())
	m.W(mc.PC.Address())
	m.B(mc.Status.Value())

	opinfo := uint32(mc.LastResult.Defn.OpCode)
	if mc.branchDelayed {
		opinfo |= opinfoBranchDelay
	}
	if mc.irqDelayed {
		opinfo |= opinfoIRQDelay
	}
	if mc.Killed {
		opinfo |= opinfoKilled
	}
	m.DW(opinfo)
}

// Restore is the inverse of Snapshot(). The CPU is not changed if the module
// cannot be read.
func (mc *CPU) Restore(m *snapshot.Module) error {
	a := m.ReadB()
	x := m.ReadB()
	y := m.ReadB()
	sp := m.ReadB()
	pc := m.ReadW()
	status := m.ReadB()
	opinfo := m.ReadDW()
	if err := m.Err(); err != nil {
		return err
	}

	mc.A.Load(a)
	mc.X.Load(x)
	mc.Y.Load(y)
	mc.SP.Load(sp)
	mc.PC.Load(pc)
	mc.Status.Load(status)
	mc.branchDelayed = opinfo&opinfoBranchDelay == opinfoBranchDelay
	mc.irqDelayed = opinfo&opinfoIRQDelay == opinfoIRQDelay
	mc.Killed = opinfo&opinfoKilled == opinfoKilled
	mc.rmw = false

	// the restored CPU is always between instructions
	mc.LastResult.Reset()
	mc.LastResult.Address = pc
	mc.LastResult.Defn = instructions.Lookup(uint8(opinfo))
	mc.LastResult.Final = true

	return nil
}
