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

package execution

import (
	"fmt"

	"github.com/jetsetilly/gopher1541/hardware/cpu/instructions"
)

// Result records the state/result of each instruction executed on the CPU.
// Including the address it was read from, a reference to the instruction
// definition, and other execution details.
//
// The Final field indicates whether the field values can be relied upon.
// ie. the instruction has finished execution.
type Result struct {
	// the address at which the instruction began
	Address uint16

	// a copy of the instruction definition. only valid once the opcode has
	// been read (ByteCount > 0)
	Defn instructions.Definition

	// the number of bytes read during instruction decode. if this value is
	// less than Defn.Bytes then the instruction has not yet been fully
	// decoded
	ByteCount int

	// instruction data is the actual instruction data. so, for example, in
	// the case of branch instruction, instruction data is the offset value
	InstructionData uint16

	// the actual number of cycles taken by the instruction. usually the same
	// as Defn.Cycles but in the case of PageFaults and branches, this value
	// may be different
	Cycles int

	// whether an extra cycle was required because of 8 bit adder overflow
	PageFault bool

	// whether a known buggy code path (in the emulated CPU) was triggered
	CPUBug Bug

	// whether branch instruction test passed (ie. branched) or not. testing
	// of this field should be used in conjunction with Defn.IsBranch()
	BranchSuccess bool

	// whether the instruction has been serviced as an interrupt rather than
	// decoded from memory
	Interrupt bool

	// whether a BRK instruction was intercepted by a trap
	Trap bool

	// whether this data has been finalised
	Final bool
}

// Reset nullifies all members of the Result instance.
func (r *Result) Reset() {
	*r = Result{}
}

func (r Result) String() string {
	if r.Interrupt {
		return fmt.Sprintf("%04x interrupt (%d cycles)", r.Address, r.Cycles)
	}

	if r.ByteCount == 0 {
		return fmt.Sprintf("%04x ???", r.Address)
	}

	var operand string
	switch r.Defn.Bytes {
	case 2:
		operand = fmt.Sprintf("$%02x", r.InstructionData)
	case 3:
		operand = fmt.Sprintf("$%04x", r.InstructionData)
	}
	if r.ByteCount < r.Defn.Bytes {
		operand = "??"
	}

	switch r.Defn.AddressingMode {
	case instructions.Immediate:
		operand = fmt.Sprintf("#%s", operand)
	case instructions.Relative:
		if r.ByteCount == 2 {
			// relative addresses are shown as the branch target
			operand = fmt.Sprintf("$%04x", r.Address+2+uint16(int8(r.InstructionData)))
		}
	case instructions.Indirect:
		operand = fmt.Sprintf("(%s)", operand)
	case instructions.IndexedIndirect:
		operand = fmt.Sprintf("(%s,X)", operand)
	case instructions.IndirectIndexed:
		operand = fmt.Sprintf("(%s),Y", operand)
	case instructions.AbsoluteIndexedX, instructions.ZeroPageIndexedX:
		operand = fmt.Sprintf("%s,X", operand)
	case instructions.AbsoluteIndexedY, instructions.ZeroPageIndexedY:
		operand = fmt.Sprintf("%s,Y", operand)
	}

	s := fmt.Sprintf("%04x %s", r.Address, r.Defn.Operator)
	if operand != "" {
		s = fmt.Sprintf("%s %s", s, operand)
	}
	if r.Trap {
		s = fmt.Sprintf("%s [trap]", s)
	}
	if r.Final {
		s = fmt.Sprintf("%s (%d cycles)", s, r.Cycles)
	}
	return s
}
