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
	"errors"
	"fmt"

	"github.com/jetsetilly/gopher1541/hardware/cpu/execution"
	"github.com/jetsetilly/gopher1541/hardware/cpu/instructions"
	"github.com/jetsetilly/gopher1541/hardware/cpu/registers"
	"github.com/jetsetilly/gopher1541/hardware/instance"
	"github.com/jetsetilly/gopher1541/hardware/interrupt"
	"github.com/jetsetilly/gopher1541/logger"
)

// Interrupt and reset vectors.
const (
	NMIVector   = uint16(0xfffa)
	ResetVector = uint16(0xfffc)
	IRQVector   = uint16(0xfffe)
	BRKVector   = IRQVector
)

// Memory is the address space as seen by the CPU. Every address is valid.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// CPU implements the 6502 found in the disk drives. Register logic is
// implemented by the Register type in the registers sub-package.
type CPU struct {
	instance *instance.Instance

	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.StackPointer
	Status registers.StatusRegister

	// some operations only need an accumulator
	acc8  registers.Register
	acc16 registers.ProgramCounter

	mem        Memory
	interrupts *interrupt.Status

	// cycleCallback is called after every memory access
	cycleCallback func() error

	// last result. the address field is guaranteed to be always valid except
	// when the CPU has just been reset
	LastResult execution.Result

	// Traps is called when a BRK instruction is encountered. If it returns
	// true the BRK is not executed and execution continues at the returned
	// address. The BRK still takes seven cycles
	Traps func(address uint16) (uint16, bool)

	// the cpu has encountered a KIL instruction. requires a Reset() or a call
	// to Unjam()
	Killed bool

	// the bus is held for the final write of a read-modify-write instruction
	rmw bool

	// the previous instruction cleared the interrupt disable flag (CLI and
	// PLP) so IRQs are not recognised until after the next instruction
	irqDelayed bool

	// a taken branch that did not cross a page delays interrupts by one cycle
	branchDelayed bool
}

// NewCPU is the preferred method of initialisation for the CPU structure. The
// instance argument can be nil. Note that the CPU will need to be reset before
// it is used.
func NewCPU(instance *instance.Instance, mem Memory, interrupts *interrupt.Status) *CPU {
	return &CPU{
		instance:   instance,
		mem:        mem,
		interrupts: interrupts,
		PC:         registers.NewProgramCounter(0),
		A:          registers.NewRegister(0, "A"),
		X:          registers.NewRegister(0, "X"),
		Y:          registers.NewRegister(0, "Y"),
		SP:         registers.NewStackPointer(0),
		Status:     registers.NewStatusRegister(),
		acc8:       registers.NewRegister(0, "accumulator"),
		acc16:      registers.NewProgramCounter(0),
	}
}

// Plumb a new memory into the CPU.
func (mc *CPU) Plumb(mem Memory) {
	mc.mem = mem
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s=%s %s=%s %s=%s %s=%s %s=%s",
		mc.PC.Label(), mc.PC, mc.A.Label(), mc.A,
		mc.X.Label(), mc.X, mc.Y.Label(), mc.Y,
		mc.SP.Label(), mc.SP, mc.Status.Label(), mc.Status)
}

// Reset reinitialises all registers and loads the PC with the RESET vector.
// Reading the vector does not consume any cycles.
func (mc *CPU) Reset() {
	mc.LastResult.Reset()
	mc.Killed = false
	mc.rmw = false
	mc.irqDelayed = false
	mc.branchDelayed = false

	// checking for instance == nil because it's possible for NewCPU to be
	// called with a nil instance (test package)
	if mc.instance != nil && mc.instance.Prefs.RandomState.Get().(bool) {
		mc.A.Load(uint8(mc.instance.Random.IntN(0x100)))
		mc.X.Load(uint8(mc.instance.Random.IntN(0x100)))
		mc.Y.Load(uint8(mc.instance.Random.IntN(0x100)))
		mc.SP.Load(uint8(mc.instance.Random.IntN(0x100)))
		mc.Status.Load(uint8(mc.instance.Random.IntN(0x100)))
	} else {
		mc.A.Load(0)
		mc.X.Load(0)
		mc.Y.Load(0)
		mc.SP.Load(0xff)
		mc.Status.Reset()
	}

	mc.Status.InterruptDisable = true
	mc.LoadPCIndirect(ResetVector)
}

// LoadPCIndirect loads the contents of indirectAddress into the PC. Does not
// consume any cycles.
func (mc *CPU) LoadPCIndirect(indirectAddress uint16) {
	lo := mc.mem.Read(indirectAddress)
	hi := mc.mem.Read(indirectAddress + 1)
	mc.PC.Load((uint16(hi) << 8) | uint16(lo))
}

// LoadPC loads the contents of directAddress into the PC.
func (mc *CPU) LoadPC(directAddress uint16) {
	mc.PC.Load(directAddress)
}

// RMW returns true while the CPU is performing the final write of a
// read-modify-write instruction.
func (mc *CPU) RMW() bool {
	return mc.rmw
}

// ClearRMW acknowledges the read-modify-write state. The peripheral that
// acknowledges it is responsible for the double write.
func (mc *CPU) ClearRMW() {
	mc.rmw = false
}

// Unjam clears the Killed flag. Execution continues at the current PC, which
// is the address following the opcode that caused the jam.
func (mc *CPU) Unjam() {
	mc.Killed = false
}

// endCycle ends the current cycle.
//
// side-effects:
//   - calls cycleCallback
func (mc *CPU) endCycle() error {
	mc.LastResult.Cycles++
	return mc.cycleCallback()
}

// read8Bit returns 8bit value from the specified address
//
// side-effects:
//   - calls cycleCallback after memory read
func (mc *CPU) read8Bit(address uint16) (uint8, error) {
	v := mc.mem.Read(address)

	// +1 cycle
	if err := mc.endCycle(); err != nil {
		return 0, err
	}

	return v, nil
}

// write8Bit writes 8 bits to the specified address
//
// side-effects:
//   - calls cycleCallback after memory write
func (mc *CPU) write8Bit(address uint16, value uint8) error {
	mc.mem.Write(address, value)

	// +1 cycle
	return mc.endCycle()
}

// read16Bit returns 16bit value from the specified address. the two bytes
// are read from the same page; the high byte is read from the next address in
// that page. this is the natural behaviour of the 6502 for indirect zero page
// addresses and for the JMP indirect bug
//
// side-effects:
//   - calls cycleCallback after each 8bit read
func (mc *CPU) read16BitPaged(address uint16) (uint16, error) {
	lo, err := mc.read8Bit(address)
	if err != nil {
		return 0, err
	}

	hi, err := mc.read8Bit((address & 0xff00) | ((address + 1) & 0x00ff))
	if err != nil {
		return 0, err
	}

	return (uint16(hi) << 8) | uint16(lo), nil
}

// read16Bit returns 16bit value from the specified address
//
// side-effects:
//   - calls cycleCallback after each 8bit read
func (mc *CPU) read16Bit(address uint16) (uint16, error) {
	lo, err := mc.read8Bit(address)
	if err != nil {
		return 0, err
	}

	hi, err := mc.read8Bit(address + 1)
	if err != nil {
		return 0, err
	}

	return (uint16(hi) << 8) | uint16(lo), nil
}

// read 8bits from the PC location has a variety of additional side-effects
// depending on context.
type read8BitPCeffect int

const (
	brk read8BitPCeffect = iota
	newOpcode
	loNibble
	hiNibble
)

// read8BitPC reads 8 bits from the memory location pointed to by PC
//
// side-effects:
//   - updates program counter
//   - calls cycleCallback at end of function
//   - updates LastResult.ByteCount
//   - additional side effect updates LastResult as appropriate
func (mc *CPU) read8BitPC(effect read8BitPCeffect) error {
	v := mc.mem.Read(mc.PC.Address())

	// ignoring if program counter cycling
	mc.PC.Add(1)

	// bump the number of bytes read during instruction decode
	mc.LastResult.ByteCount++

	switch effect {
	case brk:
		// the BRK instruction causes the PC to advance by two but we don't
		// want to record that the additional byte has been read
		mc.LastResult.ByteCount--

	case newOpcode:
		mc.LastResult.Defn = instructions.Lookup(v)

	case loNibble:
		mc.LastResult.InstructionData = uint16(v)

	case hiNibble:
		mc.LastResult.InstructionData = (uint16(v) << 8) | mc.LastResult.InstructionData
	}

	// +1 cycle
	return mc.endCycle()
}

// read16BitPC reads 16 bits from the memory location pointed to by PC
//
// side-effects:
//   - updates program counter
//   - calls cycleCallback after each 8 bit read
//   - updates LastResult.ByteCount
//   - updates InstructionData field, once before each call to cycleCallback
func (mc *CPU) read16BitPC() error {
	if err := mc.read8BitPC(loNibble); err != nil {
		return err
	}
	return mc.read8BitPC(hiNibble)
}

// push a value onto the stack
//
// side-effects:
//   - calls cycleCallback after memory write
func (mc *CPU) push(value uint8) error {
	mc.mem.Write(mc.SP.Address(), value)
	mc.SP.Push()

	// +1 cycle
	return mc.endCycle()
}

// pull a value from the stack
//
// side-effects:
//   - calls cycleCallback after memory read
func (mc *CPU) pull() (uint8, error) {
	mc.SP.Pull()
	return mc.read8Bit(mc.SP.Address())
}

func (mc *CPU) branch(flag bool, address uint16) error {
	// the offset is an 8bit value that needs to be sign extended for the
	// subtraction to work
	if address&0x0080 == 0x0080 {
		address |= 0xff00
	}

	// note branching result
	mc.LastResult.BranchSuccess = flag

	if flag {
		// note current PC for reference
		oldPC := mc.PC.Address()

		// phantom read
		// +1 cycle
		_, err := mc.read8Bit(mc.PC.Address())
		if err != nil {
			return err
		}

		// add the full (sign extended) offset and then restore the MSB of the
		// PC. the MSB is corrected in the next cycle if a page was crossed
		mc.PC.Add(address)
		mc.LastResult.PageFault = oldPC&0xff00 != mc.PC.Address()&0xff00
		mc.PC.Load(oldPC&0xff00 | mc.PC.Address()&0x00ff)

		if mc.LastResult.PageFault {
			// phantom read
			// +1 cycle
			_, err := mc.read8Bit(mc.PC.Address())
			if err != nil {
				return err
			}

			// correct program counter
			if address&0xff00 == 0xff00 {
				mc.PC.Add(0xff00)
			} else {
				mc.PC.Add(0x0100)
			}
		} else {
			mc.branchDelayed = true
		}
	}

	return nil
}

// NilCycleCallback can be provided as an argument to ExecuteInstruction().
// It's a convenience do-nothing function.
func NilCycleCallback() error {
	return nil
}

// sentinel errors returned by ExecuteInstruction.
var ErrMidInstruction = errors.New("cpu: starting a new instruction is invalid mid-instruction")

// interrupt services the interrupt with the specified vector. the sequence is
// the same as BRK except that the break flag is not set in the pushed status
// register and no bytes are read through the PC. it takes seven cycles
func (mc *CPU) interrupt(vector uint16) error {
	mc.LastResult.Interrupt = true

	// +2 cycles
	for i := 0; i < 2; i++ {
		if _, err := mc.read8Bit(mc.PC.Address()); err != nil {
			return err
		}
	}

	// +3 cycles
	if err := mc.push(uint8(mc.PC.Address() >> 8)); err != nil {
		return err
	}
	if err := mc.push(uint8(mc.PC.Address())); err != nil {
		return err
	}
	if err := mc.push(mc.Status.Value() &^ 0x10); err != nil {
		return err
	}
	mc.Status.InterruptDisable = true

	// +2 cycles
	address, err := mc.read16Bit(vector)
	if err != nil {
		return err
	}
	mc.PC.Load(address)

	mc.LastResult.Final = true
	return nil
}

// checkInterrupts returns the vector of the interrupt to service at the
// specified clock, if any
func (mc *CPU) checkInterrupts(clk uint64) (uint16, bool) {
	if mc.interrupts == nil || mc.interrupts.Pending()&(interrupt.IRQ|interrupt.NMI) == 0 {
		return 0, false
	}

	if mc.branchDelayed && clk > 0 {
		clk--
	}

	if mc.interrupts.CheckNMI(clk) {
		mc.interrupts.AckNMI()
		return NMIVector, true
	}

	if !mc.Status.InterruptDisable && mc.interrupts.CheckIRQ(clk, mc.irqDelayed) {
		return IRQVector, true
	}

	return 0, false
}

// ExecuteInstruction steps CPU forward one instruction. The basic process when
// executing an instruction is this:
//
//  1. service any interrupt that is due at clk
//  2. read opcode and look up instruction definition
//  3. read operands (if any) according to the addressing mode of the instruction
//  4. using the operator as a guide, perform the instruction on the data
//
// All instructions take at least 2 cycles. After each cycle, the
// cycleCallback() function is run, thereby allowing the rest of the drive
// hardware to operate.
//
// The cycleCallback argument should *never* be nil. Use the NilCycleCallback()
// function in this package if you want a nil effect.
func (mc *CPU) ExecuteInstruction(clk uint64, cycleCallback func() error) error {
	// do nothing if CPU is in KIL state
	if mc.Killed {
		return nil
	}

	// a previous call to ExecuteInstruction() has not yet completed. it is
	// impossible to begin a new instruction
	if mc.LastResult.ByteCount > 0 && !mc.LastResult.Final {
		return ErrMidInstruction
	}

	// update cycle callback
	mc.cycleCallback = cycleCallback

	// prepare new round of results
	mc.LastResult.Reset()
	mc.LastResult.Address = mc.PC.Address()

	vector, ok := mc.checkInterrupts(clk)
	mc.irqDelayed = false
	mc.branchDelayed = false
	if ok {
		return mc.interrupt(vector)
	}

	// read next instruction
	// +1 cycle
	err := mc.read8BitPC(newOpcode)
	if err != nil {
		return err
	}

	defn := mc.LastResult.Defn

	// the interrupt disable flag before execution. used to decide whether IRQ
	// recognition is delayed by one instruction
	interruptDisable := mc.Status.InterruptDisable

	// a trapped BRK does none of the usual work of the instruction
	if defn.Operator == instructions.Brk && mc.Traps != nil {
		if address, ok := mc.Traps(mc.LastResult.Address); ok {
			mc.LastResult.Trap = true

			// +6 cycles
			for i := 1; i < defn.Cycles; i++ {
				if err := mc.endCycle(); err != nil {
					return err
				}
			}

			mc.PC.Load(address)
			mc.LastResult.Final = true
			return nil
		}
	}

	// address is the actual address to use to access memory (after any
	// indexing has taken place)
	var address uint16

	// base is the address before indexing. used by the unstable store
	// instructions
	var base uint16

	// value is the value read from memory (or the program for immediate
	// mode). for read-modify-write instructions the value changes during
	// execution and is used to write back to memory
	var value uint8

	switch defn.AddressingMode {
	case instructions.Implied:
		// implied mode does not use any additional bytes. however, the next
		// instruction is read but the PC is not incremented

		if defn.Operator == instructions.Brk {
			// BRK is unusual in that it increases the PC by two bytes despite
			// being an implied addressing instruction
			// +1 cycle
			err = mc.read8BitPC(brk)
			if err != nil {
				return err
			}
		} else {
			// phantom read
			// +1 cycle
			_, err = mc.read8Bit(mc.PC.Address())
			if err != nil {
				return err
			}
		}

	case instructions.Immediate:
		// for immediate mode, the value is the next byte in the program
		// therefore, we don't set the address and we read the value through the PC

		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		value = uint8(mc.LastResult.InstructionData)

	case instructions.Relative:
		// relative addressing is only used for branch instructions, the address
		// is an offset value from the current PC position

		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		address = mc.LastResult.InstructionData

	case instructions.Absolute:
		if defn.Effect != instructions.Subroutine {
			// +2 cycles
			err = mc.read16BitPC()
			if err != nil {
				return err
			}
			address = mc.LastResult.InstructionData
		}

		// else... for JSR, addresses are read slightly differently so we defer
		// this part of the operation to the operator switch below

	case instructions.ZeroPage:
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		address = mc.LastResult.InstructionData

	case instructions.Indirect:
		// indirect addressing (without indexing) is only used for the JMP command

		// +2 cycles
		err = mc.read16BitPC()
		if err != nil {
			return err
		}
		indirectAddress := mc.LastResult.InstructionData

		// the high byte of the JMP address is always read from the same page
		// as the low byte
		if indirectAddress&0x00ff == 0x00ff {
			mc.LastResult.CPUBug = execution.JmpIndirectAddressingBug
		}

		// +2 cycles
		address, err = mc.read16BitPaged(indirectAddress)
		if err != nil {
			return err
		}

	case instructions.IndexedIndirect: // x indexing
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		indirectAddress := uint8(mc.LastResult.InstructionData)

		// phantom read before adjusting the index
		// +1 cycle
		_, err = mc.read8Bit(uint16(indirectAddress))
		if err != nil {
			return err
		}

		// using 8bit addition because the indexed address never extends past
		// the zero page
		mc.acc8.Load(mc.X.Value())
		mc.acc8.Add(indirectAddress, false)

		if uint16(indirectAddress)+mc.X.Address() > 0x00ff {
			mc.LastResult.CPUBug = execution.IndexedIndirectAddressingBug
		}

		// +2 cycles
		address, err = mc.read16BitPaged(mc.acc8.Address())
		if err != nil {
			return err
		}

	case instructions.IndirectIndexed: // y indexing
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}
		indirectAddress := mc.LastResult.InstructionData

		// +2 cycles
		base, err = mc.read16BitPaged(indirectAddress)
		if err != nil {
			return err
		}

		// add index to LSB of address
		mc.acc16.Load(mc.Y.Address())
		mc.acc16.Add(base & 0x00ff)
		address = mc.acc16.Address()

		// check for page fault
		mc.LastResult.PageFault = defn.PageSensitive && (address&0xff00 == 0x0100)
		if mc.LastResult.PageFault || defn.Effect == instructions.Write || defn.Effect == instructions.RMW {
			// phantom read (always happens for Write and RMW)
			// +1 cycle
			_, err = mc.read8Bit((base & 0xff00) | (address & 0x00ff))
			if err != nil {
				return err
			}
		}

		// fix MSB of address
		mc.acc16.Add(base & 0xff00)
		address = mc.acc16.Address()

	case instructions.AbsoluteIndexedX, instructions.AbsoluteIndexedY:
		// +2 cycles
		err = mc.read16BitPC()
		if err != nil {
			return err
		}
		base = mc.LastResult.InstructionData

		// add index to LSB of address
		if defn.AddressingMode == instructions.AbsoluteIndexedX {
			mc.acc16.Load(mc.X.Address())
		} else {
			mc.acc16.Load(mc.Y.Address())
		}
		mc.acc16.Add(base & 0x00ff)
		address = mc.acc16.Address()

		// check for page fault
		mc.LastResult.PageFault = defn.PageSensitive && (address&0xff00 == 0x0100)
		if mc.LastResult.PageFault || defn.Effect == instructions.Write || defn.Effect == instructions.RMW {
			// phantom read (always happens for Write and RMW)
			// +1 cycle
			_, err = mc.read8Bit((base & 0xff00) | (address & 0x00ff))
			if err != nil {
				return err
			}
		}

		// fix MSB of address
		mc.acc16.Add(base & 0xff00)
		address = mc.acc16.Address()

	case instructions.ZeroPageIndexedX, instructions.ZeroPageIndexedY:
		// +1 cycles
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}

		// phantom read from base address before index adjustment
		// +1 cycles
		_, err = mc.read8Bit(mc.LastResult.InstructionData)
		if err != nil {
			return err
		}

		idx := mc.X
		if defn.AddressingMode == instructions.ZeroPageIndexedY {
			idx = mc.Y
		}

		indirectAddress := uint8(mc.LastResult.InstructionData)
		mc.acc8.Load(indirectAddress)
		mc.acc8.Add(idx.Value(), false)
		address = mc.acc8.Address()

		if uint16(indirectAddress)+idx.Address() > 0x00ff {
			mc.LastResult.CPUBug = execution.ZeroPageIndexBug
		}

	default:
		return fmt.Errorf("cpu: unknown addressing mode for %s", defn.Operator)
	}

	// read value from memory using address found in AddressingMode switch
	// above only when:
	// a) addressing mode is not 'implied' or 'immediate'
	//	- for immediate modes, we already have the value in lieu of an address
	//  - for implied modes, we don't need a value
	// b) instruction is 'Read' OR 'RMW'
	//  - for write modes, we only use the address to write a value we already have
	//  - for flow modes, the use of the address is very specific
	if !(defn.AddressingMode == instructions.Implied || defn.AddressingMode == instructions.Immediate) {
		switch defn.Effect {
		case instructions.Read:
			// +1 cycle
			value, err = mc.read8Bit(address)
			if err != nil {
				return err
			}

		case instructions.RMW:
			// +1 cycle
			value, err = mc.read8Bit(address)
			if err != nil {
				return err
			}

			// the unmodified value is written during this cycle. the write is
			// not performed here. see the RMW() function
			// +1 cycle
			err = mc.endCycle()
			if err != nil {
				return err
			}
		}
	}

	err = mc.execute(defn, address, base, value)
	if err != nil {
		return err
	}

	// an IRQ is not recognised until after the next instruction if this
	// instruction cleared the interrupt disable flag
	mc.irqDelayed = interruptDisable && !mc.Status.InterruptDisable &&
		(defn.Operator == instructions.Cli || defn.Operator == instructions.Plp)

	// finalise result
	mc.LastResult.Final = true

	return nil
}

// execute performs the operator of the instruction. the addressing and
// reading of the value has already been done
func (mc *CPU) execute(defn instructions.Definition, address uint16, base uint16, value uint8) error {
	var err error

	switch defn.Operator {
	case instructions.Nop:
		// does nothing

	case instructions.Cli:
		mc.Status.InterruptDisable = false

	case instructions.Sei:
		mc.Status.InterruptDisable = true

	case instructions.Clc:
		mc.Status.Carry = false

	case instructions.Sec:
		mc.Status.Carry = true

	case instructions.Cld:
		mc.Status.DecimalMode = false

	case instructions.Sed:
		mc.Status.DecimalMode = true

	case instructions.Clv:
		mc.Status.Overflow = false

	case instructions.Pha:
		// +1 cycle
		err = mc.push(mc.A.Value())
		if err != nil {
			return err
		}

	case instructions.Pla:
		// +1 cycle
		_, err = mc.read8Bit(mc.SP.Address())
		if err != nil {
			return err
		}

		// +1 cycle
		value, err = mc.pull()
		if err != nil {
			return err
		}
		mc.A.Load(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Php:
		// the break flag is always set in the pushed value
		// +1 cycle
		err = mc.push(mc.Status.Value() | 0x10)
		if err != nil {
			return err
		}

	case instructions.Plp:
		// +1 cycle
		_, err = mc.read8Bit(mc.SP.Address())
		if err != nil {
			return err
		}

		// +1 cycle
		value, err = mc.pull()
		if err != nil {
			return err
		}
		mc.Status.Load(value)

	case instructions.Txa:
		mc.A.Load(mc.X.Value())
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Tax:
		mc.X.Load(mc.A.Value())
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Tay:
		mc.Y.Load(mc.A.Value())
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Tya:
		mc.A.Load(mc.Y.Value())
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Tsx:
		mc.X.Load(mc.SP.Value())
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Txs:
		mc.SP.Load(mc.X.Value())
		// does not affect status register

	case instructions.Eor:
		mc.A.EOR(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Ora:
		mc.A.ORA(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.And:
		mc.A.AND(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Lda:
		mc.A.Load(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Ldx:
		mc.X.Load(value)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Ldy:
		mc.Y.Load(value)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Sta:
		// +1 cycle
		err = mc.write8Bit(address, mc.A.Value())
		if err != nil {
			return err
		}

	case instructions.Stx:
		// +1 cycle
		err = mc.write8Bit(address, mc.X.Value())
		if err != nil {
			return err
		}

	case instructions.Sty:
		// +1 cycle
		err = mc.write8Bit(address, mc.Y.Value())
		if err != nil {
			return err
		}

	case instructions.Inx:
		mc.X.Add(1, false)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Iny:
		mc.Y.Add(1, false)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Dex:
		mc.X.Add(0xff, false)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Dey:
		mc.Y.Add(0xff, false)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Asl, instructions.Lsr, instructions.Rol, instructions.Ror:
		var r *registers.Register
		if defn.Effect == instructions.RMW {
			r = &mc.acc8
			r.Load(value)
		} else {
			r = &mc.A
		}
		switch defn.Operator {
		case instructions.Asl:
			mc.Status.Carry = r.ASL()
		case instructions.Lsr:
			mc.Status.Carry = r.LSR()
		case instructions.Rol:
			mc.Status.Carry = r.ROL(mc.Status.Carry)
		case instructions.Ror:
			mc.Status.Carry = r.ROR(mc.Status.Carry)
		}
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Adc:
		mc.adc(value)

	case instructions.Sbc:
		mc.sbc(value)

	case instructions.Inc:
		r := mc.acc8
		r.Load(value)
		r.Add(1, false)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Dec:
		r := mc.acc8
		r.Load(value)
		r.Add(0xff, false)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Cmp:
		mc.compare(mc.A.Value(), value)

	case instructions.Cpx:
		mc.compare(mc.X.Value(), value)

	case instructions.Cpy:
		mc.compare(mc.Y.Value(), value)

	case instructions.Bit:
		r := mc.acc8
		r.Load(value)
		mc.Status.Sign = r.IsNegative()
		mc.Status.Overflow = r.IsBitV()
		r.AND(mc.A.Value())
		mc.Status.Zero = r.IsZero()

	case instructions.Jmp:
		mc.PC.Load(address)

	case instructions.Bcc:
		err = mc.branch(!mc.Status.Carry, address)

	case instructions.Bcs:
		err = mc.branch(mc.Status.Carry, address)

	case instructions.Beq:
		err = mc.branch(mc.Status.Zero, address)

	case instructions.Bmi:
		err = mc.branch(mc.Status.Sign, address)

	case instructions.Bne:
		err = mc.branch(!mc.Status.Zero, address)

	case instructions.Bpl:
		err = mc.branch(!mc.Status.Sign, address)

	case instructions.Bvc:
		err = mc.branch(!mc.Status.Overflow, address)

	case instructions.Bvs:
		err = mc.branch(mc.Status.Overflow, address)

	case instructions.Jsr:
		// +1 cycle
		err = mc.read8BitPC(loNibble)
		if err != nil {
			return err
		}

		// the current value of the PC is now correct, even though we've only
		// read one byte of the address so far. remember, RTS increments the PC
		// when read from the stack, meaning that the PC will be correct at
		// that point

		// internal operation on the stack
		// +1 cycle
		_, err = mc.read8Bit(mc.SP.Address())
		if err != nil {
			return err
		}

		// +2 cycles
		err = mc.push(uint8(mc.PC.Address() >> 8))
		if err != nil {
			return err
		}
		err = mc.push(uint8(mc.PC.Address()))
		if err != nil {
			return err
		}

		// +1 cycle
		err = mc.read8BitPC(hiNibble)
		if err != nil {
			return err
		}

		mc.PC.Load(mc.LastResult.InstructionData)

	case instructions.Rts:
		// +1 cycle
		_, err = mc.read8Bit(mc.SP.Address())
		if err != nil {
			return err
		}

		// +2 cycles
		lo, err := mc.pull()
		if err != nil {
			return err
		}
		hi, err := mc.pull()
		if err != nil {
			return err
		}
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))

		// correct PC
		// +1 cycle
		_, err = mc.read8Bit(mc.PC.Address())
		if err != nil {
			return err
		}
		mc.PC.Add(1)

	case instructions.Brk:
		// +3 cycles
		err = mc.push(uint8(mc.PC.Address() >> 8))
		if err != nil {
			return err
		}
		err = mc.push(uint8(mc.PC.Address()))
		if err != nil {
			return err
		}
		err = mc.push(mc.Status.Value() | 0x10)
		if err != nil {
			return err
		}
		mc.Status.InterruptDisable = true

		// +2 cycles
		address, err = mc.read16Bit(BRKVector)
		if err != nil {
			return err
		}
		mc.PC.Load(address)

	case instructions.Rti:
		// +1 cycle
		_, err = mc.read8Bit(mc.SP.Address())
		if err != nil {
			return err
		}

		// +1 cycle
		value, err = mc.pull()
		if err != nil {
			return err
		}
		mc.Status.Load(value)

		// +2 cycles
		lo, err := mc.pull()
		if err != nil {
			return err
		}
		hi, err := mc.pull()
		if err != nil {
			return err
		}
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))

	// undocumented instructions

	case instructions.Lax:
		if defn.AddressingMode == instructions.Immediate {
			value &= mc.A.Value() | 0xee
		}
		mc.A.Load(value)
		mc.X.Load(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Dcp:
		r := mc.acc8
		r.Load(value)
		r.Add(0xff, false)
		value = r.Value()
		mc.compare(mc.A.Value(), value)

	case instructions.Isc:
		r := mc.acc8
		r.Load(value)
		r.Add(1, false)
		value = r.Value()
		mc.sbc(value)

	case instructions.Asr:
		mc.A.AND(value)
		mc.Status.Carry = mc.A.LSR()
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Xaa:
		mc.A.Load((mc.A.Value() | 0xee) & mc.X.Value() & value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Axs:
		mc.X.AND(mc.A.Value())

		// behaves like CMP as far as the carry flag is concerned
		mc.Status.Carry, _ = mc.X.Subtract(value, true)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Sax:
		// +1 cycle
		err = mc.write8Bit(address, mc.A.Value()&mc.X.Value())
		if err != nil {
			return err
		}

	case instructions.Arr:
		mc.arr(value)

	case instructions.Slo:
		r := mc.acc8
		r.Load(value)
		mc.Status.Carry = r.ASL()
		value = r.Value()
		mc.A.ORA(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Rla:
		r := mc.acc8
		r.Load(value)
		mc.Status.Carry = r.ROL(mc.Status.Carry)
		value = r.Value()
		mc.A.AND(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Sre:
		r := mc.acc8
		r.Load(value)
		mc.Status.Carry = r.LSR()
		value = r.Value()
		mc.A.EOR(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Rra:
		r := mc.acc8
		r.Load(value)
		mc.Status.Carry = r.ROR(mc.Status.Carry)
		value = r.Value()
		mc.adc(value)

	case instructions.Anc:
		// immediate AND. puts bit 7 into the carry flag (in microcode terms
		// this is as though ASL had been enacted)
		mc.A.AND(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()
		mc.Status.Carry = mc.Status.Sign

	case instructions.Ahx:
		// +1 cycle
		err = mc.write8Bit(address, mc.A.Value()&mc.X.Value()&(uint8(base>>8)+1))
		if err != nil {
			return err
		}

	case instructions.Tas:
		mc.SP.Load(mc.A.Value() & mc.X.Value())

		// +1 cycle
		err = mc.write8Bit(address, mc.SP.Value()&(uint8(base>>8)+1))
		if err != nil {
			return err
		}

	case instructions.Shy:
		// +1 cycle
		err = mc.write8Bit(address, mc.Y.Value()&(uint8(base>>8)+1))
		if err != nil {
			return err
		}

	case instructions.Shx:
		// +1 cycle
		err = mc.write8Bit(address, mc.X.Value()&(uint8(base>>8)+1))
		if err != nil {
			return err
		}

	case instructions.Las:
		mc.SP.AND(value)
		mc.A.Load(mc.SP.Value())
		mc.X.Load(mc.SP.Value())
		mc.Status.Zero = mc.SP.IsZero()
		mc.Status.Sign = mc.SP.IsNegative()

	case instructions.Kil:
		mc.Killed = true
		if mc.instance != nil {
			logger.Logf(mc.instance, "CPU", "KIL instruction (%#04x)", mc.LastResult.Address)
		}

	default:
		return fmt.Errorf("cpu: unknown operator (%s)", defn.Operator)
	}

	if err != nil {
		return err
	}

	// for RMW instructions: write altered value back to memory
	if defn.Effect == instructions.RMW {
		mc.rmw = true
		mc.mem.Write(address, value)
		mc.rmw = false

		// +1 cycle
		err = mc.endCycle()
		if err != nil {
			return err
		}
	}

	return nil
}

func (mc *CPU) compare(reg uint8, value uint8) {
	r := mc.acc8
	r.Load(reg)

	// compare can be implemented with binary subtract even if decimal mode is
	// active (the meaning is the same)
	mc.Status.Carry, _ = r.Subtract(value, true)
	mc.Status.Zero = r.IsZero()
	mc.Status.Sign = r.IsNegative()
}

func (mc *CPU) adc(value uint8) {
	if mc.Status.DecimalMode {
		mc.Status.Carry,
			mc.Status.Zero,
			mc.Status.Overflow,
			mc.Status.Sign = mc.A.AddDecimal(value, mc.Status.Carry)
	} else {
		mc.Status.Carry, mc.Status.Overflow = mc.A.Add(value, mc.Status.Carry)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()
	}
}

func (mc *CPU) sbc(value uint8) {
	if mc.Status.DecimalMode {
		mc.Status.Carry,
			mc.Status.Zero,
			mc.Status.Overflow,
			mc.Status.Sign = mc.A.SubtractDecimal(value, mc.Status.Carry)
	} else {
		mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(value, mc.Status.Carry)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()
	}
}

// arr is AND followed by ROR. the flags are set unusually, and differently
// again in decimal mode
func (mc *CPU) arr(value uint8) {
	t := mc.A.Value() & value
	r := t >> 1
	if mc.Status.Carry {
		r |= 0x80
	}

	if !mc.Status.DecimalMode {
		mc.A.Load(r)
		mc.Status.Zero = r == 0
		mc.Status.Sign = r&0x80 == 0x80
		mc.Status.Carry = r&0x40 == 0x40
		mc.Status.Overflow = (r&0x40)>>6 != (r&0x20)>>5
		return
	}

	mc.Status.Sign = mc.Status.Carry
	mc.Status.Zero = r == 0
	mc.Status.Overflow = (r^t)&0x40 == 0x40
	if (t&0x0f)+(t&0x01) > 0x05 {
		r = (r & 0xf0) | ((r + 0x06) & 0x0f)
	}
	if uint16(t&0xf0)+uint16(t&0x10) > 0x50 {
		r = (r & 0x0f) | ((r + 0x60) & 0xf0)
		mc.Status.Carry = true
	} else {
		mc.Status.Carry = false
	}
	mc.A.Load(r)
}
