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

// Package cpu emulates the NMOS 6502 found in the disk drives. The emulation is
// cycle accurate at the level of memory accesses. After every memory access
// the cycleCallback function given to ExecuteInstruction() is called, allowing
// the rest of the drive to advance its clock.
//
// The CPU does not own a clock. The caller supplies the clock value at the start
// of each instruction, which is used to decide whether a pending interrupt is
// due.
//
// Read-modify-write instructions do not perform the "phantom write" of the
// unmodified value. Instead, the RMW() function returns true for the duration
// of the final write. A peripheral chip that cares about the double write (the
// 6522 does) can store the value it last returned before storing the new
// value.
//
// All 256 opcodes are implemented, including the undocumented ones. The twelve
// opcodes that halt the NMOS 6502 set the Killed flag. Execution does nothing
// while Killed is true.
package cpu
