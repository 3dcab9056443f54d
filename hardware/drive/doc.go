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

// Package drive emulates a disk drive connected to the host's serial bus. A
// drive is a computer in its own right, with a 6502, RAM, ROM and two 6522
// interface chips.
//
// The drive is not clocked by the host. Instead, it is brought up to date
// with the host clock whenever the host accesses the bus, and periodically by
// the machine that owns it. The Execute() function converts the elapsed host
// cycles to drive cycles with a fixed-point conversion table so that drives
// running at a clock that is not an integer multiple of the host clock stay in
// step over any length of time:
//
//	d.Execute(hostClock)
//
// The fractional part of every conversion is accumulated and carried, and any
// cycles run past the target by the final instruction are subtracted from the
// next run. The number of drive cycles run for a span of host cycles does not
// depend on how that span is divided between calls to Execute().
//
// A drive that executes a KIL opcode stops and Execute() returns a JamError.
// The drive stays jammed, and Execute() does nothing, until Recover() is
// called.
package drive
