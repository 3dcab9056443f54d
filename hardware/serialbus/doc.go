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

// Package serialbus arbitrates the lines shared by the host computer and the
// disk drives.
//
// The Bus type is the open-collector IEC bus with its ATN, CLK and DATA lines.
// Every participant contributes an output byte and the value seen by each side
// is the logical AND of every contribution. Before the bus is resolved every
// attached drive is brought up to the clock of the access, so the resolution
// always reflects the state of every processor at the same moment.
//
// The Fast type is the byte-wide side channel used by drives that latch a whole
// byte into a shift register instead of toggling the bus one bit at a time. The
// Parallel type is the parallel cable found in some speeder systems, connecting
// the host's user port to port A of the drive's bus interface chip.
//
// Drive slots are numbered from zero. Slot zero is device 8.
package serialbus
