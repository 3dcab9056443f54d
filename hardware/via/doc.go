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

// Package via emulates the 6522 Versatile Interface Adapter as used by the
// disk drives and by the bus interface of the host.
//
// The chip is not clocked every cycle. The timer counters are computed from
// the clock of the owning processor when they are read and the timer
// interrupts are raised by alarms in the processor's alarm context.
//
// The owning processor is described by the Host interface and the devices
// connected to the two ports by the Ports interface. Edges on the four control
// lines are delivered with the Signal() function.
//
// Clock values given to the chip are the index of the cycle in which the
// current memory access happens.
package via
