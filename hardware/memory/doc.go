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

// Package memory implements the address space of a drive processor.
//
// The address space is divided into 256 pages of 256 bytes. Every page is
// served by an Area. Unmapped pages return the high byte of the address being
// read, which is the value left on the data bus by the processor.
//
// RAM and ROM areas mirror themselves across all the pages they are mapped to.
// Areas with side effects (the 6522 chips) are mapped by the drive package.
package memory
