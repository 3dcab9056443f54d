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

// Package hardware is the base package for the emulation. It and its
// sub-packages contain everything required for a headless emulation of the
// drives attached to a host computer.
//
// The Machine type is the root of the emulation and contains references to
// the bus and to every drive. The host processor is not emulated. Instead the
// caller advances the host clock, with Step(), RunFor() or Run(), and makes
// the host's accesses to the serial bus and the side channels with the Host*(),
// Parallel*() and Fast*() functions. Every access to the bus brings the drives
// up to date with the host clock first.
//
// Drives that jam are reported through the OnJam handler if one is set,
// otherwise the jam is returned as an error. A jammed drive does not run until
// it is recovered but the other drives carry on.
package hardware
