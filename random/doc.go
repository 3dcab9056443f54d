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

// Package random should be used in preference to the math/rand package when a
// random number is required inside the emulation.
//
// Random numbers are seeded by the current clock of the machine so that two
// machines in the same state produce the same numbers. This is important for
// snapshots, where a restored machine must behave exactly like the machine
// that was saved.
//
// If the same random numbers are required every single time, regardless of the
// base seed chosen at program start, then set ZeroSeed to true. This is useful
// for testing purposes.
package random
