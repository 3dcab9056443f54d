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

// Package preferences holds the preference values that configure the
// emulated hardware. Values are stored on disk with the prefs package.
//
// The Machine applies the values through post-hooks so that changing a value
// while the emulation is running has an immediate effect. For example,
// changing the model of a drive rebuilds the clock conversion table for that
// drive.
package preferences
