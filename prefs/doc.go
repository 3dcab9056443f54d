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

// Package prefs facilitates the storage of preferential values in the
// Gopher1541 system. It is intended for use by packages that configure the
// emulation, rather than for per-machine state that belongs in a snapshot.
//
// The Bool, Int and String types hold a single value each. Values are stored
// atomically so they can be read from any goroutine. A pre-hook and a
// post-hook can be set for each value. The pre-hook can refuse a new value by
// returning an error. The post-hook is the place to apply the new value to the
// emulation.
//
// The Disk type associates a collection of values with a file on disk. The
// file is a list of "key :: value" lines following a warning line. Saving a
// Disk does not remove entries that belong to other Disk instances using the
// same file.
//
// Values can also be given on the command line as a string of the form
// "key::value; key::value". The string is pushed onto the command line stack
// with PushCommandLineStack() and consulted by Disk.Load() after the file has
// been read.
package prefs
