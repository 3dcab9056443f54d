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

// Package terminal asks the user what to do when a drive jams. When the input
// is a terminal the prompt reads a single key press with the terminal in raw
// mode, using "github.com/pkg/term/termios". Otherwise the prompt reads whole
// lines from the input, which is useful when the emulator is being driven by
// a script.
package terminal
