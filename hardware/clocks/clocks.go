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

// Package clocks defines the clock frequencies of the host computer and the
// disk drives. Values are in Hz.
package clocks

// Host clock frequencies for each video standard.
const (
	PAL  = 985248
	NTSC = 1022730
)

// Drive is the clock frequency of a drive processor running at normal speed.
// Some models run at twice this speed.
const Drive = 1000000

// Host returns the host clock frequency for the named video standard. Any
// value other than "NTSC" is treated as PAL.
func Host(standard string) int {
	if standard == "NTSC" {
		return NTSC
	}
	return PAL
}

// Number of host cycles in one video frame for each video standard.
const (
	PALFrame  = 312 * 63
	NTSCFrame = 263 * 65
)

// Frame returns the number of host cycles in a video frame for the named video
// standard. Any value other than "NTSC" is treated as PAL.
func Frame(standard string) uint64 {
	if standard == "NTSC" {
		return NTSCFrame
	}
	return PALFrame
}
