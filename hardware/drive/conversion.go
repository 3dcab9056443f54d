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

package drive

import (
	"fmt"

	"github.com/jetsetilly/gopher1541/hardware/clocks"
)

// MaxTicks is the largest number of host cycles converted in one step.
// Longer spans are converted in chunks of MaxTicks.
const MaxTicks = 0x1000

// SyncOne is the sync factor of a drive running at the same speed as the host.
const SyncOne = 0x10000

// SyncFactor returns the number of drive cycles per host cycle as a 16.16
// fixed-point value.
func SyncFactor(hostHz int, multiplier uint64) uint64 {
	return uint64(SyncOne*clocks.Drive/hostHz) * multiplier
}

// ConversionTable converts host cycles to drive cycles. Ticks is the whole
// number of drive cycles and Fraction the remainder, in units of 1/65536
// cycles.
type ConversionTable struct {
	Factor   uint64
	Ticks    [MaxTicks + 1]uint64
	Fraction [MaxTicks + 1]uint64
}

// NewConversionTable creates the table for the sync factor.
func NewConversionTable(factor uint64) *ConversionTable {
	t := &ConversionTable{Factor: factor}
	for i := range t.Ticks {
		v := uint64(i) * factor
		t.Ticks[i] = v >> 16
		t.Fraction[i] = v & 0xffff
	}
	return t
}

func (t *ConversionTable) String() string {
	return fmt.Sprintf("%d.%05d drive cycles per host cycle", t.Factor>>16, (t.Factor&0xffff)*100000>>16)
}
