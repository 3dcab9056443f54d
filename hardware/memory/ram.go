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

package memory

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/random"
)

// RAM is a read/write area. The RAM is mirrored across all pages it is mapped
// to.
type RAM struct {
	data []uint8
	mask uint16
}

// NewRAM is the preferred method of initialisation for the RAM type. Size must
// be a power of two.
func NewRAM(size int) *RAM {
	if size <= 0 || size > 0x10000 || bits.OnesCount(uint(size)) != 1 {
		panic(fmt.Sprintf("memory: illegal RAM size (%d)", size))
	}
	return &RAM{
		data: make([]uint8, size),
		mask: uint16(size - 1),
	}
}

func (ram *RAM) String() string {
	s := strings.Builder{}
	s.WriteString("      -0 -1 -2 -3 -4 -5 -6 -7 -8 -9 -A -B -C -D -E -F\n")
	s.WriteString("    ---- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --\n")
	for y := 0; y < len(ram.data); y += 16 {
		s.WriteString(fmt.Sprintf("%03X- | ", y>>4))
		for x := 0; x < 16 && y+x < len(ram.data); x++ {
			s.WriteString(fmt.Sprintf(" %02x", ram.data[y+x]))
		}
		s.WriteString("\n")
	}
	return strings.TrimSuffix(s.String(), "\n")
}

// Size returns the number of bytes in the RAM.
func (ram *RAM) Size() int {
	return len(ram.data)
}

// Read implements the Area interface.
func (ram *RAM) Read(address uint16) uint8 {
	return ram.data[address&ram.mask]
}

// Write implements the Area interface.
func (ram *RAM) Write(address uint16, data uint8) {
	ram.data[address&ram.mask] = data
}

// Peek implements the Peeker interface.
func (ram *RAM) Peek(address uint16) uint8 {
	return ram.data[address&ram.mask]
}

// Clear sets every byte to zero.
func (ram *RAM) Clear() {
	clear(ram.data)
}

// Randomise fills the RAM with random values.
func (ram *RAM) Randomise(rnd *random.Random) {
	rnd.Fill(ram.data)
}

// Data returns a copy of the RAM contents.
func (ram *RAM) Data() []uint8 {
	d := make([]uint8, len(ram.data))
	copy(d, ram.data)
	return d
}

// Load replaces the RAM contents. The data must be the same size as the RAM.
func (ram *RAM) Load(data []uint8) error {
	if len(data) != len(ram.data) {
		return curated.Errorf("memory: RAM size mismatch (%d instead of %d)", len(data), len(ram.data))
	}
	copy(ram.data, data)
	return nil
}
