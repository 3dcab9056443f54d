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
	"hash/crc32"
	"math/bits"
	"os"

	"github.com/jetsetilly/gopher1541/curated"
)

// ROM is a read-only area. Writes are ignored. The ROM is mirrored across all
// pages it is mapped to.
type ROM struct {
	filename string
	data     []uint8
	mask     uint16
}

// NewROM creates a ROM from the data. The length of the data must be a power
// of two. The data is copied.
func NewROM(data []uint8) (*ROM, error) {
	if len(data) == 0 || len(data) > 0x10000 || bits.OnesCount(uint(len(data))) != 1 {
		return nil, curated.Errorf("memory: ROM size must be a power of two (%d)", len(data))
	}
	rom := &ROM{
		data: make([]uint8, len(data)),
		mask: uint16(len(data) - 1),
	}
	copy(rom.data, data)
	return rom, nil
}

// LoadROM reads a ROM file. The file must be exactly size bytes.
func LoadROM(filename string, size int) (*ROM, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf("memory: %v", err)
	}
	if len(data) != size {
		return nil, curated.Errorf("memory: ROM file %s is %d bytes (expected %d)", filename, len(data), size)
	}
	rom, err := NewROM(data)
	if err != nil {
		return nil, err
	}
	rom.filename = filename
	return rom, nil
}

func (rom *ROM) String() string {
	if rom.filename == "" {
		return fmt.Sprintf("%dK ROM [%08x]", len(rom.data)/1024, rom.Checksum())
	}
	return fmt.Sprintf("%s (%dK) [%08x]", rom.filename, len(rom.data)/1024, rom.Checksum())
}

// Size returns the number of bytes in the ROM.
func (rom *ROM) Size() int {
	return len(rom.data)
}

// Checksum returns the CRC-32 of the ROM contents, including any patches.
func (rom *ROM) Checksum() uint32 {
	return crc32.ChecksumIEEE(rom.data)
}

// Read implements the Area interface.
func (rom *ROM) Read(address uint16) uint8 {
	return rom.data[address&rom.mask]
}

// Write implements the Area interface. Writes to ROM are ignored.
func (rom *ROM) Write(address uint16, data uint8) {
}

// Peek implements the Peeker interface.
func (rom *ROM) Peek(address uint16) uint8 {
	return rom.data[address&rom.mask]
}

// Patch changes the byte at the address. Returns the previous value.
func (rom *ROM) Patch(address uint16, data uint8) uint8 {
	old := rom.data[address&rom.mask]
	rom.data[address&rom.mask] = data
	return old
}
