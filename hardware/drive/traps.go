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
	"github.com/jetsetilly/gopher1541/hardware/memory"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
)

// Addresses of the ROM traps and the addresses execution continues from.
const (
	IdleTrapAddress  = 0xec9b
	IdleTrapContinue = 0xebff

	FormatTrapAddress  = 0xdaee
	FormatTrapContinue = 0xdaf6
)

// the ROM checksum bytes that are patched out when the idle trap is installed
var checksumPatches = []uint16{0xeae4, 0xeae5, 0xeae8, 0xeae9}

// NOP and BRK opcodes
const (
	opNOP = 0xea
	opBRK = 0x00
)

// PatchIdleTraps installs the idle trap in the ROM if the idle method needs it.
// The ROM's self-test checksum is disabled so the drive does not fail its
// power on test.
func PatchIdleTraps(rom *memory.ROM, model Model, method string) {
	if !model.IdleTraps {
		return
	}
	if method != preferences.IdleTrap && method != preferences.IdleSkip {
		return
	}
	for _, a := range checksumPatches {
		rom.Patch(a, opNOP)
	}
	rom.Patch(IdleTrapAddress, opBRK)
}

// trap is called by the CPU for every BRK instruction. The address is the
// address of the BRK opcode
func (d *Drive) trap(address uint16) (uint16, bool) {
	if !d.model.IdleTraps {
		return 0, false
	}

	switch address {
	case IdleTrapAddress:
		d.idle = true
		return IdleTrapContinue, true
	case FormatTrapAddress:
		return FormatTrapContinue, true
	}

	return 0, false
}
