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
	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/hardware/serialbus"
)

// Model describes the hardware differences between the supported drives.
type Model struct {
	Name string

	// size of the working RAM, mapped from address zero
	RAMSize int

	// clock multiplier at normal speed
	Multiplier uint64

	// drives that can switch to twice the normal speed
	TurboCapable bool

	// drives that can use the fast serial side channel
	FastSerial bool

	// drives with a parallel cable port
	ParallelCable bool

	// the ROM is mapped from ROMBase to the top of memory
	ROMBase uint16
	ROMSize int

	// base address of the bus interface chip and of the disk controller chip.
	// a DiskBase of zero means the drive has no disk controller chip
	SerialBase uint16
	DiskBase   uint16

	// the bus variant used when the preference is "auto"
	BusVariant serialbus.Variant

	// the ROM has the idle loop that can be trapped
	IdleTraps bool
}

var models = map[string]Model{
	"1541": {
		Name:          "1541",
		RAMSize:       0x0800,
		Multiplier:    1,
		ROMBase:       0xc000,
		ROMSize:       0x4000,
		SerialBase:    0x1800,
		DiskBase:      0x1c00,
		BusVariant:    serialbus.ATNAcknowledge,
		IdleTraps:     true,
		ParallelCable: true,
	},
	"1541-II": {
		Name:          "1541-II",
		RAMSize:       0x0800,
		Multiplier:    1,
		ROMBase:       0xc000,
		ROMSize:       0x4000,
		SerialBase:    0x1800,
		DiskBase:      0x1c00,
		BusVariant:    serialbus.ATNAcknowledge,
		IdleTraps:     true,
		ParallelCable: true,
	},
	"1570": {
		Name:         "1570",
		RAMSize:      0x0800,
		Multiplier:   1,
		TurboCapable: true,
		FastSerial:   true,
		ROMBase:      0x8000,
		ROMSize:      0x8000,
		SerialBase:   0x1800,
		DiskBase:     0x1c00,
		BusVariant:   serialbus.ATNAcknowledge,
	},
	"1571": {
		Name:         "1571",
		RAMSize:      0x0800,
		Multiplier:   1,
		TurboCapable: true,
		FastSerial:   true,
		ROMBase:      0x8000,
		ROMSize:      0x8000,
		SerialBase:   0x1800,
		DiskBase:     0x1c00,
		BusVariant:   serialbus.ATNAcknowledge,
	},
	"1581": {
		Name:       "1581",
		RAMSize:    0x2000,
		Multiplier: 2,
		FastSerial: true,
		ROMBase:    0x8000,
		ROMSize:    0x8000,
		SerialBase: 0x4000,
		BusVariant: serialbus.PullOnly,
	},
	"2031": {
		Name:       "2031",
		RAMSize:    0x0800,
		Multiplier: 1,
		ROMBase:    0xc000,
		ROMSize:    0x4000,
		SerialBase: 0x1800,
		DiskBase:   0x1c00,
		BusVariant: serialbus.ATNAcknowledge,
	},
}

// LookupModel returns the named model.
func LookupModel(name string) (Model, error) {
	m, ok := models[name]
	if !ok {
		return Model{}, curated.Errorf("drive: unknown model (%s)", name)
	}
	return m, nil
}

// ModelNames returns the names of every supported model.
func ModelNames() []string {
	return preferences.Models
}
