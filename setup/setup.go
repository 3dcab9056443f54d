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

package setup

import (
	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware"
	"github.com/jetsetilly/gopher1541/resources"
)

// ROMDir is the subdirectory of the resources directory containing the ROM
// images.
const ROMDir = "roms"

// ROMPath returns the path to the ROM image for the model.
func ROMPath(model string) (string, error) {
	return resources.JoinPath(ROMDir, model+".bin")
}

// AttachROMs loads the ROM image for every enabled drive. If filename is not
// empty then that file is used for every drive. Otherwise the ROM image is
// found with ROMPath().
func AttachROMs(m *hardware.Machine, filename string) error {
	for i, d := range m.Drives {
		if !d.Enabled() {
			continue
		}

		pth := filename
		if pth == "" {
			var err error
			pth, err = ROMPath(d.Model().Name)
			if err != nil {
				return curated.Errorf("setup: %v", err)
			}
		}

		if err := m.LoadROM(i, pth); err != nil {
			return curated.Errorf("setup: %s: %v", d.Name(), err)
		}
	}

	return nil
}
