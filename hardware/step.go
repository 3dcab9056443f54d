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

package hardware

import (
	"github.com/jetsetilly/gopher1541/hardware/clocks"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
)

// Step advances the host clock by one cycle.
func (m *Machine) Step() error {
	return m.advance(1)
}

// RunFor advances the host clock by the number of cycles.
func (m *Machine) RunFor(cycles uint64) error {
	return m.advance(cycles)
}

// the drives are brought up to date once a frame even if the host never
// accesses the bus
func (m *Machine) catchUpPeriod() uint64 {
	return clocks.Frame(m.Instance.Prefs.VideoStandard.String())
}

func (m *Machine) advance(cycles uint64) error {
	period := m.catchUpPeriod()

	for cycles > 0 {
		n := period - m.sinceCatchUp
		if n > cycles {
			n = cycles
		}
		m.clk += n
		m.sinceCatchUp += n
		cycles -= n

		if m.sinceCatchUp >= period {
			m.sinceCatchUp = 0
			if err := m.handleJam(m.CatchUp()); err != nil {
				return err
			}
		}
	}

	return nil
}

// CatchUp runs every enabled drive up to the host clock. Drives using the
// skip idle method are left alone, they are brought up to date the next time
// the host accesses the bus.
//
// Every drive is run even if an earlier drive returns an error. The first
// error is returned.
func (m *Machine) CatchUp() error {
	var err error

	for _, d := range m.Drives {
		if d.IdleMethod() == preferences.IdleSkip {
			continue
		}
		if e := d.Execute(m.clk); e != nil && err == nil {
			err = e
		}
	}

	m.Guard.MaybeRebase()
	if err == nil {
		err = m.guardErr
	}
	m.guardErr = nil

	return err
}

// called by the host's clock guard after the host clock has been reduced
func (m *Machine) preventOverflow(sub uint64) {
	for _, d := range m.Drives {
		if err := d.PreventOverflow(sub); err != nil && m.guardErr == nil {
			m.guardErr = err
		}
	}
}
