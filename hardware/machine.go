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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/clockguard"
	"github.com/jetsetilly/gopher1541/hardware/drive"
	"github.com/jetsetilly/gopher1541/hardware/instance"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/hardware/serialbus"
	"github.com/jetsetilly/gopher1541/logger"
	"github.com/jetsetilly/gopher1541/prefs"
)

// JamHandler is called by the machine when a drive jams. The drive is
// recovered with the returned action.
type JamHandler func(err *drive.JamError) drive.JamAction

// Machine is the main container for the emulated components. The host
// processor is not emulated. The host clock is advanced by the caller and the
// host's accesses to the bus are made through the Host*() functions.
type Machine struct {
	Instance *instance.Instance

	// the host clock. the index of the current host cycle
	clk uint64

	Guard *clockguard.Guard

	Bus      *serialbus.Bus
	Fast     *serialbus.Fast
	Parallel *serialbus.Parallel

	// the drive registry. every slot has a drive but not every drive is
	// enabled
	Drives [preferences.MaxDrives]*drive.Drive

	// the host side of the fast serial and parallel cable connections
	Port *HostPort

	// if OnJam is nil a jam is returned as an error
	OnJam JamHandler

	// host cycles since the drives were last brought up to date
	sinceCatchUp uint64

	// first error returned by a drive while the host clock was being rebased
	guardErr error
}

// NewMachine creates a new Machine and everything associated with the
// hardware. The drives are enabled according to the instance's preferences
// but have no ROM attached.
func NewMachine(ins *instance.Instance) (*Machine, error) {
	m := &Machine{
		Instance: ins,
		Port:     &HostPort{},
	}

	m.Guard = clockguard.New(&m.clk, uint64(ins.Prefs.GuardHighWater.Get().(int)))
	m.Guard.Register(m.preventOverflow)

	m.Bus = serialbus.NewBus(ins)
	m.Fast = serialbus.NewFast(m.Bus, m.Port)
	m.Parallel = serialbus.NewParallel(m.Bus, m.Port)

	for i := range m.Drives {
		d, err := drive.NewDrive(ins, i, m)
		if err != nil {
			return nil, curated.Errorf("machine: %v", err)
		}
		d.Plumb(m.Bus, m.Parallel, m.Fast)
		if ins.Prefs.Drives[i].Enabled.Get().(bool) {
			d.Enable()
		}
		m.Drives[i] = d
	}

	m.setHooks()

	return m, nil
}

func (m *Machine) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "clk=%d %s", m.clk, m.Bus)
	for _, d := range m.Drives {
		if d.Enabled() {
			fmt.Fprintf(&s, "\n%s", d)
		}
	}
	return s.String()
}

// Clock returns the host clock. Implements the drive.HostClock interface.
func (m *Machine) Clock() uint64 {
	return m.clk
}

// Drive returns the drive with the device number. Returns nil if the device
// number is not in range.
func (m *Machine) Drive(device int) *drive.Drive {
	slot := device - preferences.FirstDevice
	if slot < 0 || slot >= len(m.Drives) {
		return nil
	}
	return m.Drives[slot]
}

func (m *Machine) slot(slot int) (*drive.Drive, error) {
	if slot < 0 || slot >= len(m.Drives) {
		return nil, curated.Errorf("machine: no drive in slot %d", slot)
	}
	return m.Drives[slot], nil
}

// post-hooks keep the machine in step with the preferences
func (m *Machine) setHooks() {
	p := m.Instance.Prefs

	p.VideoStandard.SetHookPost(func(v prefs.Value) error {
		for _, d := range m.Drives {
			d.UpdateSyncFactor()
		}
		return nil
	})

	p.IdleMethod.SetHookPost(func(v prefs.Value) error {
		for _, d := range m.Drives {
			d.SetIdleMethod(v.(string))
		}
		return nil
	})

	p.WakeThreshold.SetHookPost(func(v prefs.Value) error {
		for _, d := range m.Drives {
			d.SetWakeThreshold(uint64(v.(int)))
		}
		return nil
	})

	p.GuardHighWater.SetHookPost(func(v prefs.Value) error {
		m.Guard.SetHighWater(uint64(v.(int)))
		for _, d := range m.Drives {
			d.Guard.SetHighWater(uint64(v.(int)))
		}
		return nil
	})

	for i := range p.Drives {
		d := m.Drives[i]
		dp := &p.Drives[i]

		dp.Enabled.SetHookPost(func(v prefs.Value) error {
			if v.(bool) {
				d.Enable()
			} else {
				d.Disable()
			}
			return nil
		})
		dp.Model.SetHookPost(func(v prefs.Value) error {
			return d.SetModel(v.(string))
		})
		dp.Turbo.SetHookPost(func(v prefs.Value) error {
			d.SetTurbo(v.(bool))
			return nil
		})
		dp.ParallelCable.SetHookPost(func(v prefs.Value) error {
			d.SetParallelCable(v.(bool))
			return nil
		})
		dp.BusVariant.SetHookPost(func(v prefs.Value) error {
			d.SetBusVariant(v.(string))
			return nil
		})
	}
}

// AttachROM attaches the ROM image to the drive in the slot. The drive is
// reset.
func (m *Machine) AttachROM(slot int, data []uint8) error {
	d, err := m.slot(slot)
	if err != nil {
		return err
	}
	if err := d.AttachROM(data); err != nil {
		return curated.Errorf("machine: %v", err)
	}
	d.Reset()
	return nil
}

// LoadROM reads a ROM file and attaches it to the drive in the slot.
func (m *Machine) LoadROM(slot int, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return curated.Errorf("machine: %v", err)
	}
	return m.AttachROM(slot, data)
}

// Reset is the host's reset line. Every enabled drive is reset and the bus
// lines are released. The host clock is not changed.
func (m *Machine) Reset() {
	m.Bus.Reset()
	for _, d := range m.Drives {
		if d.Enabled() {
			d.Reset()
		}
	}
	logger.Log(m.Instance, "machine", "reset")
}

// ResetDrive resets a single drive. If hard is true the drive's RAM is
// cleared.
func (m *Machine) ResetDrive(slot int, hard bool) error {
	d, err := m.slot(slot)
	if err != nil {
		return err
	}
	if hard {
		d.HardReset()
	} else {
		d.Reset()
	}
	return nil
}

// Recover a jammed drive.
func (m *Machine) Recover(slot int, action drive.JamAction) error {
	d, err := m.slot(slot)
	if err != nil {
		return err
	}
	d.Recover(action)
	return nil
}

// handleJam passes every jammed drive to the jam handler. Errors that are not
// jams are returned unchanged, as are jams when there is no handler
func (m *Machine) handleJam(err error) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, drive.ProcessorJammed) || m.OnJam == nil {
		return err
	}
	for _, d := range m.Drives {
		if d.Jammed() {
			jam := &drive.JamError{
				Device:  preferences.FirstDevice + d.Slot(),
				Address: d.CPU.LastResult.Address,
			}
			d.Recover(m.OnJam(jam))
		}
	}
	return nil
}
