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
	"strings"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/instance"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/logger"
	"github.com/jetsetilly/gopher1541/snapshot"
)

// snapshot module version
const (
	SnapshotMajor = 1
	SnapshotMinor = 0
)

const moduleMachine = "MACHINE"

// length of the model name field in the machine module
const modelNameLength = 8

// ConfigMismatch is the curated error pattern returned when a snapshot was
// created by a machine with different drives.
const ConfigMismatch = "snapshot: configuration mismatch: %s"

// Snapshot writes the state of the machine. The machine module records the
// configuration of the drives so that the snapshot can only be restored into
// a machine with the same drives.
func (m *Machine) Snapshot(w *snapshot.Writer) {
	mod := w.Module(moduleMachine, SnapshotMajor, SnapshotMinor)
	mod.QW(m.clk)
	mod.QW(m.sinceCatchUp)
	for _, d := range m.Drives {
		mod.Bool(d.Enabled())
		var name [modelNameLength]uint8
		copy(name[:], d.Model().Name)
		mod.BA(name[:])
	}

	m.Bus.Snapshot(w)
	m.Parallel.Snapshot(w)

	for _, d := range m.Drives {
		if d.Enabled() {
			d.Snapshot(w)
		}
	}
}

// machine module contents
type machineState struct {
	clk          uint64
	sinceCatchUp uint64
}

func (m *Machine) readMachine(r *snapshot.Reader) (machineState, error) {
	var s machineState

	mod, err := r.Module(moduleMachine, SnapshotMajor, SnapshotMinor)
	if err != nil {
		return s, err
	}

	s.clk = mod.ReadQW()
	s.sinceCatchUp = mod.ReadQW()
	for _, d := range m.Drives {
		enabled := mod.ReadBool()
		name := strings.TrimRight(string(mod.ReadBA(modelNameLength)), "\x00")
		if err := mod.Err(); err != nil {
			return s, err
		}
		if enabled != d.Enabled() {
			return s, curated.Errorf(ConfigMismatch, d.Name())
		}
		if enabled && name != d.Model().Name {
			return s, curated.Errorf(ConfigMismatch, d.Name())
		}
	}

	return s, nil
}

// Configure changes the drive preferences to match the machine that created
// the snapshot. A machine created with the preferences can then restore the
// snapshot.
func Configure(prefs *preferences.Preferences, r *snapshot.Reader) error {
	mod, err := r.Module(moduleMachine, SnapshotMajor, SnapshotMinor)
	if err != nil {
		return err
	}

	_ = mod.ReadQW()
	_ = mod.ReadQW()
	for i := range prefs.Drives {
		enabled := mod.ReadBool()
		name := strings.TrimRight(string(mod.ReadBA(modelNameLength)), "\x00")
		if err := mod.Err(); err != nil {
			return err
		}
		if err := prefs.Drives[i].Enabled.Set(enabled); err != nil {
			return err
		}
		if enabled {
			if err := prefs.Drives[i].Model.Set(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// Restore the state of the machine from a snapshot. The snapshot is first
// restored into a shadow machine with the same preferences. The machine is
// only changed if the shadow restore succeeds.
func (m *Machine) Restore(r *snapshot.Reader) error {
	shadow, err := m.shadow()
	if err != nil {
		return err
	}
	if err := shadow.restore(r); err != nil {
		return err
	}

	if err := m.restore(r); err != nil {
		return curated.Errorf("snapshot: restore failed after validation: %v", err)
	}
	logger.Logf(m.Instance, "snapshot", "restored at host clock %d", m.clk)

	return nil
}

// the shadow machine is created from a copy of the preferences and does not
// log
func (m *Machine) shadow() (*Machine, error) {
	ins, err := instance.NewInstance(m, m.Instance.Prefs.Clone())
	if err != nil {
		return nil, err
	}
	ins.Label = instance.Comparison

	shadow, err := NewMachine(ins)
	if err != nil {
		return nil, err
	}

	// the enabled state of a drive may differ from the preferences if it was
	// changed directly
	for i, d := range m.Drives {
		if d.Enabled() {
			shadow.Drives[i].Enable()
		} else {
			shadow.Drives[i].Disable()
		}
		if err := shadow.Drives[i].SetModel(d.Model().Name); err != nil {
			return nil, err
		}
	}

	return shadow, nil
}

func (m *Machine) restore(r *snapshot.Reader) error {
	s, err := m.readMachine(r)
	if err != nil {
		return err
	}
	if err := m.Bus.Restore(r); err != nil {
		return err
	}
	if err := m.Parallel.Restore(r); err != nil {
		return err
	}
	for _, d := range m.Drives {
		if d.Enabled() {
			if err := d.Restore(r); err != nil {
				return err
			}
		}
	}

	m.clk = s.clk
	m.sinceCatchUp = s.sinceCatchUp

	return nil
}

// Modules returns the names of the modules written by Snapshot() for the
// current configuration.
func (m *Machine) Modules() []string {
	names := []string{moduleMachine, "IECBUS", "PARCABLE"}
	for _, d := range m.Drives {
		if d.Enabled() {
			names = append(names, d.ModuleName(), d.VIA1.Name(), d.VIA2.Name())
		}
	}
	return names
}
