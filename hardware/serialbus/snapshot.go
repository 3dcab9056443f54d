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

package serialbus

import (
	"github.com/jetsetilly/gopher1541/snapshot"
)

// snapshot module versions
const (
	SnapshotMajor = 1
	SnapshotMinor = 0
)

// snapshot module names
const (
	moduleBus      = "IECBUS"
	moduleParallel = "PARCABLE"
)

// Snapshot writes the state of the bus.
func (b *Bus) Snapshot(w *snapshot.Writer) {
	m := w.Module(moduleBus, SnapshotMajor, SnapshotMinor)
	m.B(b.cpuBus)
	m.B(b.cpuPort)
	m.B(b.drivePort)
	m.Bool(b.atn)
	for i := range b.slots {
		m.B(b.slots[i].output)
	}
}

// Restore the state of the bus. The bus is not changed if an error is
// returned. The attached participants are not changed and are not told about
// the restored ATN level.
func (b *Bus) Restore(r *snapshot.Reader) error {
	m, err := r.Module(moduleBus, SnapshotMajor, SnapshotMinor)
	if err != nil {
		return err
	}

	cpuBus := m.ReadB()
	cpuPort := m.ReadB()
	drivePort := m.ReadB()
	atn := m.ReadBool()
	outputs := m.ReadBA(MaxParticipants)
	if err := m.Err(); err != nil {
		return err
	}

	b.cpuBus = cpuBus
	b.atn = atn
	for i := range b.slots {
		s := &b.slots[i]
		s.output = outputs[i]
		s.data = ^outputs[i]
		s.misconfigured = false
		if s.p != nil {
			s.bus = b.lines(s)
		} else {
			s.bus = 0xff
		}
	}
	b.cpuPort = cpuPort
	b.drivePort = drivePort

	return nil
}

// Snapshot writes the state of the parallel cable.
func (p *Parallel) Snapshot(w *snapshot.Writer) {
	m := w.Module(moduleParallel, SnapshotMajor, SnapshotMinor)
	m.B(p.hostValue)
	m.BA(p.values[:])
}

// Restore the state of the parallel cable. The cable is not changed if an
// error is returned.
func (p *Parallel) Restore(r *snapshot.Reader) error {
	m, err := r.Module(moduleParallel, SnapshotMajor, SnapshotMinor)
	if err != nil {
		return err
	}

	hostValue := m.ReadB()
	values := m.ReadBA(MaxParticipants)
	if err := m.Err(); err != nil {
		return err
	}

	p.hostValue = hostValue
	copy(p.values[:], values)

	return nil
}
