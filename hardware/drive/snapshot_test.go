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

package drive_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jetsetilly/gopher1541/hardware/drive"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/snapshot"
	"github.com/jetsetilly/gopher1541/test"
)

func snapshotOf(t *testing.T, d *drive.Drive) *snapshot.Reader {
	t.Helper()
	w := snapshot.NewWriter()
	d.Snapshot(w)
	r, err := snapshot.NewReader(bytes.NewReader(w.Bytes()))
	test.DemandSuccess(t, err)
	return r
}

func TestSnapshot(t *testing.T) {
	a, ha := newDrive(t, timerROM(), preferences.IdleNone)
	ha.clk = 50000
	test.DemandSuccess(t, a.Execute(ha.clk))

	r := snapshotOf(t, a)
	test.ExpectEquality(t, r.Has("DRIVECPU8"), true)
	test.ExpectEquality(t, r.Has("VIA1D8"), true)
	test.ExpectEquality(t, r.Has("VIA2D8"), true)

	b, hb := newDrive(t, timerROM(), preferences.IdleNone)
	hb.clk = 50000
	test.DemandSuccess(t, b.Restore(r))
	test.ExpectEquality(t, stateOf(b), stateOf(a))
	test.ExpectEquality(t, b.LastClock(), a.LastClock())

	// both drives run identically from the restored state
	ha.clk = 100000
	hb.clk = 100000
	test.DemandSuccess(t, a.Execute(ha.clk))
	test.DemandSuccess(t, b.Execute(hb.clk))
	test.ExpectEquality(t, stateOf(b), stateOf(a))
	test.ExpectEquality(t, b.VIA2.IRQ(), a.VIA2.IRQ())
}

func TestSnapshotFailure(t *testing.T) {
	d, h := newDrive(t, timerROM(), preferences.IdleNone)
	h.clk = 20000
	test.DemandSuccess(t, d.Execute(h.clk))
	before := stateOf(d)

	// module missing
	r, err := snapshot.NewReader(bytes.NewReader(snapshot.NewWriter().Bytes()))
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, d.Restore(r))
	test.ExpectEquality(t, stateOf(d), before)

	// module truncated
	w := snapshot.NewWriter()
	m := w.Module(d.ModuleName(), drive.SnapshotMajor, drive.SnapshotMinor)
	m.DW(5)
	m.DW(0)
	r, err = snapshot.NewReader(bytes.NewReader(w.Bytes()))
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, d.Restore(r))
	test.ExpectEquality(t, stateOf(d), before)

	// newer major version
	w = snapshot.NewWriter()
	w.Module(d.ModuleName(), drive.SnapshotMajor+1, 0)
	r, err = snapshot.NewReader(bytes.NewReader(w.Bytes()))
	test.DemandSuccess(t, err)
	err = d.Restore(r)
	test.ExpectEquality(t, errors.Is(err, snapshot.VersionUnsupported), true)
	test.ExpectEquality(t, stateOf(d), before)
}
