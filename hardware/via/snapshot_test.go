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

package via_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jetsetilly/gopher1541/hardware/via"
	"github.com/jetsetilly/gopher1541/snapshot"
	"github.com/jetsetilly/gopher1541/test"
)

func TestSnapshot(t *testing.T) {
	f := newFixture("VIA1D8")

	f.store(1, via.T1CL, 0x40)
	f.store(2, via.T1CH, 0x01)
	f.store(3, via.T2LL, 0x80)
	f.store(4, via.T2CH, 0x00)
	f.store(5, via.IER, 0x80|via.IntT1|via.IntT2)
	f.store(6, via.PCR, 0x0c)
	f.store(7, via.DDRA, 0xff)
	f.store(7, via.PRA, 0x5a)

	f.host.clk = 100
	w := snapshot.NewWriter()
	f.chip.Snapshot(w)

	r, err := snapshot.NewReader(bytes.NewReader(w.Bytes()))
	test.DemandSuccess(t, err)

	g := newFixture("VIA1D8")
	g.host.clk = 100
	test.DemandSuccess(t, g.chip.Restore(r))

	test.ExpectEquality(t, g.chip.Peek(via.DDRA), uint8(0xff))
	test.ExpectEquality(t, g.chip.Peek(via.PRA), f.chip.Peek(via.PRA))
	test.ExpectEquality(t, g.chip.Peek(via.PCR), uint8(0x0c))
	test.ExpectEquality(t, g.chip.Peek(via.IER), uint8(0x80|via.IntT1|via.IntT2))
	test.ExpectEquality(t, g.ctx.NextPending(), f.ctx.NextPending())

	// the two chips behave the same after the restore
	for clk := uint64(100); clk < 1000; clk += 7 {
		test.ExpectEquality(t, g.peekT1(clk), f.peekT1(clk), clk)
		test.ExpectEquality(t, g.peekT2(clk), f.peekT2(clk), clk)
		test.ExpectEquality(t, g.chip.Peek(via.IFR), f.chip.Peek(via.IFR), clk)
		test.ExpectEquality(t, g.host.irq, f.host.irq, clk)
	}

	// a second snapshot of both chips is identical
	wf := snapshot.NewWriter()
	f.chip.Snapshot(wf)
	wg := snapshot.NewWriter()
	g.chip.Snapshot(wg)
	test.ExpectSuccess(t, bytes.Equal(wf.Bytes(), wg.Bytes()))
}

func TestSnapshotErrors(t *testing.T) {
	f := newFixture("VIA1D8")
	f.store(1, via.DDRB, 0x1a)

	// truncated module
	w := snapshot.NewWriter()
	m := w.Module("VIA1D8", via.SnapshotMajor, via.SnapshotMinor)
	m.B(0x00)
	m.B(0x00)
	m.B(0x00)
	r, err := snapshot.NewReader(bytes.NewReader(w.Bytes()))
	test.DemandSuccess(t, err)
	err = f.chip.Restore(r)
	test.ExpectSuccess(t, errors.Is(err, snapshot.ErrTruncated))
	test.ExpectEquality(t, f.chip.Peek(via.DDRB), uint8(0x1a))

	// unsupported version
	w = snapshot.NewWriter()
	w.Module("VIA1D8", via.SnapshotMajor+1, 0).B(0)
	r, err = snapshot.NewReader(bytes.NewReader(w.Bytes()))
	test.DemandSuccess(t, err)
	err = f.chip.Restore(r)
	test.ExpectSuccess(t, errors.Is(err, snapshot.VersionUnsupported))
	test.ExpectEquality(t, f.chip.Peek(via.DDRB), uint8(0x1a))

	// missing module
	w = snapshot.NewWriter()
	w.Module("VIA1D9", via.SnapshotMajor, via.SnapshotMinor).B(0)
	r, err = snapshot.NewReader(bytes.NewReader(w.Bytes()))
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, f.chip.Restore(r))
}
