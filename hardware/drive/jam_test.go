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
	"errors"
	"testing"

	"github.com/jetsetilly/gopher1541/hardware/drive"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/test"
)

const jamAddress = 0xeaec

func jamROM() rom {
	r := newROM()
	r.put(0xeaea, 0xea, 0xea, 0x02) // NOP; NOP; KIL
	return r
}

func jammedDrive(t *testing.T) (*drive.Drive, *hostClock) {
	t.Helper()

	d, h := newDrive(t, jamROM(), preferences.IdleNone)
	h.clk = 1000
	err := d.Execute(h.clk)
	test.DemandFailure(t, err)
	test.DemandEquality(t, errors.Is(err, drive.ProcessorJammed), true)

	var jam *drive.JamError
	test.DemandEquality(t, errors.As(err, &jam), true)
	test.ExpectEquality(t, jam.Device, preferences.FirstDevice)
	test.ExpectEquality(t, jam.Address, jamAddress)
	test.ExpectEquality(t, d.Jammed(), true)

	return d, h
}

func TestJam(t *testing.T) {
	d, h := jammedDrive(t)
	clk := d.Clock()
	test.ExpectEquality(t, clk < 1000, true)
	test.ExpectEquality(t, d.LastClock(), 1000)

	// a jammed drive does not run but keeps up with the host clock
	h.clk = 2000
	test.ExpectSuccess(t, d.Execute(h.clk))
	test.ExpectEquality(t, d.Clock(), clk)
	test.ExpectEquality(t, d.LastClock(), 2000)
}

func TestRecoverContinue(t *testing.T) {
	d, h := jammedDrive(t)
	clk := d.Clock()

	d.Recover(drive.JamContinue)
	test.ExpectEquality(t, d.Jammed(), false)
	test.ExpectEquality(t, d.Clock(), clk+1)

	// execution continues with the NOPs after the KIL
	h.clk = 2000
	test.ExpectSuccess(t, d.Execute(h.clk))
	test.ExpectEquality(t, d.Jammed(), false)
	expectClock(t, d, clk+1+1000)
}

func TestRecoverReset(t *testing.T) {
	d, h := jammedDrive(t)

	h.clk = 2000
	d.Recover(drive.JamReset)
	test.ExpectEquality(t, d.Jammed(), false)
	test.ExpectEquality(t, d.Clock(), 0)
	test.ExpectEquality(t, d.LastClock(), 2000)

	// execution starts from the ROM's reset routine and not from the reset
	// vector, which points to $eaea
	h.clk = 2008
	test.DemandSuccess(t, d.Execute(h.clk))
	test.ExpectEquality(t, d.CPU.LastResult.Address, 0xeaa0)

	// the drive restarts and jams in the same place
	h.clk = 3000
	err := d.Execute(h.clk)
	test.ExpectEquality(t, errors.Is(err, drive.ProcessorJammed), true)
	test.ExpectEquality(t, d.CPU.LastResult.Address, jamAddress)
}

func TestRecoverHardReset(t *testing.T) {
	d, h := jammedDrive(t)

	d.RAM.Write(0x10, 0x55)
	d.Recover(drive.JamHardReset)
	test.ExpectEquality(t, d.Jammed(), false)
	test.ExpectEquality(t, d.RAM.Read(0x10), 0)

	h.clk += 8
	test.DemandSuccess(t, d.Execute(h.clk))
	test.ExpectEquality(t, d.CPU.LastResult.Address, 0xeaa0)
}

func TestRecoverMonitor(t *testing.T) {
	d, _ := jammedDrive(t)

	d.Recover(drive.JamMonitor)
	test.ExpectEquality(t, d.Jammed(), false)
	test.ExpectEquality(t, d.Interrupts.Monitor(), true)

	// the monitor request survives a reset
	d.Reset()
	test.ExpectEquality(t, d.Interrupts.Monitor(), true)
}

func TestRecoverNotJammed(t *testing.T) {
	d, h := newDrive(t, newROM(), preferences.IdleNone)
	h.clk = 100
	test.DemandSuccess(t, d.Execute(h.clk))
	clk := d.Clock()

	d.Recover(drive.JamContinue)
	test.ExpectEquality(t, d.Clock(), clk)
}

func TestJamActionString(t *testing.T) {
	test.ExpectEquality(t, drive.JamHardReset.String(), "hard reset")
	test.ExpectEquality(t, drive.JamAction(99).String(), "unknown jam action")
}
