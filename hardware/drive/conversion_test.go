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
	"testing"

	"github.com/jetsetilly/gopher1541/hardware/clocks"
	"github.com/jetsetilly/gopher1541/hardware/drive"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/test"
)

func TestSyncFactor(t *testing.T) {
	test.ExpectEquality(t, drive.SyncFactor(clocks.PAL, 1), 66517)
	test.ExpectEquality(t, drive.SyncFactor(clocks.NTSC, 1), 64079)
	test.ExpectEquality(t, drive.SyncFactor(clocks.PAL, 2), 2*66517)
}

func TestConversionTable(t *testing.T) {
	tab := drive.NewConversionTable(drive.SyncOne)
	for _, n := range []int{0, 1, 100, drive.MaxTicks} {
		test.ExpectEquality(t, tab.Ticks[n], uint64(n))
		test.ExpectEquality(t, tab.Fraction[n], 0)
	}

	tab = drive.NewConversionTable(drive.SyncFactor(clocks.PAL, 1))
	for n := range tab.Ticks {
		v := uint64(n) * tab.Factor
		test.DemandEquality(t, tab.Ticks[n]<<16+tab.Fraction[n], v, n)
		test.DemandEquality(t, tab.Fraction[n] < 0x10000, true, n)
	}

	// a PAL host runs slightly slower than the drive
	test.ExpectEquality(t, tab.Ticks[drive.MaxTicks], 4157)
}

func TestConversionAccuracy(t *testing.T) {
	d, h := newDrive(t, newROM(), preferences.IdleNone)
	d.SetSyncFactor(0)
	test.ExpectEquality(t, d.SyncTable().Factor, drive.SyncFactor(clocks.PAL, 1))

	// one second of host time is one second of drive time, to within an
	// instruction plus the error of the fixed-point factor
	h.clk = clocks.PAL
	test.ExpectSuccess(t, d.Execute(h.clk))
	test.ExpectApproximate(t, d.Clock(), clocks.Drive, 0.0001)

	// the 1581 runs at twice the rate of the 1541
	test.ExpectSuccess(t, d.SetModel("1581"))
	test.ExpectEquality(t, d.SyncTable().Factor, drive.SyncFactor(clocks.PAL, 2))

	test.ExpectSuccess(t, d.SetModel("1571"))
	test.ExpectEquality(t, d.SyncTable().Factor, drive.SyncFactor(clocks.PAL, 1))
	d.SetTurbo(true)
	test.ExpectEquality(t, d.SyncTable().Factor, drive.SyncFactor(clocks.PAL, 2))

	// the 1541 ignores turbo
	test.ExpectSuccess(t, d.SetModel("1541"))
	test.ExpectEquality(t, d.SyncTable().Factor, drive.SyncFactor(clocks.PAL, 1))
}
