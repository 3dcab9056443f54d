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

package main

import (
	"testing"

	"github.com/jetsetilly/gopher1541/modalflag"
	"github.com/jetsetilly/gopher1541/test"
)

func parseMachineArgs(t *testing.T, args ...string) *machineArgs {
	t.Helper()
	md := &modalflag.Modes{}
	md.NewArgs(args)
	md.NewMode()
	a := addMachineArgs(md)
	p, err := md.Parse()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, p, modalflag.ParseContinue)
	return a
}

func TestMachineArgs(t *testing.T) {
	a := parseMachineArgs(t, "-drives", "2", "-model", "1571", "-tv", "NTSC", "-idle", "skip", "-turbo")
	prefs, err := a.hardwarePrefs()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, prefs.VideoStandard.Get().(string), "NTSC")
	test.ExpectEquality(t, prefs.IdleMethod.Get().(string), "skip")
	for i := range prefs.Drives {
		test.ExpectEquality(t, prefs.Drives[i].Enabled.Get().(bool), i < 2, i)
		test.ExpectEquality(t, prefs.Drives[i].Model.Get().(string), "1571", i)
		test.ExpectEquality(t, prefs.Drives[i].Turbo.Get().(bool), true, i)
		test.ExpectEquality(t, prefs.Drives[i].ParallelCable.Get().(bool), false, i)
	}

	// zero values leave the defaults alone
	a = parseMachineArgs(t)
	prefs, err = a.hardwarePrefs()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, prefs.VideoStandard.Get().(string), "PAL")
	test.ExpectEquality(t, prefs.Drives[0].Enabled.Get().(bool), true)
	test.ExpectEquality(t, prefs.Drives[1].Enabled.Get().(bool), false)

	a = parseMachineArgs(t, "-model", "1542")
	_, err = a.hardwarePrefs()
	test.ExpectFailure(t, err)

	a = parseMachineArgs(t, "-drives", "5")
	_, err = a.hardwarePrefs()
	test.ExpectFailure(t, err)
}
