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

package performance_test

import (
	"regexp"
	"testing"

	"github.com/jetsetilly/gopher1541/hardware"
	"github.com/jetsetilly/gopher1541/hardware/instance"
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/performance"
	"github.com/jetsetilly/gopher1541/test"
)

type zeroClock struct{}

func (zeroClock) Clock() uint64 {
	return 0
}

func TestCheck(t *testing.T) {
	ins, err := instance.NewInstance(zeroClock{}, nil)
	test.DemandSuccess(t, err)
	ins.Normalise()
	test.DemandSuccess(t, ins.Prefs.IdleMethod.Set(preferences.IdleNone))

	m, err := hardware.NewMachine(ins)
	test.DemandSuccess(t, err)

	rom := make([]uint8, 0x4000)
	for i := range rom {
		rom[i] = 0xea
	}
	test.DemandSuccess(t, m.AttachROM(0, rom))

	w := &test.CompareWriter{}
	test.ExpectSuccess(t, performance.Check(w, performance.ProfileNone, m, "100ms"))
	test.ExpectSuccess(t, regexp.MustCompile(`^\d+ Hz \(\d+ cycles in 0.10 seconds\) \d+\.\d%\n$`).MatchString(w.String()), w.String())

	test.ExpectFailure(t, performance.Check(w, performance.ProfileNone, m, "soon"))
}

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	p, err = performance.ParseProfile(" cpu ")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU)
	test.ExpectEquality(t, p.String(), "CPU")

	_, err = performance.ParseProfile("disk")
	test.ExpectFailure(t, err)
}

func TestCalcSpeed(t *testing.T) {
	hz, accuracy := performance.CalcSpeed("PAL", 985248*2, 2.0)
	test.ExpectEquality(t, hz, 985248.0)
	test.ExpectApproximate(t, accuracy, 100.0, 0.0001)

	_, accuracy = performance.CalcSpeed("NTSC", 1022730/2, 1.0)
	test.ExpectApproximate(t, accuracy, 50.0, 0.001)
}
