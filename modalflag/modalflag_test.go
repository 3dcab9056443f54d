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

package modalflag_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopher1541/modalflag"
	"github.com/jetsetilly/gopher1541/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, len(md.RemainingArgs()), 0)
}

func TestNoHelpAvailable(t *testing.T) {
	w := &test.CompareWriter{}
	md := modalflag.Modes{Output: w}
	md.NewArgs([]string{"-help"})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, w.Compare("No help available\n"))
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"rom.bin"})
	md.AddSubModes("RUN", "SNAPSHOT", "DUMP")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")
	test.ExpectEquality(t, md.GetArg(0), "rom.bin")
}

func TestModesAndFlags(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"snapshot", "-cycles", "1000", "out.snap"})
	md.AddSubModes("RUN", "SNAPSHOT", "DUMP")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "SNAPSHOT")

	md.NewMode()
	cycles := md.AddUint64("cycles", 0, "host cycles")
	ntsc := md.AddBool("ntsc", false, "ntsc clock")

	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *cycles, uint64(1000))
	test.ExpectEquality(t, *ntsc, false)
	test.ExpectEquality(t, md.GetArg(0), "out.snap")
	test.ExpectEquality(t, md.GetArg(1), "")
	test.ExpectEquality(t, md.Path(), "SNAPSHOT")

	var visited []string
	md.Visit(func(f string) {
		visited = append(visited, f)
	})
	test.ExpectEquality(t, strings.Join(visited, ","), "cycles")
}

func TestHelpFlags(t *testing.T) {
	w := &test.CompareWriter{}
	md := modalflag.Modes{Output: w}
	md.NewArgs([]string{"-help"})
	md.AddBool("ntsc", false, "ntsc clock")
	md.AddSubModes("RUN", "DUMP")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, err)

	expected := "Usage:\n" +
		"  -ntsc\n" +
		"    \tntsc clock\n" +
		"\n" +
		"  available sub-modes: RUN, DUMP\n" +
		"    default: RUN\n"
	test.ExpectEquality(t, w.String(), expected)
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"-foo"})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}
