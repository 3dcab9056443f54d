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

package terminal_test

import (
	"os"
	"strings"
	"testing"

	"github.com/jetsetilly/gopher1541/hardware/drive"
	"github.com/jetsetilly/gopher1541/terminal"
	"github.com/jetsetilly/gopher1541/test"
)

var jam = &drive.JamError{Device: 8, Address: 0xeaec}

func TestReadKeys(t *testing.T) {
	w := &test.CompareWriter{}

	c, err := terminal.ReadKeys(strings.NewReader("xyzh"), w, jam, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, terminal.ChoiceHardReset)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), jam.Error()))
	test.ExpectSuccess(t, strings.HasSuffix(w.String(), "hard reset\r\n"))

	// rewind is ignored when there is no history
	c, err = terminal.ReadKeys(strings.NewReader("wc"), w, jam, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, terminal.ChoiceContinue)

	c, err = terminal.ReadKeys(strings.NewReader("W"), w, jam, true)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, terminal.ChoiceRewind)

	// ctrl-c
	c, err = terminal.ReadKeys(strings.NewReader("\x03"), w, jam, true)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, terminal.ChoiceQuit)

	c, err = terminal.ReadKeys(strings.NewReader("ab"), w, jam, true)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, terminal.ChoiceQuit)
}

func TestReadLines(t *testing.T) {
	w := &test.CompareWriter{}

	c, err := terminal.ReadLines(strings.NewReader("\n  \nzzz\n monitor\n"), w, jam, true)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, terminal.ChoiceMonitor)
	test.ExpectEquality(t, strings.Count(w.String(), "[q]uit"), 4)

	// rewind is not a valid choice without history
	c, err = terminal.ReadLines(strings.NewReader("w\n"), w, jam, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, terminal.ChoiceQuit)
}

func TestChoiceAction(t *testing.T) {
	a, ok := terminal.ChoiceReset.Action()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, a, drive.JamReset)

	a, ok = terminal.ChoiceMonitor.Action()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, a, drive.JamMonitor)

	_, ok = terminal.ChoiceRewind.Action()
	test.ExpectFailure(t, ok)
	_, ok = terminal.ChoiceQuit.Action()
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, terminal.ChoiceHardReset.String(), "hard reset")
	test.ExpectEquality(t, terminal.ChoiceRewind.String(), "rewind")
}

func TestPipe(t *testing.T) {
	r, w, err := os.Pipe()
	test.DemandSuccess(t, err)
	defer r.Close()

	out, err := os.CreateTemp(t.TempDir(), "prompt")
	test.DemandSuccess(t, err)
	defer out.Close()

	var term terminal.Terminal
	test.ExpectFailure(t, term.Initialise(nil, out))
	test.DemandSuccess(t, term.Initialise(r, out))
	test.ExpectFailure(t, term.Interactive())
	test.ExpectFailure(t, terminal.IsTerminal(r))

	// raw mode has no effect on a pipe
	test.ExpectSuccess(t, term.RawMode())
	test.ExpectSuccess(t, term.CanonicalMode())

	w.WriteString("r\n")
	w.Close()

	c, err := term.JamPrompt(jam, false)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c, terminal.ChoiceReset)
}
