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

package terminal

import (
	"fmt"
	"os"
	"syscall"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Terminal wraps the input and output files used by the jam prompt.
type Terminal struct {
	input  *os.File
	output *os.File

	// false if the input is not a terminal. the attributes are not used in
	// that case
	tty bool

	canAttr unix.Termios
	rawAttr unix.Termios
}

// IsTerminal returns true if the file is a terminal.
func IsTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), ioctlGetTermios)
	return err == nil
}

// Initialise the fields in the Terminal struct.
func (t *Terminal) Initialise(inputFile, outputFile *os.File) error {
	if inputFile == nil {
		return curated.Errorf("terminal: requires an input file")
	}
	if outputFile == nil {
		return curated.Errorf("terminal: requires an output file")
	}

	t.input = inputFile
	t.output = outputFile
	t.tty = IsTerminal(inputFile)

	if t.tty {
		if err := termios.Tcgetattr(t.input.Fd(), &t.canAttr); err != nil {
			return curated.Errorf("terminal: %v", err)
		}
		t.rawAttr = t.canAttr
		termios.Cfmakeraw(&t.rawAttr)
	}

	return nil
}

// Interactive returns true if the input is a terminal.
func (t *Terminal) Interactive() bool {
	return t.tty
}

// Print writes the formatted string to the output file.
func (t *Terminal) Print(s string, a ...interface{}) {
	t.output.WriteString(fmt.Sprintf(s, a...))
	t.output.Sync()
}

// CanonicalMode puts terminal into normal, everyday canonical mode.
func (t *Terminal) CanonicalMode() error {
	if !t.tty {
		return nil
	}
	return termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr)
}

// RawMode puts terminal into raw mode.
func (t *Terminal) RawMode() error {
	if !t.tty {
		return nil
	}
	return termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.rawAttr)
}

// Flush makes sure the terminal's input buffer is empty. Key presses made
// while the emulation was running are discarded.
func (t *Terminal) Flush() error {
	if !t.tty {
		return nil
	}
	return termios.Tcflush(t.input.Fd(), termios.TCIFLUSH)
}

// SuspendProcess suspends the current process. Used when the terminal is in
// raw mode and the user presses the suspend key.
func SuspendProcess() {
	p, err := os.FindProcess(os.Getppid())
	if err != nil {
		return
	}
	p.Signal(syscall.SIGTSTP)
}
