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
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/hardware/drive"
)

// Choice is the user's response to the jam prompt.
type Choice int

// List of valid Choice values.
const (
	ChoiceContinue Choice = iota
	ChoiceReset
	ChoiceHardReset
	ChoiceMonitor
	ChoiceRewind
	ChoiceQuit
)

func (c Choice) String() string {
	switch c {
	case ChoiceRewind:
		return "rewind"
	case ChoiceQuit:
		return "quit"
	}
	if a, ok := c.Action(); ok {
		return a.String()
	}
	return "unknown choice"
}

// Action returns the drive recovery action for the choice. The boolean is
// false for choices that do not recover the drive.
func (c Choice) Action() (drive.JamAction, bool) {
	switch c {
	case ChoiceContinue:
		return drive.JamContinue, true
	case ChoiceReset:
		return drive.JamReset, true
	case ChoiceHardReset:
		return drive.JamHardReset, true
	case ChoiceMonitor:
		return drive.JamMonitor, true
	}
	return drive.JamContinue, false
}

// control keys recognised in raw mode
const (
	keyInterrupt = 0x03
	keySuspend   = 0x1a
)

// keyChoice maps a key to a choice. The rewind key is only valid if there is
// history to rewind to.
func keyChoice(k byte, canRewind bool) (Choice, bool) {
	switch k {
	case 'c', 'C':
		return ChoiceContinue, true
	case 'r', 'R':
		return ChoiceReset, true
	case 'h', 'H':
		return ChoiceHardReset, true
	case 'm', 'M':
		return ChoiceMonitor, true
	case 'w', 'W':
		return ChoiceRewind, canRewind
	case 'q', 'Q', keyInterrupt:
		return ChoiceQuit, true
	}
	return ChoiceQuit, false
}

func promptText(jam *drive.JamError, canRewind bool) string {
	s := strings.Builder{}
	s.WriteString(jam.Error())
	s.WriteString("\n[c]ontinue [r]eset [h]ard reset [m]onitor ")
	if canRewind {
		s.WriteString("re[w]ind ")
	}
	s.WriteString("[q]uit: ")
	return s.String()
}

// ReadKeys reads single key presses from the reader until one of them is a
// valid choice. The prompt is written to the writer. An exhausted reader is
// treated as ChoiceQuit.
func ReadKeys(r io.Reader, w io.Writer, jam *drive.JamError, canRewind bool) (Choice, error) {
	io.WriteString(w, promptText(jam, canRewind))

	b := make([]byte, 1)
	for {
		n, err := r.Read(b)
		if n == 1 {
			if b[0] == keySuspend {
				SuspendProcess()
				continue
			}
			if c, ok := keyChoice(b[0], canRewind); ok {
				io.WriteString(w, c.String()+"\r\n")
				return c, nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				io.WriteString(w, "\n")
				return ChoiceQuit, nil
			}
			return ChoiceQuit, curated.Errorf("terminal: %v", err)
		}
	}
}

// ReadLines is the line based equivalent of ReadKeys(). Only the first
// character of each line is considered.
func ReadLines(r io.Reader, w io.Writer, jam *drive.JamError, canRewind bool) (Choice, error) {
	scanner := bufio.NewScanner(r)
	for {
		io.WriteString(w, promptText(jam, canRewind))
		if !scanner.Scan() {
			io.WriteString(w, "\n")
			if err := scanner.Err(); err != nil {
				return ChoiceQuit, curated.Errorf("terminal: %v", err)
			}
			return ChoiceQuit, nil
		}
		l := strings.TrimSpace(scanner.Text())
		if len(l) == 0 {
			continue
		}
		if c, ok := keyChoice(l[0], canRewind); ok {
			return c, nil
		}
	}
}

// JamPrompt asks the user what to do about the jammed drive.
func (t *Terminal) JamPrompt(jam *drive.JamError, canRewind bool) (Choice, error) {
	if !t.tty {
		return ReadLines(t.input, t.output, jam, canRewind)
	}

	if err := t.Flush(); err != nil {
		return ChoiceQuit, curated.Errorf("terminal: %v", err)
	}
	if err := t.RawMode(); err != nil {
		return ChoiceQuit, curated.Errorf("terminal: %v", err)
	}
	defer t.CanonicalMode()

	return ReadKeys(t.input, t.output, jam, canRewind)
}
