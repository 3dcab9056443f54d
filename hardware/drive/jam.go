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

package drive

import (
	"errors"
	"fmt"

	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/logger"
)

// ProcessorJammed is matched by every JamError with errors.Is().
var ProcessorJammed = errors.New("processor jammed")

// JamError is returned by Execute() when the drive's processor executes a KIL
// opcode.
type JamError struct {
	// the device number of the drive
	Device int

	// the address of the KIL opcode
	Address uint16
}

func (e *JamError) Error() string {
	return fmt.Sprintf("drive %d: %v at $%04x", e.Device, ProcessorJammed, e.Address)
}

// Is implements the errors.Is() interface.
func (e *JamError) Is(target error) bool {
	return target == ProcessorJammed
}

// JamAction is the way a jammed drive is recovered.
type JamAction int

// List of valid JamAction values.
const (
	// execution continues after the KIL opcode, one cycle later
	JamContinue JamAction = iota

	// reset the drive
	JamReset

	// reset the drive and clear RAM
	JamHardReset

	// request the monitor and continue
	JamMonitor
)

func (a JamAction) String() string {
	switch a {
	case JamContinue:
		return "continue"
	case JamReset:
		return "reset"
	case JamHardReset:
		return "hard reset"
	case JamMonitor:
		return "monitor"
	}
	return "unknown jam action"
}

// the address execution starts from after the reset that follows a jam
const jamResetAddress = 0xeaa0

func (d *Drive) jam() error {
	d.jammed = true
	e := &JamError{
		Device:  preferences.FirstDevice + d.slot,
		Address: d.CPU.LastResult.Address,
	}
	logger.Log(d.instance, d.name, e)
	return e
}

// Jammed returns true if the drive has jammed and not been recovered.
func (d *Drive) Jammed() bool {
	return d.jammed
}

// Recover a jammed drive. Does nothing if the drive is not jammed.
func (d *Drive) Recover(action JamAction) {
	if !d.jammed {
		return
	}

	logger.Logf(d.instance, d.name, "recovering from jam: %s", action)

	d.jammed = false
	d.CPU.Unjam()

	switch action {
	case JamReset:
		d.Reset()
		d.jamRestart = true
	case JamHardReset:
		d.HardReset()
		d.jamRestart = true
	case JamMonitor:
		d.Interrupts.SetMonitor(true)
	default:
		d.clk++
	}
}
