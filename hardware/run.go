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

package hardware

import (
	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/govern"
)

// While the continueCheck() function only runs once per quantum of host
// cycles, it can still be expensive to do a full continue check every time.
//
// It depends on context whether it is used or not but the PerformanceBrake is
// a standard value that can be used to filter out expensive code paths within
// a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
const PerformanceBrake = 100

// Quantum is the number of host cycles the Run() loop advances the machine by
// between calls to continueCheck().
const Quantum = 1000

// Run sets the emulation running as quickly as possible. The continueCheck()
// function is called after every quantum of host cycles.
func (m *Machine) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running

	for state != govern.Ending && state != govern.Initialising {
		switch state {
		case govern.Running:
			err := m.advance(Quantum)
			if err != nil {
				return err
			}
		case govern.Paused:
		default:
			return curated.Errorf("machine: unsupported emulation state (%s) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForCycles runs the emulation until the host clock has advanced by the
// number of cycles, or until continueCheck() returns govern.Ending. The
// continueCheck() function is called after every quantum with the number of
// cycles that remain.
func (m *Machine) RunForCycles(cycles uint64, continueCheck func(remaining uint64) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(_ uint64) (govern.State, error) { return govern.Running, nil }
	}

	state := govern.Running
	for cycles > 0 && state != govern.Ending {
		n := uint64(Quantum)
		if n > cycles {
			n = cycles
		}

		if state == govern.Running {
			if err := m.advance(n); err != nil {
				return err
			}
			cycles -= n
		}

		var err error
		state, err = continueCheck(cycles)
		if err != nil {
			return err
		}
	}

	return nil
}
