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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/govern"
	"github.com/jetsetilly/gopher1541/hardware"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// the period before measurement begins. allows the drives to settle into
// their idle loops
const leadtime = 500 * time.Millisecond

// Check the performance of the emulator by running the machine as quickly as
// possible for the specified duration.
//
// The emulation will optionally create a profile as defined by the Profile
// argument.
func Check(output io.Writer, profile Profile, m *hardware.Machine, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	startClk := m.Clock()

	runner := func() error {
		// signals false when the leadtime has elapsed and true when the
		// measurement period has finished
		timerChan := make(chan bool, 2)

		go func() {
			time.AfterFunc(leadtime, func() {
				timerChan <- false
				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		// only check for end of measurement period every PerformanceBrake
		// quanta
		performanceBrake := 0

		return m.Run(func() (govern.State, error) {
			performanceBrake++
			if performanceBrake >= hardware.PerformanceBrake {
				performanceBrake = 0

				select {
				case v := <-timerChan:
					if v {
						return govern.Ending, timedOut
					}
					startClk = m.Clock()
				default:
				}
			}
			return govern.Running, nil
		})
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return curated.Errorf("performance: %v", err)
	}

	cycles := m.Clock() - startClk
	standard := m.Instance.Prefs.VideoStandard.String()
	hz, accuracy := CalcSpeed(standard, cycles, dur.Seconds())
	output.Write([]byte(fmt.Sprintf("%.0f Hz (%d cycles in %.2f seconds) %.1f%%\n", hz, cycles, dur.Seconds(), accuracy)))

	return nil
}
