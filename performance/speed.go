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

import "github.com/jetsetilly/gopher1541/hardware/clocks"

// CalcSpeed takes the number of host cycles and the duration (in seconds) and
// returns the number of host cycles per second and the accuracy of that value
// as a percentage of the real host clock for the video standard.
func CalcSpeed(standard string, cycles uint64, duration float64) (hz float64, accuracy float64) {
	hz = float64(cycles) / duration
	accuracy = 100 * hz / float64(clocks.Host(standard))
	return hz, accuracy
}
