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

package random

import (
	"math/rand/v2"
	"time"
)

// the base seed for all random numbers
var baseSeed uint64

func init() {
	baseSeed = uint64(time.Now().UnixNano())
}

// Clock is the source of the time component of every seed.
type Clock interface {
	Clock() uint64
}

// Random is a random number generator that is sensitive to time within the
// emulation.
type Random struct {
	clock Clock

	// use zero seed rather than the random base seed
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(clock Clock) *Random {
	return &Random{
		clock: clock,
	}
}

func (rnd *Random) rand(stream uint64) *rand.Rand {
	seed := rnd.clock.Clock()
	if !rnd.ZeroSeed {
		seed += baseSeed
	}
	return rand.New(rand.NewPCG(seed, stream))
}

// IntN returns a number in the range [0, n). The same value is returned for
// the same n at the same clock.
func (rnd *Random) IntN(n int) int {
	return rnd.rand(uint64(n)).IntN(n)
}

// Fill the slice with random bytes.
func (rnd *Random) Fill(b []uint8) {
	r := rnd.rand(uint64(len(b)))
	for i := range b {
		b[i] = uint8(r.Uint32())
	}
}
