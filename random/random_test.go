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

package random_test

import (
	"testing"

	"github.com/jetsetilly/gopher1541/random"
	"github.com/jetsetilly/gopher1541/test"
)

type clock uint64

func (c *clock) Clock() uint64 {
	return uint64(*c)
}

func TestRandom(t *testing.T) {
	var clk clock
	rnd := random.NewRandom(&clk)
	rnd.ZeroSeed = true

	// same clock gives the same number
	a := rnd.IntN(1000)
	test.ExpectEquality(t, rnd.IntN(1000), a)

	a = rnd.IntN(0xffff)
	b := make([]uint8, 256)
	rnd.Fill(b)

	// a second generator at the same clock agrees with the first
	rnd2 := random.NewRandom(&clk)
	rnd2.ZeroSeed = true
	test.ExpectEquality(t, rnd2.IntN(0xffff), a)
	c := make([]uint8, 256)
	rnd2.Fill(c)
	test.ExpectEquality(t, string(c), string(b))

	// every value in range
	for i := range 100 {
		clk = clock(i)
		v := rnd.IntN(10)
		test.ExpectSuccess(t, v >= 0 && v < 10)
	}
}
