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

package clockguard_test

import (
	"testing"

	"github.com/jetsetilly/gopher1541/hardware/clockguard"
	"github.com/jetsetilly/gopher1541/test"
)

func TestNoRebase(t *testing.T) {
	var clk uint64 = 1000
	g := clockguard.New(&clk, clockguard.DefaultHighWater)
	test.ExpectEquality(t, g.Chunk(), uint64(clockguard.DefaultChunk))

	called := false
	g.Register(func(_ uint64) {
		called = true
	})

	test.ExpectEquality(t, g.MaybeRebase(), uint64(0))
	test.ExpectEquality(t, clk, uint64(1000))
	test.ExpectFailure(t, called)

	// exactly at the high-water mark is not over it
	clk = clockguard.DefaultHighWater
	test.ExpectEquality(t, g.MaybeRebase(), uint64(0))
}

func TestRebase(t *testing.T) {
	var clk uint64 = 1100
	g := clockguard.NewWithChunk(&clk, 1000, 500)

	// a value relative to the clock, as a drive's bookmark would be
	var bookmark uint64 = 900
	var order []int

	g.Register(func(sub uint64) {
		bookmark -= sub
		order = append(order, 1)
	})
	g.Register(func(sub uint64) {
		order = append(order, 2)
	})

	diff := clk - bookmark

	test.ExpectEquality(t, g.MaybeRebase(), uint64(500))
	test.ExpectEquality(t, clk, uint64(600))
	test.ExpectEquality(t, bookmark, uint64(400))
	test.ExpectEquality(t, clk-bookmark, diff)
	test.ExpectEquality(t, len(order), 2)
	test.ExpectEquality(t, order[0], 1)
	test.ExpectEquality(t, order[1], 2)

	// clock is now below the high-water mark
	test.ExpectEquality(t, g.MaybeRebase(), uint64(0))
}

func TestIllegalChunk(t *testing.T) {
	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()
	var clk uint64
	clockguard.NewWithChunk(&clk, 100, 200)
}
