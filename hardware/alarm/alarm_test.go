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

package alarm_test

import (
	"testing"

	"github.com/jetsetilly/gopher1541/hardware/alarm"
	"github.com/jetsetilly/gopher1541/test"
)

func TestDispatchOrder(t *testing.T) {
	ctx := alarm.NewContext("drive 8")
	test.ExpectEquality(t, ctx.NextPending(), uint64(alarm.Never))

	var fired []string
	var offsets []uint64

	a := ctx.New("a", func(offset uint64) {
		fired = append(fired, "a")
		offsets = append(offsets, offset)
	})
	b := ctx.New("b", func(offset uint64) {
		fired = append(fired, "b")
		offsets = append(offsets, offset)
	})

	a.Set(200)
	b.Set(100)
	test.ExpectEquality(t, ctx.NextPending(), uint64(100))

	ctx.Dispatch(99)
	test.ExpectEquality(t, len(fired), 0)

	ctx.Dispatch(250)
	test.ExpectEquality(t, len(fired), 2)
	test.ExpectEquality(t, fired[0], "b")
	test.ExpectEquality(t, fired[1], "a")
	test.ExpectEquality(t, offsets[0], uint64(150))
	test.ExpectEquality(t, offsets[1], uint64(50))

	test.ExpectFailure(t, a.Pending())
	test.ExpectEquality(t, ctx.NextPending(), uint64(alarm.Never))
}

func TestRearm(t *testing.T) {
	ctx := alarm.NewContext("drive 8")

	count := 0
	var a *alarm.Alarm
	a = ctx.New("free running", func(offset uint64) {
		count++
		a.Set(a.Clock() + 10)
	})

	a.Set(10)
	ctx.Dispatch(35)

	// alarms at 10, 20 and 30 have fired. the next is at 40
	test.ExpectEquality(t, count, 3)
	test.ExpectEquality(t, ctx.NextPending(), uint64(40))

	a.Unset()
	test.ExpectEquality(t, ctx.NextPending(), uint64(alarm.Never))
}

func TestRebase(t *testing.T) {
	ctx := alarm.NewContext("drive 8")
	a := ctx.New("a", func(_ uint64) {})
	b := ctx.New("b", func(_ uint64) {})

	a.Set(1000)
	b.Set(50)
	ctx.Rebase(100)

	test.ExpectEquality(t, a.Clock(), uint64(900))
	test.ExpectEquality(t, b.Clock(), uint64(0))
	test.ExpectEquality(t, ctx.NextPending(), uint64(0))

	ctx.UnsetAll()
	test.ExpectEquality(t, ctx.NextPending(), uint64(alarm.Never))
}
