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

package clocks_test

import (
	"testing"

	"github.com/jetsetilly/gopher1541/hardware/clocks"
	"github.com/jetsetilly/gopher1541/test"
)

func TestClocks(t *testing.T) {
	test.ExpectEquality(t, clocks.Host("NTSC"), clocks.NTSC)
	test.ExpectEquality(t, clocks.Host("PAL"), clocks.PAL)
	test.ExpectEquality(t, clocks.Host(""), clocks.PAL)
	test.ExpectEquality(t, clocks.Frame("PAL"), 19656)
	test.ExpectEquality(t, clocks.Frame("NTSC"), 17095)
}
