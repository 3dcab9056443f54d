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

package prefs_test

import (
	"testing"

	"github.com/jetsetilly/gopher1541/prefs"
	"github.com/jetsetilly/gopher1541/test"
)

func TestCommandLineStackValues(t *testing.T) {
	// empty on start
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	prefs.PushCommandLineStack("drive8.model::1571")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "drive8.model::1571")

	// additional space is trimmed
	prefs.PushCommandLineStack("   drive8.model:: 1571 ")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "drive8.model::1571")

	// remaining entries are sorted
	prefs.PushCommandLineStack("drive8.turbo::true; drive8.model::1571")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "drive8.model::1571; drive8.turbo::true")

	// invalid entries are ignored
	prefs.PushCommandLineStack("drive8_model")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	prefs.PushCommandLineStack("drive8_model;drive9.model::1581")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "drive9.model::1581")

	// consumed values are not returned by the pop
	prefs.PushCommandLineStack("drive8.model::1571;drive8_turbo")
	ok, _ := prefs.GetCommandLinePref("drive8.turbo")
	test.ExpectFailure(t, ok)
	ok, v := prefs.GetCommandLinePref("drive8.model")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value("1571"))
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestCommandLineStack(t *testing.T) {
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)

	prefs.PushCommandLineStack("foo::bar")
	prefs.PushCommandLineStack("baz::qux")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 2)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux")

	// first group still exists
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
}
