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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a failure but allow the test to continue.
// The Demand*() functions stop the test immediately.
//
// ExpectSuccess() and ExpectFailure() test for success and failure under
// generic conditions. A bool value of true is a success, as is a nil error.
// The nil type is considered a success because of how errors usually work.
//
// The optional tags arguments are prepended to the failure message and help
// identify which iteration of a table driven test has failed.
//
// CompareWriter and RingWriter implement the io.Writer interface and should be
// used to capture output.
package test
