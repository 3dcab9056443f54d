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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern:
//
//	e := curated.Errorf("drive: unsupported model (%s)", model)
//
//	if curated.Is(e, "drive: unsupported model (%s)") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
// The Error() function ensures that the error chain is normalised. That is,
// the chain does not contain duplicate adjacent parts. For example, wrapping
// an error that begins with "snapshot" in the pattern "snapshot: %v" will not
// result in the string "snapshot: snapshot: ...".
//
// Curated errors implement Unwrap() so errors.Is() and errors.As() from the
// standard library see through them. This is how typed errors, such as the
// drive package's JamError, are found after being wrapped.
package curated
