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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and sub
// modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package, with
// some differences. Namely, that Parse() returns a ParseResult and any errors
// that were encountered.
//
//	md := Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	cycles := md.AddUint64("cycles", 0, "number of host cycles to run")
//	p, err := md.Parse()
//	switch p {
//	case ParseHelp:
//		// help message has already been printed
//		return
//	case ParseError:
//		fmt.Println(err)
//		return
//	}
//
// Sub-modes are added with AddSubModes() before calling Parse(). The first
// sub-mode is the default. After a successful Parse() the Mode() function
// returns the selected sub-mode. Calling NewMode() prepares the Modes
// instance for the arguments of the selected sub-mode:
//
//	md.AddSubModes("RUN", "SNAPSHOT", "DUMP")
//	md.Parse()
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		rom := md.AddString("rom", "", "drive ROM image")
//		md.Parse()
//	}
//
// The Path() function returns every mode encountered so far, separated by a
// forward slash. For example, "RUN" or "DUMP".
//
// Sub-modes are case insensitive. Help is printed automatically when the -help
// or -h flag is found and lists the flags and available sub-modes for the
// current mode.
package modalflag
