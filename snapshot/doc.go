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

// Package snapshot implements the container format used to save and restore
// the state of the emulation.
//
// A snapshot is a sequence of modules. Each module has a name of up to 16
// characters, a major and minor version number, and a payload. On disk a
// module is the name (padded with NUL bytes to 16 bytes), the major and minor
// version bytes, the size of the payload as a 32 bit little-endian value, and
// then the payload itself.
//
// Payload values are written with the B(), W(), DW() and QW() functions of the
// Module type and read back with the ReadB(), ReadW(), ReadDW() and ReadQW()
// functions. All multi-byte values are little-endian. Read errors are sticky:
// once a module has been read past its end every subsequent read returns
// zero and the Err() function returns ErrTruncated.
//
// Reading a module with a newer version than the reader supports results in a
// VersionError, which matches VersionUnsupported with errors.Is(). A module
// with a different major version is also refused.
package snapshot
