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

// Package logger is the central log for the emulation. Log entries are
// categorised by a tag, usually the name of the device making the entry (for
// example "drive 8" or "iecbus"), and a detail.
//
// Consecutive entries with the same tag and detail are collapsed into a single
// entry with a repeat count. The central log is bounded and the oldest entries
// are dropped once the maximum has been reached.
//
// Logging can be prohibited by the environment making the request through the
// Permission interface. The hardware instance implements Permission so that a
// machine used for comparison or for a test can be silenced. The Allow value
// should be used when a log entry should always be made.
//
// Local loggers can be created with NewLogger(). This is mainly useful for
// testing.
package logger
