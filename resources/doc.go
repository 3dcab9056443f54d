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

// Package resources contains functions to prepare paths for gopher1541
// resources.
//
// The resources directory is ".gopher1541" in the current working directory if
// it exists. Otherwise it is the "gopher1541" directory in the user's
// configuration directory (see os.UserConfigDir() for details).
//
// JoinPath() creates the resources directory, and any intermediate
// directories, as required. The last element of the path is assumed to be a
// file and is not created.
package resources
