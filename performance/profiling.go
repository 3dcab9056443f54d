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

package performance

import (
	"strings"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/pkg/profile"
)

// Profile specifies which profile is to be generated by RunProfiler().
type Profile int

// List of valid Profile values.
const (
	ProfileNone Profile = iota
	ProfileCPU
	ProfileMem
	ProfileTrace
	ProfileBlock
	ProfileMutex
)

var profileNames = []string{"NONE", "CPU", "MEM", "TRACE", "BLOCK", "MUTEX"}

// ParseProfile returns the Profile value for the profile name. The empty
// string is the same as NONE.
func ParseProfile(s string) (Profile, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ProfileNone, nil
	}
	for i, n := range profileNames {
		if n == s {
			return Profile(i), nil
		}
	}
	return ProfileNone, curated.Errorf("performance: unknown profile type (%s)", s)
}

func (p Profile) String() string {
	if int(p) < len(profileNames) {
		return profileNames[p]
	}
	return "unknown profile"
}

// RunProfiler runs the supplied function through the profiler specified by
// the Profile argument. The profile is written to a directory named after the
// profile type and prefixed with filenameHeader.
//
// Only one profile can be running at any one time.
func RunProfiler(p Profile, filenameHeader string, run func() error) error {
	var mode func(*profile.Profile)

	switch p {
	case ProfileNone:
		return run()
	case ProfileCPU:
		mode = profile.CPUProfile
	case ProfileMem:
		mode = profile.MemProfile
	case ProfileTrace:
		mode = profile.TraceProfile
	case ProfileBlock:
		mode = profile.BlockProfile
	case ProfileMutex:
		mode = profile.MutexProfile
	default:
		return curated.Errorf("performance: unknown profile type (%d)", p)
	}

	pth := strings.ToLower(filenameHeader + "_" + p.String())
	prf := profile.Start(mode, profile.ProfilePath(pth), profile.Quiet, profile.NoShutdownHook)
	defer prf.Stop()

	return run()
}
