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

package resources

import (
	"os"
	"path/filepath"

	"github.com/jetsetilly/gopher1541/curated"
)

const baseResourceDir = ".gopher1541"

// JoinPath prepends the supplied path with the path to the resources
// directory. Directories are created as required.
func JoinPath(path ...string) (string, error) {
	base, err := basePath()
	if err != nil {
		return "", curated.Errorf("resources: %v", err)
	}

	p := filepath.Join(append([]string{base}, path...)...)

	dir := p
	if len(path) > 0 {
		dir = filepath.Dir(p)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", curated.Errorf("resources: %v", err)
	}

	return p, nil
}

func basePath() (string, error) {
	if info, err := os.Stat(baseResourceDir); err == nil && info.IsDir() {
		return baseResourceDir, nil
	}

	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, baseResourceDir[1:]), nil
}
