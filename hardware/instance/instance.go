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

// Package instance defines those parts of the emulation that might change from
// instance to instance of the Machine type, but is not actually the Machine
// itself.
//
// Particularly useful when running more than one instance of the emulation in
// parallel. For example, when comparing a machine restored from a snapshot
// with the machine that created the snapshot.
package instance

import (
	"github.com/jetsetilly/gopher1541/hardware/preferences"
	"github.com/jetsetilly/gopher1541/random"
)

// Label indicates the context of the instance.
type Label string

// List of valid Label values.
const (
	Main       Label = ""
	Comparison Label = "comparison"
)

// Instance defines those parts of the emulation that might change between
// different instantiations of the Machine type.
type Instance struct {
	Label Label

	Random *random.Random

	// the preferences of the running instance. this instance can be shared
	// with other running instances of the emulation
	Prefs *preferences.Preferences
}

// NewInstance is the preferred method of initialisation for the Instance type.
//
// The prefs argument can be nil, in which case default preferences that are
// not associated with a file are created.
func NewInstance(clock random.Clock, prefs *preferences.Preferences) (*Instance, error) {
	ins := &Instance{
		Random: random.NewRandom(clock),
	}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}
	ins.Prefs = prefs

	return ins, nil
}

// AllowLogging implements the logger.Permission interface. Only the main
// instance is allowed to log.
func (ins *Instance) AllowLogging() bool {
	return ins.Label == Main
}

// Normalise ensures the instance is in a known default state. Useful for
// testing where the initial state must be the same for every run.
func (ins *Instance) Normalise() {
	ins.Random.ZeroSeed = true
	ins.Prefs.SetDefaults()
}
