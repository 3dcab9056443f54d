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

package preferences

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher1541/curated"
	"github.com/jetsetilly/gopher1541/prefs"
)

// MaxDrives is the number of drive slots. Drives are numbered from
// FirstDevice.
const MaxDrives = 4

// FirstDevice is the device number of the first drive slot.
const FirstDevice = 8

// Values for the IdleMethod preference.
const (
	IdleNone = "none"
	IdleTrap = "trap"
	IdleSkip = "skip"
)

// Models lists the valid values for the Model preference.
var Models = []string{"1541", "1541-II", "1570", "1571", "1581", "2031"}

// Values for the BusVariant preference.
const (
	BusAuto     = "auto"
	BusATNAck   = "ack"
	BusPullOnly = "pull"
)

// Values for the VideoStandard preference.
const (
	PAL  = "PAL"
	NTSC = "NTSC"
)

// Default values for machine preferences.
const (
	DefaultWakeThreshold  = 0xffffff
	DefaultGuardHighWater = 1 << 62
)

// DrivePreferences are the preference values for a single drive slot.
type DrivePreferences struct {
	Enabled       prefs.Bool
	Model         prefs.String
	Turbo         prefs.Bool
	ParallelCable prefs.Bool
	BusVariant    prefs.String
}

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk

	VideoStandard prefs.String

	// how a drive behaves when it is idling in the ROM's main loop
	IdleMethod prefs.String

	// a drive that hasn't been run for this many host cycles skips the
	// intervening cycles rather than catching up
	WakeThreshold prefs.Int

	// the clock value that triggers a rebase of the clock counters
	GuardHighWater prefs.Int

	// fill drive RAM with random values on hard reset
	RandomState prefs.Bool

	Drives [MaxDrives]DrivePreferences
}

func (p *Preferences) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "video: %s, idle: %s", p.VideoStandard.String(), p.IdleMethod.String())
	for i := range p.Drives {
		d := &p.Drives[i]
		if d.Enabled.Get().(bool) {
			fmt.Fprintf(&s, ", drive %d: %s", FirstDevice+i, d.Model.String())
		}
	}
	return s.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. If pth is the empty string then the preferences are not associated
// with a file and the Load() and Save() functions will fail.
func NewPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}

	p.IdleMethod.SetHookPre(validator("idle method", IdleNone, IdleTrap, IdleSkip))
	p.VideoStandard.SetHookPre(validator("video standard", PAL, NTSC))
	p.GuardHighWater.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 2 {
			return curated.Errorf("preferences: clock guard high-water too low (%d)", v)
		}
		return nil
	})
	for i := range p.Drives {
		p.Drives[i].BusVariant.SetHookPre(validator("bus variant", BusAuto, BusATNAck, BusPullOnly))
		p.Drives[i].Model.SetHookPre(validator("drive model", Models...))
	}

	p.SetDefaults()

	if pth == "" {
		return p, nil
	}

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	add := func(key string, v interface {
		Set(prefs.Value) error
		Get() prefs.Value
		Reset() error
		String() string
	}) {
		if err == nil {
			err = p.dsk.Add(key, v)
		}
	}

	add("hardware.video", &p.VideoStandard)
	add("hardware.idle", &p.IdleMethod)
	add("hardware.wakethreshold", &p.WakeThreshold)
	add("hardware.clockguard.highwater", &p.GuardHighWater)
	add("hardware.randstate", &p.RandomState)
	for i := range p.Drives {
		d := &p.Drives[i]
		dev := FirstDevice + i
		add(fmt.Sprintf("drive%d.enabled", dev), &d.Enabled)
		add(fmt.Sprintf("drive%d.model", dev), &d.Model)
		add(fmt.Sprintf("drive%d.turbo", dev), &d.Turbo)
		add(fmt.Sprintf("drive%d.parallel", dev), &d.ParallelCable)
		add(fmt.Sprintf("drive%d.bus", dev), &d.BusVariant)
	}
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// hook function that refuses values that are not in the list
func validator(name string, valid ...string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		s := v.(string)
		for _, m := range valid {
			if s == m {
				return nil
			}
		}
		return curated.Errorf("preferences: unrecognised %s (%s)", name, s)
	}
}

// SetDefaults resets all preferences to their default values. Post-hooks are
// called as normal.
func (p *Preferences) SetDefaults() {
	_ = p.VideoStandard.Set(PAL)
	_ = p.IdleMethod.Set(IdleTrap)
	_ = p.WakeThreshold.Set(DefaultWakeThreshold)
	_ = p.GuardHighWater.Set(DefaultGuardHighWater)
	_ = p.RandomState.Set(false)
	for i := range p.Drives {
		d := &p.Drives[i]
		_ = d.Enabled.Set(i == 0)
		_ = d.Model.Set("1541")
		_ = d.Turbo.Set(false)
		_ = d.ParallelCable.Set(false)
		_ = d.BusVariant.Set(BusAuto)
	}
}

// Clone returns a copy of the preference values. The copy is not associated
// with a file and has no post-hooks.
func (p *Preferences) Clone() *Preferences {
	c, _ := NewPreferences("")
	_ = c.VideoStandard.Set(p.VideoStandard.Get())
	_ = c.IdleMethod.Set(p.IdleMethod.Get())
	_ = c.WakeThreshold.Set(p.WakeThreshold.Get())
	_ = c.GuardHighWater.Set(p.GuardHighWater.Get())
	_ = c.RandomState.Set(p.RandomState.Get())
	for i := range p.Drives {
		_ = c.Drives[i].Enabled.Set(p.Drives[i].Enabled.Get())
		_ = c.Drives[i].Model.Set(p.Drives[i].Model.Get())
		_ = c.Drives[i].Turbo.Set(p.Drives[i].Turbo.Get())
		_ = c.Drives[i].ParallelCable.Set(p.Drives[i].ParallelCable.Get())
		_ = c.Drives[i].BusVariant.Set(p.Drives[i].BusVariant.Get())
	}
	return c
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return curated.Errorf("preferences: no preferences file")
	}
	return p.dsk.Load(false)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return curated.Errorf("preferences: no preferences file")
	}
	return p.dsk.Save()
}
