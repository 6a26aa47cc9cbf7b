// This file is part of Gopher64.
//
// Gopher64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher64.  If not, see <https://www.gnu.org/licenses/>.

// Package preferences contains the preference values that affect the
// emulated hardware.
package preferences

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/paths"
	"github.com/jetsetilly/gopher64/prefs"
)

// Default values for the hardware preferences.
const (
	DefaultFallOff        = 350000
	DefaultAutostartDelay = 2500000
	DefaultClock          = "PAL"
	DefaultDriveDevice    = 8
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk

	// initialise CPU registers and RAM to an unknown state on reset
	RandomState prefs.Bool
	RandomRAM   prefs.Bool

	// the number of cycles before bits 6 and 7 of the CPU port fall to zero
	// after they have been changed to inputs
	FallOff prefs.Int

	// the video standard. either PAL or NTSC
	Clock prefs.String

	// the number of cycles after reset before a loaded program is started
	AutostartDelay prefs.Int

	// datasette is attached to the cassette port
	TapeEnabled prefs.Bool

	Drive *DrivePreferences

	// live copy of FallOff for use in the bank decode layer
	liveFallOff atomic.Uint64
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return ""
	}
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the default preferences file.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	return newPreferences(pth)
}

// NewVolatilePreferences creates a Preferences instance that is never saved
// to or loaded from disk. Useful for tests and for secondary emulations.
func NewVolatilePreferences() (*Preferences, error) {
	return newPreferences("")
}

func newPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}

	p.FallOff.SetHookPost(func(v prefs.Value) error {
		n := v.(int)
		if n < 0 {
			n = 0
		}
		p.liveFallOff.Store(uint64(n))
		return nil
	})
	p.FallOff.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return fmt.Errorf("preferences: fall-off cycles cannot be negative")
		}
		return nil
	})
	p.Clock.SetHookPre(func(v prefs.Value) error {
		_, err := clocks.ParseRate(v.(string))
		return err
	})

	var err error
	p.Drive, err = newDrivePreferences()
	if err != nil {
		return nil, err
	}

	p.SetDefaults()

	if pth == "" {
		return p, nil
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	for _, e := range []struct {
		key string
		p   any
	}{
		{"hardware.randstate", &p.RandomState},
		{"hardware.randram", &p.RandomRAM},
		{"hardware.falloff", &p.FallOff},
		{"hardware.clock", &p.Clock},
		{"hardware.autostartdelay", &p.AutostartDelay},
		{"tape.enabled", &p.TapeEnabled},
		{"drive.enabled", &p.Drive.Enabled},
		{"drive.parallelcable", &p.Drive.ParallelCable},
		{"drive.device", &p.Drive.Device},
	} {
		if err := addToDisk(p.dsk, e.key, e.p); err != nil {
			return nil, err
		}
	}

	err = p.dsk.Load(true)
	if err != nil && !errors.Is(err, prefs.NoPrefsFile) {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	return p, nil
}

func addToDisk(dsk *prefs.Disk, key string, v any) error {
	var err error
	switch v := v.(type) {
	case *prefs.Bool:
		err = dsk.Add(key, v)
	case *prefs.Int:
		err = dsk.Add(key, v)
	case *prefs.String:
		err = dsk.Add(key, v)
	default:
		err = fmt.Errorf("unsupported preference type %T", v)
	}
	if err != nil {
		return fmt.Errorf("preferences: %w", err)
	}
	return nil
}

// SetDefaults reverts all hardware preferences to the default values.
func (p *Preferences) SetDefaults() {
	_ = p.RandomState.Set(false)
	_ = p.RandomRAM.Set(false)
	_ = p.FallOff.Set(DefaultFallOff)
	_ = p.Clock.Set(DefaultClock)
	_ = p.AutostartDelay.Set(DefaultAutostartDelay)
	_ = p.TapeEnabled.Set(true)
	p.Drive.SetDefaults()
}

// FallOffCycles returns the live value of the FallOff preference.
func (p *Preferences) FallOffCycles() uint64 {
	return p.liveFallOff.Load()
}

// ClockRate returns the clock rate named by the Clock preference.
func (p *Preferences) ClockRate() clocks.Rate {
	r, err := clocks.ParseRate(p.Clock.String())
	if err != nil {
		return clocks.PAL
	}
	return r
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load(false)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
