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

// Package environment provides the context shared by every part of an
// emulation instance.
package environment

import (
	"github.com/jetsetilly/gopher64/hardware/preferences"
	"github.com/jetsetilly/gopher64/logger"
	"github.com/jetsetilly/gopher64/notifications"
	"github.com/jetsetilly/gopher64/random"
)

// Label is used to name the environment.
type Label string

// MainEmulation is the label of the emulation the user is interacting with.
const MainEmulation = Label("")

// Environment is used to provide context for an emulation. Particularly
// useful when more than one emulation is running, for example a C64 and a
// drive emulation that must share preferences and randomness.
type Environment struct {
	Label Label

	// any randomisation required by the emulation should be retrieved
	// through this structure
	Random *random.Random

	// the emulation preferences
	Prefs *preferences.Preferences

	// notifications from the hardware are forwarded to this implementation
	// of the Notify interface. can be nil
	Notifications notifications.Notify
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
//
// The clock can be nil and plumbed into the Random field later. The prefs
// argument can also be nil, in which case a new Preferences instance will be
// created. Providing a non-nil value allows the preferences of more than one
// emulation to be synchronised.
func NewEnvironment(clk random.Clock, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Random: random.NewRandom(clk),
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in a known default state. Useful for
// regression testing where the initial state must be the same for every run.
func (env *Environment) Normalise() {
	env.Random.ZeroSeed = true
	env.Prefs.SetDefaults()
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system.
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// AllowLogging satisfies the logger.Permission interface. Only the main
// emulation is allowed to log.
func (env *Environment) AllowLogging() bool {
	if env == nil {
		return true
	}
	return env.IsMainEmulation()
}

// Notify implements the notifications.Notify interface. The notice is
// forwarded to the Notifications field. Notifications from an emulation other
// than the main emulation are ignored.
func (env *Environment) Notify(notice notifications.Notice) error {
	if env == nil || env.Notifications == nil || !env.IsMainEmulation() {
		return nil
	}
	return env.Notifications.Notify(notice)
}

var _ logger.Permission = (*Environment)(nil)
var _ notifications.Notify = (*Environment)(nil)
