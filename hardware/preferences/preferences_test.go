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

package preferences_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/preferences"
	"github.com/jetsetilly/gopher64/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewVolatilePreferences()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.FallOffCycles(), uint64(preferences.DefaultFallOff))
	test.ExpectEquality(t, p.ClockRate(), clocks.PAL)
	test.ExpectEquality(t, p.AutostartDelay.Get().(int), preferences.DefaultAutostartDelay)
	test.ExpectEquality(t, p.Drive.Device.Get().(int), 8)
}

func TestLiveValues(t *testing.T) {
	p, err := preferences.NewVolatilePreferences()
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, p.FallOff.Set("1000"))
	test.ExpectEquality(t, p.FallOffCycles(), uint64(1000))

	test.ExpectFailure(t, p.FallOff.Set(-1))
	test.ExpectEquality(t, p.FallOffCycles(), uint64(1000))
}

func TestValidation(t *testing.T) {
	p, err := preferences.NewVolatilePreferences()
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, p.Clock.Set("SECAM"))
	test.ExpectEquality(t, p.Clock.String(), "PAL")
	test.ExpectSuccess(t, p.Clock.Set("ntsc"))
	test.ExpectEquality(t, p.ClockRate(), clocks.NTSC)

	test.ExpectFailure(t, p.Drive.Device.Set(4))
	test.ExpectSuccess(t, p.Drive.Device.Set(9))

	// no disk so save and load are quietly successful
	test.ExpectSuccess(t, p.Save())
	test.ExpectSuccess(t, p.Load())
}
