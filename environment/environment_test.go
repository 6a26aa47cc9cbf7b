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

package environment_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/environment"
	"github.com/jetsetilly/gopher64/hardware/preferences"
	"github.com/jetsetilly/gopher64/notifications"
	"github.com/jetsetilly/gopher64/test"
)

func TestNotify(t *testing.T) {
	p, err := preferences.NewVolatilePreferences()
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(nil, p)
	test.DemandSuccess(t, err)

	// no recipient
	test.ExpectSuccess(t, env.Notify(notifications.NotifyTapeEnded))

	var received []notifications.Notice
	env.Notifications = notifications.NotifyFunc(func(n notifications.Notice) error {
		received = append(received, n)
		return nil
	})
	test.ExpectSuccess(t, env.Notify(notifications.NotifyDriveLEDOn))
	test.DemandEquality(t, len(received), 1)
	test.ExpectEquality(t, received[0], notifications.NotifyDriveLEDOn)

	// only the main emulation sends notifications
	env.Label = "other"
	test.ExpectSuccess(t, env.Notify(notifications.NotifyDriveLEDOff))
	test.ExpectEquality(t, len(received), 1)

	var nilEnv *environment.Environment
	test.ExpectSuccess(t, nilEnv.Notify(notifications.NotifyDriveLEDOff))
}
