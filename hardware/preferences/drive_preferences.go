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

package preferences

import (
	"fmt"

	"github.com/jetsetilly/gopher64/prefs"
)

// DrivePreferences defines the preferences for the 1541 disk drive.
type DrivePreferences struct {
	// drive is powered on
	Enabled prefs.Bool

	// a parallel cable connects the user port to the drive
	ParallelCable prefs.Bool

	// the device number of the drive on the serial bus
	Device prefs.Int
}

func newDrivePreferences() (*DrivePreferences, error) {
	p := &DrivePreferences{}
	p.Device.SetHookPre(func(v prefs.Value) error {
		if n := v.(int); n < 8 || n > 11 {
			return fmt.Errorf("preferences: drive device number must be between 8 and 11")
		}
		return nil
	})
	return p, nil
}

// SetDefaults reverts the drive preferences to the default values.
func (p *DrivePreferences) SetDefaults() {
	_ = p.Enabled.Set(true)
	_ = p.ParallelCable.Set(false)
	_ = p.Device.Set(DefaultDriveDevice)
}
