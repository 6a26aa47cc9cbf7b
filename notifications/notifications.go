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

package notifications

// Notice describes events that somehow change the presentation of the
// emulation. These notifications can be used to present additional information
// to the user
type Notice string

// List of defined notifications.
const (
	// the activity LED on the front of the drive
	NotifyDriveLEDOn  Notice = "NotifyDriveLEDOn"
	NotifyDriveLEDOff Notice = "NotifyDriveLEDOff"

	// the spindle motor of the drive
	NotifyDriveMotorOn  Notice = "NotifyDriveMotorOn"
	NotifyDriveMotorOff Notice = "NotifyDriveMotorOff"

	// the motor of the datasette is switched by the CPU port
	NotifyTapeMotorOn  Notice = "NotifyTapeMotorOn"
	NotifyTapeMotorOff Notice = "NotifyTapeMotorOff"

	// the end of the tape has been reached and the buttons released
	NotifyTapeEnded Notice = "NotifyTapeEnded"

	// a cartridge has been attached or detached and the machine reset
	NotifyCartridgeChanged Notice = "NotifyCartridgeChanged"
)

// Notify is used for direct communication between the hardware and the
// front end of the emulation. Notify is called from the emulation goroutine
// and should return quickly.
type Notify interface {
	Notify(notice Notice) error
}

// NotifyFunc adapts a function to the Notify interface.
type NotifyFunc func(notice Notice) error

// Notify implements the Notify interface.
func (fn NotifyFunc) Notify(notice Notice) error {
	return fn(notice)
}
