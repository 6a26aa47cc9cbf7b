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

// Package notifications allow communication from the hardware directly to the
// front end of the emulation. This is useful, for example, to indicate that
// the activity LED of the drive has switched on or that the datasette motor
// has stopped.
//
// Notifications are sometimes passed onto the user to indicate the event
// that has happened (eg. tape stopped, etc.) For some notifications however,
// it is appropriate for the front end to deal with the notification
// invisibly.
package notifications
