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

// Package prefs facilitates the storage of preferential values in the
// emulation. It is used for hardware options that the user might want to
// change between sessions, such as the video standard or whether the disk
// drive is attached.
//
// Preference values are one of the Bool, String or Int types.
// Values are safe to read and write from more than one goroutine.
//
// Values are collated by the Disk type and saved to a text file, one value
// per line, in the form:
//
//	key :: value
//
// A preferences file can be shared by more than one Disk instance. Values
// that are not known to a Disk instance are preserved when it is saved.
//
// Command line overrides for a single session can be pushed onto a stack with
// PushCommandLineStack(). A value found on the stack is used in preference to
// the value on disk when the preference is added to a Disk instance.
package prefs
