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

// Package sdlwindow is a simple SDL window for the emulation. It draws the
// text screen of each frame using the character ROM and sends keyboard events
// to the emulation.
//
// The window MUST be created and serviced from the main thread. The
// emulation should be run in another goroutine. Frames are sent to the window
// through the vic.FrameSink interface, which is safe to call from the
// emulation goroutine.
//
// The host keyboard is mapped positionally where possible. The cursor keys
// move the cursor as they would on a PC keyboard and the keypad is the
// joystick in control port two, with keypad zero as the fire button. Page Up
// is the RESTORE key.
package sdlwindow
