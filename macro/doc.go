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

// Package macro drives the emulation from a Lua script.
//
// A macro file is a Lua program whose first line is the header comment:
//
//	-- gopher64macro
//
// The following functions are available to the script in addition to the
// base, string, table and math libraries:
//
//	press(key)              hold down the named key
//	release(key)            release the named key
//	type(text)              type the text one character at a time
//	joystick(port, state)   set the joystick, eg. joystick(2, "up+fire")
//	restore()               press the RESTORE key
//	wait([frames])          pause for the number of frames (default 60)
//	frame()                 the number of the most recent frame
//	quit()                  end the macro and ask the emulation to stop
//
// Key names are those of the C64 keyboard, eg. "A", "RETURN", "F1" or "C=".
//
// Input functions are followed by a short wait of two frames so that the
// change has a chance to be seen by the program running in the emulation.
//
// Any error in a macro results in a log entry and the termination of the
// macro.
package macro
