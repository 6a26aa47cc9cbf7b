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

// Package input handles the keyboard and joysticks of the C64.
//
// Input can arrive from any goroutine. Events are pushed onto a queue and
// take effect when Commit() is called by the emulation, which happens at the
// start of every step. Once committed, the state is seen directly by reads
// of the CIA1 ports, through the ReadRows() and ReadColumns() functions.
//
// The keyboard is an 8x8 matrix. The rows are selected by the value written
// to port A of CIA1 and the pressed keys in the selected rows are read from
// port B. The matrix can also be scanned the other way round and both
// directions are supported.
//
// The RESTORE key is not part of the matrix. It is connected to the NMI line
// and pressing it is reported to the RestoreHook given to NewInput().
//
// Committed events can be passed to an EventRecorder and events can be played
// back from an EventPlayback. Together these allow a session to be repeated
// exactly.
package input
