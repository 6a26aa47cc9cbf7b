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

package recorder

import (
	"fmt"
	"strings"
)

// recording file format
// ---------------------
//
// gopher64recording
// <clock name>
// <program name>
// <cycle>, <event kind>, <key>, <port>, <joystick>
// ...

const headerID = "gopher64recording"

const (
	lineID int = iota
	lineClock
	lineProgram
	numHeaderLines
)

const (
	fieldCycle int = iota
	fieldKind
	fieldKey
	fieldPort
	fieldJoystick
	numFields
)

const fieldSep = ", "

// the program line of a recording with no program
const noProgram = "-"

func (rec *Recorder) writeHeader(clock string, program string) error {
	if program == "" {
		program = noProgram
	}

	lines := make([]string, numHeaderLines)
	lines[lineID] = headerID
	lines[lineClock] = clock
	lines[lineProgram] = program

	_, err := fmt.Fprintln(rec.output, strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	return nil
}

func (plb *Playback) readHeader(lines []string) error {
	if len(lines) < numHeaderLines {
		return fmt.Errorf("playback: %s: not a recording", plb.transcript)
	}
	if lines[lineID] != headerID {
		return fmt.Errorf("playback: %s: not a recording", plb.transcript)
	}

	plb.Clock = lines[lineClock]
	plb.Program = lines[lineProgram]
	if plb.Program == noProgram {
		plb.Program = ""
	}

	return nil
}
