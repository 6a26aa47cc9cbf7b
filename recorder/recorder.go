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
	"bufio"
	"fmt"
	"os"

	"github.com/jetsetilly/gopher64/hardware/input"
)

// Recorder transcribes input events to a file. It implements the
// input.EventRecorder interface.
type Recorder struct {
	transcript string
	file       *os.File
	output     *bufio.Writer
}

// NewRecorder is the preferred method of implementation for the Recorder type.
// The clock and program arguments are written to the header of the
// recording. The program can be the empty string.
func NewRecorder(transcript string, clock string, program string) (*Recorder, error) {
	f, err := os.Create(transcript)
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}

	rec := &Recorder{
		transcript: transcript,
		file:       f,
		output:     bufio.NewWriter(f),
	}

	if err := rec.writeHeader(clock, program); err != nil {
		f.Close()
		return nil, err
	}

	return rec, nil
}

// RecordEvent implements the input.EventRecorder interface.
func (rec *Recorder) RecordEvent(ev input.TimedEvent) error {
	if rec.file == nil {
		return fmt.Errorf("recorder: %s: recording has ended", rec.transcript)
	}

	_, err := fmt.Fprintf(rec.output, "%d%s%d%s%d%s%d%s%d\n",
		ev.Cycle, fieldSep,
		ev.Kind, fieldSep,
		ev.Key, fieldSep,
		ev.Port, fieldSep,
		ev.Joystick)
	if err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	return nil
}

// End flushes all remaining events to the transcript file.
func (rec *Recorder) End() error {
	if rec.file == nil {
		return nil
	}

	err := rec.output.Flush()
	if cerr := rec.file.Close(); err == nil {
		err = cerr
	}
	rec.file = nil

	if err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	return nil
}
