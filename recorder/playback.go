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
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/input"
)

// Playback is used to reperform the user input recorded in a previously
// recorded file. It implements the input.EventPlayback interface.
type Playback struct {
	transcript string

	// the clock and program named in the header of the recording
	Clock   string
	Program string

	sequence []input.TimedEvent
	seqCt    int
}

func (plb Playback) String() string {
	if len(plb.sequence) == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", plb.seqCt, len(plb.sequence), 100*(float64(plb.seqCt)/float64(len(plb.sequence))))
}

// NewPlayback is the preferred method of implementation for the Playback type.
func NewPlayback(transcript string) (*Playback, error) {
	plb := &Playback{
		transcript: transcript,
	}

	buffer, err := os.ReadFile(transcript)
	if err != nil {
		return nil, fmt.Errorf("playback: %w", err)
	}

	// convert file contents to an array of lines
	lines := strings.Split(strings.TrimRight(string(buffer), "\n"), "\n")

	// read header and perform validation checks
	if err := plb.readHeader(lines); err != nil {
		return nil, err
	}

	var last uint64
	for i := numHeaderLines; i < len(lines); i++ {
		toks := strings.Split(lines[i], fieldSep)
		if len(toks) != numFields {
			return nil, fmt.Errorf("playback: expected %d fields at line %d", numFields, i+1)
		}

		var v [numFields]uint64
		for f, t := range toks {
			v[f], err = strconv.ParseUint(t, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("playback: %s line %d: %w", transcript, i+1, err)
			}
		}

		if v[fieldCycle] < last {
			return nil, fmt.Errorf("playback: %s line %d: event is earlier than the previous event", transcript, i+1)
		}
		last = v[fieldCycle]

		ev := input.TimedEvent{
			Cycle: v[fieldCycle],
			Event: input.Event{
				Kind:     input.EventKind(v[fieldKind]),
				Key:      input.Key(v[fieldKey]),
				Port:     int(v[fieldPort]),
				Joystick: input.Joystick(v[fieldJoystick]),
			},
		}
		plb.sequence = append(plb.sequence, ev)
	}

	return plb, nil
}

// Validate checks that the recording was made with the clock rate.
func (plb *Playback) Validate(rate clocks.Rate) error {
	if plb.Clock != rate.String() {
		return fmt.Errorf("playback: %s: recording was made with a %s clock not %s", plb.transcript, plb.Clock, rate)
	}
	return nil
}

// GetPlayback implements the input.EventPlayback interface.
func (plb *Playback) GetPlayback() (input.TimedEvent, bool, error) {
	if plb.seqCt >= len(plb.sequence) {
		return input.TimedEvent{}, false, nil
	}
	ev := plb.sequence[plb.seqCt]
	plb.seqCt++
	return ev, true, nil
}

// EndCycle returns the cycle of the last event in the recording.
func (plb *Playback) EndCycle() uint64 {
	if len(plb.sequence) == 0 {
		return 0
	}
	return plb.sequence[len(plb.sequence)-1].Cycle
}
