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

package input

import (
	"fmt"
)

// TimedEvent is an event with the cycle it was committed on.
type TimedEvent struct {
	Cycle uint64
	Event
}

// EventRecorder implementations receive every committed event.
type EventRecorder interface {
	RecordEvent(TimedEvent) error
}

// EventPlayback implementations feed events back into the emulation. The ok
// value should be false when there are no more events.
type EventPlayback interface {
	GetPlayback() (ev TimedEvent, ok bool, err error)
}

// AttachRecorder attaches an EventRecorder implementation. The recorder can
// be nil in order to remove it.
func (inp *Input) AttachRecorder(r EventRecorder) error {
	if r != nil && inp.playback != nil {
		return fmt.Errorf("input: attach recorder: emulation already has a playback attached")
	}
	inp.recorder = r
	return nil
}

// AttachPlayback attaches an EventPlayback implementation. While a playback
// is attached pushed events are ignored. The playback can be nil in order to
// remove it.
func (inp *Input) AttachPlayback(pb EventPlayback) error {
	if pb != nil && inp.recorder != nil {
		return fmt.Errorf("input: attach playback: emulation already has a recorder attached")
	}
	inp.playback = pb
	inp.hasNext = false
	return nil
}

// handlePlayback applies every playback event that is due. there may be
// more than one event for the same cycle
func (inp *Input) handlePlayback() error {
	if inp.playback == nil {
		return nil
	}

	var now uint64
	if inp.clock != nil {
		now = inp.clock.Cycles()
	}

	for {
		if !inp.hasNext {
			ev, ok, err := inp.playback.GetPlayback()
			if err != nil {
				return fmt.Errorf("input: playback: %w", err)
			}
			if !ok {
				inp.playback = nil
				return nil
			}
			inp.next = ev
			inp.hasNext = true
		}

		if inp.next.Cycle > now {
			return nil
		}

		inp.hasNext = false
		if err := inp.handle(inp.next.Event); err != nil {
			return err
		}
	}
}

// Recording is a list of events that can be used as both an EventRecorder and
// an EventPlayback.
type Recording struct {
	Events []TimedEvent
	pos    int
}

// RecordEvent implements the EventRecorder interface.
func (rec *Recording) RecordEvent(ev TimedEvent) error {
	rec.Events = append(rec.Events, ev)
	return nil
}

// GetPlayback implements the EventPlayback interface.
func (rec *Recording) GetPlayback() (TimedEvent, bool, error) {
	if rec.pos >= len(rec.Events) {
		return TimedEvent{}, false, nil
	}
	ev := rec.Events[rec.pos]
	rec.pos++
	return ev, true, nil
}

// Rewind the recording so that it can be played back from the start.
func (rec *Recording) Rewind() {
	rec.pos = 0
}
