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

// EventKind is the type of an input Event.
type EventKind int

// List of valid EventKind values.
const (
	NoEvent EventKind = iota
	KeyPress
	KeyRelease
	ReleaseAll
	Restore
	JoystickState
)

func (k EventKind) String() string {
	switch k {
	case KeyPress:
		return "press"
	case KeyRelease:
		return "release"
	case ReleaseAll:
		return "release all"
	case Restore:
		return "restore"
	case JoystickState:
		return "joystick"
	}
	return "none"
}

// Event is a single change to the input state.
type Event struct {
	Kind EventKind

	// key for KeyPress and KeyRelease events
	Key Key

	// port and state for JoystickState events
	Port     int
	Joystick Joystick
}

func (ev Event) String() string {
	switch ev.Kind {
	case KeyPress, KeyRelease:
		return fmt.Sprintf("%s %s", ev.Kind, ev.Key)
	case JoystickState:
		return fmt.Sprintf("%s %d %s", ev.Kind, ev.Port, ev.Joystick)
	}
	return ev.Kind.String()
}

// Clock is the source of the time stamps for recorded events.
type Clock interface {
	Cycles() uint64
}

// RestoreHook is called when the RESTORE key is pressed.
type RestoreHook func()

// the number of events that can be waiting for Commit()
const pushedQueueLength = 256

// Input is the keyboard and joystick state of the machine.
type Input struct {
	clock   Clock
	restore RestoreHook

	pushed chan Event

	// pressed keys. indexed by port A bit, with a port B bit set for every
	// pressed key in that column
	keys [8]uint8

	joysticks [2]Joystick

	recorder EventRecorder
	playback EventPlayback
	next     TimedEvent
	hasNext  bool
}

// NewInput is the preferred method of initialisation for the Input type.
func NewInput(clock Clock, restore RestoreHook) *Input {
	return &Input{
		clock:   clock,
		restore: restore,
		pushed:  make(chan Event, pushedQueueLength),
	}
}

// Reset releases every key and centres both joysticks. Events waiting to be
// committed are discarded.
func (inp *Input) Reset() {
	inp.keys = [8]uint8{}
	inp.joysticks = [2]Joystick{}
	for {
		select {
		case <-inp.pushed:
		default:
			return
		}
	}
}

// PushEvent adds an event to the queue. It is safe to call from any
// goroutine. Will drop the event and return an error if queue is full.
func (inp *Input) PushEvent(ev Event) error {
	select {
	case inp.pushed <- ev:
	default:
		return fmt.Errorf("input: pushed event queue is full: %s dropped", ev)
	}
	return nil
}

// Press a key. Safe to call from any goroutine.
func (inp *Input) Press(k Key) error {
	return inp.PushEvent(Event{Kind: KeyPress, Key: k})
}

// Release a key. Safe to call from any goroutine.
func (inp *Input) Release(k Key) error {
	return inp.PushEvent(Event{Kind: KeyRelease, Key: k})
}

// Restore presses the RESTORE key. Safe to call from any goroutine.
func (inp *Input) Restore() error {
	return inp.PushEvent(Event{Kind: Restore})
}

// SetJoystick changes the state of the joystick in the control port. Safe to
// call from any goroutine.
func (inp *Input) SetJoystick(port int, state Joystick) error {
	if port != Port1 && port != Port2 {
		return fmt.Errorf("input: no such control port (%d)", port)
	}
	return inp.PushEvent(Event{Kind: JoystickState, Port: port, Joystick: state})
}

// Commit applies all the events that have been pushed since the last call to
// Commit(), followed by any playback events that are due. Must only be called
// by the goroutine running the emulation.
func (inp *Input) Commit() error {
	done := false
	for !done {
		select {
		case ev := <-inp.pushed:
			if inp.playback != nil {
				continue
			}
			if err := inp.handle(ev); err != nil {
				return err
			}
		default:
			done = true
		}
	}
	return inp.handlePlayback()
}

func (inp *Input) handle(ev Event) error {
	switch ev.Kind {
	case KeyPress:
		inp.keys[ev.Key.Column()] |= 1 << ev.Key.Row()
	case KeyRelease:
		inp.keys[ev.Key.Column()] &^= 1 << ev.Key.Row()
	case ReleaseAll:
		inp.keys = [8]uint8{}
	case Restore:
		if inp.restore != nil {
			inp.restore()
		}
	case JoystickState:
		inp.joysticks[ev.Port-1] = ev.Joystick
	default:
		return nil
	}

	if inp.recorder != nil {
		var cycle uint64
		if inp.clock != nil {
			cycle = inp.clock.Cycles()
		}
		if err := inp.recorder.RecordEvent(TimedEvent{Cycle: cycle, Event: ev}); err != nil {
			return fmt.Errorf("input: %w", err)
		}
	}
	return nil
}

// IsPressed returns true if the key is currently pressed.
func (inp *Input) IsPressed(k Key) bool {
	return inp.keys[k.Column()]&(1<<k.Row()) != 0
}

// ReadRows returns the value seen on port B of CIA1 when the value on port A
// is columns. A clear bit in columns selects a column and a pressed key in a
// selected column pulls its port B bit low.
func (inp *Input) ReadRows(columns uint8) uint8 {
	v := uint8(0xff)
	for c := range inp.keys {
		if columns&(1<<c) == 0 {
			v &^= inp.keys[c]
		}
	}
	return v
}

// ReadColumns returns the value seen on port A of CIA1 when the value on port
// B is rows. This is the keyboard matrix scanned in the opposite direction to
// ReadRows().
func (inp *Input) ReadColumns(rows uint8) uint8 {
	v := uint8(0xff)
	for c, k := range inp.keys {
		if k&^rows != 0 {
			v &^= 1 << c
		}
	}
	return v
}

// Joystick returns the value of the control port lines for the joystick.
// Closed switches pull their line low.
func (inp *Input) Joystick(port int) uint8 {
	if port != Port1 && port != Port2 {
		return 0xff
	}
	return ^uint8(inp.joysticks[port-1])
}
