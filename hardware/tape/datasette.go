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

// Package tape implements the datasette. The tape is a list of pulse lengths
// measured in CPU cycles. While the motor is running each pulse is delivered
// to the FLAG input of CIA1 by an event on the scheduler.
//
// The datasette is connected to the CPU port. The motor is switched by bit 5
// of the port, bit 4 senses whether a button is pressed and bit 3 is the
// write line. Recording is supported by measuring the time between rising
// edges of the write line.
package tape

import (
	"fmt"

	"github.com/jetsetilly/gopher64/hardware/scheduler"
	"github.com/jetsetilly/gopher64/logger"
	"github.com/jetsetilly/gopher64/notifications"
)

// FlagSink is the FLAG input of CIA1.
type FlagSink interface {
	SetFlag(low bool)
}

// SenseSink is told when the sense line changes.
type SenseSink interface {
	TapeSenseChanged()
}

// the length of the low part of a pulse in cycles
const pulseWidth = 8

// Datasette is the C2N tape unit.
type Datasette struct {
	label string
	log   logger.Permission
	sched *scheduler.Scheduler
	flag   FlagSink
	sense  SenseSink
	notify notifications.Notify

	pulses []uint32
	pos    int

	playing   bool
	recording bool
	motor     bool

	// cycles left of the current pulse when the motor stopped
	remaining uint64

	// the pulse is currently low
	low bool

	// the cycle the high part of the current pulse ends
	due uint64

	// cycle of the last rising edge of the write line
	lastWrite  uint64
	writeHigh  bool
	writeValid bool

	handle scheduler.Handle
}

// NewDatasette is the preferred method of initialisation for the Datasette type.
func NewDatasette(label string, log logger.Permission, sched *scheduler.Scheduler, flag FlagSink) *Datasette {
	return &Datasette{
		label: label,
		log:   log,
		sched: sched,
		flag:  flag,
	}
}

// Plumb the datasette into the sense line of the CPU port.
func (d *Datasette) Plumb(sense SenseSink) {
	d.sense = sense
}

// SetNotify sets the recipient of motor and end of tape notifications. Can
// be nil.
func (d *Datasette) SetNotify(notify notifications.Notify) {
	d.notify = notify
}

func (d *Datasette) notice(notice notifications.Notice) {
	if d.notify == nil {
		return
	}
	if err := d.notify.Notify(notice); err != nil {
		logger.Log(d.log, "tape", err)
	}
}

// Label implements the scheduler.Event interface.
func (d *Datasette) Label() string {
	return d.label
}

func (d *Datasette) String() string {
	state := "stopped"
	if d.recording {
		state = "recording"
	} else if d.playing {
		state = "playing"
	}
	return fmt.Sprintf("%s: %s, motor=%v, counter=%d/%d", d.label, state, d.motor, d.pos, len(d.pulses))
}

// Reset stops the datasette. The tape stays where it is.
func (d *Datasette) Reset() {
	d.sched.Cancel(d.handle)
	d.remaining = 0
	d.motor = false
	d.low = false
	d.writeValid = false
	d.setButtons(false, false)
}

func (d *Datasette) setButtons(playing, recording bool) {
	changed := d.playing != playing
	d.playing = playing
	d.recording = recording
	if changed && d.sense != nil {
		d.sense.TapeSenseChanged()
	}
	d.update()
}

// Insert a tape. The tape is rewound.
func (d *Datasette) Insert(pulses []uint32) {
	d.Stop()
	d.pulses = pulses
	d.pos = 0
	logger.Logf(d.log, "tape", "inserted tape with %d pulses", len(pulses))
}

// Eject the tape.
func (d *Datasette) Eject() {
	d.Stop()
	d.pulses = nil
	d.pos = 0
}

// Play presses the play button.
func (d *Datasette) Play() error {
	if d.pulses == nil {
		return fmt.Errorf("tape: no tape inserted")
	}
	d.setButtons(true, false)
	return nil
}

// Record presses the record and play buttons. Anything on the tape after the
// current position is lost.
func (d *Datasette) Record() error {
	if d.pulses == nil {
		d.pulses = []uint32{}
	}
	d.pulses = d.pulses[:d.pos]
	d.writeValid = false
	d.setButtons(true, true)
	return nil
}

// Stop releases the buttons.
func (d *Datasette) Stop() {
	d.setButtons(false, false)
}

// Rewind the tape to the start.
func (d *Datasette) Rewind() {
	d.Stop()
	d.pos = 0
	d.remaining = 0
}

// Counter returns the position of the tape as a number of pulses.
func (d *Datasette) Counter() int {
	return d.pos
}

// Pulses returns the contents of the tape.
func (d *Datasette) Pulses() []uint32 {
	return d.pulses
}

// Playing returns true if the play button is pressed.
func (d *Datasette) Playing() bool {
	return d.playing
}

// Motor returns true if the motor is running.
func (d *Datasette) Motor() bool {
	return d.motor
}

// TapeSense implements the memory.PortHook interface.
func (d *Datasette) TapeSense() bool {
	return d.playing
}

// SetMotor implements the memory.PortHook interface.
func (d *Datasette) SetMotor(on bool) {
	if on != d.motor {
		if on {
			d.notice(notifications.NotifyTapeMotorOn)
		} else {
			d.notice(notifications.NotifyTapeMotorOff)
		}
	}
	d.motor = on
	d.update()
}

// SetTapeWrite implements the memory.PortHook interface.
func (d *Datasette) SetTapeWrite(high bool) {
	rising := high && !d.writeHigh
	d.writeHigh = high

	if !rising || !d.recording || !d.motor {
		return
	}

	now := d.sched.Cycles()
	if d.writeValid {
		d.pulses = append(d.pulses, uint32(now-d.lastWrite))
		d.pos = len(d.pulses)
	}
	d.lastWrite = now
	d.writeValid = true
}

// start or stop the pulse event depending on the state of the motor and the
// buttons
func (d *Datasette) update() {
	running := d.motor && d.playing && !d.recording
	pending := d.sched.IsPending(d.handle)

	if running && !pending {
		d.next()
	} else if !running && pending {
		d.sched.Cancel(d.handle)
		if d.low {
			d.low = false
			d.flag.SetFlag(false)
			d.pos++
			d.remaining = 0
		} else {
			d.remaining = d.due - d.sched.Now(scheduler.PHI1) + pulseWidth
		}
	}
}

// schedule the end of the current pulse
func (d *Datasette) next() {
	if d.pos >= len(d.pulses) {
		logger.Logf(d.log, "tape", "end of tape")
		d.Stop()
		d.notice(notifications.NotifyTapeEnded)
		return
	}

	delay := d.remaining
	if delay == 0 {
		delay = uint64(d.pulses[d.pos])
	}
	d.remaining = 0
	if delay <= pulseWidth {
		delay = pulseWidth + 1
	}
	d.due = d.sched.Now(scheduler.PHI1) + delay - pulseWidth
	d.handle = d.sched.Schedule(d, delay-pulseWidth, scheduler.PHI1)
}

// Fire implements the scheduler.Event interface. The end of each pulse is a
// short low period on the read line.
func (d *Datasette) Fire() {
	if !d.low {
		d.low = true
		d.flag.SetFlag(true)
		d.handle = d.sched.Schedule(d, pulseWidth, scheduler.PHI1)
		return
	}

	d.low = false
	d.flag.SetFlag(false)
	d.pos++
	d.next()
}
