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

package cia

import (
	"fmt"

	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
)

// the writable bits of each TOD register
var todMask = [4]uint8{0x0f, 0x7f, 0x7f, 0x9f}

// tod is the time of day clock. The registers are BCD encoded tenths of a
// second, seconds, minutes and hours. Bit 7 of the hours register is the PM
// flag.
type tod struct {
	cia   *CIA
	label string

	rate  clocks.Rate
	mains uint64

	// the remainder of the tick period calculation
	frac uint64

	clock [4]uint8
	alarm [4]uint8
	latch [4]uint8

	// reading the hours register latches the clock until the tenths register
	// is read
	latched bool

	// writing the hours register stops the clock until the tenths register is
	// written
	stopped bool

	handle scheduler.Handle
}

func (t *tod) String() string {
	return fmt.Sprintf("%02x:%02x:%02x.%x", t.clock[3], t.clock[2], t.clock[1], t.clock[0])
}

// Label implements the scheduler.Event interface.
func (t *tod) Label() string {
	return t.label
}

// Fire implements the scheduler.Event interface.
func (t *tod) Fire() {
	t.scheduleNext()
	if t.stopped {
		return
	}
	t.tick()
	if t.alarm == t.clock {
		t.cia.trigger(InterruptAlarm)
	}
}

func (t *tod) reset() {
	t.cia.sched.Cancel(t.handle)
	t.clock = [4]uint8{0, 0, 0, 1}
	t.alarm = [4]uint8{}
	t.latch = [4]uint8{}
	t.latched = false
	t.stopped = true
	t.frac = 0
	t.scheduleNext()
}

// scheduleNext schedules the next tenth of a second. The TOD input is the
// mains frequency and CRA bit 7 selects whether five or six pulses make a
// tenth of a second.
func (t *tod) scheduleNext() {
	pulses := uint64(6)
	if t.cia.a.cr&0x80 == 0x80 {
		pulses = 5
	}

	mains := t.mains
	if mains == 0 {
		mains = clocks.PALGeometry.Mains
	}

	num := pulses*t.rate.Num + t.frac
	den := t.rate.Den * mains
	t.frac = num % den
	t.handle = t.cia.sched.Schedule(t, num/den, scheduler.PHI1)
}

func bcd2byte(v uint8) uint8 {
	return (v>>4)*10 + v&0x0f
}

func byte2bcd(v uint8) uint8 {
	return (v/10)<<4 | v%10
}

func (t *tod) tick() {
	v := bcd2byte(t.clock[0]) + 1
	t.clock[0] = byte2bcd(v % 10)
	if v < 10 {
		return
	}

	v = bcd2byte(t.clock[1]) + 1
	t.clock[1] = byte2bcd(v % 60)
	if v < 60 {
		return
	}

	v = bcd2byte(t.clock[2]) + 1
	t.clock[2] = byte2bcd(v % 60)
	if v < 60 {
		return
	}

	pm := t.clock[3] & 0x80
	hr := t.clock[3] & 0x1f
	switch hr {
	case 0x11:
		pm ^= 0x80
		hr = 0x12
	case 0x12:
		hr = 0x01
	case 0x09:
		hr = 0x10
	default:
		hr++
	}
	t.clock[3] = hr&0x1f | pm
}

func (t *tod) read(reg int) uint8 {
	if !t.latched {
		t.latch = t.clock
	}
	switch reg {
	case 0:
		t.latched = false
	case 3:
		t.latched = true
	}
	return t.latch[reg]
}

func (t *tod) write(reg int, data uint8, alarm bool) {
	data &= todMask[reg]

	// the PM flag flips when 12 is written to the hours of the clock
	if reg == 3 && data&0x1f == 0x12 && !alarm {
		data ^= 0x80
	}

	if alarm {
		t.alarm[reg] = data
	} else {
		switch reg {
		case 0:
			t.stopped = false
		case 3:
			t.stopped = true
		}
		t.clock[reg] = data
	}

	if !t.stopped && t.alarm == t.clock {
		t.cia.trigger(InterruptAlarm)
	}
}
