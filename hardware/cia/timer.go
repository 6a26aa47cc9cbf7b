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

	"github.com/jetsetilly/gopher64/hardware/scheduler"
)

// bits in the control registers that are common to both timers
const (
	crStart   uint8 = 0x01
	crPBOn    uint8 = 0x02
	crToggle  uint8 = 0x04
	crOneShot uint8 = 0x08
	crLoad    uint8 = 0x10
)

// timer is one of the two interval timers of the CIA.
type timer struct {
	cia   *CIA
	label string

	// bit in the ICR set on underflow
	bit uint8

	latch uint16

	// the value of the counter at the start cycle. the current value is
	// calculated from the number of cycles since the start cycle
	counter uint16
	start   uint64

	cr uint8

	// state of the PB output in toggle mode
	pb bool

	// the cycle of the most recent underflow. used for the PB output in
	// pulse mode
	lastUnderflow uint64
	underflowed   bool

	handle scheduler.Handle
}

func (t *timer) String() string {
	return fmt.Sprintf("%04x/%04x", t.value(t.cia.now()), t.latch)
}

// Label implements the scheduler.Event interface.
func (t *timer) Label() string {
	return t.label
}

// Fire implements the scheduler.Event interface.
func (t *timer) Fire() {
	t.underflow(t.cia.now())
}

func (t *timer) reset() {
	t.cia.sched.Cancel(t.handle)
	t.latch = 0xffff
	t.counter = 0xffff
	t.start = 0
	t.cr = 0
	t.pb = false
	t.underflowed = false
}

func (t *timer) isB() bool {
	return t == &t.cia.b
}

// clocked returns true if the timer is counting PHI2 cycles.
func (t *timer) clocked() bool {
	if t.cr&crStart == 0 {
		return false
	}
	if t.isB() {
		return t.cr&0x60 == 0x00
	}
	return t.cr&0x20 == 0x00
}

// cascaded returns true if the timer is counting the underflows of timer A.
func (t *timer) cascaded() bool {
	return t.isB() && t.cr&crStart != 0 && t.cr&0x40 == 0x40
}

func (t *timer) value(now uint64) uint16 {
	if !t.clocked() || now < t.start {
		return t.counter
	}
	elapsed := now - t.start
	if elapsed > uint64(t.counter) {
		return 0
	}
	return t.counter - uint16(elapsed)
}

// sync brings the counter up to date with the current cycle.
func (t *timer) sync(now uint64) {
	t.counter = t.value(now)
	t.start = now
}

// schedule the underflow event for a timer that is counting cycles.
func (t *timer) schedule(now uint64) {
	t.cia.sched.Cancel(t.handle)
	if t.clocked() {
		t.handle = t.cia.sched.ScheduleAbsolute(t, now+uint64(t.counter)+1, scheduler.PHI1)
	}
}

func (t *timer) underflow(now uint64) {
	t.counter = t.latch
	t.start = now
	t.pb = !t.pb
	t.lastUnderflow = now
	t.underflowed = true

	if t.cr&crOneShot == crOneShot {
		t.cr &^= crStart
	}

	t.cia.trigger(t.bit)

	if !t.isB() {
		t.cia.serialShift()
		if t.cia.b.cascaded() {
			t.cia.b.count(now)
		}
	}

	t.schedule(now)
}

// count is used when timer B is counting the underflows of timer A.
func (t *timer) count(now uint64) {
	if t.counter == 0 {
		t.underflow(now)
		return
	}
	t.counter--
}

// output returns the state of the PB6/PB7 output of the timer. The ok value
// is false if the output is not enabled.
func (t *timer) output(now uint64) (uint8, bool) {
	if t.cr&crPBOn == 0 {
		return 0, false
	}
	if t.cr&crToggle == crToggle {
		if t.pb {
			return 1, true
		}
		return 0, true
	}
	if t.underflowed && t.lastUnderflow == now {
		return 1, true
	}
	return 0, true
}

func (t *timer) setLatch(_ uint64, latch uint16) {
	t.latch = latch
}

// setLatchHigh also loads the counter if the timer is stopped.
func (t *timer) setLatchHigh(now uint64, data uint8) {
	t.latch = uint16(data)<<8 | t.latch&0x00ff
	if t.cr&crStart == 0 {
		t.sync(now)
		t.counter = t.latch
	}
}

func (t *timer) setControl(now uint64, data uint8) {
	t.sync(now)

	// starting the timer resets the toggle output
	if data&crStart == crStart && t.cr&crStart == 0 {
		t.pb = true
	}

	// the force load bit is a strobe and is never stored
	if data&crLoad == crLoad {
		t.counter = t.latch
	}
	t.cr = data &^ crLoad

	t.start = now
	t.schedule(now)
}
