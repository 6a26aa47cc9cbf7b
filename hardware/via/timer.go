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

package via

import "github.com/jetsetilly/gopher64/hardware/scheduler"

// timer is one of the two timers of the VIA. The counter always counts down
// and wraps from zero to 0xffff. The underflow event is scheduled only while
// the timer is armed.
type timer struct {
	via   *VIA
	label string
	bit   uint8

	latch uint16

	// the cycle on which the counter next reaches 0xffff
	next uint64

	// the cycle of the most recent underflow
	last uint64

	handle scheduler.Handle
}

// Label implements the scheduler.Event interface.
func (t *timer) Label() string {
	return t.label
}

// Fire implements the scheduler.Event interface.
func (t *timer) Fire() {
	now := t.via.sched.Cycles()
	t.last = now

	if t.bit == InterruptT1 {
		if t.via.t1Underflow() {
			// free running mode reloads the latch. the reload takes two cycles
			t.next = now + uint64(t.latch) + 2
			t.handle = t.via.sched.ScheduleAbsolute(t, t.next, scheduler.PHI1)
			return
		}
	} else {
		t.via.setFlags(t.bit)
	}

	// one-shot timers continue to count down from 0xffff without further
	// interrupts
	t.next = now + 0x10000
}

func (t *timer) reset() {
	t.via.sched.Cancel(t.handle)
	t.latch = 0xffff
	t.next = t.via.sched.Cycles() + 0x10000
	t.last = 0
}

// load the counter and arm the timer.
func (t *timer) load(now uint64, counter uint16) {
	t.via.sched.Cancel(t.handle)
	t.next = now + uint64(counter) + 1
	t.handle = t.via.sched.ScheduleAbsolute(t, t.next, scheduler.PHI1)
}

func (t *timer) value(now uint64) uint16 {
	if now == t.last && t.last != 0 {
		return 0xffff
	}
	return uint16(t.next - 1 - now)
}
