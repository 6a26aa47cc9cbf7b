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

package drive

import (
	"github.com/jetsetilly/gopher64/hardware/scheduler"
)

// cycles per second of the drive's clock
const driveClock = 1000000

// bits per second for each of the four density settings
var bitRate = [4]uint64{250000, 266667, 285714, 307692}

// the last ten bits read are all ones
const syncMark = 0x3ff

// rotation is the disk spinning under the head. bits are moved between the
// track and the shift registers lazily whenever the disk controller is
// accessed, and an event is scheduled for the cycle in which the next byte
// will be complete so that the byte ready signal arrives on time.
type rotation struct {
	dc    *diskController
	label string

	running bool

	// bit rate accumulator. one bit has passed under the head for every
	// driveClock in the accumulator
	accum uint64
	last  uint64

	// position of the head in bits from the start of the track
	pos int

	// read shift register and the number of bits in the current byte
	shift uint16
	bits  int

	// write shift register
	out uint8

	handle scheduler.Handle
}

// Label implements the scheduler.Event interface.
func (r *rotation) Label() string {
	return r.label
}

// Fire implements the scheduler.Event interface.
func (r *rotation) Fire() {
	r.rotate()
	r.schedule()
}

func (r *rotation) reset() {
	r.running = false
	r.accum = 0
	r.last = r.dc.drv.sched.Cycles()
	r.shift = 0
	r.bits = 0
	r.out = 0
}

func (r *rotation) start() {
	if r.running {
		return
	}
	r.running = true
	r.last = r.dc.drv.sched.Cycles()
	r.schedule()
}

func (r *rotation) stop() {
	r.running = false
	r.dc.drv.sched.Cancel(r.handle)
}

func (r *rotation) reschedule() {
	if !r.running {
		return
	}
	r.dc.drv.sched.Cancel(r.handle)
	r.schedule()
}

// schedule the event for the cycle in which the current byte will be complete
func (r *rotation) schedule() {
	rate := bitRate[r.dc.zone]
	need := uint64(8-r.bits)*driveClock - r.accum
	delay := max((need+rate-1)/rate, 1)
	r.handle = r.dc.drv.sched.Schedule(r, delay, scheduler.PHI1)
}

// move the head to the equivalent position on a track of a different size
func (r *rotation) rescale(from, to int) {
	if from == 0 || to == 0 {
		r.pos = 0
		return
	}
	r.pos = r.pos * to / from
	if r.pos >= to*8 {
		r.pos = 0
	}
}

func (r *rotation) sync() bool {
	return r.shift == syncMark
}

// bring the head up to date with the drive's clock
func (r *rotation) rotate() {
	now := r.dc.drv.sched.Cycles()
	if !r.running {
		r.last = now
		return
	}
	if now <= r.last {
		return
	}

	r.accum += bitRate[r.dc.zone] * (now - r.last)
	r.last = now
	for r.accum >= driveClock {
		r.accum -= driveClock
		if r.dc.writeMode {
			r.writeBit()
		} else {
			r.readBit()
		}
	}
}

func (r *rotation) advance() {
	r.pos++
	if r.pos >= len(r.dc.track)*8 {
		r.pos = 0
	}
}

func (r *rotation) readBit() {
	var bit uint16
	if len(r.dc.track) > 0 {
		bit = uint16(r.dc.track[r.pos>>3]>>(7-r.pos&7)) & 0x01
		r.advance()
	}

	r.shift = (r.shift<<1 | bit) & syncMark

	// the read electronics never see more than three zeros in a row. a
	// missing flux transition is replaced with a one
	if r.shift&0x0f == 0 {
		r.shift |= 0x01
	}

	if r.sync() {
		r.bits = 0
		return
	}

	r.bits++
	if r.bits == 8 {
		r.bits = 0
		r.dc.gcrRead = uint8(r.shift)
		r.dc.signalByte()
	}
}

func (r *rotation) writeBit() {
	if len(r.dc.track) > 0 {
		if !r.dc.writeProtected() {
			mask := uint8(0x80) >> (r.pos & 7)
			if r.out&0x80 == 0x80 {
				r.dc.track[r.pos>>3] |= mask
			} else {
				r.dc.track[r.pos>>3] &^= mask
			}
			r.dc.dirty = true
		}
		r.advance()
	}

	r.shift = 0
	r.out <<= 1
	r.bits++
	if r.bits == 8 {
		r.bits = 0
		r.out = r.dc.gcrWrite
		r.dc.signalByte()
	}
}
