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

package sid

import (
	"fmt"
	"slices"

	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
)

// Register offsets of the registers that are referred to by name.
const (
	ModeVolume = 0x18
	PotX       = 0x19
	PotY       = 0x1a
	Osc3       = 0x1b
	Env3       = 0x1c

	NumRegisters = 0x1d
	registerMask = 0x1f
)

// the number of cycles the value on the data bus survives after a write
const busDecay = 0x1d00

// DefaultSampleRate is the rate at which samples are produced if SetSampleRate()
// has not been called.
const DefaultSampleRate = 44100

// SampleSink receives audio samples in the range 0.0 to 1.0.
type SampleSink interface {
	Sample(v float32)
}

// SampleSinkFunc adapts a function to the SampleSink interface.
type SampleSinkFunc func(v float32)

// Sample implements the SampleSink interface.
func (fn SampleSinkFunc) Sample(v float32) {
	fn(v)
}

// SinkID identifies a sink added with AddSampleSink().
type SinkID int

type sampleSink struct {
	id   SinkID
	sink SampleSink
}

// SID is a single sound chip.
type SID struct {
	label string
	sched *scheduler.Scheduler

	regs [NumRegisters]uint8

	// last value written to the chip and the cycle it was written
	bus      uint8
	busCycle uint64

	sampleRate uint64
	clock      clocks.Rate
	frac       uint64
	sinks      []sampleSink
	nextID     SinkID
	handle     scheduler.Handle
}

// NewSID is the preferred method of initialisation for the SID type.
func NewSID(label string, sched *scheduler.Scheduler, clock clocks.Rate) *SID {
	return &SID{
		label:      label,
		sched:      sched,
		clock:      clock,
		sampleRate: DefaultSampleRate,
	}
}

// Label implements the scheduler.Event interface.
func (sid *SID) Label() string {
	return sid.label
}

func (sid *SID) String() string {
	return fmt.Sprintf("%s: volume=%d", sid.label, sid.Volume())
}

// Reset the chip. Registers are cleared and sample generation restarts.
func (sid *SID) Reset() {
	sid.regs = [NumRegisters]uint8{}
	sid.bus = 0
	sid.busCycle = 0
	sid.restart()
}

// SetClock changes the clock rate of the chip. Sample generation is adjusted
// to keep the sample rate constant.
func (sid *SID) SetClock(clock clocks.Rate) {
	sid.clock = clock
	sid.restart()
}

// SetSampleRate changes the number of samples produced per second.
func (sid *SID) SetSampleRate(rate int) {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	sid.sampleRate = uint64(rate)
	sid.restart()
}

// SampleRate returns the number of samples produced per second.
func (sid *SID) SampleRate() int {
	return int(sid.sampleRate)
}

// AddSampleSink registers a sink for the audio output of the chip. The
// returned SinkID is used to remove the sink.
func (sid *SID) AddSampleSink(sink SampleSink) SinkID {
	sid.nextID++
	sid.sinks = append(sid.sinks, sampleSink{id: sid.nextID, sink: sink})
	if len(sid.sinks) == 1 {
		sid.restart()
	}
	return sid.nextID
}

// RemoveSampleSink removes a previously added sink. Removing a sink that
// has already been removed does nothing.
func (sid *SID) RemoveSampleSink(id SinkID) {
	sid.sinks = slices.DeleteFunc(sid.sinks, func(s sampleSink) bool {
		return s.id == id
	})
	if len(sid.sinks) == 0 {
		sid.sched.Cancel(sid.handle)
	}
}

func (sid *SID) restart() {
	sid.sched.Cancel(sid.handle)
	sid.frac = 0
	if len(sid.sinks) > 0 && sid.clock.Valid() {
		sid.scheduleNext()
	}
}

// the sample period is clock/sampleRate cycles. the remainder is carried
// from one sample to the next so that the long term rate is exact
func (sid *SID) scheduleNext() {
	num := sid.clock.Num + sid.frac
	den := sid.clock.Den * sid.sampleRate
	sid.frac = num % den
	delay := num / den
	if delay == 0 {
		delay = 1
	}
	sid.handle = sid.sched.Schedule(sid, delay, scheduler.PHI2)
}

// Fire implements the scheduler.Event interface.
func (sid *SID) Fire() {
	sid.scheduleNext()
	v := float32(sid.Volume()) / 15
	for _, s := range sid.sinks {
		s.sink.Sample(v)
	}
}

// Volume returns the setting of the master volume DAC.
func (sid *SID) Volume() uint8 {
	return sid.regs[ModeVolume] & 0x0f
}

// Registers returns a copy of the register file.
func (sid *SID) Registers() [NumRegisters]uint8 {
	return sid.regs
}

// Read implements the memory.Bank interface. The chip is mirrored every 32
// bytes.
func (sid *SID) Read(address uint16) uint8 {
	switch reg := address & registerMask; reg {
	case PotX, PotY:
		// no paddles are connected
		return 0xff
	case Osc3, Env3:
		return 0x00
	}

	// write only registers return the value on the data bus, which fades
	if sid.sched.Cycles()-sid.busCycle >= busDecay {
		sid.bus = 0
	}
	return sid.bus
}

// Write implements the memory.Bank interface.
func (sid *SID) Write(address uint16, data uint8) {
	sid.bus = data
	sid.busCycle = sid.sched.Cycles()

	reg := address & registerMask
	if reg < NumRegisters {
		sid.regs[reg] = data
	}
}
