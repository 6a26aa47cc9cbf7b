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

package vic_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
	"github.com/jetsetilly/gopher64/hardware/vic"
	"github.com/jetsetilly/gopher64/test"
)

type sink struct {
	state bool
	calls int
}

func (s *sink) Interrupt(state bool) {
	s.state = state
	s.calls++
}

type mem struct {
	ram   [0x4000]uint8
	color [0x400]uint8
}

func (m *mem) VICRead(address uint16) uint8 {
	return m.ram[address&0x3fff]
}

func (m *mem) VICColor(address uint16) uint8 {
	return m.color[address&0x3ff]
}

func newVIC() (*vic.VIC, *scheduler.Scheduler, *sink, *mem) {
	sched := scheduler.NewScheduler("test")
	s := &sink{}
	m := &mem{}
	v := vic.NewPAL("VIC", sched, m, s)
	v.Reset()
	return v, sched, s, m
}

func TestRaster(t *testing.T) {
	v, sched, _, _ := newVIC()
	test.ExpectEquality(t, v.Line(), 0)

	sched.RunUntil(63, scheduler.PHI2)
	test.ExpectEquality(t, v.Line(), 1)
	test.ExpectEquality(t, v.Cycle(), 0)
	test.ExpectEquality(t, v.Read(0xd012), uint8(1))

	// line 256 sets the high bit in $D011
	sched.RunUntil(63*256+10, scheduler.PHI2)
	test.ExpectEquality(t, v.Line(), 256)
	test.ExpectEquality(t, v.Cycle(), 10)
	test.ExpectEquality(t, v.Read(0xd012), uint8(0))
	test.ExpectEquality(t, v.Read(0xd011)&0x80, uint8(0x80))

	// frame wraps after 312 lines
	sched.RunUntil(63*312, scheduler.PHI2)
	test.ExpectEquality(t, v.Line(), 0)
	test.ExpectEquality(t, v.Frame(), 1)
}

func TestRasterInterrupt(t *testing.T) {
	v, sched, s, _ := newVIC()

	v.Write(0xd012, 10)
	v.Write(0xd01a, 0x01)
	test.ExpectEquality(t, s.state, false)

	sched.RunUntil(63*10-1, scheduler.PHI2)
	test.ExpectEquality(t, s.state, false)
	sched.RunUntil(63*10, scheduler.PHI2)
	test.ExpectEquality(t, s.state, true)
	test.ExpectEquality(t, v.Read(0xd019), uint8(0xf1))

	// acknowledge by writing a one to the latch bit
	v.Write(0xd019, 0x01)
	test.ExpectEquality(t, s.state, false)
	test.ExpectEquality(t, v.Read(0xd019), uint8(0x70))

	// changing the compare to the current line triggers immediately
	v.Write(0xd012, 11)
	v.Write(0xd012, 10)
	test.ExpectEquality(t, s.state, true)
}

func TestMaskedInterrupt(t *testing.T) {
	v, sched, s, _ := newVIC()

	v.Write(0xd012, 2)
	sched.RunUntil(63*3, scheduler.PHI2)
	test.ExpectEquality(t, s.state, false)
	test.ExpectEquality(t, v.Read(0xd019), uint8(0x71))

	// enabling the mask for a latched source asserts the line
	v.Write(0xd01a, 0x01)
	test.ExpectEquality(t, s.state, true)
	test.ExpectEquality(t, v.Read(0xd01a), uint8(0xf1))
}

func TestLightpen(t *testing.T) {
	v, sched, _, _ := newVIC()

	sched.RunUntil(63*50+20, scheduler.PHI2)
	v.TriggerLightpen()
	test.ExpectEquality(t, v.Read(0xd013), uint8(80))
	test.ExpectEquality(t, v.Read(0xd014), uint8(50))
	test.ExpectEquality(t, v.Read(0xd019)&0x08, uint8(0x08))

	// only latched once per frame
	sched.RunUntil(63*60, scheduler.PHI2)
	v.TriggerLightpen()
	test.ExpectEquality(t, v.Read(0xd014), uint8(50))

	sched.RunUntil(63*312+63*5, scheduler.PHI2)
	v.TriggerLightpen()
	test.ExpectEquality(t, v.Read(0xd014), uint8(5))
}

func TestRegisters(t *testing.T) {
	v, _, _, _ := newVIC()

	v.Write(0xd020, 0x0e)
	test.ExpectEquality(t, v.Read(0xd020), uint8(0xfe))
	test.ExpectEquality(t, v.Read(0xd060), uint8(0xfe))
	test.ExpectEquality(t, v.Read(0xd02f), uint8(0xff))
	test.ExpectEquality(t, v.Read(0xd03f), uint8(0xff))

	v.Write(0xd016, 0x08)
	test.ExpectEquality(t, v.Read(0xd016), uint8(0xc8))

	// lightpen registers are read only
	v.Write(0xd013, 0x55)
	test.ExpectEquality(t, v.Read(0xd013), uint8(0x00))
}

func TestFrameSink(t *testing.T) {
	v, sched, _, m := newVIC()

	var frames []vic.Frame
	fs := vic.FrameSinkFunc(func(f *vic.Frame) {
		frames = append(frames, *f)
	})
	v.AddFrameSink(fs)

	// screen at $0400 in the VIC bank
	v.Write(0xd018, 0x14)
	v.Write(0xd011, 0x1b)
	v.Write(0xd020, 0x0e)
	v.Write(0xd021, 0x06)
	m.ram[0x0400] = 0x08
	m.ram[0x0401] = 0x09
	m.color[0] = 0x01

	sched.RunUntil(63*312, scheduler.PHI2)
	test.DemandEquality(t, len(frames), 1)
	test.ExpectEquality(t, frames[0].Number, 1)
	test.ExpectEquality(t, frames[0].Screen[0], uint8(0x08))
	test.ExpectEquality(t, frames[0].Screen[1], uint8(0x09))
	test.ExpectEquality(t, frames[0].Color[0], uint8(0x01))
	test.ExpectEquality(t, frames[0].Border, uint8(0x0e))
	test.ExpectEquality(t, frames[0].Background, uint8(0x06))
	test.ExpectEquality(t, frames[0].Blank, false)
}

func TestRemoveFrameSink(t *testing.T) {
	v, sched, _, _ := newVIC()

	var a, b int
	ida := v.AddFrameSink(vic.FrameSinkFunc(func(_ *vic.Frame) { a++ }))
	v.AddFrameSink(vic.FrameSinkFunc(func(_ *vic.Frame) { b++ }))

	sched.RunUntil(63*312, scheduler.PHI2)
	test.ExpectEquality(t, a, 1)
	test.ExpectEquality(t, b, 1)

	v.RemoveFrameSink(ida)
	v.RemoveFrameSink(ida)
	sched.RunUntil(2*63*312, scheduler.PHI2)
	test.ExpectEquality(t, a, 1)
	test.ExpectEquality(t, b, 2)
}

func TestGeometry(t *testing.T) {
	v, sched, _, _ := newVIC()
	v.SetGeometry(clocks.NTSCGeometry)
	test.ExpectEquality(t, v.Model(), "6567")

	sched.RunUntil(65*263, scheduler.PHI2)
	test.ExpectEquality(t, v.Frame(), 1)
	test.ExpectEquality(t, v.Line(), 0)
}
