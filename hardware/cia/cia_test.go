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

package cia_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/hardware/cia"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
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

type ports struct {
	pra, prb     uint8
	inPRA, inPRB uint8
	pulses       int
}

func (p *ports) ReadPRA() uint8 {
	return p.inPRA
}

func (p *ports) ReadPRB() uint8 {
	return p.inPRB
}

func (p *ports) WritePRA(data uint8) {
	p.pra = data
}

func (p *ports) WritePRB(data uint8) {
	p.prb = data
}

func (p *ports) Pulse() {
	p.pulses++
}

func newCIA() (*cia.CIA, *scheduler.Scheduler, *sink, *ports) {
	sched := scheduler.NewScheduler("test")
	s := &sink{}
	p := &ports{inPRA: 0xff, inPRB: 0xff}
	c := cia.NewCIA("CIA1", nil, sched, s, p)
	c.Reset()
	return c, sched, s, p
}

func TestTimerUnderflow(t *testing.T) {
	c, sched, s, _ := newCIA()

	c.Write(cia.TAL, 0x10)
	c.Write(cia.TAH, 0x00)
	c.Write(cia.ICR, 0x81)
	c.Write(cia.CRA, 0x11)

	sched.RunUntil(10, scheduler.PHI2)
	test.ExpectEquality(t, c.Read(cia.TAL), uint8(0x06))
	test.ExpectEquality(t, s.state, false)

	// the timer counts from 16 to 0 and underflows on the next cycle
	sched.RunUntil(17, scheduler.PHI1)
	test.ExpectEquality(t, s.state, false)
	sched.RunUntil(17, scheduler.PHI2)
	test.ExpectEquality(t, s.state, true)
	test.ExpectEquality(t, c.Read(cia.TAL), uint8(0x10))

	// reading the ICR acknowledges the interrupt
	test.ExpectEquality(t, c.Read(cia.ICR), uint8(0x81))
	test.ExpectEquality(t, s.state, false)
	test.ExpectEquality(t, c.Read(cia.ICR), uint8(0x00))

	// continuous mode
	sched.RunUntil(35, scheduler.PHI1)
	test.ExpectEquality(t, s.state, true)
	test.ExpectEquality(t, c.Read(cia.CRA)&0x01, uint8(0x01))
}

func TestOneShot(t *testing.T) {
	c, sched, _, _ := newCIA()

	c.Write(cia.TAL, 0x08)
	c.Write(cia.TAH, 0x00)
	c.Write(cia.CRA, 0x19)

	sched.RunUntil(20, scheduler.PHI1)
	test.ExpectEquality(t, c.Read(cia.CRA)&0x01, uint8(0x00))
	test.ExpectEquality(t, c.Read(cia.TAL), uint8(0x08))
	test.ExpectEquality(t, c.Read(cia.ICR), uint8(0x01))

	// no more underflows
	sched.RunUntil(40, scheduler.PHI1)
	test.ExpectEquality(t, c.Read(cia.ICR), uint8(0x00))
}

func TestCascade(t *testing.T) {
	c, sched, _, _ := newCIA()

	c.Write(cia.TAL, 0x01)
	c.Write(cia.TAH, 0x00)
	c.Write(cia.TBL, 0x02)
	c.Write(cia.TBH, 0x00)
	c.Write(cia.CRB, 0x51)
	c.Write(cia.CRA, 0x11)

	// timer A underflows every two cycles and timer B on the third of those
	sched.RunUntil(5, scheduler.PHI1)
	test.ExpectEquality(t, c.Peek(cia.ICR)&0x02, uint8(0x00))
	sched.RunUntil(7, scheduler.PHI1)
	test.ExpectEquality(t, c.Read(cia.ICR), uint8(0x03))
}

func TestTimerOutput(t *testing.T) {
	c, sched, _, _ := newCIA()

	c.Write(cia.TAL, 0x04)
	c.Write(cia.TAH, 0x00)

	// toggle mode. the output is set when the timer is started
	c.Write(cia.CRA, 0x17)
	test.ExpectEquality(t, c.Read(cia.PRB)&0x40, uint8(0x40))

	sched.RunUntil(5, scheduler.PHI2)
	test.ExpectEquality(t, c.Read(cia.PRB)&0x40, uint8(0x00))
	sched.RunUntil(10, scheduler.PHI2)
	test.ExpectEquality(t, c.Read(cia.PRB)&0x40, uint8(0x40))
}

func TestFlag(t *testing.T) {
	c, _, s, _ := newCIA()

	// the flag is recorded even when the source is not enabled
	c.SetFlag(true)
	test.ExpectEquality(t, s.calls, 0)
	test.ExpectEquality(t, c.Peek(cia.ICR), uint8(0x10))

	// enabling the source raises the interrupt
	c.Write(cia.ICR, 0x90)
	test.ExpectEquality(t, s.state, true)
	test.ExpectEquality(t, c.Read(cia.ICR), uint8(0x90))
	test.ExpectEquality(t, s.state, false)

	// repeated calls with the same value do not trigger again
	c.SetFlag(true)
	test.ExpectEquality(t, c.Peek(cia.ICR), uint8(0x00))
	c.SetFlag(false)
	c.SetFlag(true)
	test.ExpectEquality(t, c.Peek(cia.ICR), uint8(0x90))
	test.ExpectEquality(t, s.calls, 3)
}

func TestPorts(t *testing.T) {
	c, _, _, p := newCIA()

	// pins that are inputs float high
	c.Write(cia.DDRA, 0xff)
	c.Write(cia.PRA, 0x3f)
	test.ExpectEquality(t, p.pra, uint8(0x3f))
	c.Write(cia.DDRA, 0x0f)
	test.ExpectEquality(t, p.pra, uint8(0xff))

	p.inPRA = 0xaa
	test.ExpectEquality(t, c.Read(cia.PRA), uint8(0xaa))
	c.Write(cia.PRA, 0x30)
	test.ExpectEquality(t, c.Read(cia.PRA), uint8(0xa0))

	// every access to PRB pulses the PC line
	c.Read(cia.PRB)
	c.Write(cia.PRB, 0x00)
	c.Write(cia.DDRB, 0x00)
	test.ExpectEquality(t, p.pulses, 2)
}

func TestTOD(t *testing.T) {
	c, sched, _, _ := newCIA()

	c.Write(cia.CRA, 0x80)
	c.Write(cia.ICR, 0x84)

	// set the clock to 1:00:00.0
	c.Write(cia.TODHours, 0x01)
	c.Write(cia.TODMinutes, 0x00)
	c.Write(cia.TODSeconds, 0x00)
	c.Write(cia.TODTenths, 0x00)

	// set the alarm for one second later
	c.Write(cia.CRB, 0x80)
	c.Write(cia.TODSeconds, 0x01)
	c.Write(cia.TODMinutes, 0x00)
	c.Write(cia.TODHours, 0x01)
	c.Write(cia.TODTenths, 0x00)
	c.Write(cia.CRB, 0x00)
	test.ExpectEquality(t, c.Peek(cia.ICR), uint8(0x00))

	sched.RunUntil(1100000, scheduler.PHI1)

	// reading the hours latches the clock until the tenths are read
	test.ExpectEquality(t, c.Read(cia.TODHours), uint8(0x01))
	test.ExpectEquality(t, c.Read(cia.TODMinutes), uint8(0x00))
	test.ExpectEquality(t, c.Read(cia.TODSeconds), uint8(0x01))
	test.ExpectEquality(t, c.Read(cia.TODTenths), uint8(0x00))

	test.ExpectEquality(t, c.Read(cia.ICR), uint8(0x84))
}

func TestTODHours(t *testing.T) {
	c, _, _, _ := newCIA()

	// writing 12 to the hours flips the PM flag
	c.Write(cia.TODHours, 0x12)
	test.ExpectEquality(t, c.Read(cia.TODHours), uint8(0x92))
	c.Read(cia.TODTenths)
}
