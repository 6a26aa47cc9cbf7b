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

package via_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/hardware/scheduler"
	"github.com/jetsetilly/gopher64/hardware/via"
	"github.com/jetsetilly/gopher64/test"
)

type sink struct {
	state bool
}

func (s *sink) Interrupt(state bool) {
	s.state = state
}

type ports struct {
	pa, pb     uint8
	inPA, inPB uint8
	ca2, cb2   bool
}

func (p *ports) ReadPA() uint8 {
	return p.inPA
}

func (p *ports) ReadPB() uint8 {
	return p.inPB
}

func (p *ports) WritePA(data uint8) {
	p.pa = data
}

func (p *ports) WritePB(data uint8) {
	p.pb = data
}

func (p *ports) SetCA2(high bool) {
	p.ca2 = high
}

func (p *ports) SetCB2(high bool) {
	p.cb2 = high
}

func newVIA() (*via.VIA, *scheduler.Scheduler, *sink, *ports) {
	sched := scheduler.NewScheduler("test")
	s := &sink{}
	p := &ports{inPA: 0xff, inPB: 0xff}
	v := via.NewVIA("VIA1", sched, s, p)
	v.Reset()
	return v, sched, s, p
}

func TestOneShot(t *testing.T) {
	v, sched, s, _ := newVIA()

	v.Write(via.IER, 0xc0)
	v.Write(via.T1CL, 0x10)
	v.Write(via.T1CH, 0x00)

	sched.RunUntil(10, scheduler.PHI2)
	test.ExpectEquality(t, v.Read(via.T1CH), uint8(0x00))
	test.ExpectEquality(t, v.Read(via.IFR), uint8(0x00))
	test.ExpectEquality(t, s.state, false)

	sched.RunUntil(17, scheduler.PHI2)
	test.ExpectEquality(t, s.state, true)
	test.ExpectEquality(t, v.Read(via.IFR), uint8(0xc0))

	// reading the low byte of the counter clears the flag
	test.ExpectEquality(t, v.Read(via.T1CL), uint8(0xff))
	test.ExpectEquality(t, s.state, false)

	// the counter keeps counting but there are no more interrupts
	sched.RunUntil(100, scheduler.PHI2)
	test.ExpectEquality(t, v.Read(via.IFR), uint8(0x00))
	test.ExpectEquality(t, v.Read(via.T1CH), uint8(0xff))
}

func TestCounterValue(t *testing.T) {
	v, sched, _, _ := newVIA()

	v.Write(via.T1CL, 0x10)
	v.Write(via.T1CH, 0x00)
	sched.RunUntil(10, scheduler.PHI2)
	test.ExpectEquality(t, v.Read(via.T1CL), uint8(0x06))
}

func TestFreeRunning(t *testing.T) {
	v, sched, _, _ := newVIA()

	// continuous interrupts with PB7 output
	v.Write(via.ACR, 0xc0)
	v.Write(via.T1CL, 0x10)
	v.Write(via.T1CH, 0x00)
	test.ExpectEquality(t, v.Read(via.ORB)&0x80, uint8(0x00))

	sched.RunUntil(18, scheduler.PHI1)
	test.ExpectEquality(t, v.Read(via.ORB)&0x80, uint8(0x80))
	test.ExpectEquality(t, v.Read(via.IFR)&via.InterruptT1, via.InterruptT1)
	v.Write(via.IFR, via.InterruptT1)

	// the period in free running mode is the latch value plus two
	sched.RunUntil(35, scheduler.PHI1)
	test.ExpectEquality(t, v.Read(via.IFR)&via.InterruptT1, uint8(0x00))
	sched.RunUntil(36, scheduler.PHI1)
	test.ExpectEquality(t, v.Read(via.ORB)&0x80, uint8(0x00))
	test.ExpectEquality(t, v.Read(via.IFR)&via.InterruptT1, via.InterruptT1)
}

func TestTimer2(t *testing.T) {
	v, sched, s, _ := newVIA()

	v.Write(via.IER, 0xa0)
	v.Write(via.T2CL, 0x04)
	v.Write(via.T2CH, 0x00)

	sched.RunUntil(6, scheduler.PHI1)
	test.ExpectEquality(t, s.state, true)
	test.ExpectEquality(t, v.Read(via.IFR), uint8(0xa0))
	v.Read(via.T2CL)
	test.ExpectEquality(t, s.state, false)
}

func TestControlLines(t *testing.T) {
	v, _, s, _ := newVIA()
	v.Write(via.IER, 0x82)

	// CA1 is triggered on the falling edge
	v.Signal(via.CA1, true)
	test.ExpectEquality(t, v.Read(via.IFR), uint8(0x00))
	v.Signal(via.CA1, false)
	test.ExpectEquality(t, v.Read(via.IFR), uint8(0x82))
	test.ExpectEquality(t, s.state, true)

	// reading port A clears the flag
	v.Read(via.ORA)
	test.ExpectEquality(t, s.state, false)

	// rising edge selected in the PCR
	v.Write(via.PCR, 0x01)
	v.Signal(via.CA1, false)
	test.ExpectEquality(t, v.Read(via.IFR), uint8(0x00))
	v.Signal(via.CA1, true)
	test.ExpectEquality(t, v.Read(via.IFR), uint8(0x82))

	// the no-handshake register does not clear the flag
	v.Read(via.ORANoHandshake)
	test.ExpectEquality(t, v.Read(via.IFR), uint8(0x82))
}

func TestManualOutputs(t *testing.T) {
	v, _, _, p := newVIA()
	test.ExpectEquality(t, p.ca2, true)
	test.ExpectEquality(t, p.cb2, true)

	v.Write(via.PCR, 0xcc)
	test.ExpectEquality(t, p.ca2, false)
	test.ExpectEquality(t, p.cb2, false)
	test.ExpectEquality(t, v.CA2(), false)

	v.Write(via.PCR, 0xee)
	test.ExpectEquality(t, p.ca2, true)
	test.ExpectEquality(t, p.cb2, true)
}

func TestPorts(t *testing.T) {
	v, _, _, p := newVIA()

	v.Write(via.DDRB, 0x0f)
	v.Write(via.ORB, 0x05)
	test.ExpectEquality(t, p.pb, uint8(0xf5))

	p.inPB = 0xa0
	test.ExpectEquality(t, v.Read(via.ORB), uint8(0xa5))

	v.Write(via.DDRA, 0xff)
	v.Write(via.ORA, 0x12)
	test.ExpectEquality(t, p.pa, uint8(0x12))
	p.inPA = 0x34
	test.ExpectEquality(t, v.Read(via.ORA), uint8(0x34))
}
