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
	"github.com/jetsetilly/gopher64/logger"
)

// Register offsets.
const (
	PRA = iota
	PRB
	DDRA
	DDRB
	TAL
	TAH
	TBL
	TBH
	TODTenths
	TODSeconds
	TODMinutes
	TODHours
	SDR
	ICR
	CRA
	CRB
)

// Interrupt sources as they appear in the ICR.
const (
	InterruptTimerA uint8 = 0x01
	InterruptTimerB uint8 = 0x02
	InterruptAlarm  uint8 = 0x04
	InterruptSerial uint8 = 0x08
	InterruptFlag   uint8 = 0x10

	// set in the ICR when any enabled source is active
	interruptRequest uint8 = 0x80
)

// InterruptSink receives the state of the chip's interrupt output.
type InterruptSink interface {
	Interrupt(state bool)
}

// PortHook connects the two I/O ports of the chip to the rest of the
// machine. Pulse is called for every access to PRB (the PC line).
type PortHook interface {
	ReadPRA() uint8
	ReadPRB() uint8
	WritePRA(data uint8)
	WritePRB(data uint8)
	Pulse()
}

// CIA is a single MOS6526.
type CIA struct {
	label string
	log   logger.Permission
	sched *scheduler.Scheduler

	sink InterruptSink
	hook PortHook

	regs [16]uint8

	a timer
	b timer

	// interrupt data and mask registers. asserted is the state of the IRQ
	// output
	icr      uint8
	mask     uint8
	asserted bool

	// state of the FLAG input. true if the line is being pulled low
	flag bool

	// serial port output
	sdrBuffered bool
	sdrCount    int

	tod tod
}

// NewCIA is the preferred method of initialisation for the CIA type.
func NewCIA(label string, log logger.Permission, sched *scheduler.Scheduler, sink InterruptSink, hook PortHook) *CIA {
	cia := &CIA{
		label: label,
		log:   log,
		sched: sched,
		sink:  sink,
		hook:  hook,
	}
	cia.a = timer{cia: cia, label: fmt.Sprintf("%s timer A", label), bit: InterruptTimerA}
	cia.b = timer{cia: cia, label: fmt.Sprintf("%s timer B", label), bit: InterruptTimerB}
	cia.tod = tod{cia: cia, label: fmt.Sprintf("%s TOD", label)}
	cia.SetTODRate(clocks.PAL, clocks.PALGeometry.Mains)
	return cia
}

// Label returns the name given to the CIA when it was created.
func (cia *CIA) Label() string {
	return cia.label
}

func (cia *CIA) String() string {
	return fmt.Sprintf("%s: ICR=%02x mask=%02x %s %s TOD=%s", cia.label, cia.icr, cia.mask, &cia.a, &cia.b, &cia.tod)
}

// SetTODRate sets the rate of the clock driving the chip and the frequency
// of the mains supply which drives the TOD clock.
func (cia *CIA) SetTODRate(rate clocks.Rate, mains uint64) {
	cia.tod.rate = rate
	cia.tod.mains = mains
}

// Reset the chip. Timer and TOD events are rescheduled on the scheduler,
// which should have been reset before the chip.
func (cia *CIA) Reset() {
	cia.regs = [16]uint8{}
	cia.a.reset()
	cia.b.reset()
	cia.icr = 0
	cia.mask = 0
	cia.sdrBuffered = false
	cia.sdrCount = 0
	cia.flag = false
	if cia.asserted {
		cia.asserted = false
		cia.sink.Interrupt(false)
	}
	cia.tod.reset()
}

// now returns the current cycle of the scheduler that clocks the chip.
func (cia *CIA) now() uint64 {
	return cia.sched.Cycles()
}

// trigger sets the bits in the interrupt data register and asserts the
// interrupt output if any of the bits are enabled.
func (cia *CIA) trigger(bits uint8) {
	cia.icr |= bits
	cia.updateInterrupt()
}

func (cia *CIA) updateInterrupt() {
	if cia.icr&cia.mask&0x1f != 0 {
		cia.icr |= interruptRequest
		if !cia.asserted {
			cia.asserted = true
			cia.sink.Interrupt(true)
		}
	}
}

// SetFlag sets the state of the FLAG input. True means the line is being
// pulled low. The FLAG interrupt is triggered on the falling edge so
// repeated calls with the same value have no effect.
func (cia *CIA) SetFlag(low bool) {
	if low && !cia.flag {
		cia.trigger(InterruptFlag)
	}
	cia.flag = low
}

// Read implements the memory.Bank interface. Only the lowest four bits of
// the address are used.
func (cia *CIA) Read(address uint16) uint8 {
	reg := address & 0x0f
	now := cia.now()

	switch reg {
	case PRA:
		return cia.hook.ReadPRA() & (cia.regs[PRA] | ^cia.regs[DDRA])

	case PRB:
		data := cia.hook.ReadPRB() & (cia.regs[PRB] | ^cia.regs[DDRB])
		cia.hook.Pulse()

		// timer outputs can appear on PB6 and PB7
		if v, ok := cia.a.output(now); ok {
			data = data&^0x40 | v<<6
		}
		if v, ok := cia.b.output(now); ok {
			data = data&^0x80 | v<<7
		}
		return data

	case TAL:
		return uint8(cia.a.value(now))
	case TAH:
		return uint8(cia.a.value(now) >> 8)
	case TBL:
		return uint8(cia.b.value(now))
	case TBH:
		return uint8(cia.b.value(now) >> 8)

	case TODTenths, TODSeconds, TODMinutes, TODHours:
		return cia.tod.read(int(reg - TODTenths))

	case ICR:
		v := cia.icr
		cia.icr = 0
		if cia.asserted {
			cia.asserted = false
			cia.sink.Interrupt(false)
		}
		return v

	case CRA:
		return cia.a.cr
	case CRB:
		return cia.b.cr
	}

	return cia.regs[reg]
}

// Peek returns the value of a register without side effects.
func (cia *CIA) Peek(address uint16) uint8 {
	reg := address & 0x0f
	switch reg {
	case TAL:
		return uint8(cia.a.value(cia.now()))
	case TAH:
		return uint8(cia.a.value(cia.now()) >> 8)
	case TBL:
		return uint8(cia.b.value(cia.now()))
	case TBH:
		return uint8(cia.b.value(cia.now()) >> 8)
	case ICR:
		return cia.icr
	case CRA:
		return cia.a.cr
	case CRB:
		return cia.b.cr
	}
	return cia.regs[reg]
}

// Write implements the memory.Bank interface. Only the lowest four bits of
// the address are used.
func (cia *CIA) Write(address uint16, data uint8) {
	reg := address & 0x0f
	now := cia.now()

	switch reg {
	case PRA, DDRA:
		cia.regs[reg] = data
		cia.hook.WritePRA(cia.regs[PRA] | ^cia.regs[DDRA])

	case PRB, DDRB:
		cia.regs[reg] = data
		if reg == PRB {
			cia.hook.Pulse()
		}
		cia.hook.WritePRB(cia.regs[PRB] | ^cia.regs[DDRB])

	case TAL:
		cia.a.setLatch(now, cia.a.latch&0xff00|uint16(data))
	case TAH:
		cia.a.setLatchHigh(now, data)
	case TBL:
		cia.b.setLatch(now, cia.b.latch&0xff00|uint16(data))
	case TBH:
		cia.b.setLatchHigh(now, data)

	case TODTenths, TODSeconds, TODMinutes, TODHours:
		cia.tod.write(int(reg-TODTenths), data, cia.b.cr&0x80 != 0)

	case SDR:
		cia.regs[SDR] = data
		if cia.a.cr&0x40 != 0 {
			cia.sdrBuffered = true
		}

	case ICR:
		if data&0x80 != 0 {
			cia.mask |= data & 0x1f
		} else {
			cia.mask &^= data & 0x1f
		}
		cia.updateInterrupt()

	case CRA:
		cia.a.setControl(now, data)

	case CRB:
		if data&0x60 == 0x20 {
			logger.Logf(cia.log, cia.label, "timer B counting CNT pulses is not supported")
		}
		cia.b.setControl(now, data)
	}
}

// serialShift is called on every underflow of timer A. When the serial port
// is in output mode a byte is shifted out every 16 underflows.
func (cia *CIA) serialShift() {
	if cia.a.cr&0x40 == 0 || !cia.sdrBuffered {
		return
	}
	cia.sdrCount++
	if cia.sdrCount == 16 {
		cia.sdrCount = 0
		cia.sdrBuffered = false
		cia.trigger(InterruptSerial)
	}
}
