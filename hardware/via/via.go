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

import (
	"fmt"

	"github.com/jetsetilly/gopher64/hardware/scheduler"
)

// Register offsets.
const (
	ORB = iota
	ORA
	DDRB
	DDRA
	T1CL
	T1CH
	T1LL
	T1LH
	T2CL
	T2CH
	SR
	ACR
	PCR
	IFR
	IER
	ORANoHandshake
)

// Bits of the IFR and IER.
const (
	InterruptCA2 uint8 = 0x01
	InterruptCA1 uint8 = 0x02
	InterruptSR  uint8 = 0x04
	InterruptCB2 uint8 = 0x08
	InterruptCB1 uint8 = 0x10
	InterruptT2  uint8 = 0x20
	InterruptT1  uint8 = 0x40

	interruptRequest uint8 = 0x80
)

// Line identifies the control lines that can be signalled with Signal().
type Line int

// List of valid Line values.
const (
	CA1 Line = iota
	CA2
	CB1
	CB2
)

func (l Line) String() string {
	switch l {
	case CA1:
		return "CA1"
	case CA2:
		return "CA2"
	case CB1:
		return "CB1"
	case CB2:
		return "CB2"
	}
	return fmt.Sprintf("line(%d)", int(l))
}

// InterruptSink receives the state of the chip's interrupt output.
type InterruptSink interface {
	Interrupt(state bool)
}

// PortHook connects the ports and the CA2/CB2 outputs of the chip to the
// rest of the drive.
type PortHook interface {
	ReadPA() uint8
	ReadPB() uint8
	WritePA(data uint8)
	WritePB(data uint8)
	SetCA2(high bool)
	SetCB2(high bool)
}

// VIA is a single MOS6522.
type VIA struct {
	label string
	sched *scheduler.Scheduler

	sink InterruptSink
	hook PortHook

	regs [16]uint8

	ifr      uint8
	ier      uint8
	asserted bool

	t1 timer
	t2 timer

	// PB7 output of timer 1
	pb7 bool

	ca2 bool
	cb2 bool
}

// NewVIA is the preferred method of initialisation for the VIA type.
func NewVIA(label string, sched *scheduler.Scheduler, sink InterruptSink, hook PortHook) *VIA {
	via := &VIA{
		label: label,
		sched: sched,
		sink:  sink,
		hook:  hook,
	}
	via.t1 = timer{via: via, label: fmt.Sprintf("%s T1", label), bit: InterruptT1}
	via.t2 = timer{via: via, label: fmt.Sprintf("%s T2", label), bit: InterruptT2}
	return via
}

// Label returns the name given to the VIA when it was created.
func (via *VIA) Label() string {
	return via.label
}

func (via *VIA) String() string {
	return fmt.Sprintf("%s: IFR=%02x IER=%02x T1=%04x T2=%04x", via.label, via.ifr, via.ier,
		via.t1.value(via.sched.Cycles()), via.t2.value(via.sched.Cycles()))
}

// Reset clears every register except for the timers and the shift register.
func (via *VIA) Reset() {
	sr := via.regs[SR]
	via.regs = [16]uint8{}
	for i := T1CL; i <= T2CH; i++ {
		via.regs[i] = 0xff
	}
	via.regs[SR] = sr

	via.t1.reset()
	via.t2.reset()
	via.ifr = 0
	via.ier = 0
	via.pb7 = false
	if via.asserted {
		via.asserted = false
		via.sink.Interrupt(false)
	}

	via.ca2 = true
	via.cb2 = true
	via.hook.SetCA2(true)
	via.hook.SetCB2(true)
}

func (via *VIA) updateInterrupt() {
	irq := via.ifr&via.ier&0x7f != 0
	if irq != via.asserted {
		via.asserted = irq
		via.sink.Interrupt(irq)
	}
}

func (via *VIA) setFlags(bits uint8) {
	via.ifr |= bits
	via.updateInterrupt()
}

func (via *VIA) clearFlags(bits uint8) {
	via.ifr &^= bits
	via.updateInterrupt()
}

// Signal an edge on one of the control lines. The edge only sets the
// interrupt flag if it matches the polarity selected in the PCR.
func (via *VIA) Signal(line Line, rising bool) {
	pcr := via.regs[PCR]

	switch line {
	case CA1:
		if rising == (pcr&0x01 == 0x01) {
			if via.ca2Handshake() && !via.ca2 {
				via.setCA2(true)
			}
			via.setFlags(InterruptCA1)
		}
	case CA2:
		if pcr&0x08 == 0 && rising == (pcr&0x04 == 0x04) {
			via.setFlags(InterruptCA2)
		}
	case CB1:
		if rising == (pcr&0x10 == 0x10) {
			via.setFlags(InterruptCB1)
		}
	case CB2:
		if pcr&0x80 == 0 && rising == (pcr&0x40 == 0x40) {
			via.setFlags(InterruptCB2)
		}
	}
}

// CA2 returns the state of the CA2 output.
func (via *VIA) CA2() bool {
	return via.ca2
}

// CB2 returns the state of the CB2 output.
func (via *VIA) CB2() bool {
	return via.cb2
}

func (via *VIA) setCA2(high bool) {
	if via.ca2 != high {
		via.ca2 = high
		via.hook.SetCA2(high)
	}
}

func (via *VIA) setCB2(high bool) {
	if via.cb2 != high {
		via.cb2 = high
		via.hook.SetCB2(high)
	}
}

// ca2Handshake returns true if CA2 is in one of the handshake output modes.
func (via *VIA) ca2Handshake() bool {
	return via.regs[PCR]&0x0c == 0x08
}

// portAAccess performs the side effects of reading or writing ORA.
func (via *VIA) portAAccess() {
	bits := InterruptCA1
	if via.regs[PCR]&0x0a != 0x02 {
		bits |= InterruptCA2
	}
	via.clearFlags(bits)

	if via.ca2Handshake() {
		via.setCA2(false)
		if via.regs[PCR]&0x02 == 0x02 {
			via.setCA2(true)
		}
	}
}

// portBAccess performs the side effects of reading or writing ORB.
func (via *VIA) portBAccess() {
	bits := InterruptCB1
	if via.regs[PCR]&0xa0 != 0x20 {
		bits |= InterruptCB2
	}
	via.clearFlags(bits)
}

// Read implements the memory.Bank interface. Only the lowest four bits of
// the address are used.
func (via *VIA) Read(address uint16) uint8 {
	reg := address & 0x0f
	now := via.sched.Cycles()

	switch reg {
	case ORA:
		via.portAAccess()
		return via.hook.ReadPA()
	case ORANoHandshake:
		return via.hook.ReadPA()

	case ORB:
		via.portBAccess()
		ddr := via.regs[DDRB]
		v := via.hook.ReadPB()&^ddr | via.regs[ORB]&ddr
		if via.regs[ACR]&0x80 == 0x80 {
			v &= 0x7f
			if via.pb7 {
				v |= 0x80
			}
		}
		return v

	case T1CL:
		via.clearFlags(InterruptT1)
		return uint8(via.t1.value(now))
	case T1CH:
		return uint8(via.t1.value(now) >> 8)
	case T1LL:
		return uint8(via.t1.latch)
	case T1LH:
		return uint8(via.t1.latch >> 8)
	case T2CL:
		via.clearFlags(InterruptT2)
		return uint8(via.t2.value(now))
	case T2CH:
		return uint8(via.t2.value(now) >> 8)

	case IFR:
		v := via.ifr
		if via.ifr&via.ier&0x7f != 0 {
			v |= interruptRequest
		}
		return v
	case IER:
		return via.ier | 0x80
	}

	return via.regs[reg]
}

// Write implements the memory.Bank interface. Only the lowest four bits of
// the address are used.
func (via *VIA) Write(address uint16, data uint8) {
	reg := address & 0x0f
	now := via.sched.Cycles()

	switch reg {
	case ORA, ORANoHandshake, DDRA:
		if reg == ORA {
			via.portAAccess()
		}
		if reg == DDRA {
			via.regs[DDRA] = data
		} else {
			via.regs[ORA] = data
		}
		via.hook.WritePA(via.regs[ORA] | ^via.regs[DDRA])

	case ORB, DDRB:
		if reg == ORB {
			via.portBAccess()
		}
		via.regs[reg] = data
		via.hook.WritePB(via.regs[ORB] | ^via.regs[DDRB])

	case T1CL, T1LL:
		via.t1.latch = via.t1.latch&0xff00 | uint16(data)
	case T1LH:
		via.t1.latch = via.t1.latch&0x00ff | uint16(data)<<8
		via.clearFlags(InterruptT1)
	case T1CH:
		via.t1.latch = via.t1.latch&0x00ff | uint16(data)<<8
		via.clearFlags(InterruptT1)
		if via.regs[ACR]&0x80 == 0x80 {
			via.pb7 = false
		}
		via.t1.load(now, via.t1.latch)

	case T2CL:
		via.t2.latch = via.t2.latch&0xff00 | uint16(data)
	case T2CH:
		via.t2.latch = via.t2.latch&0x00ff | uint16(data)<<8
		via.clearFlags(InterruptT2)
		via.t2.load(now, via.t2.latch)

	case IFR:
		via.clearFlags(data & 0x7f)

	case IER:
		if data&0x80 == 0x80 {
			via.ier |= data & 0x7f
		} else {
			via.ier &^= data & 0x7f
		}
		via.updateInterrupt()

	case ACR:
		if via.regs[ACR]&0x80 == 0 && data&0x80 == 0x80 {
			via.pb7 = true
		}
		via.regs[ACR] = data

	case PCR:
		via.regs[PCR] = data
		switch data & 0x0e {
		case 0x0c:
			via.setCA2(false)
		default:
			via.setCA2(true)
		}
		switch data & 0xe0 {
		case 0xc0:
			via.setCB2(false)
		default:
			via.setCB2(true)
		}

	default:
		via.regs[reg] = data
	}
}

// t1Underflow is called by timer 1 on every underflow. Returns true if the
// timer should keep interrupting.
func (via *VIA) t1Underflow() bool {
	continuous := via.regs[ACR]&0x40 == 0x40
	if via.regs[ACR]&0x80 == 0x80 {
		if continuous {
			via.pb7 = !via.pb7
		} else {
			via.pb7 = true
		}
	}
	via.setFlags(InterruptT1)
	return continuous
}
