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

package hardware

import (
	"github.com/jetsetilly/gopher64/environment"
	"github.com/jetsetilly/gopher64/hardware/bridge"
	"github.com/jetsetilly/gopher64/hardware/cable"
	"github.com/jetsetilly/gopher64/hardware/cia"
	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/cpu"
	"github.com/jetsetilly/gopher64/hardware/iec"
	"github.com/jetsetilly/gopher64/hardware/input"
	"github.com/jetsetilly/gopher64/hardware/memory"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
	"github.com/jetsetilly/gopher64/hardware/sid"
	"github.com/jetsetilly/gopher64/hardware/tape"
	"github.com/jetsetilly/gopher64/hardware/vic"
)

// synchronizer brings the drives up to date before the C64 touches a line
// they share
type synchronizer interface {
	Synchronize(p bridge.Priority)
}

type noSync struct{}

func (noSync) Synchronize(_ bridge.Priority) {}

// interruptLine adapts one of the PLA's interrupt inputs to the
// InterruptSink interface of the chips
type interruptLine func(state bool)

func (fn interruptLine) Interrupt(state bool) {
	fn(state)
}

// C64 contains the chips of the computer and the wiring between them.
type C64 struct {
	env *environment.Environment

	Sched *scheduler.Scheduler

	Bus   *memory.DisconnectedBus
	RAM   *memory.RAM
	Color *memory.ColorRAM
	IO    *memory.IOBank
	Port  *memory.CPUPort
	PLA   *memory.PLA

	CPU    *cpu.CPU
	Driver *cpu.Driver

	CIA1 *cia.CIA
	CIA2 *cia.CIA
	VIC  *vic.VIC
	SID  *sid.SID

	Input *input.Input
	Tape  *tape.Datasette
	IEC   *iec.Bus

	// the other end of the user port and the clock domain bridge for the
	// serial bus. replaced by the ensemble when a drive is attached
	cable cable.Cable
	sync  synchronizer

	// outputs of the CIA1 ports as last written
	cia1PRA uint8
	cia1PRB uint8

	// lightpen input (CIA1 PB4) is low
	lightpen bool
}

// NewC64 assembles the C64. The memory system is created first, then the
// chips that are mapped into it.
func NewC64(env *environment.Environment, rate clocks.Rate) *C64 {
	c64 := &C64{
		env:     env,
		cable:   cable.Disconnected{},
		sync:    noSync{},
		cia1PRA: 0xff,
		cia1PRB: 0xff,
	}

	c64.Sched = scheduler.NewScheduler("c64")
	c64.Sched.SetCyclesPerSecond(rate)
	env.Random.Plumb(c64.Sched)

	// memory
	c64.Bus = &memory.DisconnectedBus{}
	c64.RAM = memory.NewRAM(env)
	c64.Color = memory.NewColorRAM(c64.Bus)
	c64.IO = memory.NewIOBank(c64.Bus, c64.Color)
	c64.Port = memory.NewCPUPort(c64.Sched, c64.RAM, c64.Bus, env.Prefs.FallOffCycles)
	c64.PLA = memory.NewPLA(env, c64.RAM, c64.Port, c64.IO, c64.Bus, c64.Color)

	c64.CPU = cpu.NewCPU(env, c64.PLA)
	c64.Driver = cpu.NewDriver("c64 cpu", c64.CPU, c64.Sched)
	c64.PLA.Plumb(c64.CPU)

	// chips
	c64.CIA1 = cia.NewCIA("CIA1", env, c64.Sched, interruptLine(func(state bool) {
		c64.PLA.SetIRQ(memory.SourceCIA1, state)
	}), &cia1Ports{c64: c64})
	c64.CIA2 = cia.NewCIA("CIA2", env, c64.Sched, interruptLine(func(state bool) {
		c64.PLA.SetNMI(memory.SourceCIA2, state)
	}), &cia2Ports{c64: c64})

	geometry := clocks.GeometryForRate(rate)
	c64.CIA1.SetTODRate(rate, geometry.Mains)
	c64.CIA2.SetTODRate(rate, geometry.Mains)

	vicIRQ := interruptLine(func(state bool) {
		c64.PLA.SetIRQ(memory.SourceVIC, state)
	})
	if geometry == clocks.NTSCGeometry {
		c64.VIC = vic.NewNTSC("VIC", c64.Sched, c64.PLA, vicIRQ)
	} else {
		c64.VIC = vic.NewPAL("VIC", c64.Sched, c64.PLA, vicIRQ)
	}
	c64.SID = sid.NewSID("SID", c64.Sched, rate)
	c64.IO.Plumb(c64.VIC, c64.SID, c64.CIA1, c64.CIA2)

	// peripherals
	c64.Input = input.NewInput(c64.Sched, c64.restore)
	c64.Tape = tape.NewDatasette("datasette", env, c64.Sched, c64.CIA1)
	c64.Tape.Plumb(c64.Port)
	c64.Tape.SetNotify(env)
	if env.Prefs.TapeEnabled.Get().(bool) {
		c64.Port.Plumb(c64.PLA, c64.Tape)
	} else {
		c64.Port.Plumb(c64.PLA, nil)
	}
	c64.IEC = iec.NewBus()

	return c64
}

// Reset the C64 in the order the chips depend on each other. The scheduler
// is reset first so that the chips can schedule their events.
func (c64 *C64) Reset() {
	c64.Sched.Reset()
	c64.Input.Reset()
	c64.PLA.Reset()
	c64.Driver.Reset()
	c64.CIA1.Reset()
	c64.CIA2.Reset()
	c64.VIC.Reset()
	c64.SID.Reset()
	c64.Port.Reset()
	c64.RAM.Reset()
	c64.Color.Reset()
	c64.cia1PRA = 0xff
	c64.cia1PRB = 0xff
	c64.lightpen = false
}

// SetClockRate changes the clock rate of the C64 and the video standard that
// goes with it.
func (c64 *C64) SetClockRate(rate clocks.Rate) {
	geometry := clocks.GeometryForRate(rate)
	c64.Sched.SetCyclesPerSecond(rate)
	c64.VIC.SetGeometry(geometry)
	c64.SID.SetClock(rate)
	c64.CIA1.SetTODRate(rate, geometry.Mains)
	c64.CIA2.SetTODRate(rate, geometry.Mains)
}

// the RESTORE key is connected directly to the NMI line. a press is a short
// pulse
func (c64 *C64) restore() {
	c64.PLA.SetNMI(memory.SourceRestore, true)
	c64.PLA.SetNMI(memory.SourceRestore, false)
}

// cia1Ports connects the keyboard, the joysticks and the lightpen to CIA1.
// joystick 2 shares port A with the keyboard columns and joystick 1 shares
// port B with the keyboard rows
type cia1Ports struct {
	c64 *C64
}

func (p *cia1Ports) ReadPRA() uint8 {
	inp := p.c64.Input
	return inp.Joystick(input.Port2) & inp.ReadColumns(p.c64.cia1PRB&inp.Joystick(input.Port1))
}

func (p *cia1Ports) ReadPRB() uint8 {
	inp := p.c64.Input
	return inp.Joystick(input.Port1) & inp.ReadRows(p.c64.cia1PRA&inp.Joystick(input.Port2))
}

func (p *cia1Ports) WritePRA(data uint8) {
	p.c64.cia1PRA = data
}

func (p *cia1Ports) WritePRB(data uint8) {
	p.c64.cia1PRB = data

	// the lightpen triggers on the falling edge of PB4
	low := data&p.c64.Input.Joystick(input.Port1)&0x10 == 0
	if low && !p.c64.lightpen {
		p.c64.VIC.TriggerLightpen()
	}
	p.c64.lightpen = low
}

func (p *cia1Ports) Pulse() {
}

// cia2Ports connects the VIC bank select and the serial bus to port A of
// CIA2, and the user port to port B
type cia2Ports struct {
	c64 *C64
}

func (p *cia2Ports) ReadPRA() uint8 {
	p.c64.sync.Synchronize(bridge.Read)
	return p.c64.IEC.ReadToC64()
}

func (p *cia2Ports) ReadPRB() uint8 {
	return p.c64.cable.C64Read()
}

func (p *cia2Ports) WritePRA(data uint8) {
	// bank select lines are inverted
	p.c64.PLA.SetVICBank(uint16(^data&0x03) << 14)

	p.c64.sync.Synchronize(bridge.Write)
	p.c64.IEC.WriteFromC64(data)
}

func (p *cia2Ports) WritePRB(data uint8) {
	p.c64.cable.C64Write(data)
}

func (p *cia2Ports) Pulse() {
	p.c64.cable.Pulse()
}
