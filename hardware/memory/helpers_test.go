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

package memory_test

import "github.com/jetsetilly/gopher64/hardware/memory"

// clock is a settable source of time
type clock struct {
	cycles uint64
}

func (c *clock) Cycles() uint64 {
	return c.cycles
}

// register records the last access made to a chip
type register struct {
	lastRead  uint16
	lastWrite uint16
	lastData  uint8
	value     uint8
}

func (r *register) Read(address uint16) uint8 {
	r.lastRead = address
	return r.value
}

func (r *register) Write(address uint16, data uint8) {
	r.lastWrite = address
	r.lastData = data
}

// interrupts records the state of the CPU interrupt lines
type interrupts struct {
	irq, nmi         bool
	irqCalls, nmiCalls int
}

func (i *interrupts) SetIRQ(v bool) {
	i.irq = v
	i.irqCalls++
}

func (i *interrupts) SetNMI(v bool) {
	i.nmi = v
	i.nmiCalls++
}

// tapeHook records the state of the datasette lines
type tapeHook struct {
	motor bool
	write bool
	sense bool
}

func (h *tapeHook) SetMotor(on bool) {
	h.motor = on
}

func (h *tapeHook) SetTapeWrite(high bool) {
	h.write = high
}

func (h *tapeHook) TapeSense() bool {
	return h.sense
}

type machine struct {
	clk   *clock
	ram   *memory.RAM
	bus   *memory.DisconnectedBus
	color *memory.ColorRAM
	io    *memory.IOBank
	port  *memory.CPUPort
	pla   *memory.PLA
	vic   *register
	cia1  *register
	tape  *tapeHook
}

func fill(n int, v uint8) []uint8 {
	b := make([]uint8, n)
	for i := range b {
		b[i] = v
	}
	return b
}

func newMachine() *machine {
	m := &machine{
		clk:  &clock{},
		bus:  &memory.DisconnectedBus{},
		vic:  &register{value: 0x11},
		cia1: &register{value: 0x22},
		tape: &tapeHook{},
	}
	m.ram = memory.NewRAM(nil)
	m.color = memory.NewColorRAM(m.bus)
	m.io = memory.NewIOBank(m.bus, m.color)
	m.io.Plumb(m.vic, m.bus, m.cia1, m.bus)
	m.port = memory.NewCPUPort(m.clk, m.ram, m.bus, func() uint64 { return 350000 })
	m.pla = memory.NewPLA(nil, m.ram, m.port, m.io, m.bus, m.color)
	m.port.Plumb(m.pla, m.tape)

	_ = m.pla.LoadROMs(fill(memory.BasicSize, 0xba), fill(memory.KernalSize, 0xea), fill(memory.ChargenSize, 0xc4))

	m.pla.Reset()
	m.port.Reset()
	return m
}
