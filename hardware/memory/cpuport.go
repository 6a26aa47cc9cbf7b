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

package memory

// PortHook is implemented by the parts of the system connected to the
// datasette lines of the CPU port.
type PortHook interface {
	// motor line. the motor is on when bit 5 is driven low
	SetMotor(on bool)

	// write line (bit 3)
	SetTapeWrite(high bool)

	// sense line. true if a button on the datasette is pressed
	TapeSense() bool
}

// CPUPort is the 6510's built-in I/O port at addresses $00 (direction) and
// $01 (data). All other addresses in the region are passed to RAM.
type CPUPort struct {
	clk     Clock
	ram     Bank
	bus     *DisconnectedBus
	pla     *PLA
	hook    PortHook
	falloff func() uint64

	dir      uint8
	data     uint8
	dataOut  uint8
	dataRead uint8

	// unconnected bits 6 and 7
	bit6 DecayingBit
	bit7 DecayingBit

	// previous state of the datasette lines
	oldMotor uint8
	oldWrite uint8
}

// NewCPUPort is the preferred method of initialisation for the CPUPort type.
// The falloff function returns the number of cycles before bits 6 and 7 fall
// to zero.
func NewCPUPort(clk Clock, ram Bank, bus *DisconnectedBus, falloff func() uint64) *CPUPort {
	p := &CPUPort{
		clk:     clk,
		ram:     ram,
		bus:     bus,
		falloff: falloff,
	}
	return p
}

// Plumb connects the port to the PLA and to the datasette. Both arguments
// can be nil.
func (p *CPUPort) Plumb(pla *PLA, hook PortHook) {
	p.pla = pla
	p.hook = hook
}

// Reset the CPU port to its power-on state.
func (p *CPUPort) Reset() {
	p.oldMotor = 0xff
	p.oldWrite = 0xff
	p.data = 0x3f
	p.dataOut = 0x3f
	p.dataRead = 0x3f
	p.dir = 0
	p.bit6.Reset()
	p.bit7.Reset()
	p.update()
}

func (p *CPUPort) update() {
	p.dataOut = p.dataOut&^p.dir | p.data&p.dir
	p.dataRead = (p.data | ^p.dir) & (p.dataOut | 0x17)

	if p.pla != nil {
		p.pla.SetCPUPort(p.dataRead)
	}

	if p.dir&0x20 == 0 {
		p.dataRead &= 0xdf
	}
	if p.dir&0x10 == 0 && p.hook != nil && p.hook.TapeSense() {
		p.dataRead &= 0xef
	}

	if m := p.dir & p.data & 0x20; m != p.oldMotor {
		p.oldMotor = m
		if p.hook != nil {
			p.hook.SetMotor(m == 0)
		}
	}

	if w := (^p.dir | p.data) & 0x08; w != p.oldWrite {
		p.oldWrite = w
		if p.hook != nil {
			p.hook.SetTapeWrite(w != 0)
		}
	}
}

// TapeSenseChanged should be called when the state of the sense line
// changes.
func (p *CPUPort) TapeSenseChanged() {
	p.update()
}

// Read implements the Bank interface.
func (p *CPUPort) Read(address uint16) uint8 {
	switch address {
	case 0x0000:
		return p.dir
	case 0x0001:
		now := p.clk.Cycles()
		v := p.dataRead
		if !p.bit6.Read(now) {
			v &^= 0x40
		}
		if !p.bit7.Read(now) {
			v &^= 0x80
		}
		return v
	}
	return p.ram.Read(address)
}

// Write implements the Bank interface. Writing to $00 or $01 also writes the
// value on the data bus to the RAM beneath.
func (p *CPUPort) Write(address uint16, data uint8) {
	switch address {
	case 0x0000:
		now := p.clk.Cycles()
		k := p.falloff()
		p.bit6.K = k
		p.bit7.K = k
		for _, b := range []struct {
			bit  *DecayingBit
			mask uint8
		}{
			{bit: &p.bit6, mask: 0x40},
			{bit: &p.bit7, mask: 0x80},
		} {
			if data&b.mask == 0 {
				b.bit.Release(now)
			} else {
				b.bit.Assert(now)
			}
		}
		p.dir = data
		p.update()
		data = p.bus.Read(address)

	case 0x0001:
		now := p.clk.Cycles()
		if p.dir&0x40 != 0 && data&0x40 != 0 {
			p.bit6.Set(now)
		}
		if p.dir&0x80 != 0 && data&0x80 != 0 {
			p.bit7.Set(now)
		}
		p.data = data
		p.update()
		data = p.bus.Read(address)
	}

	p.ram.Write(address, data)
}

// Lines returns the state of the LORAM, HIRAM and CHAREN lines in bits 0 to
// 2.
func (p *CPUPort) Lines() uint8 {
	return (p.data | ^p.dir) & (p.dataOut | 0x17) & 0x07
}

// Bit returns the state of the decaying bit (6 or 7) at the current time.
func (p *CPUPort) Bit(n int) DecayState {
	now := p.clk.Cycles()
	if n == 6 {
		return p.bit6.State(now)
	}
	return p.bit7.State(now)
}
