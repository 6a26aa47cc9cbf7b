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

// IOBank is the I/O region at $D000 to $DFFF.
//
//	$D000-$D3FF	VIC registers, mirrored every 64 bytes
//	$D400-$D7FF	SID registers, mirrored every 32 bytes
//	$D800-$DBFF	colour RAM
//	$DC00-$DCFF	CIA1 registers, mirrored every 16 bytes
//	$DD00-$DDFF	CIA2 registers, mirrored every 16 bytes
//	$DE00-$DEFF	I/O 1 (expansion port)
//	$DF00-$DFFF	I/O 2 (expansion port)
type IOBank struct {
	bus   *DisconnectedBus
	color *ColorRAM

	vic  Bank
	sid  Bank
	cia1 Bank
	cia2 Bank
	io1  Bank
	io2  Bank
}

// NewIOBank is the preferred method of initialisation for the IOBank type.
// Until Plumb() is called every chip reads from the disconnected bus.
func NewIOBank(bus *DisconnectedBus, color *ColorRAM) *IOBank {
	return &IOBank{
		bus:   bus,
		color: color,
		vic:   bus,
		sid:   bus,
		cia1:  bus,
		cia2:  bus,
		io1:   bus,
		io2:   bus,
	}
}

// Plumb the chips into the I/O region. Register addresses passed to the
// chips have the mirror bits removed.
func (io *IOBank) Plumb(vic, sid, cia1, cia2 Bank) {
	io.vic = vic
	io.sid = sid
	io.cia1 = cia1
	io.cia2 = cia2
}

// SetExpansion sets the banks for the I/O 1 and I/O 2 areas. A nil value
// disconnects the area.
func (io *IOBank) SetExpansion(io1, io2 Bank) {
	if io1 == nil {
		io1 = io.bus
	}
	if io2 == nil {
		io2 = io.bus
	}
	io.io1 = io1
	io.io2 = io2
}

// Read implements the Bank interface.
func (io *IOBank) Read(address uint16) uint8 {
	switch (address >> 8) & 0x0f {
	case 0x0, 0x1, 0x2, 0x3:
		return io.vic.Read(address & 0x3f)
	case 0x4, 0x5, 0x6, 0x7:
		return io.sid.Read(address & 0x1f)
	case 0x8, 0x9, 0xa, 0xb:
		return io.color.Read(address & 0x3ff)
	case 0xc:
		return io.cia1.Read(address & 0x0f)
	case 0xd:
		return io.cia2.Read(address & 0x0f)
	case 0xe:
		return io.io1.Read(address)
	}
	return io.io2.Read(address)
}

// Write implements the Bank interface.
func (io *IOBank) Write(address uint16, data uint8) {
	switch (address >> 8) & 0x0f {
	case 0x0, 0x1, 0x2, 0x3:
		io.vic.Write(address&0x3f, data)
	case 0x4, 0x5, 0x6, 0x7:
		io.sid.Write(address&0x1f, data)
	case 0x8, 0x9, 0xa, 0xb:
		io.color.Write(address&0x3ff, data)
	case 0xc:
		io.cia1.Write(address&0x0f, data)
	case 0xd:
		io.cia2.Write(address&0x0f, data)
	case 0xe:
		io.io1.Write(address, data)
	default:
		io.io2.Write(address, data)
	}
}
