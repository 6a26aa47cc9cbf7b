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

// ColorRAMSize is the number of nibbles in colour RAM.
const ColorRAMSize = 0x400

// ColorRAM is the 1K x 4bit static RAM used by the VIC for the colour of
// each character cell. Only the lower nibble is stored. The upper nibble of
// a read comes from the floating data bus.
type ColorRAM struct {
	bus    *DisconnectedBus
	memory [ColorRAMSize]uint8
}

// NewColorRAM is the preferred method of initialisation for the ColorRAM
// type.
func NewColorRAM(bus *DisconnectedBus) *ColorRAM {
	return &ColorRAM{bus: bus}
}

// Reset clears colour RAM.
func (cr *ColorRAM) Reset() {
	clear(cr.memory[:])
}

// Read implements the Bank interface.
func (cr *ColorRAM) Read(address uint16) uint8 {
	return cr.memory[address&(ColorRAMSize-1)] | cr.bus.Read(address)&0xf0
}

// Write implements the Bank interface.
func (cr *ColorRAM) Write(address uint16, data uint8) {
	cr.memory[address&(ColorRAMSize-1)] = data & 0x0f
}

// Nibble returns the colour stored at the address without involving the
// data bus. This is how the VIC sees colour RAM.
func (cr *ColorRAM) Nibble(address uint16) uint8 {
	return cr.memory[address&(ColorRAMSize-1)]
}
