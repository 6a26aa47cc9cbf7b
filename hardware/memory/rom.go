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

import "fmt"

// The required size of each system ROM.
const (
	BasicSize   = 0x2000
	KernalSize  = 0x2000
	ChargenSize = 0x1000
)

// ROM is an area of read-only memory. Writes are ignored.
type ROM struct {
	label  string
	memory []uint8
	mask   uint16
}

// NewROM creates a ROM of the specified size. The size must be a power of
// two.
func NewROM(label string, size int) *ROM {
	return &ROM{
		label:  label,
		memory: make([]uint8, size),
		mask:   uint16(size - 1),
	}
}

func (rom *ROM) String() string {
	return fmt.Sprintf("%s (%dK)", rom.label, len(rom.memory)/1024)
}

// Load data into the ROM. The data must be exactly the size of the ROM.
func (rom *ROM) Load(data []uint8) error {
	if len(data) != len(rom.memory) {
		return fmt.Errorf("memory: %s: ROM must be %d bytes not %d", rom.label, len(rom.memory), len(data))
	}
	copy(rom.memory, data)
	return nil
}

// Read implements the Bank interface.
func (rom *ROM) Read(address uint16) uint8 {
	return rom.memory[address&rom.mask]
}

// Write implements the Bank interface. Writing to ROM does nothing.
func (rom *ROM) Write(_ uint16, _ uint8) {
}

// Data returns a copy of the ROM contents.
func (rom *ROM) Data() []uint8 {
	d := make([]uint8, len(rom.memory))
	copy(d, rom.memory)
	return d
}
