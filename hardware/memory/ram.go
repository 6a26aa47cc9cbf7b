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

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher64/environment"
)

// RAMSize is the size of the main memory of the C64.
const RAMSize = 0x10000

// RAM is the 64K of main memory.
type RAM struct {
	env    *environment.Environment
	memory [RAMSize]uint8
}

// NewRAM is the preferred method of initialisation for the RAM type.
func NewRAM(env *environment.Environment) *RAM {
	ram := &RAM{env: env}
	ram.Reset()
	return ram
}

// Reset fills memory with the power-on pattern. The pattern is 64 bytes of
// zero followed by 64 bytes of 0xff, repeated. If the randram preference is
// set then memory is filled with random values instead.
func (ram *RAM) Reset() {
	if ram.env != nil && ram.env.Prefs.RandomRAM.Get().(bool) {
		ram.env.Random.Fill(ram.memory[:])
		return
	}
	for i := range ram.memory {
		if i&0x40 == 0 {
			ram.memory[i] = 0x00
		} else {
			ram.memory[i] = 0xff
		}
	}
}

// Read implements the Bank interface.
func (ram *RAM) Read(address uint16) uint8 {
	return ram.memory[address]
}

// Write implements the Bank interface.
func (ram *RAM) Write(address uint16, data uint8) {
	ram.memory[address] = data
}

// Array returns the underlying memory. Loaders use this to place programs in
// memory without side effects.
func (ram *RAM) Array() []uint8 {
	return ram.memory[:]
}

// Dump returns a hex dump of the specified range of memory.
func (ram *RAM) Dump(from uint16, to uint16) string {
	s := strings.Builder{}
	s.WriteString("       -0 -1 -2 -3 -4 -5 -6 -7 -8 -9 -A -B -C -D -E -F\n")
	s.WriteString("     ---- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --\n")
	for a := int(from) &^ 0x0f; a <= int(to); a += 16 {
		s.WriteString(fmt.Sprintf("%04x | ", a))
		for x := range 16 {
			s.WriteString(fmt.Sprintf(" %02x", ram.memory[(a+x)&0xffff]))
		}
		s.WriteString("\n")
	}
	return strings.TrimSuffix(s.String(), "\n")
}
