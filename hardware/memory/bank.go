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

import "errors"

// Bank is implemented by any area of memory or any chip that can be mapped
// into the address space of the CPU.
type Bank interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// ErrUnmapped is returned by operations that address a region with nothing
// mapped to it.
var ErrUnmapped = errors.New("memory: unmapped address")

// Clock is the source of time for parts of the memory system that change
// with time.
type Clock interface {
	Cycles() uint64
}
