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

package cpu_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/hardware/cpu"
)

// access records a single bus access
type access struct {
	address uint16
	data    uint8
	write   bool
}

type mockMem struct {
	internal [0x10000]uint8
	log      []access
}

// the program origin used by the tests. the reset vector points here
const origin = 0x0200

func newMockMem() *mockMem {
	mem := &mockMem{}
	mem.internal[cpu.ResetVector] = uint8(origin & 0xff)
	mem.internal[cpu.ResetVector+1] = uint8(origin >> 8)
	return mem
}

func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		mem.internal[origin+uint16(i)] = b
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) Read(address uint16) uint8 {
	v := mem.internal[address]
	mem.log = append(mem.log, access{address: address, data: v})
	return v
}

func (mem *mockMem) Write(address uint16, data uint8) {
	mem.internal[address] = data
	mem.log = append(mem.log, access{address: address, data: data, write: true})
}

func (mem *mockMem) writes() []access {
	var w []access
	for _, a := range mem.log {
		if a.write {
			w = append(w, a)
		}
	}
	return w
}

// newCPU returns a CPU that has completed the reset sequence with the PC at
// the origin
func newCPU(t *testing.T) (*cpu.CPU, *mockMem) {
	t.Helper()
	mem := newMockMem()
	mc := cpu.NewCPU(nil, mem)
	step(t, mc)
	mem.log = mem.log[:0]
	return mc, mem
}

func step(t *testing.T, mc *cpu.CPU) cpu.Result {
	t.Helper()
	err := mc.ExecuteInstruction(cpu.NilCycleCallback)
	if err != nil {
		t.Fatal(err)
	}
	if !mc.LastResult.Final {
		t.Fatalf("instruction did not complete: %s", mc.LastResult)
	}
	return mc.LastResult
}
