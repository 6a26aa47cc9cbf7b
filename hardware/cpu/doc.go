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

// Package cpu emulates the NMOS 6502 family of processors. The 6510 in the
// C64 and the 6502 in the 1541 disk drive share the same implementation.
//
// The ExecuteInstruction() function runs a single instruction. After every
// bus access the cycle callback is called, which gives the rest of the
// emulation the opportunity to run for one cycle. Instructions therefore
// take exactly as many calls to the callback as there are cycles in the
// instruction, including the phantom reads and writes made by the real CPU.
//
// The Driver type connects a CPU to a scheduler. Each time the driver's
// event fires the CPU makes one bus access, so the CPU is interleaved with
// every other event in the scheduler at the resolution of a single cycle.
//
// Interrupts are sampled at the start of every instruction. The IRQ line is
// level triggered and the NMI line is edge triggered. An NMI takes priority
// over an IRQ.
package cpu
