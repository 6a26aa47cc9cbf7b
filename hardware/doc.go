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

// Package hardware is the base package for the C64 emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The Ensemble type is the root of the emulation. It contains the C64, the
// 1541 disk drive attached to the serial bus and the bridge that keeps the
// clock domains of the two machines in step. Each machine has its own
// scheduler and every chip is driven by events on the scheduler of the
// machine it belongs to.
//
// The emulation is single threaded. The goroutine that calls Step() or
// RunCycles() owns the emulation. Input and configuration changes from other
// goroutines are queued and applied at the start of the next call.
package hardware
