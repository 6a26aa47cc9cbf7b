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

// Package cia implements the register glue of the MOS6526 Complex Interface
// Adapter. The C64 has two of these chips. CIA1 scans the keyboard and the
// joysticks and is connected to the IRQ line of the CPU. CIA2 selects the
// VIC bank, drives the serial bus and is connected to the NMI line.
//
// The chip does not know how it is connected to the rest of the machine.
// The connections are supplied as an InterruptSink and a PortHook when the
// chip is created.
//
// Timers are not stepped every cycle. A running timer records the cycle at
// which it was last loaded and an underflow event is scheduled for the
// cycle at which it will reach zero. The timer value is calculated from the
// current cycle whenever it is read.
package cia
