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

// Package drive emulates the 1541 disk drive. The drive is a computer in its
// own right, with a 6502, 2K of RAM, 16K of ROM and two 6522 VIAs. It runs
// from its own scheduler at 1MHz and is kept in step with the C64 by the
// bridge package.
//
// VIA1 is the bus controller. Port B is connected to the serial bus and
// port A to the optional parallel cable. ATN arrives at CA1.
//
// VIA2 is the disk controller. Port B controls the stepper motor, the spindle
// motor, the LED and the bit rate of the read/write electronics, and reports
// the write protect sensor and the SYNC signal. Port A is the GCR byte under
// the head. Every time a byte has been shifted in (or out), the byte ready
// signal sets the overflow flag of the CPU and pulses CA1.
//
// The disk itself is anything that implements the DiskImage interface.
// Tracks are fetched from the image as GCR data when the head moves onto
// them and are written back when the head moves off a track that has been
// written to, or when the disk is ejected.
package drive
