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

// Package memory implements the C64 memory model.
//
// Every access made by the CPU goes through the PLA. The PLA decodes the
// address into one of sixteen 4K regions and passes the access to the Bank
// that currently owns that region. Which Bank owns a region depends on the
// three lines of the CPU port (LORAM, HIRAM and CHAREN) and on the two lines
// of the expansion port (EXROM and GAME).
//
//	                  CPU port ($00/$01)
//	                          |
//	                          \/
//
//	    CPU ---- PLA ---- RAM / BASIC / KERNAL / CHARGEN / cartridge
//	              |
//	              |---- IOBank ---- VIC / SID / colour RAM / CIA1 / CIA2 / IO1 / IO2
//	              |
//	    VIC ------
//
// The VIC sees memory differently to the CPU. It only ever sees a 16K window
// of RAM, selected by the lines of CIA2 port A, and the character ROM is
// visible to it in banks 0 and 2.
//
// Writing to an address that is mapped to ROM writes to the RAM beneath it.
// The bank configuration only ever changes as a result of a write to the CPU
// port or as a result of attaching or detaching a cartridge. None of these
// operations affect the scheduler.
package memory
