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

// Package iec implements the serial bus that connects the C64 to its disk
// drives. The bus has three open collector lines, ATN, CLK and DATA. A line
// is low if any device on the bus pulls it low.
//
// The C64 is connected through port A of CIA2. The outputs are inverted so
// writing a one to an output bit pulls the line low. The inputs read one when
// the line is high.
//
// Drives are connected through port B of their VIA1. Both the outputs and the
// inputs are inverted. The drive also has the ATN acknowledge circuit, which
// pulls DATA low whenever the ATN line and the ATNA output of the drive
// disagree, so that a drive is seen to be present as soon as ATN is pulled.
//
// Synchronisation of the clock domains is not the concern of this package.
// The emulation must bring the drives up to date before it calls into the bus.
package iec
