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

// Package sid implements the register file of the MOS6581 and MOS8580 sound
// chips. Sound synthesis is not emulated. What is emulated is the master
// volume DAC, which is the path used by programs that play digitised samples
// by writing to the volume register, and the data bus behaviour of the write
// only registers.
//
// Samples are produced by an event on the scheduler and passed to every
// registered SampleSink. No samples are produced while there are no sinks.
package sid
