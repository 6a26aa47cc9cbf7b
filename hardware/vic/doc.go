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

// Package vic implements the register glue of the MOS6569 (PAL) and MOS6567
// (NTSC) video chips. The raster position is advanced by an event at the
// start of every line, which also performs the raster compare. The IRQ
// latch and mask, the lightpen latch and the register file behave as the
// real chip does.
//
// Pixels are not generated. At the end of every frame the chip produces a
// Frame, which is a copy of the text screen as it would be fetched through
// the VIC's view of memory, and passes it to every registered FrameSink.
package vic
