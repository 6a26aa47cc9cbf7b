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

// Package via implements the register glue of the MOS6522 Versatile
// Interface Adapter. The 1541 disk drive has two of these chips. The first
// is connected to the serial bus and the second to the drive mechanics.
//
// As with the cia package, connections to the rest of the drive are
// supplied as an InterruptSink and a PortHook, and the timers are evaluated
// from the current cycle rather than being stepped.
package via
