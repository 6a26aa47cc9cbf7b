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

// Package registers implements the status register of the 6502 and the
// arithmetic that sets its flags.
//
// The general purpose registers of the CPU are plain uint8 values. The
// complexity of the 6502 lies in how the flags of the status register are
// affected by arithmetic, particularly in decimal mode. The functions in
// this package return the result of an operation and update the status
// register.
package registers
