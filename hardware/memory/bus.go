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

package memory

// DisconnectedBus is used for reads from addresses where nothing drives the
// data bus. The value read is the last value seen on the bus, which is
// usually the last value fetched by the VIC.
type DisconnectedBus struct {
	last uint8
}

// Drive records the value currently on the data bus.
func (bus *DisconnectedBus) Drive(data uint8) {
	bus.last = data
}

// Read implements the Bank interface.
func (bus *DisconnectedBus) Read(_ uint16) uint8 {
	return bus.last
}

// Write implements the Bank interface. The value written becomes the value
// on the bus.
func (bus *DisconnectedBus) Write(_ uint16, data uint8) {
	bus.last = data
}
