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

import "fmt"

// DecayState describes the state of a DecayingBit.
type DecayState int

// List of valid DecayState values.
const (
	Fallen DecayState = iota
	Written
	Decaying
)

func (s DecayState) String() string {
	switch s {
	case Fallen:
		return "fallen"
	case Written:
		return "written"
	case Decaying:
		return "decaying"
	}
	return fmt.Sprintf("decaystate(%d)", int(s))
}

// DecayingBit is a latched bit that keeps its value for a fixed number of
// cycles after it stops being driven. It models the capacitance of the
// unconnected bits of the CPU port.
//
// The state is evaluated lazily when the bit is read. No event is scheduled.
type DecayingBit struct {
	// number of cycles the value survives once it is no longer driven
	K uint64

	set        bool
	decaying   bool
	validUntil uint64
}

// Set latches the bit.
func (b *DecayingBit) Set(_ uint64) {
	b.set = true
}

// Release stops driving the bit. If the bit is latched then it starts to
// decay and will fall K cycles from now.
func (b *DecayingBit) Release(now uint64) {
	if b.set && !b.decaying {
		b.decaying = true
		b.validUntil = now + b.K
	}
}

// Assert drives the bit again. If the bit is decaying then the decay is
// cancelled.
func (b *DecayingBit) Assert(_ uint64) {
	if b.set && b.decaying {
		b.decaying = false
	}
}

func (b *DecayingBit) update(now uint64) {
	if b.decaying && now >= b.validUntil {
		b.decaying = false
		b.set = false
	}
}

// Read returns the value of the bit at the specified time.
func (b *DecayingBit) Read(now uint64) bool {
	b.update(now)
	return b.set
}

// State returns the state of the bit at the specified time.
func (b *DecayingBit) State(now uint64) DecayState {
	b.update(now)
	if !b.set {
		return Fallen
	}
	if b.decaying {
		return Decaying
	}
	return Written
}

// ValidUntil returns the cycle at which a decaying bit will fall. The value
// is meaningless if the bit is not decaying.
func (b *DecayingBit) ValidUntil() uint64 {
	return b.validUntil
}

// Reset the bit to the fallen state.
func (b *DecayingBit) Reset() {
	b.set = false
	b.decaying = false
	b.validUntil = 0
}
