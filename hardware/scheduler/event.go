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

package scheduler

import "fmt"

// Phase is one half of a clock cycle.
type Phase int

// List of valid Phase values. PHI1 is the early half of the cycle and PHI2
// is the late half. In the C64, the VIC owns the bus during PHI1 and the CPU
// owns the bus during PHI2.
const (
	PHI1 Phase = iota
	PHI2
)

func (p Phase) String() string {
	switch p {
	case PHI1:
		return "PHI1"
	case PHI2:
		return "PHI2"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Event is the action that is performed when a scheduled time is reached.
type Event interface {
	Label() string
	Fire()
}

type eventFunc struct {
	label string
	fire  func()
}

func (e eventFunc) Label() string {
	return e.label
}

func (e eventFunc) Fire() {
	e.fire()
}

// EventFunc adapts a function to the Event interface.
func EventFunc(label string, fire func()) Event {
	return eventFunc{label: label, fire: fire}
}

// entry is an event in the queue.
type entry struct {
	ev  Event
	key uint64
	seq uint64

	// position in the heap. a negative value indicates that the entry is not
	// in the queue, either because it has fired or because it has been
	// cancelled
	index int
}

// Handle refers to a single scheduling of an event. The zero value refers to
// nothing and is never pending.
type Handle struct {
	e *entry
}
