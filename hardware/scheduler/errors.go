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

// InvariantError is the value used to panic when the scheduler detects that
// time would move backwards. This is always a programming error and the
// emulation cannot continue.
type InvariantError struct {
	Scheduler string
	Cycle     uint64
	Phase     Phase
	Event     string
	Detail    string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("scheduler: %s: %s (cycle %d %s, event %q)",
		e.Scheduler, e.Detail, e.Cycle, e.Phase, e.Event)
}
