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

// Package scheduler implements the discrete event scheduler that drives every
// chip in the emulation.
//
// Time is measured in cycles of the scheduler's clock. Each cycle is divided
// into two phases, PHI1 and PHI2, and internally the scheduler counts half
// cycles so that an event key is simply:
//
//	key = cycle<<1 | phase
//
// Events with the same key fire in the order in which they were scheduled.
// Time only moves forward, except for Reset() which returns the scheduler to
// cycle zero and discards every pending event.
//
// With the exception of ScheduleThreadSafe(), the functions of the Scheduler
// type must only be called from the goroutine that is running the emulation.
// When built with the assertions tag, this requirement is checked.
package scheduler
