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

// Package bridge couples the scheduler of the C64 (the primary) to the
// scheduler of a peripheral with its own clock (the secondary). The secondary
// only runs when the bridge tells it to. Before any access that crosses from
// one clock domain to the other, the emulation calls Synchronize() and the
// secondary is run until it has caught up with the primary.
//
// The secondary time that corresponds to the current primary time is
//
//	base2 + floor((now1 - base1) * R2 / R1)
//
// where R1 and R2 are the exact clock rates of the two domains and base1 and
// base2 are a pair of times that are known to correspond. The product is
// calculated with 128 bit intermediates so that the result is exact for any
// practical elapsed time.
//
// The baseline is moved whenever the ratio changes, and whenever the bridge
// is re-enabled, so that time already elapsed is never recalculated with a
// different ratio.
//
// Everything happens on the goroutine running the primary scheduler. There
// is no concurrency between the two domains.
package bridge
