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

package cpu

import (
	"errors"
	"iter"

	"github.com/jetsetilly/gopher64/hardware/scheduler"
)

// errStopped is returned by the driver's cycle callback when the driver has
// been stopped. It is never seen outside the package.
var errStopped = errors.New("cpu: driver stopped")

// Driver runs a CPU from a scheduler. The driver is an event that fires once
// per cycle on PHI2 and which advances the CPU by exactly one bus access.
//
// ExecuteInstruction() is run as a coroutine and the cycle callback suspends
// the coroutine after every bus access. This means that the CPU never runs
// ahead of the scheduler that drives it.
type Driver struct {
	label string
	cpu   *CPU
	sched *scheduler.Scheduler

	next   func() (struct{}, bool)
	stop   func()
	handle scheduler.Handle

	// number of bus accesses performed since the last reset
	accesses uint64
}

// NewDriver is the preferred method of initialisation for the Driver type.
// The driver does nothing until Reset() is called.
func NewDriver(label string, mc *CPU, sched *scheduler.Scheduler) *Driver {
	return &Driver{
		label: label,
		cpu:   mc,
		sched: sched,
	}
}

// Label implements the scheduler.Event interface.
func (d *Driver) Label() string {
	return d.label
}

// CPU returns the CPU being driven.
func (d *Driver) CPU() *CPU {
	return d.cpu
}

// Accesses returns the number of bus accesses since the last reset.
func (d *Driver) Accesses() uint64 {
	return d.accesses
}

func (d *Driver) coroutine(yield func(struct{}) bool) {
	d.sched.Share()

	callback := func() error {
		if !yield(struct{}{}) {
			return errStopped
		}
		return nil
	}

	for {
		err := d.cpu.ExecuteInstruction(callback)
		if errors.Is(err, errStopped) {
			return
		}

		// a forced jump abandons the instruction. execution continues from
		// the new PC
	}
}

// Stop the driver. The CPU will not be advanced again until the next call to
// Reset().
func (d *Driver) Stop() {
	d.sched.Cancel(d.handle)
	if d.stop != nil {
		d.stop()
		d.stop = nil
		d.next = nil
	}
}

// Reset the CPU and schedule the driver to fire on the next PHI2. The reset
// sequence of the CPU is performed by the first instruction.
func (d *Driver) Reset() {
	d.Stop()
	d.cpu.Reset()
	d.accesses = 0
	d.next, d.stop = iter.Pull(d.coroutine)
	d.handle = d.sched.Schedule(d, 0, scheduler.PHI2)
}

// Fire implements the scheduler.Event interface.
func (d *Driver) Fire() {
	if d.next == nil {
		return
	}
	if _, ok := d.next(); !ok {
		return
	}
	d.accesses++
	d.handle = d.sched.Schedule(d, 1, scheduler.PHI2)
}
