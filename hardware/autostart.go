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

package hardware

import (
	"github.com/jetsetilly/gopher64/hardware/program"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
	"github.com/jetsetilly/gopher64/logger"
)

// AutostartHook is told when a loaded program has been started. The PC is
// the address the CPU will execute from and the cycle is the cycle of the
// C64 scheduler on which the program was placed.
type AutostartHook interface {
	Autostart(pc uint16, cycle uint64)
}

// AutostartHookFunc adapts a function to the AutostartHook interface.
type AutostartHookFunc func(pc uint16, cycle uint64)

// Autostart implements the AutostartHook interface.
func (fn AutostartHookFunc) Autostart(pc uint16, cycle uint64) {
	fn(pc, cycle)
}

// Zero page locations used by BASIC and the KERNAL.
const (
	zpTXTTAB = 0x2b // start of BASIC program
	zpVARTAB = 0x2d // start of variables
	zpARYTAB = 0x2f // start of arrays
	zpSTREND = 0x31 // end of arrays
	zpTXTPTR = 0x7a // pointer into the BASIC program
	zpLOADS  = 0xac // start address of the last LOAD
	zpLOADE  = 0xae // end address of the last LOAD
	zpNDX    = 0xc6 // number of characters in the keyboard buffer
)

// BasicRunEntry is the address of the part of the BASIC interpreter that
// executes the RUN command once TXTPTR has been set.
const BasicRunEntry uint16 = 0xa7ae

// autostart is the event that places a loaded program in memory and starts
// it.
type autostart struct {
	ens    *Ensemble
	prog   *program.Program
	handle scheduler.Handle
	hooks  []AutostartHook
}

// Label implements the scheduler.Event interface.
func (a *autostart) Label() string {
	return "autostart"
}

// schedule the event for the cycle after reset given by the autostart delay
// preference. must be called after the C64 scheduler has been reset
func (a *autostart) schedule() {
	if a.prog == nil {
		return
	}
	delay := uint64(max(a.ens.env.Prefs.AutostartDelay.Get().(int), 0))
	a.handle = a.ens.c64.Sched.ScheduleAbsolute(a, delay, scheduler.PHI1)
}

func (a *autostart) cancel() {
	a.ens.c64.Sched.Cancel(a.handle)
}

// Fire implements the scheduler.Event interface.
func (a *autostart) Fire() {
	p := a.prog
	if p == nil {
		return
	}
	a.prog = nil

	c64 := a.ens.c64
	mem := c64.RAM.Array()
	copy(mem[p.LoadAddress:], p.Data)

	end := p.End()
	poke16 := func(address uint16, v uint16) {
		mem[address] = uint8(v)
		mem[address+1] = uint8(v >> 8)
	}
	poke16(zpVARTAB, end)
	poke16(zpARYTAB, end)
	poke16(zpSTREND, end)
	poke16(zpLOADS, p.LoadAddress)
	poke16(zpLOADE, end)

	var pc uint16
	if p.BasicRun {
		poke16(zpTXTTAB, p.LoadAddress)
		poke16(zpTXTPTR, p.LoadAddress-1)
		mem[zpNDX] = 0
		pc = BasicRunEntry
	} else {
		pc = p.Entry()
	}
	c64.CPU.ForcedJump(pc)

	logger.Logf(a.ens.env, "autostart", "%s started at $%04x", p, pc)

	cycle := c64.Sched.Cycles()
	for _, h := range a.hooks {
		h.Autostart(c64.CPU.PC, cycle)
	}
}
