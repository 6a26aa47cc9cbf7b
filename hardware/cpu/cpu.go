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
	"fmt"

	"github.com/jetsetilly/gopher64/environment"
	"github.com/jetsetilly/gopher64/hardware/cpu/instructions"
	"github.com/jetsetilly/gopher64/hardware/cpu/registers"
)

// Memory is the address space as seen by the CPU.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// Addresses of the interrupt vectors.
const (
	NMIVector   uint16 = 0xfffa
	ResetVector uint16 = 0xfffc
	IRQVector   uint16 = 0xfffe
)

// ErrForcedJump is returned by ExecuteInstruction() when the instruction was
// abandoned because of a call to ForcedJump().
var ErrForcedJump = errors.New("cpu: forced jump")

// CPU implements the NMOS 6502 as found in the C64 (as the 6510) and the
// 1541 disk drive.
type CPU struct {
	env *environment.Environment

	PC     uint16
	A      uint8
	X      uint8
	Y      uint8
	SP     uint8
	Status registers.StatusRegister

	mem          Memory
	instructions []*instructions.Definition

	// cycleCallback is called after every bus access
	cycleCallback func() error

	// the last instruction executed
	LastResult Result

	// the CPU has encountered a JAM instruction. requires a Reset()
	Killed bool

	// interrupt lines
	irq        bool
	nmi        bool
	nmiPending bool

	// the reset sequence will be performed at the next call to
	// ExecuteInstruction()
	resetPending bool

	// forced jump requested while an instruction is executing
	executing   bool
	jumpPending bool
	jumpAddress uint16
}

// NewCPU is the preferred method of initialisation for the CPU type. The
// environment argument can be nil.
func NewCPU(env *environment.Environment, mem Memory) *CPU {
	mc := &CPU{
		env:          env,
		mem:          mem,
		instructions: instructions.GetDefinitions(),
	}
	mc.Reset()
	return mc
}

func (mc *CPU) String() string {
	return fmt.Sprintf("PC=%04x A=%02x X=%02x Y=%02x SP=%02x SR=%s", mc.PC, mc.A, mc.X, mc.Y, mc.SP, mc.Status)
}

// Reset the CPU. The registers are set to their power-on state and the
// reset sequence, which loads the PC from the reset vector, will be
// performed at the next call to ExecuteInstruction().
func (mc *CPU) Reset() {
	mc.LastResult.Reset()
	mc.Killed = false
	mc.irq = false
	mc.nmi = false
	mc.nmiPending = false
	mc.jumpPending = false
	mc.resetPending = true

	if mc.env != nil && mc.env.Prefs.RandomState.Get().(bool) {
		mc.A = mc.env.Random.Uint8()
		mc.X = mc.env.Random.Uint8()
		mc.Y = mc.env.Random.Uint8()
		mc.SP = mc.env.Random.Uint8()
		mc.Status.FromValue(mc.env.Random.Uint8())
	} else {
		mc.A = 0
		mc.X = 0
		mc.Y = 0
		mc.SP = 0
		mc.Status.Reset()
	}
}

// SetIRQ sets the state of the IRQ line. True means the line is being
// pulled low by at least one device.
func (mc *CPU) SetIRQ(state bool) {
	mc.irq = state
}

// SetNMI sets the state of the NMI line. An NMI is triggered when the line
// is first pulled low.
func (mc *CPU) SetNMI(state bool) {
	if state && !mc.nmi {
		mc.nmiPending = true
	}
	mc.nmi = state
}

// SetOverflow sets the overflow flag. This is the SO pin of the CPU.
func (mc *CPU) SetOverflow() {
	mc.Status.Overflow = true
}

// ForcedJump moves execution to the address. The PC changes immediately. If
// an instruction is in progress it is abandoned at the end of the current
// cycle. A pending reset sequence is skipped but interrupts are left
// disabled, as they would be after the reset.
func (mc *CPU) ForcedJump(address uint16) {
	mc.PC = address
	if mc.resetPending {
		mc.resetPending = false
		mc.Status.InterruptDisable = true
	}
	if mc.executing {
		mc.jumpPending = true
		mc.jumpAddress = address
	}
}

// cycle ends the current bus access.
func (mc *CPU) cycle() error {
	mc.LastResult.Cycles++
	if err := mc.cycleCallback(); err != nil {
		return err
	}
	if mc.jumpPending {
		mc.jumpPending = false
		mc.PC = mc.jumpAddress
		return ErrForcedJump
	}
	return nil
}

func (mc *CPU) read(address uint16) (uint8, error) {
	v := mc.mem.Read(address)
	return v, mc.cycle()
}

func (mc *CPU) write(address uint16, data uint8) error {
	mc.mem.Write(address, data)
	return mc.cycle()
}

// readPC reads from the address pointed to by the PC and then increments the
// PC.
func (mc *CPU) readPC() (uint8, error) {
	v := mc.mem.Read(mc.PC)
	mc.PC++
	return v, mc.cycle()
}

func (mc *CPU) push(data uint8) error {
	mc.mem.Write(0x0100|uint16(mc.SP), data)
	mc.SP--
	return mc.cycle()
}

func (mc *CPU) pull() (uint8, error) {
	mc.SP++
	return mc.read(0x0100 | uint16(mc.SP))
}

func (mc *CPU) readVector(vector uint16) error {
	lo, err := mc.read(vector)
	if err != nil {
		return err
	}
	hi, err := mc.read(vector + 1)
	if err != nil {
		return err
	}
	mc.PC = uint16(hi)<<8 | uint16(lo)
	return nil
}

// interrupt performs the IRQ and NMI sequences, and the tail of the BRK
// instruction.
func (mc *CPU) interrupt(vector uint16, brk bool) error {
	if err := mc.push(uint8(mc.PC >> 8)); err != nil {
		return err
	}
	if err := mc.push(uint8(mc.PC)); err != nil {
		return err
	}

	sr := mc.Status.Value() &^ 0x10
	if brk {
		sr |= 0x10
	}
	if err := mc.push(sr); err != nil {
		return err
	}
	mc.Status.InterruptDisable = true

	// an NMI that arrives before the vector is read hijacks the sequence
	if vector == IRQVector && mc.nmiPending {
		mc.nmiPending = false
		vector = NMIVector
	}

	return mc.readVector(vector)
}

func (mc *CPU) resetSequence() error {
	for range 2 {
		if _, err := mc.read(mc.PC); err != nil {
			return err
		}
	}

	// the reset sequence goes through the motions of pushing to the stack
	// but the bus is in read mode
	for range 3 {
		_, err := mc.read(0x0100 | uint16(mc.SP))
		mc.SP--
		if err != nil {
			return err
		}
	}

	mc.Status.InterruptDisable = true
	return mc.readVector(ResetVector)
}

// NilCycleCallback can be provided as an argument to ExecuteInstruction().
// It's a convenient do-nothing function.
func NilCycleCallback() error {
	return nil
}

// ExecuteInstruction steps the CPU forward one instruction, or one interrupt
// sequence if an interrupt is pending. The basic process when executing an
// instruction is this:
//
//  1. read opcode and look up instruction definition
//  2. read operands (if any) according to the addressing mode of the instruction
//  3. using the operator as a guide, perform the instruction on the data
//
// Every bus access is followed by a call to cycleCallback. An error returned
// by the callback abandons the instruction and is returned.
func (mc *CPU) ExecuteInstruction(cycleCallback func() error) error {
	mc.cycleCallback = cycleCallback
	mc.executing = true
	defer func() {
		mc.executing = false
	}()

	mc.LastResult.Reset()
	mc.LastResult.Address = mc.PC

	// a killed CPU does nothing but still takes time
	if mc.Killed {
		mc.LastResult.Final = true
		return mc.cycle()
	}

	if mc.resetPending {
		mc.resetPending = false
		mc.LastResult.Interrupt = Reset
		if err := mc.resetSequence(); err != nil {
			return err
		}
		mc.LastResult.Final = true
		return nil
	}

	if mc.nmiPending || (mc.irq && !mc.Status.InterruptDisable) {
		vector := IRQVector
		mc.LastResult.Interrupt = IRQ
		if mc.nmiPending {
			mc.nmiPending = false
			vector = NMIVector
			mc.LastResult.Interrupt = NMI
		}

		// the opcode is fetched and discarded and the PC is not incremented
		for range 2 {
			if _, err := mc.read(mc.PC); err != nil {
				return err
			}
		}
		if err := mc.interrupt(vector, false); err != nil {
			return err
		}
		mc.LastResult.Final = true
		return nil
	}

	opcode, err := mc.readPC()
	if err != nil {
		return err
	}
	defn := mc.instructions[opcode]
	mc.LastResult.Defn = defn

	err = mc.execute(defn)
	if err != nil {
		return err
	}

	mc.LastResult.ByteCount = defn.Bytes
	mc.LastResult.Final = true
	return nil
}
