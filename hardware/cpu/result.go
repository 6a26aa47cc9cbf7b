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
	"fmt"

	"github.com/jetsetilly/gopher64/hardware/cpu/instructions"
)

// InterruptKind identifies the interrupt sequence performed by the CPU.
type InterruptKind int

// List of valid InterruptKind values.
const (
	NoInterrupt InterruptKind = iota
	IRQ
	NMI
	Reset
)

func (k InterruptKind) String() string {
	switch k {
	case NoInterrupt:
		return "none"
	case IRQ:
		return "IRQ"
	case NMI:
		return "NMI"
	case Reset:
		return "RESET"
	}
	return fmt.Sprintf("interrupt(%d)", int(k))
}

// Result records the details of the most recently executed instruction.
type Result struct {
	// address of the instruction
	Address uint16

	// definition of the instruction. nil if the CPU performed an interrupt
	// sequence rather than an instruction
	Defn *instructions.Definition

	// operand of the instruction
	InstructionData uint16

	ByteCount int
	Cycles    int

	PageFault     bool
	BranchSuccess bool

	// the CPU performed an interrupt sequence rather than an instruction
	Interrupt InterruptKind

	// the instruction has completed
	Final bool
}

// Reset the result ready for the next instruction.
func (r *Result) Reset() {
	*r = Result{}
}

func (r Result) String() string {
	if r.Interrupt != NoInterrupt {
		return fmt.Sprintf("%s (%d cycles)", r.Interrupt, r.Cycles)
	}
	if r.Defn == nil {
		return "no instruction"
	}

	var operand string
	switch r.Defn.AddressingMode {
	case instructions.Implied:
	case instructions.Immediate:
		operand = fmt.Sprintf("#$%02x", r.InstructionData)
	case instructions.Relative, instructions.ZeroPage:
		operand = fmt.Sprintf("$%02x", r.InstructionData)
	case instructions.ZeroPageIndexedX:
		operand = fmt.Sprintf("$%02x,X", r.InstructionData)
	case instructions.ZeroPageIndexedY:
		operand = fmt.Sprintf("$%02x,Y", r.InstructionData)
	case instructions.Absolute:
		operand = fmt.Sprintf("$%04x", r.InstructionData)
	case instructions.AbsoluteIndexedX:
		operand = fmt.Sprintf("$%04x,X", r.InstructionData)
	case instructions.AbsoluteIndexedY:
		operand = fmt.Sprintf("$%04x,Y", r.InstructionData)
	case instructions.Indirect:
		operand = fmt.Sprintf("($%04x)", r.InstructionData)
	case instructions.IndexedIndirect:
		operand = fmt.Sprintf("($%02x,X)", r.InstructionData)
	case instructions.IndirectIndexed:
		operand = fmt.Sprintf("($%02x),Y", r.InstructionData)
	}

	s := fmt.Sprintf("%04x %s", r.Address, r.Defn.Mnemonic)
	if operand != "" {
		s = fmt.Sprintf("%s %s", s, operand)
	}
	return fmt.Sprintf("%s (%d cycles)", s, r.Cycles)
}
