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
	"github.com/jetsetilly/gopher64/hardware/cpu/instructions"
)

// address resolves the effective address of the instruction according to
// its addressing mode. For the indexed modes the base address (before
// indexing) is also returned.
func (mc *CPU) address(defn *instructions.Definition) (address uint16, base uint16, err error) {
	switch defn.AddressingMode {
	case instructions.ZeroPage:
		var lo uint8
		lo, err = mc.readPC()
		address = uint16(lo)
		mc.LastResult.InstructionData = address

	case instructions.ZeroPageIndexedX, instructions.ZeroPageIndexedY:
		var lo uint8
		lo, err = mc.readPC()
		if err != nil {
			return
		}
		mc.LastResult.InstructionData = uint16(lo)

		// the unindexed address is read while the index is added
		_, err = mc.read(uint16(lo))

		idx := mc.X
		if defn.AddressingMode == instructions.ZeroPageIndexedY {
			idx = mc.Y
		}
		base = uint16(lo)
		address = uint16(lo + idx)

	case instructions.Absolute:
		address, err = mc.readOperandWord()
		mc.LastResult.InstructionData = address

	case instructions.AbsoluteIndexedX, instructions.AbsoluteIndexedY:
		base, err = mc.readOperandWord()
		if err != nil {
			return
		}
		mc.LastResult.InstructionData = base

		idx := mc.X
		if defn.AddressingMode == instructions.AbsoluteIndexedY {
			idx = mc.Y
		}
		address, err = mc.indexed(defn, base, idx)

	case instructions.Indirect:
		var ptr uint16
		ptr, err = mc.readOperandWord()
		if err != nil {
			return
		}
		mc.LastResult.InstructionData = ptr

		var lo, hi uint8
		lo, err = mc.read(ptr)
		if err != nil {
			return
		}

		// the pointer does not cross page boundaries
		hi, err = mc.read(ptr&0xff00 | (ptr+1)&0x00ff)
		address = uint16(hi)<<8 | uint16(lo)

	case instructions.IndexedIndirect:
		var ptr uint8
		ptr, err = mc.readPC()
		if err != nil {
			return
		}
		mc.LastResult.InstructionData = uint16(ptr)

		_, err = mc.read(uint16(ptr))
		if err != nil {
			return
		}
		ptr += mc.X

		var lo, hi uint8
		lo, err = mc.read(uint16(ptr))
		if err != nil {
			return
		}
		hi, err = mc.read(uint16(ptr + 1))
		address = uint16(hi)<<8 | uint16(lo)

	case instructions.IndirectIndexed:
		var ptr uint8
		ptr, err = mc.readPC()
		if err != nil {
			return
		}
		mc.LastResult.InstructionData = uint16(ptr)

		var lo, hi uint8
		lo, err = mc.read(uint16(ptr))
		if err != nil {
			return
		}
		hi, err = mc.read(uint16(ptr + 1))
		if err != nil {
			return
		}
		base = uint16(hi)<<8 | uint16(lo)
		address, err = mc.indexed(defn, base, mc.Y)
	}

	return address, base, err
}

// readOperandWord reads a 16 bit little-endian operand.
func (mc *CPU) readOperandWord() (uint16, error) {
	lo, err := mc.readPC()
	if err != nil {
		return 0, err
	}
	hi, err := mc.readPC()
	return uint16(hi)<<8 | uint16(lo), err
}

// indexed adds the index to the base address. If the page boundary is
// crossed, or if the instruction writes to memory, the CPU reads from the
// partially calculated address before continuing.
func (mc *CPU) indexed(defn *instructions.Definition, base uint16, idx uint8) (uint16, error) {
	address := base + uint16(idx)
	mc.LastResult.PageFault = address&0xff00 != base&0xff00

	if mc.LastResult.PageFault || defn.Effect == instructions.Write || defn.Effect == instructions.RMW {
		if _, err := mc.read(base&0xff00 | address&0x00ff); err != nil {
			return address, err
		}
	}

	return address, nil
}

func (mc *CPU) branch(take bool, offset uint8) error {
	if !take {
		return nil
	}
	mc.LastResult.BranchSuccess = true

	if _, err := mc.read(mc.PC); err != nil {
		return err
	}

	target := mc.PC + uint16(int16(int8(offset)))
	if target&0xff00 != mc.PC&0xff00 {
		mc.LastResult.PageFault = true
		if _, err := mc.read(mc.PC&0xff00 | target&0x00ff); err != nil {
			return err
		}
	}

	mc.PC = target
	return nil
}

// unstable implements the high byte AND of the SHA, SHX, SHY and TAS
// instructions. If the page was crossed the value written corrupts the high
// byte of the address.
func (mc *CPU) unstable(address uint16, base uint16, v uint8) error {
	v &= uint8(base>>8) + 1
	if mc.LastResult.PageFault {
		address = uint16(v)<<8 | address&0x00ff
	}
	return mc.write(address, v)
}

func (mc *CPU) asl(v uint8) uint8 {
	mc.Status.Carry = v&0x80 == 0x80
	v <<= 1
	mc.Status.SetZN(v)
	return v
}

func (mc *CPU) lsr(v uint8) uint8 {
	mc.Status.Carry = v&0x01 == 0x01
	v >>= 1
	mc.Status.SetZN(v)
	return v
}

func (mc *CPU) rol(v uint8) uint8 {
	c := mc.Status.Carry
	mc.Status.Carry = v&0x80 == 0x80
	v <<= 1
	if c {
		v |= 0x01
	}
	mc.Status.SetZN(v)
	return v
}

func (mc *CPU) ror(v uint8) uint8 {
	c := mc.Status.Carry
	mc.Status.Carry = v&0x01 == 0x01
	v >>= 1
	if c {
		v |= 0x80
	}
	mc.Status.SetZN(v)
	return v
}

// execute performs the instruction once the opcode has been fetched.
func (mc *CPU) execute(defn *instructions.Definition) error {
	var value uint8
	var err error

	switch defn.AddressingMode {
	case instructions.Implied:
		// every implied instruction reads the next byte and discards it. BRK
		// also increments the PC
		if defn.Operator == instructions.Brk {
			_, err = mc.readPC()
		} else {
			_, err = mc.read(mc.PC)
		}
		if err != nil {
			return err
		}

	case instructions.Immediate, instructions.Relative:
		value, err = mc.readPC()
		if err != nil {
			return err
		}
		mc.LastResult.InstructionData = uint16(value)
	}

	// JSR reads the high byte of the address after the return address has
	// been pushed so the addressing is handled by the operator
	var address, base uint16
	if defn.Operator != instructions.Jsr {
		address, base, err = mc.address(defn)
		if err != nil {
			return err
		}
	}

	memoryOperand := defn.AddressingMode != instructions.Implied &&
		defn.AddressingMode != instructions.Immediate &&
		defn.AddressingMode != instructions.Relative

	if memoryOperand && (defn.Effect == instructions.Read || defn.Effect == instructions.RMW) {
		value, err = mc.read(address)
		if err != nil {
			return err
		}
	}

	// read-modify-write instructions write the unmodified value before
	// writing the result
	if memoryOperand && defn.Effect == instructions.RMW {
		if err := mc.write(address, value); err != nil {
			return err
		}
	}

	// the accumulator forms of the shift instructions
	if defn.Effect == instructions.RMW && defn.AddressingMode == instructions.Implied {
		value = mc.A
	}

	// store the result of a read-modify-write instruction
	store := func(v uint8) error {
		if defn.AddressingMode == instructions.Implied {
			mc.A = v
			return nil
		}
		return mc.write(address, v)
	}

	switch defn.Operator {
	case instructions.Nop:

	case instructions.Clc:
		mc.Status.Carry = false
	case instructions.Cld:
		mc.Status.DecimalMode = false
	case instructions.Cli:
		mc.Status.InterruptDisable = false
	case instructions.Clv:
		mc.Status.Overflow = false
	case instructions.Sec:
		mc.Status.Carry = true
	case instructions.Sed:
		mc.Status.DecimalMode = true
	case instructions.Sei:
		mc.Status.InterruptDisable = true

	case instructions.Pha:
		return mc.push(mc.A)
	case instructions.Php:
		return mc.push(mc.Status.Value() | 0x10)

	case instructions.Pla:
		if _, err := mc.read(0x0100 | uint16(mc.SP)); err != nil {
			return err
		}
		v, err := mc.pull()
		if err != nil {
			return err
		}
		mc.A = v
		mc.Status.SetZN(v)

	case instructions.Plp:
		if _, err := mc.read(0x0100 | uint16(mc.SP)); err != nil {
			return err
		}
		v, err := mc.pull()
		if err != nil {
			return err
		}
		mc.Status.FromValue(v &^ 0x10)

	case instructions.Tax:
		mc.X = mc.A
		mc.Status.SetZN(mc.X)
	case instructions.Tay:
		mc.Y = mc.A
		mc.Status.SetZN(mc.Y)
	case instructions.Tsx:
		mc.X = mc.SP
		mc.Status.SetZN(mc.X)
	case instructions.Txa:
		mc.A = mc.X
		mc.Status.SetZN(mc.A)
	case instructions.Txs:
		mc.SP = mc.X
	case instructions.Tya:
		mc.A = mc.Y
		mc.Status.SetZN(mc.A)

	case instructions.Inx:
		mc.X++
		mc.Status.SetZN(mc.X)
	case instructions.Iny:
		mc.Y++
		mc.Status.SetZN(mc.Y)
	case instructions.Dex:
		mc.X--
		mc.Status.SetZN(mc.X)
	case instructions.Dey:
		mc.Y--
		mc.Status.SetZN(mc.Y)

	case instructions.Lda:
		mc.A = value
		mc.Status.SetZN(mc.A)
	case instructions.Ldx:
		mc.X = value
		mc.Status.SetZN(mc.X)
	case instructions.Ldy:
		mc.Y = value
		mc.Status.SetZN(mc.Y)
	case instructions.Lax:
		mc.A = value
		mc.X = value
		mc.Status.SetZN(value)
	case instructions.Las:
		value &= mc.SP
		mc.A = value
		mc.X = value
		mc.SP = value
		mc.Status.SetZN(value)

	case instructions.Sta:
		return mc.write(address, mc.A)
	case instructions.Stx:
		return mc.write(address, mc.X)
	case instructions.Sty:
		return mc.write(address, mc.Y)
	case instructions.Sax:
		return mc.write(address, mc.A&mc.X)

	case instructions.Sha:
		return mc.unstable(address, base, mc.A&mc.X)
	case instructions.Shx:
		return mc.unstable(address, base, mc.X)
	case instructions.Shy:
		return mc.unstable(address, base, mc.Y)
	case instructions.Tas:
		mc.SP = mc.A & mc.X
		return mc.unstable(address, base, mc.SP)

	case instructions.Ora:
		mc.A |= value
		mc.Status.SetZN(mc.A)
	case instructions.And:
		mc.A &= value
		mc.Status.SetZN(mc.A)
	case instructions.Eor:
		mc.A ^= value
		mc.Status.SetZN(mc.A)
	case instructions.Adc:
		mc.A = mc.Status.Add(mc.A, value)
	case instructions.Sbc:
		mc.A = mc.Status.Subtract(mc.A, value)
	case instructions.Cmp:
		mc.Status.Compare(mc.A, value)
	case instructions.Cpx:
		mc.Status.Compare(mc.X, value)
	case instructions.Cpy:
		mc.Status.Compare(mc.Y, value)
	case instructions.Bit:
		mc.Status.Zero = mc.A&value == 0
		mc.Status.Sign = value&0x80 == 0x80
		mc.Status.Overflow = value&0x40 == 0x40

	case instructions.Anc:
		mc.A &= value
		mc.Status.SetZN(mc.A)
		mc.Status.Carry = mc.Status.Sign
	case instructions.Alr:
		mc.A = mc.lsr(mc.A & value)
	case instructions.Arr:
		mc.A = mc.Status.ARR(mc.A, value)
	case instructions.Sbx:
		t := mc.A & mc.X
		mc.Status.Carry = t >= value
		mc.X = t - value
		mc.Status.SetZN(mc.X)
	case instructions.Ane:
		mc.A = (mc.A | 0xee) & mc.X & value
		mc.Status.SetZN(mc.A)
	case instructions.Lxa:
		mc.A = (mc.A | 0xee) & value
		mc.X = mc.A
		mc.Status.SetZN(mc.A)

	case instructions.Asl:
		return store(mc.asl(value))
	case instructions.Lsr:
		return store(mc.lsr(value))
	case instructions.Rol:
		return store(mc.rol(value))
	case instructions.Ror:
		return store(mc.ror(value))
	case instructions.Inc:
		value++
		mc.Status.SetZN(value)
		return store(value)
	case instructions.Dec:
		value--
		mc.Status.SetZN(value)
		return store(value)

	case instructions.Slo:
		r := mc.asl(value)
		if err := store(r); err != nil {
			return err
		}
		mc.A |= r
		mc.Status.SetZN(mc.A)
	case instructions.Rla:
		r := mc.rol(value)
		if err := store(r); err != nil {
			return err
		}
		mc.A &= r
		mc.Status.SetZN(mc.A)
	case instructions.Sre:
		r := mc.lsr(value)
		if err := store(r); err != nil {
			return err
		}
		mc.A ^= r
		mc.Status.SetZN(mc.A)
	case instructions.Rra:
		r := mc.ror(value)
		if err := store(r); err != nil {
			return err
		}
		mc.A = mc.Status.Add(mc.A, r)
	case instructions.Dcp:
		r := value - 1
		if err := store(r); err != nil {
			return err
		}
		mc.Status.Compare(mc.A, r)
	case instructions.Isc:
		r := value + 1
		if err := store(r); err != nil {
			return err
		}
		mc.A = mc.Status.Subtract(mc.A, r)

	case instructions.Bcc:
		return mc.branch(!mc.Status.Carry, value)
	case instructions.Bcs:
		return mc.branch(mc.Status.Carry, value)
	case instructions.Beq:
		return mc.branch(mc.Status.Zero, value)
	case instructions.Bne:
		return mc.branch(!mc.Status.Zero, value)
	case instructions.Bmi:
		return mc.branch(mc.Status.Sign, value)
	case instructions.Bpl:
		return mc.branch(!mc.Status.Sign, value)
	case instructions.Bvc:
		return mc.branch(!mc.Status.Overflow, value)
	case instructions.Bvs:
		return mc.branch(mc.Status.Overflow, value)

	case instructions.Jmp:
		mc.PC = address

	case instructions.Jsr:
		lo, err := mc.readPC()
		if err != nil {
			return err
		}
		if _, err := mc.read(0x0100 | uint16(mc.SP)); err != nil {
			return err
		}
		if err := mc.push(uint8(mc.PC >> 8)); err != nil {
			return err
		}
		if err := mc.push(uint8(mc.PC)); err != nil {
			return err
		}
		hi, err := mc.read(mc.PC)
		if err != nil {
			return err
		}
		mc.PC = uint16(hi)<<8 | uint16(lo)
		mc.LastResult.InstructionData = mc.PC

	case instructions.Rts:
		if _, err := mc.read(0x0100 | uint16(mc.SP)); err != nil {
			return err
		}
		lo, err := mc.pull()
		if err != nil {
			return err
		}
		hi, err := mc.pull()
		if err != nil {
			return err
		}
		mc.PC = uint16(hi)<<8 | uint16(lo)
		_, err = mc.readPC()
		return err

	case instructions.Rti:
		if _, err := mc.read(0x0100 | uint16(mc.SP)); err != nil {
			return err
		}
		sr, err := mc.pull()
		if err != nil {
			return err
		}
		mc.Status.FromValue(sr &^ 0x10)
		lo, err := mc.pull()
		if err != nil {
			return err
		}
		hi, err := mc.pull()
		if err != nil {
			return err
		}
		mc.PC = uint16(hi)<<8 | uint16(lo)

	case instructions.Brk:
		return mc.interrupt(IRQVector, true)

	case instructions.Jam:
		mc.Killed = true
	}

	return nil
}
