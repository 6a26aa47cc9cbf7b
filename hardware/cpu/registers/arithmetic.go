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

package registers

// Add returns the result of adding the value and the carry flag to the
// accumulator. Flags are set as the NMOS 6502 sets them, including the
// peculiar flags of decimal mode.
func (sr *StatusRegister) Add(a uint8, v uint8) uint8 {
	var c uint16
	if sr.Carry {
		c = 1
	}

	bin := uint16(a) + uint16(v) + c

	if !sr.DecimalMode {
		r := uint8(bin)
		sr.Carry = bin > 0xff
		sr.Overflow = (a^v)&0x80 == 0 && (a^r)&0x80 != 0
		sr.SetZN(r)
		return r
	}

	// zero flag is set from the binary result in decimal mode
	sr.Zero = uint8(bin) == 0

	tmp := uint16(a&0x0f) + uint16(v&0x0f) + c
	if tmp > 0x09 {
		tmp += 0x06
	}
	if tmp <= 0x0f {
		tmp = (tmp & 0x0f) + uint16(a&0xf0) + uint16(v&0xf0)
	} else {
		tmp = (tmp & 0x0f) + uint16(a&0xf0) + uint16(v&0xf0) + 0x10
	}

	sr.Sign = tmp&0x80 == 0x80
	sr.Overflow = (uint16(a)^tmp)&0x80 != 0 && (a^v)&0x80 == 0

	if tmp&0x1f0 > 0x90 {
		tmp += 0x60
	}
	sr.Carry = tmp&0xff0 > 0xf0

	return uint8(tmp)
}

// Subtract returns the result of subtracting the value and the borrow (the
// inverse of the carry flag) from the accumulator.
func (sr *StatusRegister) Subtract(a uint8, v uint8) uint8 {
	var borrow uint16
	if !sr.Carry {
		borrow = 1
	}

	bin := uint16(a) - uint16(v) - borrow
	r := uint8(bin)

	// flags are always set from the binary result
	sr.Carry = bin < 0x100
	sr.Overflow = (a^r)&0x80 != 0 && (a^v)&0x80 != 0
	sr.SetZN(r)

	if !sr.DecimalMode {
		return r
	}

	tmp := uint16(a&0x0f) - uint16(v&0x0f) - borrow
	if tmp&0x10 != 0 {
		tmp = ((tmp - 0x06) & 0x0f) | (uint16(a&0xf0) - uint16(v&0xf0) - 0x10)
	} else {
		tmp = (tmp & 0x0f) | (uint16(a&0xf0) - uint16(v&0xf0))
	}
	if tmp&0x100 != 0 {
		tmp -= 0x60
	}

	return uint8(tmp)
}

// Compare sets the flags as if the value had been subtracted from the
// register. The register is not changed.
func (sr *StatusRegister) Compare(r uint8, v uint8) {
	sr.Carry = r >= v
	sr.SetZN(r - v)
}

// ARR implements the undocumented ARR instruction, which ANDs the
// accumulator with the value and then rotates right. The flags and the
// result are strange in decimal mode.
func (sr *StatusRegister) ARR(a uint8, v uint8) uint8 {
	tmp := a & v

	var c uint8
	if sr.Carry {
		c = 0x80
	}

	if !sr.DecimalMode {
		r := tmp>>1 | c
		sr.SetZN(r)
		sr.Carry = r&0x40 != 0
		sr.Overflow = (r&0x40)^((r&0x20)<<1) != 0
		return r
	}

	r := tmp>>1 | c
	sr.Sign = c != 0
	sr.Zero = r == 0
	sr.Overflow = (r^tmp)&0x40 != 0

	if (tmp&0x0f)+(tmp&0x01) > 0x05 {
		r = (r & 0xf0) | ((r + 0x06) & 0x0f)
	}
	if uint16(tmp&0xf0)+uint16(tmp&0x10) > 0x50 {
		r = (r & 0x0f) | ((r + 0x60) & 0xf0)
		sr.Carry = true
	} else {
		sr.Carry = false
	}

	return r
}
