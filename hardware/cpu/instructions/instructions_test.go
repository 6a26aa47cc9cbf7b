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

package instructions_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/hardware/cpu/instructions"
	"github.com/jetsetilly/gopher64/test"
)

func TestTable(t *testing.T) {
	defs := instructions.GetDefinitions()
	test.DemandEquality(t, len(defs), 256)

	var documented int
	for i, d := range defs {
		test.ExpectEquality(t, int(d.OpCode), i)
		test.ExpectInequality(t, d.Mnemonic, "")
		test.ExpectEquality(t, d.Operator.String(), d.Mnemonic)
		if !d.Undocumented {
			documented++
		}
	}

	// the documented instruction set has 151 opcodes
	test.ExpectEquality(t, documented, 151)
}

func TestDefinitions(t *testing.T) {
	defs := instructions.GetDefinitions()

	lda := defs[0xbd]
	test.ExpectEquality(t, lda.Operator, instructions.Lda)
	test.ExpectEquality(t, lda.AddressingMode, instructions.AbsoluteIndexedX)
	test.ExpectEquality(t, lda.Bytes, 3)
	test.ExpectEquality(t, lda.Cycles, 4)
	test.ExpectSuccess(t, lda.PageSensitive)

	test.ExpectSuccess(t, defs[0xd0].IsBranch())
	test.ExpectFailure(t, defs[0x4c].IsBranch())
	test.ExpectEquality(t, defs[0x20].Effect, instructions.Subroutine)
	test.ExpectEquality(t, defs[0x02].Operator, instructions.Jam)
	test.ExpectSuccess(t, defs[0xeb].Undocumented)
	test.ExpectEquality(t, defs[0xeb].Operator, instructions.Sbc)
}
