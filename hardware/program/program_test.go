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

package program_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gopher64/hardware/program"
	"github.com/jetsetilly/gopher64/test"
)

func TestProgram(t *testing.T) {
	p := program.Program{Name: "test", LoadAddress: 0xc000, Data: make([]uint8, 0x100)}
	test.ExpectSuccess(t, p.Validate())
	test.ExpectEquality(t, p.End(), uint16(0xc100))
	test.ExpectEquality(t, p.Entry(), uint16(0xc000))
	test.ExpectEquality(t, p.String(), "test: $c000-$c100 entry $c000")

	p.EntryAddress = 0xc010
	test.ExpectEquality(t, p.Entry(), uint16(0xc010))

	p.BasicRun = true
	test.ExpectEquality(t, p.String(), "test: BASIC $c000-$c100")
}

func TestValidate(t *testing.T) {
	p := program.Program{Name: "empty", LoadAddress: program.BasicStart}
	test.ExpectEquality(t, errors.Is(p.Validate(), program.ErrEmpty), true)

	p = program.Program{Name: "large", LoadAddress: 0xff00, Data: make([]uint8, 0x101)}
	test.ExpectEquality(t, errors.Is(p.Validate(), program.ErrTooLarge), true)

	// exactly fills the top of memory
	p.Data = p.Data[:0x100]
	test.ExpectSuccess(t, p.Validate())
	test.ExpectEquality(t, p.End(), uint16(0x0000))
}
