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

// Package program defines the decoded form of a program that is to be placed
// in the memory of the C64 and started automatically. Loaders for the various
// file formats produce a Program and the hardware package places it.
package program

import (
	"errors"
	"fmt"
)

// BasicStart is the address at which BASIC programs are normally loaded.
const BasicStart uint16 = 0x0801

// Program is a program image with the information required to start it.
type Program struct {
	Name string

	LoadAddress uint16

	// the address to jump to once the program has been placed. if the value
	// is zero the load address is used. ignored for BASIC programs
	EntryAddress uint16

	// the program is a BASIC program and is started with RUN
	BasicRun bool

	Data []uint8
}

// Sentinel errors returned by Validate().
var (
	ErrEmpty    = errors.New("program: no data")
	ErrTooLarge = errors.New("program: does not fit in memory")
)

func (p Program) String() string {
	if p.BasicRun {
		return fmt.Sprintf("%s: BASIC $%04x-$%04x", p.Name, p.LoadAddress, p.End())
	}
	return fmt.Sprintf("%s: $%04x-$%04x entry $%04x", p.Name, p.LoadAddress, p.End(), p.Entry())
}

// End returns the address after the last byte of the program. This is the
// value BASIC stores in its end of program pointers.
func (p Program) End() uint16 {
	return p.LoadAddress + uint16(len(p.Data))
}

// Entry returns the address execution should start from for programs that
// are not BASIC programs.
func (p Program) Entry() uint16 {
	if p.EntryAddress == 0 {
		return p.LoadAddress
	}
	return p.EntryAddress
}

// Validate checks that the program can be placed in memory.
func (p Program) Validate() error {
	if len(p.Data) == 0 {
		return fmt.Errorf("%w: %s", ErrEmpty, p.Name)
	}
	if int(p.LoadAddress)+len(p.Data) > 0x10000 {
		return fmt.Errorf("%w: %s is %d bytes at $%04x", ErrTooLarge, p.Name, len(p.Data), p.LoadAddress)
	}
	return nil
}
