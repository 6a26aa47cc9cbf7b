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

// Package prgloader decodes program files into a program.Program that can be
// given to the emulation with Ensemble.LoadProgram().
//
// Two formats are understood. A PRG file is the load address as a little
// endian word followed by the data, exactly as it would be saved to disk by
// the KERNAL. A P00 file is a PRG file with a 26 byte header, which contains
// the name of the file as it was on the original disk.
//
// A program is started with RUN if it is loaded at the start of BASIC memory
// and the first line of the program looks like a BASIC line.
package prgloader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/gopher64/hardware/program"
)

// Sentinel errors returned by Load() and Parse().
var (
	ErrTruncated = errors.New("prgloader: file is truncated")
	ErrNotPRG    = errors.New("prgloader: not a PRG file")
)

// the P00 header is an eight byte magic string, a 17 byte name and a byte
// for the record size of REL files
const (
	p00HeaderSize = 26
	p00Magic      = "C64File\x00"
	p00NameOffset = 8
	p00NameLen    = 17
)

// Load a program file. The format is decided by the file extension.
func Load(filename string) (program.Program, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return program.Program{}, fmt.Errorf("prgloader: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	ext := strings.ToUpper(filepath.Ext(filename))

	// .P00 to .P99
	if len(ext) == 4 && ext[1] == 'P' && isDigit(ext[2]) && isDigit(ext[3]) {
		return ParseP00(data)
	}

	return Parse(name, data)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Parse the contents of a PRG file.
func Parse(name string, data []uint8) (program.Program, error) {
	if len(data) < 3 {
		return program.Program{}, fmt.Errorf("%w: %s", ErrTruncated, name)
	}

	p := program.Program{
		Name:        name,
		LoadAddress: uint16(data[0]) | uint16(data[1])<<8,
		Data:        bytes.Clone(data[2:]),
	}
	p.BasicRun = IsBasic(p.LoadAddress, p.Data)

	if err := p.Validate(); err != nil {
		return program.Program{}, err
	}
	return p, nil
}

// ParseP00 parses the contents of a P00 file. The name of the program is
// taken from the header.
func ParseP00(data []uint8) (program.Program, error) {
	if len(data) < p00HeaderSize {
		return program.Program{}, fmt.Errorf("%w: P00 header", ErrTruncated)
	}
	if string(data[:len(p00Magic)]) != p00Magic {
		return program.Program{}, fmt.Errorf("%w: missing P00 header", ErrNotPRG)
	}

	name := data[p00NameOffset : p00NameOffset+p00NameLen]
	if n := bytes.IndexByte(name, 0x00); n >= 0 {
		name = name[:n]
	}

	return Parse(petsciiToASCII(name), data[p00HeaderSize:])
}

// petscii letters are in the range of ASCII capitals. anything that isn't
// printable is replaced with a question mark
func petsciiToASCII(b []uint8) string {
	s := strings.Builder{}
	for _, c := range b {
		switch {
		case c >= 0x20 && c < 0x5f:
			s.WriteByte(c)
		case c >= 0xc1 && c <= 0xda:
			s.WriteByte(c - 0x80)
		default:
			s.WriteByte('?')
		}
	}
	return strings.TrimSpace(s.String())
}

// IsBasic returns true if the data is a BASIC program. The program must be
// loaded at the start of BASIC memory, and the link pointer of the first
// line must point to the end of a line inside the program.
func IsBasic(loadAddress uint16, data []uint8) bool {
	if loadAddress != program.BasicStart || len(data) < 6 {
		return false
	}

	// the smallest line is the link, the line number and the terminating
	// zero with one token
	link := int(data[0]) | int(data[1])<<8
	next := link - int(loadAddress)
	if next < 6 || next > len(data) {
		return false
	}

	// the byte before the next line is the end of the first line
	return data[next-1] == 0x00
}
