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

package cartridgeloader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/jetsetilly/gopher64/hardware/memory"
)

// ErrCRT is returned when CRT data is malformed or uses a cartridge type that
// is not supported.
var ErrCRT = errors.New("cartridgeloader: crt")

const (
	crtMagic = "C64 CARTRIDGE   "
	chipID   = "CHIP"

	// offsets into the file header
	crtHeaderLen = 0x10
	crtHardware  = 0x16
	crtEXROM     = 0x18
	crtGAME      = 0x19
	crtName      = 0x20
	crtNameLen   = 0x20

	// offsets into a CHIP packet
	chipLen     = 0x04
	chipAddress = 0x0c
	chipSize    = 0x0e
	chipData    = 0x10
)

func isCRT(data []uint8) bool {
	return bytes.HasPrefix(data, []uint8(crtMagic))
}

// only the generic cartridge type, without bank switching, is supported
func parseCRT(data []uint8) (memory.Cartridge, error) {
	if !isCRT(data) || len(data) < 0x40 {
		return nil, fmt.Errorf("%w: not a crt file", ErrCRT)
	}

	if hw := binary.BigEndian.Uint16(data[crtHardware:]); hw != 0 {
		return nil, fmt.Errorf("%w: unsupported hardware type (%d)", ErrCRT, hw)
	}

	name := string(bytes.TrimRight(data[crtName:crtName+crtNameLen], "\x00 "))

	var kind memory.CartridgeKind
	exrom := data[crtEXROM] != 0
	game := data[crtGAME] != 0
	switch {
	case !exrom && game:
		kind = memory.Normal8K
	case !exrom && !game:
		kind = memory.Normal16K
	case exrom && !game:
		kind = memory.Ultimax
	default:
		return nil, fmt.Errorf("%w: cartridge is not visible with EXROM and GAME high", ErrCRT)
	}

	// the ROM image is assembled from the CHIP packets. $8000 is the start
	// of the image. a single chip at $E000 is an ultimax cartridge
	var roml, romh []uint8
	offset := int(binary.BigEndian.Uint32(data[crtHeaderLen:]))
	for offset < len(data) {
		if offset+chipData > len(data) || string(data[offset:offset+4]) != chipID {
			return nil, fmt.Errorf("%w: bad chip packet at offset %#x", ErrCRT, offset)
		}
		packetLen := int(binary.BigEndian.Uint32(data[offset+chipLen:]))
		address := binary.BigEndian.Uint16(data[offset+chipAddress:])
		size := int(binary.BigEndian.Uint16(data[offset+chipSize:]))
		if packetLen < chipData || offset+chipData+size > len(data) {
			return nil, fmt.Errorf("%w: truncated chip packet at offset %#x", ErrCRT, offset)
		}
		chip := data[offset+chipData : offset+chipData+size]

		switch address {
		case 0x8000:
			if size > 0x2000 {
				roml = chip[:0x2000]
				romh = chip[0x2000:]
			} else {
				roml = chip
			}
		case 0xa000, 0xe000:
			romh = chip
		default:
			return nil, fmt.Errorf("%w: unsupported chip address (%#04x)", ErrCRT, address)
		}

		offset += packetLen
	}

	image := append(append([]uint8{}, roml...), romh...)
	cart, err := memory.NewCartridge(name, image, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCRT, err)
	}
	return cart, nil
}
