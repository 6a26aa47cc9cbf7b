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

package memory

import (
	"errors"
	"fmt"
)

// Cartridge is implemented by devices attached to the expansion port.
type Cartridge interface {
	Label() string

	// the state of the EXROM and GAME lines. true means the line is high,
	// which is the state of the line when no cartridge is attached
	Lines() (exrom bool, game bool)

	// the banks visible at $8000 (ROML) and at $A000 or $E000 (ROMH). either
	// can be nil
	ROML() Bank
	ROMH() Bank

	// the banks visible at $DE00 (I/O 1) and $DF00 (I/O 2). either can be nil
	IO1() Bank
	IO2() Bank

	Reset()
}

// CartridgeKind specifies how the data of a generic cartridge is mapped.
type CartridgeKind int

// List of valid CartridgeKind values.
const (
	// the kind of cartridge is decided by the size of the data. 8K and 16K
	// data is treated as a normal cartridge
	AutoCartridge CartridgeKind = iota
	Normal8K
	Normal16K
	Ultimax
)

func (k CartridgeKind) String() string {
	switch k {
	case AutoCartridge:
		return "auto"
	case Normal8K:
		return "8K"
	case Normal16K:
		return "16K"
	case Ultimax:
		return "ultimax"
	}
	return fmt.Sprintf("cartridgekind(%d)", int(k))
}

// ErrCartridgeSize is returned by NewCartridge() when the data is not a size
// that can be used by the requested kind of cartridge.
var ErrCartridgeSize = errors.New("memory: unsupported cartridge size")

// generic is a cartridge without bank switching.
type generic struct {
	label string
	kind  CartridgeKind
	roml  *ROM
	romh  *ROM
}

// NewCartridge creates a generic cartridge from the data.
func NewCartridge(label string, data []uint8, kind CartridgeKind) (Cartridge, error) {
	if kind == AutoCartridge {
		switch len(data) {
		case 0x2000:
			kind = Normal8K
		case 0x4000:
			kind = Normal16K
		default:
			return nil, fmt.Errorf("%w: %d bytes", ErrCartridgeSize, len(data))
		}
	}

	cart := &generic{
		label: label,
		kind:  kind,
	}

	switch kind {
	case Normal8K:
		if len(data) != 0x2000 {
			return nil, fmt.Errorf("%w: %d bytes for %s cartridge", ErrCartridgeSize, len(data), kind)
		}
		cart.roml = NewROM("ROML", 0x2000)
		_ = cart.roml.Load(data)

	case Normal16K:
		if len(data) != 0x4000 {
			return nil, fmt.Errorf("%w: %d bytes for %s cartridge", ErrCartridgeSize, len(data), kind)
		}
		cart.roml = NewROM("ROML", 0x2000)
		_ = cart.roml.Load(data[:0x2000])
		cart.romh = NewROM("ROMH", 0x2000)
		_ = cart.romh.Load(data[0x2000:])

	case Ultimax:
		switch len(data) {
		case 0x1000:
			// mirrored at $E000 and $F000
			cart.romh = NewROM("ROMH", 0x1000)
			_ = cart.romh.Load(data)
		case 0x2000:
			cart.romh = NewROM("ROMH", 0x2000)
			_ = cart.romh.Load(data)
		case 0x4000:
			cart.roml = NewROM("ROML", 0x2000)
			_ = cart.roml.Load(data[:0x2000])
			cart.romh = NewROM("ROMH", 0x2000)
			_ = cart.romh.Load(data[0x2000:])
		default:
			return nil, fmt.Errorf("%w: %d bytes for %s cartridge", ErrCartridgeSize, len(data), kind)
		}

	default:
		return nil, fmt.Errorf("memory: unsupported cartridge kind (%s)", kind)
	}

	return cart, nil
}

func (cart *generic) String() string {
	return fmt.Sprintf("%s [%s]", cart.label, cart.kind)
}

func (cart *generic) Label() string {
	return cart.label
}

func (cart *generic) Lines() (bool, bool) {
	switch cart.kind {
	case Normal8K:
		return false, true
	case Normal16K:
		return false, false
	}
	return true, false
}

func (cart *generic) ROML() Bank {
	if cart.roml == nil {
		return nil
	}
	return cart.roml
}

func (cart *generic) ROMH() Bank {
	if cart.romh == nil {
		return nil
	}
	return cart.romh
}

func (cart *generic) IO1() Bank {
	return nil
}

func (cart *generic) IO2() Bank {
	return nil
}

func (cart *generic) Reset() {
}
