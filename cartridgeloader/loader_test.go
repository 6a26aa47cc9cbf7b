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

package cartridgeloader_test

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopher64/cartridgeloader"
	"github.com/jetsetilly/gopher64/hardware/memory"
	"github.com/jetsetilly/gopher64/test"
)

func crt(exrom, game uint8, chips ...[]uint8) []uint8 {
	hdr := make([]uint8, 0x40)
	copy(hdr, "C64 CARTRIDGE   ")
	binary.BigEndian.PutUint32(hdr[0x10:], 0x40)
	hdr[0x14] = 0x01
	hdr[0x18] = exrom
	hdr[0x19] = game
	copy(hdr[0x20:], "TEST CART")
	for _, c := range chips {
		hdr = append(hdr, c...)
	}
	return hdr
}

func chip(address uint16, fill uint8, size int) []uint8 {
	p := make([]uint8, 0x10+size)
	copy(p, "CHIP")
	binary.BigEndian.PutUint32(p[0x04:], uint32(len(p)))
	binary.BigEndian.PutUint16(p[0x0c:], address)
	binary.BigEndian.PutUint16(p[0x0e:], uint16(size))
	for i := range size {
		p[0x10+i] = fill
	}
	return p
}

func TestNewLoader(t *testing.T) {
	test.ExpectEquality(t, cartridgeloader.NewLoader("game.crt", "").Mapping, "CRT")
	test.ExpectEquality(t, cartridgeloader.NewLoader("game.bin", "auto").Mapping, "AUTO")
	test.ExpectEquality(t, cartridgeloader.NewLoader("game.16k", "").Mapping, "16K")
	test.ExpectEquality(t, cartridgeloader.NewLoader("game.bin", "ultimax").Mapping, "ULTIMAX")
	test.ExpectEquality(t, cartridgeloader.NewLoader("carts/game.bin", "").ShortName(), "game")
}

func TestCRT(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "game.crt")
	test.DemandSuccess(t, os.WriteFile(fn, crt(0, 0, chip(0x8000, 0x11, 0x2000), chip(0xa000, 0x22, 0x2000)), 0o644))

	cl := cartridgeloader.NewLoader(fn, "")
	test.ExpectEquality(t, cl.HasLoaded(), false)
	test.DemandSuccess(t, cl.Load())
	test.ExpectEquality(t, cl.HasLoaded(), true)
	test.ExpectInequality(t, cl.Hash, "")

	cart, err := cl.Cartridge()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cart.Label(), "TEST CART")
	exrom, game := cart.Lines()
	test.ExpectEquality(t, exrom, false)
	test.ExpectEquality(t, game, false)
	test.ExpectEquality(t, cart.ROML().Read(0x0000), uint8(0x11))
	test.ExpectEquality(t, cart.ROMH().Read(0x1fff), uint8(0x22))

	// hash mismatch
	cl = cartridgeloader.NewLoader(fn, "")
	cl.Hash = "0000"
	test.ExpectEquality(t, errors.Is(cl.Load(), cartridgeloader.ErrHash), true)
	test.ExpectEquality(t, cl.HasLoaded(), false)
}

func TestCRTUltimax(t *testing.T) {
	cl := cartridgeloader.Loader{Data: crt(1, 0, chip(0xe000, 0x33, 0x2000))}
	cart, err := cl.Cartridge()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cart.ROML() == nil, true)
	test.ExpectEquality(t, cart.ROMH().Read(0x0000), uint8(0x33))
}

func TestCRTErrors(t *testing.T) {
	// bank switched hardware
	data := crt(0, 1, chip(0x8000, 0x11, 0x2000))
	binary.BigEndian.PutUint16(data[0x16:], 5)
	_, err := cartridgeloader.Loader{Mapping: "CRT", Data: data}.Cartridge()
	test.ExpectEquality(t, errors.Is(err, cartridgeloader.ErrCRT), true)

	// truncated chip
	data = crt(0, 1, chip(0x8000, 0x11, 0x2000))
	_, err = cartridgeloader.Loader{Data: data[:0x1000]}.Cartridge()
	test.ExpectEquality(t, errors.Is(err, cartridgeloader.ErrCRT), true)

	// chip size does not match the EXROM and GAME lines
	data = crt(0, 1, chip(0x8000, 0x11, 0x1000))
	_, err = cartridgeloader.Loader{Data: data}.Cartridge()
	test.ExpectEquality(t, errors.Is(err, memory.ErrCartridgeSize), true)
}

func TestBinary(t *testing.T) {
	cl := cartridgeloader.Loader{Filename: "game.bin", Mapping: "AUTO", Data: make([]uint8, 0x2000)}
	cart, err := cl.Cartridge()
	test.DemandSuccess(t, err)
	exrom, game := cart.Lines()
	test.ExpectEquality(t, exrom, false)
	test.ExpectEquality(t, game, true)
	test.ExpectEquality(t, cart.Label(), "game")

	cl.Data = make([]uint8, 0x1234)
	_, err = cl.Cartridge()
	test.ExpectEquality(t, errors.Is(err, memory.ErrCartridgeSize), true)

	_, err = cartridgeloader.Loader{Filename: "x"}.Cartridge()
	test.ExpectFailure(t, err)
}
