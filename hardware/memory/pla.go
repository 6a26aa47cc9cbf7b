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
	"fmt"

	"github.com/jetsetilly/gopher64/logger"
)

// Interrupts is implemented by the CPU.
type Interrupts interface {
	SetIRQ(bool)
	SetNMI(bool)
}

// InterruptSource identifies a device that can pull an interrupt line low.
type InterruptSource uint8

// List of valid InterruptSource values.
const (
	SourceCIA1 InterruptSource = 1 << iota
	SourceCIA2
	SourceVIC
	SourceRestore
	SourceExpansion
)

// unmapped is used in the Ultimax configuration for regions that have
// nothing mapped to them. reads return the value on the data bus and writes
// are ignored.
type unmapped struct {
	bus *DisconnectedBus
}

func (u unmapped) Read(address uint16) uint8 {
	return u.bus.Read(address)
}

func (u unmapped) Write(_ uint16, _ uint8) {
}

// PLA decodes CPU and VIC addresses into the bank that owns them.
type PLA struct {
	logger logger.Permission

	ram     *RAM
	port    *CPUPort
	io      *IOBank
	bus     *DisconnectedBus
	color   *ColorRAM
	basic   *ROM
	kernal  *ROM
	chargen *ROM

	// replacement kernal. nil if the normal kernal is in use
	customKernal *ROM

	cart     Cartridge
	unmapped unmapped

	// the LORAM, HIRAM and CHAREN lines in bits 0 to 2
	cpuLines uint8

	// expansion port lines. true when high
	exrom bool
	game  bool

	readMap  [16]Bank
	writeMap [16]Bank

	// base address of the VIC's 16K window
	vicBase uint16

	// interrupt lines are pulled low by one or more sources
	cpu        Interrupts
	irqSources InterruptSource
	nmiSources InterruptSource
}

// NewPLA is the preferred method of initialisation for the PLA type.
func NewPLA(log logger.Permission, ram *RAM, port *CPUPort, io *IOBank, bus *DisconnectedBus, color *ColorRAM) *PLA {
	pla := &PLA{
		logger:   log,
		ram:      ram,
		port:     port,
		io:       io,
		bus:      bus,
		color:    color,
		basic:    NewROM("BASIC", BasicSize),
		kernal:   NewROM("KERNAL", KernalSize),
		chargen:  NewROM("CHARGEN", ChargenSize),
		unmapped: unmapped{bus: bus},
		cpuLines: 0x07,
		exrom:    true,
		game:     true,
	}
	pla.remap()
	return pla
}

// Plumb the CPU into the PLA so that interrupts can be delivered.
func (pla *PLA) Plumb(cpu Interrupts) {
	pla.cpu = cpu
}

// Reset the PLA. The cartridge remains attached and the interrupt lines are
// released.
func (pla *PLA) Reset() {
	pla.cpuLines = 0x07
	pla.vicBase = 0x0000
	pla.irqSources = 0
	pla.nmiSources = 0
	if pla.cart != nil {
		pla.cart.Reset()
		pla.exrom, pla.game = pla.cart.Lines()
	}
	pla.remap()
}

// LoadROMs loads the system ROMs. Any argument can be nil, in which case the
// current contents of that ROM are kept.
func (pla *PLA) LoadROMs(basic, kernal, chargen []uint8) error {
	for _, r := range []struct {
		rom  *ROM
		data []uint8
	}{
		{rom: pla.basic, data: basic},
		{rom: pla.kernal, data: kernal},
		{rom: pla.chargen, data: chargen},
	} {
		if r.data == nil {
			continue
		}
		if err := r.rom.Load(r.data); err != nil {
			return err
		}
	}
	return nil
}

// SetCustomKernal replaces the kernal ROM with the data. A nil argument
// restores the normal kernal.
func (pla *PLA) SetCustomKernal(data []uint8) error {
	if data == nil {
		pla.customKernal = nil
		pla.remap()
		return nil
	}
	rom := NewROM("custom KERNAL", KernalSize)
	if err := rom.Load(data); err != nil {
		return err
	}
	pla.customKernal = rom
	pla.remap()
	logger.Log(pla.logger, "pla", "custom kernal installed")
	return nil
}

// SetCartridge attaches a cartridge to the expansion port. A nil argument
// detaches the current cartridge.
func (pla *PLA) SetCartridge(cart Cartridge) {
	pla.cart = cart
	if cart == nil {
		pla.exrom = true
		pla.game = true
		pla.io.SetExpansion(nil, nil)
		logger.Log(pla.logger, "pla", "cartridge detached")
	} else {
		pla.exrom, pla.game = cart.Lines()
		pla.io.SetExpansion(cart.IO1(), cart.IO2())
		logger.Logf(pla.logger, "pla", "cartridge attached: %s", cart.Label())
	}
	pla.remap()
}

// Cartridge returns the attached cartridge or nil.
func (pla *PLA) Cartridge() Cartridge {
	return pla.cart
}

// CharacterROM returns a copy of the character ROM.
func (pla *PLA) CharacterROM() []uint8 {
	return pla.chargen.Data()
}

// UpdateCartridgeLines should be called by a cartridge when the state of its
// EXROM or GAME lines changes.
func (pla *PLA) UpdateCartridgeLines() {
	if pla.cart == nil {
		return
	}
	exrom, game := pla.cart.Lines()
	if exrom != pla.exrom || game != pla.game {
		pla.exrom = exrom
		pla.game = game
		pla.remap()
	}
}

// SetCPUPort is called by the CPU port when its output changes. Only bits 0
// to 2 are used.
func (pla *PLA) SetCPUPort(data uint8) {
	lines := data & 0x07
	if lines != pla.cpuLines {
		pla.cpuLines = lines
		pla.remap()
	}
}

// Ultimax returns true if the expansion port lines select the Ultimax
// configuration.
func (pla *PLA) Ultimax() bool {
	return pla.exrom && !pla.game
}

// Config returns the memory configuration number in the range 0 to 31. Bits
// 0 to 2 are LORAM, HIRAM and CHAREN and bits 3 and 4 are GAME and EXROM.
func (pla *PLA) Config() int {
	c := int(pla.cpuLines)
	if pla.game {
		c |= 0x08
	}
	if pla.exrom {
		c |= 0x10
	}
	return c
}

func (pla *PLA) remap() {
	loram := pla.cpuLines&0x01 != 0
	hiram := pla.cpuLines&0x02 != 0
	charen := pla.cpuLines&0x04 != 0

	var kernal Bank = pla.kernal
	if pla.customKernal != nil {
		kernal = pla.customKernal
	}

	var roml, romh Bank = pla.unmapped, pla.unmapped
	if pla.cart != nil {
		if b := pla.cart.ROML(); b != nil {
			roml = b
		}
		if b := pla.cart.ROMH(); b != nil {
			romh = b
		}
	}

	for i := range pla.readMap {
		pla.readMap[i] = pla.ram
		pla.writeMap[i] = pla.ram
	}
	pla.readMap[0] = pla.port
	pla.writeMap[0] = pla.port

	if pla.Ultimax() {
		for i := 0x1; i <= 0x7; i++ {
			pla.readMap[i] = pla.unmapped
			pla.writeMap[i] = pla.unmapped
		}
		for _, i := range []int{0x8, 0x9} {
			pla.readMap[i] = roml
			pla.writeMap[i] = roml
		}
		for _, i := range []int{0xa, 0xb, 0xc} {
			pla.readMap[i] = pla.unmapped
			pla.writeMap[i] = pla.unmapped
		}
		pla.readMap[0xd] = pla.io
		pla.writeMap[0xd] = pla.io
		for _, i := range []int{0xe, 0xf} {
			pla.readMap[i] = romh
			pla.writeMap[i] = romh
		}
		return
	}

	// cartridge ROM at $8000 in both the 8K and 16K configurations
	if !pla.exrom && loram && hiram {
		pla.readMap[0x8] = roml
		pla.readMap[0x9] = roml
	}

	// $A000 is cartridge ROM in the 16K configuration and BASIC otherwise
	if !pla.exrom && !pla.game {
		if hiram {
			pla.readMap[0xa] = romh
			pla.readMap[0xb] = romh
		}
	} else if loram && hiram {
		pla.readMap[0xa] = pla.basic
		pla.readMap[0xb] = pla.basic
	}

	if loram || hiram {
		if charen {
			pla.readMap[0xd] = pla.io
			pla.writeMap[0xd] = pla.io
		} else {
			pla.readMap[0xd] = pla.chargen
		}
	}

	if hiram {
		pla.readMap[0xe] = kernal
		pla.readMap[0xf] = kernal
	}
}

// Read a value from the address as seen by the CPU.
func (pla *PLA) Read(address uint16) uint8 {
	return pla.readMap[address>>12].Read(address)
}

// Write a value to the address as seen by the CPU. Writes to addresses
// mapped to ROM are written to the RAM beneath.
func (pla *PLA) Write(address uint16, data uint8) {
	pla.writeMap[address>>12].Write(address, data)
}

// Bank returns the bank that the CPU currently sees at the address.
func (pla *PLA) Bank(address uint16) Bank {
	return pla.readMap[address>>12]
}

// SetVICBank sets the base address of the VIC's 16K window. Only bits 14 and
// 15 are used.
func (pla *PLA) SetVICBank(base uint16) {
	pla.vicBase = base & 0xc000
}

// VICBank returns the base address of the VIC's 16K window.
func (pla *PLA) VICBank() uint16 {
	return pla.vicBase
}

// VICRead reads the 14 bit address from the VIC's point of view. The value
// read is left on the data bus.
func (pla *PLA) VICRead(address uint16) uint8 {
	address &= 0x3fff

	var v uint8
	switch {
	case pla.Ultimax() && address&0x3000 == 0x3000:
		v = pla.unmapped.bus.Read(address)
		if pla.cart != nil {
			if romh := pla.cart.ROMH(); romh != nil {
				v = romh.Read(0xf000 | address&0x0fff)
			}
		}
	case pla.vicBase&0x4000 == 0 && address&0x3000 == 0x1000:
		v = pla.chargen.Read(address & 0x0fff)
	default:
		v = pla.ram.Read(pla.vicBase | address)
	}

	pla.bus.Drive(v)
	return v
}

// VICColor returns the colour nibble for the address. The VIC reads colour
// RAM in parallel with its other accesses.
func (pla *PLA) VICColor(address uint16) uint8 {
	return pla.color.Nibble(address)
}

// SetIRQ sets the state of the IRQ line for the source. The CPU sees the
// line pulled low if any source is pulling it low.
func (pla *PLA) SetIRQ(src InterruptSource, state bool) {
	old := pla.irqSources
	if state {
		pla.irqSources |= src
	} else {
		pla.irqSources &^= src
	}
	if (old == 0) != (pla.irqSources == 0) && pla.cpu != nil {
		pla.cpu.SetIRQ(pla.irqSources != 0)
	}
}

// SetNMI sets the state of the NMI line for the source. The NMI of the CPU
// is edge triggered so it only sees a change when the first source pulls the
// line low.
func (pla *PLA) SetNMI(src InterruptSource, state bool) {
	old := pla.nmiSources
	if state {
		pla.nmiSources |= src
	} else {
		pla.nmiSources &^= src
	}
	if (old == 0) != (pla.nmiSources == 0) && pla.cpu != nil {
		pla.cpu.SetNMI(pla.nmiSources != 0)
	}
}

// IRQ returns the state of the aggregate IRQ line.
func (pla *PLA) IRQ() bool {
	return pla.irqSources != 0
}

func (pla *PLA) String() string {
	return fmt.Sprintf("config %02d: exrom=%v game=%v cpu=%03b vic=%04x", pla.Config(), pla.exrom, pla.game, pla.cpuLines, pla.vicBase)
}
