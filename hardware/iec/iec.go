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

package iec

import (
	"fmt"
	"slices"
	"strings"
)

// CIA2 port A bits.
const (
	C64ATNOut  uint8 = 0x08
	C64CLKOut  uint8 = 0x10
	C64DATAOut uint8 = 0x20
	C64CLKIn   uint8 = 0x40
	C64DATAIn  uint8 = 0x80
)

// VIA1 port B bits of the 1541.
const (
	DriveDATAIn  uint8 = 0x01
	DriveDATAOut uint8 = 0x02
	DriveCLKIn   uint8 = 0x04
	DriveCLKOut  uint8 = 0x08
	DriveATNA    uint8 = 0x10
	DriveDevice  uint8 = 0x60
	DriveATNIn   uint8 = 0x80
)

// Device is a drive connected to the bus. ATN is called when the ATN line
// changes. The value is true when ATN is low (asserted).
type Device interface {
	ATN(asserted bool)
}

type drive struct {
	device int
	dev    Device
	out    uint8
}

// Bus is the serial bus.
type Bus struct {
	// output of CIA2 port A
	c64 uint8

	drives []*drive

	// the state of ATN at the last notification
	atn bool
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) String() string {
	s := strings.Builder{}
	line := func(name string, low bool) {
		if low {
			s.WriteString(strings.ToLower(name))
		} else {
			s.WriteString(name)
		}
	}
	line("ATN", b.ATN())
	s.WriteString(" ")
	line("CLK", b.CLK())
	s.WriteString(" ")
	line("DATA", b.DATA())
	return s.String()
}

// Reset releases every line.
func (b *Bus) Reset() {
	b.c64 = 0
	for _, d := range b.drives {
		d.out = 0
	}
	b.notify()
}

// Connect a drive to the bus. The device number is the number set by the
// jumpers of the drive and must be between 8 and 11.
func (b *Bus) Connect(device int, dev Device) error {
	if device < 8 || device > 11 {
		return fmt.Errorf("iec: device number must be between 8 and 11 (%d)", device)
	}
	if b.drive(device) != nil {
		return fmt.Errorf("iec: device number %d already connected", device)
	}
	b.drives = append(b.drives, &drive{device: device, dev: dev})
	return nil
}

// Disconnect the drive with the device number. Lines pulled by the drive
// are released.
func (b *Bus) Disconnect(device int) {
	b.drives = slices.DeleteFunc(b.drives, func(d *drive) bool {
		return d.device == device
	})
}

// Connected returns the device numbers of the connected drives.
func (b *Bus) Connected() []int {
	var n []int
	for _, d := range b.drives {
		n = append(n, d.device)
	}
	return n
}

func (b *Bus) drive(device int) *drive {
	for _, d := range b.drives {
		if d.device == device {
			return d
		}
	}
	return nil
}

// ATN returns true if the ATN line is low.
func (b *Bus) ATN() bool {
	return b.c64&C64ATNOut != 0
}

// CLK returns true if the CLK line is low.
func (b *Bus) CLK() bool {
	if b.c64&C64CLKOut != 0 {
		return true
	}
	for _, d := range b.drives {
		if d.out&DriveCLKOut != 0 {
			return true
		}
	}
	return false
}

// DATA returns true if the DATA line is low.
func (b *Bus) DATA() bool {
	if b.c64&C64DATAOut != 0 {
		return true
	}
	atn := b.ATN()
	for _, d := range b.drives {
		if d.out&DriveDATAOut != 0 {
			return true
		}
		if (d.out&DriveATNA != 0) != atn {
			return true
		}
	}
	return false
}

// notify drives of a change to the ATN line
func (b *Bus) notify() {
	atn := b.ATN()
	if atn == b.atn {
		return
	}
	b.atn = atn
	for _, d := range b.drives {
		if d.dev != nil {
			d.dev.ATN(atn)
		}
	}
}

// WriteFromC64 sets the output of CIA2 port A.
func (b *Bus) WriteFromC64(v uint8) {
	b.c64 = v & (C64ATNOut | C64CLKOut | C64DATAOut)
	b.notify()
}

// ReadToC64 returns the input bits of CIA2 port A. The bits that are not
// connected to the bus are set.
func (b *Bus) ReadToC64() uint8 {
	v := ^(C64CLKIn | C64DATAIn)
	if !b.CLK() {
		v |= C64CLKIn
	}
	if !b.DATA() {
		v |= C64DATAIn
	}
	return v
}

// WriteFromDrive sets the output of VIA1 port B for the device.
func (b *Bus) WriteFromDrive(device int, v uint8) {
	if d := b.drive(device); d != nil {
		d.out = v & (DriveDATAOut | DriveCLKOut | DriveATNA)
	}
}

// ReadToDrive returns the input bits of VIA1 port B for the device, including
// the device number jumpers. The output bits are clear.
func (b *Bus) ReadToDrive(device int) uint8 {
	v := uint8(device-8) << 5 & DriveDevice
	if b.DATA() {
		v |= DriveDATAIn
	}
	if b.CLK() {
		v |= DriveCLKIn
	}
	if b.ATN() {
		v |= DriveATNIn
	}
	return v
}
