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

// Package cable implements the parallel cable that can connect the user port
// of the C64 to port A of VIA1 in a modified 1541. Fast loaders use the cable
// to transfer a byte at a time instead of a bit at a time.
//
// The eight data lines are open collector so the value seen by both ends is
// the AND of the values driven by both ends. The C64 end strobes the cable
// with the PC2 output of CIA2, which arrives at CB1 of the drive's VIA1. The
// drive end strobes the cable with CA2 of its VIA1, which arrives at the FLAG
// input of CIA2.
package cable

import (
	"github.com/jetsetilly/gopher64/hardware/bridge"
	"github.com/jetsetilly/gopher64/hardware/via"
)

// Cable is the interface to the cable from both ends.
type Cable interface {
	// C64 end. accesses from the C64 end cross into the drive's clock
	// domain
	C64Write(v uint8)
	C64Read() uint8
	Pulse()

	// drive end
	DriveWrite(device int, v uint8)
	DriveRead(device int) uint8
	DriveHandshake(device int, high bool)
}

// Disconnected is used when there is no cable. Reads return 0xff and writes
// are ignored.
type Disconnected struct{}

// C64Write implements the Cable interface.
func (Disconnected) C64Write(_ uint8) {}

// C64Read implements the Cable interface.
func (Disconnected) C64Read() uint8 { return 0xff }

// Pulse implements the Cable interface.
func (Disconnected) Pulse() {}

// DriveWrite implements the Cable interface.
func (Disconnected) DriveWrite(_ int, _ uint8) {}

// DriveRead implements the Cable interface.
func (Disconnected) DriveRead(_ int) uint8 { return 0xff }

// DriveHandshake implements the Cable interface.
func (Disconnected) DriveHandshake(_ int, _ bool) {}

// Synchronizer brings the drive up to date with the C64.
type Synchronizer interface {
	Synchronize(p bridge.Priority)
}

// FlagSink is the FLAG input of CIA2.
type FlagSink interface {
	SetFlag(low bool)
}

// Signaller is the VIA1 of the drive at the other end of the cable.
type Signaller interface {
	Signal(line via.Line, rising bool)
}

// Parallel is a cable connected to a single drive.
type Parallel struct {
	device int
	sync   Synchronizer
	flag   FlagSink
	drive  Signaller

	c64 uint8
	drv uint8
}

// NewParallel creates a cable between the C64 and the drive with the device
// number.
func NewParallel(device int, sync Synchronizer, flag FlagSink, drive Signaller) *Parallel {
	return &Parallel{
		device: device,
		sync:   sync,
		flag:   flag,
		drive:  drive,
		c64:    0xff,
		drv:    0xff,
	}
}

// Device returns the number of the drive the cable is connected to.
func (p *Parallel) Device() int {
	return p.device
}

// Reset releases the data lines at both ends.
func (p *Parallel) Reset() {
	p.c64 = 0xff
	p.drv = 0xff
	p.flag.SetFlag(false)
}

// C64Write implements the Cable interface.
func (p *Parallel) C64Write(v uint8) {
	p.sync.Synchronize(bridge.Write)
	p.c64 = v
}

// C64Read implements the Cable interface.
func (p *Parallel) C64Read() uint8 {
	p.sync.Synchronize(bridge.Read)
	return p.c64 & p.drv
}

// Pulse implements the Cable interface. The PC2 output of CIA2 is low for
// one cycle, which is seen by the drive as a falling edge.
func (p *Parallel) Pulse() {
	p.sync.Synchronize(bridge.Write)
	p.drive.Signal(via.CB1, false)
	p.drive.Signal(via.CB1, true)
}

// DriveWrite implements the Cable interface.
func (p *Parallel) DriveWrite(device int, v uint8) {
	if device == p.device {
		p.drv = v
	}
}

// DriveRead implements the Cable interface.
func (p *Parallel) DriveRead(device int) uint8 {
	if device != p.device {
		return 0xff
	}
	return p.c64 & p.drv
}

// DriveHandshake implements the Cable interface.
func (p *Parallel) DriveHandshake(device int, high bool) {
	if device == p.device {
		p.flag.SetFlag(!high)
	}
}
