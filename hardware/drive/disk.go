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

package drive

import (
	"fmt"

	"github.com/jetsetilly/gopher64/hardware/via"
	"github.com/jetsetilly/gopher64/logger"
	"github.com/jetsetilly/gopher64/notifications"
)

// Half track limits of the head. The head starts on track 18 after a reset.
const (
	MinHalfTrack   = 2
	MaxHalfTrack   = 84
	ResetHalfTrack = 36
)

// Number of drive cycles after a disk is inserted or ejected during which the
// write protect sensor is covered and nothing can be read.
const (
	InsertDelay = 1800000
	EjectDelay  = 600000
)

// VIA2 port B bits.
const (
	pbStepper  uint8 = 0x03
	pbMotor    uint8 = 0x04
	pbLED      uint8 = 0x08
	pbWPS      uint8 = 0x10
	pbDensity  uint8 = 0x60
	pbSync     uint8 = 0x80
	pbUnusedIn uint8 = pbStepper | pbMotor | pbLED | pbDensity
)

// diskController is the hook for VIA2 and the mechanism it controls.
type diskController struct {
	drv *Drive
	rot rotation

	image     DiskImage
	track     []uint8
	halftrack int
	dirty     bool
	lastErr   error

	// the disk is being inserted or ejected until this drive cycle
	changing uint64

	pb    uint8
	motor bool
	led   bool
	zone  int

	// CA2 of VIA2 enables the byte ready signal. CB2 low selects write mode
	byteReady bool
	writeMode bool

	gcrRead  uint8
	gcrWrite uint8
}

func newDiskController(drv *Drive) *diskController {
	dc := &diskController{
		drv:       drv,
		halftrack: ResetHalfTrack,
	}
	dc.rot = rotation{
		dc:    dc,
		label: fmt.Sprintf("%s rotation", drv.label),
	}
	return dc
}

func (dc *diskController) reset() {
	dc.stop()
	dc.rot.reset()
	dc.pb = 0
	dc.led = false
	dc.zone = 0
	dc.byteReady = false
	dc.writeMode = false
	dc.gcrRead = 0
	dc.gcrWrite = 0
	dc.changing = 0
	dc.moveHead(ResetHalfTrack)
}

// stop the spindle motor
func (dc *diskController) stop() {
	dc.motor = false
	dc.rot.stop()
}

func (dc *diskController) isChanging() bool {
	return dc.drv.sched.Cycles() < dc.changing
}

func (dc *diskController) insert(img DiskImage) error {
	if dc.image != nil {
		_ = dc.eject()
	}

	dc.image = img
	dc.changing = dc.drv.sched.Cycles() + InsertDelay
	logger.Logf(dc.drv.env, "drive", "%s: disk inserted", dc.drv.label)

	return dc.load()
}

func (dc *diskController) eject() error {
	if dc.image == nil {
		return nil
	}

	dc.rot.rotate()
	err := dc.flush()
	dc.image = nil
	dc.track = nil
	dc.changing = dc.drv.sched.Cycles() + EjectDelay
	logger.Logf(dc.drv.env, "drive", "%s: disk ejected", dc.drv.label)

	return err
}

// load the track under the head from the image. the previous track is kept
// if the image returns an error
func (dc *diskController) load() error {
	if dc.image == nil {
		dc.track = nil
		return nil
	}

	data, err := dc.image.Track(dc.halftrack)
	if err != nil {
		dc.lastErr = fmt.Errorf("drive: %w", err)
		logger.Log(dc.drv.env, "drive", dc.lastErr)
		return dc.lastErr
	}

	dc.rot.rescale(len(dc.track), len(data))
	dc.track = data
	dc.dirty = false
	return nil
}

// flush a modified track to the image
func (dc *diskController) flush() error {
	if !dc.dirty || dc.image == nil {
		return nil
	}
	dc.dirty = false

	w, ok := dc.image.(TrackWriter)
	if !ok {
		return nil
	}

	if err := w.WriteTrack(dc.halftrack, dc.track); err != nil {
		dc.lastErr = fmt.Errorf("drive: %w", err)
		logger.Log(dc.drv.env, "drive", dc.lastErr)
		return dc.lastErr
	}
	return nil
}

func (dc *diskController) moveHead(halftrack int) {
	halftrack = min(max(halftrack, MinHalfTrack), MaxHalfTrack)
	if halftrack == dc.halftrack && dc.track != nil {
		return
	}
	_ = dc.flush()
	dc.halftrack = halftrack
	_ = dc.load()
}

func (dc *diskController) writeProtected() bool {
	return dc.image != nil && dc.image.WriteProtected()
}

// signal the end of a byte to the CPU and to VIA2
func (dc *diskController) signalByte() {
	if !dc.byteReady {
		return
	}
	dc.drv.cpu.SetOverflow()
	dc.drv.via2.Signal(via.CA1, false)
	dc.drv.via2.Signal(via.CA1, true)
}

// ReadPA implements the via.PortHook interface.
func (dc *diskController) ReadPA() uint8 {
	dc.rot.rotate()
	if dc.isChanging() {
		return 0
	}
	if dc.writeMode {
		return 0xff
	}
	return dc.gcrRead
}

// ReadPB implements the via.PortHook interface.
func (dc *diskController) ReadPB() uint8 {
	dc.rot.rotate()

	v := pbUnusedIn
	if !dc.isChanging() && !dc.writeProtected() {
		v |= pbWPS
	}
	if dc.writeMode || !dc.rot.sync() {
		v |= pbSync
	}
	return v
}

// WritePA implements the via.PortHook interface.
func (dc *diskController) WritePA(data uint8) {
	dc.rot.rotate()
	dc.gcrWrite = data
}

// WritePB implements the via.PortHook interface.
func (dc *diskController) WritePB(data uint8) {
	dc.rot.rotate()

	prev := dc.pb
	dc.pb = data

	led := data&pbLED == pbLED
	if led != dc.led {
		dc.led = led
		if led {
			dc.drv.notice(notifications.NotifyDriveLEDOn)
		} else {
			dc.drv.notice(notifications.NotifyDriveLEDOff)
		}
	}

	motor := data&pbMotor == pbMotor
	if motor != dc.motor {
		dc.motor = motor
		if motor {
			dc.rot.start()
			dc.drv.notice(notifications.NotifyDriveMotorOn)
		} else {
			dc.rot.stop()
			dc.drv.notice(notifications.NotifyDriveMotorOff)
		}
	}

	// the stepper only moves when the motor is on
	if motor && (prev^data)&pbStepper != 0 {
		switch prev & pbStepper {
		case (data + 1) & pbStepper:
			dc.moveHead(dc.halftrack - 1)
		case (data - 1) & pbStepper:
			dc.moveHead(dc.halftrack + 1)
		}
	}

	zone := int(data&pbDensity) >> 5
	if zone != dc.zone {
		dc.zone = zone
		dc.rot.reschedule()
	}
}

// SetCA2 implements the via.PortHook interface.
func (dc *diskController) SetCA2(high bool) {
	dc.rot.rotate()
	dc.byteReady = high
}

// SetCB2 implements the via.PortHook interface.
func (dc *diskController) SetCB2(high bool) {
	dc.rot.rotate()
	dc.writeMode = !high
}
