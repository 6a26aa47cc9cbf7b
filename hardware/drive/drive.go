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
	"errors"
	"fmt"

	"github.com/jetsetilly/gopher64/environment"
	"github.com/jetsetilly/gopher64/hardware/cable"
	"github.com/jetsetilly/gopher64/hardware/cpu"
	"github.com/jetsetilly/gopher64/hardware/iec"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
	"github.com/jetsetilly/gopher64/hardware/via"
	"github.com/jetsetilly/gopher64/logger"
	"github.com/jetsetilly/gopher64/notifications"
)

// Memory sizes.
const (
	RAMSize       = 0x0800
	ROMSize       = 0x4000
	ExpansionSize = 0x2000
)

// Base addresses of the two VIAs. Both are mirrored every 16 bytes within a
// 1K block.
const (
	VIA1Base uint16 = 0x1800
	VIA2Base uint16 = 0x1c00
)

// Expansion identifies one of the 8K blocks of RAM that can be added to the
// drive. Some fast loaders and copiers need the extra memory.
type Expansion int

// List of valid Expansion values. The value is the address of the block.
const (
	Expansion2000 Expansion = iota + 1
	Expansion4000
	Expansion6000
	Expansion8000
	ExpansionA000
)

// Address returns the first address of the expansion block.
func (e Expansion) Address() uint16 {
	return uint16(e) << 13
}

func (e Expansion) String() string {
	return fmt.Sprintf("$%04x", e.Address())
}

// DiskImage is the disk in the drive. Track() returns the GCR encoded data
// for the half track. Half tracks are numbered from two.
type DiskImage interface {
	Track(halftrack int) ([]uint8, error)
	WriteProtected() bool
}

// TrackWriter is implemented by disk images that accept the data written by
// the drive.
type TrackWriter interface {
	WriteTrack(halftrack int, gcr []uint8) error
}

// Sentinel errors.
var (
	ErrNoROM        = errors.New("drive: no ROM")
	ErrROMSize      = errors.New("drive: ROM must be 16K")
	ErrNoDisk       = errors.New("drive: no disk")
	ErrBadDevice    = errors.New("drive: device number must be between 8 and 11")
	ErrBadExpansion = errors.New("drive: no such RAM expansion")
)

// Status of the drive as seen from the outside.
type Status struct {
	Powered bool
	Motor   bool
	LED     bool

	// the track under the head. half tracks end in .5
	Track float32
}

func (s Status) String() string {
	if !s.Powered {
		return "off"
	}
	led := "-"
	if s.LED {
		led = "*"
	}
	motor := "stopped"
	if s.Motor {
		motor = "spinning"
	}
	return fmt.Sprintf("%s track %.1f %s", led, s.Track, motor)
}

// Drive is a single 1541.
type Drive struct {
	env    *environment.Environment
	label  string
	device int

	sched  *scheduler.Scheduler
	cpu    *cpu.CPU
	driver *cpu.Driver

	via1 *via.VIA
	via2 *via.VIA

	ram       [RAMSize]uint8
	rom       [ROMSize]uint8
	customROM []uint8
	hasROM    bool

	// index is the expansion value minus one. nil if the block is not fitted
	expansion [5]*[ExpansionSize]uint8

	bus   *iec.Bus
	cable cable.Cable

	// one bit per VIA. the IRQ line of the CPU is the OR of the two
	irq uint8

	disk *diskController

	powered bool
}

type irqSource struct {
	drv *Drive
	bit uint8
}

// Interrupt implements the via.InterruptSink interface.
func (src irqSource) Interrupt(state bool) {
	if state {
		src.drv.irq |= src.bit
	} else {
		src.drv.irq &^= src.bit
	}
	src.drv.cpu.SetIRQ(src.drv.irq != 0)
}

// NewDrive is the preferred method of initialisation for the Drive type. The
// drive is not powered and is not connected to the bus until it is. The
// environment argument can be nil.
func NewDrive(env *environment.Environment, device int, bus *iec.Bus) (*Drive, error) {
	if device < 8 || device > 11 {
		return nil, fmt.Errorf("%w (%d)", ErrBadDevice, device)
	}

	drv := &Drive{
		env:    env,
		label:  fmt.Sprintf("drive%d", device),
		device: device,
		bus:    bus,
		cable:  cable.Disconnected{},
	}

	drv.sched = scheduler.NewScheduler(drv.label)
	drv.cpu = cpu.NewCPU(env, drv)
	drv.driver = cpu.NewDriver(fmt.Sprintf("%s cpu", drv.label), drv.cpu, drv.sched)
	drv.disk = newDiskController(drv)
	drv.via1 = via.NewVIA(fmt.Sprintf("%s VIA1", drv.label), drv.sched, irqSource{drv: drv, bit: 0x01}, &busController{drv: drv})
	drv.via2 = via.NewVIA(fmt.Sprintf("%s VIA2", drv.label), drv.sched, irqSource{drv: drv, bit: 0x02}, drv.disk)

	return drv, nil
}

// Label returns the name of the drive.
func (drv *Drive) Label() string {
	return drv.label
}

// notices are sent through the environment
func (drv *Drive) notice(notice notifications.Notice) {
	if err := drv.env.Notify(notice); err != nil {
		logger.Log(drv.env, "drive", err)
	}
}

func (drv *Drive) String() string {
	return fmt.Sprintf("%s: %s", drv.label, drv.Status())
}

// Device returns the device number of the drive.
func (drv *Drive) Device() int {
	return drv.device
}

// Scheduler returns the scheduler that runs the drive.
func (drv *Drive) Scheduler() *scheduler.Scheduler {
	return drv.sched
}

// CPU returns the drive's CPU.
func (drv *Drive) CPU() *cpu.CPU {
	return drv.cpu
}

// VIA1 returns the bus controller.
func (drv *Drive) VIA1() *via.VIA {
	return drv.via1
}

// VIA2 returns the disk controller.
func (drv *Drive) VIA2() *via.VIA {
	return drv.via2
}

// SetCable connects the drive end of the parallel cable. A nil value
// disconnects the cable.
func (drv *Drive) SetCable(c cable.Cable) {
	if c == nil {
		c = cable.Disconnected{}
	}
	drv.cable = c
}

// SetROM sets the DOS ROM of the drive. The custom ROM, if there is one,
// takes priority.
func (drv *Drive) SetROM(data []uint8) error {
	if len(data) != ROMSize {
		return fmt.Errorf("%w (%d bytes)", ErrROMSize, len(data))
	}
	if drv.customROM == nil {
		copy(drv.rom[:], data)
	}
	drv.hasROM = true
	return nil
}

// SetCustomROM replaces the DOS ROM until it is removed by calling
// SetCustomROM(nil). The stock ROM must be set again after removing a custom
// ROM.
func (drv *Drive) SetCustomROM(data []uint8) error {
	if data == nil {
		drv.customROM = nil
		drv.hasROM = false
		return nil
	}
	if len(data) != ROMSize {
		return fmt.Errorf("%w (%d bytes)", ErrROMSize, len(data))
	}
	drv.customROM = append([]uint8{}, data...)
	copy(drv.rom[:], drv.customROM)
	drv.hasROM = true
	logger.Logf(drv.env, "drive", "%s: custom ROM", drv.label)
	return nil
}

// SetExpansion fits or removes one of the RAM expansion blocks.
func (drv *Drive) SetExpansion(e Expansion, fitted bool) error {
	if e < Expansion2000 || e > ExpansionA000 {
		return fmt.Errorf("%w (%d)", ErrBadExpansion, int(e))
	}
	if !fitted {
		drv.expansion[e-1] = nil
		return nil
	}
	if drv.expansion[e-1] == nil {
		drv.expansion[e-1] = &[ExpansionSize]uint8{}
	}
	return nil
}

// Powered returns true if the drive is switched on.
func (drv *Drive) Powered() bool {
	return drv.powered
}

// PowerOn switches the drive on or off. The drive is reset when it is
// switched on. A drive that is switched off is disconnected from the bus.
func (drv *Drive) PowerOn(on bool) error {
	if on == drv.powered {
		return nil
	}

	if on {
		if !drv.hasROM {
			return ErrNoROM
		}
		if err := drv.bus.Connect(drv.device, drv); err != nil {
			return fmt.Errorf("drive: %w", err)
		}
		drv.powered = true
		logger.Logf(drv.env, "drive", "%s: power on", drv.label)
		drv.Reset()
		return nil
	}

	drv.powered = false
	drv.driver.Stop()
	drv.disk.stop()
	drv.bus.Disconnect(drv.device)
	drv.cable.DriveWrite(drv.device, 0xff)
	drv.cable.DriveHandshake(drv.device, true)
	logger.Logf(drv.env, "drive", "%s: power off", drv.label)
	return nil
}

// Reset the drive. The contents of RAM are lost. The disk stays in the
// drive. Reset does nothing if the drive is not powered.
func (drv *Drive) Reset() {
	if !drv.powered {
		return
	}

	drv.sched.Reset()
	clear(drv.ram[:])
	for _, e := range drv.expansion {
		if e != nil {
			clear(e[:])
		}
	}

	drv.disk.reset()
	drv.via1.Reset()
	drv.via2.Reset()
	drv.irq = 0
	drv.driver.Reset()
}

// Shutdown stops the CPU coroutine and disconnects the drive from the bus.
func (drv *Drive) Shutdown() {
	_ = drv.PowerOn(false)
	drv.driver.Stop()
}

// ATN implements the iec.Device interface.
func (drv *Drive) ATN(asserted bool) {
	if !drv.powered {
		return
	}
	drv.via1.Signal(via.CA1, asserted)
}

// InsertDisk puts the disk in the drive. Any disk already in the drive is
// ejected first.
func (drv *Drive) InsertDisk(img DiskImage) error {
	if img == nil {
		return ErrNoDisk
	}
	return drv.disk.insert(img)
}

// EjectDisk removes the disk from the drive. Tracks that have been written
// to are written back to the image.
func (drv *Drive) EjectDisk() error {
	return drv.disk.eject()
}

// Disk returns the image in the drive or nil if there is no disk.
func (drv *Drive) Disk() DiskImage {
	return drv.disk.image
}

// LastError returns the most recent error reading or writing the disk
// image. The error is cleared by the call.
func (drv *Drive) LastError() error {
	err := drv.disk.lastErr
	drv.disk.lastErr = nil
	return err
}

// Status returns the outward state of the drive.
func (drv *Drive) Status() Status {
	return Status{
		Powered: drv.powered,
		Motor:   drv.disk.motor,
		LED:     drv.disk.led,
		Track:   float32(drv.disk.halftrack) / 2,
	}
}

// Read implements the cpu.Memory interface.
func (drv *Drive) Read(address uint16) uint8 {
	if e := drv.expansionBlock(address); e != nil {
		return e[address&(ExpansionSize-1)]
	}

	if address&0x8000 == 0x8000 {
		return drv.rom[address&(ROMSize-1)]
	}

	switch chip := address & 0x1c00; {
	case chip < RAMSize:
		return drv.ram[address&(RAMSize-1)]
	case chip == VIA1Base:
		return drv.via1.Read(address)
	case chip == VIA2Base:
		return drv.via2.Read(address)
	}

	return 0xff
}

// Write implements the cpu.Memory interface.
func (drv *Drive) Write(address uint16, data uint8) {
	if e := drv.expansionBlock(address); e != nil {
		e[address&(ExpansionSize-1)] = data
	}

	if address&0x8000 == 0x8000 {
		return
	}

	switch chip := address & 0x1c00; {
	case chip < RAMSize:
		drv.ram[address&(RAMSize-1)] = data
	case chip == VIA1Base:
		drv.via1.Write(address, data)
	case chip == VIA2Base:
		drv.via2.Write(address, data)
	}
}

func (drv *Drive) expansionBlock(address uint16) *[ExpansionSize]uint8 {
	b := address >> 13
	if b < 1 || b > 5 {
		return nil
	}
	return drv.expansion[b-1]
}

// busController is the hook for VIA1.
type busController struct {
	drv *Drive
}

// ReadPA implements the via.PortHook interface.
func (bc *busController) ReadPA() uint8 {
	return bc.drv.cable.DriveRead(bc.drv.device)
}

// ReadPB implements the via.PortHook interface.
func (bc *busController) ReadPB() uint8 {
	return bc.drv.bus.ReadToDrive(bc.drv.device)
}

// WritePA implements the via.PortHook interface.
func (bc *busController) WritePA(data uint8) {
	if bc.drv.powered {
		bc.drv.cable.DriveWrite(bc.drv.device, data)
	}
}

// WritePB implements the via.PortHook interface.
func (bc *busController) WritePB(data uint8) {
	if bc.drv.powered {
		bc.drv.bus.WriteFromDrive(bc.drv.device, data)
	}
}

// SetCA2 implements the via.PortHook interface.
func (bc *busController) SetCA2(high bool) {
	if bc.drv.powered {
		bc.drv.cable.DriveHandshake(bc.drv.device, high)
	}
}

// SetCB2 implements the via.PortHook interface.
func (bc *busController) SetCB2(_ bool) {
}
