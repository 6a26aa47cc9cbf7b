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

package drive_test

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/jetsetilly/gopher64/diskimage"
	"github.com/jetsetilly/gopher64/hardware/drive"
	"github.com/jetsetilly/gopher64/hardware/iec"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
	"github.com/jetsetilly/gopher64/test"
)

// a ROM that stores $42 in $0300 and waits. the IRQ handler stores $01 in
// $0301 and waits
func testROM() []uint8 {
	rom := make([]uint8, drive.ROMSize)
	copy(rom[0x0000:], []uint8{0x58, 0xa9, 0x42, 0x8d, 0x00, 0x03, 0x4c, 0x06, 0xc0})
	copy(rom[0x0100:], []uint8{0xa9, 0x01, 0x8d, 0x01, 0x03, 0x4c, 0x05, 0xc1})
	rom[0x3ffc], rom[0x3ffd] = 0x00, 0xc0
	rom[0x3ffe], rom[0x3fff] = 0x00, 0xc1
	return rom
}

func newDrive(t *testing.T) (*drive.Drive, *iec.Bus) {
	t.Helper()
	bus := iec.NewBus()
	drv, err := drive.NewDrive(nil, 8, bus)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, drv.SetROM(testROM()))
	test.DemandSuccess(t, drv.PowerOn(true))
	t.Cleanup(drv.Shutdown)
	return drv, bus
}

// a disk image that records the tracks written to it
type image struct {
	size    int
	err     error
	written map[int][]uint8
}

func (img *image) Track(_ int) ([]uint8, error) {
	if img.err != nil {
		return nil, img.err
	}
	return make([]uint8, img.size), nil
}

func (img *image) WriteProtected() bool {
	return false
}

func (img *image) WriteTrack(halftrack int, gcr []uint8) error {
	img.written[halftrack] = slices.Clone(gcr)
	return nil
}

func TestNewDrive(t *testing.T) {
	bus := iec.NewBus()
	_, err := drive.NewDrive(nil, 12, bus)
	test.ExpectEquality(t, errors.Is(err, drive.ErrBadDevice), true)

	drv, err := drive.NewDrive(nil, 9, bus)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, drv.Label(), "drive9")

	// no ROM
	test.ExpectEquality(t, errors.Is(drv.PowerOn(true), drive.ErrNoROM), true)
	test.ExpectEquality(t, errors.Is(drv.SetROM(make([]uint8, 100)), drive.ErrROMSize), true)

	// the drive is only connected to the bus when it is powered
	test.ExpectEquality(t, len(bus.Connected()), 0)
	test.DemandSuccess(t, drv.SetROM(testROM()))
	test.DemandSuccess(t, drv.PowerOn(true))
	test.ExpectEquality(t, slices.Equal(bus.Connected(), []int{9}), true)
	test.DemandSuccess(t, drv.PowerOn(false))
	test.ExpectEquality(t, len(bus.Connected()), 0)
	test.ExpectEquality(t, drv.Status().String(), "off")
}

func TestMemoryMap(t *testing.T) {
	drv, _ := newDrive(t)

	// the 2K of RAM is mirrored in every 8K block
	drv.Write(0x0010, 0x42)
	test.ExpectEquality(t, drv.Read(0x0010), uint8(0x42))
	test.ExpectEquality(t, drv.Read(0x2010), uint8(0x42))
	test.ExpectEquality(t, drv.Read(0x4010), uint8(0x42))

	// the second kilobyte is not a mirror of the first
	test.ExpectEquality(t, drv.Read(0x0410), uint8(0x00))
	drv.Write(0x0410, 0x24)
	test.ExpectEquality(t, drv.Read(0x0010), uint8(0x42))
	test.ExpectEquality(t, drv.Read(0x2410), uint8(0x24))

	// nothing between RAM and VIA1
	test.ExpectEquality(t, drv.Read(0x0810), uint8(0xff))

	// ROM is mirrored at $8000 and cannot be written
	test.ExpectEquality(t, drv.Read(0xc000), uint8(0x58))
	test.ExpectEquality(t, drv.Read(0x8000), uint8(0x58))
	drv.Write(0xc000, 0x00)
	test.ExpectEquality(t, drv.Read(0xc000), uint8(0x58))

	// VIA registers are mirrored every 16 bytes
	drv.Write(0x1803, 0x5a)
	test.ExpectEquality(t, drv.Read(0x1813), uint8(0x5a))
	drv.Write(0x1c03, 0xa5)
	test.ExpectEquality(t, drv.Read(0x1ff3), uint8(0xa5))
	test.ExpectEquality(t, drv.Read(0x1803), uint8(0x5a))

	// RAM expansion
	test.ExpectFailure(t, drv.SetExpansion(drive.Expansion(6), true))
	test.DemandSuccess(t, drv.SetExpansion(drive.Expansion8000, true))
	drv.Write(0x8000, 0x99)
	test.ExpectEquality(t, drv.Read(0x8000), uint8(0x99))
	test.ExpectEquality(t, drv.Read(0xc000), uint8(0x58))
	test.DemandSuccess(t, drv.SetExpansion(drive.Expansion8000, false))
	test.ExpectEquality(t, drv.Read(0x8000), uint8(0x58))
	test.ExpectEquality(t, drive.Expansion8000.String(), "$8000")
}

func TestCPU(t *testing.T) {
	drv, _ := newDrive(t)
	sched := drv.Scheduler()

	// one shot timer on VIA1
	drv.Write(0x180e, 0xc0)
	drv.Write(0x1804, 0x00)
	drv.Write(0x1805, 0x01)

	sched.RunUntil(2000, scheduler.PHI1)
	test.ExpectEquality(t, drv.Read(0x0300), uint8(0x42))
	test.ExpectEquality(t, drv.Read(0x0301), uint8(0x01))

	// a reset clears RAM and restarts the CPU
	drv.Reset()
	test.ExpectEquality(t, drv.Read(0x0300), uint8(0x00))
	sched.RunUntil(100, scheduler.PHI1)
	test.ExpectEquality(t, drv.Read(0x0300), uint8(0x42))
	test.ExpectEquality(t, drv.Read(0x0301), uint8(0x00))
}

func TestATN(t *testing.T) {
	drv, bus := newDrive(t)

	// CA1 on the rising edge. the ATN input is inverted
	drv.Write(0x180c, 0x01)
	bus.WriteFromC64(iec.C64ATNOut)
	test.ExpectEquality(t, drv.Read(0x180d)&0x02, uint8(0x02))
	test.ExpectEquality(t, drv.Read(0x1800)&iec.DriveATNIn, iec.DriveATNIn)

	// the acknowledge circuit pulls DATA low until the drive sets ATNA
	test.ExpectEquality(t, bus.DATA(), true)
	drv.Write(0x1802, iec.DriveDATAOut|iec.DriveCLKOut|iec.DriveATNA)
	drv.Write(0x1800, iec.DriveATNA)
	test.ExpectEquality(t, bus.DATA(), false)

	// the drive pulls CLK
	drv.Write(0x1800, iec.DriveATNA|iec.DriveCLKOut)
	test.ExpectEquality(t, bus.CLK(), true)
	test.ExpectEquality(t, bus.ReadToC64()&iec.C64CLKIn, uint8(0x00))

	// releasing ATN
	bus.WriteFromC64(0)
	test.ExpectEquality(t, drv.Read(0x1800)&iec.DriveATNIn, uint8(0x00))
}

func TestStepper(t *testing.T) {
	drv, _ := newDrive(t)
	test.ExpectEquality(t, drv.Status().Track, float32(18))

	drv.Write(0x1c02, 0x6f)
	drv.Write(0x1c00, 0x04)
	test.ExpectEquality(t, drv.Status().Motor, true)

	// stepping in
	drv.Write(0x1c00, 0x05)
	test.ExpectEquality(t, drv.Status().Track, float32(18.5))
	drv.Write(0x1c00, 0x06)
	test.ExpectEquality(t, drv.Status().Track, float32(19))

	// stepping out
	drv.Write(0x1c00, 0x05)
	test.ExpectEquality(t, drv.Status().Track, float32(18.5))

	// the head does not move with the motor off
	drv.Write(0x1c00, 0x01)
	drv.Write(0x1c00, 0x02)
	test.ExpectEquality(t, drv.Status().Track, float32(18.5))
	test.ExpectEquality(t, drv.Status().Motor, false)

	// LED
	drv.Write(0x1c00, 0x0a)
	test.ExpectEquality(t, drv.Status().LED, true)

	// the head stops at track one
	phase := uint8(0x02)
	for range 100 {
		phase = (phase - 1) & 0x03
		drv.Write(0x1c00, 0x04|phase)
	}
	test.ExpectEquality(t, drv.Status().Track, float32(1))
}

func TestWriteProtect(t *testing.T) {
	drv, _ := newDrive(t)
	sched := drv.Scheduler()
	drv.Write(0x1c02, 0x6f)

	// no disk
	test.ExpectEquality(t, drv.Read(0x1c00)&0x10, uint8(0x10))

	img := diskimage.Blank()
	img.SetWriteProtected(true)
	test.DemandSuccess(t, drv.InsertDisk(img))
	test.ExpectEquality(t, drv.Read(0x1c00)&0x10, uint8(0x00))

	sched.RunUntil(drive.InsertDelay+1, scheduler.PHI1)
	test.ExpectEquality(t, drv.Read(0x1c00)&0x10, uint8(0x00))
	img.SetWriteProtected(false)
	test.ExpectEquality(t, drv.Read(0x1c00)&0x10, uint8(0x10))

	// the sensor is covered while the disk is being ejected
	test.DemandSuccess(t, drv.EjectDisk())
	test.ExpectEquality(t, drv.Read(0x1c00)&0x10, uint8(0x00))
	sched.RunUntil(drive.InsertDelay+drive.EjectDelay+2, scheduler.PHI1)
	test.ExpectEquality(t, drv.Read(0x1c00)&0x10, uint8(0x10))
	test.ExpectEquality(t, drv.Disk(), nil)
}

func TestReadTrack(t *testing.T) {
	drv, _ := newDrive(t)
	sched := drv.Scheduler()

	img := diskimage.Blank()
	test.DemandSuccess(t, drv.InsertDisk(img))

	// byte ready enabled, read mode, motor on at the density of track 18
	drv.Write(0x1c0c, 0xee)
	drv.Write(0x1c02, 0x6f)
	drv.Write(0x1c00, 0x44)

	start := uint64(drive.InsertDelay + 1)
	sched.RunUntil(start, scheduler.PHI1)

	var collected []uint8
	var synced bool
	for c := start; c < start+50000; c++ {
		sched.RunUntil(c, scheduler.PHI1)
		// reading port A clears the byte ready flag of the last byte before
		// the sync mark
		if drv.Read(0x1c00)&0x80 == 0x00 {
			synced = true
			collected = collected[:0]
			drv.Read(0x1c01)
			continue
		}
		if drv.Read(0x1c0d)&0x02 == 0x02 {
			b := drv.Read(0x1c01)
			if synced {
				collected = append(collected, b)
			}
		}
		if synced && len(collected) >= 10 {
			break
		}
	}

	test.DemandEquality(t, len(collected), 10)

	// a header block or a data block follows every sync mark
	test.ExpectEquality(t, collected[0] == 0x52 || collected[0] == 0x55, true)

	track, err := img.Track(drive.ResetHalfTrack)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, bytes.Contains(append(track, track...), collected), true)

	test.ExpectEquality(t, drv.CPU().Status.Overflow, true)
}

func TestWriteBack(t *testing.T) {
	drv, _ := newDrive(t)
	sched := drv.Scheduler()

	img := &image{size: 6250, written: make(map[int][]uint8)}
	test.DemandSuccess(t, drv.InsertDisk(img))

	// write mode
	drv.Write(0x1c0c, 0xce)
	drv.Write(0x1c03, 0xff)
	drv.Write(0x1c01, 0xaa)
	drv.Write(0x1c02, 0x6f)
	drv.Write(0x1c00, 0x04)

	sched.RunUntil(10000, scheduler.PHI1)
	test.ExpectEquality(t, len(img.written), 0)

	// moving the head writes the track back
	drv.Write(0x1c00, 0x05)
	written, ok := img.written[drive.ResetHalfTrack]
	test.DemandEquality(t, ok, true)
	test.ExpectEquality(t, len(written), img.size)
	test.ExpectEquality(t, bytes.Count(written, []uint8{0xaa}) > 250, true)

	// as does ejecting the disk
	sched.RunUntil(11000, scheduler.PHI1)
	test.DemandSuccess(t, drv.EjectDisk())
	_, ok = img.written[drive.ResetHalfTrack+1]
	test.ExpectEquality(t, ok, true)
}

func TestDiskError(t *testing.T) {
	drv, _ := newDrive(t)

	bad := errors.New("bad track")
	img := &image{size: 6250, err: bad, written: make(map[int][]uint8)}
	err := drv.InsertDisk(img)
	test.ExpectEquality(t, errors.Is(err, bad), true)
	test.ExpectEquality(t, errors.Is(drv.LastError(), bad), true)
	test.ExpectSuccess(t, drv.LastError())

	test.ExpectEquality(t, errors.Is(drv.InsertDisk(nil), drive.ErrNoDisk), true)
}
