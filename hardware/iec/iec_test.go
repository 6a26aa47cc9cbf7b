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

package iec_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/hardware/iec"
	"github.com/jetsetilly/gopher64/test"
)

type device struct {
	edges []bool
}

func (d *device) ATN(asserted bool) {
	d.edges = append(d.edges, asserted)
}

func TestConnect(t *testing.T) {
	b := iec.NewBus()
	test.ExpectSuccess(t, b.Connect(8, nil))
	test.ExpectFailure(t, b.Connect(8, nil))
	test.ExpectFailure(t, b.Connect(12, nil))
	test.ExpectSuccess(t, b.Connect(9, nil))
	test.ExpectEquality(t, len(b.Connected()), 2)
	b.Disconnect(8)
	test.ExpectEquality(t, len(b.Connected()), 1)
}

func TestWiredAND(t *testing.T) {
	b := iec.NewBus()
	test.DemandSuccess(t, b.Connect(8, nil))

	// nothing pulled. the drive must acknowledge ATN being released to keep
	// DATA released
	test.ExpectEquality(t, b.ReadToC64(), uint8(0xff))
	test.ExpectEquality(t, b.String(), "ATN CLK DATA")

	b.WriteFromC64(iec.C64CLKOut)
	test.ExpectEquality(t, b.ReadToC64()&iec.C64CLKIn, uint8(0))
	test.ExpectEquality(t, b.ReadToDrive(8)&iec.DriveCLKIn, iec.DriveCLKIn)

	// both pull CLK. it stays low until both release
	b.WriteFromDrive(8, iec.DriveCLKOut)
	b.WriteFromC64(0)
	test.ExpectEquality(t, b.CLK(), true)
	b.WriteFromDrive(8, 0)
	test.ExpectEquality(t, b.CLK(), false)

	b.WriteFromDrive(8, iec.DriveDATAOut)
	test.ExpectEquality(t, b.ReadToC64()&iec.C64DATAIn, uint8(0))
}

func TestATNAcknowledge(t *testing.T) {
	b := iec.NewBus()
	d := &device{}
	test.DemandSuccess(t, b.Connect(8, d))

	// ATN pulled and the drive has not set ATNA. the hardware pulls DATA
	b.WriteFromC64(iec.C64ATNOut)
	test.ExpectEquality(t, b.DATA(), true)
	test.ExpectEquality(t, b.ReadToDrive(8)&iec.DriveATNIn, iec.DriveATNIn)
	test.DemandEquality(t, len(d.edges), 1)
	test.ExpectEquality(t, d.edges[0], true)

	// repeated writes of the same value are not edges
	b.WriteFromC64(iec.C64ATNOut)
	test.ExpectEquality(t, len(d.edges), 1)

	// the drive acknowledges
	b.WriteFromDrive(8, iec.DriveATNA)
	test.ExpectEquality(t, b.DATA(), false)

	// ATN released with ATNA still set. DATA is pulled again
	b.WriteFromC64(0)
	test.ExpectEquality(t, b.DATA(), true)
	test.DemandEquality(t, len(d.edges), 2)
	test.ExpectEquality(t, d.edges[1], false)

	b.WriteFromDrive(8, 0)
	test.ExpectEquality(t, b.DATA(), false)
}

func TestDeviceNumber(t *testing.T) {
	b := iec.NewBus()
	test.DemandSuccess(t, b.Connect(9, nil))
	test.ExpectEquality(t, b.ReadToDrive(9)&iec.DriveDevice, uint8(0x20))
}
