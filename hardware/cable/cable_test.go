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

package cable_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/hardware/bridge"
	"github.com/jetsetilly/gopher64/hardware/cable"
	"github.com/jetsetilly/gopher64/hardware/via"
	"github.com/jetsetilly/gopher64/test"
)

type recorder struct {
	syncs []bridge.Priority
	flags []bool
	edges []bool
}

func (r *recorder) Synchronize(p bridge.Priority) {
	r.syncs = append(r.syncs, p)
}

func (r *recorder) SetFlag(low bool) {
	r.flags = append(r.flags, low)
}

func (r *recorder) Signal(line via.Line, rising bool) {
	if line == via.CB1 {
		r.edges = append(r.edges, rising)
	}
}

func TestDisconnected(t *testing.T) {
	var c cable.Cable = cable.Disconnected{}
	c.C64Write(0x00)
	test.ExpectEquality(t, c.C64Read(), uint8(0xff))
	test.ExpectEquality(t, c.DriveRead(8), uint8(0xff))
}

func TestParallel(t *testing.T) {
	r := &recorder{}
	c := cable.NewParallel(8, r, r, r)
	var iface cable.Cable
	test.ExpectImplements(t, c, iface)

	c.C64Write(0xf0)
	test.ExpectEquality(t, c.DriveRead(8), uint8(0xf0))
	test.ExpectEquality(t, c.DriveRead(9), uint8(0xff))

	// open collector. both ends must release a line for it to be high
	c.DriveWrite(8, 0x3c)
	test.ExpectEquality(t, c.C64Read(), uint8(0x30))

	// writes from other drives are not seen
	c.DriveWrite(9, 0x00)
	test.ExpectEquality(t, c.C64Read(), uint8(0x30))

	test.DemandEquality(t, len(r.syncs), 3)
	test.ExpectEquality(t, r.syncs[0], bridge.Write)
	test.ExpectEquality(t, r.syncs[1], bridge.Read)
}

func TestHandshake(t *testing.T) {
	r := &recorder{}
	c := cable.NewParallel(8, r, r, r)

	c.Pulse()
	test.DemandEquality(t, len(r.edges), 2)
	test.ExpectEquality(t, r.edges[0], false)
	test.ExpectEquality(t, r.edges[1], true)

	c.DriveHandshake(8, false)
	c.DriveHandshake(8, true)
	test.DemandEquality(t, len(r.flags), 2)
	test.ExpectEquality(t, r.flags[0], true)
	test.ExpectEquality(t, r.flags[1], false)
}
