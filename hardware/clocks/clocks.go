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

// Package clocks defines the clock rates of the machines in the emulation.
//
// Rates are stored as exact fractions so that the ratio between two clock
// domains can be computed without accumulating rounding errors. The PAL and
// NTSC rates are derived from the colour carrier crystals:
//
//	PAL  = 17.734475MHz / 18
//	NTSC = 14.31818MHz / 14
//
// The 1541 disk drive runs from its own 16MHz crystal divided by 16.
package clocks

import (
	"fmt"
	"strings"
)

// Rate is a clock rate in Hz, expressed as Num/Den.
type Rate struct {
	Num uint64
	Den uint64
}

// The list of clock rates used by the emulation.
var (
	PAL   = Rate{Num: 17734475, Den: 18}
	NTSC  = Rate{Num: 14318181, Den: 14}
	Drive = Rate{Num: 1000000, Den: 1}
)

// Hz returns the clock rate as a floating point value.
func (r Rate) Hz() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rate) String() string {
	switch r {
	case PAL:
		return "PAL"
	case NTSC:
		return "NTSC"
	case Drive:
		return "1541"
	}
	return fmt.Sprintf("%.6fMHz", r.Hz()/1000000)
}

// Valid returns true if the rate can be used for clocking.
func (r Rate) Valid() bool {
	return r.Num > 0 && r.Den > 0
}

// ParseRate converts the name of a video standard to its clock rate.
func ParseRate(s string) (Rate, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PAL":
		return PAL, nil
	case "NTSC":
		return NTSC, nil
	}
	return Rate{}, fmt.Errorf("clocks: unsupported clock rate (%s)", s)
}

// Geometry describes the raster of the video standard associated with a
// clock rate.
type Geometry struct {
	Lines         int
	CyclesPerLine int

	// the first and last visible lines of the display window
	FirstVisible int
	LastVisible  int

	// refresh rate of the television
	RefreshRate float64

	// frequency of the mains supply in the region. used to clock the TOD
	// counters of the CIAs
	Mains uint64
}

// CyclesPerFrame returns the number of CPU cycles in a single frame.
func (g Geometry) CyclesPerFrame() int {
	return g.Lines * g.CyclesPerLine
}

// Geometry for PAL and NTSC machines (6569 and 6567R8 video chips).
var (
	PALGeometry  = Geometry{Lines: 312, CyclesPerLine: 63, FirstVisible: 16, LastVisible: 287, RefreshRate: 50.125, Mains: 50}
	NTSCGeometry = Geometry{Lines: 263, CyclesPerLine: 65, FirstVisible: 27, LastVisible: 259, RefreshRate: 59.826, Mains: 60}
)

// GeometryForRate returns the video geometry that matches the clock rate.
func GeometryForRate(r Rate) Geometry {
	if r == NTSC {
		return NTSCGeometry
	}
	return PALGeometry
}
