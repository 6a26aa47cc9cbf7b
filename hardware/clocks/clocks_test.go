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

package clocks_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/test"
)

func TestRates(t *testing.T) {
	test.ExpectApproximate(t, clocks.PAL.Hz(), 985248.6, 0.00001)
	test.ExpectApproximate(t, clocks.NTSC.Hz(), 1022727.2, 0.00001)
	test.ExpectEquality(t, clocks.Drive.Hz(), 1000000.0)
}

func TestParseRate(t *testing.T) {
	r, err := clocks.ParseRate("pal")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, r, clocks.PAL)

	r, err = clocks.ParseRate(" NTSC ")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, r, clocks.NTSC)

	_, err = clocks.ParseRate("SECAM")
	test.ExpectFailure(t, err)
}

func TestGeometry(t *testing.T) {
	test.ExpectEquality(t, clocks.GeometryForRate(clocks.PAL).CyclesPerFrame(), 19656)
	test.ExpectEquality(t, clocks.GeometryForRate(clocks.NTSC).CyclesPerFrame(), 17095)
}
