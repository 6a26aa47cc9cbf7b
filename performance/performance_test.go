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

package performance_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/performance"
	"github.com/jetsetilly/gopher64/test"
)

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("cpu,MEM")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)

	p, err = performance.ParseProfile("none")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	_, err = performance.ParseProfile("trace")
	test.ExpectFailure(t, err)
}

func TestRunProfiler(t *testing.T) {
	var ran bool
	err := performance.RunProfiler(performance.ProfileNone, "test", func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ran, true)

	e := errors.New("test error")
	err = performance.RunProfiler(performance.ProfileNone, "test", func() error {
		return e
	})
	test.ExpectEquality(t, errors.Is(err, e), true)
}

func TestCalcFPS(t *testing.T) {
	fps, accuracy := performance.CalcFPS(clocks.PALGeometry, 501, 10)
	test.ExpectApproximate(t, fps, 50.1, 0.001)
	test.ExpectApproximate(t, accuracy, 99.95, 0.01)

	fps, _ = performance.CalcFPS(clocks.PALGeometry, 100, 0)
	test.ExpectEquality(t, fps, 0.0)
}
