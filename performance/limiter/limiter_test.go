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

package limiter_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/gopher64/hardware/vic"
	"github.com/jetsetilly/gopher64/performance/limiter"
	"github.com/jetsetilly/gopher64/test"
)

func TestLimiter(t *testing.T) {
	lim := limiter.NewFPSLimiter(100)

	var sink vic.FrameSink
	test.ExpectImplements(t, lim, sink)

	start := time.Now()
	for range 10 {
		lim.Wait()
	}
	test.ExpectEquality(t, time.Since(start) >= 90*time.Millisecond, true)
	test.ExpectEquality(t, lim.HasWaited(), false)
}

func TestUnlimited(t *testing.T) {
	lim := limiter.NewFPSLimiter(0)
	test.ExpectEquality(t, lim.Active(), false)

	start := time.Now()
	for range 1000 {
		lim.NewFrame(&vic.Frame{})
	}
	test.ExpectEquality(t, time.Since(start) < time.Second, true)
	test.ExpectEquality(t, lim.HasWaited(), true)
}
