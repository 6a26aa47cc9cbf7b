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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new FpsLimiter can be created with:
//
//	fps := limiter.NewFPSLimiter(50.125)
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		fps.Wait()
//		renderImage()
//	}
//
// The FpsLimiter also implements the vic.FrameSink interface. Added to the
// VIC it paces the emulation to the refresh rate of the television.
package limiter

import (
	"sync"
	"time"

	"github.com/jetsetilly/gopher64/hardware/vic"
)

// if the limiter falls further behind than this then it gives up trying to
// catch up
const maxLag = 250 * time.Millisecond

// FpsLimiter will trigger every frames per second.
type FpsLimiter struct {
	crit            sync.Mutex
	secondsPerFrame time.Duration
	active          bool

	// the time of the next trigger
	next time.Time
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter type.
func NewFPSLimiter(framesPerSecond float64) *FpsLimiter {
	lim := &FpsLimiter{
		active: true,
	}
	lim.SetLimit(framesPerSecond)
	return lim
}

// SetLimit changes the limit at which the FpsLimiter waits. A value of zero
// or less turns the limiter off.
func (lim *FpsLimiter) SetLimit(framesPerSecond float64) {
	lim.crit.Lock()
	defer lim.crit.Unlock()

	if framesPerSecond <= 0 {
		lim.active = false
		return
	}
	lim.active = true
	lim.secondsPerFrame = time.Duration(float64(time.Second) / framesPerSecond)
	lim.next = time.Time{}
}

// Active returns false if the limiter has been turned off.
func (lim *FpsLimiter) Active() bool {
	lim.crit.Lock()
	defer lim.crit.Unlock()
	return lim.active
}

// Wait will block until trigger.
func (lim *FpsLimiter) Wait() {
	lim.crit.Lock()
	if !lim.active {
		lim.crit.Unlock()
		return
	}

	now := time.Now()
	if lim.next.IsZero() || now.Sub(lim.next) > maxLag {
		lim.next = now
	}
	lim.next = lim.next.Add(lim.secondsPerFrame)
	d := lim.next.Sub(now)
	lim.crit.Unlock()

	if d > 0 {
		time.Sleep(d)
	}
}

// HasWaited will return true if a call to Wait() would not block.
func (lim *FpsLimiter) HasWaited() bool {
	lim.crit.Lock()
	defer lim.crit.Unlock()
	return !lim.active || !time.Now().Before(lim.next.Add(lim.secondsPerFrame))
}

// NewFrame implements the vic.FrameSink interface.
func (lim *FpsLimiter) NewFrame(_ *vic.Frame) {
	lim.Wait()
}
