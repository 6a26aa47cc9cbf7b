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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopher64/hardware"
	"github.com/jetsetilly/gopher64/hardware/clocks"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// the emulation is allowed to settle for this long before measurement starts
const leadTime = 2 * time.Second

// Result of a performance check.
type Result struct {
	Frames   int
	Cycles   uint64
	Duration time.Duration

	// frames per second and the percentage of the speed of the real machine
	FPS      float64
	Accuracy float64
}

func (r Result) String() string {
	return fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1f%%", r.FPS, r.Frames, r.Duration.Seconds(), r.Accuracy)
}

// Check the performance of the emulator. The emulation will run for the
// specified duration and will create a cpu profile, memory profile or both
// as defined by the Profile argument.
//
// The ensemble should have been reset and is not reset by this function.
func Check(output io.Writer, profile Profile, ens *hardware.Ensemble, duration time.Duration) (Result, error) {
	c64 := ens.C64()

	var startFrame int
	var startCycle uint64

	runner := func() error {
		// signals false when the leadtime has elapsed and true when the
		// measurement period has finished
		timerChan := make(chan bool, 1)
		time.AfterFunc(leadTime, func() {
			timerChan <- false
			time.AfterFunc(duration, func() {
				timerChan <- true
			})
		})

		return ens.Run(func() (bool, error) {
			select {
			case v := <-timerChan:
				if v {
					return false, timedOut
				}
				startFrame = c64.VIC.Frame()
				startCycle = c64.Sched.Cycles()
			default:
			}
			return true, nil
		})
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return Result{}, fmt.Errorf("performance: %w", err)
	}

	res := Result{
		Frames:   c64.VIC.Frame() - startFrame,
		Cycles:   c64.Sched.Cycles() - startCycle,
		Duration: duration,
	}
	res.FPS, res.Accuracy = CalcFPS(c64.VIC.Geometry(), res.Frames, duration.Seconds())

	if output != nil {
		fmt.Fprintln(output, res)
	}

	return res, nil
}

// CalcFPS takes the number of frames and duration (in seconds) and returns
// the frames-per-second and the accuracy of that value as a percentage.
func CalcFPS(geometry clocks.Geometry, numFrames int, duration float64) (fps float64, accuracy float64) {
	if duration <= 0 {
		return 0, 0
	}
	fps = float64(numFrames) / duration
	accuracy = 100 * fps / geometry.RefreshRate
	return fps, accuracy
}
