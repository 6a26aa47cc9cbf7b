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

package hardware

// While the continueCheck() function is only called between batches of
// events it can still be expensive to do a full check every time.
//
// The PerformanceBrake is the number of events in each batch. A
// continueCheck() implementation can also use it to filter out expensive
// code paths. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition {
//			return false, nil
//		}
//	}
//	return true, nil
const PerformanceBrake = 100

// Run sets the emulation running as quickly as possible. The continueCheck
// function returns false when the emulation should stop.
func (ens *Ensemble) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	for {
		if err := ens.Step(PerformanceBrake); err != nil {
			return err
		}

		ok, err := continueCheck()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// RunForFrameCount sets the emulation running for the specified number of
// frames. Useful for FPS and regression tests.
func (ens *Ensemble) RunForFrameCount(numFrames int, continueCheck func(frame int) (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func(frame int) (bool, error) { return true, nil }
	}

	vic := ens.c64.VIC
	frameNum := vic.Frame()
	targetFrame := frameNum + numFrames

	for frameNum < targetFrame {
		if err := ens.RunCycles(uint64(vic.Geometry().CyclesPerLine)); err != nil {
			return err
		}

		if vic.Frame() == frameNum {
			continue
		}
		frameNum = vic.Frame()

		ok, err := continueCheck(frameNum)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	return nil
}
