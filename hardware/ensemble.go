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

import (
	"fmt"

	"github.com/jetsetilly/gopher64/environment"
	"github.com/jetsetilly/gopher64/hardware/bridge"
	"github.com/jetsetilly/gopher64/hardware/cable"
	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/drive"
	"github.com/jetsetilly/gopher64/hardware/input"
	"github.com/jetsetilly/gopher64/hardware/memory"
	"github.com/jetsetilly/gopher64/hardware/program"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
	"github.com/jetsetilly/gopher64/logger"
	"github.com/jetsetilly/gopher64/notifications"
)

// Ensemble is the C64 together with the 1541 attached to its serial bus. It
// is the root of the emulation.
//
// Methods that are documented as safe to call from any goroutine take effect
// at the start of the next call to Step() or RunCycles(). Every other method
// must be called by the goroutine running the emulation.
type Ensemble struct {
	env *environment.Environment

	c64    *C64
	drive  *drive.Drive
	bridge *bridge.Bridge

	// nil if the parallel cable is not connected
	cable *cable.Parallel

	auto autostart

	// error from the most recent operation performed by an event scheduled
	// with ScheduleThreadSafe()
	lastErr error
}

// NewEnsemble creates the C64, then the drive, then the bridge between
// them. The clock rate and the drive device number are taken from the
// preferences in the environment.
//
// Nothing runs until the ROMs have been supplied with SetROMs().
func NewEnsemble(env *environment.Environment) (*Ensemble, error) {
	rate := env.Prefs.ClockRate()

	ens := &Ensemble{
		env: env,
		c64: NewC64(env, rate),
	}
	ens.auto.ens = ens

	var err error

	ens.drive, err = drive.NewDrive(env, env.Prefs.Drive.Device.Get().(int), ens.c64.IEC)
	if err != nil {
		return nil, fmt.Errorf("hardware: %w", err)
	}

	ens.bridge, err = bridge.New(env, ens.c64.Sched, ens.drive.Scheduler(), rate, clocks.Drive)
	if err != nil {
		return nil, ConfigError{Setting: "clock", Err: err}
	}
	ens.c64.sync = ens.bridge

	return ens, nil
}

func (ens *Ensemble) String() string {
	return fmt.Sprintf("%s\n%s\n%s", ens.c64.Sched, ens.drive, ens.bridge)
}

// C64 returns the computer part of the ensemble.
func (ens *Ensemble) C64() *C64 {
	return ens.c64
}

// Drive returns the disk drive.
func (ens *Ensemble) Drive() *drive.Drive {
	return ens.drive
}

// Bridge returns the bridge between the clock domains of the C64 and the
// drive.
func (ens *Ensemble) Bridge() *bridge.Bridge {
	return ens.bridge
}

// SetROMs loads the system ROMs and the drive ROM, and then resets the
// ensemble. Any argument can be nil in which case the previous contents of
// that ROM are kept. The drive is only powered if there is a drive ROM and
// the drive is enabled in the preferences.
func (ens *Ensemble) SetROMs(basic, kernal, chargen, driveROM []uint8) error {
	if err := ens.c64.PLA.LoadROMs(basic, kernal, chargen); err != nil {
		return ConfigError{Setting: "rom", Err: err}
	}

	if driveROM != nil {
		if err := ens.drive.SetROM(driveROM); err != nil {
			return ConfigError{Setting: "drive rom", Err: err}
		}
	}

	if ens.env.Prefs.Drive.Enabled.Get().(bool) && driveROM != nil {
		if err := ens.drive.PowerOn(true); err != nil {
			return ConfigError{Setting: "drive", Err: err}
		}
		ens.bridge.Enable()
		if ens.env.Prefs.Drive.ParallelCable.Get().(bool) {
			ens.connectCable(true)
		}
	}

	ens.Reset()
	return nil
}

// Reset the ensemble. The C64 is reset first and then everything that
// depends on the signals of the C64 at power on: the serial bus, the
// datasette, the drive, the parallel cable and the bridge.
//
// A program given to LoadProgram() is started after the autostart delay.
func (ens *Ensemble) Reset() {
	ens.c64.Reset()
	ens.c64.IEC.Reset()
	ens.c64.Tape.Reset()
	ens.drive.Reset()
	if ens.cable != nil {
		ens.cable.Reset()
	}
	ens.bridge.Reset()
	ens.auto.schedule()
	logger.Log(ens.env, "hardware", "reset")
}

// Step fires the next n events of the C64 scheduler. Input injected since
// the last call is applied first.
func (ens *Ensemble) Step(n int) error {
	if err := ens.c64.Input.Commit(); err != nil {
		return err
	}
	ens.c64.Sched.Advance(n)
	return nil
}

// RunCycles runs the C64 for the number of cycles. The drive is kept in step
// by the bridge.
func (ens *Ensemble) RunCycles(n uint64) error {
	if err := ens.c64.Input.Commit(); err != nil {
		return err
	}

	sched := ens.c64.Sched
	target := sched.Cycles() + n
	for {
		cycle, _, ok := sched.NextKey()
		if !ok || cycle >= target {
			break
		}
		sched.Advance(1)
	}
	sched.RunUntil(target, scheduler.PHI1)
	return nil
}

// SetClockRate changes the clock rate of the C64. The video standard and the
// ratio used by the bridge are changed at the same time. If the rate cannot
// be used the ensemble is not changed.
func (ens *Ensemble) SetClockRate(rate clocks.Rate) error {
	if !rate.Valid() {
		return ConfigError{Setting: "clock", Err: fmt.Errorf("invalid clock rate (%s)", rate)}
	}
	if err := ens.bridge.SetClockRate(rate); err != nil {
		return ConfigError{Setting: "clock", Err: err}
	}
	ens.c64.SetClockRate(rate)
	logger.Logf(ens.env, "hardware", "clock rate is %s", rate)
	return nil
}

// LastError returns the error from the most recent operation requested from
// another goroutine. The error is cleared.
func (ens *Ensemble) LastError() error {
	err := ens.lastErr
	ens.lastErr = nil
	return err
}

func (ens *Ensemble) setError(err error) {
	if err == nil {
		return
	}
	ens.lastErr = err
	logger.Log(ens.env, "hardware", err)
}

// EnableDrive switches the drive on or off. Safe to call from any goroutine.
func (ens *Ensemble) EnableDrive(on bool) {
	ens.c64.Sched.ScheduleThreadSafe(scheduler.EventFunc("enable drive", func() {
		if on {
			if err := ens.drive.PowerOn(true); err != nil {
				ens.setError(fmt.Errorf("hardware: %w", err))
				return
			}
			ens.bridge.Reset()
			ens.bridge.Enable()
			return
		}
		ens.bridge.Disable()
		ens.setError(ens.drive.PowerOn(false))
	}))
}

// ConnectParallelCable connects or disconnects the parallel cable between the
// user port and the drive. Safe to call from any goroutine.
func (ens *Ensemble) ConnectParallelCable(connect bool) {
	ens.c64.Sched.ScheduleThreadSafe(scheduler.EventFunc("parallel cable", func() {
		ens.connectCable(connect)
	}))
}

func (ens *Ensemble) connectCable(connect bool) {
	if connect == (ens.cable != nil) {
		return
	}

	if connect {
		ens.cable = cable.NewParallel(ens.drive.Device(), ens.bridge, ens.c64.CIA2, ens.drive.VIA1())
		ens.c64.cable = ens.cable
		ens.drive.SetCable(ens.cable)
		logger.Logf(ens.env, "hardware", "parallel cable connected to device %d", ens.drive.Device())
		return
	}

	ens.cable = nil
	ens.c64.cable = cable.Disconnected{}
	ens.drive.SetCable(nil)
	ens.c64.CIA2.SetFlag(false)
	logger.Log(ens.env, "hardware", "parallel cable disconnected")
}

// AttachCartridge plugs the cartridge into the expansion port and resets the
// ensemble. Safe to call from any goroutine.
func (ens *Ensemble) AttachCartridge(cart memory.Cartridge) {
	ens.c64.Sched.ScheduleThreadSafe(scheduler.EventFunc("attach cartridge", func() {
		ens.c64.PLA.SetCartridge(cart)
		ens.Reset()
		if err := ens.env.Notify(notifications.NotifyCartridgeChanged); err != nil {
			logger.Log(ens.env, "hardware", err)
		}
	}))
}

// DetachCartridge removes the cartridge from the expansion port and resets
// the ensemble. Safe to call from any goroutine.
func (ens *Ensemble) DetachCartridge() {
	ens.AttachCartridge(nil)
}

// InsertDisk puts a disk in the drive. The drive is brought up to date with
// the C64 first.
func (ens *Ensemble) InsertDisk(img drive.DiskImage) error {
	ens.bridge.Synchronize(bridge.Write)
	return ens.drive.InsertDisk(img)
}

// EjectDisk removes the disk from the drive. Changes to the disk are written
// back to the image if the image supports it.
func (ens *Ensemble) EjectDisk() error {
	ens.bridge.Synchronize(bridge.Write)
	return ens.drive.EjectDisk()
}

// InsertTape puts a tape in the datasette. Each value is the length of a
// pulse in C64 cycles.
func (ens *Ensemble) InsertTape(pulses []uint32) {
	ens.c64.Tape.Insert(pulses)
}

// KeyPress presses a key. Safe to call from any goroutine.
func (ens *Ensemble) KeyPress(k input.Key) error {
	return ens.c64.Input.Press(k)
}

// KeyRelease releases a key. Safe to call from any goroutine.
func (ens *Ensemble) KeyRelease(k input.Key) error {
	return ens.c64.Input.Release(k)
}

// Restore presses the RESTORE key. Safe to call from any goroutine.
func (ens *Ensemble) Restore() error {
	return ens.c64.Input.Restore()
}

// Joystick changes the state of the joystick in the control port. Safe to
// call from any goroutine.
func (ens *Ensemble) Joystick(port int, state input.Joystick) error {
	return ens.c64.Input.SetJoystick(port, state)
}

// LoadProgram sets the program that will be started automatically after the
// next call to Reset(). A previously loaded program that has not yet been
// started is replaced.
func (ens *Ensemble) LoadProgram(p program.Program) error {
	if err := p.Validate(); err != nil {
		return err
	}
	ens.auto.cancel()
	ens.auto.prog = &p
	logger.Logf(ens.env, "hardware", "loaded %s", p)
	return nil
}

// AddAutostartHook registers a hook that is told when a loaded program is
// started.
func (ens *Ensemble) AddAutostartHook(hook AutostartHook) {
	ens.auto.hooks = append(ens.auto.hooks, hook)
}

// Shutdown stops the CPUs of the C64 and the drive. Changes to the disk in
// the drive are written back to the image.
func (ens *Ensemble) Shutdown() {
	ens.c64.Driver.Stop()
	if err := ens.drive.EjectDisk(); err != nil {
		logger.Log(ens.env, "hardware", err)
	}
	ens.drive.Shutdown()
}
