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

package hardware_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/jetsetilly/gopher64/environment"
	"github.com/jetsetilly/gopher64/hardware"
	"github.com/jetsetilly/gopher64/hardware/bridge"
	"github.com/jetsetilly/gopher64/hardware/cia"
	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/drive"
	"github.com/jetsetilly/gopher64/hardware/input"
	"github.com/jetsetilly/gopher64/hardware/memory"
	"github.com/jetsetilly/gopher64/hardware/preferences"
	"github.com/jetsetilly/gopher64/hardware/program"
	"github.com/jetsetilly/gopher64/hardware/sid"
	"github.com/jetsetilly/gopher64/test"
)

const autostartDelay = 1000

// the KERNAL selects the standard memory configuration and loops at $E009
func kernalROM() []uint8 {
	rom := make([]uint8, memory.KernalSize)
	copy(rom, []uint8{
		0x78,             // SEI
		0xa9, 0x2f,       // LDA #$2F
		0x85, 0x00,       // STA $00
		0xa9, 0x37,       // LDA #$37
		0x85, 0x01,       // STA $01
		0x4c, 0x09, 0xe0, // JMP $E009
	})
	for _, v := range []int{0x1ffa, 0x1ffe} {
		rom[v], rom[v+1] = 0x09, 0xe0
	}
	rom[0x1ffc], rom[0x1ffd] = 0x00, 0xe0
	return rom
}

// the RUN entry of BASIC loops on itself
func basicROM() []uint8 {
	rom := make([]uint8, memory.BasicSize)
	rom[0x0000] = 0x94
	copy(rom[0x07ae:], []uint8{0x4c, 0xae, 0xa7})
	return rom
}

func driveROM() []uint8 {
	rom := make([]uint8, drive.ROMSize)
	copy(rom, []uint8{0x4c, 0x00, 0xc0})
	rom[0x3ffc], rom[0x3ffd] = 0x00, 0xc0
	return rom
}

func newEnsemble(t *testing.T) *hardware.Ensemble {
	t.Helper()
	return newEnsembleWithDelay(t, autostartDelay)
}

func newEnsembleWithDelay(t *testing.T, delay int) *hardware.Ensemble {
	t.Helper()

	prefs, err := preferences.NewVolatilePreferences()
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(nil, prefs)
	test.DemandSuccess(t, err)
	env.Normalise()
	test.DemandSuccess(t, prefs.AutostartDelay.Set(delay))

	ens, err := hardware.NewEnsemble(env)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, ens.SetROMs(basicROM(), kernalROM(), make([]uint8, memory.ChargenSize), driveROM()))
	t.Cleanup(ens.Shutdown)

	return ens
}

type started struct {
	pc    uint16
	cycle uint64
	count int
}

func (s *started) Autostart(pc uint16, cycle uint64) {
	s.pc = pc
	s.cycle = cycle
	s.count++
}

func TestAutostartMachineCode(t *testing.T) {
	ens := newEnsemble(t)
	var s started
	ens.AddAutostartHook(&s)

	p := program.Program{Name: "loop", LoadAddress: 0xc000, Data: []uint8{0x4c, 0x00, 0xc0}}
	test.DemandSuccess(t, ens.LoadProgram(p))
	ens.Reset()

	test.DemandSuccess(t, ens.RunCycles(autostartDelay-1))
	test.ExpectEquality(t, s.count, 0)

	test.DemandSuccess(t, ens.RunCycles(autostartDelay))
	test.ExpectEquality(t, s.count, 1)
	test.ExpectEquality(t, s.pc, uint16(0xc000))
	test.ExpectEquality(t, s.cycle, uint64(autostartDelay))

	c64 := ens.C64()
	pc := c64.CPU.PC
	test.ExpectEquality(t, pc >= 0xc000 && pc <= 0xc003, true)

	mem := c64.RAM.Array()
	test.ExpectEquality(t, slices.Equal(mem[0xc000:0xc003], p.Data), true)
	test.ExpectEquality(t, mem[0x2d], uint8(0x03))
	test.ExpectEquality(t, mem[0x2e], uint8(0xc0))

	// the program is only started once
	ens.Reset()
	test.DemandSuccess(t, ens.RunCycles(autostartDelay*2))
	test.ExpectEquality(t, s.count, 1)
}

func TestAutostartWithoutDelay(t *testing.T) {
	ens := newEnsembleWithDelay(t, 0)
	var s started
	ens.AddAutostartHook(&s)

	p := program.Program{Name: "loop", LoadAddress: 0xc000, Data: []uint8{0x4c, 0x00, 0xc0}}
	test.DemandSuccess(t, ens.LoadProgram(p))
	ens.Reset()

	// the program starts before the CPU has run the reset sequence. the
	// reset vector must not be followed afterwards
	test.DemandSuccess(t, ens.RunCycles(100))
	test.ExpectEquality(t, s.count, 1)
	test.ExpectEquality(t, s.pc, uint16(0xc000))

	pc := ens.C64().CPU.PC
	test.ExpectEquality(t, pc >= 0xc000 && pc <= 0xc003, true)
}

func TestAutostartBasic(t *testing.T) {
	ens := newEnsemble(t)
	var s started
	ens.AddAutostartHook(&s)

	// 10 PRINT
	p := program.Program{
		Name:        "basic",
		LoadAddress: program.BasicStart,
		BasicRun:    true,
		Data:        []uint8{0x07, 0x08, 0x0a, 0x00, 0x99, 0x00, 0x00, 0x00},
	}
	test.DemandSuccess(t, ens.LoadProgram(p))
	ens.Reset()
	test.DemandSuccess(t, ens.RunCycles(autostartDelay*2))

	test.ExpectEquality(t, s.count, 1)
	test.ExpectEquality(t, s.pc, hardware.BasicRunEntry)
	test.ExpectEquality(t, s.cycle, uint64(autostartDelay))

	mem := ens.C64().RAM.Array()
	test.ExpectEquality(t, mem[0x2b], uint8(0x01))
	test.ExpectEquality(t, mem[0x2c], uint8(0x08))
	test.ExpectEquality(t, mem[0x7a], uint8(0x00))
	test.ExpectEquality(t, mem[0x7b], uint8(0x08))
	test.ExpectEquality(t, mem[0x2d], uint8(0x09))
	test.ExpectEquality(t, mem[0xc6], uint8(0x00))
}

func TestLoadProgramValidation(t *testing.T) {
	ens := newEnsemble(t)
	err := ens.LoadProgram(program.Program{Name: "empty", LoadAddress: 0xc000})
	test.ExpectEquality(t, errors.Is(err, program.ErrEmpty), true)
}

func TestBankSwitch(t *testing.T) {
	ens := newEnsemble(t)
	test.DemandSuccess(t, ens.RunCycles(100))

	pla := ens.C64().PLA
	test.ExpectEquality(t, pla.Read(0xa000), uint8(0x94))

	// writes to ROM go to the RAM beneath
	pla.Write(0xa000, 0x55)
	test.ExpectEquality(t, pla.Read(0xa000), uint8(0x94))

	pla.Write(0x0001, 0x36)
	test.ExpectEquality(t, pla.Read(0xa000), uint8(0x55))

	pla.Write(0x0001, 0x37)
	test.ExpectEquality(t, pla.Read(0xa000), uint8(0x94))
}

func TestClockRate(t *testing.T) {
	ens := newEnsemble(t)
	c64 := ens.C64()
	test.ExpectEquality(t, c64.VIC.Model(), "6569")

	err := ens.SetClockRate(clocks.Rate{})
	var cfg hardware.ConfigError
	test.ExpectEquality(t, errors.As(err, &cfg), true)
	test.ExpectEquality(t, cfg.Setting, "clock")
	test.ExpectEquality(t, c64.Sched.CyclesPerSecond(), clocks.PAL)

	test.DemandSuccess(t, ens.SetClockRate(clocks.NTSC))
	test.ExpectEquality(t, c64.VIC.Model(), "6567")
	test.ExpectEquality(t, c64.VIC.Geometry().Lines, 263)
	test.ExpectEquality(t, c64.Sched.CyclesPerSecond(), clocks.NTSC)

	// the drive is kept in step at the new rate
	test.DemandSuccess(t, ens.RunCycles(10000))
	b := ens.Bridge()
	b.Synchronize(bridge.Read)
	test.ExpectEquality(t, b.Secondary(), b.Target())
}

func TestEnableDrive(t *testing.T) {
	ens := newEnsemble(t)
	test.ExpectEquality(t, ens.Drive().Powered(), true)
	test.ExpectEquality(t, ens.Bridge().Enabled(), true)

	ens.EnableDrive(false)
	test.DemandSuccess(t, ens.RunCycles(2))
	test.ExpectEquality(t, ens.Drive().Powered(), false)
	test.ExpectEquality(t, ens.Bridge().Enabled(), false)
	test.ExpectEquality(t, len(ens.C64().IEC.Connected()), 0)

	// the time of the drive is frozen while it is switched off
	frozen := ens.Drive().Scheduler().Cycles()
	test.DemandSuccess(t, ens.RunCycles(1000))
	test.ExpectEquality(t, ens.Drive().Scheduler().Cycles(), frozen)

	ens.EnableDrive(true)
	test.DemandSuccess(t, ens.RunCycles(2))
	test.ExpectSuccess(t, ens.LastError())
	test.ExpectEquality(t, ens.Drive().Powered(), true)
	test.ExpectEquality(t, ens.Bridge().Enabled(), true)
	test.ExpectEquality(t, slices.Equal(ens.C64().IEC.Connected(), []int{8}), true)

	test.DemandSuccess(t, ens.RunCycles(1000))
	test.ExpectInequality(t, ens.Drive().Scheduler().Cycles(), uint64(0))
}

func TestKeyboard(t *testing.T) {
	ens := newEnsemble(t)
	cia1 := ens.C64().CIA1

	test.DemandSuccess(t, ens.KeyPress(input.KeySpace))
	test.DemandSuccess(t, ens.RunCycles(1))

	// select the column of the space key and read the rows
	cia1.Write(cia.DDRA, 0xff)
	cia1.Write(cia.PRA, ^uint8(1<<input.KeySpace.Column()))
	test.ExpectEquality(t, cia1.Read(cia.PRB), ^uint8(1<<input.KeySpace.Row()))

	// other columns are not affected
	cia1.Write(cia.PRA, ^uint8(0x01))
	test.ExpectEquality(t, cia1.Read(cia.PRB), uint8(0xff))

	test.DemandSuccess(t, ens.KeyRelease(input.KeySpace))
	test.DemandSuccess(t, ens.RunCycles(1))
	cia1.Write(cia.PRA, ^uint8(1<<input.KeySpace.Column()))
	test.ExpectEquality(t, cia1.Read(cia.PRB), uint8(0xff))
}

func TestJoystick(t *testing.T) {
	ens := newEnsemble(t)
	cia1 := ens.C64().CIA1

	test.DemandSuccess(t, ens.Joystick(input.Port2, input.JoyUp|input.JoyFire))
	test.DemandSuccess(t, ens.Joystick(input.Port1, input.JoyLeft))
	test.DemandSuccess(t, ens.RunCycles(1))

	test.ExpectEquality(t, cia1.Read(cia.PRA), uint8(0xee))
	test.ExpectEquality(t, cia1.Read(cia.PRB), uint8(0xfb))
}

func TestIECWiring(t *testing.T) {
	ens := newEnsemble(t)
	c64 := ens.C64()
	drv := ens.Drive()
	test.DemandSuccess(t, ens.RunCycles(100))

	// the drive interrupts on the rising edge of CA1
	drv.Write(0x180c, 0x01)

	// bits 0 and 1 of CIA2 port A select the VIC bank. the lines are
	// inverted
	c64.CIA2.Write(cia.DDRA, 0x3f)
	test.ExpectEquality(t, c64.PLA.VICBank(), uint16(0xc000))
	test.ExpectEquality(t, c64.IEC.ATN(), false)
	test.ExpectEquality(t, c64.CIA2.Read(cia.PRA)&0xc0, uint8(0xc0))

	c64.CIA2.Write(cia.PRA, 0x0b)
	test.ExpectEquality(t, c64.PLA.VICBank(), uint16(0x0000))
	test.ExpectEquality(t, c64.IEC.ATN(), true)
	test.ExpectEquality(t, drv.Read(0x180d)&0x02, uint8(0x02))

	// the drive acknowledges ATN on the DATA line
	test.ExpectEquality(t, c64.CIA2.Read(cia.PRA)&0x80, uint8(0x00))
}

func TestParallelCable(t *testing.T) {
	ens := newEnsemble(t)
	c64 := ens.C64()
	drv := ens.Drive()

	ens.ConnectParallelCable(true)
	test.DemandSuccess(t, ens.RunCycles(2))

	// C64 to drive. writing to port B strobes CB1 of the drive
	c64.CIA2.Write(cia.DDRB, 0xff)
	c64.CIA2.Write(cia.PRB, 0x5a)
	test.ExpectEquality(t, drv.Read(0x1801), uint8(0x5a))
	test.ExpectEquality(t, drv.Read(0x180d)&0x10, uint8(0x10))

	// drive to C64. CA2 low is seen by the FLAG input of CIA2
	c64.CIA2.Write(cia.DDRB, 0x00)
	drv.Write(0x1803, 0xff)
	drv.Write(0x1801, 0xa5)
	test.ExpectEquality(t, c64.CIA2.Read(cia.PRB), uint8(0xa5))
	drv.Write(0x180c, 0x0c)
	test.ExpectEquality(t, c64.CIA2.Read(cia.ICR)&cia.InterruptFlag, cia.InterruptFlag)

	ens.ConnectParallelCable(false)
	test.DemandSuccess(t, ens.RunCycles(2))
	test.ExpectEquality(t, c64.CIA2.Read(cia.PRB), uint8(0xff))
}

// a program that changes the registers of the SID and CIA1 and stores the
// interrupt flags of CIA1
var busyProgram = []uint8{
	0xa9, 0x0f, // LDA #$0F
	0x8d, 0x18, 0xd4, // STA $D418
	0xa9, 0x10, // LDA #$10
	0x8d, 0x04, 0xdc, // STA $DC04
	0xa9, 0x00, // LDA #$00
	0x8d, 0x05, 0xdc, // STA $DC05
	0xa9, 0x01, // LDA #$01
	0x8d, 0x0e, 0xdc, // STA $DC0E
	0xee, 0x20, 0xd0, // INC $D020
	0xad, 0x0d, 0xdc, // LDA $DC0D
	0x8d, 0x00, 0x04, // STA $0400
	0xee, 0x01, 0x04, // INC $0401
	0x4c, 0x14, 0xc0, // JMP $C014
}

type trace struct {
	samples []float32
	ram     []uint8
	sid     [sid.NumRegisters]uint8
	cia1    string
	cia2    string
	vic     string
	pc      uint16
	drive   uint64
}

func runTrace(t *testing.T) trace {
	ens := newEnsemble(t)
	c64 := ens.C64()

	var tr trace
	c64.SID.AddSampleSink(sampleRecorder(func(v float32) {
		tr.samples = append(tr.samples, v)
	}))

	test.DemandSuccess(t, ens.LoadProgram(program.Program{Name: "busy", LoadAddress: 0xc000, Data: busyProgram}))
	ens.Reset()
	test.DemandSuccess(t, ens.RunCycles(autostartDelay+5000))

	test.DemandSuccess(t, ens.KeyPress(input.KeyReturn))
	test.DemandSuccess(t, ens.RunCycles(20000))

	tr.ram = slices.Clone(c64.RAM.Array())
	tr.sid = c64.SID.Registers()
	tr.cia1 = c64.CIA1.String()
	tr.cia2 = c64.CIA2.String()
	tr.vic = c64.VIC.String()
	tr.pc = c64.CPU.PC
	tr.drive = ens.Drive().Scheduler().Cycles()
	return tr
}

type sampleRecorder func(v float32)

func (fn sampleRecorder) Sample(v float32) {
	fn(v)
}

func TestDeterminism(t *testing.T) {
	a := runTrace(t)
	b := runTrace(t)

	test.ExpectInequality(t, len(a.samples), 0)
	test.ExpectEquality(t, slices.Equal(a.samples, b.samples), true)
	test.ExpectEquality(t, slices.Equal(a.ram, b.ram), true)
	test.ExpectEquality(t, a.sid, b.sid)
	test.ExpectEquality(t, a.cia1, b.cia1)
	test.ExpectEquality(t, a.cia2, b.cia2)
	test.ExpectEquality(t, a.vic, b.vic)
	test.ExpectEquality(t, a.pc, b.pc)
	test.ExpectEquality(t, a.drive, b.drive)

	// the program ran
	test.ExpectEquality(t, a.ram[0xc000], uint8(0xa9))
	test.ExpectEquality(t, a.sid[0x18], uint8(0x0f))
}
