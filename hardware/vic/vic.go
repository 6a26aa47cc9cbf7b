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

package vic

import (
	"fmt"
	"slices"

	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
)

// Memory is the VIC's view of memory. Addresses are 14 bits wide.
type Memory interface {
	VICRead(address uint16) uint8
	VICColor(address uint16) uint8
}

// InterruptSink receives the state of the chip's interrupt output.
type InterruptSink interface {
	Interrupt(state bool)
}

// Bits in the interrupt latch ($D019) and mask ($D01A).
const (
	InterruptRaster          uint8 = 0x01
	InterruptSpriteBG        uint8 = 0x02
	InterruptSpriteSprite    uint8 = 0x04
	InterruptLightpen        uint8 = 0x08
	interruptRequest         uint8 = 0x80
	interruptSources         uint8 = 0x0f
	numRegisters                   = 0x2f
	registerMask                   = 0x3f
)

// bits that are not connected and always read as 1
var unusedBits = [numRegisters]uint8{
	0x16: 0xc0, 0x18: 0x01, 0x19: 0x70, 0x1a: 0xf0,
	0x20: 0xf0, 0x21: 0xf0, 0x22: 0xf0, 0x23: 0xf0, 0x24: 0xf0, 0x25: 0xf0, 0x26: 0xf0,
	0x27: 0xf0, 0x28: 0xf0, 0x29: 0xf0, 0x2a: 0xf0, 0x2b: 0xf0, 0x2c: 0xf0, 0x2d: 0xf0, 0x2e: 0xf0,
}

// VIC is a single video chip.
type VIC struct {
	label string
	model string
	sched *scheduler.Scheduler
	mem   Memory
	sink  InterruptSink

	geometry clocks.Geometry

	regs [numRegisters]uint8

	// raster position. the line started on lineStart
	line      int
	lineStart uint64
	compare   int

	irr      uint8
	imr      uint8
	asserted bool

	lightpen bool
	lpx      uint8
	lpy      uint8

	frameNum int
	frame    Frame
	sinks    []frameSink
	nextID   SinkID

	handle scheduler.Handle
}

// NewPAL creates a MOS6569.
func NewPAL(label string, sched *scheduler.Scheduler, mem Memory, sink InterruptSink) *VIC {
	return newVIC(label, "6569", clocks.PALGeometry, sched, mem, sink)
}

// NewNTSC creates a MOS6567.
func NewNTSC(label string, sched *scheduler.Scheduler, mem Memory, sink InterruptSink) *VIC {
	return newVIC(label, "6567", clocks.NTSCGeometry, sched, mem, sink)
}

func newVIC(label string, model string, geometry clocks.Geometry, sched *scheduler.Scheduler, mem Memory, sink InterruptSink) *VIC {
	return &VIC{
		label:    label,
		model:    model,
		geometry: geometry,
		sched:    sched,
		mem:      mem,
		sink:     sink,
	}
}

// Label implements the scheduler.Event interface.
func (vic *VIC) Label() string {
	return vic.label
}

// Model returns the part number of the chip being emulated.
func (vic *VIC) Model() string {
	return vic.model
}

func (vic *VIC) String() string {
	return fmt.Sprintf("%s (%s): line=%d cycle=%d IRR=%02x IMR=%02x", vic.label, vic.model, vic.line, vic.Cycle(), vic.irr, vic.imr)
}

// Geometry returns the raster geometry of the chip.
func (vic *VIC) Geometry() clocks.Geometry {
	return vic.geometry
}

// SetGeometry changes the raster geometry. The raster position is restarted
// at the top of the frame.
func (vic *VIC) SetGeometry(geometry clocks.Geometry) {
	vic.geometry = geometry
	if geometry == clocks.NTSCGeometry {
		vic.model = "6567"
	} else {
		vic.model = "6569"
	}
	vic.sched.Cancel(vic.handle)
	vic.line = 0
	vic.lineStart = vic.sched.Cycles()
	vic.handle = vic.sched.Schedule(vic, uint64(vic.geometry.CyclesPerLine), scheduler.PHI1)
}

// AddFrameSink registers a sink that will be given each completed frame.
// The returned SinkID is used to remove the sink.
func (vic *VIC) AddFrameSink(sink FrameSink) SinkID {
	vic.nextID++
	vic.sinks = append(vic.sinks, frameSink{id: vic.nextID, sink: sink})
	return vic.nextID
}

// RemoveFrameSink removes a previously added sink. Removing a sink that has
// already been removed does nothing.
func (vic *VIC) RemoveFrameSink(id SinkID) {
	vic.sinks = slices.DeleteFunc(vic.sinks, func(s frameSink) bool {
		return s.id == id
	})
}

// Reset the chip. The first line starts immediately.
func (vic *VIC) Reset() {
	vic.sched.Cancel(vic.handle)
	vic.regs = [numRegisters]uint8{}
	vic.line = 0
	vic.compare = 0
	vic.irr = 0
	vic.imr = 0
	vic.lightpen = false
	vic.lpx = 0
	vic.lpy = 0
	vic.frameNum = 0
	if vic.asserted {
		vic.asserted = false
		vic.sink.Interrupt(false)
	}
	vic.lineStart = vic.sched.Cycles()
	vic.handle = vic.sched.Schedule(vic, uint64(vic.geometry.CyclesPerLine), scheduler.PHI1)
}

// Line returns the current raster line.
func (vic *VIC) Line() int {
	return vic.line
}

// Cycle returns the cycle within the current raster line.
func (vic *VIC) Cycle() int {
	return int(vic.sched.Cycles() - vic.lineStart)
}

// Frame returns the number of frames completed since reset.
func (vic *VIC) Frame() int {
	return vic.frameNum
}

// Fire implements the scheduler.Event interface. It is called at the start
// of every raster line.
func (vic *VIC) Fire() {
	vic.lineStart = vic.sched.Cycles()
	vic.handle = vic.sched.Schedule(vic, uint64(vic.geometry.CyclesPerLine), scheduler.PHI1)

	vic.line++
	if vic.line >= vic.geometry.Lines {
		vic.line = 0
		vic.endFrame()
	}

	if vic.line == vic.compare {
		vic.trigger(InterruptRaster)
	}
}

func (vic *VIC) endFrame() {
	vic.frameNum++
	vic.lightpen = false

	if len(vic.sinks) == 0 {
		return
	}

	vic.frame.Number = vic.frameNum
	vic.frame.Border = vic.regs[0x20] & 0x0f
	vic.frame.Background = vic.regs[0x21] & 0x0f
	vic.frame.Blank = vic.regs[0x11]&0x10 == 0

	screen := uint16(vic.regs[0x18]&0xf0) << 6
	for i := range vic.frame.Screen {
		vic.frame.Screen[i] = vic.mem.VICRead(screen + uint16(i))
		vic.frame.Color[i] = vic.mem.VICColor(uint16(i))
	}

	for _, s := range vic.sinks {
		s.sink.NewFrame(&vic.frame)
	}
}

func (vic *VIC) trigger(bits uint8) {
	vic.irr |= bits
	vic.updateInterrupt()
}

func (vic *VIC) updateInterrupt() {
	irq := vic.irr&vic.imr&interruptSources != 0
	if irq != vic.asserted {
		vic.asserted = irq
		vic.sink.Interrupt(irq)
	}
}

// TriggerLightpen latches the current raster position into the lightpen
// registers. Only the first trigger in each frame is latched.
func (vic *VIC) TriggerLightpen() {
	if vic.lightpen {
		return
	}
	vic.lightpen = true

	// the X position has a resolution of two pixels
	vic.lpx = uint8(vic.Cycle() * 4)
	vic.lpy = uint8(vic.line)
	vic.trigger(InterruptLightpen)
}

// Read implements the memory.Bank interface. Registers are mirrored every 64
// bytes and addresses beyond the last register read as 0xff.
func (vic *VIC) Read(address uint16) uint8 {
	reg := int(address & registerMask)
	if reg >= numRegisters {
		return 0xff
	}

	switch reg {
	case 0x11:
		return vic.regs[0x11]&0x7f | uint8(vic.line>>8)<<7
	case 0x12:
		return uint8(vic.line)
	case 0x13:
		return vic.lpx
	case 0x14:
		return vic.lpy
	case 0x19:
		v := vic.irr | unusedBits[reg]
		if vic.asserted {
			v |= interruptRequest
		}
		return v
	case 0x1a:
		return vic.imr | unusedBits[reg]
	case 0x1e, 0x1f:
		// collision registers are cleared by reading
		v := vic.regs[reg]
		vic.regs[reg] = 0
		return v
	}

	return vic.regs[reg] | unusedBits[reg]
}

// Write implements the memory.Bank interface.
func (vic *VIC) Write(address uint16, data uint8) {
	reg := int(address & registerMask)
	if reg >= numRegisters {
		return
	}

	switch reg {
	case 0x11, 0x12:
		vic.regs[reg] = data
		old := vic.compare
		vic.compare = int(vic.regs[0x12]) | int(vic.regs[0x11]&0x80)<<1

		// a compare value that matches the current line triggers immediately
		if vic.compare != old && vic.compare == vic.line {
			vic.trigger(InterruptRaster)
		}
	case 0x13, 0x14:
		// lightpen registers are read only
	case 0x19:
		vic.irr &^= data & interruptSources
		vic.updateInterrupt()
	case 0x1a:
		vic.imr = data & interruptSources
		vic.updateInterrupt()
	case 0x1e, 0x1f:
		// collision registers are read only
	default:
		vic.regs[reg] = data
	}
}
