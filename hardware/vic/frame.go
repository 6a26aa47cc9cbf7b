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

// Frame is the text screen at the end of a frame.
type Frame struct {
	Number int

	// screen codes and colour nibbles of the 40x25 text screen
	Screen [1000]uint8
	Color  [1000]uint8

	Border     uint8
	Background uint8

	// the display is blanked (DEN bit of $D011 is clear)
	Blank bool
}

// FrameSink receives a frame at the end of every raster frame. The frame
// should not be retained after the call returns.
type FrameSink interface {
	NewFrame(f *Frame)
}

// FrameSinkFunc adapts a function to the FrameSink interface.
type FrameSinkFunc func(f *Frame)

// NewFrame implements the FrameSink interface.
func (fn FrameSinkFunc) NewFrame(f *Frame) {
	fn(f)
}

// SinkID identifies a sink added with AddFrameSink().
type SinkID int

type frameSink struct {
	id   SinkID
	sink FrameSink
}
