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

package sdlwindow

import (
	"testing"

	"github.com/jetsetilly/gopher64/hardware/vic"
	"github.com/jetsetilly/gopher64/test"
)

func pixelAt(pixels []uint8, x, y int) [3]uint8 {
	p := (y*Width + x) * pixelDepth
	return [3]uint8{pixels[p], pixels[p+1], pixels[p+2]}
}

func TestRender(t *testing.T) {
	// character one is a single dot in the top left corner
	chargen := make([]uint8, 0x1000)
	chargen[8] = 0x80

	f := &vic.Frame{Border: 0x0e, Background: 0x06}
	f.Screen[0] = 0x01
	f.Color[0] = 0x01

	pixels := make([]uint8, Width*Height*pixelDepth)
	Render(pixels, f, chargen)

	test.ExpectEquality(t, pixelAt(pixels, 0, 0), palette[0x0e])
	test.ExpectEquality(t, pixelAt(pixels, BorderWidth, BorderHeight), palette[0x01])
	test.ExpectEquality(t, pixelAt(pixels, BorderWidth+1, BorderHeight), palette[0x06])
	test.ExpectEquality(t, pixelAt(pixels, Width-1, Height-1), palette[0x0e])
	test.ExpectEquality(t, pixels[3], uint8(0xff))

	// a blank screen is entirely the border colour
	f.Blank = true
	Render(pixels, f, chargen)
	test.ExpectEquality(t, pixelAt(pixels, BorderWidth, BorderHeight), palette[0x0e])
}
