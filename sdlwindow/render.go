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
	"github.com/jetsetilly/gopher64/hardware/vic"
)

// The size of the image and the size of the border around the text screen.
const (
	BorderWidth  = 32
	BorderHeight = 36

	Width  = 320 + BorderWidth*2
	Height = 200 + BorderHeight*2

	// bytes per pixel
	pixelDepth = 4
)

// the size of a character set in the character ROM. the first set contains
// upper case and graphics characters
const charsetSize = 0x0800

// Render the frame into the pixel buffer. The buffer must be Width * Height *
// 4 bytes long. Pixels are in red, green, blue, alpha order.
func Render(pixels []uint8, f *vic.Frame, chargen []uint8) {
	border := palette[f.Border&0x0f]
	for i := 0; i < len(pixels); i += pixelDepth {
		setPixel(pixels[i:], border)
	}

	if f.Blank || len(chargen) < charsetSize {
		return
	}

	background := palette[f.Background&0x0f]
	for row := range 25 {
		for col := range 40 {
			i := row*40 + col
			fg := palette[f.Color[i]&0x0f]
			glyph := chargen[int(f.Screen[i])*8:]
			for y := range 8 {
				line := glyph[y]
				p := ((BorderHeight+row*8+y)*Width + BorderWidth + col*8) * pixelDepth
				for x := range 8 {
					if line&(0x80>>x) != 0 {
						setPixel(pixels[p:], fg)
					} else {
						setPixel(pixels[p:], background)
					}
					p += pixelDepth
				}
			}
		}
	}
}

func setPixel(p []uint8, c [3]uint8) {
	p[0] = c[0]
	p[1] = c[1]
	p[2] = c[2]
	p[3] = 0xff
}
