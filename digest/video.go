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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/gopher64/hardware/vic"
)

// Video implements the vic.FrameSink interface. The hash covers the screen
// codes and colours of the text screen and the border and background colours.
type Video struct {
	digest   [sha1.Size]byte
	frame    []byte
	frameNum int
}

// the digest of the previous frame, the screen and colour RAM, the border
// and background colours and the blank flag
const videoFrameLen = sha1.Size + 1000 + 1000 + 3

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{
		frame: make([]byte, videoFrameLen),
	}
}

// Hash implements the digest.Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Video) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
	dig.frameNum = 0
}

// Frames returns the number of the most recent frame included in the hash.
func (dig *Video) Frames() int {
	return dig.frameNum
}

// NewFrame implements the vic.FrameSink interface.
func (dig *Video) NewFrame(f *vic.Frame) {
	// chain fingerprints by copying the value of the last fingerprint
	// to the head of the frame data
	i := copy(dig.frame, dig.digest[:])
	i += copy(dig.frame[i:], f.Screen[:])
	i += copy(dig.frame[i:], f.Color[:])
	dig.frame[i] = f.Border & 0x0f
	dig.frame[i+1] = f.Background & 0x0f
	dig.frame[i+2] = 0
	if f.Blank {
		dig.frame[i+2] = 1
	}

	dig.digest = sha1.Sum(dig.frame)
	dig.frameNum = f.Number
}
