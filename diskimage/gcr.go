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

package diskimage

// group code recording. each nybble is recorded as five bits so that there
// are never more than two zero bits in a row
var toGCR = [16]uint8{
	0x0a, 0x0b, 0x12, 0x13, 0x0e, 0x0f, 0x16, 0x17,
	0x09, 0x19, 0x1a, 0x1b, 0x0d, 0x1d, 0x1e, 0x15,
}

// invalid codes decode as zero
var fromGCR = [32]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 8, 0, 1, 0, 12, 4, 5,
	0, 0, 2, 3, 0, 15, 6, 7, 0, 9, 10, 11, 0, 13, 14, 0,
}

// encodeGCR encodes four bytes as five GCR bytes.
func encodeGCR(dst []uint8, src []uint8) {
	var v uint64
	for _, b := range src[:4] {
		v = v<<5 | uint64(toGCR[b>>4])
		v = v<<5 | uint64(toGCR[b&0x0f])
	}
	for i := 4; i >= 0; i-- {
		dst[i] = uint8(v)
		v >>= 8
	}
}

// decodeGCR decodes five GCR bytes into four bytes.
func decodeGCR(dst []uint8, src []uint8) {
	var v uint64
	for _, b := range src[:5] {
		v = v<<8 | uint64(b)
	}
	for i := 3; i >= 0; i-- {
		lo := fromGCR[v&0x1f]
		v >>= 5
		hi := fromGCR[v&0x1f]
		v >>= 5
		dst[i] = hi<<4 | lo
	}
}
