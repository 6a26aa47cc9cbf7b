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

// Disk geometry of the 1541.
const (
	SectorSize     = 256
	DirectoryTrack = 18
	MinTracks      = 35
	ExtendedTracks = 40
	MaxTracks      = 42
)

// speed zone of each track
var speedZone = [MaxTracks]int{
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
	2, 2, 2, 2, 2, 2, 2,
	1, 1, 1, 1, 1, 1,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// per speed zone
var (
	sectorsPerTrack = [4]int{17, 18, 19, 21}
	rawTrackSize    = [4]int{6250, 6666, 7142, 7692}
	sectorGap       = [4]int{9, 12, 17, 8}
)

// SpeedZone returns the speed zone of the track. Tracks are numbered from
// one.
func SpeedZone(track int) int {
	if track < 1 || track > MaxTracks {
		return 0
	}
	return speedZone[track-1]
}

// Sectors returns the number of sectors on the track.
func Sectors(track int) int {
	return sectorsPerTrack[SpeedZone(track)]
}

// TrackSize returns the number of GCR bytes on the track.
func TrackSize(track int) int {
	return rawTrackSize[SpeedZone(track)]
}

// the number of sectors before the track
func firstSector(track int) int {
	n := 0
	for t := 1; t < track; t++ {
		n += Sectors(t)
	}
	return n
}

// sizes of the GCR encoded parts of a sector
const (
	syncLength   = 5
	headerLength = 10
	headerGap    = 10
	dataLength   = 325
	sectorLength = syncLength + headerLength + headerGap + syncLength + dataLength

	blockHeader = 0x08
	dataHeader  = 0x07

	gapByte = 0x55
)
