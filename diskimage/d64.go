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

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// ErrorCode is the error information stored with each sector in D64 files
// that have it. The codes are those used by the 1541 job queue.
type ErrorCode uint8

// List of error codes that change the way a sector is recorded.
const (
	NoError        ErrorCode = 0x01
	HeaderNotFound ErrorCode = 0x02
	NoSync         ErrorCode = 0x03
	DataNotFound   ErrorCode = 0x04
	DataChecksum   ErrorCode = 0x05
	HeaderChecksum ErrorCode = 0x09
	IDMismatch     ErrorCode = 0x0b
)

// D64 is a disk image.
type D64 struct {
	Filename string

	tracks   int
	data     []uint8
	errors   []uint8
	hasError bool
	readOnly bool

	id1, id2 uint8

	// the image has been written to since it was loaded
	modified bool
}

// size of a D64 with the number of tracks, without error information
func imageSize(tracks int) int {
	return firstSector(tracks+1) * SectorSize
}

// Load a D64 file. The image is read only if the file is not writable.
func Load(filename string) (*D64, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("diskimage: %w", err)
	}

	readOnly := false
	if f, err := os.OpenFile(filename, os.O_WRONLY, 0); err != nil {
		readOnly = true
	} else {
		f.Close()
	}

	d, err := Parse(filepath.Base(filename), data, readOnly)
	if err != nil {
		return nil, err
	}
	d.Filename = filename
	return d, nil
}

// Parse the contents of a D64 file. The number of tracks and whether there is
// error information is decided by the size of the data.
func Parse(name string, data []uint8, readOnly bool) (*D64, error) {
	d := &D64{
		Filename: name,
		readOnly: readOnly,
	}

	for d.tracks = MinTracks; d.tracks <= MaxTracks; d.tracks++ {
		sz := imageSize(d.tracks)
		blocks := sz / SectorSize
		if len(data) == sz {
			break
		}
		if len(data) == sz+blocks {
			d.hasError = true
			break
		}
	}
	if d.tracks > MaxTracks {
		return nil, fmt.Errorf("diskimage: %s: unrecognised D64 size (%d bytes)", name, len(data))
	}

	sz := imageSize(d.tracks)
	d.data = bytes.Clone(data[:sz])
	d.errors = make([]uint8, sz/SectorSize)
	if d.hasError {
		copy(d.errors, data[sz:])
	}

	bam, _ := d.Sector(DirectoryTrack, 0)
	d.id1 = bam[0xa2]
	d.id2 = bam[0xa3]

	return d, nil
}

// Blank returns a 35 track image with every sector empty.
func Blank() *D64 {
	d, _ := Parse("blank.d64", make([]uint8, imageSize(MinTracks)), false)
	return d
}

func (d *D64) String() string {
	return fmt.Sprintf("%s (%d tracks)", d.Filename, d.tracks)
}

// Tracks returns the number of tracks in the image.
func (d *D64) Tracks() int {
	return d.tracks
}

// ID returns the two characters of the disk ID.
func (d *D64) ID() (uint8, uint8) {
	return d.id1, d.id2
}

// WriteProtected returns true if the image cannot be written to.
func (d *D64) WriteProtected() bool {
	return d.readOnly
}

// SetWriteProtected changes the state of the write protect notch.
func (d *D64) SetWriteProtected(protected bool) {
	d.readOnly = protected
}

// Modified returns true if the image has been written to since it was
// loaded or saved.
func (d *D64) Modified() bool {
	return d.modified
}

func (d *D64) offset(track, sector int) (int, error) {
	if track < 1 || track > d.tracks {
		return 0, fmt.Errorf("diskimage: track %d out of range", track)
	}
	if sector < 0 || sector >= Sectors(track) {
		return 0, fmt.Errorf("diskimage: sector %d out of range on track %d", sector, track)
	}
	return firstSector(track) + sector, nil
}

// Sector returns the data of a sector. The returned slice refers to the
// image.
func (d *D64) Sector(track, sector int) ([]uint8, error) {
	n, err := d.offset(track, sector)
	if err != nil {
		return nil, err
	}
	return d.data[n*SectorSize : (n+1)*SectorSize], nil
}

// SetError changes the error information of a sector.
func (d *D64) SetError(track, sector int, code ErrorCode) error {
	n, err := d.offset(track, sector)
	if err != nil {
		return err
	}
	d.errors[n] = uint8(code)
	d.hasError = true
	return nil
}

// Track returns the GCR encoded contents of the track under the head. Both
// half tracks of a track return the same data. Tracks that are not in the
// image are unformatted.
func (d *D64) Track(halftrack int) ([]uint8, error) {
	track := halftrack >> 1
	if track < 1 || track > MaxTracks {
		return nil, fmt.Errorf("diskimage: no such half track (%d)", halftrack)
	}

	gcr := make([]uint8, TrackSize(track))
	if track > d.tracks {
		return gcr, nil
	}

	for i := range gcr {
		gcr[i] = gapByte
	}

	zone := SpeedZone(track)
	pos := 0
	for sector := range Sectors(track) {
		n := firstSector(track) + sector
		code := ErrorCode(d.errors[n])
		if code == NoSync {
			clear(gcr)
			break
		}
		d.encodeSector(gcr[pos:pos+sectorLength], track, sector, d.data[n*SectorSize:(n+1)*SectorSize], code)
		pos += sectorLength + sectorGap[zone]
	}

	return gcr, nil
}

func (d *D64) encodeSector(dst []uint8, track, sector int, data []uint8, code ErrorCode) {
	id1 := d.id1
	if code == IDMismatch {
		id1 ^= 0xff
	}

	var raw [8]uint8
	raw[0] = blockHeader
	if code == HeaderNotFound {
		raw[0] = 0xff
	}
	raw[1] = uint8(sector) ^ uint8(track) ^ d.id2 ^ id1
	if code == HeaderChecksum {
		raw[1] ^= 0xff
	}
	raw[2] = uint8(sector)
	raw[3] = uint8(track)
	raw[4] = d.id2
	raw[5] = id1
	raw[6] = 0x0f
	raw[7] = 0x0f

	pos := 0
	sync := func() {
		for i := range syncLength {
			dst[pos+i] = 0xff
		}
		pos += syncLength
	}

	sync()
	encodeGCR(dst[pos:], raw[0:4])
	encodeGCR(dst[pos+5:], raw[4:8])
	pos += headerLength + headerGap
	sync()

	var block [260]uint8
	block[0] = dataHeader
	if code == DataNotFound {
		block[0] = 0xff
	}
	copy(block[1:257], data)
	var chk uint8
	for _, b := range data {
		chk ^= b
	}
	if code == DataChecksum {
		chk ^= 0xff
	}
	block[257] = chk

	for i := 0; i < len(block); i += 4 {
		encodeGCR(dst[pos:], block[i:])
		pos += 5
	}
}

// WriteTrack decodes the sectors in the GCR data and stores them in the
// image. Writing to a track beyond the end of a 35 track image extends the
// image to 40 tracks.
func (d *D64) WriteTrack(halftrack int, gcr []uint8) error {
	if d.readOnly {
		return fmt.Errorf("diskimage: %s is write protected", d.Filename)
	}

	track := halftrack >> 1
	if track < 1 || track > ExtendedTracks {
		return fmt.Errorf("diskimage: track %d cannot be written", track)
	}
	if track > d.tracks {
		d.extend()
	}

	var failed int
	for sector := range Sectors(track) {
		block, ok := findSector(gcr, track, sector)
		if !ok {
			failed++
			continue
		}
		n := firstSector(track) + sector
		copy(d.data[n*SectorSize:], block[1:257])
		d.errors[n] = uint8(NoError)
		d.modified = true
	}

	if failed > 0 {
		return fmt.Errorf("diskimage: %d sectors of track %d could not be decoded", failed, track)
	}
	return nil
}

func (d *D64) extend() {
	sz := imageSize(ExtendedTracks)
	data := make([]uint8, sz)
	copy(data, d.data)
	d.data = data
	errs := make([]uint8, sz/SectorSize)
	copy(errs, d.errors)
	d.errors = errs
	d.tracks = ExtendedTracks
}

// findSector searches the GCR data of a track for the header of the sector
// and returns the decoded data block that follows it
func findSector(gcr []uint8, track, sector int) ([260]uint8, bool) {
	var block [260]uint8
	sz := len(gcr)
	if sz == 0 {
		return block, false
	}
	at := func(i int) uint8 {
		return gcr[i%sz]
	}

	// skip past the end of a sync mark that starts at or after pos. returns
	// -1 if there is no sync mark within one revolution
	skipSync := func(pos int) int {
		for n := 0; at(pos) != 0xff; n++ {
			if n >= sz {
				return -1
			}
			pos++
		}
		for n := 0; at(pos) == 0xff; n++ {
			if n >= sz {
				return -1
			}
			pos++
		}
		return pos
	}

	var enc [5]uint8
	var hdr [4]uint8
	pos := 0
	for scanned := 0; scanned < sz; {
		start := pos
		pos = skipSync(pos)
		if pos < 0 {
			return block, false
		}
		for i := range enc {
			enc[i] = at(pos + i)
		}
		decodeGCR(hdr[:], enc[:])
		scanned += pos - start + 5
		pos += 5

		if hdr[0] != blockHeader || int(hdr[2]) != sector || int(hdr[3]) != track {
			continue
		}

		pos = skipSync(pos)
		if pos < 0 {
			return block, false
		}
		for i := 0; i < len(block); i += 4 {
			for j := range enc {
				enc[j] = at(pos + j)
			}
			decodeGCR(block[i:], enc[:])
			pos += 5
		}
		return block, block[0] == dataHeader
	}

	return block, false
}

// Bytes returns the contents of the image in D64 format.
func (d *D64) Bytes() []uint8 {
	b := bytes.Clone(d.data)
	if d.hasError {
		b = append(b, d.errors...)
	}
	return b
}

// Save the image to the file it was loaded from.
func (d *D64) Save() error {
	if d.readOnly {
		return fmt.Errorf("diskimage: %s is write protected", d.Filename)
	}
	if err := os.WriteFile(d.Filename, d.Bytes(), 0o644); err != nil {
		return fmt.Errorf("diskimage: %w", err)
	}
	d.modified = false
	return nil
}
