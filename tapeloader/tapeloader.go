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

// Package tapeloader converts tape images into the list of pulse lengths
// played by the datasette.
//
// TAP files store the pulse lengths directly. Version 0 and version 1 files
// are supported. Recordings of real tapes in WAV or MP3 format are converted
// to pulses by measuring the time between rising zero crossings of the
// audio.
//
// Pulses recorded by the datasette can be saved as a version 1 TAP file.
package tapeloader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/gopher64/hardware/clocks"
)

// Sentinel errors returned by the package.
var (
	ErrNotTAP      = errors.New("tapeloader: not a TAP file")
	ErrVersion     = errors.New("tapeloader: unsupported TAP version")
	ErrNoPulses    = errors.New("tapeloader: tape contains no pulses")
	ErrUnsupported = errors.New("tapeloader: unsupported file type")
)

const (
	tapMagic      = "C64-TAPE-RAW"
	tapHeaderSize = 20
	tapVersion    = 12
	tapSize       = 16

	// pulses are stored in units of eight cycles
	tapUnit = 8

	// the longest pulse that can be stored in a single byte
	tapMaxShort = 0xff * tapUnit
)

// Load the tape image. The clock rate is the rate of the C64 that will play
// the tape and is used to convert audio recordings to cycles.
func Load(filename string, rate clocks.Rate) ([]uint32, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("tapeloader: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tap":
		return ParseTAP(data)
	case ".wav":
		return decodeWAV(data, rate)
	case ".mp3":
		return decodeMP3(data, rate)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(filename))
}

// ParseTAP parses the contents of a TAP file.
func ParseTAP(data []uint8) ([]uint32, error) {
	if len(data) < tapHeaderSize || string(data[:len(tapMagic)]) != tapMagic {
		return nil, ErrNotTAP
	}

	version := data[tapVersion]
	if version > 1 {
		return nil, fmt.Errorf("%w (%d)", ErrVersion, version)
	}

	size := int(binary.LittleEndian.Uint32(data[tapSize:]))
	body := data[tapHeaderSize:]
	if size < len(body) {
		body = body[:size]
	}

	var pulses []uint32
	for i := 0; i < len(body); i++ {
		if body[i] != 0x00 {
			pulses = append(pulses, uint32(body[i])*tapUnit)
			continue
		}

		// in version 0 files a zero is any pulse longer than can be
		// stored in a byte. in version 1 files the following three bytes
		// are the length in cycles
		if version == 0 {
			pulses = append(pulses, 256*tapUnit)
			continue
		}
		if i+3 >= len(body) {
			break
		}
		pulses = append(pulses, uint32(body[i+1])|uint32(body[i+2])<<8|uint32(body[i+3])<<16)
		i += 3
	}

	if len(pulses) == 0 {
		return nil, ErrNoPulses
	}
	return pulses, nil
}

// EncodeTAP returns the pulses as a version 1 TAP file.
func EncodeTAP(pulses []uint32) []uint8 {
	body := bytes.Buffer{}
	for _, p := range pulses {
		if p < tapMaxShort {
			body.WriteByte(uint8(max(p/tapUnit, 1)))
			continue
		}
		p = min(p, 0xffffff)
		body.Write([]uint8{0x00, uint8(p), uint8(p >> 8), uint8(p >> 16)})
	}

	hdr := make([]uint8, tapHeaderSize)
	copy(hdr, tapMagic)
	hdr[tapVersion] = 1
	binary.LittleEndian.PutUint32(hdr[tapSize:], uint32(body.Len()))

	return append(hdr, body.Bytes()...)
}

// Save the pulses as a version 1 TAP file.
func Save(filename string, pulses []uint32) error {
	if len(pulses) == 0 {
		return ErrNoPulses
	}
	if err := os.WriteFile(filename, EncodeTAP(pulses), 0o644); err != nil {
		return fmt.Errorf("tapeloader: %w", err)
	}
	return nil
}

func decodeWAV(data []uint8, rate clocks.Rate) ([]uint32, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if dec == nil || !dec.IsValidFile() {
		return nil, fmt.Errorf("tapeloader: wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("tapeloader: wav: %w", err)
	}
	floatBuf := buf.AsFloat32Buffer()

	// first channel only
	chans := max(int(dec.NumChans), 1)
	samples := make([]float32, 0, len(floatBuf.Data)/chans)
	for i := 0; i < len(floatBuf.Data); i += chans {
		samples = append(samples, floatBuf.Data[i])
	}

	return Pulses(samples, uint64(dec.SampleRate), rate)
}

func decodeMP3(data []uint8, rate clocks.Rate) ([]uint32, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("tapeloader: mp3: %w", err)
	}

	// the decoded stream is always 16bit little endian stereo. only the left
	// channel is used
	var samples []float32
	chunk := make([]uint8, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+1 < n; i += 4 {
			samples = append(samples, float32(int16(binary.LittleEndian.Uint16(chunk[i:]))))
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tapeloader: mp3: %w", err)
		}
	}

	return Pulses(samples, uint64(dec.SampleRate()), rate)
}

// Pulses converts audio samples to pulse lengths. A pulse is the time
// between two rising zero crossings, measured in cycles of the clock rate.
func Pulses(samples []float32, sampleRate uint64, rate clocks.Rate) ([]uint32, error) {
	if sampleRate == 0 || !rate.Valid() {
		return nil, fmt.Errorf("tapeloader: invalid sample rate (%d)", sampleRate)
	}

	// cycles per sample is Num/(Den*sampleRate)
	den := rate.Den * sampleRate

	var pulses []uint32
	var count uint64
	var started bool
	prev := float32(0)

	for _, s := range samples {
		count++
		if prev < 0 && s >= 0 {
			if started {
				cycles := (count*rate.Num + den/2) / den
				pulses = append(pulses, uint32(min(cycles, 0xffffff)))
			}
			started = true
			count = 0
		}
		prev = s
	}

	if len(pulses) == 0 {
		return nil, ErrNoPulses
	}
	return pulses, nil
}
