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

// Package audioplayer plays the output of the SID through the host's sound
// device.
//
// Samples are queued as they are produced by the emulation and removed by
// the sound device as it needs them. If the emulation runs ahead of the sound
// device the oldest samples are dropped. If it falls behind the last sample
// is repeated.
package audioplayer

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/gopher64/logger"
)

// the size of the sample queue as a fraction of a second
const queueFraction = 4

// Player implements the sid.SampleSink interface.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	queue  *ring

	buf []float32

	crit    sync.Mutex
	started bool
}

// New is the preferred method of initialisation for the Player type.
func New(sampleRate int) (*Player, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audioplayer: invalid sample rate (%d)", sampleRate)
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("audioplayer: %w", err)
	}
	<-ready

	ap := &Player{
		ctx:   ctx,
		queue: newRing(sampleRate / queueFraction),
	}
	ap.player = ctx.NewPlayer(ap)

	logger.Logf(logger.Allow, "audioplayer", "sample rate %dHz", sampleRate)

	return ap, nil
}

// Sample implements the sid.SampleSink interface. Samples are in the range
// 0.0 to 1.0.
func (ap *Player) Sample(v float32) {
	ap.queue.push(v*2 - 1)
}

// Read implements the io.Reader interface. It is called by the sound device.
func (ap *Player) Read(p []byte) (int, error) {
	n := len(p) / 4
	if len(ap.buf) < n {
		ap.buf = make([]float32, n)
	}
	samples := ap.buf[:n]
	ap.queue.fill(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return n * 4, nil
}

// Start playback.
func (ap *Player) Start() {
	ap.crit.Lock()
	defer ap.crit.Unlock()

	if !ap.started {
		ap.player.Play()
		ap.started = true
	}
}

// Close stops playback. The player cannot be restarted.
func (ap *Player) Close() error {
	ap.crit.Lock()
	defer ap.crit.Unlock()

	ap.started = false
	if ap.player == nil {
		return nil
	}
	err := ap.player.Close()
	ap.player = nil
	if err != nil {
		return fmt.Errorf("audioplayer: %w", err)
	}
	return nil
}
