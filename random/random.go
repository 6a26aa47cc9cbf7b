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

package random

import (
	"math/rand/v2"
	"time"
)

// the base seed for all random numbers when ZeroSeed is false
var baseSeed = uint64(time.Now().UnixNano())

// Clock is the source of emulation time for the Random type.
type Clock interface {
	Cycles() uint64
}

// Random is a random number generator that is sensitive to time within the
// emulation.
type Random struct {
	clk Clock

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be
	// predictable
	ZeroSeed bool

	// numbers requested at the same emulation time must still differ
	sequence uint64
}

// NewRandom is the preferred method of initialisation for the Random type.
// The clock argument can be nil and plumbed in later.
func NewRandom(clk Clock) *Random {
	return &Random{
		clk: clk,
	}
}

// Plumb a new clock into the random number generator. The sequence is reset.
func (rnd *Random) Plumb(clk Clock) {
	rnd.clk = clk
	rnd.sequence = 0
}

func (rnd *Random) rand() *rand.Rand {
	var t uint64
	if rnd.clk != nil {
		t = rnd.clk.Cycles()
	}

	seed := t
	if !rnd.ZeroSeed {
		seed += baseSeed
	}

	rnd.sequence++
	return rand.New(rand.NewPCG(seed, rnd.sequence))
}

// IntN returns a random number in the half-open interval [0,n).
func (rnd *Random) IntN(n int) int {
	return rnd.rand().IntN(n)
}

// Uint8 returns a random byte.
func (rnd *Random) Uint8() uint8 {
	return uint8(rnd.rand().UintN(256))
}

// Fill fills the slice with random bytes.
func (rnd *Random) Fill(b []uint8) {
	r := rnd.rand()
	for i := range b {
		b[i] = uint8(r.UintN(256))
	}
}
