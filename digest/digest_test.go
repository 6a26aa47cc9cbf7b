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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/digest"
	"github.com/jetsetilly/gopher64/hardware/sid"
	"github.com/jetsetilly/gopher64/hardware/vic"
	"github.com/jetsetilly/gopher64/test"
)

func TestVideo(t *testing.T) {
	a := digest.NewVideo()
	b := digest.NewVideo()

	var d digest.Digest
	test.ExpectImplements(t, a, d)
	var sink vic.FrameSink
	test.ExpectImplements(t, a, sink)

	zero := a.Hash()

	f := vic.Frame{Number: 1, Border: 0x0e, Background: 0x06}
	a.NewFrame(&f)
	b.NewFrame(&f)
	test.ExpectInequality(t, a.Hash(), zero)
	test.ExpectEquality(t, a.Hash(), b.Hash())
	test.ExpectEquality(t, a.Frames(), 1)

	// the hash is chained so the same frame does not produce the same hash
	h := a.Hash()
	a.NewFrame(&f)
	test.ExpectInequality(t, a.Hash(), h)

	// only the low nibble of a colour register is significant
	f.Border = 0xfe
	b.NewFrame(&f)
	test.ExpectEquality(t, a.Hash(), b.Hash())

	f.Screen[0] = 0x01
	a.NewFrame(&f)
	f.Screen[0] = 0x02
	b.NewFrame(&f)
	test.ExpectInequality(t, a.Hash(), b.Hash())

	a.ResetDigest()
	test.ExpectEquality(t, a.Hash(), zero)
}

func TestAudio(t *testing.T) {
	a := digest.NewAudio()
	b := digest.NewAudio()

	var sink sid.SampleSink
	test.ExpectImplements(t, a, sink)

	zero := a.Hash()

	// more samples than fit in the buffer
	for i := range 50000 {
		a.Sample(float32(i%100) / 100)
		b.Sample(float32(i%100) / 100)
	}
	test.ExpectInequality(t, a.Hash(), zero)
	test.ExpectEquality(t, a.Hash(), b.Hash())

	a.Sample(0.5)
	b.Sample(0.6)
	test.ExpectInequality(t, a.Hash(), b.Hash())

	a.ResetDigest()
	test.ExpectEquality(t, a.Hash(), zero)
}
