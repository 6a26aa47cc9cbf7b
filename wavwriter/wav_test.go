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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/gopher64/hardware/sid"
	"github.com/jetsetilly/gopher64/test"
	"github.com/jetsetilly/gopher64/wavwriter"
)

func TestWavWriter(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "out.wav")

	_, err := wavwriter.New(fn, 0)
	test.ExpectFailure(t, err)

	aw, err := wavwriter.New(fn, 44100)
	test.DemandSuccess(t, err)
	var sink sid.SampleSink
	test.ExpectImplements(t, aw, sink)

	for i := range 1000 {
		aw.Sample(float32(i%2))
	}
	test.ExpectEquality(t, aw.Len(), 1000)
	test.DemandSuccess(t, aw.Close())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.ExpectEquality(t, dec.IsValidFile(), true)
	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, int(dec.SampleRate), 44100)
	test.ExpectEquality(t, int(dec.NumChans), 1)
	test.ExpectEquality(t, len(buf.Data), 1000)
	test.ExpectEquality(t, buf.Data[0], -32767)
	test.ExpectEquality(t, buf.Data[1], 32767)
}
