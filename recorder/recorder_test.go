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

package recorder_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/input"
	"github.com/jetsetilly/gopher64/recorder"
	"github.com/jetsetilly/gopher64/test"
)

func TestRecordAndPlayback(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "session.rec")

	rec, err := recorder.NewRecorder(fn, clocks.PAL.String(), "")
	test.DemandSuccess(t, err)

	var ir input.EventRecorder
	test.ExpectImplements(t, rec, ir)

	events := []input.TimedEvent{
		{Cycle: 100, Event: input.Event{Kind: input.KeyPress, Key: input.KeySpace}},
		{Cycle: 100, Event: input.Event{Kind: input.JoystickState, Port: input.Port2, Joystick: input.JoyUp | input.JoyFire}},
		{Cycle: 2000, Event: input.Event{Kind: input.KeyRelease, Key: input.KeySpace}},
		{Cycle: 5000, Event: input.Event{Kind: input.Restore}},
	}
	for _, ev := range events {
		test.DemandSuccess(t, rec.RecordEvent(ev))
	}
	test.DemandSuccess(t, rec.End())
	test.ExpectFailure(t, rec.RecordEvent(events[0]))

	plb, err := recorder.NewPlayback(fn)
	test.DemandSuccess(t, err)

	var ip input.EventPlayback
	test.ExpectImplements(t, plb, ip)

	test.ExpectEquality(t, plb.Clock, "PAL")
	test.ExpectEquality(t, plb.Program, "")
	test.ExpectEquality(t, plb.EndCycle(), uint64(5000))
	test.ExpectSuccess(t, plb.Validate(clocks.PAL))
	test.ExpectFailure(t, plb.Validate(clocks.NTSC))

	for _, ev := range events {
		pev, ok, err := plb.GetPlayback()
		test.DemandSuccess(t, err)
		test.DemandEquality(t, ok, true)
		test.ExpectEquality(t, pev, ev)
	}
	_, ok, err := plb.GetPlayback()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ok, false)
}

func TestBadRecording(t *testing.T) {
	dir := t.TempDir()

	fn := filepath.Join(dir, "bad.rec")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("not a recording\nPAL\n-\n"), 0o644))
	_, err := recorder.NewPlayback(fn)
	test.ExpectFailure(t, err)

	test.DemandSuccess(t, os.WriteFile(fn, []byte("gopher64recording\nPAL\n-\n100, 1, 2\n"), 0o644))
	_, err = recorder.NewPlayback(fn)
	test.ExpectFailure(t, err)

	// events out of order
	test.DemandSuccess(t, os.WriteFile(fn, []byte("gopher64recording\nPAL\ngame\n100, 1, 2, 0, 0\n50, 2, 2, 0, 0\n"), 0o644))
	_, err = recorder.NewPlayback(fn)
	test.ExpectFailure(t, err)

	_, err = recorder.NewPlayback(filepath.Join(dir, "missing.rec"))
	test.ExpectFailure(t, err)
}
