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

package hostterm_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/gopher64/hardware/input"
	"github.com/jetsetilly/gopher64/hardware/vic"
	"github.com/jetsetilly/gopher64/hostterm"
	"github.com/jetsetilly/gopher64/test"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

type keyboard struct {
	pressed map[input.Key]bool
	presses []input.Key
}

func (kb *keyboard) KeyPress(k input.Key) error {
	kb.pressed[k] = true
	kb.presses = append(kb.presses, k)
	return nil
}

func (kb *keyboard) KeyRelease(k input.Key) error {
	delete(kb.pressed, k)
	return nil
}

func TestTyping(t *testing.T) {
	kb := &keyboard{pressed: make(map[input.Key]bool)}
	trm := hostterm.New(nil, nil, kb)

	var sink vic.FrameSink
	test.ExpectImplements(t, trm, sink)

	trm.Type('a')
	trm.Type('a')
	trm.Type('!')

	var frame vic.Frame
	next := func() {
		trm.NewFrame(&frame)
		frame.Number++
	}

	// first character is pressed and held
	next()
	test.ExpectEquality(t, kb.pressed[input.MustLookup("A")], true)
	next()
	next()
	test.ExpectEquality(t, kb.pressed[input.MustLookup("A")], true)

	// released for one frame before the repeated character
	next()
	test.ExpectEquality(t, len(kb.pressed), 0)
	next()
	test.ExpectEquality(t, kb.pressed[input.MustLookup("A")], true)

	for range 5 {
		next()
	}
	test.ExpectEquality(t, kb.pressed[input.KeyShift], true)
	test.ExpectEquality(t, kb.pressed[input.MustLookup("1")], true)

	for range 10 {
		next()
	}
	test.ExpectEquality(t, len(kb.pressed), 0)
	test.ExpectEquality(t, len(kb.presses), 4)
}

func TestDelete(t *testing.T) {
	kb := &keyboard{pressed: make(map[input.Key]bool)}
	trm := hostterm.New(nil, nil, kb)
	trm.Type(0x7f)
	trm.NewFrame(&vic.Frame{})
	test.ExpectEquality(t, kb.pressed[input.MustLookup("DEL")], true)
}

func TestRender(t *testing.T) {
	var f vic.Frame
	for i := range f.Screen {
		f.Screen[i] = 0x20
	}

	// READY. in normal and reverse video
	copy(f.Screen[:], []uint8{0x12, 0x05, 0x01, 0x04, 0x19, 0x2e})
	copy(f.Screen[40:], []uint8{0x92, 0x85, 0x81, 0x84, 0x99, 0xae, 0x00, 0x66})

	lines := strings.Split(hostterm.Render(&f), "\n")
	test.ExpectEquality(t, len(lines), 26)
	test.ExpectEquality(t, len(lines[0]), 40)
	test.ExpectEquality(t, strings.TrimSpace(lines[0]), "READY.")
	test.ExpectEquality(t, strings.TrimSpace(lines[1]), "READY.@#")
	test.ExpectEquality(t, lines[25], "")
}

func TestTerminalMode(t *testing.T) {
	ptm, pts, err := termios.Pty()
	if err != nil {
		t.Skipf("no pseudo terminal: %v", err)
	}
	defer ptm.Close()
	defer pts.Close()

	var orig unix.Termios
	test.DemandSuccess(t, termios.Tcgetattr(pts.Fd(), &orig))

	kb := &keyboard{pressed: make(map[input.Key]bool)}
	trm := hostterm.New(pts, nil, kb)
	test.DemandSuccess(t, trm.Start())

	// characters are received without waiting for a newline
	var attr unix.Termios
	test.DemandSuccess(t, termios.Tcgetattr(pts.Fd(), &attr))
	test.ExpectEquality(t, attr.Lflag&unix.ICANON, uint32(0))

	_, err = ptm.Write([]byte("a"))
	test.DemandSuccess(t, err)

	var frame vic.Frame
	for range 1000 {
		trm.NewFrame(&frame)
		frame.Number++
		if len(kb.presses) > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	test.DemandEquality(t, len(kb.presses), 1)
	test.ExpectEquality(t, kb.presses[0], input.MustLookup("A"))

	// original mode is restored
	test.DemandSuccess(t, trm.Stop())
	test.DemandSuccess(t, termios.Tcgetattr(pts.Fd(), &attr))
	test.ExpectEquality(t, attr.Lflag, orig.Lflag)
}

func TestScreenOutput(t *testing.T) {
	kb := &keyboard{pressed: make(map[input.Key]bool)}
	out := &test.Capture{}
	trm := hostterm.New(nil, out, kb)

	var f vic.Frame
	for i := range f.Screen {
		f.Screen[i] = 0x20
	}
	copy(f.Screen[:], []uint8{0x12, 0x05, 0x01, 0x04, 0x19, 0x2e})

	// drawn on the first frame and then every ten frames
	for range 10 {
		trm.NewFrame(&f)
		f.Number++
	}
	test.ExpectSuccess(t, out.Compare("\x1b[H"+hostterm.Render(&f)))

	out.Clear()
	trm.NewFrame(&f)
	lines := out.Lines()
	test.DemandEquality(t, len(lines), 25)
	test.ExpectEquality(t, strings.TrimSpace(strings.TrimPrefix(lines[0], "\x1b[H")), "READY.")
}
