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

// Package hostterm connects the emulation to the terminal it was started
// from. Characters typed at the terminal are pressed on the C64 keyboard and
// the C64 text screen is drawn to the terminal.
//
// When the input is a terminal it is put into cbreak mode so that characters
// are received as soon as they are typed. The original mode is restored by
// Stop().
package hostterm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/jetsetilly/gopher64/hardware/input"
	"github.com/jetsetilly/gopher64/hardware/vic"
	"github.com/jetsetilly/gopher64/logger"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Emulation is the part of the emulation that receives key presses.
type Emulation interface {
	KeyPress(input.Key) error
	KeyRelease(input.Key) error
}

const (
	// number of frames a key is held down for
	holdFrames = 3

	// the screen is drawn every renderFrames frames
	renderFrames = 10

	screenWidth  = 40
	screenHeight = 25
)

// Terminal is the connection between the host terminal and the emulation.
type Terminal struct {
	in  *os.File
	out io.Writer
	emu Emulation

	typed chan rune

	// keys currently held down and the frame on which they are released
	held      []input.Key
	releaseAt int

	// cbreak mode is only used when the input is a terminal
	isTerm  bool
	canAttr unix.Termios

	crit    sync.Mutex
	stopped bool
}

// New is the preferred method of initialisation for the Terminal type. The
// out argument can be nil, in which case the screen is not drawn.
func New(in *os.File, out io.Writer, emu Emulation) *Terminal {
	return &Terminal{
		in:    in,
		out:   out,
		emu:   emu,
		typed: make(chan rune, 256),
	}
}

// Start reading from the terminal.
func (t *Terminal) Start() error {
	if t.in == nil {
		return nil
	}

	fd := t.in.Fd()
	t.isTerm = term.IsTerminal(int(fd))
	if t.isTerm {
		if err := termios.Tcgetattr(fd, &t.canAttr); err != nil {
			return fmt.Errorf("hostterm: %w", err)
		}
		cbreak := t.canAttr
		termios.Cfmakecbreak(&cbreak)
		if err := termios.Tcsetattr(fd, termios.TCIFLUSH, &cbreak); err != nil {
			return fmt.Errorf("hostterm: %w", err)
		}
	}

	go t.read(t.in)

	return nil
}

// the reading goroutine is left blocked on the input when the terminal is
// stopped. characters read after Stop() are discarded
func (t *Terminal) read(r io.Reader) {
	br := bufio.NewReader(r)
	for {
		c, _, err := br.ReadRune()
		if err != nil {
			if err != io.EOF {
				logger.Log(logger.Allow, "hostterm", err)
			}
			return
		}

		t.crit.Lock()
		stopped := t.stopped
		t.crit.Unlock()
		if stopped {
			return
		}

		t.Type(c)
	}
}

// Type queues a character to be typed on the C64 keyboard. Characters that
// can't be typed are ignored. Safe to call from any goroutine.
func (t *Terminal) Type(c rune) {
	switch c {
	case 0x7f, 0x08:
		c = 0
	}
	select {
	case t.typed <- c:
	default:
	}
}

// Stop restores the terminal to its original mode.
func (t *Terminal) Stop() error {
	t.crit.Lock()
	defer t.crit.Unlock()

	if t.stopped {
		return nil
	}
	t.stopped = true

	if t.isTerm {
		if err := termios.Tcsetattr(t.in.Fd(), termios.TCIFLUSH, &t.canAttr); err != nil {
			return fmt.Errorf("hostterm: %w", err)
		}
	}
	return nil
}

// NewFrame implements the vic.FrameSink interface. It is called by the
// emulation at the end of every frame.
func (t *Terminal) NewFrame(f *vic.Frame) {
	if len(t.held) > 0 {
		if f.Number < t.releaseAt {
			return
		}
		for _, k := range t.held {
			t.emu.KeyRelease(k)
		}
		t.held = t.held[:0]

		// no keys are pressed for the next frame so that repeated
		// characters are seen as separate key presses
		t.releaseAt = f.Number + 1
	} else if f.Number >= t.releaseAt {
		select {
		case c := <-t.typed:
			t.press(c, f.Number)
		default:
		}
	}

	if t.out != nil && f.Number%renderFrames == 0 {
		io.WriteString(t.out, "\x1b[H"+Render(f))
	}
}

func (t *Terminal) press(c rune, frame int) {
	var keys []input.Key
	if c == 0 {
		keys = []input.Key{input.MustLookup("DEL")}
	} else {
		var err error
		keys, err = input.KeysForRune(toC64(c))
		if err != nil {
			logger.Log(logger.Allow, "hostterm", err)
			return
		}
	}

	for _, k := range keys {
		if err := t.emu.KeyPress(k); err != nil {
			logger.Log(logger.Allow, "hostterm", err)
			return
		}
	}
	t.held = append(t.held, keys...)
	t.releaseAt = frame + holdFrames
}

// lower case letters are typed as upper case, which is how they appear in
// the default character set
func toC64(c rune) rune {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Render the text screen of the frame as plain text. Each line ends with a
// newline.
func Render(f *vic.Frame) string {
	var s strings.Builder
	for row := range screenHeight {
		for col := range screenWidth {
			s.WriteRune(screenCode(f.Screen[row*screenWidth+col]))
		}
		s.WriteRune('\n')
	}
	return s.String()
}

// convert a screen code in the default character set to the nearest ASCII
// character. reverse video characters are drawn the same as normal
// characters and graphics characters are drawn as '#'
func screenCode(c uint8) rune {
	c &= 0x7f
	switch {
	case c == 0x00:
		return '@'
	case c <= 0x1a:
		return rune('A' + c - 1)
	case c == 0x1b:
		return '['
	case c == 0x1c:
		return '£'
	case c == 0x1d:
		return ']'
	case c == 0x1e:
		return '^'
	case c == 0x1f:
		return '<'
	case c <= 0x3f:
		return rune(c)
	}
	return '#'
}
