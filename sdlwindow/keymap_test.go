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

package sdlwindow

import (
	"testing"

	"github.com/jetsetilly/gopher64/hardware/input"
	"github.com/jetsetilly/gopher64/test"
)

type emulation struct {
	presses  []input.Key
	releases []input.Key
	joystick input.Joystick
	restores int
}

func (emu *emulation) KeyPress(k input.Key) error {
	emu.presses = append(emu.presses, k)
	return nil
}

func (emu *emulation) KeyRelease(k input.Key) error {
	emu.releases = append(emu.releases, k)
	return nil
}

func (emu *emulation) Restore() error {
	emu.restores++
	return nil
}

func (emu *emulation) Joystick(port int, state input.Joystick) error {
	if port == joystickPort {
		emu.joystick = state
	}
	return nil
}

func TestKeysFor(t *testing.T) {
	// every entry in the keymap names a real key
	for name := range keymap {
		test.ExpectInequality(t, len(keysFor(name)), 0, name)
	}

	test.ExpectEquality(t, len(keysFor("A")), 1)
	test.ExpectEquality(t, keysFor("a")[0], input.MustLookup("A"))
	test.ExpectEquality(t, keysFor("7")[0], input.MustLookup("7"))
	test.ExpectEquality(t, len(keysFor("Up")), 2)
	test.ExpectEquality(t, len(keysFor("Menu")), 0)
	test.ExpectEquality(t, len(keysFor("#")), 0)
}

func TestKeyboard(t *testing.T) {
	emu := &emulation{}
	kb := newKeyboard(emu)

	test.ExpectSuccess(t, kb.event("Up", true))
	test.ExpectSuccess(t, kb.event("Left Shift", true))
	test.ExpectEquality(t, len(emu.presses), 2)

	// shift is still held by the left shift key
	test.ExpectSuccess(t, kb.event("Up", false))
	test.DemandEquality(t, len(emu.releases), 1)
	test.ExpectEquality(t, emu.releases[0], input.MustLookup("DOWN"))

	test.ExpectSuccess(t, kb.event("Left Shift", false))
	test.DemandEquality(t, len(emu.releases), 2)
	test.ExpectEquality(t, emu.releases[1], input.KeyShift)

	// releasing a key that was never pressed does nothing
	test.ExpectSuccess(t, kb.event("Q", false))
	test.ExpectEquality(t, len(emu.releases), 2)
}

func TestJoystickAndRestore(t *testing.T) {
	emu := &emulation{}
	kb := newKeyboard(emu)

	test.ExpectSuccess(t, kb.event("Keypad 8", true))
	test.ExpectSuccess(t, kb.event("Keypad 0", true))
	test.ExpectEquality(t, emu.joystick, input.JoyUp|input.JoyFire)
	test.ExpectSuccess(t, kb.event("Keypad 8", false))
	test.ExpectEquality(t, emu.joystick, input.JoyFire)

	test.ExpectSuccess(t, kb.event(restoreKey, true))
	test.ExpectSuccess(t, kb.event(restoreKey, false))
	test.ExpectEquality(t, emu.restores, 1)
	test.ExpectEquality(t, len(emu.presses), 0)
}
