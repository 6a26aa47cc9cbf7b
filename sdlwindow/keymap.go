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
	"strings"

	"github.com/jetsetilly/gopher64/hardware/input"
)

// the names of host keys, as reported by SDL, and the C64 keys they press.
// letter and digit keys have the same name on both keyboards and are not
// listed
var keymap = map[string][]string{
	"Return":      {"RETURN"},
	"Backspace":   {"DEL"},
	"Space":       {"SPACE"},
	"Left Shift":  {"LSHIFT"},
	"Right Shift": {"RSHIFT"},
	"Left Ctrl":   {"CTRL"},
	"Tab":         {"CTRL"},
	"Left Alt":    {"C="},
	"Escape":      {"STOP"},
	"Home":        {"HOME"},
	"Insert":      {"LSHIFT", "DEL"},
	"Down":        {"DOWN"},
	"Right":       {"RIGHT"},
	"Up":          {"LSHIFT", "DOWN"},
	"Left":        {"LSHIFT", "RIGHT"},
	"F1":          {"F1"},
	"F2":          {"LSHIFT", "F1"},
	"F3":          {"F3"},
	"F4":          {"LSHIFT", "F3"},
	"F5":          {"F5"},
	"F6":          {"LSHIFT", "F5"},
	"F7":          {"F7"},
	"F8":          {"LSHIFT", "F7"},
	"-":           {"+"},
	"=":           {"-"},
	"[":           {"@"},
	"]":           {"*"},
	";":           {":"},
	"'":           {";"},
	"\\":          {"="},
	",":           {","},
	".":           {"."},
	"/":           {"/"},
	"`":           {"LEFTARROW"},
	"Delete":      {"UPARROW"},
	"End":         {"POUND"},
}

// keypad keys move the joystick in control port two
var joymap = map[string]input.Joystick{
	"Keypad 8": input.JoyUp,
	"Keypad 2": input.JoyDown,
	"Keypad 4": input.JoyLeft,
	"Keypad 6": input.JoyRight,
	"Keypad 7": input.JoyUp | input.JoyLeft,
	"Keypad 9": input.JoyUp | input.JoyRight,
	"Keypad 1": input.JoyDown | input.JoyLeft,
	"Keypad 3": input.JoyDown | input.JoyRight,
	"Keypad 0": input.JoyFire,
}

// the control port the keypad joystick is plugged into
const joystickPort = 2

// the host key for the RESTORE key
const restoreKey = "PageUp"

// keysFor returns the C64 keys for the host key name. The result is nil if
// the host key is not mapped.
func keysFor(name string) []input.Key {
	names, ok := keymap[name]
	if !ok {
		if len([]rune(name)) != 1 {
			return nil
		}
		n := strings.ToUpper(name)
		if (n[0] < 'A' || n[0] > 'Z') && (n[0] < '0' || n[0] > '9') {
			return nil
		}
		names = []string{n}
	}

	keys := make([]input.Key, 0, len(names))
	for _, n := range names {
		k, err := input.Lookup(n)
		if err != nil {
			return nil
		}
		keys = append(keys, k)
	}
	return keys
}

// keyboard tracks the state of the host keys. keys that share C64 keys, for
// example the two shifted cursor keys, are counted so that releasing one does
// not release the key for the other.
type keyboard struct {
	emu      Emulation
	pressed  map[input.Key]int
	joystick input.Joystick
}

func newKeyboard(emu Emulation) *keyboard {
	return &keyboard{
		emu:     emu,
		pressed: make(map[input.Key]int),
	}
}

// event handles a key event from the host. the name is the SDL name of the
// key.
func (kb *keyboard) event(name string, down bool) error {
	if name == restoreKey {
		if down {
			return kb.emu.Restore()
		}
		return nil
	}

	if j, ok := joymap[name]; ok {
		if down {
			kb.joystick |= j
		} else {
			kb.joystick &^= j
		}
		return kb.emu.Joystick(joystickPort, kb.joystick)
	}

	for _, k := range keysFor(name) {
		if down {
			kb.pressed[k]++
			if kb.pressed[k] == 1 {
				if err := kb.emu.KeyPress(k); err != nil {
					return err
				}
			}
		} else if kb.pressed[k] > 0 {
			kb.pressed[k]--
			if kb.pressed[k] == 0 {
				delete(kb.pressed, k)
				if err := kb.emu.KeyRelease(k); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
