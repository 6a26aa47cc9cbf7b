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

package input

import "strings"

// Joystick is the state of a joystick. A set bit means the switch is closed.
type Joystick uint8

// Joystick switches. The bits match the bits of the CIA port they are read
// from.
const (
	JoyUp Joystick = 1 << iota
	JoyDown
	JoyLeft
	JoyRight
	JoyFire

	JoyCentre Joystick = 0
)

func (j Joystick) String() string {
	if j == JoyCentre {
		return "centre"
	}
	var s []string
	for i, n := range []string{"up", "down", "left", "right", "fire"} {
		if j&(1<<i) != 0 {
			s = append(s, n)
		}
	}
	return strings.Join(s, "+")
}

// ParseJoystick converts a description of joystick state, for example
// "up+fire", into a Joystick value. Unknown words are ignored.
func ParseJoystick(s string) Joystick {
	var j Joystick
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '+' || r == ' ' || r == ','
	}) {
		switch w {
		case "up":
			j |= JoyUp
		case "down":
			j |= JoyDown
		case "left":
			j |= JoyLeft
		case "right":
			j |= JoyRight
		case "fire":
			j |= JoyFire
		}
	}
	return j
}

// Control ports.
const (
	Port1 = 1
	Port2 = 2
)
