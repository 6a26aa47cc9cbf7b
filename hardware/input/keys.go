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

import (
	"fmt"
	"strings"
)

// Key is a position in the keyboard matrix. The high nibble is the port A
// bit and the low nibble is the port B bit.
type Key uint8

// NewKey returns the key at the matrix position.
func NewKey(column, row int) Key {
	return Key((column&0x07)<<4 | row&0x07)
}

// Column returns the port A bit of the key.
func (k Key) Column() int {
	return int(k>>4) & 0x07
}

// Row returns the port B bit of the key.
func (k Key) Row() int {
	return int(k) & 0x07
}

func (k Key) String() string {
	return matrix[k.Column()][k.Row()]
}

// the names of the keys in the matrix, indexed by port A bit and then by
// port B bit
var matrix = [8][8]string{
	{"DEL", "RETURN", "RIGHT", "F7", "F1", "F3", "F5", "DOWN"},
	{"3", "W", "A", "4", "Z", "S", "E", "LSHIFT"},
	{"5", "R", "D", "6", "C", "F", "T", "X"},
	{"7", "Y", "G", "8", "B", "H", "U", "V"},
	{"9", "I", "J", "0", "M", "K", "O", "N"},
	{"+", "P", "L", "-", ".", ":", "@", ","},
	{"POUND", "*", ";", "HOME", "RSHIFT", "=", "UPARROW", "/"},
	{"1", "LEFTARROW", "CTRL", "2", "SPACE", "C=", "Q", "STOP"},
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key)
	for c, row := range matrix {
		for r, name := range row {
			m[name] = NewKey(c, r)
		}
	}
	return m
}()

// Named keys used elsewhere in the emulation.
var (
	KeyReturn = MustLookup("RETURN")
	KeyShift  = MustLookup("LSHIFT")
	KeySpace  = MustLookup("SPACE")
	KeyStop   = MustLookup("STOP")
)

// Lookup returns the key with the name. Names are not case sensitive.
func Lookup(name string) (Key, error) {
	k, ok := keysByName[strings.ToUpper(name)]
	if !ok {
		return 0, fmt.Errorf("input: unknown key (%s)", name)
	}
	return k, nil
}

// MustLookup is like Lookup but panics if the key does not exist.
func MustLookup(name string) Key {
	k, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return k
}

// characters that are typed with the shift key held down
var shifted = map[rune]string{
	'!': "1", '"': "2", '#': "3", '$': "4", '%': "5", '&': "6", '\'': "7",
	'(': "8", ')': "9", '<': ",", '>': ".", '?': "/", '[': ":", ']': ";",
}

// KeysForRune returns the keys that need to be held down to type the
// character. Letters are typed unshifted, which is upper case in the default
// character set.
func KeysForRune(r rune) ([]Key, error) {
	switch r {
	case '\n', '\r':
		return []Key{KeyReturn}, nil
	case ' ':
		return []Key{KeySpace}, nil
	}

	if s, ok := shifted[r]; ok {
		return []Key{KeyShift, MustLookup(s)}, nil
	}

	k, err := Lookup(string(r))
	if err != nil {
		return nil, fmt.Errorf("input: cannot type character (%q)", r)
	}
	return []Key{k}, nil
}
