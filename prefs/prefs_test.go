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

package prefs_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopher64/prefs"
	"github.com/jetsetilly/gopher64/test"
)

func cmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v, w, x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("TRUE"))

	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestIntAndString(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var n prefs.Int
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("number", &n))
	test.ExpectSuccess(t, dsk.Add("string", &s))

	test.ExpectSuccess(t, n.Set("99"))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "number :: 99\nstring :: bar\n")

	// failure conditions
	test.ExpectFailure(t, n.Set("---"))
	test.ExpectFailure(t, n.Set(1.0))
	test.ExpectEquality(t, n.Get().(int), 99)
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var n prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &n))

	// file doesn't exist yet but will be created
	err = dsk.Load(true)
	test.ExpectSuccess(t, errors.Is(err, prefs.NoPrefsFile))
	_, err = os.Stat(fn)
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, n.Set(350000))
	test.DemandSuccess(t, dsk.Save())

	// a second disk instance sharing the same file
	dsk2, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var m prefs.Int
	var b prefs.Bool
	test.ExpectSuccess(t, dsk2.Add("number", &m))
	test.ExpectSuccess(t, dsk2.Add("other", &b))
	test.DemandSuccess(t, dsk2.Load(false))
	test.ExpectEquality(t, m.Get().(int), 350000)

	// saving the second instance preserves nothing it doesn't know about
	// but does keep the shared value
	test.ExpectSuccess(t, b.Set(true))
	test.DemandSuccess(t, dsk2.Save())
	cmpFile(t, fn, "number :: 350000\nother :: true\n")
}

func TestUnknownKeysPreserved(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	err := os.WriteFile(fn, []byte(fmt.Sprintf("%s\nforeign :: value\nhardware.randpins :: true\n", prefs.WarningBoilerPlate)), 0o600)
	test.DemandSuccess(t, err)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("mine", &s))
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectSuccess(t, s.Set("x"))
	test.DemandSuccess(t, dsk.Save())

	// defunct key has been dropped
	cmpFile(t, fn, "foreign :: value\nmine :: x\n")
}

func TestHooks(t *testing.T) {
	var b prefs.Bool
	var post bool

	b.SetHookPre(func(v prefs.Value) error {
		if v.(bool) {
			return nil
		}
		return errors.New("refused")
	})
	b.SetHookPost(func(v prefs.Value) error {
		post = v.(bool)
		return nil
	})

	test.ExpectSuccess(t, b.Set(true))
	test.ExpectSuccess(t, post)
	test.ExpectFailure(t, b.Set(false))
	test.ExpectEquality(t, b.Get().(bool), true)
}
