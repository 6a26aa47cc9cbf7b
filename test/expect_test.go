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

package test_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/jetsetilly/gopher64/test"
)

func TestSuccessAndFailure(t *testing.T) {
	test.ExpectSuccess(t, true)
	test.ExpectSuccess(t, nil)
	test.ExpectSuccess(t, error(nil))

	test.ExpectFailure(t, false)
	test.ExpectFailure(t, errors.New("test error"))
}

func TestEquality(t *testing.T) {
	test.ExpectEquality(t, 10, 10)
	test.ExpectEquality(t, "foo", "foo")
	test.ExpectInequality(t, uint16(10), 11)
	test.ExpectApproximate(t, 100.0, 101.0, 0.02)
}

func TestImplements(t *testing.T) {
	var w io.Writer
	test.ExpectImplements(t, &test.Capture{}, w)
	test.DemandImplements(t, &test.Capture{}, w)
}

func TestPanic(t *testing.T) {
	r := test.ExpectPanic(t, func() { panic("expected") })
	test.ExpectEquality(t, r, any("expected"))
}

func TestCompareWriter(t *testing.T) {
	tw := &test.Capture{}
	fmt.Fprintf(tw, "hello %s", "world")
	test.ExpectSuccess(t, tw.Compare("hello world"))
	tw.Clear()
	test.ExpectSuccess(t, tw.Compare(""))
}
