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

package assert_test

import (
	"testing"

	"github.com/jetsetilly/gopher64/assert"
	"github.com/jetsetilly/gopher64/test"
)

func TestGoRoutineID(t *testing.T) {
	id := assert.GetGoRoutineID()
	test.ExpectEquality(t, assert.GetGoRoutineID(), id)

	ch := make(chan uint64)
	go func() {
		ch <- assert.GetGoRoutineID()
	}()
	test.ExpectInequality(t, <-ch, id)
}

func TestOwner(t *testing.T) {
	var o assert.Owner

	// no owner so check always succeeds
	o.Check("resource")

	o.Claim()
	o.Check("resource")

	done := make(chan any)
	go func() {
		defer func() {
			done <- recover()
		}()
		o.Check("resource")
	}()
	test.ExpectInequality(t, <-done, nil)

	o.Release()
	go func() {
		defer func() {
			done <- recover()
		}()
		o.Check("resource")
	}()
	test.ExpectEquality(t, <-done, nil)
}

func TestSharedOwner(t *testing.T) {
	var o assert.Owner
	o.Claim()

	done := make(chan any)
	go func() {
		defer func() {
			done <- recover()
		}()
		o.Share()
		o.Check("resource")
	}()
	test.ExpectEquality(t, <-done, nil)

	// original owner is still an owner
	o.Check("resource")

	// claiming again removes the shared owner
	o.Claim()
	go func() {
		defer func() {
			done <- recover()
		}()
		o.Check("resource")
	}()
	test.ExpectInequality(t, <-done, nil)
}
