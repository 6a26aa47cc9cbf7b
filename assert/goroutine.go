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

// Package assert contains helpers for checking run-time conditions that
// should never occur in a correctly functioning program. They are only
// intended for debugging and testing and are usually called from code that
// is built with the "assertions" build tag.
package assert

import (
	"bytes"
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"sync"
)

// GetGoRoutineID returns an identifier for the calling goroutine. The result
// is different between goroutines and consistent for a given goroutine.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Owner records the goroutines that own a resource. The zero value has no
// owner.
//
// More than one goroutine can own a resource if they never run at the same
// time. This is the case for a coroutine created with iter.Pull() and the
// goroutine that resumes it.
type Owner struct {
	crit sync.Mutex
	ids  []uint64
}

// Claim makes the calling goroutine the only owner.
func (o *Owner) Claim() {
	o.crit.Lock()
	defer o.crit.Unlock()
	o.ids = append(o.ids[:0], GetGoRoutineID())
}

// Share adds the calling goroutine to the list of owners. If the resource
// has no owner then the calling goroutine becomes the only owner.
func (o *Owner) Share() {
	id := GetGoRoutineID()
	o.crit.Lock()
	defer o.crit.Unlock()
	if !slices.Contains(o.ids, id) {
		o.ids = append(o.ids, id)
	}
}

// Release forgets every owner.
func (o *Owner) Release() {
	o.crit.Lock()
	defer o.crit.Unlock()
	o.ids = o.ids[:0]
}

// Check panics if the resource has an owner and the calling goroutine is not
// one of the owners. The what argument describes the resource in the panic
// message.
func (o *Owner) Check(what string) {
	o.crit.Lock()
	defer o.crit.Unlock()
	if len(o.ids) == 0 {
		return
	}
	if id := GetGoRoutineID(); !slices.Contains(o.ids, id) {
		panic(fmt.Sprintf("assert: %s accessed from goroutine %d but is owned by goroutine %d", what, id, o.ids[0]))
	}
}
