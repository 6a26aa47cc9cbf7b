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

package audioplayer

import "sync"

// ring is a fixed size queue of samples. when the queue is full the oldest
// sample is dropped.
type ring struct {
	crit  sync.Mutex
	data  []float32
	read  int
	count int

	// the most recent sample removed from the queue. returned when the
	// queue is empty
	last float32
}

func newRing(size int) *ring {
	return &ring{
		data: make([]float32, max(size, 1)),
	}
}

func (r *ring) push(v float32) {
	r.crit.Lock()
	defer r.crit.Unlock()

	if r.count == len(r.data) {
		r.read = (r.read + 1) % len(r.data)
		r.count--
	}
	r.data[(r.read+r.count)%len(r.data)] = v
	r.count++
}

// fill dst with samples from the queue. the return value is the number of
// samples that were taken from the queue. the remainder of dst is filled with
// the last sample to be taken.
func (r *ring) fill(dst []float32) int {
	r.crit.Lock()
	defer r.crit.Unlock()

	n := min(len(dst), r.count)
	for i := range n {
		r.last = r.data[r.read]
		dst[i] = r.last
		r.read = (r.read + 1) % len(r.data)
	}
	r.count -= n

	for i := n; i < len(dst); i++ {
		dst[i] = r.last
	}

	return n
}

func (r *ring) len() int {
	r.crit.Lock()
	defer r.crit.Unlock()
	return r.count
}
