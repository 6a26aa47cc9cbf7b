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

package scheduler

import (
	"container/heap"
	"fmt"
	"sync"

	"github.com/jetsetilly/gopher64/hardware/clocks"
)

// Scheduler is a discrete event scheduler for a single clock domain.
type Scheduler struct {
	label string

	// current time in half cycles
	cur uint64

	queue queue
	seq   uint64

	// clock rate of the scheduler. used by chips that need to convert real
	// time to cycles (eg. the TOD clock of the CIA)
	rate clocks.Rate

	// events scheduled from other goroutines are staged here until the next
	// iteration of Advance() or RunUntil()
	stagedCrit sync.Mutex
	staged     []Event

	// number of events currently firing. staged events are never merged
	// while an event is firing
	firing int

	// Advance() is not reentrant. events fired by Advance() will often call
	// RunUntil() but they should never call Advance()
	advancing bool

	owner owner
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type. The label is used to identify the scheduler in error messages.
func NewScheduler(label string) *Scheduler {
	return &Scheduler{
		label: label,
		rate:  clocks.PAL,
	}
}

func (s *Scheduler) String() string {
	return fmt.Sprintf("%s: cycle %d %s (%d pending)", s.label, s.cur>>1, s.Phase(), len(s.queue))
}

// Label returns the label given to the scheduler on creation.
func (s *Scheduler) Label() string {
	return s.label
}

// Share adds the calling goroutine to the list of goroutines that are
// allowed to use the scheduler. Only has an effect when built with the
// assertions tag.
func (s *Scheduler) Share() {
	s.owner.share()
}

func (s *Scheduler) invariant(key uint64, label string, detail string) {
	panic(InvariantError{
		Scheduler: s.label,
		Cycle:     key >> 1,
		Phase:     Phase(key & 1),
		Event:     label,
		Detail:    detail,
	})
}

func (s *Scheduler) add(ev Event, key uint64) Handle {
	s.owner.check(s.label)

	if key < s.cur {
		s.invariant(s.cur, ev.Label(), fmt.Sprintf("event scheduled in the past for cycle %d %s", key>>1, Phase(key&1)))
	}

	e := &entry{
		ev:  ev,
		key: key,
		seq: s.seq,
	}
	s.seq++
	heap.Push(&s.queue, e)

	return Handle{e: e}
}

// Schedule the event to fire in the next available slot of the requested
// phase, the specified number of cycles from now.
//
// A PHI1 event requested with a delay of zero during PHI2 will fire on PHI1
// of the next cycle.
func (s *Scheduler) Schedule(ev Event, delay uint64, phase Phase) Handle {
	var adj uint64
	if phase == PHI2 {
		adj = 1
	}
	return s.add(ev, (delay<<1)+s.cur+((s.cur&1)^adj))
}

// ScheduleSamePhase schedules the event to fire in the current phase, the
// specified number of cycles from now.
func (s *Scheduler) ScheduleSamePhase(ev Event, delay uint64) Handle {
	return s.add(ev, (delay<<1)+s.cur)
}

// ScheduleAbsolute schedules the event to fire at the specified cycle and
// phase. Scheduling an event in the past is an invariant violation.
func (s *Scheduler) ScheduleAbsolute(ev Event, cycle uint64, phase Phase) Handle {
	return s.add(ev, (cycle<<1)+uint64(phase&1))
}

// ScheduleThreadSafe schedules the event from any goroutine. The event is
// added to the queue at the start of the next Advance() or RunUntil()
// iteration that is not inside a firing event, and will fire at the next
// PHI1.
func (s *Scheduler) ScheduleThreadSafe(ev Event) {
	s.stagedCrit.Lock()
	defer s.stagedCrit.Unlock()
	s.staged = append(s.staged, ev)
}

func (s *Scheduler) mergeStaged() {
	s.stagedCrit.Lock()
	staged := s.staged
	s.staged = nil
	s.stagedCrit.Unlock()

	for _, ev := range staged {
		s.Schedule(ev, 0, PHI1)
	}
}

// Cancel a scheduled event. Returns false if the event has already fired or
// has already been cancelled.
func (s *Scheduler) Cancel(h Handle) bool {
	s.owner.check(s.label)

	if !s.isPending(h) {
		return false
	}
	heap.Remove(&s.queue, h.e.index)
	return true
}

// IsPending returns true if the event referred to by the handle has not yet
// fired and has not been cancelled.
func (s *Scheduler) IsPending(h Handle) bool {
	s.owner.check(s.label)
	return s.isPending(h)
}

func (s *Scheduler) isPending(h Handle) bool {
	if h.e == nil || h.e.index < 0 || h.e.index >= len(s.queue) {
		return false
	}
	return s.queue[h.e.index] == h.e
}

// Pending returns the number of events waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// fire the event at the head of the queue
func (s *Scheduler) fireNext() {
	e := heap.Pop(&s.queue).(*entry)
	if e.key < s.cur {
		s.invariant(s.cur, e.ev.Label(), fmt.Sprintf("event is behind current time (due at cycle %d %s)", e.key>>1, Phase(e.key&1)))
	}
	s.cur = e.key
	s.firing++
	e.ev.Fire()
	s.firing--
}

// Advance fires the next n events, moving time forward to each event as it
// fires. Events scheduled with ScheduleThreadSafe() are added to the queue
// before each event is fired.
//
// Returns early if the queue is empty.
func (s *Scheduler) Advance(n int) {
	s.owner.check(s.label)

	if s.advancing {
		s.invariant(s.cur, "", "advance called while advancing")
	}
	s.advancing = true
	defer func() {
		s.advancing = false
	}()

	for range n {
		s.mergeStaged()
		if len(s.queue) == 0 {
			return
		}
		s.fireNext()
	}
}

// RunUntil fires every event that is due before the specified cycle and
// phase and then moves time to that point. Events that are due at exactly
// the specified point remain in the queue.
//
// Events scheduled with ScheduleThreadSafe() are added to the queue before
// each event is fired, unless RunUntil() has been called by a firing event of
// this scheduler.
//
// It is an invariant violation to run to a point in the past.
func (s *Scheduler) RunUntil(cycle uint64, phase Phase) {
	s.owner.check(s.label)

	target := (cycle << 1) + uint64(phase&1)
	if target < s.cur {
		s.invariant(s.cur, "", fmt.Sprintf("cannot run backwards to cycle %d %s", cycle, phase))
	}

	for {
		if s.firing == 0 {
			s.mergeStaged()
		}
		if len(s.queue) == 0 || s.queue[0].key >= target {
			break
		}
		s.fireNext()
	}
	s.cur = target
}

// NextKey returns the cycle and phase of the event at the head of the queue.
// The ok value is false if the queue is empty.
func (s *Scheduler) NextKey() (cycle uint64, phase Phase, ok bool) {
	if len(s.queue) == 0 {
		return 0, PHI1, false
	}
	k := s.queue[0].key
	return k >> 1, Phase(k & 1), true
}

// CheckHead panics if the event at the head of the queue is behind the
// current time. This can only happen if the queue has been corrupted.
func (s *Scheduler) CheckHead() {
	if len(s.queue) > 0 && s.queue[0].key < s.cur {
		s.invariant(s.cur, s.queue[0].ev.Label(), "event at head of queue is in the past")
	}
}

// Now returns the current cycle as seen from the specified phase. During
// PHI2 the PHI1 time is already that of the next cycle.
func (s *Scheduler) Now(phase Phase) uint64 {
	var adj uint64
	if phase == PHI1 {
		adj = 1
	}
	return (s.cur + adj) >> 1
}

// Cycles returns the current cycle. Satisfies the random.Clock interface.
func (s *Scheduler) Cycles() uint64 {
	return s.cur >> 1
}

// Phase returns the current phase.
func (s *Scheduler) Phase() Phase {
	return Phase(s.cur & 1)
}

// Reset returns time to zero and discards all pending and staged events.
// Handles to any previously scheduled event will no longer be pending.
func (s *Scheduler) Reset() {
	s.owner.check(s.label)

	for _, e := range s.queue {
		e.index = -1
	}
	s.queue = s.queue[:0]
	s.cur = 0
	s.seq = 0

	s.stagedCrit.Lock()
	s.staged = nil
	s.stagedCrit.Unlock()
}

// SetCyclesPerSecond changes the clock rate of the scheduler. The rate has
// no effect on the scheduling of events.
func (s *Scheduler) SetCyclesPerSecond(rate clocks.Rate) {
	s.rate = rate
}

// CyclesPerSecond returns the clock rate of the scheduler.
func (s *Scheduler) CyclesPerSecond() clocks.Rate {
	return s.rate
}
