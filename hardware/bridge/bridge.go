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

package bridge

import (
	"fmt"
	"math/bits"

	"github.com/jetsetilly/gopher64/hardware/clocks"
	"github.com/jetsetilly/gopher64/hardware/scheduler"
	"github.com/jetsetilly/gopher64/logger"
)

// Priority of a synchronisation. Both priorities calculate the same target
// cycle in the secondary domain.
type Priority int

// List of valid Priority values.
const (
	// the primary is about to read a value produced by the secondary. the
	// secondary is run to the start of the target cycle
	Read Priority = iota

	// the primary is about to write a value that the secondary will see. the
	// secondary is also run through the first phase of the target cycle so
	// that the write lands after anything the secondary does at the start of
	// that cycle
	Write
)

func (p Priority) String() string {
	if p == Write {
		return "write"
	}
	return "read"
}

// DefaultSyncPeriod is the number of primary cycles between the
// synchronisations made by the bridge on its own.
const DefaultSyncPeriod = 64

// Bridge couples two schedulers.
type Bridge struct {
	label string
	log   logger.Permission

	primary   *scheduler.Scheduler
	secondary *scheduler.Scheduler

	primaryRate   clocks.Rate
	secondaryRate clocks.Rate

	// corresponding times in the two domains
	base1 uint64
	base2 uint64

	// the ratio R2/R1 as a single fraction
	num uint64
	den uint64

	enabled bool

	// synchronising is true while the secondary is being run. the secondary
	// must never cause a synchronisation itself
	synchronising bool

	syncPeriod uint64
	handle     scheduler.Handle
}

// New creates a disabled bridge between the two schedulers.
func New(log logger.Permission, primary, secondary *scheduler.Scheduler, primaryRate, secondaryRate clocks.Rate) (*Bridge, error) {
	b := &Bridge{
		label:         fmt.Sprintf("bridge %s/%s", primary.Label(), secondary.Label()),
		log:           log,
		primary:       primary,
		secondary:     secondary,
		secondaryRate: secondaryRate,
		syncPeriod:    DefaultSyncPeriod,
	}
	if !secondaryRate.Valid() {
		return nil, fmt.Errorf("bridge: invalid secondary clock rate (%s)", secondaryRate)
	}
	if err := b.setRate(primaryRate); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bridge) setRate(primaryRate clocks.Rate) error {
	if !primaryRate.Valid() {
		return fmt.Errorf("bridge: invalid primary clock rate (%s)", primaryRate)
	}

	// R2/R1 = (N2/D2) / (N1/D1) = N2*D1 / D2*N1
	hi, num := bits.Mul64(b.secondaryRate.Num, primaryRate.Den)
	if hi != 0 {
		return fmt.Errorf("bridge: unsupported clock ratio (%s/%s)", b.secondaryRate, primaryRate)
	}
	hi, den := bits.Mul64(b.secondaryRate.Den, primaryRate.Num)
	if hi != 0 {
		return fmt.Errorf("bridge: unsupported clock ratio (%s/%s)", b.secondaryRate, primaryRate)
	}

	b.primaryRate = primaryRate
	b.num = num
	b.den = den
	return nil
}

// Label implements the scheduler.Event interface.
func (b *Bridge) Label() string {
	return b.label
}

func (b *Bridge) String() string {
	return fmt.Sprintf("%s: enabled=%v primary=%d secondary=%d", b.label, b.enabled, b.primary.Cycles(), b.secondary.Cycles())
}

// SetSyncPeriod changes the number of primary cycles between the
// synchronisations made by the bridge on its own. A value of zero stops the
// bridge making its own synchronisations.
func (b *Bridge) SetSyncPeriod(period uint64) {
	b.syncPeriod = period
	if b.enabled {
		b.primary.Cancel(b.handle)
		b.schedule()
	}
}

func (b *Bridge) schedule() {
	if b.syncPeriod > 0 {
		b.handle = b.primary.Schedule(b, b.syncPeriod, scheduler.PHI1)
	}
}

// Fire implements the scheduler.Event interface. Keeps the secondary running
// when there is no traffic between the two domains.
func (b *Bridge) Fire() {
	b.schedule()
	b.Synchronize(Read)
}

// Reset the bridge after both schedulers have been reset. The enabled state
// of the bridge is not changed.
func (b *Bridge) Reset() {
	b.base1 = b.primary.Cycles()
	b.base2 = b.secondary.Cycles()
	b.synchronising = false
	b.primary.Cancel(b.handle)
	if b.enabled {
		b.schedule()
	}
}

// Enabled returns true if the bridge is enabled.
func (b *Bridge) Enabled() bool {
	return b.enabled
}

// Enable the bridge. The baseline is moved to the current time so that the
// secondary does not try to catch up with the time it was disabled for.
func (b *Bridge) Enable() {
	if b.enabled {
		return
	}
	b.enabled = true
	b.rebaseline()
	b.schedule()
	logger.Logf(b.log, "bridge", "%s enabled", b.secondary.Label())
}

// Disable the bridge. The time of the secondary freezes.
func (b *Bridge) Disable() {
	if !b.enabled {
		return
	}
	b.enabled = false
	b.primary.Cancel(b.handle)
	logger.Logf(b.log, "bridge", "%s disabled", b.secondary.Label())
}

func (b *Bridge) rebaseline() {
	b.base1 = b.primary.Cycles()
	b.base2 = b.secondary.Cycles()
}

// SetClockRate changes the clock rate of the primary. The secondary is
// brought up to date using the old ratio first.
func (b *Bridge) SetClockRate(primaryRate clocks.Rate) error {
	if b.enabled {
		b.Synchronize(Write)
	}

	old := b.primaryRate
	if err := b.setRate(primaryRate); err != nil {
		return err
	}
	b.rebaseline()

	if old != primaryRate {
		logger.Logf(b.log, "bridge", "primary clock changed from %s to %s", old, primaryRate)
	}
	return nil
}

// Target returns the secondary cycle that corresponds to the current primary
// cycle.
func (b *Bridge) Target() uint64 {
	elapsed := b.primary.Cycles() - b.base1

	hi, lo := bits.Mul64(elapsed, b.num)
	qhi := hi / b.den
	if qhi != 0 {
		b.invariant(fmt.Sprintf("secondary time overflows after %d primary cycles", elapsed))
	}
	q, _ := bits.Div64(hi%b.den, lo, b.den)

	return b.base2 + q
}

func (b *Bridge) invariant(detail string) {
	panic(scheduler.InvariantError{
		Scheduler: b.secondary.Label(),
		Cycle:     b.secondary.Cycles(),
		Phase:     b.secondary.Phase(),
		Event:     b.label,
		Detail:    detail,
	})
}

// Synchronize runs the secondary until it has caught up with the primary. It
// does nothing if the bridge is disabled.
//
// The secondary never runs past the target and time never moves backwards.
// If the secondary is already at or beyond the point it would be run to, it
// is left alone.
func (b *Bridge) Synchronize(p Priority) {
	if !b.enabled {
		return
	}

	if b.synchronising {
		b.invariant("synchronisation requested by the secondary domain")
	}

	target := b.Target()
	phase := scheduler.PHI1
	if p == Write {
		phase = scheduler.PHI2
	}

	cur := b.secondary.Cycles()<<1 | uint64(b.secondary.Phase())
	if target<<1|uint64(phase) <= cur {
		return
	}

	b.secondary.CheckHead()

	b.synchronising = true
	defer func() {
		b.synchronising = false
	}()
	b.secondary.RunUntil(target, phase)
}

// Secondary returns the current cycle of the secondary.
func (b *Bridge) Secondary() uint64 {
	return b.secondary.Cycles()
}
