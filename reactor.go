// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"time"

	"code.hybscloud.com/kont"
)

// Signal is one wake directive: resume the task parked on Uid with
// Result, or fail it with Err. A nil Result resumes as the empty value
// (kont treats a nil resumption as completion with zero).
type Signal struct {
	Uid    Uid
	Result kont.Resumed
	Err    error
}

// Reactor integrates external blocking waits with a domain. A reactor
// belongs to one domain; only Interrupt may be called from outside it.
//
// Select returns directives for syscalls whose conditions fired. It may
// wait: indefinitely when block is true and nothing timed is
// registered, otherwise at most min(earliest deadline, quantum).
// cancelled names uids whose registrations must be purged before
// waiting; a directive for a purged uid is an invalid syscall. Empty
// returns are allowed; the core re-checks and calls again.
//
// Interrupt makes a concurrent or subsequent Select return early.
// Non-blocking and coalescing, callable from any goroutine.
//
// Finalize releases reactor resources. Called exactly once, after the
// domain's last Select.
type Reactor interface {
	Select(block bool, cancelled map[Uid]struct{}) ([]Signal, error)
	Interrupt()
	Finalize()
}

// defaultQuantum bounds every timed Select wait, keeping a domain
// responsive to cross-domain requests that arrive without an interrupt.
const defaultQuantum = 100 * time.Millisecond

// timerReactor is the built-in deadline reactor: the domain registry is
// its only wait source and wall-clock time its only condition.
type timerReactor struct {
	reg     *Registry
	intr    *Interrupt
	quantum time.Duration
}

// NewTimerReactor returns the built-in deadline reactor over reg. A
// quantum <= 0 keeps the default. Custom reactors that keep deadline
// support can embed one and delegate the registry wait to it.
func NewTimerReactor(reg *Registry, quantum time.Duration) Reactor {
	if quantum <= 0 {
		quantum = defaultQuantum
	}
	return &timerReactor{reg: reg, intr: NewInterrupt(), quantum: quantum}
}

// Select implements Reactor over deadline registrations: purge
// cancelled uids, wait up to the earliest deadline bounded by the
// quantum, then decrement every registration by the elapsed wall time
// and collect the expired ones.
func (t *timerReactor) Select(block bool, cancelled map[Uid]struct{}) ([]Signal, error) {
	t.reg.Purge(cancelled)

	earliest, timed := t.reg.Earliest()
	if !timed {
		if block {
			<-t.intr.C()
			return nil, nil
		}
		t.wait(t.quantum)
		return nil, nil
	}

	bound := min(earliest, t.quantum)
	if bound <= 0 {
		return t.reg.Advance(0), nil
	}
	begin := time.Now()
	t.wait(bound)
	return t.reg.Advance(time.Since(begin)), nil
}

// wait sleeps up to d or until an interrupt posts.
func (t *timerReactor) wait(d time.Duration) {
	timer := time.NewTimer(d)
	select {
	case <-timer.C:
	case <-t.intr.C():
		timer.Stop()
	}
}

// Interrupt implements Reactor.
func (t *timerReactor) Interrupt() {
	t.intr.Post()
}

// Finalize implements Reactor.
func (t *timerReactor) Finalize() {
	t.intr.Finalize()
}
