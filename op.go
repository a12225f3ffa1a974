// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"code.hybscloud.com/kont"
)

// disposition tells the scheduler loop how to continue after an
// operation dispatches.
type disposition uint8

const (
	// dispResume resumes the task inline with the dispatched value.
	dispResume disposition = iota
	// dispYield re-admits the task at the ready tail; the value resumes
	// it on its next turn.
	dispYield
	// dispPark leaves the task parked; a directive or settle re-admits it.
	dispPark
	// dispFail discards the suspension and fails the task with the
	// dispatched value (an error).
	dispFail
)

// schedDispatcher is the structural interface for scheduler operations.
// DispatchSched applies the operation against the domain running the
// current task; it never blocks.
type schedDispatcher interface {
	DispatchSched(d *domain, t *task) (kont.Resumed, disposition)
}

// Spawn is the effect operation for creating a concurrent task. The
// task is appended at the ready tail; queue growth is the only
// observable effect until it first runs. The performer resumes
// immediately with the new task's handle. Constructed by SpawnBind.
type Spawn struct {
	kont.Phantom[kont.Resumed]
	body kont.Expr[outcome]
}

// DispatchSched handles Spawn: allocate the cell and task, append at
// the ready tail, resume the parent with the erased handle.
func (s Spawn) DispatchSched(d *domain, _ *task) (kont.Resumed, disposition) {
	child := d.spawn(s.body)
	return child.c, dispResume
}

// Await is the effect operation for joining another task's outcome.
// Resolved targets resume the performer inline with the stored outcome;
// unresolved same-domain targets park the performer on the target's
// waiter queue. Constructed by AwaitBind.
type Await struct {
	kont.Phantom[kont.Resumed]
	target *cell
}

// DispatchSched handles Await. An unresolved target owned by another
// domain fails the performer with ErrForeignPromise: cross-domain joins
// need a handoff outside the core.
func (a Await) DispatchSched(d *domain, t *task) (kont.Resumed, disposition) {
	c := a.target
	if c == nil {
		panic("sched: await of zero promise")
	}
	if c.resolved() {
		return c.outcome(), dispResume
	}
	if c.owner != d {
		return ErrForeignPromise, dispFail
	}
	t.awaitOn = c
	t.node = c.waiters.Add(Right, t)
	d.waiting++
	return nil, dispPark
}

// Suspend is the effect operation for parking the current task on a
// syscall until a reactor directive signals it. Register runs against
// the domain's registry before parking; integrations that track their
// waits elsewhere may leave it nil. Fields are exported as part of the
// reactor plug-in contract.
type Suspend struct {
	kont.Phantom[kont.Resumed]
	Sys      Syscall
	Register func(*Registry)
}

// DispatchSched handles Suspend. Suspending the zero syscall or the
// same uid twice is a misuse panic.
func (s Suspend) DispatchSched(d *domain, t *task) (kont.Resumed, disposition) {
	uid := s.Sys.Uid()
	if uid == 0 {
		panic("sched: suspend of zero syscall")
	}
	if _, dup := d.parked[uid]; dup {
		panic("sched: syscall suspended twice")
	}
	if s.Register != nil {
		s.Register(&d.registry)
	}
	t.sys = s.Sys
	d.parked[uid] = t
	return nil, dispPark
}

// Yield is the effect operation for cooperative rescheduling: the task
// re-enters the ready queue at the tail and every other ready task runs
// first.
type Yield struct {
	kont.Phantom[struct{}]
}

// DispatchSched handles Yield.
func (Yield) DispatchSched(_ *domain, _ *task) (kont.Resumed, disposition) {
	return struct{}{}, dispYield
}

// Cancel is the effect operation for cancelling a task. Same-domain
// targets reach Cancelled before the performer continues; foreign
// targets receive a lock-free inbox request plus an interrupt and
// transition at their owner's next scheduling opportunity. Cancelling
// an already terminal task is a no-op. A task cancelling its own
// promise resolves it to ErrCancelled immediately; the body still runs
// to completion and its eventual outcome is rejected by the
// resolve-once cell. Constructed by CancelThen.
type Cancel struct {
	kont.Phantom[struct{}]
	target *cell
}

// DispatchSched handles Cancel.
func (c Cancel) DispatchSched(d *domain, _ *task) (kont.Resumed, disposition) {
	tc := c.target
	if tc == nil {
		panic("sched: cancel of zero promise")
	}
	if tc.owner == d {
		d.applyCancel(tc)
	} else {
		requestCancel(tc)
	}
	return struct{}{}, dispResume
}
