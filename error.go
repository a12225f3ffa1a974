// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"errors"
	"fmt"
)

// ErrEmptyQueue reports Take or PeekNode on an empty Sequence.
var ErrEmptyQueue = errors.New("sched: empty queue")

// ErrInvalidSyscall reports a wake directive for a uid that is unknown
// or already consumed. Domain-fatal: the uid space is append-only, so
// it can only mean a double signal or a signal for a syscall that was
// never suspended.
var ErrInvalidSyscall = errors.New("sched: invalid syscall")

// ErrCancelled is the outcome of a cancelled task, distinct from task
// failure. Awaiters observe it as the Left branch of their outcome.
var ErrCancelled = errors.New("sched: cancelled")

// ErrDeadlock reports a domain whose remaining tasks all await promises
// that nothing can resolve.
var ErrDeadlock = errors.New("sched: deadlock")

// ErrForeignPromise reports an await of an unresolved promise owned by
// another domain. Cross-domain joins need a handoff outside the core;
// resolved foreign promises continue inline.
var ErrForeignPromise = errors.New("sched: await of foreign promise")

// ErrReactor classifies a Select failure. The domain finalizes its
// reactor and propagates; no recovery is attempted.
var ErrReactor = errors.New("sched: reactor failure")

// PanicError wraps a panic recovered from a task body. The panic is
// confined to the task: it becomes the task's failure outcome and never
// unwinds the scheduler loop.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("sched: task panic: %v", e.Value)
}

func invalidSyscall(uid Uid) error {
	return fmt.Errorf("%w: uid %d", ErrInvalidSyscall, uid)
}

func reactorFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrReactor, err)
}
