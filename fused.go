// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"time"

	"code.hybscloud.com/kont"
)

// SpawnBind spawns body as a concurrent task and passes its promise to
// f. The child body is single-use. Fuses Perform(Spawn) + Bind.
func SpawnBind[T, B any](body kont.Eff[T], f func(Promise[T]) kont.Eff[B]) kont.Eff[B] {
	op := Spawn{body: box(Reify(body))}
	return kont.Bind(kont.Perform(op), func(v kont.Resumed) kont.Eff[B] {
		return f(Promise[T]{c: v.(*cell)})
	})
}

// AwaitBind joins the task behind p and passes its outcome to f: Right
// carries the task's value, Left its failure (ErrCancelled for a
// cancelled task). Already-resolved targets continue inline without a
// scheduler round trip. Fuses Perform(Await) + Bind.
func AwaitBind[T, B any](p Promise[T], f func(kont.Either[error, T]) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Await{target: p.c}), func(v kont.Resumed) kont.Eff[B] {
		return f(awaitOutcome[T](v))
	})
}

// awaitOutcome narrows the erased outcome carried by an await
// resumption to the promise's value type.
func awaitOutcome[T any](v kont.Resumed) kont.Either[error, T] {
	e := v.(outcome)
	if l, isErr := e.GetLeft(); isErr {
		return kont.Left[error, T](l)
	}
	r, _ := e.GetRight()
	t, _ := r.(T)
	return kont.Right[error](t)
}

// YieldThen re-queues the current task behind every other ready task
// and then continues with next. Fuses Perform(Yield) + Then.
func YieldThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Yield{}), next)
}

// CancelThen cancels the task behind p and then continues with next.
// A same-domain target is Cancelled before next runs; cancelling the
// current task's own promise resolves it without stopping the body.
// Fuses Perform(Cancel) + Then.
func CancelThen[T, B any](p Promise[T], next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Cancel{target: p.c}), next)
}

// SuspendBind parks the current task on sys until a reactor directive
// signals it, then passes the directive's result to f. register runs
// against the domain registry before parking. Fuses Perform(Suspend) +
// Bind.
func SuspendBind[B any](sys Syscall, register func(*Registry), f func(kont.Resumed) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Suspend{Sys: sys, Register: register}), f)
}

// SleepThen parks the current task for at least d and then continues
// with next. Built on the public syscall protocol: a fresh syscall
// registered with a deadline and an empty payload, woken by the
// reactor. Calls with d <= 0 wake at the next select.
func SleepThen[B any](d time.Duration, next kont.Eff[B]) kont.Eff[B] {
	if d < 0 {
		d = 0
	}
	sys := RegisterSyscall()
	return kont.Then(kont.Perform(Suspend{
		Sys: sys,
		Register: func(r *Registry) {
			r.Register(sys, d, struct{}{})
		},
	}), next)
}
