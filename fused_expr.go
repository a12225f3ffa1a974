// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"time"

	"code.hybscloud.com/kont"
)

// Pre-allocated erased operations and frames to eliminate heap escapes
// when boxing empty structs into any/kont.Frame during Expr-world
// execution.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprYield       kont.Erased = Yield{}
)

// identityResume is the identity resume function for EffectFrame
// construction. Named function produces a static function value,
// consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

func spawnBindUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(Promise[T]) kont.Expr[B])
	result := f(Promise[T]{c: current.(*cell)})
	return kont.Erased(result.Value), result.Frame
}

// ExprSpawnBind spawns body as a concurrent task and passes its promise
// to f. Fuses ExprPerform(Spawn) + ExprBind.
func ExprSpawnBind[T, B any](body kont.Expr[T], f func(Promise[T]) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = spawnBindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Spawn{body: box(body)}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

func awaitBindUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(kont.Either[error, T]) kont.Expr[B])
	result := f(awaitOutcome[T](current))
	return kont.Erased(result.Value), result.Frame
}

// ExprAwaitBind joins the task behind p and passes its outcome to f.
// Fuses ExprPerform(Await) + ExprBind.
func ExprAwaitBind[T, B any](p Promise[T], f func(kont.Either[error, T]) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = awaitBindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Await{target: p.c}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprYieldThen re-queues the current task at the ready tail and then
// continues with next. Fuses ExprPerform(Yield) + ExprThen.
func ExprYieldThen[B any](next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprYield
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprCancelThen cancels the task behind p and then continues with
// next. Fuses ExprPerform(Cancel) + ExprThen.
func ExprCancelThen[T, B any](p Promise[T], next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Cancel{target: p.c}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

func suspendBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(kont.Resumed) kont.Expr[B])
	result := f(current)
	return kont.Erased(result.Value), result.Frame
}

// ExprSuspendBind parks the current task on sys until a reactor
// directive signals it, then passes the directive's result to f.
// Fuses ExprPerform(Suspend) + ExprBind.
func ExprSuspendBind[B any](sys Syscall, register func(*Registry), f func(kont.Resumed) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = suspendBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Suspend{Sys: sys, Register: register}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprSleepThen parks the current task for at least d and then
// continues with next. Expr-world variant of SleepThen.
func ExprSleepThen[B any](d time.Duration, next kont.Expr[B]) kont.Expr[B] {
	if d < 0 {
		d = 0
	}
	sys := RegisterSyscall()
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Suspend{
		Sys: sys,
		Register: func(r *Registry) {
			r.Register(sys, d, struct{}{})
		},
	}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}
