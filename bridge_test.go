// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched_test

import (
	"testing"
	"time"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/sched"
)

func TestReifyContToExpr(t *testing.T) {
	within(t, 5*time.Second, func() {
		// Cont body → Reify → RunExpr
		cont := sched.SpawnBind(kont.Pure(6), func(p sched.Promise[int]) kont.Eff[int] {
			return joinValue(p, func(v int) kont.Eff[int] {
				return kont.Pure(v * 7)
			})
		})
		v, err := sched.RunExpr[int](sched.Reify(cont))
		if err != nil || v != 42 {
			t.Fatalf("run got %d, %v", v, err)
		}
	})
}

func TestReflectExprToCont(t *testing.T) {
	within(t, 5*time.Second, func() {
		// Expr body → Reflect → Run
		expr := sched.ExprSpawnBind(kont.ExprReturn(6), func(p sched.Promise[int]) kont.Expr[int] {
			return sched.ExprAwaitBind(p, func(r kont.Either[error, int]) kont.Expr[int] {
				v, _ := r.GetRight()
				return kont.ExprReturn(v * 7)
			})
		})
		v, err := sched.Run[int](sched.Reflect(expr))
		if err != nil || v != 42 {
			t.Fatalf("run got %d, %v", v, err)
		}
	})
}

func TestRoundTripReifyReflect(t *testing.T) {
	within(t, 5*time.Second, func() {
		// Reflect(Reify(cont)) preserves semantics
		cont := sched.SleepThen(10*time.Millisecond,
			sched.SpawnBind(kont.Pure("tick"), func(p sched.Promise[string]) kont.Eff[string] {
				return joinValue(p, func(s string) kont.Eff[string] {
					return kont.Pure(s + "tock")
				})
			}))
		v, err := sched.Run[string](sched.Reflect(sched.Reify(cont)))
		if err != nil || v != "ticktock" {
			t.Fatalf("run got %q, %v", v, err)
		}
	})
}

func TestRoundTripReflectReify(t *testing.T) {
	within(t, 5*time.Second, func() {
		// Reify(Reflect(expr)) preserves semantics
		expr := sched.ExprYieldThen(sched.ExprSleepThen(10*time.Millisecond, kont.ExprReturn(20)))
		v, err := sched.RunExpr[int](sched.Reify(sched.Reflect(expr)))
		if err != nil || v != 20 {
			t.Fatalf("run got %d, %v", v, err)
		}
	})
}

func TestBridgeMixedWorlds(t *testing.T) {
	within(t, 5*time.Second, func() {
		// an Expr root spawning a reified Cont child
		child := sched.SleepThen(10*time.Millisecond, kont.Pure(3))
		body := sched.ExprSpawnBind(sched.Reify(child), func(p sched.Promise[int]) kont.Expr[int] {
			return sched.ExprAwaitBind(p, func(r kont.Either[error, int]) kont.Expr[int] {
				v, _ := r.GetRight()
				return kont.ExprReturn(v + 4)
			})
		})
		v, err := sched.RunExpr[int](body)
		if err != nil || v != 7 {
			t.Fatalf("run got %d, %v", v, err)
		}
	})
}
