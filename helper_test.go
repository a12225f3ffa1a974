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

// within fails the test when fn has not returned after d. Guards loop
// tests against a wedged domain. fn may call t.Fatalf: its Goexit runs
// the deferred close, so the failure surfaces without waiting out d.
func within(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("timed out")
	}
}

// joinValue awaits p and continues with its Right value; a Left outcome
// surfaces as a re-thrown task failure.
func joinValue[T, B any](p sched.Promise[T], f func(T) kont.Eff[B]) kont.Eff[B] {
	return sched.AwaitBind(p, func(r kont.Either[error, T]) kont.Eff[B] {
		if err, isErr := r.GetLeft(); isErr {
			return kont.ThrowError[error, B](err)
		}
		v, _ := r.GetRight()
		return f(v)
	})
}

// joinErr awaits p and continues with its Left error (nil when the task
// finished normally).
func joinErr[T, B any](p sched.Promise[T], f func(error) kont.Eff[B]) kont.Eff[B] {
	return sched.AwaitBind(p, func(r kont.Either[error, T]) kont.Eff[B] {
		err, _ := r.GetLeft()
		return f(err)
	})
}

// mark records name in order at the step the surrounding task evaluates
// it. Ordering tests reconstruct the interleaving from the records.
func mark(order *[]string, name string) kont.Eff[struct{}] {
	return kont.Bind(kont.Pure(struct{}{}), func(v struct{}) kont.Eff[struct{}] {
		*order = append(*order, name)
		return kont.Pure(v)
	})
}
