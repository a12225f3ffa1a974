// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched_test

import (
	"slices"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/sched"
)

// sleeper sleeps for d, records name, and finishes with name.
func sleeper(order *[]string, name string, d time.Duration) kont.Eff[string] {
	return sched.SleepThen(d, kont.Then(mark(order, name), kont.Pure(name)))
}

// joinBoth awaits two promises left to right.
func joinBoth[A, B any](pa sched.Promise[A], pb sched.Promise[B]) kont.Eff[struct{}] {
	return joinValue(pa, func(A) kont.Eff[struct{}] {
		return joinValue(pb, func(B) kont.Eff[struct{}] {
			return kont.Pure(struct{}{})
		})
	})
}

func TestSleepWakesInDeadlineOrder(t *testing.T) {
	within(t, 5*time.Second, func() {
		var order []string
		// spawned first but with the later deadline
		body := sched.SpawnBind(sleeper(&order, "late", 80*time.Millisecond),
			func(pa sched.Promise[string]) kont.Eff[struct{}] {
				return sched.SpawnBind(sleeper(&order, "early", 40*time.Millisecond),
					func(pb sched.Promise[string]) kont.Eff[struct{}] {
						return joinBoth(pa, pb)
					})
			})
		if _, err := sched.Run[struct{}](body); err != nil {
			t.Fatalf("run: %v", err)
		}
		if want := []string{"early", "late"}; !slices.Equal(order, want) {
			t.Fatalf("wake order got %v, want %v", order, want)
		}
	})
}

func TestSleepersRunConcurrently(t *testing.T) {
	within(t, 5*time.Second, func() {
		var order []string
		body := sched.SpawnBind(sleeper(&order, "a", 100*time.Millisecond),
			func(pa sched.Promise[string]) kont.Eff[struct{}] {
				return sched.SpawnBind(sleeper(&order, "b", 200*time.Millisecond),
					func(pb sched.Promise[string]) kont.Eff[struct{}] {
						return joinBoth(pa, pb)
					})
			})
		begin := time.Now()
		_, err := sched.Run[struct{}](body)
		elapsed := time.Since(begin)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		// both registrations share every reactor wait: total tracks the
		// maximum deadline, not the sum
		if elapsed < 200*time.Millisecond {
			t.Fatalf("run took %v, want >= 200ms", elapsed)
		}
		if elapsed >= 300*time.Millisecond {
			t.Fatalf("run took %v, sleeps were serialized", elapsed)
		}
	})
}

func TestSleepTieBreakSpawnOrder(t *testing.T) {
	within(t, 5*time.Second, func() {
		var order []string
		body := sched.SpawnBind(sleeper(&order, "first", 50*time.Millisecond),
			func(pa sched.Promise[string]) kont.Eff[struct{}] {
				return sched.SpawnBind(sleeper(&order, "second", 50*time.Millisecond),
					func(pb sched.Promise[string]) kont.Eff[struct{}] {
						return joinBoth(pa, pb)
					})
			})
		if _, err := sched.Run[struct{}](body); err != nil {
			t.Fatalf("run: %v", err)
		}
		// identical deadlines wake in registration order
		if want := []string{"first", "second"}; !slices.Equal(order, want) {
			t.Fatalf("wake order got %v, want %v", order, want)
		}
	})
}

func TestSleepZero(t *testing.T) {
	within(t, 5*time.Second, func() {
		v, err := sched.Run[int](sched.SleepThen(0, kont.Pure(9)))
		if err != nil || v != 9 {
			t.Fatalf("run got %d, %v", v, err)
		}
	})
}

func TestSleepNegativeClamps(t *testing.T) {
	within(t, 5*time.Second, func() {
		v, err := sched.Run[int](sched.SleepThen(-time.Hour, kont.Pure(3)))
		if err != nil || v != 3 {
			t.Fatalf("run got %d, %v", v, err)
		}
	})
}

func TestSleepSequentialAccumulates(t *testing.T) {
	within(t, 5*time.Second, func() {
		body := sched.SleepThen(40*time.Millisecond,
			sched.SleepThen(40*time.Millisecond, kont.Pure("twice")))
		begin := time.Now()
		v, err := sched.Run[string](body)
		elapsed := time.Since(begin)
		if err != nil || v != "twice" {
			t.Fatalf("run got %q, %v", v, err)
		}
		// two sleeps of one task are sequential, unlike two tasks'
		if elapsed < 80*time.Millisecond {
			t.Fatalf("run took %v, want >= 80ms", elapsed)
		}
	})
}

func TestDomainsScheduleIndependently(t *testing.T) {
	within(t, 5*time.Second, func() {
		run := func() (string, error) {
			var order []string
			body := sched.SpawnBind(sleeper(&order, "w", 150*time.Millisecond),
				func(p sched.Promise[string]) kont.Eff[string] {
					return sched.SleepThen(75*time.Millisecond, joinValue(p, func(s string) kont.Eff[string] {
						return kont.Pure(s)
					}))
				})
			return sched.Run[string](body)
		}

		var wg sync.WaitGroup
		results := make([]string, 2)
		errs := make([]error, 2)
		begin := time.Now()
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], errs[i] = run()
			}()
		}
		wg.Wait()
		elapsed := time.Since(begin)

		for i := range results {
			if errs[i] != nil || results[i] != "w" {
				t.Fatalf("domain %d got %q, %v", i, results[i], errs[i])
			}
		}
		// one goroutine per domain: the two 150ms schedules overlap
		if elapsed < 150*time.Millisecond {
			t.Fatalf("domains finished in %v, want >= 150ms", elapsed)
		}
		if elapsed >= 300*time.Millisecond {
			t.Fatalf("domains took %v, they were serialized", elapsed)
		}
	})
}
