// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package sched_test

import "testing"

// skipRace skips tests that transfer cancellation requests through the
// lfq MPSC inbox. The race detector tracks per-variable happens-before
// and cannot see the ring's cross-variable memory ordering
// (store-release on data, load-acquire on index), producing false
// positives. Empty-inbox polling does not touch data slots and stays
// race-clean.
func skipRace(tb testing.TB) {
	tb.Helper()
	tb.Skip("skip: MPSC inbox uses cross-variable memory ordering")
}
