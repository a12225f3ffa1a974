// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/kont"
)

// Cell resolution states. The state machine moves pending → writing →
// resolved exactly once.
const (
	cellPending uint32 = iota
	cellWriting
	cellResolved
)

// cell is the erased single-assignment storage behind a Promise.
// value and err are written strictly between the CAS to writing and the
// store of resolved, so readers on other domains never observe a torn
// cell. All other fields are touched only by the owning domain.
type cell struct {
	state atomix.Uint32
	value kont.Resumed
	err   error

	owner   *domain
	task    *task
	waiters Sequence[*task]
}

// resolve attempts the single assignment. Returns false when the cell
// is already resolved or being resolved; the stored outcome is never
// overwritten.
func (c *cell) resolve(v kont.Resumed, err error) bool {
	if !c.state.CompareAndSwap(cellPending, cellWriting) {
		return false
	}
	c.value = v
	c.err = err
	c.state.Store(cellResolved)
	return true
}

// resolved reports whether the outcome is readable.
func (c *cell) resolved() bool {
	return c.state.Load() == cellResolved
}

// outcome reads the resolved cell as an Either. Callers must observe
// resolved first.
func (c *cell) outcome() outcome {
	if c.err != nil {
		return kont.Left[error, kont.Resumed](c.err)
	}
	return kont.Right[error](c.value)
}

// Promise is the typed handle on a task's eventual outcome, obtained
// from SpawnBind and consumed by AwaitBind and CancelThen. The zero
// Promise is not valid.
type Promise[T any] struct {
	c *cell
}
