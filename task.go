// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import "code.hybscloud.com/kont"

// task is the scheduler-side state of one spawned computation. The
// lifecycle moves one way: launch, then alternating run and suspend,
// then exactly one terminal transition recorded in the cell (finished,
// failed, or cancelled). Fields are owned by the task's domain;
// cross-domain interaction goes through the cell only.
type task struct {
	c *cell

	// body holds the unlaunched computation; cleared at first step.
	body kont.Expr[outcome]
	// susp is the one-shot resume handle while suspended.
	susp *kont.Suspension[outcome]
	// resume is the pending resumption value while queued ready.
	resume kont.Resumed

	// node is the live queue handle (ready queue or a cell's waiter
	// queue); the O(1) cancellation excision point.
	node *Node[*task]
	// sys keys the parked table and registry while syscall-parked.
	sys Syscall
	// awaitOn is the cell this task is parked on while awaiting.
	awaitOn *cell

	launched bool
}
