// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import "code.hybscloud.com/atomix"

// Interrupt is the cross-domain wake primitive: a coalescing one-slot
// marker. Post never blocks and any number of posts before a drain
// collapse into one wake, so a blocked reactor observes at most one
// pending interrupt. The channel is never closed; after Finalize a late
// post from another domain is a no-op instead of a panic.
type Interrupt struct {
	ch   chan struct{}
	done atomix.Uint32
}

// NewInterrupt creates an armed interrupt.
func NewInterrupt() *Interrupt {
	return &Interrupt{ch: make(chan struct{}, 1)}
}

// Post makes the current or next wait on C return. Non-blocking,
// callable from any goroutine.
func (i *Interrupt) Post() {
	if i.done.Load() != 0 {
		return
	}
	select {
	case i.ch <- struct{}{}:
	default:
	}
}

// C is the wait side. Receiving drains the coalesced marker.
func (i *Interrupt) C() <-chan struct{} {
	return i.ch
}

// Finalize disarms the interrupt. Effective once; later calls and later
// posts are no-ops.
func (i *Interrupt) Finalize() {
	i.done.CompareAndSwap(0, 1)
}
