// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/lfq"
)

// inboxCapacity is the bounded capacity of the cross-domain
// cancellation ring.
const inboxCapacity = 64

// domain owns one scheduler instance: ready queue, parked tables,
// registry, and reactor. Every field except the inbox and closed flag
// is touched only by the domain's own goroutine; cross-domain requests
// arrive through the lock-free inbox paired with a reactor interrupt.
type domain struct {
	ready    Sequence[*task]
	parked   map[Uid]*task
	registry Registry
	reactor  Reactor

	// waiting counts tasks parked on unresolved cells.
	waiting int
	// cancelled accumulates purged uids for the next Select.
	cancelled map[Uid]struct{}

	inbox  lfq.MPSC[*cell]
	closed atomix.Uint32
}

// Option configures a domain created by Run or RunExpr.
type Option func(*config)

type config struct {
	quantum time.Duration
	reactor func(*Registry) Reactor
}

// WithQuantum sets the polling quantum, the upper bound on any timed
// reactor wait. Values <= 0 keep the default of 100ms.
func WithQuantum(q time.Duration) Option {
	return func(c *config) {
		if q > 0 {
			c.quantum = q
		}
	}
}

// WithReactor installs a custom reactor. maker receives the domain's
// registry; the returned reactor owns every external wait source and
// must honor the Reactor contract for Interrupt and cancelled uids.
func WithReactor(maker func(*Registry) Reactor) Option {
	return func(c *config) {
		c.reactor = maker
	}
}

func newDomain(opts ...Option) *domain {
	cfg := config{quantum: defaultQuantum}
	for _, o := range opts {
		o(&cfg)
	}
	d := &domain{
		parked:    make(map[Uid]*task),
		cancelled: make(map[Uid]struct{}),
	}
	d.inbox.Init(inboxCapacity)
	if cfg.reactor != nil {
		d.reactor = cfg.reactor(&d.registry)
	} else {
		d.reactor = NewTimerReactor(&d.registry, cfg.quantum)
	}
	return d
}

// spawn allocates the cell and task for body and appends the task at
// the ready tail.
func (d *domain) spawn(body kont.Expr[outcome]) *task {
	c := &cell{owner: d}
	t := &task{c: c, body: body}
	c.task = t
	t.node = d.ready.Add(Right, t)
	return t
}

// readmit queues t at the ready tail with v as its pending resumption
// value.
func (d *domain) readmit(t *task, v kont.Resumed) {
	t.resume = v
	t.node = d.ready.Add(Right, t)
}

// settle records t's terminal outcome and re-admits every awaiter, each
// carrying the outcome as its resumption value. The cell resolves at
// most once: a settle after the first keeps the stored outcome.
func (d *domain) settle(t *task, v kont.Resumed, err error) {
	if !t.c.resolve(v, err) {
		return
	}
	for {
		w, e := t.c.waiters.Take(Left)
		if e != nil {
			break
		}
		w.node = nil
		w.awaitOn = nil
		d.waiting--
		d.readmit(w, t.c.outcome())
	}
}

// applyCancel transitions the task behind c to Cancelled: O(1) excision
// from whichever structure holds it, eager registry removal plus a
// purge entry for the next Select, suspension discard, outcome
// resolution, awaiter re-admission. Idempotent: a resolved cell is left
// untouched, so cancelling a finished task keeps the finished value.
func (d *domain) applyCancel(c *cell) {
	if c.resolved() {
		return
	}
	t := c.task
	if t.node != nil {
		if s := t.node.seq; s != nil {
			s.Remove(t.node)
		}
		t.node = nil
	}
	if t.awaitOn != nil {
		t.awaitOn = nil
		d.waiting--
	}
	if uid := t.sys.Uid(); uid != 0 {
		delete(d.parked, uid)
		d.registry.Remove(uid)
		d.cancelled[uid] = struct{}{}
		t.sys = Syscall{}
	}
	if t.susp != nil {
		t.susp.Discard()
		t.susp = nil
	}
	d.settle(t, nil, ErrCancelled)
}

// drainInbox applies every pending cross-domain cancellation request.
func (d *domain) drainInbox() {
	for {
		c, err := d.inbox.Dequeue()
		if err != nil {
			return
		}
		d.applyCancel(c)
	}
}

// takeCancelled hands the accumulated purge set to one Select and
// resets it.
func (d *domain) takeCancelled() map[Uid]struct{} {
	if len(d.cancelled) == 0 {
		return nil
	}
	c := d.cancelled
	d.cancelled = make(map[Uid]struct{})
	return c
}

// requestCancel posts a cancellation for a task owned by another
// domain: a lock-free inbox push followed by a reactor interrupt to
// abort a blocked Select. Backs off while the ring is full; gives up
// once the target resolves or its domain shuts down. The owner applies
// the transition at its next scheduling opportunity.
func requestCancel(c *cell) {
	d := c.owner
	req := c
	var bo iox.Backoff
	for {
		if c.resolved() || d.closed.Load() != 0 {
			return
		}
		if err := d.inbox.Enqueue(&req); err == nil {
			break
		}
		bo.Wait()
	}
	d.reactor.Interrupt()
}
