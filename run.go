// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"code.hybscloud.com/kont"
)

// Run executes body as the root task of a fresh domain on the calling
// goroutine and returns once the domain is quiescent: the ready queue
// empty, no task parked, and the registry empty. Every spawned task,
// awaited or not, reaches a terminal state first.
//
// The returned error is the root task's failure, or a domain-fatal
// condition (ErrDeadlock, ErrInvalidSyscall, a reactor failure). True
// parallelism comes from separate Run calls on separate goroutines;
// domains share nothing but promise cells and cancellation requests.
func Run[T any](body kont.Eff[T], opts ...Option) (T, error) {
	return RunExpr[T](Reify(body), opts...)
}

// RunExpr is Run for Expr-world bodies.
func RunExpr[T any](body kont.Expr[T], opts ...Option) (T, error) {
	d := newDomain(opts...)
	root := d.spawn(box(body))
	err := d.run()
	d.closed.Store(1)
	d.reactor.Finalize()
	if err != nil {
		var zero T
		return zero, err
	}
	out := root.c.outcome()
	if l, isErr := out.GetLeft(); isErr {
		var zero T
		return zero, l
	}
	r, _ := out.GetRight()
	v, _ := r.(T)
	return v, nil
}

// run drives the domain to quiescence: apply pending cancellations,
// drain the ready queue, select on the reactor, repeat.
func (d *domain) run() error {
	for {
		d.drainInbox()
		for {
			t, err := d.ready.Take(Left)
			if err != nil {
				break
			}
			t.node = nil
			d.step(t)
			d.drainInbox()
		}
		if len(d.parked) == 0 && d.registry.Len() == 0 {
			if d.waiting > 0 {
				return ErrDeadlock
			}
			return nil
		}
		sigs, err := d.reactor.Select(true, d.takeCancelled())
		if err != nil {
			return reactorFailure(err)
		}
		if err := d.apply(sigs); err != nil {
			return err
		}
	}
}

// step runs one task until it parks, yields, or reaches a terminal
// state. Immediate operations (Spawn, Cancel, resolved Await, error
// effects) resume inline without a queue round trip.
func (d *domain) step(t *task) {
	var result outcome
	var susp *kont.Suspension[outcome]
	if !t.launched {
		t.launched = true
		body := t.body
		t.body = kont.Expr[outcome]{}
		result, susp = stepLaunch(body)
	} else {
		s := t.susp
		t.susp = nil
		v := t.resume
		t.resume = nil
		result, susp = stepResume(s, v)
	}

	for {
		if susp == nil {
			if l, isErr := result.GetLeft(); isErr {
				d.settle(t, nil, l)
			} else {
				r, _ := result.GetRight()
				d.settle(t, r, nil)
			}
			return
		}
		op := susp.Op()
		if sop, ok := op.(schedDispatcher); ok {
			v, disp := sop.DispatchSched(d, t)
			switch disp {
			case dispResume:
				result, susp = stepResume(susp, v)
				continue
			case dispYield:
				t.susp = susp
				d.readmit(t, v)
				return
			case dispPark:
				t.susp = susp
				return
			default: // dispFail
				susp.Discard()
				d.settle(t, nil, v.(error))
				return
			}
		}
		if eop, ok := op.(interface {
			DispatchError(ctx *kont.ErrorContext[error]) (kont.Resumed, bool)
		}); ok {
			var ectx kont.ErrorContext[error]
			v, _ := eop.DispatchError(&ectx)
			if ectx.HasErr {
				susp.Discard()
				d.settle(t, nil, ectx.Err)
				return
			}
			result, susp = stepResume(susp, v)
			continue
		}
		panic("sched: unhandled effect in scheduler")
	}
}

// apply re-admits or fails the parked task named by each directive, in
// directive order. A directive for an unknown uid is domain-fatal.
func (d *domain) apply(sigs []Signal) error {
	for _, sig := range sigs {
		t, ok := d.parked[sig.Uid]
		if !ok {
			return invalidSyscall(sig.Uid)
		}
		delete(d.parked, sig.Uid)
		d.registry.Remove(sig.Uid)
		t.sys = Syscall{}
		if sig.Err != nil {
			if t.susp != nil {
				t.susp.Discard()
				t.susp = nil
			}
			d.settle(t, nil, sig.Err)
			continue
		}
		v := sig.Result
		if v == nil {
			v = struct{}{}
		}
		d.readmit(t, v)
	}
	return nil
}
