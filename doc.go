// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sched provides a cooperative task scheduler via algebraic effects
// on [code.hybscloud.com/kont].
//
// Task bodies are plain kont computations; spawning, joining, sleeping and
// cancellation are typed operations dispatched on the domain running the task.
//
// # Architecture
//
//   - Domain: One scheduler instance per [Run] call, owning a ready [Sequence], a parked table, a [Registry], and a [Reactor]. Domains share nothing; run them on separate goroutines for parallelism.
//   - Stepping: Tasks advance one effect at a time on affine [code.hybscloud.com/kont.Suspension] handles; panics and [code.hybscloud.com/kont.ThrowError] failures are confined to the failing task.
//   - Cancellation: Lock-free from any domain — a bounded MPSC ring via [code.hybscloud.com/lfq] plus a coalescing [Interrupt], applied by the owner at its next scheduling opportunity.
//   - Timekeeping: The built-in reactor waits up to min(earliest deadline, quantum) and decrements registrations by elapsed wall time; the reactor is the sole timekeeper.
//
// # API Topologies
//
//   - Operations: [Spawn], [Await], [Suspend], [Yield], [Cancel]. [Suspend] and [Signal] form the reactor plug-in contract.
//   - Cont-world: [SpawnBind], [AwaitBind], [YieldThen], [CancelThen], [SleepThen], [SuspendBind].
//   - Expr-world: Zero-allocation variants like [ExprSpawnBind], [ExprAwaitBind], etc. Bridge via [code.hybscloud.com/kont.Reify] and [code.hybscloud.com/kont.Reflect].
//   - Queueing: [Sequence] is the doubly linked ready queue with O(1) removal via [Node] handles; exported for reactor integrations that keep their own wait queues.
//
// # Integration
//
//   - Syscalls: [RegisterSyscall] allocates a [Syscall]; [SuspendBind] parks on it; the reactor returns a [Signal] to wake it. Signaling a consumed uid is [ErrInvalidSyscall] and fatal to the domain.
//   - Reactors: [WithReactor] replaces the deadline reactor. Select may block up to its wait bound; [Interrupt] aborts a blocked Select; Finalize runs exactly once at teardown.
//   - Outcomes: [Run] returns the root task's value or failure; awaiters observe sibling outcomes as [code.hybscloud.com/kont.Either] (Left is the failure, [ErrCancelled] for cancelled tasks).
//
// # Example
//
//	sum, err := sched.Run(sched.SpawnBind(
//		sched.SleepThen(10*time.Millisecond, kont.Pure(40)),
//		func(p sched.Promise[int]) kont.Eff[int] {
//			return sched.AwaitBind(p, func(r kont.Either[error, int]) kont.Eff[int] {
//				v, _ := r.GetRight()
//				return kont.Pure(v + 2)
//			})
//		},
//	))
package sched
