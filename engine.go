// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import "code.hybscloud.com/kont"

// outcome is the stepped result type of every task body: Right carries
// the boxed return value, Left the failure.
type outcome = kont.Either[error, kont.Resumed]

// box erases a typed body into the outcome world the scheduler steps.
func box[T any](body kont.Expr[T]) kont.Expr[outcome] {
	return kont.ExprMap(body, func(v T) outcome {
		return kont.Right[error, kont.Resumed](v)
	})
}

// stepLaunch evaluates a task body until its first suspension,
// completion, or failure. A panic in the body is captured as a Failed
// outcome and never unwinds the scheduler loop.
func stepLaunch(body kont.Expr[outcome]) (result outcome, susp *kont.Suspension[outcome]) {
	defer func() {
		if r := recover(); r != nil {
			result = kont.Left[error, kont.Resumed](&PanicError{Value: r})
			susp = nil
		}
	}()
	return kont.StepExpr(body)
}

// stepResume resumes a suspension with v and evaluates to the next
// suspension or completion. The suspension is consumed either way;
// panics in continuation frames are captured like stepLaunch.
func stepResume(susp *kont.Suspension[outcome], v kont.Resumed) (result outcome, next *kont.Suspension[outcome]) {
	defer func() {
		if r := recover(); r != nil {
			result = kont.Left[error, kont.Resumed](&PanicError{Value: r})
			next = nil
		}
	}()
	return susp.Resume(v)
}
