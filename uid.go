// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import "code.hybscloud.com/atomix"

// Uid is a monotonically increasing syscall identifier.
// Each call to RegisterSyscall assigns the next value; uid 0 is never
// assigned and marks the zero Syscall as invalid.
type Uid = uint32

// uidCounter is the global monotonic counter for syscall uids.
var uidCounter atomix.Uint32

// Syscall names one suspension point. A syscall belongs to the domain
// that suspends on it and is signaled at most once.
type Syscall struct {
	uid Uid
}

// RegisterSyscall allocates the next syscall identifier. Pure: no
// scheduler state changes until the Suspend operation performs.
// Callable from any goroutine.
func RegisterSyscall() Syscall {
	return Syscall{uid: uidCounter.Add(1)}
}

// Uid returns the stable identifier used as the registry and
// cancellation key.
func (s Syscall) Uid() Uid {
	return s.uid
}
