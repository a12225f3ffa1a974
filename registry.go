// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import (
	"cmp"
	"slices"
	"time"

	"code.hybscloud.com/kont"
)

// Registration is one parked syscall's registry entry. Remaining is the
// time left until its deadline; negative means no deadline, so only an
// external directive can wake the entry. Payload is the value the
// parked task resumes with when the deadline expires.
type Registration struct {
	Sys       Syscall
	Remaining time.Duration
	Payload   kont.Resumed

	stamp uint64
}

// Registry is the domain-local table of registered syscalls. It is
// owned by exactly one domain and never shared, so no method locks.
// The zero value is ready for use.
type Registry struct {
	entries map[Uid]*Registration
	stamp   uint64
}

// Register records a registration for sys. A nil payload is stored as
// the empty value. Registering a uid twice is a misuse panic.
func (r *Registry) Register(sys Syscall, remaining time.Duration, payload kont.Resumed) {
	if r.entries == nil {
		r.entries = make(map[Uid]*Registration)
	}
	if _, dup := r.entries[sys.Uid()]; dup {
		panic("sched: syscall registered twice")
	}
	if payload == nil {
		payload = struct{}{}
	}
	r.stamp++
	r.entries[sys.Uid()] = &Registration{
		Sys:       sys,
		Remaining: remaining,
		Payload:   payload,
		stamp:     r.stamp,
	}
}

// Remove deletes the entry for uid if present.
func (r *Registry) Remove(uid Uid) {
	delete(r.entries, uid)
}

// Purge deletes every entry named in cancelled.
func (r *Registry) Purge(cancelled map[Uid]struct{}) {
	for uid := range cancelled {
		delete(r.entries, uid)
	}
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Earliest returns the smallest remaining deadline. ok is false when no
// entry carries a deadline.
func (r *Registry) Earliest() (time.Duration, bool) {
	var earliest time.Duration
	found := false
	for _, e := range r.entries {
		if e.Remaining < 0 {
			continue
		}
		if !found || e.Remaining < earliest {
			earliest = e.Remaining
			found = true
		}
	}
	return earliest, found
}

// Advance decrements every deadline-bearing entry by elapsed, removes
// the entries whose remaining time reached zero, and returns their wake
// directives. Deadlines expiring together wake in registration order.
func (r *Registry) Advance(elapsed time.Duration) []Signal {
	var expired []*Registration
	for _, e := range r.entries {
		if e.Remaining < 0 {
			continue
		}
		e.Remaining -= elapsed
		if e.Remaining <= 0 {
			expired = append(expired, e)
		}
	}
	if expired == nil {
		return nil
	}
	slices.SortFunc(expired, func(a, b *Registration) int {
		return cmp.Compare(a.stamp, b.stamp)
	})
	sigs := make([]Signal, len(expired))
	for i, e := range expired {
		delete(r.entries, e.Sys.Uid())
		sigs[i] = Signal{Uid: e.Sys.Uid(), Result: e.Payload}
	}
	return sigs
}
