// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sched

import "iter"

// Direction selects a Sequence end: Left is the head, Right the tail.
// FIFO order is Add(Right) / Take(Left).
type Direction uint8

const (
	Left Direction = iota
	Right
)

// Node is a direct handle to one element of a Sequence. A node belongs
// to at most one sequence at a time. After removal, or after the
// sequence is dropped, the handle is inert: Remove becomes a no-op.
type Node[T any] struct {
	prev, next *Node[T]
	seq        *Sequence[T]

	// Value is the element payload. Callers may read it after the node
	// leaves the sequence.
	Value T
}

// Sequence is a doubly linked list with O(1) insertion and removal at
// both ends and O(1) removal of an arbitrary element via its Node
// handle, even while the element sits mid-queue.
//
// The zero value is an empty sequence ready for use. Not safe for
// concurrent use: every sequence is owned by a single domain.
type Sequence[T any] struct {
	root Node[T] // sentinel: root.next is the Left end, root.prev the Right end
}

func (s *Sequence[T]) lazyInit() {
	if s.root.next == nil {
		s.root.next = &s.root
		s.root.prev = &s.root
	}
}

// Add inserts v at the given end and returns its node handle.
func (s *Sequence[T]) Add(dir Direction, v T) *Node[T] {
	s.lazyInit()
	at := &s.root
	if dir == Right {
		at = s.root.prev
	}
	n := &Node[T]{Value: v, seq: s, prev: at, next: at.next}
	at.next.prev = n
	at.next = n
	return n
}

// Take removes and returns the element at the given end.
// Returns ErrEmptyQueue when the sequence is empty.
func (s *Sequence[T]) Take(dir Direction) (T, error) {
	n, err := s.PeekNode(dir)
	if err != nil {
		var zero T
		return zero, err
	}
	s.Remove(n)
	return n.Value, nil
}

// PeekNode returns the node at the given end without removing it.
// Returns ErrEmptyQueue when the sequence is empty.
func (s *Sequence[T]) PeekNode(dir Direction) (*Node[T], error) {
	s.lazyInit()
	n := s.root.next
	if dir == Right {
		n = s.root.prev
	}
	if n == &s.root {
		return nil, ErrEmptyQueue
	}
	return n, nil
}

// Remove unlinks n in O(1). Idempotent: removing a node that is no
// longer in the sequence is a no-op.
func (s *Sequence[T]) Remove(n *Node[T]) {
	if n == nil || n.seq != s {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
	n.next = nil
	n.seq = nil
}

// Drop empties the sequence in one pass. Every node handle taken from
// it beforehand becomes inert.
func (s *Sequence[T]) Drop() {
	s.lazyInit()
	for n := s.root.next; n != &s.root; {
		next := n.next
		n.prev = nil
		n.next = nil
		n.seq = nil
		n = next
	}
	s.root.next = &s.root
	s.root.prev = &s.root
}

// Length counts the elements by walking the ring.
func (s *Sequence[T]) Length() int {
	s.lazyInit()
	c := 0
	for n := s.root.next; n != &s.root; n = n.next {
		c++
	}
	return c
}

// Iter walks element values starting from the given end.
// The sequence must not be mutated during iteration.
func (s *Sequence[T]) Iter(dir Direction) iter.Seq[T] {
	s.lazyInit()
	return func(yield func(T) bool) {
		if dir == Right {
			for n := s.root.prev; n != &s.root; n = n.prev {
				if !yield(n.Value) {
					return
				}
			}
			return
		}
		for n := s.root.next; n != &s.root; n = n.next {
			if !yield(n.Value) {
				return
			}
		}
	}
}

// ToList snapshots the element values from Left to Right.
func (s *Sequence[T]) ToList() []T {
	s.lazyInit()
	var out []T
	for n := s.root.next; n != &s.root; n = n.next {
		out = append(out, n.Value)
	}
	return out
}
