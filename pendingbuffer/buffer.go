// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pendingbuffer implements the bounded, double-ended priority
// buffer (component E): a heap ordered by (priority, sender stake) with
// automatic eviction of the worst element on overflow, paired with a hash
// index that deduplicates by message hash and keeps the two structures in
// lockstep.
package pendingbuffer

import (
	"github.com/WBORSA/solana/logs"
	"github.com/WBORSA/solana/record"
	"github.com/WBORSA/solana/txmodel"
)

// Buffer is a bounded, double-ended priority container of *record.Envelope
// values. It is not safe for concurrent use; callers that need concurrent
// access must synchronize externally.
type Buffer struct {
	heap     minMaxHeap
	index    map[txmodel.Hash]*record.Envelope
	capacity int
}

// WithCapacity returns an empty Buffer bounded to capacity elements.
func WithCapacity(capacity int) *Buffer {
	return &Buffer{
		index:    make(map[txmodel.Hash]*record.Envelope, capacity),
		capacity: capacity,
	}
}

// FromIter builds a Buffer bounded to capacity, inserting every envelope
// produced by seq via Push. Envelopes beyond capacity, or duplicates, are
// handled exactly as repeated Push calls would handle them.
func FromIter(seq []*record.Envelope, capacity int) *Buffer {
	b := WithCapacity(capacity)
	for _, e := range seq {
		b.Push(e)
	}
	return b
}

// Len returns the number of envelopes currently resident.
func (b *Buffer) Len() int { return b.heap.Len() }

// IsEmpty reports whether the buffer holds no envelopes.
func (b *Buffer) IsEmpty() bool { return b.heap.Len() == 0 }

// Capacity returns the buffer's maximum resident element count.
func (b *Buffer) Capacity() int { return b.capacity }

// Clear removes every envelope from the buffer.
func (b *Buffer) Clear() {
	b.heap.items = nil
	b.index = make(map[txmodel.Hash]*record.Envelope, b.capacity)
}

// Push offers e to the buffer.
//
// If e's message hash already has a resident envelope, Push is a strict
// no-op and returns nil: the new arrival is treated as a duplicate and
// never replaces or bumps the priority of what's already there.
//
// If the buffer has spare capacity, e is inserted and nil is returned.
//
// If the buffer is full, e is compared against the current minimum. If e
// is not strictly better than the minimum, e itself is rejected and
// returned unchanged — the buffer is left untouched. Otherwise the
// minimum is evicted, e is inserted in its place, and the evicted
// envelope is returned.
func (b *Buffer) Push(e *record.Envelope) *record.Envelope {
	hash := e.Record.MessageHash
	if _, exists := b.index[hash]; exists {
		return nil
	}

	if b.heap.Len() < b.capacity {
		b.index[hash] = e
		b.heap.push(e)
		return nil
	}

	return b.pushPopMin(e)
}

// pushPopMin implements Push's full-buffer path: a push that pops the
// current minimum, unless the incoming envelope is itself the minimum, in
// which case it is rejected without mutating the buffer.
func (b *Buffer) pushPopMin(e *record.Envelope) *record.Envelope {
	current := b.heap.min()
	if current == nil || !less(current, e) {
		// e is not strictly better than the current minimum (it ties or
		// loses), so e is rejected and the buffer is unchanged.
		logs.Buffer().Tracef("rejected incoming envelope at capacity, priority %d", e.Record.Priority)
		return e
	}

	popped := b.heap.popMin()
	delete(b.index, popped.Record.MessageHash)
	b.index[e.Record.MessageHash] = e
	b.heap.push(e)
	logs.Buffer().Tracef("evicted envelope priority %d for incoming priority %d", popped.Record.Priority, e.Record.Priority)
	return popped
}

// PopMax removes and returns the highest-priority envelope, or nil if the
// buffer is empty. It panics if the popped envelope has no index entry,
// since that means the heap and index have fallen out of step.
func (b *Buffer) PopMax() *record.Envelope {
	e := b.heap.popMax()
	if e == nil {
		return nil
	}
	if _, ok := b.index[e.Record.MessageHash]; !ok {
		panic("pendingbuffer: popped envelope missing from index (heap/index desync)")
	}
	delete(b.index, e.Record.MessageHash)
	return e
}

// PopMaxN removes and returns up to n envelopes in strictly non-increasing
// priority order. If the buffer is empty, PopMaxN returns nil regardless
// of n (including n == 0). Otherwise it returns exactly min(Len(), n)
// envelopes; n == 0 on a non-empty buffer returns an empty, non-nil slice.
func (b *Buffer) PopMaxN(n int) []*record.Envelope {
	if b.IsEmpty() {
		return nil
	}
	if n > b.Len() {
		n = b.Len()
	}
	out := make([]*record.Envelope, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, b.PopMax())
	}
	return out
}

// InsertBatch pushes every envelope in batch via Push and returns the
// number of invocations that returned a non-nil envelope: the count of
// arrivals that forced a capacity-driven drop, whether the dropped
// envelope was the incoming one (rejected outright) or the evicted
// former minimum (displaced by the incoming one). Duplicates and
// spare-capacity inserts return nil from Push and are not counted.
func (b *Buffer) InsertBatch(batch []*record.Envelope) int {
	dropped := 0
	for _, e := range batch {
		if b.Push(e) != nil {
			dropped++
		}
	}
	return dropped
}

// Retain invokes predicate exactly once for every envelope currently in
// the buffer, in unspecified order. Envelopes for which predicate returns
// false are removed. predicate may mutate the envelope's Forwarded field.
// The heap is unconditionally rebuilt from the retained envelopes
// afterward so invariants hold; this trades a faster incremental removal
// for simplicity, matching the Rust source's own un-optimized sweep.
func (b *Buffer) Retain(predicate func(*record.Envelope) bool) {
	kept := make([]*record.Envelope, 0, b.Len())
	for _, e := range b.heap.items {
		if predicate(e) {
			kept = append(kept, e)
		} else {
			delete(b.index, e.Record.MessageHash)
		}
	}
	b.heap.rebuild(kept)
}

// Iter calls fn for every envelope currently in the buffer, in unspecified
// order. fn should treat the envelope as read-only; use IterMut for
// traversal that mutates Forwarded.
func (b *Buffer) Iter(fn func(*record.Envelope)) {
	for _, e := range b.heap.items {
		fn(e)
	}
}

// IterMut calls fn for every envelope currently in the buffer, in
// unspecified order, explicitly permitting fn to mutate the envelope's
// Forwarded field. It does not remove envelopes or otherwise change heap
// membership or ordering; use Retain to filter the buffer's contents.
func (b *Buffer) IterMut(fn func(*record.Envelope)) {
	for _, e := range b.heap.items {
		fn(e)
	}
}
