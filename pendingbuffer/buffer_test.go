// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pendingbuffer

import (
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/WBORSA/solana/packet"
	"github.com/WBORSA/solana/record"
	"github.com/WBORSA/solana/txmodel"
)

func envelope(hashByte byte, priority, stake uint64) *record.Envelope {
	var h txmodel.Hash
	h[0] = hashByte
	return &record.Envelope{
		Record: &record.Record{
			MessageHash:    h,
			Priority:       priority,
			OriginalPacket: &packet.Packet{Meta: packet.Meta{SenderStake: stake}},
		},
	}
}

func TestPushDuplicateInsertIsNoOp(t *testing.T) {
	r := envelope(1, 5, 1)
	dup := envelope(1, 5, 1)

	b := WithCapacity(2)
	if evicted := b.Push(r); evicted != nil {
		t.Fatalf("first push should not evict anything, got %s", spew.Sdump(evicted))
	}
	if evicted := b.Push(dup); evicted != nil {
		t.Fatalf("duplicate push should return nil, got %s", spew.Sdump(evicted))
	}
	if b.Len() != 1 {
		t.Fatalf("got len %d, want 1", b.Len())
	}
	popped := b.PopMaxN(2)
	if len(popped) != 1 || popped[0] != r {
		t.Fatalf("expected exactly the original envelope, got %s", spew.Sdump(popped))
	}
}

func TestEvictionByPriorityCapacityTwo(t *testing.T) {
	high := envelope(1, 2, 1)
	low := envelope(2, 1, 1)

	b := WithCapacity(2)
	b.Push(high)
	b.Push(low)
	if got := b.PopMax(); got != high {
		t.Fatalf("expected high-priority envelope first, got %s", spew.Sdump(got))
	}
}

func TestEvictionByPriorityCapacityOneRejectsWorseArrival(t *testing.T) {
	high := envelope(1, 2, 1)
	low := envelope(2, 1, 1)

	b := WithCapacity(1)
	b.Push(high)
	rejected := b.Push(low)
	if rejected != low {
		t.Fatalf("expected low-priority arrival to be rejected unchanged, got %s", spew.Sdump(rejected))
	}
	if got := b.PopMax(); got != high {
		t.Fatalf("expected high-priority envelope to remain, got %s", spew.Sdump(got))
	}
}

func TestEvictionReturnsEvictedEnvelope(t *testing.T) {
	low := envelope(1, 1, 1)
	high := envelope(2, 2, 1)

	b := WithCapacity(1)
	b.Push(low)
	evicted := b.Push(high)
	if evicted != low {
		t.Fatalf("expected the old minimum to be evicted and returned, got %s", spew.Sdump(evicted))
	}
	if got := b.PopMax(); got != high {
		t.Fatalf("expected the new arrival to remain, got %s", spew.Sdump(got))
	}
}

func TestPopMaxNExhaustion(t *testing.T) {
	b := WithCapacity(10)
	for i := byte(0); i < 10; i++ {
		b.Push(envelope(i, 0, uint64(i)))
	}
	for i := 0; i < 10; i++ {
		got := b.PopMaxN(1)
		if len(got) != 1 {
			t.Fatalf("iteration %d: got %d envelopes, want 1", i, len(got))
		}
	}
	if got := b.PopMaxN(0); got != nil {
		t.Fatalf("expected nil from PopMaxN(0) on empty buffer, got %s", spew.Sdump(got))
	}
	if got := b.PopMaxN(1); got != nil {
		t.Fatalf("expected nil from PopMaxN(1) on empty buffer, got %s", spew.Sdump(got))
	}
}

func TestPopMaxNOversize(t *testing.T) {
	b := WithCapacity(10)
	for i := byte(0); i < 10; i++ {
		b.Push(envelope(i, uint64(i), 0))
	}
	got := b.PopMaxN(11)
	if len(got) != 10 {
		t.Fatalf("got %d envelopes, want 10", len(got))
	}
	if !b.IsEmpty() {
		t.Fatal("expected buffer to be empty after draining all 10 envelopes")
	}
	for i := 0; i < len(got)-1; i++ {
		if got[i].Record.Priority < got[i+1].Record.Priority {
			t.Fatalf("expected non-increasing priority order, got %d before %d", got[i].Record.Priority, got[i+1].Record.Priority)
		}
	}
}

func TestRetainFiltersByPriority(t *testing.T) {
	b := WithCapacity(4)
	b.Push(envelope(1, 3, 0))
	b.Push(envelope(2, 1, 0))
	b.Push(envelope(3, 4, 0))
	b.Push(envelope(4, 1, 0))

	b.Retain(func(e *record.Envelope) bool {
		return e.Record.Priority >= 2
	})

	if b.Len() != 2 {
		t.Fatalf("got len %d, want 2", b.Len())
	}
	if got := b.PopMax(); got.Record.Priority != 4 {
		t.Fatalf("got priority %d, want 4", got.Record.Priority)
	}
}

func TestPopMaxReturnsNonIncreasingOrderAcrossCalls(t *testing.T) {
	b := WithCapacity(5)
	priorities := []uint64{3, 1, 4, 1, 5}
	for i, p := range priorities {
		b.Push(envelope(byte(i), p, 0))
	}
	var last uint64 = ^uint64(0)
	for !b.IsEmpty() {
		e := b.PopMax()
		if e.Record.Priority > last {
			t.Fatalf("pop_max returned %d after %d, expected non-increasing", e.Record.Priority, last)
		}
		last = e.Record.Priority
	}
}

func TestFromIterAndInsertBatch(t *testing.T) {
	envs := []*record.Envelope{
		envelope(1, 1, 0),
		envelope(2, 2, 0),
		envelope(1, 9, 0), // duplicate hash, should be ignored
	}
	b := FromIter(envs, 10)
	if b.Len() != 2 {
		t.Fatalf("got len %d, want 2 (duplicate should be dropped)", b.Len())
	}

	// Spare capacity: neither a fresh hash nor a duplicate forces a drop,
	// so InsertBatch's count (which mirrors Push's non-nil returns, not
	// successful-insert count) is 0 even though one envelope was added.
	more := []*record.Envelope{envelope(3, 5, 0), envelope(2, 9, 0)}
	dropped := b.InsertBatch(more)
	if dropped != 0 {
		t.Fatalf("got %d dropped, want 0", dropped)
	}
	if b.Len() != 3 {
		t.Fatalf("got len %d, want 3", b.Len())
	}
}

func TestInsertBatchCountsPushNonNilReturns(t *testing.T) {
	b := WithCapacity(2)
	b.Push(envelope(1, 1, 0)) // A, priority 1
	b.Push(envelope(2, 2, 0)) // B, priority 2

	batch := []*record.Envelope{
		envelope(3, 3, 0), // C: evicts A (the current min); Push returns Some(A)
		envelope(4, 0, 0), // D: below the new min (B); Push returns Some(D) itself
	}
	dropped := b.InsertBatch(batch)
	if dropped != 2 {
		t.Fatalf("got %d dropped, want 2 (one eviction, one outright rejection)", dropped)
	}
	if b.Len() != 2 {
		t.Fatalf("got len %d, want 2", b.Len())
	}
}

func TestClearEmptiesBuffer(t *testing.T) {
	b := WithCapacity(2)
	b.Push(envelope(1, 1, 0))
	b.Clear()
	if !b.IsEmpty() {
		t.Fatal("expected buffer to be empty after Clear")
	}
	if b.PopMax() != nil {
		t.Fatal("expected PopMax on cleared buffer to return nil")
	}
}
