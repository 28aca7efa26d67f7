// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"testing"

	"github.com/WBORSA/solana/feecalc"
	"github.com/WBORSA/solana/packet"
	"github.com/WBORSA/solana/record"
	"github.com/WBORSA/solana/record/recordtest"
	"github.com/WBORSA/solana/txmodel"
	"github.com/WBORSA/solana/wiredecode"
)

func validTx() *txmodel.VersionedTransaction {
	var sig txmodel.Signature
	var key0, key1 txmodel.Pubkey
	key0[0], key1[0] = 1, 2
	return &txmodel.VersionedTransaction{
		Signatures: []txmodel.Signature{sig},
		Message: txmodel.Message{
			Header: txmodel.MessageHeader{
				NumRequiredSignatures:       1,
				NumReadonlyUnsignedAccounts: 1,
			},
			AccountKeys: []txmodel.Pubkey{key0, key1},
			Instructions: []txmodel.CompiledInstruction{
				{ProgramIDIndex: 1, AccountIndices: []uint8{0}},
			},
		},
	}
}

func TestNewBuildsRecordFromPacket(t *testing.T) {
	tx := validTx()
	pkt := &packet.Packet{
		Data: wiredecode.Encode(tx),
		Meta: packet.Meta{SenderStake: 7, IsSimpleVoteTx: true},
	}

	rec, err := record.New(pkt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Priority != 0 {
		t.Errorf("got priority %d, want 0 (no compute-budget directives)", rec.Priority)
	}
	if !rec.IsSimpleVote {
		t.Error("expected IsSimpleVote to be propagated from packet metadata")
	}
	if rec.OriginalPacket != pkt {
		t.Error("expected OriginalPacket to be the exact packet passed in")
	}
}

func TestNewPropagatesSanitizeFailure(t *testing.T) {
	tx := validTx()
	tx.Signatures = nil
	pkt := &packet.Packet{Data: wiredecode.Encode(tx)}

	if _, err := record.New(pkt); err == nil {
		t.Fatal("expected sanitize failure to propagate, got nil error")
	}
}

func TestMessageHashEqualForIdenticalMessages(t *testing.T) {
	tx1 := validTx()
	tx2 := validTx()

	rec1, err := recordtest.FromTransaction(tx1, 1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec2, err := recordtest.FromTransaction(tx2, 1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec1.MessageHash != rec2.MessageHash {
		t.Error("expected message hash of byte-identical messages to be equal")
	}
}

func TestDeserializePacketsDropsFailuresAndHonorsIndexes(t *testing.T) {
	good := validTx()
	bad := validTx()
	bad.Signatures = nil

	batch := []*packet.Packet{
		{Data: wiredecode.Encode(bad)},
		{Data: wiredecode.Encode(good)},
	}

	records := record.DeserializePackets(batch, []int{0, 1})
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (the failing packet should be dropped)", len(records))
	}
}

func TestStubPriorityIsNotUsedByNew(t *testing.T) {
	// Documents why the historical fee_per_cu stub was rejected: unlike
	// feecalc.Priority, it ignores the message entirely and always
	// returns 1.
	stub, err := feecalc.StubPriority(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub != 1 {
		t.Errorf("got %d, want 1", stub)
	}

	// New derives priority from compute-budget directives instead: validTx
	// carries none, so its priority is 0, not the stub's constant.
	rec, err := record.New(&packet.Packet{Data: wiredecode.Encode(validTx())})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Priority != 0 {
		t.Errorf("record.New gave priority %d, want 0 (stub would give %d)", rec.Priority, stub)
	}
}
