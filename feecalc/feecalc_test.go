// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feecalc

import (
	"encoding/binary"
	"testing"

	"github.com/WBORSA/solana/txmodel"
)

func heapFrameIx(bytes uint32) txmodel.CompiledInstruction {
	data := make([]byte, 5)
	data[0] = discriminantRequestHeapFrame
	binary.LittleEndian.PutUint32(data[1:], bytes)
	return txmodel.CompiledInstruction{ProgramIDIndex: 0, Data: data}
}

func unitLimitIx(units uint32) txmodel.CompiledInstruction {
	data := make([]byte, 5)
	data[0] = discriminantSetComputeUnitLimit
	binary.LittleEndian.PutUint32(data[1:], units)
	return txmodel.CompiledInstruction{ProgramIDIndex: 0, Data: data}
}

func unitPriceIx(price uint64) txmodel.CompiledInstruction {
	data := make([]byte, 9)
	data[0] = discriminantSetComputeUnitPrice
	binary.LittleEndian.PutUint64(data[1:], price)
	return txmodel.CompiledInstruction{ProgramIDIndex: 0, Data: data}
}

func messageWith(ixs ...txmodel.CompiledInstruction) *txmodel.Message {
	return &txmodel.Message{
		AccountKeys:  []txmodel.Pubkey{ComputeBudgetProgramID},
		Instructions: ixs,
	}
}

func TestPriorityHeapFrameOnlyIsZero(t *testing.T) {
	msg := messageWith(heapFrameIx(64 * 1024))
	priority, err := Priority(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priority != 0 {
		t.Errorf("got priority %d, want 0", priority)
	}
}

func TestPriorityPriceAndLimitExactFloor(t *testing.T) {
	msg := messageWith(unitPriceIx(1500), unitLimitIx(2000))
	priority, err := Priority(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := uint64(1500*2000) / priceDenominator
	if priority != want {
		t.Errorf("got priority %d, want %d", priority, want)
	}
}

func TestPriorityPriceWithoutLimitUsesDefault(t *testing.T) {
	msg := messageWith(unitPriceIx(priceDenominator))
	priority, err := Priority(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := uint64(DefaultComputeUnitLimit)
	if priority != want {
		t.Errorf("got priority %d, want %d", priority, want)
	}
}

func TestPriorityIgnoresNonComputeBudgetProgram(t *testing.T) {
	var other txmodel.Pubkey
	other[0] = 0xFF
	msg := &txmodel.Message{
		AccountKeys: []txmodel.Pubkey{ComputeBudgetProgramID, other},
		Instructions: []txmodel.CompiledInstruction{
			{ProgramIDIndex: 1, Data: append([]byte{discriminantSetComputeUnitPrice}, make([]byte, 8)...)},
		},
	}
	priority, err := Priority(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priority != 0 {
		t.Errorf("got priority %d, want 0 (non-compute-budget program ignored)", priority)
	}
}

func TestPriorityRejectsDuplicateDirective(t *testing.T) {
	msg := messageWith(unitPriceIx(10), unitPriceIx(20))
	_, err := Priority(msg)
	assertReason(t, err, ReasonDuplicateDirective)
}

func TestPriorityRejectsOutOfBoundsHeapFrame(t *testing.T) {
	msg := messageWith(heapFrameIx(8 * 1024))
	_, err := Priority(msg)
	assertReason(t, err, ReasonInvalidHeapFrame)
}

func TestPriorityRejectsUnalignedHeapFrame(t *testing.T) {
	msg := messageWith(heapFrameIx(64*1024 + 7))
	_, err := Priority(msg)
	assertReason(t, err, ReasonInvalidHeapFrame)
}

func assertReason(t *testing.T, err error, want Reason) {
	t.Helper()
	fErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if fErr.Reason != want {
		t.Errorf("got reason %v, want %v", fErr.Reason, want)
	}
}
