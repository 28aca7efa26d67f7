// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feecalc

import "encoding/binary"

// Compute-budget instructions are borsh-style enums: a one-byte
// discriminant followed by the variant's fixed-size payload. Index 0 is
// reserved (an older, now-unused variant) so the recognized discriminants
// start at 1, matching the real program's layout.
const (
	discriminantRequestHeapFrame    = 1
	discriminantSetComputeUnitLimit = 2
	discriminantSetComputeUnitPrice = 3
)

// Heap-frame bounds. A requested frame must be a multiple of
// heapFrameAlignment bytes and fall within [minHeapFrameBytes,
// maxHeapFrameBytes].
const (
	minHeapFrameBytes  = 32 * 1024
	maxHeapFrameBytes  = 256 * 1024
	heapFrameAlignment = 1024
)

// directiveSet accumulates the compute-budget directives seen across a
// message's instructions, rejecting duplicates of the same kind.
type directiveSet struct {
	unitLimit *uint32
	unitPrice *uint64
	heapFrame *uint32
}

func (d *directiveSet) addRequestHeapFrame(data []byte) error {
	if d.heapFrame != nil {
		return newFailure(ReasonDuplicateDirective, "RequestHeapFrame appears more than once")
	}
	if len(data) < 4 {
		return newFailure(ReasonMalformedDirective, "RequestHeapFrame data shorter than 4 bytes")
	}
	bytes := binary.LittleEndian.Uint32(data[:4])
	if bytes%heapFrameAlignment != 0 || bytes < minHeapFrameBytes || bytes > maxHeapFrameBytes {
		return newFailure(ReasonInvalidHeapFrame, "requested heap frame size out of bounds or unaligned")
	}
	d.heapFrame = &bytes
	return nil
}

func (d *directiveSet) addSetComputeUnitLimit(data []byte) error {
	if d.unitLimit != nil {
		return newFailure(ReasonDuplicateDirective, "SetComputeUnitLimit appears more than once")
	}
	if len(data) < 4 {
		return newFailure(ReasonMalformedDirective, "SetComputeUnitLimit data shorter than 4 bytes")
	}
	units := binary.LittleEndian.Uint32(data[:4])
	d.unitLimit = &units
	return nil
}

func (d *directiveSet) addSetComputeUnitPrice(data []byte) error {
	if d.unitPrice != nil {
		return newFailure(ReasonDuplicateDirective, "SetComputeUnitPrice appears more than once")
	}
	if len(data) < 8 {
		return newFailure(ReasonMalformedDirective, "SetComputeUnitPrice data shorter than 8 bytes")
	}
	price := binary.LittleEndian.Uint64(data[:8])
	d.unitPrice = &price
	return nil
}

// observe parses ixData's discriminant and folds it into the set. An
// unrecognized discriminant is silently ignored: the compute-budget
// program's instruction space is not required to be exhaustively known
// here, only the three priority-relevant directives.
func (d *directiveSet) observe(ixData []byte) error {
	if len(ixData) == 0 {
		return nil
	}
	switch ixData[0] {
	case discriminantRequestHeapFrame:
		return d.addRequestHeapFrame(ixData[1:])
	case discriminantSetComputeUnitLimit:
		return d.addSetComputeUnitLimit(ixData[1:])
	case discriminantSetComputeUnitPrice:
		return d.addSetComputeUnitPrice(ixData[1:])
	default:
		return nil
	}
}
