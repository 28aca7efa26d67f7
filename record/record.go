// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record builds the immutable, priority-tagged record (component D)
// that the pending buffer operates on, by composing the wire decoder, the
// sanitizer, and the priority extractor. On any sub-failure it returns the
// corresponding error and constructs no partial record.
package record

import (
	"github.com/WBORSA/solana/feecalc"
	"github.com/WBORSA/solana/packet"
	"github.com/WBORSA/solana/sanitize"
	"github.com/WBORSA/solana/txmodel"
	"github.com/WBORSA/solana/wiredecode"
)

// Record is an immutable, share-by-reference value: the original packet,
// its sanitized transaction, the message hash it was sanitized from, its
// vote classification, and its scheduling priority. Nothing about a
// *Record changes after New returns it.
type Record struct {
	OriginalPacket *packet.Packet
	Sanitized      *sanitize.Sanitized
	MessageHash    txmodel.Hash
	IsSimpleVote   bool
	Priority       uint64
}

// Envelope wraps a Record with the one piece of mutable state the buffer
// tracks on its behalf: whether it has already been forwarded to the next
// leader. Envelope is the unit stored in the buffer's index and returned
// from its pop operations.
type Envelope struct {
	Record    *Record
	Forwarded bool
}

// New runs pkt through decode, sanitize, and priority extraction in order,
// returning the first error encountered. A successful call's Record.MessageHash
// is computed from the exact message slice the decoder produced.
func New(pkt *packet.Packet) (*Record, error) {
	tx, msgBytes, err := wiredecode.Decode(pkt)
	if err != nil {
		return nil, err
	}

	sanitized, err := sanitize.Sanitize(tx)
	if err != nil {
		return nil, err
	}

	priority, err := feecalc.Priority(&sanitized.Transaction().Message)
	if err != nil {
		return nil, err
	}

	return &Record{
		OriginalPacket: pkt,
		Sanitized:      sanitized,
		MessageHash:    txmodel.HashMessage(msgBytes),
		IsSimpleVote:   pkt.Meta.IsSimpleVoteTx,
		Priority:       priority,
	}, nil
}

// NewEnvelope wraps rec in a fresh, not-yet-forwarded Envelope.
func NewEnvelope(rec *Record) *Envelope {
	return &Envelope{Record: rec}
}

// DeserializePackets runs New over the packets in packetBatch named by
// indexes, silently dropping any that fail any stage. Error counts are a
// telemetry concern and are not tracked here. The indexed-subset shape
// mirrors the upstream caller filtering e.g. already-classified vote
// packets out of a batch before it reaches the buffer.
func DeserializePackets(packetBatch []*packet.Packet, indexes []int) []*Record {
	records := make([]*Record, 0, len(indexes))
	for _, i := range indexes {
		rec, err := New(packetBatch[i])
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}
