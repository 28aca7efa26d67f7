// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package recordtest builds record.Record values directly from in-memory
// transactions, skipping wire decoding, so tests exercising the
// pending buffer and record construction don't need to hand-roll wire bytes
// for every case. It is test-support scaffolding only and must not be
// imported by production code.
package recordtest

import (
	"github.com/WBORSA/solana/feecalc"
	"github.com/WBORSA/solana/packet"
	"github.com/WBORSA/solana/record"
	"github.com/WBORSA/solana/sanitize"
	"github.com/WBORSA/solana/txmodel"
	"github.com/WBORSA/solana/wiredecode"
)

// FromTransaction sanitizes tx, extracts its priority and builds a Record
// from it, skipping wire decoding; the message hash is taken over the
// re-encoded message. Production code always goes through record.New.
func FromTransaction(tx *txmodel.VersionedTransaction, senderStake uint64, isSimpleVote bool) (*record.Record, error) {
	sanitized, err := sanitize.Sanitize(tx)
	if err != nil {
		return nil, err
	}

	priority, err := feecalc.Priority(&sanitized.Transaction().Message)
	if err != nil {
		return nil, err
	}

	pkt := &packet.Packet{
		Meta: packet.Meta{SenderStake: senderStake, IsSimpleVoteTx: isSimpleVote},
	}

	return &record.Record{
		OriginalPacket: pkt,
		Sanitized:      sanitized,
		MessageHash:    txmodel.HashMessage(wiredecode.EncodeMessage(&sanitized.Transaction().Message)),
		IsSimpleVote:   isSimpleVote,
		Priority:       priority,
	}, nil
}
