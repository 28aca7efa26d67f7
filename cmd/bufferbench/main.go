// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command bufferbench exercises the full pending-transaction pipeline —
// wire decode, sanitize, priority extraction, and the bounded priority
// buffer — against a batch of synthetic packets, and reports what came
// out the other end.
package main

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"

	"github.com/WBORSA/solana/feecalc"
	"github.com/WBORSA/solana/logs"
	"github.com/WBORSA/solana/packet"
	"github.com/WBORSA/solana/pendingbuffer"
	"github.com/WBORSA/solana/record"
	"github.com/WBORSA/solana/txmodel"
	"github.com/WBORSA/solana/wiredecode"
)

func main() {
	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bufferbench: %s\n", err)
		os.Exit(1)
	}

	logs.InitLogRotator(cfg.LogFile)
	if err := logs.ParseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		fmt.Fprintf(os.Stderr, "bufferbench: %s\n", err)
		os.Exit(1)
	}

	packets := syntheticPackets(cfg.NumPackets)

	buf := pendingbuffer.WithCapacity(cfg.Capacity)
	built, rejectedAtConstruction, rejectedAtPush := 0, 0, 0
	for _, pkt := range packets {
		rec, err := record.New(pkt)
		if err != nil {
			rejectedAtConstruction++
			continue
		}
		built++
		if evicted := buf.Push(record.NewEnvelope(rec)); evicted != nil && evicted.Record.MessageHash == rec.MessageHash {
			rejectedAtPush++
		}
	}

	fmt.Printf("generated %d packets: %d became records, %d failed construction, %d rejected at push\n",
		len(packets), built, rejectedAtConstruction, rejectedAtPush)
	fmt.Printf("buffer holds %d/%d envelopes\n", buf.Len(), buf.Capacity())

	top := buf.PopMaxN(10)
	fmt.Printf("top %d by priority:\n", len(top))
	for _, e := range top {
		fmt.Printf("  priority=%d stake=%d vote=%v\n",
			e.Record.Priority, e.Record.OriginalPacket.Meta.SenderStake, e.Record.IsSimpleVote)
	}
}

// syntheticPackets builds n wire-encoded packets with randomized
// compute-budget price/limit directives, so the demo exercises priority
// extraction and eviction rather than operating on a uniform batch.
func syntheticPackets(n int) []*packet.Packet {
	packets := make([]*packet.Packet, 0, n)
	for i := 0; i < n; i++ {
		packets = append(packets, syntheticPacket(i))
	}
	return packets
}

func syntheticPacket(seed int) *packet.Packet {
	rng := rand.New(rand.NewSource(int64(seed)))

	var sig txmodel.Signature
	var payer, other txmodel.Pubkey
	payer[0] = byte(seed)
	payer[1] = byte(seed >> 8)
	other[0] = byte(seed + 1)

	priceData := make([]byte, 9)
	priceData[0] = 3 // SetComputeUnitPrice
	binary.LittleEndian.PutUint64(priceData[1:], uint64(rng.Intn(5000)))

	limitData := make([]byte, 5)
	limitData[0] = 2 // SetComputeUnitLimit
	binary.LittleEndian.PutUint32(limitData[1:], uint32(50_000+rng.Intn(150_000)))

	tx := &txmodel.VersionedTransaction{
		Signatures: []txmodel.Signature{sig},
		Message: txmodel.Message{
			Header: txmodel.MessageHeader{
				NumRequiredSignatures:       1,
				NumReadonlyUnsignedAccounts: 2,
			},
			AccountKeys: []txmodel.Pubkey{payer, other, feecalc.ComputeBudgetProgramID},
			Instructions: []txmodel.CompiledInstruction{
				{ProgramIDIndex: 2, Data: priceData},
				{ProgramIDIndex: 2, Data: limitData},
			},
		},
	}

	return &packet.Packet{
		Data: wiredecode.Encode(tx),
		Meta: packet.Meta{SenderStake: uint64(rng.Intn(1000))},
	}
}
