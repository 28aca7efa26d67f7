// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wiredecode turns a raw packet's byte buffer into a versioned
// transaction plus the exact message slice the signatures were carved away
// from, per the wire format in spec §6: a short-u16 signature count, that
// many 64-byte signatures, then the message.
package wiredecode

import (
	"math"

	"github.com/WBORSA/solana/internal/shortvec"
	"github.com/WBORSA/solana/logs"
	"github.com/WBORSA/solana/packet"
	"github.com/WBORSA/solana/txmodel"
)

// legacyMessageVersionMask, when set on a message's first byte, marks it as
// a versioned (v0) message rather than a legacy one.
const legacyMessageVersionMask = 0x80

// Decode parses pkt's byte buffer into a versioned transaction, returning
// the exact message byte slice alongside it (the caller hashes this slice
// to derive the record's message hash). Decoding never mutates or retains a
// reference into pkt.Data beyond the returned slice.
func Decode(pkt *packet.Packet) (*txmodel.VersionedTransaction, []byte, error) {
	data := pkt.Data

	sigCount, prefixSize, err := readSignatureCountPrefix(data)
	if err != nil {
		logs.Wire().Tracef("short-vec prefix decode failed: %s", err)
		return nil, nil, newShortVecFailure(err)
	}

	msgStart, ok := checkedMessageStart(sigCount, prefixSize)
	if !ok || msgStart > pkt.Size() {
		logs.Wire().Tracef("signature overflow: sigCount=%d prefixSize=%d size=%d", sigCount, prefixSize, pkt.Size())
		return nil, nil, newSignatureOverflow(prefixSize)
	}

	signatures, err := parseSignatures(data[prefixSize:msgStart], sigCount)
	if err != nil {
		return nil, nil, newDeserializationFailure("signatures", err)
	}

	messageBytes := data[msgStart:pkt.Size()]
	message, err := parseMessage(messageBytes)
	if err != nil {
		return nil, nil, err
	}

	return &txmodel.VersionedTransaction{
		Signatures: signatures,
		Message:    message,
	}, messageBytes, nil
}

func readSignatureCountPrefix(data []byte) (sigCount int, prefixSize int, err error) {
	return shortvec.DecodeLen(data)
}

// checkedMessageStart computes sigCount*SignatureSize + prefixSize without
// silently wrapping on overflow.
func checkedMessageStart(sigCount, prefixSize int) (int, bool) {
	if sigCount < 0 || prefixSize < 0 {
		return 0, false
	}
	product := uint64(sigCount) * uint64(txmodel.SignatureSize)
	if product > uint64(math.MaxInt) {
		return 0, false
	}
	start := product + uint64(prefixSize)
	if start > uint64(math.MaxInt) {
		return 0, false
	}
	return int(start), true
}

func parseSignatures(buf []byte, count int) ([]txmodel.Signature, error) {
	if count == 0 {
		return nil, nil
	}
	c := &cursor{buf: buf}
	sigs := make([]txmodel.Signature, count)
	for i := 0; i < count; i++ {
		b, err := c.readBytes(txmodel.SignatureSize)
		if err != nil {
			return nil, err
		}
		copy(sigs[i][:], b)
	}
	return sigs, nil
}

func parseMessage(buf []byte) (txmodel.Message, error) {
	c := &cursor{buf: buf}

	version := txmodel.MessageVersionLegacy
	firstByte, err := c.readByte()
	if err != nil {
		return txmodel.Message{}, newDeserializationFailure("message version/header byte", err)
	}
	if firstByte&legacyMessageVersionMask != 0 {
		version = txmodel.MessageVersionV0
	} else {
		// The legacy format has no version byte: what we just read is
		// actually the header's first field.
		c.unreadByte()
	}

	header, err := readHeader(c)
	if err != nil {
		return txmodel.Message{}, newDeserializationFailure("message header", err)
	}

	numAccountKeys, err := c.readShortVecLen()
	if err != nil {
		return txmodel.Message{}, newDeserializationFailure("account keys length", err)
	}
	accountKeys := make([]txmodel.Pubkey, numAccountKeys)
	for i := range accountKeys {
		accountKeys[i], err = c.readPubkey()
		if err != nil {
			return txmodel.Message{}, newDeserializationFailure("account key", err)
		}
	}

	blockhash, err := c.readHash()
	if err != nil {
		return txmodel.Message{}, newDeserializationFailure("recent blockhash", err)
	}

	numInstructions, err := c.readShortVecLen()
	if err != nil {
		return txmodel.Message{}, newDeserializationFailure("instructions length", err)
	}
	instructions := make([]txmodel.CompiledInstruction, numInstructions)
	for i := range instructions {
		instructions[i], err = c.readCompiledInstruction()
		if err != nil {
			return txmodel.Message{}, newDeserializationFailure("compiled instruction", err)
		}
	}

	var lookups []txmodel.AddressTableLookup
	if version == txmodel.MessageVersionV0 {
		numLookups, err := c.readShortVecLen()
		if err != nil {
			return txmodel.Message{}, newDeserializationFailure("address table lookups length", err)
		}
		lookups = make([]txmodel.AddressTableLookup, numLookups)
		for i := range lookups {
			lookups[i], err = c.readAddressTableLookup()
			if err != nil {
				return txmodel.Message{}, newDeserializationFailure("address table lookup", err)
			}
		}
	}

	return txmodel.Message{
		Version:             version,
		Header:              header,
		AccountKeys:         accountKeys,
		RecentBlockhash:     blockhash,
		Instructions:        instructions,
		AddressTableLookups: lookups,
	}, nil
}

func readHeader(c *cursor) (txmodel.MessageHeader, error) {
	numRequired, err := c.readByte()
	if err != nil {
		return txmodel.MessageHeader{}, err
	}
	numReadonlySigned, err := c.readByte()
	if err != nil {
		return txmodel.MessageHeader{}, err
	}
	numReadonlyUnsigned, err := c.readByte()
	if err != nil {
		return txmodel.MessageHeader{}, err
	}
	return txmodel.MessageHeader{
		NumRequiredSignatures:       numRequired,
		NumReadonlySignedAccounts:   numReadonlySigned,
		NumReadonlyUnsignedAccounts: numReadonlyUnsigned,
	}, nil
}
