// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wiredecode

import (
	"github.com/WBORSA/solana/internal/shortvec"
	"github.com/WBORSA/solana/txmodel"
)

// Encode serializes tx into packet bytes in the wire format Decode
// understands: a short-u16 signature count, that many 64-byte signatures,
// then the message. It is the inverse of Decode and exists primarily to
// exercise the round-trip law (spec §8): decode(encode(tx)) == tx for any
// well-formed transaction.
func Encode(tx *txmodel.VersionedTransaction) []byte {
	var out []byte
	out = append(out, shortvec.EncodeLen(len(tx.Signatures))...)
	for _, sig := range tx.Signatures {
		out = append(out, sig[:]...)
	}
	out = append(out, EncodeMessage(&tx.Message)...)
	return out
}

// EncodeMessage serializes a message on its own, i.e. the slice Decode
// would have returned alongside the transaction.
func EncodeMessage(m *txmodel.Message) []byte {
	var out []byte
	if m.Version == txmodel.MessageVersionV0 {
		out = append(out, legacyMessageVersionMask)
	}
	out = append(out, m.Header.NumRequiredSignatures, m.Header.NumReadonlySignedAccounts, m.Header.NumReadonlyUnsignedAccounts)

	out = append(out, shortvec.EncodeLen(len(m.AccountKeys))...)
	for _, key := range m.AccountKeys {
		out = append(out, key[:]...)
	}

	out = append(out, m.RecentBlockhash[:]...)

	out = append(out, shortvec.EncodeLen(len(m.Instructions))...)
	for _, ix := range m.Instructions {
		out = append(out, ix.ProgramIDIndex)
		out = append(out, shortvec.EncodeLen(len(ix.AccountIndices))...)
		out = append(out, ix.AccountIndices...)
		out = append(out, shortvec.EncodeLen(len(ix.Data))...)
		out = append(out, ix.Data...)
	}

	if m.Version == txmodel.MessageVersionV0 {
		out = append(out, shortvec.EncodeLen(len(m.AddressTableLookups))...)
		for _, lookup := range m.AddressTableLookups {
			out = append(out, lookup.AccountKey[:]...)
			out = append(out, shortvec.EncodeLen(len(lookup.WritableIndexes))...)
			out = append(out, lookup.WritableIndexes...)
			out = append(out, shortvec.EncodeLen(len(lookup.ReadonlyIndexes))...)
			out = append(out, lookup.ReadonlyIndexes...)
		}
	}
	return out
}
