// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txmodel defines the on-the-wire transaction shapes the buffer
// operates on: signatures, the legacy/v0 message body, compiled
// instructions and address-table lookups. Nothing here validates anything;
// that's the sanitizer's job.
package txmodel

// SignatureSize is the length in bytes of a single transaction signature.
const SignatureSize = 64

// Signature is a single ed25519 signature over a message.
type Signature [SignatureSize]byte

// PubkeySize is the length in bytes of an account public key.
const PubkeySize = 32

// Pubkey is an account public key, used both as an account key in a message
// and as the key referenced by an address-table lookup entry.
type Pubkey [PubkeySize]byte

// HashSize is the length in bytes of a message hash or blockhash.
const HashSize = 32

// Hash is a 32-byte digest: either a recent blockhash embedded in a message,
// or the message hash used as the buffer's deduplication key.
type Hash [HashSize]byte

// MessageVersion distinguishes the legacy message wire shape from the
// versioned (v0) shape that adds address-table lookups.
type MessageVersion uint8

const (
	// MessageVersionLegacy is the original message shape with no
	// address-table lookups.
	MessageVersionLegacy MessageVersion = iota
	// MessageVersionV0 adds address-table lookups for dynamically loaded
	// accounts.
	MessageVersionV0
)

// MessageHeader carries the signer/readonly account counts needed to
// validate index ranges and to know how many leading account keys are
// signers.
type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

// CompiledInstruction references its program and accounts by index into the
// message's (possibly address-table-extended) account key list.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	AccountIndices []uint8
	Data           []byte
}

// AddressTableLookup names an on-chain address lookup table and the indices
// within it whose accounts are loaded as writable or readonly for this
// transaction. Only present on v0 messages.
type AddressTableLookup struct {
	AccountKey      Pubkey
	WritableIndexes []uint8
	ReadonlyIndexes []uint8
}

// TotalLoaded returns the number of accounts this lookup contributes to the
// message's effective account-key list.
func (l AddressTableLookup) TotalLoaded() int {
	return len(l.WritableIndexes) + len(l.ReadonlyIndexes)
}

// Message is the signable body of a transaction: accounts, recent
// blockhash and instructions, plus address-table lookups when Version is
// MessageVersionV0.
type Message struct {
	Version             MessageVersion
	Header              MessageHeader
	AccountKeys         []Pubkey
	RecentBlockhash     Hash
	Instructions        []CompiledInstruction
	AddressTableLookups []AddressTableLookup
}

// TotalLoadedAddressTableAccounts sums TotalLoaded across every lookup,
// i.e. the number of accounts dynamically loaded on top of AccountKeys.
func (m *Message) TotalLoadedAddressTableAccounts() int {
	total := 0
	for _, lookup := range m.AddressTableLookups {
		total += lookup.TotalLoaded()
	}
	return total
}

// NumAccounts is the number of accounts visible to instructions in this
// message: the statically listed account keys plus anything loaded via
// address-table lookups.
func (m *Message) NumAccounts() int {
	return len(m.AccountKeys) + m.TotalLoadedAddressTableAccounts()
}

// VersionedTransaction is a deserialized, not-yet-validated transaction:
// an ordered list of signatures over a message.
type VersionedTransaction struct {
	Signatures []Signature
	Message    Message
}
