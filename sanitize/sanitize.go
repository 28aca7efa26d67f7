// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sanitize validates the structural invariants of a versioned
// transaction (spec §4.2): account-key counts, signature counts, and
// address-table indices must all be internally consistent before the
// transaction is trusted for priority extraction or inclusion in a block.
package sanitize

import (
	"fmt"

	"github.com/WBORSA/solana/logs"
	"github.com/WBORSA/solana/txmodel"
)

// Sanitized is a versioned transaction that has passed every check in
// Sanitize. The only way to obtain one is through Sanitize, so holding a
// *Sanitized is proof the checks ran.
type Sanitized struct {
	tx txmodel.VersionedTransaction
}

// Transaction returns the validated transaction.
func (s *Sanitized) Transaction() *txmodel.VersionedTransaction {
	return &s.tx
}

// Sanitize validates tx's structural invariants and returns a Sanitized
// wrapping it, or the first Error encountered. It is a pure function: it
// never mutates tx.
func Sanitize(tx *txmodel.VersionedTransaction) (*Sanitized, error) {
	if len(tx.Signatures) == 0 {
		return nil, newFailure(ReasonNoSignatures, "transaction has no signatures")
	}

	msg := &tx.Message
	header := msg.Header

	if len(tx.Signatures) != int(header.NumRequiredSignatures) {
		return nil, newFailure(ReasonSignatureCountMismatch, fmt.Sprintf(
			"got %d signatures, header requires %d", len(tx.Signatures), header.NumRequiredSignatures))
	}

	if len(msg.AccountKeys) == 0 {
		return nil, newFailure(ReasonEmptyAccountList, "message has no account keys")
	}

	numRequired := int(header.NumRequiredSignatures)
	numReadonlySigned := int(header.NumReadonlySignedAccounts)
	numReadonlyUnsigned := int(header.NumReadonlyUnsignedAccounts)

	if numReadonlySigned > numRequired {
		return nil, newFailure(ReasonInconsistentReadonlyCounts, fmt.Sprintf(
			"%d readonly signed accounts exceeds %d required signatures", numReadonlySigned, numRequired))
	}

	numUnsigned := len(msg.AccountKeys) - numRequired
	if numUnsigned < 0 {
		return nil, newFailure(ReasonHeaderOverflow, fmt.Sprintf(
			"%d account keys is fewer than %d required signatures", len(msg.AccountKeys), numRequired))
	}
	if numReadonlyUnsigned > numUnsigned {
		return nil, newFailure(ReasonInconsistentReadonlyCounts, fmt.Sprintf(
			"%d readonly unsigned accounts exceeds %d available unsigned accounts", numReadonlyUnsigned, numUnsigned))
	}

	if err := checkDuplicateAccountKeys(msg.AccountKeys, numRequired); err != nil {
		return nil, err
	}

	if err := checkInstructionIndices(msg); err != nil {
		return nil, err
	}

	logs.Sanitize().Tracef("sanitized transaction: %d signatures, %d accounts, %d instructions",
		len(tx.Signatures), len(msg.AccountKeys), len(msg.Instructions))

	return &Sanitized{tx: *tx}, nil
}

func checkDuplicateAccountKeys(keys []txmodel.Pubkey, numSigners int) error {
	seen := make(map[txmodel.Pubkey]struct{}, len(keys))
	for i, key := range keys {
		if _, dup := seen[key]; dup {
			if i < numSigners {
				return newFailure(ReasonDuplicateSigner, fmt.Sprintf("signer account key %x repeated", key))
			}
			return newFailure(ReasonDuplicateAccountKey, fmt.Sprintf("account key %x repeated", key))
		}
		seen[key] = struct{}{}
	}
	return nil
}

func checkInstructionIndices(msg *txmodel.Message) error {
	numAccounts := msg.NumAccounts()
	for _, ix := range msg.Instructions {
		if int(ix.ProgramIDIndex) >= numAccounts {
			return newFailure(ReasonIndexOutOfRange, fmt.Sprintf(
				"program id index %d out of range for %d accounts", ix.ProgramIDIndex, numAccounts))
		}
		for _, accountIndex := range ix.AccountIndices {
			if int(accountIndex) >= numAccounts {
				return newFailure(ReasonIndexOutOfRange, fmt.Sprintf(
					"account index %d out of range for %d accounts", accountIndex, numAccounts))
			}
		}
	}
	return nil
}
