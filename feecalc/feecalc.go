// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package feecalc extracts a transaction's scheduling priority from its
// compute-budget instructions (spec §4.3). Priority is derived from the
// requested compute-unit price and limit; a transaction that never asks
// for a price gets priority zero rather than an error.
package feecalc

import (
	"math/big"

	"github.com/WBORSA/solana/logs"
	"github.com/WBORSA/solana/txmodel"
)

// ComputeBudgetProgramID is the well-known program that carries the
// priority-fee directives. Only instructions whose program id resolves to
// this key among the message's statically listed account keys are
// inspected; an address-table-loaded program id cannot be resolved from a
// message alone and is skipped rather than treated as an error.
var ComputeBudgetProgramID = txmodel.Pubkey{
	0x03, 0x06, 0x46, 0x6f, 0xe5, 0x21, 0x17, 0x32,
	0xff, 0xec, 0xad, 0xba, 0x72, 0xc3, 0x9b, 0xe7,
	0xbc, 0x8c, 0xe5, 0xbb, 0xc5, 0xf7, 0x12, 0x6b,
	0x2c, 0x43, 0x9b, 0x3a, 0x40, 0x00, 0x00, 0x00,
}

// DefaultComputeUnitLimit is the unit count assumed when a transaction
// sets a compute-unit price but never requests an explicit limit.
const DefaultComputeUnitLimit = 200_000

// priceDenominator scales price_per_cu (micro-lamports per compute unit)
// down to lamports: priority = floor(price_per_cu * units / denom).
const priceDenominator = 1_000_000

// Priority computes msg's scheduling priority. The only errors returned
// are PrioritizationFailure: a duplicate directive of the same kind, a
// recognized directive whose data is too short for its argument, or a
// structurally invalid RequestHeapFrame.
func Priority(msg *txmodel.Message) (uint64, error) {
	numStatic := len(msg.AccountKeys)

	var set directiveSet
	for _, ix := range msg.Instructions {
		if int(ix.ProgramIDIndex) >= numStatic {
			continue
		}
		if msg.AccountKeys[ix.ProgramIDIndex] != ComputeBudgetProgramID {
			continue
		}
		if err := set.observe(ix.Data); err != nil {
			return 0, err
		}
	}

	if set.unitPrice == nil {
		logs.Fee().Tracef("no compute unit price directive, priority 0")
		return 0, nil
	}

	units := uint64(DefaultComputeUnitLimit)
	if set.unitLimit != nil {
		units = uint64(*set.unitLimit)
	}

	// math/big avoids the uint64 overflow a naive price*units multiply
	// risks at the extremes of both ranges.
	product := new(big.Int).Mul(
		new(big.Int).SetUint64(*set.unitPrice),
		new(big.Int).SetUint64(units),
	)
	product.Div(product, big.NewInt(priceDenominator))

	if !product.IsUint64() {
		product.SetUint64(^uint64(0))
	}
	priority := product.Uint64()
	logs.Fee().Tracef("priority %d from price %d units %d", priority, *set.unitPrice, units)
	return priority, nil
}

// StubPriority is the historical fee_per_cu placeholder: every transaction
// gets priority 1, regardless of its compute-budget instructions. It is
// unused by Priority and exists only so tests can demonstrate why it was
// rejected in favor of the real compute-budget-derived calculation above.
func StubPriority(*txmodel.Message) (uint64, error) {
	return 1, nil
}
