// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feecalc

import "fmt"

// Reason is the closed set of ways a recognized compute-budget directive
// can be structurally invalid.
type Reason int

const (
	// ReasonDuplicateDirective means the same directive kind appears more
	// than once among a transaction's compute-budget instructions.
	ReasonDuplicateDirective Reason = iota
	// ReasonInvalidHeapFrame means a RequestHeapFrame value fails its
	// alignment or bounds check.
	ReasonInvalidHeapFrame
	// ReasonMalformedDirective means a recognized directive's data is too
	// short to contain its fixed-size argument.
	ReasonMalformedDirective
)

func (r Reason) String() string {
	switch r {
	case ReasonDuplicateDirective:
		return "duplicate directive"
	case ReasonInvalidHeapFrame:
		return "invalid heap frame request"
	case ReasonMalformedDirective:
		return "malformed directive"
	default:
		return "unknown prioritization failure"
	}
}

// Error is PrioritizationFailure from spec §4.3/§7.
type Error struct {
	Reason Reason
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("prioritization failure: %s: %s", e.Reason, e.Detail)
}

func newFailure(reason Reason, detail string) *Error {
	return &Error{Reason: reason, Detail: detail}
}
