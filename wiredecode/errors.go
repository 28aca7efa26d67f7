// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wiredecode

import "fmt"

// ErrorCode identifies which of the decoder's closed set of failure modes
// occurred.
type ErrorCode int

const (
	// ErrShortVecFailure means the leading short-u16 signature-count
	// prefix could not be decoded.
	ErrShortVecFailure ErrorCode = iota
	// ErrSignatureOverflow means the computed message start overflowed or
	// exceeded the packet buffer's length.
	ErrSignatureOverflow
	// ErrDeserializationFailure means the fixed-size binary decoder
	// rejected the message bytes.
	ErrDeserializationFailure
)

func (c ErrorCode) String() string {
	switch c {
	case ErrShortVecFailure:
		return "short-vec failure"
	case ErrSignatureOverflow:
		return "signature overflow"
	case ErrDeserializationFailure:
		return "deserialization failure"
	default:
		return "unknown wiredecode error"
	}
}

// Error is the decoder's single error type. Code is always one of the
// ErrorCode constants above; PrefixSize is only meaningful for
// ErrSignatureOverflow and Detail only for ErrDeserializationFailure.
type Error struct {
	Code       ErrorCode
	PrefixSize int
	Detail     string
	cause      error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrSignatureOverflow:
		return fmt.Sprintf("signature overflow: prefix size %d", e.PrefixSize)
	case ErrDeserializationFailure:
		return fmt.Sprintf("deserialization failure: %s", e.Detail)
	default:
		return e.Code.String()
	}
}

// Unwrap exposes the underlying cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

func newShortVecFailure(cause error) *Error {
	return &Error{Code: ErrShortVecFailure, cause: cause}
}

func newSignatureOverflow(prefixSize int) *Error {
	return &Error{Code: ErrSignatureOverflow, PrefixSize: prefixSize}
}

func newDeserializationFailure(detail string, cause error) *Error {
	return &Error{Code: ErrDeserializationFailure, Detail: detail, cause: cause}
}
