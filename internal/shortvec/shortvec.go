// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package shortvec decodes the compact-u16 ("short vec") length prefix used
// to frame the signature count at the head of a wire packet: 1-3 bytes,
// little endian, 7 payload bits per byte with the high bit marking
// continuation.
package shortvec

import "github.com/pkg/errors"

// MaxLenBytes is the maximum number of bytes a short-u16 length prefix can
// occupy. Three 7-bit groups cover the full 16-bit range.
const MaxLenBytes = 3

// ErrTruncated is returned when the buffer ends before the length prefix is
// fully decoded.
var ErrTruncated = errors.New("short-u16 length prefix truncated")

// ErrTooLong is returned when the third byte still has its continuation
// bit set; a 16-bit value never needs more than three 7-bit groups.
var ErrTooLong = errors.New("short-u16 length prefix longer than three bytes")

// EncodeLen encodes n as a short-u16 length prefix. It panics if n does not
// fit in 16 bits, since the format never needs more than three groups.
func EncodeLen(n int) []byte {
	if n < 0 || n > 0xffff {
		panic("shortvec: length out of range")
	}
	var out []byte
	v := uint32(n)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		out = append(out, b)
		break
	}
	return out
}

// DecodeLen reads a short-u16 length prefix from the start of buf.
// It returns the decoded length and the number of bytes the prefix
// occupied.
func DecodeLen(buf []byte) (length int, prefixSize int, err error) {
	var result uint32
	for i := 0; i < MaxLenBytes; i++ {
		if i >= len(buf) {
			return 0, 0, errors.WithStack(ErrTruncated)
		}
		b := buf[i]
		result |= uint32(b&0x7f) << uint(7*i)
		prefixSize++
		if b&0x80 == 0 {
			return int(result), prefixSize, nil
		}
	}
	return 0, 0, errors.WithStack(ErrTooLong)
}
