// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package shortvec

import (
	"errors"
	"testing"
)

func TestDecodeLenSingleByte(t *testing.T) {
	tests := []struct {
		buf        []byte
		wantLen    int
		wantPrefix int
	}{
		{[]byte{0x00}, 0, 1},
		{[]byte{0x01}, 1, 1},
		{[]byte{0x7f}, 0x7f, 1},
	}
	for _, tt := range tests {
		gotLen, gotPrefix, err := DecodeLen(tt.buf)
		if err != nil {
			t.Fatalf("DecodeLen(%x): unexpected error: %v", tt.buf, err)
		}
		if gotLen != tt.wantLen || gotPrefix != tt.wantPrefix {
			t.Errorf("DecodeLen(%x) = (%d, %d), want (%d, %d)", tt.buf, gotLen, gotPrefix, tt.wantLen, tt.wantPrefix)
		}
	}
}

func TestDecodeLenMultiByte(t *testing.T) {
	// 0x80, 0x01 encodes 128: low 7 bits from first byte (0), continuation,
	// then 1 << 7 from the second byte.
	gotLen, gotPrefix, err := DecodeLen([]byte{0x80, 0x01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLen != 128 || gotPrefix != 2 {
		t.Errorf("got (%d, %d), want (128, 2)", gotLen, gotPrefix)
	}

	// Three-byte form: 0xff, 0xff, 0x03 decodes to 0xffff (65535).
	gotLen, gotPrefix, err = DecodeLen([]byte{0xff, 0xff, 0x03})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLen != 0xffff || gotPrefix != 3 {
		t.Errorf("got (%d, %d), want (65535, 3)", gotLen, gotPrefix)
	}
}

func TestDecodeLenTruncated(t *testing.T) {
	_, _, err := DecodeLen([]byte{})
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("empty buffer: got %v, want ErrTruncated", err)
	}

	_, _, err = DecodeLen([]byte{0x80})
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("dangling continuation: got %v, want ErrTruncated", err)
	}
}

func TestDecodeLenTooLong(t *testing.T) {
	_, _, err := DecodeLen([]byte{0x80, 0x80, 0x80, 0x01})
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("got %v, want ErrTooLong", err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 0x7f, 0x80, 0x3fff, 0x4000, 0xffff} {
		enc := EncodeLen(n)
		gotLen, gotPrefix, err := DecodeLen(enc)
		if err != nil {
			t.Fatalf("DecodeLen(EncodeLen(%d)): %v", n, err)
		}
		if gotLen != n || gotPrefix != len(enc) {
			t.Errorf("round trip n=%d: got (%d, %d), want (%d, %d)", n, gotLen, gotPrefix, n, len(enc))
		}
	}
}

func TestDecodeLenIgnoresTrailingBytes(t *testing.T) {
	// The message bytes that follow the prefix must not affect decoding.
	gotLen, gotPrefix, err := DecodeLen([]byte{0x02, 0xde, 0xad, 0xbe, 0xef})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLen != 2 || gotPrefix != 1 {
		t.Errorf("got (%d, %d), want (2, 1)", gotLen, gotPrefix)
	}
}
