// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wiredecode

import (
	"io"

	"github.com/WBORSA/solana/internal/shortvec"
	"github.com/WBORSA/solana/txmodel"
)

// cursor is a forward-only reader over a message's bytes. Every read is
// bounds-checked; running past the end surfaces io.ErrUnexpectedEOF (or,
// for short-vec length reads, the shortvec package's error), which callers
// wrap as a DeserializationFailure with a stage label.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

func (c *cursor) readByte() (byte, error) {
	if c.remaining() < 1 {
		return 0, io.ErrUnexpectedEOF
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) unreadByte() {
	c.pos--
}

func (c *cursor) readBytes(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, io.ErrUnexpectedEOF
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) readShortVecLen() (int, error) {
	n, size, err := shortvec.DecodeLen(c.buf[c.pos:])
	if err != nil {
		return 0, err
	}
	c.pos += size
	return n, nil
}

func (c *cursor) readPubkey() (txmodel.Pubkey, error) {
	b, err := c.readBytes(txmodel.PubkeySize)
	if err != nil {
		return txmodel.Pubkey{}, err
	}
	var pk txmodel.Pubkey
	copy(pk[:], b)
	return pk, nil
}

func (c *cursor) readHash() (txmodel.Hash, error) {
	b, err := c.readBytes(txmodel.HashSize)
	if err != nil {
		return txmodel.Hash{}, err
	}
	var h txmodel.Hash
	copy(h[:], b)
	return h, nil
}

// readIndexVec reads a short-vec-prefixed array of raw index bytes, used for
// both instruction account indices and address-table lookup indices.
func (c *cursor) readIndexVec() ([]uint8, error) {
	n, err := c.readShortVecLen()
	if err != nil {
		return nil, err
	}
	b, err := c.readBytes(n)
	if err != nil {
		return nil, err
	}
	out := make([]uint8, n)
	copy(out, b)
	return out, nil
}

func (c *cursor) readCompiledInstruction() (txmodel.CompiledInstruction, error) {
	programIDIndex, err := c.readByte()
	if err != nil {
		return txmodel.CompiledInstruction{}, err
	}
	accountIndices, err := c.readIndexVec()
	if err != nil {
		return txmodel.CompiledInstruction{}, err
	}
	dataLen, err := c.readShortVecLen()
	if err != nil {
		return txmodel.CompiledInstruction{}, err
	}
	data, err := c.readBytes(dataLen)
	if err != nil {
		return txmodel.CompiledInstruction{}, err
	}
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	return txmodel.CompiledInstruction{
		ProgramIDIndex: programIDIndex,
		AccountIndices: accountIndices,
		Data:           dataCopy,
	}, nil
}

func (c *cursor) readAddressTableLookup() (txmodel.AddressTableLookup, error) {
	accountKey, err := c.readPubkey()
	if err != nil {
		return txmodel.AddressTableLookup{}, err
	}
	writable, err := c.readIndexVec()
	if err != nil {
		return txmodel.AddressTableLookup{}, err
	}
	readonly, err := c.readIndexVec()
	if err != nil {
		return txmodel.AddressTableLookup{}, err
	}
	return txmodel.AddressTableLookup{
		AccountKey:      accountKey,
		WritableIndexes: writable,
		ReadonlyIndexes: readonly,
	}, nil
}
