// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txmodel

import "golang.org/x/crypto/blake2b"

// HashMessage computes the message hash used as the buffer's deduplication
// and cross-reference key: a blake2b-256 digest of the exact message bytes
// the wire decoder sliced out of the packet (signatures excluded).
func HashMessage(messageBytes []byte) Hash {
	return Hash(blake2b.Sum256(messageBytes))
}
