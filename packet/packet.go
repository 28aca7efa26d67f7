// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package packet defines the raw wire packet the core pipeline consumes:
// an opaque byte buffer plus the metadata envelope upstream (signature
// verification / networking) attaches to it.
package packet

import "net"

// Meta is the metadata envelope upstream must populate before a packet is
// handed to record construction. The buffer never inspects fields beyond
// these.
type Meta struct {
	// Addr is the source network address the packet arrived from.
	Addr net.IP
	// SenderStake is the upstream-supplied stake weight of the packet's
	// source, used as the buffer's secondary ordering key.
	SenderStake uint64
	// IsSimpleVoteTx flags packets upstream has identified as simple vote
	// transactions.
	IsSimpleVoteTx bool
}

// Packet is an opaque, read-only byte buffer plus its metadata envelope.
type Packet struct {
	Data []byte
	Meta Meta
}

// Size is the packet's declared size: the number of bytes of Data that are
// actually populated.
func (p *Packet) Size() int {
	return len(p.Data)
}
