// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pendingbuffer

import "github.com/WBORSA/solana/record"

// minMaxHeap is a double-ended priority heap over envelope references,
// ordered by the less function below. It generalizes the single-ended
// container/heap-style queue (items slice, swap-based sift) into an
// interleaved min-max heap (Atkinson et al.): even levels hold the
// smaller-side invariant, odd levels the larger-side one, giving O(log n)
// push, popMin, and popMax without a second parallel structure.
type minMaxHeap struct {
	items []*record.Envelope
}

// less reports whether a sorts strictly before b: lower priority first,
// ties broken by lower sender stake. "Before" means "worse" — it is the
// min side of the heap.
func less(a, b *record.Envelope) bool {
	if a.Record.Priority != b.Record.Priority {
		return a.Record.Priority < b.Record.Priority
	}
	return a.Record.OriginalPacket.Meta.SenderStake < b.Record.OriginalPacket.Meta.SenderStake
}

func (h *minMaxHeap) Len() int { return len(h.items) }

func isMinLevel(i int) bool {
	level := 0
	for i > 0 {
		i = (i - 1) / 2
		level++
	}
	return level%2 == 0
}

func parent(i int) int          { return (i - 1) / 2 }
func hasParent(i int) bool      { return i > 0 }
func grandparent(i int) int     { return parent(parent(i)) }
func hasGrandparent(i int) bool { return hasParent(i) && hasParent(parent(i)) }

// push inserts e and restores the min-max heap invariant in O(log n).
func (h *minMaxHeap) push(e *record.Envelope) {
	h.items = append(h.items, e)
	h.trickleUp(len(h.items) - 1)
}

func (h *minMaxHeap) trickleUp(i int) {
	if !hasParent(i) {
		return
	}
	p := parent(i)
	if isMinLevel(i) {
		if less(h.items[p], h.items[i]) {
			h.items[i], h.items[p] = h.items[p], h.items[i]
			h.trickleUpMax(p)
		} else {
			h.trickleUpMin(i)
		}
	} else {
		if less(h.items[i], h.items[p]) {
			h.items[i], h.items[p] = h.items[p], h.items[i]
			h.trickleUpMin(p)
		} else {
			h.trickleUpMax(i)
		}
	}
}

func (h *minMaxHeap) trickleUpMin(i int) {
	for hasGrandparent(i) {
		gp := grandparent(i)
		if less(h.items[i], h.items[gp]) {
			h.items[i], h.items[gp] = h.items[gp], h.items[i]
			i = gp
		} else {
			return
		}
	}
}

func (h *minMaxHeap) trickleUpMax(i int) {
	for hasGrandparent(i) {
		gp := grandparent(i)
		if less(h.items[gp], h.items[i]) {
			h.items[i], h.items[gp] = h.items[gp], h.items[i]
			i = gp
		} else {
			return
		}
	}
}

// min returns the smallest envelope without removing it, or nil if empty.
func (h *minMaxHeap) min() *record.Envelope {
	if len(h.items) == 0 {
		return nil
	}
	return h.items[0]
}

// max returns the largest envelope without removing it, or nil if empty.
func (h *minMaxHeap) max() *record.Envelope {
	switch len(h.items) {
	case 0:
		return nil
	case 1:
		return h.items[0]
	case 2:
		return h.items[1]
	default:
		if less(h.items[1], h.items[2]) {
			return h.items[2]
		}
		return h.items[1]
	}
}

// maxIndex returns the index of the largest envelope, assuming a non-empty
// heap.
func (h *minMaxHeap) maxIndex() int {
	switch len(h.items) {
	case 1:
		return 0
	case 2:
		return 1
	default:
		if less(h.items[1], h.items[2]) {
			return 2
		}
		return 1
	}
}

// popMin removes and returns the smallest envelope, or nil if empty.
func (h *minMaxHeap) popMin() *record.Envelope {
	if len(h.items) == 0 {
		return nil
	}
	return h.remove(0)
}

// popMax removes and returns the largest envelope, or nil if empty.
func (h *minMaxHeap) popMax() *record.Envelope {
	if len(h.items) == 0 {
		return nil
	}
	return h.remove(h.maxIndex())
}

// remove deletes the element at index i and restores the heap invariant.
func (h *minMaxHeap) remove(i int) *record.Envelope {
	n := len(h.items) - 1
	removed := h.items[i]
	last := h.items[n]
	h.items[n] = nil
	h.items = h.items[:n]
	if i < n {
		h.items[i] = last
		h.trickleDown(i)
	}
	return removed
}

func (h *minMaxHeap) trickleDown(i int) {
	if isMinLevel(i) {
		h.trickleDownMin(i)
	} else {
		h.trickleDownMax(i)
	}
}

// childrenAndGrandchildren appends the indices of i's children and
// grandchildren that exist within the current heap size.
func (h *minMaxHeap) childrenAndGrandchildren(i int) []int {
	n := len(h.items)
	var out []int
	left, right := 2*i+1, 2*i+2
	for _, c := range [2]int{left, right} {
		if c < n {
			out = append(out, c)
			gl, gr := 2*c+1, 2*c+2
			for _, g := range [2]int{gl, gr} {
				if g < n {
					out = append(out, g)
				}
			}
		}
	}
	return out
}

func (h *minMaxHeap) trickleDownMin(i int) {
	for {
		descendants := h.childrenAndGrandchildren(i)
		if len(descendants) == 0 {
			return
		}
		m := descendants[0]
		for _, d := range descendants[1:] {
			if less(h.items[d], h.items[m]) {
				m = d
			}
		}
		if !less(h.items[m], h.items[i]) {
			return
		}
		h.items[i], h.items[m] = h.items[m], h.items[i]
		if isGrandchild(i, m) {
			p := parent(m)
			if less(h.items[p], h.items[m]) {
				h.items[m], h.items[p] = h.items[p], h.items[m]
			}
			i = m
			continue
		}
		return
	}
}

func (h *minMaxHeap) trickleDownMax(i int) {
	for {
		descendants := h.childrenAndGrandchildren(i)
		if len(descendants) == 0 {
			return
		}
		m := descendants[0]
		for _, d := range descendants[1:] {
			if less(h.items[m], h.items[d]) {
				m = d
			}
		}
		if !less(h.items[i], h.items[m]) {
			return
		}
		h.items[i], h.items[m] = h.items[m], h.items[i]
		if isGrandchild(i, m) {
			p := parent(m)
			if less(h.items[m], h.items[p]) {
				h.items[m], h.items[p] = h.items[p], h.items[m]
			}
			i = m
			continue
		}
		return
	}
}

func isGrandchild(ancestor, i int) bool {
	return parent(i) != ancestor
}

// rebuild replaces the heap's contents with items and restores the
// invariant by repeated insertion. Used by Retain, which always rebuilds
// from scratch rather than trying to patch the heap in place.
func (h *minMaxHeap) rebuild(items []*record.Envelope) {
	h.items = h.items[:0]
	for _, e := range items {
		h.push(e)
	}
}
