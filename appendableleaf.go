// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

package svt

import "fmt"

// appendableLeaf is the transient variant used during COO ingestion
// pass 2: a pre-sized (positions, values) pair plus a fill counter.
// Positions are appended in COO row order — callers must supply rows
// already sorted by position — and the leaf is finalized (trimmed)
// once full.
//
// Grounded on the teacher's internal/sparse.Array[T]: the same
// "pre-sized backing slice, track how much is filled" shape, minus the
// popcount bitset (here fill order is sequential, not sparse-indexed).
type appendableLeaf struct {
	positions []int32
	values    Values
	n         int // fill count; capacity is len(positions)
}

// newAppendableLeaf allocates an appendable leaf of exactly size
// entries, for element kind kind.
func newAppendableLeaf(kind Kind, size int) (*appendableLeaf, error) {
	values, err := NewValues(kind, size)
	if err != nil {
		return nil, err
	}
	return &appendableLeaf{
		positions: make([]int32, size),
		values:    values,
	}, nil
}

// full reports whether every pre-sized slot has been filled.
func (a *appendableLeaf) full() bool {
	return a.n == len(a.positions)
}

// append writes (position, src[srcOff]) into the next free slot.
// Returns an error if the leaf is already full. Callers should check
// full() immediately after a successful append to know when to
// finalize.
func (a *appendableLeaf) append(position int32, src Values, srcOff int) error {
	if a.full() {
		return fmt.Errorf("%w: appendableLeaf already full (size %d)", ErrInvariantViolated, len(a.positions))
	}
	a.positions[a.n] = position
	a.values.CopyOne(a.n, src, srcOff)
	a.n++
	return nil
}

// finalize converts a fully-filled appendable leaf into a Leaf. It is
// an invariant violation to finalize before full() is true: pass 1 of
// COO ingestion only ever allocates an appendable leaf sized exactly
// to its eventual occupancy, so a short finalize indicates a
// pass-1/pass-2 bookkeeping bug.
func (a *appendableLeaf) finalize() (Leaf, error) {
	if !a.full() {
		return Leaf{}, fmt.Errorf("%w: finalize on partially-filled appendableLeaf (%d/%d)", ErrInvariantViolated, a.n, len(a.positions))
	}
	return Leaf{Positions: a.positions, Values: a.values}, nil
}
