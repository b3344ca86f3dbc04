// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

package svt

import (
	"fmt"
	"math"
)

// maxLeafLen is the largest length a Leaf's positions/values may have:
// a leaf is indexed and counted with int32, so it cannot exceed
// INT32_MAX entries.
const maxLeafLen = math.MaxInt32

// Leaf is a single-dimension sparse slice (C2): parallel, equal-length
// Positions (sorted, strictly increasing, 1-based, no zero values in
// Values). Grounded on the teacher's internal/sparse.Array[T], adapted
// from a popcount-indexed single-key insert structure to a
// bulk-constructed sorted run.
type Leaf struct {
	Positions []int32
	Values    Values
}

// NewLeaf validates and wraps (positions, values) into a Leaf. It does
// not re-sort or de-duplicate: callers (COO ingestion, merge, the
// subassignment absorb pass) are responsible for supplying positions
// that are already sorted, strictly increasing, and zero-free.
func NewLeaf(positions []int32, values Values) (Leaf, error) {
	if len(positions) != values.Len() {
		return Leaf{}, fmt.Errorf("%w: %d positions vs %d values", ErrShapeMismatch, len(positions), values.Len())
	}
	if len(positions) > maxLeafLen {
		return Leaf{}, fmt.Errorf("%w: leaf length %d exceeds INT32_MAX", ErrTooManyAssignments, len(positions))
	}
	return Leaf{Positions: positions, Values: values}, nil
}

// IsEmpty reports whether the leaf holds no entries. An SVT never
// retains an empty leaf as a present node; this helper lets callers
// test the boundary case directly.
func (l Leaf) IsEmpty() bool {
	return len(l.Positions) == 0
}

// Len is the number of stored entries.
func (l Leaf) Len() int {
	return len(l.Positions)
}

// Split is the cheap (positions, values, len) projection used
// throughout the converters and the subassignment engine.
func (l Leaf) Split() ([]int32, Values, int) {
	return l.Positions, l.Values, len(l.Positions)
}

// mergeLeaves returns a new leaf whose Positions is the sorted union
// of a.Positions and b.Positions; on a collision, b's value wins
// (incoming data overrides existing). Does not strip zeros — callers
// run removeZeros afterward.
func mergeLeaves(a, b Leaf) (Leaf, error) {
	if a.Values.Kind != KindInvalid && b.Values.Kind != KindInvalid && a.Values.Kind != b.Values.Kind {
		return Leaf{}, ErrTypeMismatch
	}
	kind := a.Values.Kind
	if kind == KindInvalid {
		kind = b.Values.Kind
	}

	maxLen := len(a.Positions) + len(b.Positions)
	if maxLen > maxLeafLen {
		return Leaf{}, fmt.Errorf("%w: merged leaf length %d exceeds INT32_MAX", ErrTooManyAssignments, maxLen)
	}

	positions := make([]int32, 0, maxLen)
	values, err := NewValues(kind, maxLen)
	if err != nil {
		return Leaf{}, err
	}

	i, j, out := 0, 0, 0
	for i < len(a.Positions) && j < len(b.Positions) {
		switch {
		case a.Positions[i] < b.Positions[j]:
			positions = append(positions, a.Positions[i])
			values.CopyOne(out, a.Values, i)
			i++
		case a.Positions[i] > b.Positions[j]:
			positions = append(positions, b.Positions[j])
			values.CopyOne(out, b.Values, j)
			j++
		default: // collision: b wins
			positions = append(positions, b.Positions[j])
			values.CopyOne(out, b.Values, j)
			i++
			j++
		}
		out++
	}
	for ; i < len(a.Positions); i++ {
		positions = append(positions, a.Positions[i])
		values.CopyOne(out, a.Values, i)
		out++
	}
	for ; j < len(b.Positions); j++ {
		positions = append(positions, b.Positions[j])
		values.CopyOne(out, b.Values, j)
		out++
	}

	return Leaf{Positions: positions, Values: values.Slice(0, out)}, nil
}

// removeZeros returns a leaf with zero-valued entries removed,
// preserving order; returns an empty Leaf if all entries were zero.
// scratchPositions must have length >= leaf.Len(); it is used as the
// output backing store so callers can reuse one buffer across many
// calls.
func removeZeros(leaf Leaf, scratchPositions []int32) (Leaf, error) {
	if len(scratchPositions) < leaf.Len() {
		return Leaf{}, fmt.Errorf("%w: scratch too small for removeZeros", ErrInvariantViolated)
	}

	values, err := NewValues(leaf.Values.Kind, leaf.Len())
	if err != nil {
		return Leaf{}, err
	}

	out := 0
	for i := 0; i < leaf.Len(); i++ {
		if leaf.Values.IsZero(i) {
			continue
		}
		scratchPositions[out] = leaf.Positions[i]
		values.CopyOne(out, leaf.Values, i)
		out++
	}
	if out == 0 {
		return Leaf{}, nil
	}

	positions := make([]int32, out)
	copy(positions, scratchPositions[:out])
	return Leaf{Positions: positions, Values: values.Slice(0, out)}, nil
}
