// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

// Package svt implements the core engine of a sparse N-dimensional
// array library: construction, materialization, and scattered
// subassignment over a Sparse Vector Tree (SVT) — a tree of depth
// N-1 whose leaves hold contiguous (position, value) pairs for a
// single 1-D slice.
//
// The package mirrors the teacher's (github.com/gaissmai/bart) shape:
// a small public root type backed by a recursively-nested node tree,
// edited via shallow-copy-on-descend so that subassignment never
// mutates the caller's original SVT.
package svt

import (
	"fmt"
	"math"
)

// Dim is an ordered shape descriptor: a sequence of non-negative
// 32-bit dimension sizes, outer dimension last.
type Dim []int32

// Validate checks that dim has at least one dimension and every entry
// is non-negative. A zero entry is a legal, if degenerate, shape: its
// SVT has zero volume and no storable positions. See Subassign for how
// a zero-volume shape behaves under a scattered write.
func (dim Dim) Validate() error {
	if len(dim) == 0 {
		return fmt.Errorf("%w: dim must have at least one dimension", ErrShapeMismatch)
	}
	for j, d := range dim {
		if d < 0 {
			return fmt.Errorf("%w: dim[%d] = %d is negative", ErrShapeMismatch, j, d)
		}
	}
	return nil
}

// Product returns ∏ dim as a 64-bit count (dimensions can multiply
// past 32 bits even though each one is itself int32).
func (dim Dim) Product() int64 {
	var p int64 = 1
	for _, d := range dim {
		p *= int64(d)
	}
	return p
}

// Equal reports whether two shapes are identical.
func (dim Dim) Equal(other Dim) bool {
	if len(dim) != len(other) {
		return false
	}
	for i := range dim {
		if dim[i] != other[i] {
			return false
		}
	}
	return true
}

// SVT is a Sparse Vector Tree: an N-dimensional array, the vast
// majority of whose elements equal Kind's zero value, represented by
// a tree of depth len(Dim)-1. The zero SVT{} is not valid; use Empty
// to construct an empty SVT of a given shape and kind.
type SVT struct {
	Dim  Dim
	Kind Kind
	root *Node // nil means empty
}

// Empty returns the distinguished empty SVT of the given shape and
// kind: valid, zero NNZ, root is nil.
func Empty(dim Dim, kind Kind) (SVT, error) {
	if err := dim.Validate(); err != nil {
		return SVT{}, err
	}
	if !kind.valid() {
		return SVT{}, ErrUnsupportedKind
	}
	return SVT{Dim: dim, Kind: kind}, nil
}

// IsEmpty reports whether the SVT has no nonzero elements.
func (s SVT) IsEmpty() bool {
	return s.root == nil
}

// NDim returns the number of dimensions.
func (s SVT) NDim() int {
	return len(s.Dim)
}

// NNZ returns the number of stored (structurally nonzero) entries.
func (s SVT) NNZ() int64 {
	return nnz(s.root, s.NDim())
}

// At returns the value stored at the 1-based multi-index idx (length
// NDim()), or nil and false if nothing is stored there. idx is
// validated against s.Dim.
func (s SVT) At(idx []int32) (any, bool, error) {
	if len(idx) != s.NDim() {
		return nil, false, fmt.Errorf("%w: index has %d entries, want %d", ErrShapeMismatch, len(idx), s.NDim())
	}
	for j, v := range idx {
		if v < 1 || int64(v) > int64(s.Dim[j]) {
			return nil, false, fmt.Errorf("%w: index[%d]=%d outside [1,%d]", ErrIndexOutOfBounds, j, v, s.Dim[j])
		}
	}
	leaf := descend(s.root, s.NDim(), idx)
	pos := idx[0]
	for i, p := range leaf.Positions {
		if p == pos {
			return leaf.Values.Get(i), true, nil
		}
		if p > pos {
			break
		}
	}
	return nil, false, nil
}

// linearToMulti converts a 1-based linear (column-major: first
// dimension varies fastest) index into a 1-based multi-index, written
// into out (length NDim()). Grounded on the same column-major
// addressing robpike-ivy's dense Value indexing arithmetic uses for
// its N-D arrays.
func linearToMulti(dim Dim, lin int64, out []int32) error {
	if lin < 1 {
		return fmt.Errorf("%w: linear index %d is not positive", ErrInvalidIndex, lin)
	}
	rem := lin - 1
	for j := 0; j < len(dim); j++ {
		d := int64(dim[j])
		out[j] = int32(rem%d) + 1
		rem /= d
	}
	if rem != 0 {
		return fmt.Errorf("%w: linear index %d exceeds product of dims", ErrIndexOutOfBounds, lin)
	}
	return nil
}

// multiToLinear maps a 1-based multi-index to its 0-based column-major
// offset, so multiToLinear(dim, idx)+1 is the linear index that
// linearToMulti turns back into idx.
func multiToLinear(dim Dim, idx []int32) int64 {
	var lin int64
	var stride int64 = 1
	for j := 0; j < len(dim); j++ {
		lin += int64(idx[j]-1) * stride
		stride *= int64(dim[j])
	}
	return lin
}

// maxInt32 is used throughout for INT32_MAX bounds checks: leaf
// lengths, nnz counts, and row counts are all int32-indexed.
const maxInt32 = math.MaxInt32
