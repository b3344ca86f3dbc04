// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

package svt

import (
	"fmt"
	"math"
	"slices"
)

// SubassignIndex selects one of the three index forms a scattered
// write accepts: a 1-based multi-index matrix, or a 1-based linear
// index vector in either 32-bit integer or 64-bit floating-integer
// form. At most one form may be set; an index with every form nil
// (or empty) names no positions, so the write is a no-op.
type SubassignIndex struct {
	Mindex    []int32   // flattened (L, ndim), 1-based, or nil
	Lindex32  []int32   // 1-based linear indices, or nil
	Lindex64  []float64 // 1-based linear indices (integer-valued), or nil
}

// length returns L and validates that at most one index form is set.
// With none set (every form nil) the batch is empty and L is 0.
func (idx SubassignIndex) length(ndim int) (int, error) {
	set := 0
	var l int
	if idx.Mindex != nil {
		set++
		if len(idx.Mindex)%ndim != 0 {
			return 0, fmt.Errorf("%w: Mindex length %d is not a multiple of ndim %d", ErrShapeMismatch, len(idx.Mindex), ndim)
		}
		l = len(idx.Mindex) / ndim
		if int64(l) > maxInt32 {
			return 0, fmt.Errorf("%w: Mindex row count %d exceeds INT32_MAX", ErrShapeMismatch, l)
		}
	}
	if idx.Lindex32 != nil {
		set++
		l = len(idx.Lindex32)
	}
	if idx.Lindex64 != nil {
		set++
		l = len(idx.Lindex64)
	}
	if set > 1 {
		return 0, fmt.Errorf("%w: at most one of Mindex/Lindex32/Lindex64 may be set", ErrShapeMismatch)
	}
	return l, nil
}

// writePath fills out (length ndim) with the 1-based multi-index for
// write i, validating range (ErrIndexOutOfBounds) and, for a floating
// Lindex, validity (ErrInvalidIndex).
func (idx SubassignIndex) writePath(i int, dim Dim, ndim int, out []int32) error {
	if idx.Mindex != nil {
		copy(out, idx.Mindex[i*ndim:i*ndim+ndim])
		for j, v := range out {
			if v < 1 || int64(v) > int64(dim[j]) {
				return fmt.Errorf("%w: Mindex row %d, dim %d: %d outside [1,%d]", ErrIndexOutOfBounds, i, j, v, dim[j])
			}
		}
		return nil
	}

	var lin int64
	if idx.Lindex32 != nil {
		v := idx.Lindex32[i]
		if v < 1 {
			return fmt.Errorf("%w: Lindex[%d]=%d is not positive", ErrInvalidIndex, i, v)
		}
		lin = int64(v)
	} else {
		f := idx.Lindex64[i]
		if math.IsNaN(f) || f < 1 || f != math.Trunc(f) {
			return fmt.Errorf("%w: Lindex[%d]=%v is not a positive integer", ErrInvalidIndex, i, f)
		}
		lin = int64(f)
	}
	if lin > dim.Product() {
		return fmt.Errorf("%w: Lindex[%d]=%d exceeds product of dims", ErrIndexOutOfBounds, i, lin)
	}
	return linearToMulti(dim, lin, out)
}

// Subassign writes vals at the positions named by idx into x, returning
// a new SVT. x is never mutated; untouched subtrees are shared with
// the result (copy-on-descend, grounded on the teacher's
// tablepersist.go InsertPersist/UpdatePersist).
func Subassign(x SVT, idx SubassignIndex, vals Values) (SVT, error) {
	ndim := x.NDim()
	l, err := idx.length(ndim)
	if err != nil {
		return SVT{}, err
	}
	if vals.Kind != x.Kind {
		return SVT{}, ErrTypeMismatch
	}
	if vals.Len() != l {
		return SVT{}, fmt.Errorf("%w: vals length %d, want %d", ErrShapeMismatch, vals.Len(), l)
	}

	// A zero-volume shape has no addressable positions: any nonzero L
	// is out of bounds, but L==0 stays a no-op.
	if x.Dim.Product() == 0 {
		if l == 0 {
			return x, nil
		}
		return SVT{}, fmt.Errorf("%w: shape has zero volume", ErrIndexOutOfBounds)
	}

	if l == 0 {
		return x, nil
	}

	if ndim == 1 {
		return subassign1D(x, idx, vals, l)
	}
	return subassignND(x, idx, vals, l)
}

// subassign1D is the dedicated fast path for a 1-D SVT: build a leaf
// directly from the index/value vectors (sort, dedup with last write
// winning), merge with the existing leaf if any, strip zeros.
func subassign1D(x SVT, idx SubassignIndex, vals Values, l int) (SVT, error) {
	if l > maxInt32 {
		return SVT{}, fmt.Errorf("%w: L=%d exceeds INT32_MAX", ErrTooManyAssignments, l)
	}

	positions := make([]int32, l)
	path := make([]int32, 1)
	for i := 0; i < l; i++ {
		if err := idx.writePath(i, x.Dim, 1, path); err != nil {
			return SVT{}, err
		}
		positions[i] = path[0]
	}

	built, err := buildLeafFromOrder(positions, vals)
	if err != nil {
		return SVT{}, err
	}

	merged := built
	if x.root != nil {
		merged, err = mergeLeaves(x.root.leaf, built)
		if err != nil {
			return SVT{}, err
		}
	}

	scratch := make([]int32, merged.Len())
	stripped, err := removeZeros(merged, scratch)
	if err != nil {
		return SVT{}, err
	}
	return SVT{Dim: x.Dim, Kind: x.Kind, root: newLeafNode(stripped)}, nil
}

// buildLeafFromOrder sorts (position, value) pairs by position with a
// stable sort, keeping the last occurrence of each repeated position
// (last-write-wins), and returns the resulting (unstripped) Leaf. Uses
// the standard library's slices.SortStableFunc, the same "slices"
// package the teacher imports directly in node.go.
func buildLeafFromOrder(positions []int32, vals Values) (Leaf, error) {
	l := len(positions)
	if l > maxLeafLen {
		return Leaf{}, fmt.Errorf("%w: %d writes to one leaf exceeds INT32_MAX", ErrTooManyAssignments, l)
	}

	order := make([]int, l)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return int(positions[a]) - int(positions[b])
	})

	outPositions := make([]int32, 0, l)
	values, err := NewValues(vals.Kind, l)
	if err != nil {
		return Leaf{}, err
	}
	out := 0
	for k := 0; k < len(order); {
		j := k
		for j+1 < len(order) && positions[order[j+1]] == positions[order[k]] {
			j++
		}
		// [k, j] share the same position; j is the last in write order
		// because the sort is stable and positions are pre-sorted by
		// ascending write index within each group.
		last := order[j]
		outPositions = append(outPositions, positions[last])
		values.CopyOne(out, vals, last)
		out++
		k = j + 1
	}

	return Leaf{Positions: outPositions, Values: values.Slice(0, out)}, nil
}

// subassignND implements the general two-pass scattered-write
// algorithm for ndim >= 2.
func subassignND(x SVT, idx SubassignIndex, vals Values, l int) (SVT, error) {
	b := &ansBuilder{xRoot: x.root, dim: x.Dim, ndim: x.NDim()}
	b.root = x.root

	path := make([]int32, x.NDim())
	for i := 0; i < l; i++ {
		if err := idx.writePath(i, x.Dim, x.NDim(), path); err != nil {
			return SVT{}, err
		}
		bottom := b.dispatch(path)
		slotIdx := int(path[1]) - 1
		slot := bottom.children[slotIdx]

		switch {
		case slot == nil:
			slot = &Node{kind: nodeIDS, ids: []int{i}}
		case slot.kind == nodeLeaf:
			slot = &Node{kind: nodeExtended, leaf: slot.leaf, ids: []int{i}}
		case slot.kind == nodeIDS, slot.kind == nodeExtended:
			if len(slot.ids)+1 > maxLeafLen {
				return SVT{}, fmt.Errorf("%w: more than INT32_MAX writes to one leaf", ErrTooManyAssignments)
			}
			slot.ids = append(slot.ids, i)
		}
		bottom.children[slotIdx] = slot
	}

	resolved, err := absorb(b.root, b.xRoot, b.ndim, idx, vals, x.Dim)
	if err != nil {
		return SVT{}, err
	}
	return SVT{Dim: x.Dim, Kind: x.Kind, root: resolved}, nil
}

// ansBuilder holds the in-progress result tree (root) alongside the
// original x.root, so that cloneOnDescend can tell whether a node has
// already been copy-on-write cloned earlier in this same call.
type ansBuilder struct {
	root  *Node
	xRoot *Node
	dim   Dim
	ndim  int
}

// dispatch walks path from the outermost dimension to depth 1,
// cloning-on-descend, and returns the depth-1 node (whose children are
// the bottom leaf/IDS/extended-leaf slots) — pass 1 of subassignment.
func (b *ansBuilder) dispatch(path []int32) *Node {
	if b.root == b.xRoot {
		if b.xRoot == nil {
			b.root = newInteriorNode(int(b.dim[b.ndim-1]))
		} else {
			b.root = b.xRoot.cloneShallow()
		}
	}

	ansNode := b.root
	xNode := b.xRoot
	for d := b.ndim - 1; d >= 2; d-- {
		idx := int(path[d]) - 1
		var xChild *Node
		if xNode != nil {
			xChild = xNode.children[idx]
		}
		child := ansNode.children[idx]
		if child == xChild {
			if xChild == nil {
				child = newInteriorNode(int(b.dim[d-1]))
			} else {
				child = xChild.cloneShallow()
			}
			ansNode.children[idx] = child
		}
		ansNode = child
		xNode = xChild
	}
	return ansNode
}

// absorb is pass 2 of subassignment: recursively resolves every touched
// bottom slot (IDS / extended leaf) into a final leaf, pruning any
// interior node that ends up with no present children. x is the node
// at the same tree position in the original SVT; whenever n == x the
// branch was never reached by dispatch this call, so absorb returns
// immediately without touching it — this is what keeps untouched
// subtrees genuinely shared rather than merely value-identical.
func absorb(n, x *Node, ndim int, idx SubassignIndex, vals Values, dim Dim) (*Node, error) {
	if n == x {
		return n, nil
	}

	if ndim == 1 {
		switch n.kind {
		case nodeIDS:
			built, err := buildLeafFromIDS(n.ids, idx, vals, dim)
			if err != nil {
				return nil, err
			}
			scratch := make([]int32, built.Len())
			stripped, err := removeZeros(built, scratch)
			if err != nil {
				return nil, err
			}
			return newLeafNode(stripped), nil
		case nodeExtended:
			built, err := buildLeafFromIDS(n.ids, idx, vals, dim)
			if err != nil {
				return nil, err
			}
			merged, err := mergeLeaves(n.leaf, built)
			if err != nil {
				return nil, err
			}
			scratch := make([]int32, merged.Len())
			stripped, err := removeZeros(merged, scratch)
			if err != nil {
				return nil, err
			}
			return newLeafNode(stripped), nil
		default:
			return nil, fmt.Errorf("%w: unexpected bottom-slot kind %d reached with n != x", ErrInvariantViolated, n.kind)
		}
	}

	anyPresent := false
	for i, c := range n.children {
		var xc *Node
		if x != nil {
			xc = x.children[i]
		}
		resolved, err := absorb(c, xc, ndim-1, idx, vals, dim)
		if err != nil {
			return nil, err
		}
		n.children[i] = resolved
		if resolved != nil {
			anyPresent = true
		}
	}
	if !anyPresent {
		return nil, nil
	}
	return n, nil
}

// buildLeafFromIDS resolves an IDS's atid offsets to (position, value)
// pairs — the position is each write's dimension-0 coordinate — and
// delegates to buildLeafFromOrder for the sort/dedup/last-wins step.
func buildLeafFromIDS(ids []int, idx SubassignIndex, vals Values, dim Dim) (Leaf, error) {
	ndim := len(dim)
	positions := make([]int32, len(ids))
	path := make([]int32, ndim)
	for k, atid := range ids {
		// writePath was already validated during pass 1; recompute the
		// dimension-0 coordinate cheaply rather than storing it per-IDS
		// entry.
		if err := idx.writePath(atid, dim, ndim, path); err != nil {
			return Leaf{}, err
		}
		positions[k] = path[0]
	}

	idsVals, err := NewValues(vals.Kind, len(ids))
	if err != nil {
		return Leaf{}, err
	}
	for k, atid := range ids {
		idsVals.CopyOne(k, vals, atid)
	}

	return buildLeafFromOrder(positions, idsVals)
}
