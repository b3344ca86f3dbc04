// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

package svt

import "fmt"

// COO is a coordinate-list form: nzindex is a (nnz, ndim) 1-based index
// matrix (row-major, ndim int32 columns per row), nzdata is the
// parallel value vector. Rows are assumed sorted in row-major order
// with respect to the innermost dimension first — FromCOO does not
// re-sort; it is the caller's contract to supply rows in that order.
type COO struct {
	NZIndex []int32 // flattened (nnz, ndim) row-major
	NZData  Values
}

// row returns the ndim-length 1-based coordinate for row i.
func (c COO) row(i, ndim int) []int32 {
	return c.NZIndex[i*ndim : i*ndim+ndim]
}

// FromCOO builds an SVT from coordinate-list form: a two-pass
// grow-then-fill construction grounded on the teacher's recursive
// insert-at-depth walk (bartnode.go/barttable.go), generalized from
// "walk 8-bit address bytes, insert one prefix" to "walk dim[ndim-1..1],
// grow per-leaf counts, then fill".
func FromCOO(dim Dim, kind Kind, coo COO) (SVT, error) {
	if err := dim.Validate(); err != nil {
		return SVT{}, err
	}
	if !kind.valid() {
		return SVT{}, ErrUnsupportedKind
	}
	if coo.NZData.Kind != KindInvalid && coo.NZData.Kind != kind {
		return SVT{}, ErrTypeMismatch
	}
	ndim := len(dim)
	nnzRows := coo.NZData.Len()
	if len(coo.NZIndex) != nnzRows*ndim {
		return SVT{}, fmt.Errorf("%w: nzindex has %d entries, want %d (nnz=%d, ndim=%d)",
			ErrShapeMismatch, len(coo.NZIndex), nnzRows*ndim, nnzRows, ndim)
	}

	// Validate every row's range up front; fail fast on the first bad
	// row/entry rather than leaving a partially-built tree behind.
	for i := 0; i < nnzRows; i++ {
		row := coo.row(i, ndim)
		for j, v := range row {
			if v < 1 || int64(v) > int64(dim[j]) {
				return SVT{}, fmt.Errorf("%w: row %d, dim %d: %d outside [1,%d]", ErrIndexOutOfBounds, i, j, v, dim[j])
			}
		}
	}

	if nnzRows == 0 {
		out, err := Empty(dim, kind)
		return out, err
	}

	// One-dimensional fast path: a single leaf, no tree to build.
	if ndim == 1 {
		positions := make([]int32, nnzRows)
		for i := 0; i < nnzRows; i++ {
			positions[i] = coo.row(i, 1)[0]
		}
		values, err := NewValues(kind, nnzRows)
		if err != nil {
			return SVT{}, err
		}
		values.CopyRun(0, coo.NZData, 0, nnzRows)
		leaf, err := NewLeaf(positions, values)
		if err != nil {
			return SVT{}, err
		}
		return SVT{Dim: dim, Kind: kind, root: newLeafNode(leaf)}, nil
	}

	// Pass 1: grow the branches, size the leaves.
	root := newBuildNode(dim, ndim)
	for i := 0; i < nnzRows; i++ {
		row := coo.row(i, ndim)
		bottom := descendBuild(root, dim, row)
		bottom.counts[row[1]-1]++
	}

	// Pass 2: allocate and fill.
	for i := 0; i < nnzRows; i++ {
		row := coo.row(i, ndim)
		bottom := descendBuild(root, dim, row)
		slot := row[1] - 1
		if bottom.leaves[slot] == nil {
			ap, err := newAppendableLeaf(kind, int(bottom.counts[slot]))
			if err != nil {
				return SVT{}, err
			}
			bottom.leaves[slot] = ap
		}
		if err := bottom.leaves[slot].append(row[0], coo.NZData, i); err != nil {
			return SVT{}, err
		}
	}

	frozen, err := freezeBuild(root)
	if err != nil {
		return SVT{}, err
	}
	return SVT{Dim: dim, Kind: kind, root: frozen}, nil
}

// buildNode is the transient pass-1/pass-2 count-then-fill scaffold.
// Above the bottom level it mirrors the final
// Node's Interior shape; at the bottom level (depth == 1) counts/leaves
// replace the final leaf children one slot at a time.
type buildNode struct {
	isBottom bool
	children []*buildNode     // valid when !isBottom
	counts   []int32          // valid when isBottom
	leaves   []*appendableLeaf // valid when isBottom
}

func newBuildNode(dim Dim, ndim int) *buildNode {
	if ndim == 2 {
		d1 := int(dim[1])
		return &buildNode{isBottom: true, counts: make([]int32, d1), leaves: make([]*appendableLeaf, d1)}
	}
	d := int(dim[ndim-1])
	return &buildNode{children: make([]*buildNode, d)}
}

// descendBuild follows row from the outermost dimension down to the
// bottom (depth-1) buildNode, creating interior children as needed.
func descendBuild(root *buildNode, dim Dim, row []int32) *buildNode {
	n := root
	ndim := len(dim)
	for d := ndim - 1; d >= 2; d-- {
		idx := row[d] - 1
		if n.children[idx] == nil {
			childNDim := d // the child is a sub-SVT of d dimensions (dims 0..d-1)
			n.children[idx] = newBuildNode(dim[:childNDim], childNDim)
		}
		n = n.children[idx]
	}
	return n
}

// freezeBuild converts a fully-filled buildNode tree into the final
// immutable Node tree, finalizing appendable leaves and pruning
// all-empty branches.
func freezeBuild(bn *buildNode) (*Node, error) {
	if bn.isBottom {
		out := newInteriorNode(len(bn.counts))
		anyPresent := false
		for i, ap := range bn.leaves {
			if ap == nil {
				continue
			}
			leaf, err := ap.finalize()
			if err != nil {
				return nil, err
			}
			out.children[i] = newLeafNode(leaf)
			if out.children[i] != nil {
				anyPresent = true
			}
		}
		if !anyPresent {
			return nil, nil
		}
		return out, nil
	}

	out := newInteriorNode(len(bn.children))
	anyPresent := false
	for i, child := range bn.children {
		if child == nil {
			continue
		}
		frozenChild, err := freezeBuild(child)
		if err != nil {
			return nil, err
		}
		out.children[i] = frozenChild
		if frozenChild != nil {
			anyPresent = true
		}
	}
	if !anyPresent {
		return nil, nil
	}
	return out, nil
}

// ToCOO materializes an SVT to coordinate-list form: a recursive walk
// maintaining a path buffer, emitting one row per stored (position,
// value) pair. Fails with ErrTooManyNonzeros if nnz exceeds
// INT32_MAX, since nzindex is int32-indexed.
func ToCOO(s SVT) (COO, error) {
	total := s.NNZ()
	if total > maxInt32 {
		return COO{}, fmt.Errorf("%w: nnz=%d", ErrTooManyNonzeros, total)
	}

	ndim := s.NDim()
	values, err := NewValues(s.Kind, int(total))
	if err != nil {
		return COO{}, err
	}
	out := COO{
		NZIndex: make([]int32, int(total)*ndim),
		NZData:  values,
	}

	path := make([]int32, ndim)
	pos := 0
	walkToCOO(s.root, ndim, path, out, &pos)
	return out, nil
}

func walkToCOO(n *Node, ndim int, path []int32, out COO, pos *int) {
	if n == nil {
		return
	}
	if ndim == 1 {
		positions, values, ln := n.leaf.Split()
		for i := 0; i < ln; i++ {
			path[0] = positions[i]
			copy(out.NZIndex[*pos*len(path):*pos*len(path)+len(path)], path)
			out.NZData.CopyOne(*pos, values, i)
			*pos++
		}
		return
	}
	for i, child := range n.children {
		path[ndim-1] = int32(i + 1)
		walkToCOO(child, ndim-1, path, out, pos)
	}
}
