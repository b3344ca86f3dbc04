// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

package svt

// ToDense materializes an SVT into a contiguous column-major buffer:
// the dense buffer is initialized to Kind's zero (NewValues zero-fills
// by construction) and the tree is recursively descended, copying
// each leaf's values to base_offset + (position-1).
func ToDense(s SVT) (Values, error) {
	n := s.Dim.Product()
	data, err := NewValues(s.Kind, int(n))
	if err != nil {
		return Values{}, err
	}
	fillDense(s.root, s.Dim, data, 0, s.NDim())
	return data, nil
}

func fillDense(n *Node, dim Dim, data Values, offset int64, ndim int) {
	if n == nil {
		return
	}
	if ndim == 1 {
		positions, values, ln := n.leaf.Split()
		for i := 0; i < ln; i++ {
			data.CopyOne(int(offset)+int(positions[i])-1, values, i)
		}
		return
	}
	childDim := dim[:ndim-1]
	childSize := childDim.Product()
	for i, child := range n.children {
		fillDense(child, childDim, data, offset+int64(i)*childSize, ndim-1)
	}
}

// FromDense builds an SVT from a contiguous column-major dense
// buffer: recursive descent, zero-suppressing at the innermost
// dimension, pruning all-empty branches on the way back up. Grounded
// on the same recursive-walk idiom as FromCOO/ToCOO, plus
// robpike-ivy's column-major offset arithmetic for N-D indexing.
func FromDense(dim Dim, kind Kind, data Values) (SVT, error) {
	if err := dim.Validate(); err != nil {
		return SVT{}, err
	}
	if !kind.valid() {
		return SVT{}, ErrUnsupportedKind
	}
	if data.Kind != kind {
		return SVT{}, ErrTypeMismatch
	}
	want := dim.Product()
	if int64(data.Len()) != want {
		return SVT{}, ErrShapeMismatch
	}

	root, err := denseToNode(dim, kind, data, 0, len(dim))
	if err != nil {
		return SVT{}, err
	}
	return SVT{Dim: dim, Kind: kind, root: root}, nil
}

func denseToNode(dim Dim, kind Kind, data Values, offset int64, ndim int) (*Node, error) {
	if ndim == 1 {
		d0 := int(dim[0])
		count := 0
		for p := 0; p < d0; p++ {
			if !data.IsZero(int(offset) + p) {
				count++
			}
		}
		if count == 0 {
			return nil, nil
		}
		positions := make([]int32, count)
		values, err := NewValues(kind, count)
		if err != nil {
			return nil, err
		}
		k := 0
		for p := 0; p < d0; p++ {
			if data.IsZero(int(offset) + p) {
				continue
			}
			positions[k] = int32(p + 1)
			values.CopyOne(k, data, int(offset)+p)
			k++
		}
		leaf, err := NewLeaf(positions, values)
		if err != nil {
			return nil, err
		}
		return newLeafNode(leaf), nil
	}

	childDim := dim[:ndim-1]
	childSize := childDim.Product()
	out := newInteriorNode(int(dim[ndim-1]))
	anyPresent := false
	for i := 0; i < int(dim[ndim-1]); i++ {
		child, err := denseToNode(childDim, kind, data, offset+int64(i)*childSize, ndim-1)
		if err != nil {
			return nil, err
		}
		out.children[i] = child
		if child != nil {
			anyPresent = true
		}
	}
	if !anyPresent {
		return nil, nil
	}
	return out, nil
}
