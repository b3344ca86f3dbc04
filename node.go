// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

package svt

// nodeKind tags what a Node currently holds. Grounded on the teacher's
// node.go nodeType byte enum (nullNode/fullNode/leafNode/intermediateNode)
// + type-switch dispatch; generalized from "4 IP-trie node shapes" down
// to the 2 shapes a recursive sparse-array tree actually needs.
// Emptiness itself is represented by a nil *Node, not a kind value —
// mirroring the teacher's "a sub-tree is empty iff it has no nonzero
// element; empty branches are never retained" invariant.
type nodeKind uint8

const (
	nodeInterior nodeKind = iota // children is an ordered sequence of sub-trees
	nodeLeaf                     // this slot is the innermost 1-D sparse slice

	// nodeIDS and nodeExtended are transient bottom-slot variants that
	// exist only during one subassignment call (the incoming writes
	// destined for this leaf, and that leaf extended with them); they
	// never appear in a tree returned to a caller.
	nodeIDS
	nodeExtended
)

// Node is one level of the sparse array's node tree. A *Node is nil to
// mean "empty sub-tree". A non-nil Node is either:
//
//   - nodeInterior: children is length d_{ndim-1} for whatever ndim
//     this node sits at (outer dimension last); each child is itself
//     the root of a (ndim-1)-dimensional sub-tree.
//   - nodeLeaf: leaf is the 1-D sparse slice for dimension 0. Reached
//     when ndim has recursed down to 1.
type Node struct {
	kind     nodeKind
	children []*Node
	leaf     Leaf
	ids      []int // atid offsets into the write batch; nodeIDS/nodeExtended only
}

// newInteriorNode allocates an Interior node with size empty children.
func newInteriorNode(size int) *Node {
	return &Node{kind: nodeInterior, children: make([]*Node, size)}
}

// newLeafNode wraps leaf as a Leaf-kind Node. Returns nil (empty) if
// leaf is empty, preserving the "no empty node is ever retained"
// invariant at the construction boundary.
func newLeafNode(leaf Leaf) *Node {
	if leaf.IsEmpty() {
		return nil
	}
	return &Node{kind: nodeLeaf, leaf: leaf}
}

// cloneShallow copies n's own struct and, for an Interior node, its
// children slice header (a fresh backing array with the same child
// pointers) — not the children themselves. This is the copy-on-descend
// primitive: grounded on the teacher's tablepersist.go
// cloneFlat/InsertPersist pattern ("clone the interior node (not its
// children) when it is still identical to the original's corresponding
// node").
func (n *Node) cloneShallow() *Node {
	if n == nil {
		return nil
	}
	out := &Node{kind: n.kind, leaf: n.leaf}
	if n.kind == nodeInterior {
		out.children = append([]*Node(nil), n.children...)
	}
	return out
}

// isEmptyInterior reports whether every child of an Interior node is
// nil, i.e. the node itself should collapse to empty. A leaf node is
// never an empty interior; a nil node always is.
func (n *Node) isEmptyInterior() bool {
	if n == nil {
		return true
	}
	if n.kind != nodeInterior {
		return false
	}
	for _, c := range n.children {
		if c != nil {
			return false
		}
	}
	return true
}

// nnz recursively sums leaf lengths under root, for a tree of ndim
// dimensions.
func nnz(root *Node, ndim int) int64 {
	if root == nil {
		return 0
	}
	if ndim == 1 {
		return int64(root.leaf.Len())
	}
	var total int64
	for _, c := range root.children {
		total += nnz(c, ndim-1)
	}
	return total
}

// descend follows a 1-based multi-index path (ordered like Dim, so the
// outermost dimension is path[ndim-1]) from root, outermost dimension
// first, and returns the addressed leaf, or an empty Leaf if no such
// leaf is stored.
func descend(root *Node, ndim int, path []int32) Leaf {
	n := root
	for d := ndim - 1; d >= 1; d-- {
		if n == nil {
			return Leaf{}
		}
		idx := path[d] - 1 // 1-based -> 0-based
		if int(idx) < 0 || int(idx) >= len(n.children) {
			return Leaf{}
		}
		n = n.children[idx]
	}
	if n == nil {
		return Leaf{}
	}
	return n.leaf
}
