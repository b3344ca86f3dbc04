// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

package svt

import "testing"

func TestNewLeafNodeEmptyCollapsesToNil(t *testing.T) {
	t.Parallel()

	vals, _ := NewValues(KindInt32, 0)
	leaf, err := NewLeaf(nil, vals)
	if err != nil {
		t.Fatalf("NewLeaf: %v", err)
	}
	if n := newLeafNode(leaf); n != nil {
		t.Errorf("newLeafNode(empty) = %v, want nil", n)
	}
}

func TestCloneShallowSharesChildren(t *testing.T) {
	t.Parallel()

	leaf := mkLeaf(t, []int32{1}, []int32{5})
	child := newLeafNode(leaf)

	root := newInteriorNode(2)
	root.children[0] = child

	clone := root.cloneShallow()
	if clone == root {
		t.Fatalf("cloneShallow returned the same pointer")
	}
	if clone.children[0] != root.children[0] {
		t.Errorf("cloneShallow did not share untouched children")
	}

	clone.children[0] = nil
	if root.children[0] == nil {
		t.Errorf("mutating clone's children slice mutated the original")
	}
}

func TestIsEmptyInterior(t *testing.T) {
	t.Parallel()

	var nilNode *Node
	if !nilNode.isEmptyInterior() {
		t.Errorf("nil node should be an empty interior")
	}

	leaf := mkLeaf(t, []int32{1}, []int32{1})
	leafNode := newLeafNode(leaf)
	if leafNode.isEmptyInterior() {
		t.Errorf("leaf node reported as empty interior")
	}

	empty := newInteriorNode(3)
	if !empty.isEmptyInterior() {
		t.Errorf("interior node with no children reported as non-empty")
	}

	empty.children[1] = leafNode
	if empty.isEmptyInterior() {
		t.Errorf("interior node with a present child reported as empty")
	}
}

func TestDescendMissingBranchReturnsEmptyLeaf(t *testing.T) {
	t.Parallel()

	root := newInteriorNode(2)
	got := descend(root, 2, []int32{1, 1})
	if !got.IsEmpty() {
		t.Errorf("descend into an absent branch returned a non-empty leaf")
	}

	if got := descend(nil, 2, []int32{1, 1}); !got.IsEmpty() {
		t.Errorf("descend(nil, ...) returned a non-empty leaf")
	}
}

func TestNnzSumsAcrossDepth(t *testing.T) {
	t.Parallel()

	leafA := newLeafNode(mkLeaf(t, []int32{1, 2}, []int32{1, 2}))
	leafB := newLeafNode(mkLeaf(t, []int32{1}, []int32{3}))

	mid := newInteriorNode(2)
	mid.children[0] = leafA
	mid.children[1] = leafB

	root := newInteriorNode(1)
	root.children[0] = mid

	if got := nnz(root, 3); got != 3 {
		t.Errorf("nnz = %d, want 3", got)
	}
	if got := nnz(nil, 3); got != 0 {
		t.Errorf("nnz(nil) = %d, want 0", got)
	}
}
