// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

package svt

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromDenseToDenseRoundTrip(t *testing.T) {
	t.Parallel()

	dim := Dim{2, 3}
	data := intValues(t, []int32{1, 0, 0, 4, 0, 6}) // column-major, 2x3

	s, err := FromDense(dim, KindInt32, data)
	if err != nil {
		t.Fatalf("FromDense: %v", err)
	}
	if s.NNZ() != 3 {
		t.Fatalf("NNZ() = %d, want 3", s.NNZ())
	}

	back, err := ToDense(s)
	if err != nil {
		t.Fatalf("ToDense: %v", err)
	}
	if diff := cmp.Diff(valuesToSlice(t, data), valuesToSlice(t, back)); diff != "" {
		t.Errorf("ToDense(FromDense(data)) mismatch (-want +got):\n%s", diff)
	}
}

func valuesToSlice(t *testing.T, v Values) []any {
	t.Helper()
	out := make([]any, v.Len())
	for i := range out {
		out[i] = v.Get(i)
	}
	return out
}

func TestFromDenseAllZeroIsEmpty(t *testing.T) {
	t.Parallel()

	data := intValues(t, make([]int32, 9))
	s, err := FromDense(Dim{3, 3}, KindInt32, data)
	if err != nil {
		t.Fatalf("FromDense: %v", err)
	}
	if !s.IsEmpty() {
		t.Errorf("all-zero dense input should produce an empty SVT")
	}
}

func TestFromDenseShapeMismatch(t *testing.T) {
	t.Parallel()

	data := intValues(t, []int32{1, 2, 3})
	if _, err := FromDense(Dim{2, 2}, KindInt32, data); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestFromDenseKindMismatch(t *testing.T) {
	t.Parallel()

	data := intValues(t, []int32{1, 2, 3, 4})
	if _, err := FromDense(Dim{2, 2}, KindFloat64, data); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestToDense3D(t *testing.T) {
	t.Parallel()

	dim := Dim{2, 2, 2}
	coo := COO{
		NZIndex: []int32{
			1, 1, 1,
			2, 1, 2,
		},
		NZData: intValues(t, []int32{100, 200}),
	}
	s, err := FromCOO(dim, KindInt32, coo)
	if err != nil {
		t.Fatalf("FromCOO: %v", err)
	}

	dense, err := ToDense(s)
	if err != nil {
		t.Fatalf("ToDense: %v", err)
	}
	if dense.Len() != 8 {
		t.Fatalf("dense.Len() = %d, want 8", dense.Len())
	}
	// column-major offset of (1,1,1) is 0
	if got := dense.Get(0); got != int32(100) {
		t.Errorf("dense[0] = %v, want 100", got)
	}
	// column-major offset of (2,1,2) is 1 + 0*2 + 1*4 = 5
	if got := dense.Get(5); got != int32(200) {
		t.Errorf("dense[5] = %v, want 200", got)
	}
}
