// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

package svt

import (
	"errors"
	"testing"
)

func intValues(t *testing.T, data []int32) Values {
	t.Helper()
	v, err := NewValues(KindInt32, len(data))
	if err != nil {
		t.Fatalf("NewValues: %v", err)
	}
	for i, x := range data {
		if err := v.Set(i, x); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	return v
}

func TestFromCOOThenToCOORoundTrip2D(t *testing.T) {
	t.Parallel()

	dim := Dim{3, 4}
	coo := COO{
		NZIndex: []int32{
			1, 1,
			2, 1,
			3, 4,
			1, 3,
		},
		NZData: intValues(t, []int32{11, 21, 34, 13}),
	}

	s, err := FromCOO(dim, KindInt32, coo)
	if err != nil {
		t.Fatalf("FromCOO: %v", err)
	}
	if s.NNZ() != 4 {
		t.Fatalf("NNZ() = %d, want 4", s.NNZ())
	}

	for i := 0; i < 4; i++ {
		row := coo.row(i, 2)
		val, ok, err := s.At(row)
		if err != nil {
			t.Fatalf("At(%v): %v", row, err)
		}
		if !ok {
			t.Errorf("At(%v): not present", row)
			continue
		}
		if got := val.(int32); got != coo.NZData.Get(i).(int32) {
			t.Errorf("At(%v) = %d, want %d", row, got, coo.NZData.Get(i))
		}
	}

	back, err := ToCOO(s)
	if err != nil {
		t.Fatalf("ToCOO: %v", err)
	}
	if back.NZData.Len() != 4 {
		t.Fatalf("ToCOO nnz = %d, want 4", back.NZData.Len())
	}

	roundTrip, err := FromCOO(dim, KindInt32, back)
	if err != nil {
		t.Fatalf("FromCOO(ToCOO(s)): %v", err)
	}
	if roundTrip.NNZ() != s.NNZ() {
		t.Errorf("round trip NNZ mismatch: %d vs %d", roundTrip.NNZ(), s.NNZ())
	}
}

func TestFromCOOEmptyIsEmptySVT(t *testing.T) {
	t.Parallel()

	s, err := FromCOO(Dim{2, 2}, KindInt32, COO{NZData: intValues(t, nil)})
	if err != nil {
		t.Fatalf("FromCOO: %v", err)
	}
	if !s.IsEmpty() {
		t.Errorf("FromCOO with zero rows should be empty")
	}
}

func TestFromCOOOutOfRangeFailsFast(t *testing.T) {
	t.Parallel()

	coo := COO{
		NZIndex: []int32{1, 1, 5, 1},
		NZData:  intValues(t, []int32{1, 2}),
	}
	if _, err := FromCOO(Dim{2, 2}, KindInt32, coo); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
}

func TestFromCOOShapeMismatch(t *testing.T) {
	t.Parallel()

	coo := COO{
		NZIndex: []int32{1, 1, 2},
		NZData:  intValues(t, []int32{1, 2}),
	}
	if _, err := FromCOO(Dim{2, 2}, KindInt32, coo); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestFromCOO1DFastPath(t *testing.T) {
	t.Parallel()

	coo := COO{
		NZIndex: []int32{1, 4, 7},
		NZData:  intValues(t, []int32{10, 40, 70}),
	}
	s, err := FromCOO(Dim{10}, KindInt32, coo)
	if err != nil {
		t.Fatalf("FromCOO: %v", err)
	}
	if s.NNZ() != 3 {
		t.Errorf("NNZ() = %d, want 3", s.NNZ())
	}
	val, ok, err := s.At([]int32{4})
	if err != nil || !ok || val.(int32) != 40 {
		t.Errorf("At([4]) = %v, %v, %v, want 40, true, nil", val, ok, err)
	}
}

func TestFromCOO3DNested(t *testing.T) {
	t.Parallel()

	dim := Dim{2, 2, 2}
	coo := COO{
		NZIndex: []int32{
			1, 1, 1,
			2, 2, 2,
			1, 2, 1,
		},
		NZData: intValues(t, []int32{111, 222, 121}),
	}
	s, err := FromCOO(dim, KindInt32, coo)
	if err != nil {
		t.Fatalf("FromCOO: %v", err)
	}
	if s.NNZ() != 3 {
		t.Fatalf("NNZ() = %d, want 3", s.NNZ())
	}

	val, ok, err := s.At([]int32{2, 2, 2})
	if err != nil || !ok || val.(int32) != 222 {
		t.Errorf("At([2,2,2]) = %v, %v, %v, want 222, true, nil", val, ok, err)
	}
	_, ok, err = s.At([]int32{2, 1, 1})
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if ok {
		t.Errorf("At([2,1,1]) reported present, want absent")
	}

	dense, err := ToDense(s)
	if err != nil {
		t.Fatalf("ToDense: %v", err)
	}
	nz := 0
	for i := 0; i < dense.Len(); i++ {
		if !dense.IsZero(i) {
			nz++
		}
	}
	if int64(nz) != s.NNZ() {
		t.Errorf("dense nonzero count = %d, want %d", nz, s.NNZ())
	}
}
