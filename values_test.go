// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

package svt

import (
	"errors"
	"testing"
)

func TestValuesSetGet(t *testing.T) {
	t.Parallel()

	v, err := NewValues(KindFloat64, 3)
	if err != nil {
		t.Fatalf("NewValues: %v", err)
	}
	if err := v.Set(0, 1.5); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := v.Set(2, -2.0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := v.Get(0); got != 1.5 {
		t.Errorf("Get(0) = %v, want 1.5", got)
	}
	if got := v.Get(1); got != 0.0 {
		t.Errorf("Get(1) = %v, want zero value", got)
	}
	if !v.IsZero(1) {
		t.Errorf("IsZero(1) = false, want true")
	}
	if v.IsZero(0) {
		t.Errorf("IsZero(0) = true, want false")
	}
}

func TestValuesSetTypeMismatch(t *testing.T) {
	t.Parallel()

	v, err := NewValues(KindInt32, 1)
	if err != nil {
		t.Fatalf("NewValues: %v", err)
	}
	if err := v.Set(0, "not an int32"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Set with wrong type: expected ErrTypeMismatch, got %v", err)
	}
}

func TestValuesCopyRunBulk(t *testing.T) {
	t.Parallel()

	src, _ := NewValues(KindInt32, 4)
	for i, x := range []int32{10, 20, 30, 40} {
		_ = src.Set(i, x)
	}

	dst, _ := NewValues(KindInt32, 4)
	dst.CopyRun(1, src, 0, 2)

	if got := dst.Get(0); got != int32(0) {
		t.Errorf("dst[0] = %v, want untouched zero", got)
	}
	if got := dst.Get(1); got != int32(10) {
		t.Errorf("dst[1] = %v, want 10", got)
	}
	if got := dst.Get(2); got != int32(20) {
		t.Errorf("dst[2] = %v, want 20", got)
	}
}

type cloneableTag struct{ n int }

func (c cloneableTag) Clone() any { return cloneableTag{n: c.n + 1000} }

func TestValuesCopyOneUsesCloner(t *testing.T) {
	t.Parallel()

	src, _ := NewValues(KindAny, 1)
	_ = src.Set(0, cloneableTag{n: 1})

	dst, _ := NewValues(KindAny, 1)
	dst.CopyOne(0, src, 0)

	got, ok := dst.Get(0).(cloneableTag)
	if !ok {
		t.Fatalf("dst.Get(0) = %v, want cloneableTag", dst.Get(0))
	}
	if got.n != 1001 {
		t.Errorf("CopyOne did not route through Clone(): got n=%d, want 1001", got.n)
	}
}

func TestValuesSlice(t *testing.T) {
	t.Parallel()

	v, _ := NewValues(KindString, 3)
	_ = v.Set(0, "a")
	_ = v.Set(1, "b")
	_ = v.Set(2, "c")

	sub := v.Slice(1, 3)
	if sub.Len() != 2 {
		t.Fatalf("sub.Len() = %d, want 2", sub.Len())
	}
	if got := sub.Get(0); got != "b" {
		t.Errorf("sub.Get(0) = %v, want b", got)
	}
}
