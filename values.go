// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

package svt

import "fmt"

// Complex128Pair is this engine's Complex128 scalar: two Float64
// lanes, avoiding a dependency on the builtin complex128 type so
// Values can stay a plain tagged union of slices.
type Complex128Pair struct {
	Re, Im float64
}

// Cloner lets a foreign (Any-kind) value control its own deep copy.
// Grounded directly on the teacher's cloner.go:
//
//	type Cloner[V any] interface { Clone() V }
//
// de-generified here because Any already is `any`, not a type parameter.
// If a stored Any value implements Cloner, copy operations use Clone();
// otherwise the handle is copied by (shallow) assignment.
type Cloner interface {
	Clone() any
}

// Values is a kind-tagged, homogeneous vector. Exactly one of the
// typed slices is populated, selected by Kind — the runtime analogue
// of the registry's dispatch table (C1), generalized from the
// teacher's closed nodeType-byte + type-switch idiom to element kinds.
type Values struct {
	Kind Kind

	b    []bool
	i32  []int32
	f64  []float64
	c128 []Complex128Pair
	byt  []byte
	str  []string
	any_ []any
}

// NewValues allocates a Values of the given kind and length n, filled
// with the kind's zero value.
func NewValues(kind Kind, n int) (Values, error) {
	if !kind.valid() {
		return Values{}, ErrUnsupportedKind
	}
	v := Values{Kind: kind}
	switch kind {
	case KindBool:
		v.b = make([]bool, n)
	case KindInt32:
		v.i32 = make([]int32, n)
	case KindFloat64:
		v.f64 = make([]float64, n)
	case KindComplex128:
		v.c128 = make([]Complex128Pair, n)
	case KindByte:
		v.byt = make([]byte, n)
	case KindString:
		v.str = make([]string, n)
	case KindAny:
		v.any_ = make([]any, n)
	}
	return v, nil
}

// Len returns the number of elements.
func (v Values) Len() int {
	switch v.Kind {
	case KindBool:
		return len(v.b)
	case KindInt32:
		return len(v.i32)
	case KindFloat64:
		return len(v.f64)
	case KindComplex128:
		return len(v.c128)
	case KindByte:
		return len(v.byt)
	case KindString:
		return len(v.str)
	case KindAny:
		return len(v.any_)
	default:
		return 0
	}
}

// Get returns the element at i, boxed as any.
func (v Values) Get(i int) any {
	switch v.Kind {
	case KindBool:
		return v.b[i]
	case KindInt32:
		return v.i32[i]
	case KindFloat64:
		return v.f64[i]
	case KindComplex128:
		return v.c128[i]
	case KindByte:
		return v.byt[i]
	case KindString:
		return v.str[i]
	case KindAny:
		return v.any_[i]
	default:
		return nil
	}
}

// IsZero reports whether the element at i is the kind's zero value.
// This is C1's is_zero predicate.
func (v Values) IsZero(i int) bool {
	switch v.Kind {
	case KindBool:
		return !v.b[i]
	case KindInt32:
		return v.i32[i] == 0
	case KindFloat64:
		return v.f64[i] == 0
	case KindComplex128:
		return v.c128[i].Re == 0 && v.c128[i].Im == 0
	case KindByte:
		return v.byt[i] == 0
	case KindString:
		return v.str[i] == ""
	case KindAny:
		return v.any_[i] == nil
	default:
		return true
	}
}

// Set stores x at index i, type-asserting it against v's Kind. This is
// the external-facing counterpart to Get/CopyOne: callers outside this
// package (the inspection CLI, tests) have no access to the unexported
// typed slices and must go through Set to build literal Values.
func (v Values) Set(i int, x any) error {
	switch v.Kind {
	case KindBool:
		b, ok := x.(bool)
		if !ok {
			return fmt.Errorf("%w: want bool, got %T", ErrTypeMismatch, x)
		}
		v.b[i] = b
	case KindInt32:
		n, ok := x.(int32)
		if !ok {
			return fmt.Errorf("%w: want int32, got %T", ErrTypeMismatch, x)
		}
		v.i32[i] = n
	case KindFloat64:
		f, ok := x.(float64)
		if !ok {
			return fmt.Errorf("%w: want float64, got %T", ErrTypeMismatch, x)
		}
		v.f64[i] = f
	case KindComplex128:
		c, ok := x.(Complex128Pair)
		if !ok {
			return fmt.Errorf("%w: want Complex128Pair, got %T", ErrTypeMismatch, x)
		}
		v.c128[i] = c
	case KindByte:
		b, ok := x.(byte)
		if !ok {
			return fmt.Errorf("%w: want byte, got %T", ErrTypeMismatch, x)
		}
		v.byt[i] = b
	case KindString:
		s, ok := x.(string)
		if !ok {
			return fmt.Errorf("%w: want string, got %T", ErrTypeMismatch, x)
		}
		v.str[i] = s
	case KindAny:
		v.any_[i] = x
	default:
		return ErrUnsupportedKind
	}
	return nil
}

// CopyOne copies one element from src[srcOff] to v[dstOff]. This is
// C1's copy_one. For the Any kind, if the source value implements
// Cloner, its Clone() is used; otherwise the handle is assigned as-is.
func (v Values) CopyOne(dstOff int, src Values, srcOff int) {
	switch v.Kind {
	case KindBool:
		v.b[dstOff] = src.b[srcOff]
	case KindInt32:
		v.i32[dstOff] = src.i32[srcOff]
	case KindFloat64:
		v.f64[dstOff] = src.f64[srcOff]
	case KindComplex128:
		v.c128[dstOff] = src.c128[srcOff]
	case KindByte:
		v.byt[dstOff] = src.byt[srcOff]
	case KindString:
		v.str[dstOff] = src.str[srcOff]
	case KindAny:
		x := src.any_[srcOff]
		if c, ok := x.(Cloner); ok {
			v.any_[dstOff] = c.Clone()
		} else {
			v.any_[dstOff] = x
		}
	}
}

// CopyRun copies n contiguous elements starting at srcOff into v
// starting at dstOff. This is C1's copy_run: equivalent to n calls of
// CopyOne, but uses the stdlib's bulk copy() for fixed-width kinds
// (Bool, Int32, Float64, Complex128, Byte) — a byte-level bulk copy in
// spirit, since Go's copy() on a typed slice is a single memmove.
// String also uses copy(); only Any copies element-by-element, since
// each element must run through Cloner.
func (v Values) CopyRun(dstOff int, src Values, srcOff, n int) {
	switch v.Kind {
	case KindBool:
		copy(v.b[dstOff:dstOff+n], src.b[srcOff:srcOff+n])
	case KindInt32:
		copy(v.i32[dstOff:dstOff+n], src.i32[srcOff:srcOff+n])
	case KindFloat64:
		copy(v.f64[dstOff:dstOff+n], src.f64[srcOff:srcOff+n])
	case KindComplex128:
		copy(v.c128[dstOff:dstOff+n], src.c128[srcOff:srcOff+n])
	case KindByte:
		copy(v.byt[dstOff:dstOff+n], src.byt[srcOff:srcOff+n])
	case KindString:
		copy(v.str[dstOff:dstOff+n], src.str[srcOff:srcOff+n])
	case KindAny:
		for off := 0; off < n; off++ {
			v.CopyOne(dstOff+off, src, srcOff+off)
		}
	}
}

// Slice returns the sub-vector [lo:hi), sharing backing storage.
func (v Values) Slice(lo, hi int) Values {
	out := Values{Kind: v.Kind}
	switch v.Kind {
	case KindBool:
		out.b = v.b[lo:hi]
	case KindInt32:
		out.i32 = v.i32[lo:hi]
	case KindFloat64:
		out.f64 = v.f64[lo:hi]
	case KindComplex128:
		out.c128 = v.c128[lo:hi]
	case KindByte:
		out.byt = v.byt[lo:hi]
	case KindString:
		out.str = v.str[lo:hi]
	case KindAny:
		out.any_ = v.any_[lo:hi]
	}
	return out
}
