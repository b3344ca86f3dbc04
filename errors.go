// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

package svt

import "errors"

// Sentinel errors returned by every public entry point. Wrap with
// fmt.Errorf("%w: ...", Err...) for additional context; callers can
// still match with errors.Is.
var (
	// ErrUnsupportedKind is returned when an element kind token is
	// outside the closed set, or a bulk operation is asked to mix
	// incompatible kinds.
	ErrUnsupportedKind = errors.New("svt: unsupported element kind")

	// ErrTypeMismatch is returned when a value vector's kind differs
	// from the SVT's kind.
	ErrTypeMismatch = errors.New("svt: value kind does not match SVT kind")

	// ErrShapeMismatch is returned when input matrix/vector shapes are
	// inconsistent with each other or with ndim.
	ErrShapeMismatch = errors.New("svt: shape mismatch")

	// ErrIndexOutOfBounds is returned when a coordinate lies outside
	// its dimension's range.
	ErrIndexOutOfBounds = errors.New("svt: index out of bounds")

	// ErrInvalidIndex is returned for NA/NaN/non-positive/non-integer
	// index entries.
	ErrInvalidIndex = errors.New("svt: invalid index")

	// ErrTooManyNonzeros is returned when materializing to a
	// 32-bit-indexed form would overflow int32.
	ErrTooManyNonzeros = errors.New("svt: too many nonzeros for 32-bit index")

	// ErrTooManyAssignments is returned when more than INT32_MAX writes
	// land on a single innermost leaf during subassignment.
	ErrTooManyAssignments = errors.New("svt: too many assignments to one leaf")

	// ErrInvariantViolated signals an internal sanity failure that
	// should never be reachable from valid inputs. Surfaced as an
	// error (not a panic) so callers embedding this engine can decide
	// how to react; internally it behaves like the teacher's
	// "logic error, wrong node type" panics — a bug, not user error.
	ErrInvariantViolated = errors.New("svt: invariant violated")
)
