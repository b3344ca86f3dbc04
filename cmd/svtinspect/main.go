// Copyright (c) 2025 sparsetree authors
// SPDX-License-Identifier: MIT

// Command svtinspect reads a coordinate-list text file, builds an SVT,
// and reports its shape and density. Grounded on the teacher's
// cmd/main.go: a small synchronous stdlib-`log`-driven demo, replaced
// here with a single-pass inspection instead of the teacher's
// goroutine-driven SyncLite stress loop (svt.SVT is not a concurrent
// type; see DESIGN.md).
//
// Input format, two header lines followed by one row per line:
//
//	dims 3,4,2
//	kind double
//	1,1,1 3.5
//	2,3,1 -1
//	3,4,2 2.25
//
// dims holds Dim.Validate-shaped, comma-separated dimension sizes; kind
// is one of the wire tokens accepted by ParseKind. Each data row is
// a comma-separated 1-based multi-index followed by a value literal.
// Only Bool, Int32, Float64, Byte and String kinds are supported by
// this text format; Complex128 and Any have no plain-text literal form
// here and are rejected with an error.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sparsetree/svt"
)

func main() {
	log.SetFlags(0)

	path := flag.String("f", "", "path to a COO text file (required)")
	linear := flag.Int64("at", 0, "if > 0, look up this 1-based linear index and print its value")
	flag.Parse()

	if *path == "" {
		log.Fatal("svtinspect: -f <file> is required")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("svtinspect: %v", err)
	}
	defer f.Close()

	s, err := parseCOOFile(f)
	if err != nil {
		log.Fatalf("svtinspect: %v", err)
	}

	fmt.Printf("dim:  %v\n", s.Dim)
	fmt.Printf("kind: %v\n", s.Kind)
	fmt.Printf("nnz:  %d\n", s.NNZ())

	if *linear > 0 {
		idx := make([]int32, s.NDim())
		if err := linearIndexLookup(s, *linear, idx); err != nil {
			log.Fatalf("svtinspect: %v", err)
		}
		val, ok, err := s.At(idx)
		if err != nil {
			log.Fatalf("svtinspect: %v", err)
		}
		fmt.Printf("at linear %d (multi-index %v): %v (present=%v)\n", *linear, idx, val, ok)
	}
}

// linearIndexLookup decodes a 1-based linear offset into the
// multi-index At expects, the same column-major arithmetic
// FromDense/ToDense use internally (At itself only accepts a
// multi-index).
func linearIndexLookup(s svt.SVT, lin int64, out []int32) error {
	return decodeLinear(s.Dim, lin, out)
}

func parseCOOFile(f *os.File) (svt.SVT, error) {
	sc := bufio.NewScanner(f)

	if !sc.Scan() {
		return svt.SVT{}, fmt.Errorf("svtinspect: empty input, want a %q header line first", "dims ...")
	}
	dim, err := parseDimsLine(sc.Text())
	if err != nil {
		return svt.SVT{}, err
	}

	if !sc.Scan() {
		return svt.SVT{}, fmt.Errorf("svtinspect: missing %q header line", "kind ...")
	}
	kind, err := parseKindLine(sc.Text())
	if err != nil {
		return svt.SVT{}, err
	}

	var nzIndex []int32
	var literals []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return svt.SVT{}, fmt.Errorf("svtinspect: row %q: want \"i1,i2,...,iN value\"", line)
		}
		idx, err := parseIntList(fields[0])
		if err != nil {
			return svt.SVT{}, err
		}
		if len(idx) != len(dim) {
			return svt.SVT{}, fmt.Errorf("svtinspect: row %q has %d indices, want %d", line, len(idx), len(dim))
		}
		nzIndex = append(nzIndex, idx...)
		literals = append(literals, fields[1])
	}
	if err := sc.Err(); err != nil {
		return svt.SVT{}, err
	}

	vals, err := parseLiterals(kind, literals)
	if err != nil {
		return svt.SVT{}, err
	}

	return svt.FromCOO(dim, kind, svt.COO{NZIndex: nzIndex, NZData: vals})
}

func parseDimsLine(line string) (svt.Dim, error) {
	const prefix = "dims "
	if !strings.HasPrefix(line, prefix) {
		return nil, fmt.Errorf("svtinspect: want %q header, got %q", "dims ...", line)
	}
	sizes, err := parseIntList(strings.TrimPrefix(line, prefix))
	if err != nil {
		return nil, err
	}
	dim := svt.Dim(sizes)
	if err := dim.Validate(); err != nil {
		return nil, err
	}
	return dim, nil
}

func parseKindLine(line string) (svt.Kind, error) {
	const prefix = "kind "
	if !strings.HasPrefix(line, prefix) {
		return svt.KindInvalid, fmt.Errorf("svtinspect: want %q header, got %q", "kind ...", line)
	}
	return svt.ParseKind(strings.TrimSpace(strings.TrimPrefix(line, prefix)))
}

func parseIntList(s string) ([]int32, error) {
	parts := strings.Split(s, ",")
	out := make([]int32, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("svtinspect: %q: %w", p, err)
		}
		out[i] = int32(n)
	}
	return out, nil
}

func parseLiterals(kind svt.Kind, literals []string) (svt.Values, error) {
	vals, err := svt.NewValues(kind, len(literals))
	if err != nil {
		return svt.Values{}, err
	}
	for i, lit := range literals {
		x, err := parseLiteral(kind, lit)
		if err != nil {
			return svt.Values{}, err
		}
		if err := vals.Set(i, x); err != nil {
			return svt.Values{}, err
		}
	}
	return vals, nil
}

func parseLiteral(kind svt.Kind, lit string) (any, error) {
	switch kind {
	case svt.KindBool:
		return strconv.ParseBool(lit)
	case svt.KindInt32:
		n, err := strconv.ParseInt(lit, 10, 32)
		return int32(n), err
	case svt.KindFloat64:
		return strconv.ParseFloat(lit, 64)
	case svt.KindByte:
		n, err := strconv.ParseUint(lit, 10, 8)
		return byte(n), err
	case svt.KindString:
		return lit, nil
	default:
		return nil, fmt.Errorf("svtinspect: kind %v has no plain-text literal form", kind)
	}
}

// decodeLinear mirrors svt.linearToMulti's column-major contract
// (unexported in package svt; the CLI is outside that package, so it
// reimplements the same arithmetic against the public Dim type).
func decodeLinear(dim svt.Dim, lin int64, out []int32) error {
	if lin < 1 {
		return fmt.Errorf("svtinspect: linear index %d is not positive", lin)
	}
	rem := lin - 1
	for j := 0; j < len(dim); j++ {
		d := int64(dim[j])
		out[j] = int32(rem%d) + 1
		rem /= d
	}
	if rem != 0 {
		return fmt.Errorf("svtinspect: linear index %d exceeds product of dims", lin)
	}
	return nil
}
