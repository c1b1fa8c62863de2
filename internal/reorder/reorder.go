// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package reorder implements the record gather used to permute, select and
// duplicate the records of packed attribute buffers.
//
// A record is elemBytes consecutive bytes. Gather writes record indices[i] of
// src to position i of dst. Instead of copying byte by byte, it copies each
// record as a short run of the widest unsigned integer type that evenly
// divides elemBytes. The common attribute shapes (flags, 16-bit colors,
// RGB8 triples, 32-bit scalars, half-float triples, doubles, float XYZ) have
// fully unrolled loops; every other width goes through a strided loop.
package reorder

import (
	"fmt"
	"unsafe"
)

// Path identifies the copy loop a Strategy runs.
type Path uint8

const (
	// Unrolled copies a fixed number of primitives per record with no inner loop.
	Unrolled Path = iota

	// Strided copies Count primitives per record in an inner loop.
	Strided

	// Memmove copies whole records with copy. Used when a buffer is not
	// aligned for the planned primitive width.
	Memmove
)

// String returns the path name.
func (p Path) String() string {
	switch p {
	case Unrolled:
		return "unrolled"
	case Strided:
		return "strided"
	case Memmove:
		return "memmove"
	default:
		return fmt.Sprintf("Path(%d)", uint8(p))
	}
}

// Strategy describes how one record is copied: Count primitives of Width bytes.
type Strategy struct {
	Width int
	Count int
	Path  Path
}

// String renders the strategy as "3x32bit/unrolled".
func (s Strategy) String() string {
	return fmt.Sprintf("%dx%dbit/%s", s.Count, 8*s.Width, s.Path)
}

// Plan returns the copy strategy for records of elemBytes bytes.
// elemBytes must be positive.
func Plan(elemBytes int) Strategy {
	switch elemBytes {
	case 1:
		return Strategy{Width: 1, Count: 1, Path: Unrolled}
	case 2:
		return Strategy{Width: 2, Count: 1, Path: Unrolled}
	case 3:
		return Strategy{Width: 1, Count: 3, Path: Unrolled}
	case 4:
		return Strategy{Width: 4, Count: 1, Path: Unrolled}
	case 6:
		return Strategy{Width: 2, Count: 3, Path: Unrolled}
	case 8:
		return Strategy{Width: 8, Count: 1, Path: Unrolled}
	case 12:
		return Strategy{Width: 4, Count: 3, Path: Unrolled}
	case 16:
		return Strategy{Width: 8, Count: 2, Path: Unrolled}
	case 24:
		return Strategy{Width: 8, Count: 3, Path: Unrolled}
	}
	switch {
	case elemBytes%8 == 0:
		return Strategy{Width: 8, Count: elemBytes / 8, Path: Strided}
	case elemBytes%4 == 0:
		return Strategy{Width: 4, Count: elemBytes / 4, Path: Strided}
	case elemBytes%2 == 0:
		return Strategy{Width: 2, Count: elemBytes / 2, Path: Strided}
	default:
		return Strategy{Width: 1, Count: elemBytes, Path: Strided}
	}
}

// Gather copies record indices[i] of src into record i of dst for every i,
// and returns the strategy it used.
//
// dst must hold exactly len(indices) records and every index must address a
// record of src. Gather does not validate either; a violation panics with a
// runtime bounds error. dst and src must not overlap.
func Gather(dst, src []byte, indices []int, elemBytes int) Strategy {
	if elemBytes <= 0 {
		panic(fmt.Sprintf("reorder: invalid record width %d", elemBytes))
	}
	s := Plan(elemBytes)
	if len(indices) == 0 {
		return s
	}
	dst = dst[:len(indices)*elemBytes]

	if !aligned(dst, s.Width) || !aligned(src, s.Width) {
		gatherRecords(dst, src, indices, elemBytes)
		return Strategy{Width: elemBytes, Count: 1, Path: Memmove}
	}

	switch elemBytes {
	case 1:
		gather1(dst, src, indices)
	case 2:
		gather1(cast[uint16](dst), cast[uint16](src), indices)
	case 3:
		gather3(dst, src, indices)
	case 4:
		gather1(cast[uint32](dst), cast[uint32](src), indices)
	case 6:
		gather3(cast[uint16](dst), cast[uint16](src), indices)
	case 8:
		gather1(cast[uint64](dst), cast[uint64](src), indices)
	case 12:
		gather3(cast[uint32](dst), cast[uint32](src), indices)
	case 16:
		gather2(cast[uint64](dst), cast[uint64](src), indices)
	case 24:
		gather3(cast[uint64](dst), cast[uint64](src), indices)
	default:
		switch s.Width {
		case 8:
			gatherN(cast[uint64](dst), cast[uint64](src), indices, s.Count)
		case 4:
			gatherN(cast[uint32](dst), cast[uint32](src), indices, s.Count)
		case 2:
			gatherN(cast[uint16](dst), cast[uint16](src), indices, s.Count)
		default:
			gatherN(dst, src, indices, s.Count)
		}
	}
	return s
}

// primitive is the set of copy widths.
type primitive interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

func gather1[T primitive](dst, src []T, indices []int) {
	dst = dst[:len(indices)]
	for i, j := range indices {
		dst[i] = src[j]
	}
}

func gather2[T primitive](dst, src []T, indices []int) {
	dst = dst[:2*len(indices)]
	for i, j := range indices {
		d := dst[2*i : 2*i+2 : 2*i+2]
		s := src[2*j : 2*j+2 : 2*j+2]
		d[0], d[1] = s[0], s[1]
	}
}

func gather3[T primitive](dst, src []T, indices []int) {
	dst = dst[:3*len(indices)]
	for i, j := range indices {
		d := dst[3*i : 3*i+3 : 3*i+3]
		s := src[3*j : 3*j+3 : 3*j+3]
		d[0], d[1], d[2] = s[0], s[1], s[2]
	}
}

func gatherN[T primitive](dst, src []T, indices []int, count int) {
	dst = dst[:count*len(indices)]
	for i, j := range indices {
		d := dst[count*i : count*(i+1)]
		copy(d, src[count*j:count*(j+1)])
	}
}

// gatherRecords is the alignment-independent path.
func gatherRecords(dst, src []byte, indices []int, elemBytes int) {
	for i, j := range indices {
		copy(dst[i*elemBytes:(i+1)*elemBytes], src[j*elemBytes:(j+1)*elemBytes])
	}
}

// cast reinterprets b as a slice of T. The caller guarantees that b is
// aligned for T; trailing bytes that do not fill a whole T are dropped.
func cast[T primitive](b []byte) []T {
	var zero T
	n := len(b) / int(unsafe.Sizeof(zero))
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n) //nolint:gosec // alignment checked by Gather
}

func aligned(b []byte, width int) bool {
	if width == 1 || len(b) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))%uintptr(width) == 0 //nolint:gosec // address inspection only
}
