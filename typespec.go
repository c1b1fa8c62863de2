// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pointcloud

import (
	"fmt"
)

// ScalarKind is the numeric kind of a single attribute scalar.
type ScalarKind uint8

const (
	// Unknown is an opaque scalar. Unknown columns can be carried and
	// reordered but have no backend type.
	Unknown ScalarKind = iota

	// Float is an IEEE 754 binary floating point scalar (half, single or double).
	Float

	// Int is a two's complement signed integer scalar.
	Int

	// Uint is an unsigned integer scalar.
	Uint
)

// String returns the lower-case kind name.
func (k ScalarKind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("ScalarKind(%d)", uint8(k))
	}
}

// validWidth reports whether elsize bytes is a legal scalar width for k.
func (k ScalarKind) validWidth(elsize int) bool {
	switch k {
	case Float:
		return elsize == 2 || elsize == 4 || elsize == 8
	case Int, Uint:
		return elsize == 1 || elsize == 2 || elsize == 4
	case Unknown:
		return elsize == 1 || elsize == 2 || elsize == 4 || elsize == 8
	default:
		return false
	}
}

// TypeSpec describes the layout of one record of a point attribute: count
// scalars of kind Kind, each ElSize bytes wide, packed without padding.
//
// A TypeSpec can only be built through NewTypeSpec, MustTypeSpec or one of the
// shape helpers, so every non-zero TypeSpec is valid. TypeSpec is a small
// comparable value and is meant to be copied.
type TypeSpec struct {
	kind   ScalarKind
	elsize uint8
	count  uint32
}

// NewTypeSpec returns the TypeSpec for count scalars of the given kind and
// byte width. It returns an error wrapping ErrInvalidTypeSpec when the width
// is not legal for the kind (Float: 2, 4, 8; Int and Uint: 1, 2, 4;
// Unknown: 1, 2, 4, 8) or count is less than one.
func NewTypeSpec(kind ScalarKind, elsize, count int) (TypeSpec, error) {
	if !kind.validWidth(elsize) {
		return TypeSpec{}, fmt.Errorf("%w: %s with %d-byte elements", ErrInvalidTypeSpec, kind, elsize)
	}
	if count < 1 || uint64(count) > uint64(^uint32(0)) {
		return TypeSpec{}, fmt.Errorf("%w: channel count %d", ErrInvalidTypeSpec, count)
	}
	return TypeSpec{kind: kind, elsize: uint8(elsize), count: uint32(count)}, nil
}

// MustTypeSpec is like NewTypeSpec but panics on an invalid combination.
// Use it where the shape is fixed by the program, not by input data.
func MustTypeSpec(kind ScalarKind, elsize, count int) TypeSpec {
	spec, err := NewTypeSpec(kind, elsize, count)
	if err != nil {
		panic("pointcloud: " + err.Error())
	}
	return spec
}

// Half returns the TypeSpec of count 16-bit floats.
func Half(count int) TypeSpec { return MustTypeSpec(Float, 2, count) }

// Float32 returns the TypeSpec of count 32-bit floats.
func Float32(count int) TypeSpec { return MustTypeSpec(Float, 4, count) }

// Float64 returns the TypeSpec of count 64-bit floats.
func Float64(count int) TypeSpec { return MustTypeSpec(Float, 8, count) }

// Int8 returns the TypeSpec of count signed bytes.
func Int8(count int) TypeSpec { return MustTypeSpec(Int, 1, count) }

// Int16 returns the TypeSpec of count signed 16-bit integers.
func Int16(count int) TypeSpec { return MustTypeSpec(Int, 2, count) }

// Int32 returns the TypeSpec of count signed 32-bit integers.
func Int32(count int) TypeSpec { return MustTypeSpec(Int, 4, count) }

// Uint8 returns the TypeSpec of count unsigned bytes.
func Uint8(count int) TypeSpec { return MustTypeSpec(Uint, 1, count) }

// Uint16 returns the TypeSpec of count unsigned 16-bit integers.
func Uint16(count int) TypeSpec { return MustTypeSpec(Uint, 2, count) }

// Uint32 returns the TypeSpec of count unsigned 32-bit integers.
func Uint32(count int) TypeSpec { return MustTypeSpec(Uint, 4, count) }

// Kind returns the scalar kind.
func (s TypeSpec) Kind() ScalarKind { return s.kind }

// ElSize returns the byte width of one scalar.
func (s TypeSpec) ElSize() int { return int(s.elsize) }

// Count returns the number of scalars per record.
func (s TypeSpec) Count() int { return int(s.count) }

// Size returns the byte width of one record, ElSize() * Count().
func (s TypeSpec) Size() int { return int(s.elsize) * int(s.count) }

// Valid reports whether s was built by a validating constructor.
// Only the zero TypeSpec is invalid.
func (s TypeSpec) Valid() bool {
	return s.count > 0 && s.kind.validWidth(int(s.elsize))
}

// String renders s as a C-like declaration: half[n], float[n] and
// double[n] for floats, int{bits}_t[n] and uint{bits}_t[n] for integers.
func (s TypeSpec) String() string {
	if s.kind == Float {
		base := "?"
		switch s.elsize {
		case 2:
			base = "half"
		case 4:
			base = "float"
		case 8:
			base = "double"
		}
		return fmt.Sprintf("%s[%d]", base, s.count)
	}
	return fmt.Sprintf("%s%d_t[%d]", s.kind, 8*int(s.elsize), s.count)
}
