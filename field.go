// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pointcloud

import (
	"fmt"

	"github.com/gogpu/pointcloud/internal/reorder"
)

// Field is one named attribute column of a point cloud: Len() records of
// Spec().Size() bytes each, packed record-major with no padding.
//
// The buffer is owned exclusively by the Field. Reorder and Select replace it
// wholesale; name and spec never change. A Field with Len() == 1 is a
// constant (uniform) value shared by all points and is never reordered.
//
// A Field is not safe for concurrent use. Distinct Fields are independent.
type Field struct {
	name string
	spec TypeSpec
	size int
	data []byte
}

// NewField returns a Field of size zeroed records.
// It panics if spec is the zero TypeSpec or size is negative.
func NewField(name string, spec TypeSpec, size int) *Field {
	mustFieldShape(spec, size)
	return &Field{
		name: name,
		spec: spec,
		size: size,
		data: make([]byte, size*spec.Size()),
	}
}

// NewFieldFromBytes returns a Field that takes ownership of data. The caller
// must not use data afterwards. It returns an error wrapping ErrDataLength
// unless len(data) == size*spec.Size().
func NewFieldFromBytes(name string, spec TypeSpec, size int, data []byte) (*Field, error) {
	mustFieldShape(spec, size)
	if want := size * spec.Size(); len(data) != want {
		return nil, fmt.Errorf("%w: field %q has %d bytes, want %d (%d x %s)",
			ErrDataLength, name, len(data), want, size, spec)
	}
	return &Field{name: name, spec: spec, size: size, data: data}, nil
}

func mustFieldShape(spec TypeSpec, size int) {
	if !spec.Valid() {
		panic("pointcloud: field created with an invalid type spec")
	}
	if size < 0 {
		panic(fmt.Sprintf("pointcloud: negative field size %d", size))
	}
}

// Name returns the attribute name.
func (f *Field) Name() string { return f.name }

// Spec returns the record layout.
func (f *Field) Spec() TypeSpec { return f.spec }

// Len returns the number of records.
func (f *Field) Len() int { return f.size }

// IsConstant reports whether f holds a single record shared by every point.
func (f *Field) IsConstant() bool { return f.size == 1 }

// Bytes returns the live buffer. It is valid until the next Reorder or Select.
func (f *Field) Bytes() []byte { return f.data }

// Record returns the bytes of record i, aliasing the live buffer.
func (f *Field) Record(i int) []byte {
	w := f.spec.Size()
	return f.data[i*w : (i+1)*w : (i+1)*w]
}

// SetRecord overwrites record i with b, which must be exactly one record long.
func (f *Field) SetRecord(i int, b []byte) {
	if len(b) != f.spec.Size() {
		panic(fmt.Sprintf("pointcloud: SetRecord with %d bytes on %s", len(b), f))
	}
	copy(f.Record(i), b)
}

// String renders the field as "<spec> <name>", e.g. "float[3] position".
func (f *Field) String() string {
	return fmt.Sprintf("%s %s", f.spec, f.name)
}

// Reorder permutes the records so that new record i is old record indices[i].
//
// Reorder is the trusted fast path: indices must have exactly Len() entries,
// each in [0, Len()). A length mismatch panics; an out-of-range index panics
// with a runtime bounds error. Constant fields are left untouched whatever
// indices holds. Use CheckedReorder for untrusted input and Select to change
// the number of records.
func (f *Field) Reorder(indices []int) {
	if f.size == 1 {
		return
	}
	if len(indices) != f.size {
		panic(fmt.Sprintf("pointcloud: reorder of %s with %d indices, want %d", f, len(indices), f.size))
	}
	f.gather(indices)
}

// Select rebuilds the field from the records named by indices, which may
// repeat or omit records. Afterwards Len() == len(indices). Constant fields
// are left untouched.
func (f *Field) Select(indices []int) {
	if f.size == 1 {
		return
	}
	f.gather(indices)
	f.size = len(indices)
}

// CheckedReorder is Reorder with its preconditions validated. It returns an
// error wrapping ErrSizeMismatch or ErrIndexOutOfRange and leaves the field
// unchanged instead of panicking.
func (f *Field) CheckedReorder(indices []int) error {
	if f.size == 1 {
		return nil
	}
	if len(indices) != f.size {
		return fmt.Errorf("%w: %s has %d records, got %d indices", ErrSizeMismatch, f, f.size, len(indices))
	}
	if err := checkIndices(indices, f.size); err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	f.gather(indices)
	return nil
}

// checkIndices verifies that every index addresses one of n records.
func checkIndices(indices []int, n int) error {
	for i, j := range indices {
		if j < 0 || j >= n {
			return fmt.Errorf("%w: indices[%d] = %d, record count %d", ErrIndexOutOfRange, i, j, n)
		}
	}
	return nil
}

func (f *Field) gather(indices []int) {
	w := f.spec.Size()
	next := make([]byte, len(indices)*w)
	s := reorder.Gather(next, f.data, indices, w)
	f.data = next

	if s.Path == reorder.Memmove {
		Logger().Warn("pointcloud: unaligned field buffer, copying record by record",
			"field", f.name,
			"spec", f.spec.String())
	}
	Logger().Debug("pointcloud: field reordered",
		"field", f.name,
		"spec", f.spec.String(),
		"records", len(indices),
		"strategy", s.String())
}
