// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pointcloud

import "errors"

var (
	// ErrInvalidTypeSpec is returned when a scalar kind, width and channel
	// count do not describe a supported attribute layout.
	ErrInvalidTypeSpec = errors.New("pointcloud: invalid type spec")

	// ErrDataLength is returned when a buffer is not exactly size * spec.Size() bytes.
	ErrDataLength = errors.New("pointcloud: buffer length does not match size and type")

	// ErrSizeMismatch is returned when an index slice does not have one entry per record.
	ErrSizeMismatch = errors.New("pointcloud: index count does not match record count")

	// ErrIndexOutOfRange is returned when an index does not address an existing record.
	ErrIndexOutOfRange = errors.New("pointcloud: index out of range")

	// ErrPointCount is returned when a field's record count differs from its cloud's.
	ErrPointCount = errors.New("pointcloud: field point count does not match cloud")

	// ErrDuplicateField is returned when a cloud already has a field with the same name.
	ErrDuplicateField = errors.New("pointcloud: duplicate field name")

	// ErrFieldNotFound is returned when a cloud has no field with the requested name.
	ErrFieldNotFound = errors.New("pointcloud: field not found")

	// ErrClosed is returned by operations on a closed cloud.
	ErrClosed = errors.New("pointcloud: cloud is closed")
)
