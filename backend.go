// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pointcloud

import "fmt"

// BackendType identifies a native scalar type in the graphics backend's type
// enumeration. Values are the OpenGL scalar enumerants, which are also what
// most point-cloud file formats and viewers use to tag attribute columns.
//
// The channel count of an attribute is not part of its BackendType; a
// renderer binds Classify(spec) together with spec.Count().
type BackendType uint32

// Backend scalar types.
const (
	GLByte          BackendType = 0x1400 // GL_BYTE
	GLUnsignedByte  BackendType = 0x1401 // GL_UNSIGNED_BYTE
	GLShort         BackendType = 0x1402 // GL_SHORT
	GLUnsignedShort BackendType = 0x1403 // GL_UNSIGNED_SHORT
	GLInt           BackendType = 0x1404 // GL_INT
	GLUnsignedInt   BackendType = 0x1405 // GL_UNSIGNED_INT
	GLFloat         BackendType = 0x1406 // GL_FLOAT
	GLDouble        BackendType = 0x140A // GL_DOUBLE
	GLHalfFloat     BackendType = 0x140B // GL_HALF_FLOAT
)

// String returns the OpenGL enumerant name.
func (t BackendType) String() string {
	switch t {
	case GLByte:
		return "GL_BYTE"
	case GLUnsignedByte:
		return "GL_UNSIGNED_BYTE"
	case GLShort:
		return "GL_SHORT"
	case GLUnsignedShort:
		return "GL_UNSIGNED_SHORT"
	case GLInt:
		return "GL_INT"
	case GLUnsignedInt:
		return "GL_UNSIGNED_INT"
	case GLFloat:
		return "GL_FLOAT"
	case GLDouble:
		return "GL_DOUBLE"
	case GLHalfFloat:
		return "GL_HALF_FLOAT"
	default:
		return fmt.Sprintf("BackendType(0x%04X)", uint32(t))
	}
}

// Classify maps spec to its backend scalar type. Count is not consulted.
//
// Classify panics for a spec with no backend type (Unknown kind or the zero
// TypeSpec). Substituting a fallback type would make the renderer read the
// buffer with the wrong layout.
func Classify(spec TypeSpec) BackendType {
	switch spec.kind {
	case Float:
		switch spec.elsize {
		case 2:
			return GLHalfFloat
		case 4:
			return GLFloat
		case 8:
			return GLDouble
		}
	case Int:
		switch spec.elsize {
		case 1:
			return GLByte
		case 2:
			return GLShort
		case 4:
			return GLInt
		}
	case Uint:
		switch spec.elsize {
		case 1:
			return GLUnsignedByte
		case 2:
			return GLUnsignedShort
		case 4:
			return GLUnsignedInt
		}
	}
	panic(fmt.Sprintf("pointcloud: no backend type for %s (kind %s, %d-byte elements)",
		spec, spec.kind, spec.elsize))
}
