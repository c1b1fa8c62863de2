// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pointcloud

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// Scalars are stored little-endian, the byte order GPU vertex fetch expects.

// Float64 decodes channel ch of record i and widens it to float64.
// It panics for Unknown fields, which have no numeric interpretation.
func (f *Field) Float64(i, ch int) float64 {
	b := f.scalar(i, ch)
	switch f.spec.kind {
	case Float:
		switch f.spec.elsize {
		case 2:
			return float64(float16.Frombits(binary.LittleEndian.Uint16(b)).Float32())
		case 4:
			return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		default:
			return math.Float64frombits(binary.LittleEndian.Uint64(b))
		}
	case Int:
		switch f.spec.elsize {
		case 1:
			return float64(int8(b[0]))
		case 2:
			return float64(int16(binary.LittleEndian.Uint16(b)))
		default:
			return float64(int32(binary.LittleEndian.Uint32(b)))
		}
	case Uint:
		switch f.spec.elsize {
		case 1:
			return float64(b[0])
		case 2:
			return float64(binary.LittleEndian.Uint16(b))
		default:
			return float64(binary.LittleEndian.Uint32(b))
		}
	}
	panic(fmt.Sprintf("pointcloud: cannot decode %s", f))
}

// SetFloat64 encodes v into channel ch of record i, converting it to the
// field's scalar type. Integer channels truncate toward zero and wrap like a
// Go conversion; it panics for Unknown fields.
func (f *Field) SetFloat64(i, ch int, v float64) {
	b := f.scalar(i, ch)
	switch f.spec.kind {
	case Float:
		switch f.spec.elsize {
		case 2:
			binary.LittleEndian.PutUint16(b, float16.Fromfloat32(float32(v)).Bits())
		case 4:
			binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
		default:
			binary.LittleEndian.PutUint64(b, math.Float64bits(v))
		}
		return
	case Int, Uint:
		n := int64(v)
		switch f.spec.elsize {
		case 1:
			b[0] = byte(n)
		case 2:
			binary.LittleEndian.PutUint16(b, uint16(n))
		default:
			binary.LittleEndian.PutUint32(b, uint32(n))
		}
		return
	}
	panic(fmt.Sprintf("pointcloud: cannot encode into %s", f))
}

func (f *Field) scalar(i, ch int) []byte {
	if ch < 0 || ch >= f.spec.Count() {
		panic(fmt.Sprintf("pointcloud: channel %d out of range for %s", ch, f))
	}
	off := i*f.spec.Size() + ch*f.spec.ElSize()
	return f.data[off : off+f.spec.ElSize()]
}
