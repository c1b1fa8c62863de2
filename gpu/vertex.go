// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/pointcloud"
)

// VertexFormat returns the WebGPU vertex format that reads one record of spec
// unconverted: floats as floats, integers as integers.
//
// WebGPU has no vertex formats for doubles, for 8- and 16-bit single or
// triple channels, or for more than four channels; such specs return an error
// wrapping ErrNoVertexFormat.
func VertexFormat(spec pointcloud.TypeSpec) (gputypes.VertexFormat, error) {
	return vertexFormat(spec, false)
}

// NormalizedVertexFormat is like VertexFormat but maps 8- and 16-bit integers
// to their normalized forms (unorm, snorm), which the shader sees as floats
// in [0, 1] or [-1, 1]. Typical for 8-bit colors.
func NormalizedVertexFormat(spec pointcloud.TypeSpec) (gputypes.VertexFormat, error) {
	return vertexFormat(spec, true)
}

type formatKey struct {
	kind       pointcloud.ScalarKind
	elsize     int
	count      int
	normalized bool
}

var vertexFormats = map[formatKey]gputypes.VertexFormat{
	{pointcloud.Float, 2, 2, false}: gputypes.VertexFormatFloat16x2,
	{pointcloud.Float, 2, 4, false}: gputypes.VertexFormatFloat16x4,
	{pointcloud.Float, 4, 1, false}: gputypes.VertexFormatFloat32,
	{pointcloud.Float, 4, 2, false}: gputypes.VertexFormatFloat32x2,
	{pointcloud.Float, 4, 3, false}: gputypes.VertexFormatFloat32x3,
	{pointcloud.Float, 4, 4, false}: gputypes.VertexFormatFloat32x4,

	{pointcloud.Int, 1, 2, false}: gputypes.VertexFormatSint8x2,
	{pointcloud.Int, 1, 4, false}: gputypes.VertexFormatSint8x4,
	{pointcloud.Int, 2, 2, false}: gputypes.VertexFormatSint16x2,
	{pointcloud.Int, 2, 4, false}: gputypes.VertexFormatSint16x4,
	{pointcloud.Int, 4, 1, false}: gputypes.VertexFormatSint32,
	{pointcloud.Int, 4, 2, false}: gputypes.VertexFormatSint32x2,
	{pointcloud.Int, 4, 3, false}: gputypes.VertexFormatSint32x3,
	{pointcloud.Int, 4, 4, false}: gputypes.VertexFormatSint32x4,

	{pointcloud.Uint, 1, 2, false}: gputypes.VertexFormatUint8x2,
	{pointcloud.Uint, 1, 4, false}: gputypes.VertexFormatUint8x4,
	{pointcloud.Uint, 2, 2, false}: gputypes.VertexFormatUint16x2,
	{pointcloud.Uint, 2, 4, false}: gputypes.VertexFormatUint16x4,
	{pointcloud.Uint, 4, 1, false}: gputypes.VertexFormatUint32,
	{pointcloud.Uint, 4, 2, false}: gputypes.VertexFormatUint32x2,
	{pointcloud.Uint, 4, 3, false}: gputypes.VertexFormatUint32x3,
	{pointcloud.Uint, 4, 4, false}: gputypes.VertexFormatUint32x4,

	{pointcloud.Int, 1, 2, true}:  gputypes.VertexFormatSnorm8x2,
	{pointcloud.Int, 1, 4, true}:  gputypes.VertexFormatSnorm8x4,
	{pointcloud.Int, 2, 2, true}:  gputypes.VertexFormatSnorm16x2,
	{pointcloud.Int, 2, 4, true}:  gputypes.VertexFormatSnorm16x4,
	{pointcloud.Uint, 1, 2, true}: gputypes.VertexFormatUnorm8x2,
	{pointcloud.Uint, 1, 4, true}: gputypes.VertexFormatUnorm8x4,
	{pointcloud.Uint, 2, 2, true}: gputypes.VertexFormatUnorm16x2,
	{pointcloud.Uint, 2, 4, true}: gputypes.VertexFormatUnorm16x4,
}

func vertexFormat(spec pointcloud.TypeSpec, normalized bool) (gputypes.VertexFormat, error) {
	// Normalization only exists for narrow integers; everything else falls
	// back to the plain format.
	norm := normalized && spec.Kind() != pointcloud.Float && spec.ElSize() < 4
	key := formatKey{kind: spec.Kind(), elsize: spec.ElSize(), count: spec.Count(), normalized: norm}
	if f, ok := vertexFormats[key]; ok {
		return f, nil
	}
	return gputypes.VertexFormatUndefined, fmt.Errorf("%w: %s", ErrNoVertexFormat, spec)
}

// Binding places one field at a shader location.
type Binding struct {
	Field      *pointcloud.Field
	Location   uint32
	Normalized bool
}

// Bind assigns consecutive shader locations, starting at zero, to fields.
func Bind(fields ...*pointcloud.Field) []Binding {
	out := make([]Binding, len(fields))
	for i, f := range fields {
		out[i] = Binding{Field: f, Location: uint32(i)}
	}
	return out
}

// format returns the vertex format the binding reads its field with.
func (b Binding) format() (gputypes.VertexFormat, error) {
	f, err := vertexFormat(b.Field.Spec(), b.Normalized)
	if err != nil {
		return f, fmt.Errorf("field %q: %w", b.Field.Name(), err)
	}
	return f, nil
}

// VertexBufferLayouts returns one vertex buffer layout per binding. Fields are
// stored column by column, so every buffer holds a single attribute at offset
// zero with a stride of one record. Constant fields step per instance, which
// makes their single record apply to every point of a one-instance draw.
func VertexBufferLayouts(bindings []Binding) ([]gputypes.VertexBufferLayout, error) {
	layouts := make([]gputypes.VertexBufferLayout, len(bindings))
	for i, b := range bindings {
		format, err := b.format()
		if err != nil {
			return nil, err
		}
		step := gputypes.VertexStepModeVertex
		if b.Field.IsConstant() {
			step = gputypes.VertexStepModeInstance
		}
		layouts[i] = gputypes.VertexBufferLayout{
			ArrayStride: uint64(b.Field.Spec().Size()),
			StepMode:    step,
			Attributes: []gputypes.VertexAttribute{{
				Format:         format,
				Offset:         0,
				ShaderLocation: b.Location,
			}},
		}
	}
	return layouts, nil
}
