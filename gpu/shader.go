// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga/ir"
)

// ShaderType returns the type a vertex shader declares for an attribute read
// with format. Vertex fetch widens every scalar to 32 bits: floats and
// normalized integers arrive as f32, integers as i32 or u32.
func ShaderType(format gputypes.VertexFormat) (ir.TypeInner, error) {
	var kind ir.ScalarKind
	var size ir.VectorSize

	switch format {
	case gputypes.VertexFormatFloat32, gputypes.VertexFormatUint32, gputypes.VertexFormatSint32:
		size = 1
	case gputypes.VertexFormatFloat16x2, gputypes.VertexFormatFloat32x2,
		gputypes.VertexFormatUint8x2, gputypes.VertexFormatUint16x2, gputypes.VertexFormatUint32x2,
		gputypes.VertexFormatSint8x2, gputypes.VertexFormatSint16x2, gputypes.VertexFormatSint32x2,
		gputypes.VertexFormatUnorm8x2, gputypes.VertexFormatUnorm16x2,
		gputypes.VertexFormatSnorm8x2, gputypes.VertexFormatSnorm16x2:
		size = ir.Vec2
	case gputypes.VertexFormatFloat32x3, gputypes.VertexFormatUint32x3, gputypes.VertexFormatSint32x3:
		size = ir.Vec3
	case gputypes.VertexFormatFloat16x4, gputypes.VertexFormatFloat32x4,
		gputypes.VertexFormatUint8x4, gputypes.VertexFormatUint16x4, gputypes.VertexFormatUint32x4,
		gputypes.VertexFormatSint8x4, gputypes.VertexFormatSint16x4, gputypes.VertexFormatSint32x4,
		gputypes.VertexFormatUnorm8x4, gputypes.VertexFormatUnorm16x4,
		gputypes.VertexFormatSnorm8x4, gputypes.VertexFormatSnorm16x4:
		size = ir.Vec4
	default:
		return nil, fmt.Errorf("%w: %v", ErrNoVertexFormat, format)
	}

	switch format {
	case gputypes.VertexFormatUint8x2, gputypes.VertexFormatUint8x4,
		gputypes.VertexFormatUint16x2, gputypes.VertexFormatUint16x4,
		gputypes.VertexFormatUint32, gputypes.VertexFormatUint32x2,
		gputypes.VertexFormatUint32x3, gputypes.VertexFormatUint32x4:
		kind = ir.ScalarUint
	case gputypes.VertexFormatSint8x2, gputypes.VertexFormatSint8x4,
		gputypes.VertexFormatSint16x2, gputypes.VertexFormatSint16x4,
		gputypes.VertexFormatSint32, gputypes.VertexFormatSint32x2,
		gputypes.VertexFormatSint32x3, gputypes.VertexFormatSint32x4:
		kind = ir.ScalarSint
	default:
		kind = ir.ScalarFloat
	}

	scalar := ir.ScalarType{Kind: kind, Width: 4}
	if size == 1 {
		return scalar, nil
	}
	return ir.VectorType{Size: size, Scalar: scalar}, nil
}

// WGSLType renders a scalar or vector type as WGSL source, e.g. "vec3<f32>".
func WGSLType(t ir.TypeInner) (string, error) {
	switch t := t.(type) {
	case ir.ScalarType:
		return wgslScalar(t)
	case ir.VectorType:
		s, err := wgslScalar(t.Scalar)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("vec%d<%s>", t.Size, s), nil
	default:
		return "", fmt.Errorf("gpu: no WGSL spelling for %T", t)
	}
}

func wgslScalar(s ir.ScalarType) (string, error) {
	switch {
	case s.Kind == ir.ScalarFloat && s.Width == 4:
		return "f32", nil
	case s.Kind == ir.ScalarFloat && s.Width == 2:
		return "f16", nil
	case s.Kind == ir.ScalarSint && s.Width == 4:
		return "i32", nil
	case s.Kind == ir.ScalarUint && s.Width == 4:
		return "u32", nil
	case s.Kind == ir.ScalarBool:
		return "bool", nil
	}
	return "", fmt.Errorf("gpu: no WGSL scalar of kind %d and width %d", s.Kind, s.Width)
}

// VertexInput generates a WGSL struct declaring every binding at its
// location, for inclusion in a user vertex shader:
//
//	struct VertexInput {
//	    @location(0) position: vec3<f32>,
//	    @location(1) color: vec4<f32>,
//	}
//
// Field names are turned into WGSL identifiers by replacing unsupported
// characters with underscores.
func VertexInput(structName string, bindings []Binding) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "struct %s {\n", structName)
	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		format, err := b.format()
		if err != nil {
			return "", err
		}
		inner, err := ShaderType(format)
		if err != nil {
			return "", err
		}
		typ, err := WGSLType(inner)
		if err != nil {
			return "", err
		}
		name := identifier(b.Field.Name())
		if seen[name] {
			return "", fmt.Errorf("gpu: fields map to the same WGSL member %q", name)
		}
		seen[name] = true
		fmt.Fprintf(&sb, "    @location(%d) %s: %s,\n", b.Location, name, typ)
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

// wgslKeywords are names that must not be used as struct members.
var wgslKeywords = map[string]bool{
	"alias": true, "bitcast": true, "bool": true, "break": true, "case": true,
	"const": true, "const_assert": true, "continue": true, "continuing": true,
	"default": true, "diagnostic": true, "discard": true, "else": true,
	"enable": true, "f16": true, "f32": true, "false": true, "fn": true,
	"for": true, "i32": true, "if": true, "let": true, "loop": true,
	"override": true, "requires": true, "return": true, "struct": true,
	"switch": true, "true": true, "u32": true, "var": true, "while": true,
}

func identifier(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	id := sb.String()
	switch {
	case id == "" || id == "_":
		return "attr"
	case strings.HasPrefix(id, "__"):
		return "attr" + id
	case wgslKeywords[id]:
		return id + "_"
	}
	return id
}
