// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/pointcloud"
)

func TestVertexFormat(t *testing.T) {
	tests := []struct {
		spec pointcloud.TypeSpec
		want gputypes.VertexFormat
		norm gputypes.VertexFormat
	}{
		{pointcloud.Float32(1), gputypes.VertexFormatFloat32, gputypes.VertexFormatFloat32},
		{pointcloud.Float32(3), gputypes.VertexFormatFloat32x3, gputypes.VertexFormatFloat32x3},
		{pointcloud.Half(4), gputypes.VertexFormatFloat16x4, gputypes.VertexFormatFloat16x4},
		{pointcloud.Uint8(4), gputypes.VertexFormatUint8x4, gputypes.VertexFormatUnorm8x4},
		{pointcloud.Int8(2), gputypes.VertexFormatSint8x2, gputypes.VertexFormatSnorm8x2},
		{pointcloud.Uint16(2), gputypes.VertexFormatUint16x2, gputypes.VertexFormatUnorm16x2},
		{pointcloud.Int16(4), gputypes.VertexFormatSint16x4, gputypes.VertexFormatSnorm16x4},
		{pointcloud.Uint32(1), gputypes.VertexFormatUint32, gputypes.VertexFormatUint32},
		{pointcloud.Int32(3), gputypes.VertexFormatSint32x3, gputypes.VertexFormatSint32x3},
	}
	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			got, err := VertexFormat(tt.spec)
			if err != nil || got != tt.want {
				t.Errorf("VertexFormat() = %v, %v, want %v", got, err, tt.want)
			}
			if got.Size() != uint64(tt.spec.Size()) {
				t.Errorf("format size %d != record size %d", got.Size(), tt.spec.Size())
			}
			norm, err := NormalizedVertexFormat(tt.spec)
			if err != nil || norm != tt.norm {
				t.Errorf("NormalizedVertexFormat() = %v, %v, want %v", norm, err, tt.norm)
			}
		})
	}
}

func TestVertexFormatUnsupported(t *testing.T) {
	for _, spec := range []pointcloud.TypeSpec{
		pointcloud.Float64(3),
		pointcloud.Uint8(3),
		pointcloud.Uint16(1),
		pointcloud.Half(1),
		pointcloud.Float32(5),
		pointcloud.MustTypeSpec(pointcloud.Unknown, 4, 1),
	} {
		if _, err := VertexFormat(spec); !errors.Is(err, ErrNoVertexFormat) {
			t.Errorf("VertexFormat(%s) error = %v, want ErrNoVertexFormat", spec, err)
		}
		if _, err := NormalizedVertexFormat(spec); !errors.Is(err, ErrNoVertexFormat) {
			t.Errorf("NormalizedVertexFormat(%s) error = %v, want ErrNoVertexFormat", spec, err)
		}
	}
}

func TestVertexBufferLayouts(t *testing.T) {
	pos := pointcloud.NewField("position", pointcloud.Float32(3), 10)
	col := pointcloud.NewField("color", pointcloud.Uint8(4), 10)
	tint := pointcloud.NewField("tint", pointcloud.Float32(4), 1)

	bindings := Bind(pos, col, tint)
	bindings[1].Normalized = true

	layouts, err := VertexBufferLayouts(bindings)
	if err != nil {
		t.Fatalf("VertexBufferLayouts() error = %v", err)
	}
	if len(layouts) != 3 {
		t.Fatalf("got %d layouts, want 3", len(layouts))
	}

	want := []struct {
		stride uint64
		step   gputypes.VertexStepMode
		format gputypes.VertexFormat
	}{
		{12, gputypes.VertexStepModeVertex, gputypes.VertexFormatFloat32x3},
		{4, gputypes.VertexStepModeVertex, gputypes.VertexFormatUnorm8x4},
		{16, gputypes.VertexStepModeInstance, gputypes.VertexFormatFloat32x4},
	}
	for i, w := range want {
		l := layouts[i]
		if l.ArrayStride != w.stride || l.StepMode != w.step {
			t.Errorf("layout %d: stride %d step %v, want %d %v", i, l.ArrayStride, l.StepMode, w.stride, w.step)
		}
		if len(l.Attributes) != 1 {
			t.Fatalf("layout %d: %d attributes, want 1", i, len(l.Attributes))
		}
		a := l.Attributes[0]
		if a.Format != w.format || a.Offset != 0 || a.ShaderLocation != uint32(i) {
			t.Errorf("layout %d attribute = %+v", i, a)
		}
	}
}

func TestVertexBufferLayoutsNamesField(t *testing.T) {
	f := pointcloud.NewField("normal64", pointcloud.Float64(3), 2)
	_, err := VertexBufferLayouts(Bind(f))
	if !errors.Is(err, ErrNoVertexFormat) {
		t.Fatalf("error = %v, want ErrNoVertexFormat", err)
	}
	if got := err.Error(); got != `field "normal64": gpu: no WebGPU vertex format: double[3]` {
		t.Errorf("error text = %q", got)
	}
}
