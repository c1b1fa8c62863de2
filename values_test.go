// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pointcloud

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestFloat64RoundTrip(t *testing.T) {
	tests := []struct {
		spec TypeSpec
		vals []float64
	}{
		{Half(2), []float64{1.5, -0.25}},
		{Float32(3), []float64{0.5, -1e6, 3.25}},
		{Float64(1), []float64{1.0 / 3.0}},
		{Int8(2), []float64{-128, 127}},
		{Int16(1), []float64{-30000}},
		{Int32(1), []float64{-2000000000}},
		{Uint8(3), []float64{0, 128, 255}},
		{Uint16(1), []float64{65535}},
		{Uint32(1), []float64{4000000000}},
	}
	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			f := NewField("v", tt.spec, 2)
			for ch, v := range tt.vals {
				f.SetFloat64(1, ch, v)
			}
			for ch, v := range tt.vals {
				if got := f.Float64(1, ch); got != v {
					t.Errorf("channel %d = %v, want %v", ch, got, v)
				}
				if got := f.Float64(0, ch); got != 0 {
					t.Errorf("record 0 channel %d = %v, want untouched 0", ch, got)
				}
			}
		})
	}
}

func TestFloat64LittleEndian(t *testing.T) {
	f := NewField("i", Uint16(1), 1)
	f.SetFloat64(0, 0, 0x0102)
	if !bytes.Equal(f.Bytes(), []byte{0x02, 0x01}) {
		t.Errorf("Bytes() = %v, want little-endian [2 1]", f.Bytes())
	}
}

// halfBits stores the raw binary16 pattern h in a one-channel half field.
func halfBits(h uint16) *Field {
	f := NewField("h", Half(1), 1)
	binary.LittleEndian.PutUint16(f.Bytes(), h)
	return f
}

func TestFloat64Half(t *testing.T) {
	tests := []struct {
		h    uint16
		want float64
	}{
		{0x0000, 0},
		{0x3c00, 1},
		{0xc000, -2},
		{0x3800, 0.5},
		{0x7bff, 65504},
		{0x0001, math.Ldexp(1, -24)},
		{0x0400, math.Ldexp(1, -14)},
		{0x7c00, math.Inf(1)},
		{0xfc00, math.Inf(-1)},
	}
	for _, tt := range tests {
		if got := halfBits(tt.h).Float64(0, 0); got != tt.want {
			t.Errorf("Float64(half 0x%04x) = %v, want %v", tt.h, got, tt.want)
		}
	}
	if got := halfBits(0x7e00).Float64(0, 0); !math.IsNaN(got) {
		t.Errorf("Float64(half 0x7e00) = %v, want NaN", got)
	}
}

func TestHalfRoundTripAllPatterns(t *testing.T) {
	for i := 0; i <= 0xffff; i++ {
		h := uint16(i)
		if h&0x7c00 == 0x7c00 && h&0x03ff != 0 {
			continue // NaN payloads are not preserved
		}
		f := halfBits(h)
		f.SetFloat64(0, 0, f.Float64(0, 0))
		if got := binary.LittleEndian.Uint16(f.Bytes()); got != h {
			t.Fatalf("half 0x%04x round trips to 0x%04x", h, got)
		}
	}
}

func TestSetFloat64HalfRounding(t *testing.T) {
	tests := []struct {
		v    float64
		want uint16
	}{
		{1, 0x3c00},
		{65520, 0x7c00}, // rounds past the largest finite half
		{1e9, 0x7c00},
		{-1e9, 0xfc00},
		{math.Ldexp(1, -26), 0x0000},
		{math.Ldexp(3, -26), 0x0001},
		{1 + math.Ldexp(1, -11), 0x3c00}, // tie rounds to even
		{1 + math.Ldexp(3, -11), 0x3c02},
	}
	for _, tt := range tests {
		f := NewField("h", Half(1), 1)
		f.SetFloat64(0, 0, tt.v)
		if got := binary.LittleEndian.Uint16(f.Bytes()); got != tt.want {
			t.Errorf("SetFloat64(%v) stored 0x%04x, want 0x%04x", tt.v, got, tt.want)
		}
	}

	f := NewField("h", Half(1), 1)
	f.SetFloat64(0, 0, math.NaN())
	if got := binary.LittleEndian.Uint16(f.Bytes()); got&0x7c00 != 0x7c00 || got&0x3ff == 0 {
		t.Errorf("SetFloat64(NaN) stored 0x%04x, want a NaN pattern", got)
	}
}

func TestFloat64Panics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"unknown kind", func() { NewField("u", MustTypeSpec(Unknown, 4, 1), 1).Float64(0, 0) }},
		{"unknown kind set", func() { NewField("u", MustTypeSpec(Unknown, 4, 1), 1).SetFloat64(0, 0, 1) }},
		{"channel range", func() { NewField("p", Float32(3), 1).Float64(0, 3) }},
		{"negative channel", func() { NewField("p", Float32(3), 1).Float64(0, -1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}
