// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package order

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/pointcloud"
)

// mortonBits is the quantization depth per axis; three axes fill 30 bits.
const mortonBits = 10

// Bounds returns the axis-aligned bounding box of a position field, narrowed
// to float32 for use in camera and shader uniforms. The field must be a Float
// field with at least three channels; channels past the third are ignored.
// An empty field yields a zero box.
func Bounds(positions *pointcloud.Field) (lo, hi f32.Vec3, err error) {
	lo64, hi64, err := bounds(positions)
	if err != nil {
		return lo, hi, err
	}
	for a := range 3 {
		lo[a] = float32(lo64[a])
		hi[a] = float32(hi64[a])
	}
	return lo, hi, nil
}

func bounds(positions *pointcloud.Field) (lo, hi [3]float64, err error) {
	spec := positions.Spec()
	if spec.Kind() != pointcloud.Float || spec.Count() < 3 {
		return lo, hi, fmt.Errorf("%w: %s", ErrPositionSpec, positions)
	}
	n := positions.Len()
	if n == 0 {
		return lo, hi, nil
	}
	for a := range 3 {
		lo[a] = math.Inf(1)
		hi[a] = math.Inf(-1)
	}
	for i := range n {
		for a := range 3 {
			v := positions.Float64(i, a)
			lo[a] = math.Min(lo[a], v)
			hi[a] = math.Max(hi[a], v)
		}
	}
	return lo, hi, nil
}

// Morton returns the permutation that sorts points along a Z-order curve over
// their bounding box, which keeps spatially close points close in memory.
// Points falling into the same cell keep their original relative order.
func Morton(positions *pointcloud.Field) ([]int, error) {
	lo, hi, err := bounds(positions)
	if err != nil {
		return nil, err
	}
	n := positions.Len()

	var scale [3]float64
	for a := range 3 {
		if ext := hi[a] - lo[a]; ext > 0 {
			scale[a] = float64(1<<mortonBits-1) / ext
		}
	}

	codes := make([]uint32, n)
	for i := range n {
		var q [3]uint32
		for a := range 3 {
			v := (positions.Float64(i, a) - lo[a]) * scale[a]
			q[a] = uint32(min(max(v, 0), 1<<mortonBits-1))
		}
		codes[i] = morton3(q[0], q[1], q[2])
	}

	perm := Identity(n)
	slices.SortStableFunc(perm, func(a, b int) int {
		return cmp.Compare(codes[a], codes[b])
	})

	pointcloud.Logger().Debug("order: morton sort",
		"field", positions.Name(),
		"points", n,
		"bits", 3*mortonBits)
	return perm, nil
}

// expand3 spreads the low 10 bits of v so that two zero bits follow each one.
func expand3(v uint32) uint32 {
	v &= 0x3ff
	v = (v | v<<16) & 0x030000ff
	v = (v | v<<8) & 0x0300f00f
	v = (v | v<<4) & 0x030c30c3
	v = (v | v<<2) & 0x09249249
	return v
}

func morton3(x, y, z uint32) uint32 {
	return expand3(x) | expand3(y)<<1 | expand3(z)<<2
}
