// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pointcloud provides the typed attribute model of a point cloud and
// the engine that reorders its records.
//
// # Overview
//
// A point cloud is a set of attribute columns (position, color, intensity,
// return number, ...) sharing one point index. Each column is a [Field]: a
// name, a [TypeSpec] describing one record (scalar kind, scalar width and
// channel count) and a tightly packed, record-major byte buffer ready to be
// bound as a vertex buffer.
//
//	pos := pointcloud.NewField("position", pointcloud.Float32(3), n)
//	pos.SetFloat64(0, 0, 1.5)
//	fmt.Println(pos)                             // float[3] position
//	fmt.Println(pointcloud.Classify(pos.Spec())) // GL_FLOAT
//
// # Reordering
//
// Spatial sorting, decimation and culling all reduce to a gather: new record i
// is old record indices[i]. [Field.Reorder] applies a permutation,
// [Field.Select] applies an arbitrary selection that may repeat or drop
// records, and [Field.CheckedReorder] validates its input first. The gather
// copies each record as a few wide integers chosen from the record width
// (three 32-bit words for float XYZ, one 16-bit word for a 16-bit color)
// rather than byte by byte.
//
// [Cloud] keeps several fields aligned by applying every reorder to all of
// them, spreading the fields over a worker pool for large clouds. The order
// subpackage produces index slices (Morton order, shuffles, decimation) and
// the gpu subpackage maps fields onto WebGPU vertex layouts and buffers.
//
// # Errors
//
// Inconsistent object graphs are programming errors and panic: invalid type
// specs passed to [MustTypeSpec], [Classify] of a type with no backend
// equivalent, and [Field.Reorder] with the wrong number of indices. API
// surfaces that take external input return errors wrapping the Err* sentinels.
//
// # Concurrency
//
// A Field must not be read while it is being reordered. Distinct fields may
// be reordered concurrently. Cloud serializes its own operations.
package pointcloud
