// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu bridges point cloud fields to WebGPU.
//
// Fields are stored one attribute per buffer, so each maps to its own vertex
// buffer layout with a single attribute:
//
//	bindings := gpu.Bind(position, color)
//	bindings[1].Normalized = true // 8-bit colors read as [0, 1]
//	layouts, err := gpu.VertexBufferLayouts(bindings)
//	src, err := gpu.VertexInput("VertexInput", bindings)
//
// Buffers are created and filled by an Uploader bound to a host-provided
// device:
//
//	up, err := gpu.NewUploader(provider)
//	buf, err := up.Upload(position)
//	defer buf.Release()
package gpu

import "errors"

var (
	// ErrNoVertexFormat is returned for specs WebGPU cannot fetch directly.
	ErrNoVertexFormat = errors.New("gpu: no WebGPU vertex format")

	// ErrUnsupportedDevice is returned when a DeviceProvider does not expose a
	// wgpu device.
	ErrUnsupportedDevice = errors.New("gpu: provider does not expose a *wgpu.Device")

	// ErrEmptyField is returned when uploading a field with no records.
	ErrEmptyField = errors.New("gpu: field has no data")
)
