// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/pointcloud"
)

// Uploader copies field data into vertex buffers on a shared device.
// The device stays owned by the provider; Uploader never destroys it.
type Uploader struct {
	device  *wgpu.Device
	queue   *wgpu.Queue
	release func(*wgpu.Buffer)
}

// NewUploader binds an Uploader to the device of a host such as gogpu.
// The provider's Device must be a *wgpu.Device; its Queue is used when it is a
// *wgpu.Queue and the device's own queue otherwise. A device without a queue,
// such as one from a mock adapter, is rejected with ErrUnsupportedDevice.
func NewUploader(provider gpucontext.DeviceProvider) (*Uploader, error) {
	if provider == nil {
		return nil, ErrUnsupportedDevice
	}
	device, ok := provider.Device().(*wgpu.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: got %T", ErrUnsupportedDevice, provider.Device())
	}
	queue, ok := provider.Queue().(*wgpu.Queue)
	if !ok || queue == nil {
		queue = device.Queue()
	}
	if queue == nil {
		return nil, fmt.Errorf("%w: device has no queue", ErrUnsupportedDevice)
	}
	return &Uploader{device: device, queue: queue, release: (*wgpu.Buffer).Release}, nil
}

// Upload creates a vertex buffer holding the field's records and writes them
// through the queue. The caller owns the returned buffer and must Release it.
//
// Queue writes must be a multiple of four bytes, so records of odd-sized
// fields are followed by up to three zero bytes.
func (u *Uploader) Upload(f *pointcloud.Field) (*wgpu.Buffer, error) {
	data := f.Bytes()
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyField, f)
	}
	padded := pad4(data)
	if len(padded) != len(data) {
		pointcloud.Logger().Warn("gpu: padding vertex data",
			"field", f.Name(),
			"bytes", len(data),
			"padded", len(padded))
	}

	buf, err := u.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: f.Name(),
		Size:  uint64(len(padded)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create buffer for %q: %w", f.Name(), err)
	}
	if err := u.queue.WriteBuffer(buf, 0, padded); err != nil {
		u.release(buf)
		return nil, fmt.Errorf("gpu: write buffer for %q: %w", f.Name(), err)
	}

	pointcloud.Logger().Info("gpu: uploaded field",
		"field", f.Name(),
		"spec", f.Spec().String(),
		"points", f.Len(),
		"bytes", len(padded))
	return buf, nil
}

// UploadAll uploads every binding's field in order. On failure the buffers
// created so far are released.
func (u *Uploader) UploadAll(bindings []Binding) ([]*wgpu.Buffer, error) {
	bufs := make([]*wgpu.Buffer, 0, len(bindings))
	for _, b := range bindings {
		buf, err := u.Upload(b.Field)
		if err != nil {
			for _, prev := range bufs {
				u.release(prev)
			}
			return nil, err
		}
		bufs = append(bufs, buf)
	}
	return bufs, nil
}

// pad4 returns data extended with zeros to a multiple of four bytes. Aligned
// input is returned as is.
func pad4(data []byte) []byte {
	rem := len(data) % 4
	if rem == 0 {
		return data
	}
	out := make([]byte, len(data)+4-rem)
	copy(out, data)
	return out
}
