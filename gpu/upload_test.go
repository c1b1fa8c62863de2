// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	// Without a real GPU backend the instance falls back to a mock adapter
	// whose devices have no queue.
	_ "github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/pointcloud"
)

// fakeProvider is a DeviceProvider backed by something other than wgpu.
type fakeProvider struct{}

func (fakeProvider) Device() gpucontext.Device             { return "not a device" }
func (fakeProvider) Queue() gpucontext.Queue               { return nil }
func (fakeProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }
func (fakeProvider) Adapter() gpucontext.Adapter           { return nil }
func (fakeProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

// deviceProvider hands out a wgpu device the way a gogpu host does.
type deviceProvider struct {
	device *wgpu.Device
}

func (p deviceProvider) Device() gpucontext.Device             { return p.device }
func (p deviceProvider) Queue() gpucontext.Queue               { return nil }
func (p deviceProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }
func (p deviceProvider) Adapter() gpucontext.Adapter           { return nil }
func (p deviceProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

// newDevice requests a device from a fresh instance, skipping the test when
// no adapter is available at all.
func newDevice(t *testing.T) *wgpu.Device {
	t.Helper()
	inst, err := wgpu.CreateInstance(nil)
	if err != nil {
		t.Skipf("CreateInstance: %v", err)
	}
	t.Cleanup(inst.Release)
	adapter, err := inst.RequestAdapter(nil)
	if err != nil {
		t.Skipf("RequestAdapter: %v", err)
	}
	t.Cleanup(adapter.Release)
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		t.Skipf("RequestDevice: %v", err)
	}
	t.Cleanup(device.Release)
	return device
}

// newUploader returns an Uploader on a device with HAL integration, or skips
// the test when only the mock adapter is available.
func newUploader(t *testing.T) *Uploader {
	t.Helper()
	device := newDevice(t)
	if device.Queue() == nil {
		t.Skip("skipping: device has no HAL integration (mock adapter; no real GPU backend available)")
	}
	u, err := NewUploader(deviceProvider{device: device})
	if err != nil {
		t.Fatalf("NewUploader() error = %v", err)
	}
	return u
}

func TestNewUploaderRejectsQueuelessDevice(t *testing.T) {
	device := newDevice(t)
	if device.Queue() != nil {
		t.Skip("skipping: device has a queue (real GPU backend)")
	}
	if _, err := NewUploader(deviceProvider{device: device}); !errors.Is(err, ErrUnsupportedDevice) {
		t.Errorf("NewUploader(queueless device) error = %v, want ErrUnsupportedDevice", err)
	}
}

func TestUpload(t *testing.T) {
	u := newUploader(t)

	// Three RGB8 records are 9 bytes, padded to 12.
	color := pointcloud.NewField("color", pointcloud.Uint8(3), 3)
	buf, err := u.Upload(color)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	defer buf.Release()

	if buf.Size() != 12 {
		t.Errorf("Size() = %d, want 12", buf.Size())
	}
	if want := gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst; buf.Usage() != want {
		t.Errorf("Usage() = %v, want %v", buf.Usage(), want)
	}
	if buf.Label() != "color" {
		t.Errorf("Label() = %q, want %q", buf.Label(), "color")
	}

	if _, err := u.Upload(pointcloud.NewField("empty", pointcloud.Float32(3), 0)); !errors.Is(err, ErrEmptyField) {
		t.Errorf("Upload(empty) error = %v, want ErrEmptyField", err)
	}
}

func TestUploadAll(t *testing.T) {
	u := newUploader(t)

	pos := pointcloud.NewField("position", pointcloud.Float32(3), 4)
	tint := pointcloud.NewField("tint", pointcloud.Float32(4), 1)
	bufs, err := u.UploadAll(Bind(pos, tint))
	if err != nil {
		t.Fatalf("UploadAll() error = %v", err)
	}
	if len(bufs) != 2 {
		t.Fatalf("UploadAll() returned %d buffers, want 2", len(bufs))
	}
	for i, want := range []uint64{48, 16} {
		if bufs[i].Size() != want {
			t.Errorf("buffer %d Size() = %d, want %d", i, bufs[i].Size(), want)
		}
		bufs[i].Release()
	}
}

func TestUploadAllReleasesOnError(t *testing.T) {
	u := newUploader(t)

	var released []string
	u.release = func(b *wgpu.Buffer) {
		released = append(released, b.Label())
		b.Release()
	}

	a := pointcloud.NewField("a", pointcloud.Float32(1), 2)
	b := pointcloud.NewField("b", pointcloud.Uint32(1), 2)
	empty := pointcloud.NewField("empty", pointcloud.Float32(1), 0)

	bufs, err := u.UploadAll(Bind(a, b, empty))
	if !errors.Is(err, ErrEmptyField) {
		t.Fatalf("UploadAll() error = %v, want ErrEmptyField", err)
	}
	if bufs != nil {
		t.Errorf("UploadAll() returned %d buffers on error", len(bufs))
	}
	if len(released) != 2 || released[0] != "a" || released[1] != "b" {
		t.Errorf("released %v, want [a b]", released)
	}
}

func TestNewUploaderRejectsForeignDevice(t *testing.T) {
	if _, err := NewUploader(fakeProvider{}); !errors.Is(err, ErrUnsupportedDevice) {
		t.Errorf("NewUploader(fake) error = %v, want ErrUnsupportedDevice", err)
	}
	if _, err := NewUploader(nil); !errors.Is(err, ErrUnsupportedDevice) {
		t.Errorf("NewUploader(nil) error = %v, want ErrUnsupportedDevice", err)
	}
}

func TestPad4(t *testing.T) {
	for n := range 9 {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i + 1)
		}
		got := pad4(data)
		if len(got)%4 != 0 || len(got) < n || len(got) > n+3 {
			t.Errorf("pad4(len %d) has len %d", n, len(got))
		}
		for i := range got {
			want := byte(0)
			if i < n {
				want = byte(i + 1)
			}
			if got[i] != want {
				t.Errorf("pad4(len %d)[%d] = %d, want %d", n, i, got[i], want)
			}
		}
		if n%4 == 0 && n > 0 && &got[0] != &data[0] {
			t.Errorf("pad4 copied aligned input of len %d", n)
		}
	}
}
