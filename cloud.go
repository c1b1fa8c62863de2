// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pointcloud

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/pointcloud/internal/parallel"
)

// Cloud is a set of fields describing the same points. Every field has
// Len() records, or one record for a constant field, and a shared reorder
// is applied to all of them with the same indices so they stay aligned by
// point index.
//
// A field with one record is always constant, so once Select shrinks a
// cloud to a single point every field becomes constant. A later Select that
// grows the cloud changes Len() but leaves each field at one record, whose
// value then stands for every point.
//
// Cloud is safe for concurrent use: Reorder and Select take a write lock,
// lookups take a read lock. The *Field values it hands out must not be used
// while a Reorder or Select is in progress.
type Cloud struct {
	mu     sync.RWMutex
	size   int
	fields []*Field
	byName map[string]*Field
	opts   cloudOptions
	pool   *parallel.WorkerPool
	closed bool
}

// NewCloud returns an empty cloud of size points.
func NewCloud(size int, opts ...CloudOption) *Cloud {
	if size < 0 {
		panic(fmt.Sprintf("pointcloud: negative cloud size %d", size))
	}
	o := defaultCloudOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cloud{
		size:   size,
		byName: make(map[string]*Field),
		opts:   o,
	}
}

// Len returns the number of points.
func (c *Cloud) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.size
}

// Add appends f to the cloud. f must have one record per point or be a
// constant field, and its name must be unused.
func (c *Cloud) Add(f *Field) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if f.Len() != c.size && !f.IsConstant() {
		return fmt.Errorf("%w: %s has %d records, cloud has %d points", ErrPointCount, f, f.Len(), c.size)
	}
	if _, ok := c.byName[f.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateField, f.Name())
	}
	c.fields = append(c.fields, f)
	c.byName[f.Name()] = f
	return nil
}

// Field returns the field with the given name.
func (c *Cloud) Field(name string) (*Field, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return f, nil
}

// Fields returns the fields in the order they were added.
func (c *Cloud) Fields() []*Field {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Field(nil), c.fields...)
}

// Reorder permutes every field so that new point i is old point indices[i].
// The indices are validated once for the whole cloud; on error no field is
// modified. ctx is checked before any field is touched; a started reorder
// always runs to completion.
func (c *Cloud) Reorder(ctx context.Context, indices []int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if len(indices) != c.size {
		return fmt.Errorf("%w: cloud has %d points, got %d indices", ErrSizeMismatch, c.size, len(indices))
	}
	if err := checkIndices(indices, c.size); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.apply(func(f *Field) { f.Reorder(indices) })
	return nil
}

// Select rebuilds every field from the points named by indices, which may
// repeat or omit points. Afterwards Len() == len(indices).
func (c *Cloud) Select(ctx context.Context, indices []int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if err := checkIndices(indices, c.size); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.apply(func(f *Field) { f.Select(indices) })
	c.size = len(indices)
	return nil
}

// apply runs fn on every non-constant field, spreading the fields over the
// worker pool when the cloud is large enough. Called with c.mu held.
func (c *Cloud) apply(fn func(*Field)) {
	var work []*Field
	total := 0
	for _, f := range c.fields {
		if f.IsConstant() {
			continue
		}
		work = append(work, f)
		total += len(f.Bytes())
	}

	if len(work) < 2 || c.opts.workers == 1 || total < c.opts.parallelThreshold {
		for _, f := range work {
			fn(f)
		}
		return
	}

	if c.pool == nil {
		c.pool = parallel.NewWorkerPool(c.opts.workers)
		Logger().Debug("pointcloud: worker pool started", "workers", c.pool.Workers())
	}
	jobs := make([]func(), len(work))
	for i, f := range work {
		jobs[i] = func() { fn(f) }
	}
	c.pool.ExecuteAll(jobs)
}

// Close releases the worker pool. Further Add, Reorder and Select calls
// return ErrClosed; the fields stay readable. Close is idempotent.
func (c *Cloud) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
	}
	Logger().Info("pointcloud: cloud closed", "points", c.size, "fields", len(c.fields))
}

// String lists the cloud's point count and fields, e.g.
// "cloud[4]{float[3] position, uint8_t[3] color}".
func (c *Cloud) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "cloud[%d]{", c.size)
	for i, f := range c.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
