// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pointcloud

// CloudOption configures a Cloud during creation.
//
// Example:
//
//	// Reorder fields on at most two goroutines, and only for clouds
//	// carrying more than 4 MiB of attribute data.
//	c := pointcloud.NewCloud(n,
//	    pointcloud.WithWorkers(2),
//	    pointcloud.WithParallelThreshold(4<<20))
type CloudOption func(*cloudOptions)

type cloudOptions struct {
	workers           int
	parallelThreshold int
}

// defaultParallelThreshold is the attribute byte count below which a shared
// reorder runs field by field on the calling goroutine.
const defaultParallelThreshold = 1 << 20

func defaultCloudOptions() cloudOptions {
	return cloudOptions{
		workers:           0, // GOMAXPROCS
		parallelThreshold: defaultParallelThreshold,
	}
}

// WithWorkers sets the number of goroutines used to reorder the fields of a
// cloud concurrently. Zero or negative means GOMAXPROCS; one disables the
// worker pool entirely.
func WithWorkers(n int) CloudOption {
	return func(o *cloudOptions) {
		o.workers = n
	}
}

// WithParallelThreshold sets the total attribute size in bytes from which a
// shared reorder fans out over the worker pool. Negative values are treated
// as zero (always parallel).
func WithParallelThreshold(bytes int) CloudOption {
	return func(o *cloudOptions) {
		o.parallelThreshold = max(bytes, 0)
	}
}
