// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package order builds the index slices consumed by Field.Reorder,
// Field.Select and Cloud.Reorder: identity and inverse permutations,
// seeded shuffles, decimation and Morton (Z-order) spatial sorting.
package order

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	// ErrNotPermutation is returned when a slice is not a permutation of [0, n).
	ErrNotPermutation = errors.New("order: not a permutation")

	// ErrPositionSpec is returned when a field cannot be read as 3D positions.
	ErrPositionSpec = errors.New("order: field is not a position field")
)

// Identity returns [0, 1, ..., n-1].
func Identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// IsPermutation reports whether p contains every value of [0, len(p)) once.
func IsPermutation(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Inverse returns q with q[p[i]] == i, so that reordering by p and then by q
// restores the original order.
func Inverse(p []int) ([]int, error) {
	if !IsPermutation(p) {
		return nil, fmt.Errorf("%w: %d indices", ErrNotPermutation, len(p))
	}
	q := make([]int, len(p))
	for i, v := range p {
		q[v] = i
	}
	return q, nil
}

// Shuffle returns a random permutation of [0, n). The same seed always
// produces the same permutation.
func Shuffle(n int, seed uint64) []int {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	p := Identity(n)
	r.Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

// Decimate returns the indices of every keepEvery-th point of n, starting
// with point 0. keepEvery values below 2 keep every point.
func Decimate(n, keepEvery int) []int {
	if keepEvery < 2 {
		return Identity(n)
	}
	out := make([]int, 0, (n+keepEvery-1)/keepEvery)
	for i := 0; i < n; i += keepEvery {
		out = append(out, i)
	}
	return out
}

// Compose returns the single index slice equivalent to selecting by first
// and then by second: result[i] == first[second[i]].
func Compose(first, second []int) []int {
	out := make([]int, len(second))
	for i, j := range second {
		out[i] = first[j]
	}
	return out
}
