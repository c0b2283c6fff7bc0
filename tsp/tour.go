// SPDX-License-Identifier: MIT

// Package tsp — tour utilities operating purely on index sequences.
//
// A closed tour over n vertices has length n+1, visits every vertex of
// [0..n-1] exactly once in positions [0..n-1] and repeats tour[0] at
// position n. Unlike solvers that pin vertex 0, the start vertex is free:
// annealed tours start wherever the network put them.
package tsp

import "fmt"

// ValidateTour enforces closed Hamiltonian-cycle invariants:
//
//	len(tour) == n+1, tour[0] == tour[n],
//	each vertex v∈[0..n-1] appears exactly once in positions [0..n-1].
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(tour []int, n int) error {
	if n <= 0 || len(tour) != n+1 {
		return fmt.Errorf("ValidateTour: len=%d n=%d: %w", len(tour), n, ErrDimensionMismatch)
	}
	if tour[0] != tour[n] {
		return fmt.Errorf("ValidateTour: %d != %d: %w", tour[0], tour[n], ErrOpenTour)
	}

	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = tour[i]
		if v < 0 || v >= n {
			return fmt.Errorf("ValidateTour: vertex %d at %d: %w", v, i, ErrDimensionMismatch)
		}
		if seen[v] {
			return fmt.Errorf("ValidateTour: vertex %d repeats at %d: %w", v, i, ErrDimensionMismatch)
		}
		seen[v] = true
	}

	return nil
}

// CopyTour returns an independent copy of the input tour slice.
func CopyTour(tour []int) []int {
	if tour == nil {
		return nil
	}
	out := make([]int, len(tour))
	copy(out, tour)

	return out
}

// EqualToursModuloRotation checks equality of two closed tours under rotation
// (same direction). Both inputs must be closed (len==n+1).
//
// Complexity: O(n) time.
func EqualToursModuloRotation(a, b []int) bool {
	if len(a) != len(b) || len(a) < 2 {
		return false
	}
	var (
		n  = len(a) - 1
		st = a[0]
	)
	if a[n] != st || b[n] != b[0] {
		return false
	}
	var (
		i int
		p = -1
	)
	for i = 0; i < n; i++ {
		if b[i] == st {
			p = i
			break
		}
	}
	if p == -1 {
		return false
	}
	for i = 0; i < n; i++ {
		if a[i] != b[(p+i)%n] {
			return false
		}
	}

	return true
}
