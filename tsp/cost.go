// SPDX-License-Identifier: MIT

// Package tsp — cost utilities.
//
// Design:
//   - Works on any matrix.Matrix; a fast path reads *matrix.Dense rows directly.
//   - Defensive checks (Inf/NaN/negative) even if the matrix was validated earlier.
//   - Stable summation: rounded to 1e-9 to avoid cross-platform FP noise.
package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/boltzmann/matrix"
)

// roundScale controls final cost stabilization precision (1e-9).
const roundScale = 1e9

// TourCost sums dist(tour[i], tour[i+1]) for consecutive tour entries.
// For a closed tour this includes the closing edge back to the start.
//
// Contract:
//   - dist must be square (n×n) and non-nil.
//   - tour must have at least two entries, all within [0..n-1].
//
// Errors: ErrNonSquare, ErrDimensionMismatch, ErrIncompleteGraph, ErrNegativeWeight.
//
// Complexity: O(len(tour)).
func TourCost(dist matrix.Matrix, tour []int) (float64, error) {
	if dist == nil || len(tour) < 2 {
		return 0, ErrDimensionMismatch
	}
	if dist.Rows() != dist.Cols() {
		return 0, ErrNonSquare
	}

	var (
		n   = dist.Rows()
		sum float64
		w   float64
		err error
		i   int
		u   int
		v   int
	)
	for i = 0; i+1 < len(tour); i++ {
		u, v = tour[i], tour[i+1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return 0, fmt.Errorf("TourCost: edge %d->%d: %w", u, v, ErrDimensionMismatch)
		}
		if w, err = dist.At(u, v); err != nil {
			return 0, fmt.Errorf("TourCost: %w", err)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, fmt.Errorf("TourCost: edge %d->%d: %w", u, v, ErrIncompleteGraph)
		}
		if w < 0 {
			return 0, fmt.Errorf("TourCost: edge %d->%d: %w", u, v, ErrNegativeWeight)
		}
		sum += w
	}

	return round1e9(sum), nil
}

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
