// SPDX-License-Identifier: MIT

package boltzmann

import (
	"fmt"

	"github.com/katalvlaran/boltzmann/matrix"
	"github.com/katalvlaran/boltzmann/tsp"
)

// Validate checks that s encodes a Hamiltonian tour:
//   - every epoch column has exactly one active city;
//   - no city is active at two non-closing epochs;
//   - the city at the final epoch is the city at epoch 0.
//
// Errors: ErrTourNotComplete, wrapped with the reason (and the column
// sentinel, ErrNoActiveCity / ErrMultipleActive, when that is the cause).
//
// Complexity: O(n²).
func Validate(s StateMatrix) error {
	_, err := walk(s)

	return err
}

// ExtractTour returns the active city of every epoch in order, length n+1.
// Errors: ErrTourNotComplete when Validate fails.
func ExtractTour(s StateMatrix) ([]int, error) {
	return walk(s)
}

// walk validates and extracts in one pass.
func walk(s StateMatrix) ([]int, error) {
	if s.cities < 1 || s.epochs != s.cities+1 {
		return nil, fmt.Errorf("%w: shape %dx%d", ErrTourNotComplete, s.cities, s.epochs)
	}
	var (
		last     = s.epochs - 1
		tour     = make([]int, s.epochs)
		firstAt  = make([]int, s.cities)
		e        int
		city     int
		colErr   error
		previous int
	)
	for city = range firstAt {
		firstAt[city] = -1
	}
	for e = 0; e <= last; e++ {
		if city, colErr = s.Active(e); colErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrTourNotComplete, colErr)
		}
		previous = firstAt[city]
		switch {
		case e == last:
			if previous != 0 {
				return nil, fmt.Errorf("%w: epoch %d city %d does not close the loop", ErrTourNotComplete, e, city)
			}
		case previous >= 0:
			return nil, fmt.Errorf("%w: city %d repeats at epochs %d and %d", ErrTourNotComplete, city, previous, e)
		default:
			firstAt[city] = e
		}
		tour[e] = city
	}

	return tour, nil
}

// TourDistance sums dist over consecutive tour entries, closing edge included.
// Errors: tsp sentinels (ErrDimensionMismatch, ErrIncompleteGraph, ...).
func TourDistance(tour []int, dist matrix.Matrix) (float64, error) {
	return tsp.TourCost(dist, tour)
}
