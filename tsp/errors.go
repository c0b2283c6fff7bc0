// SPDX-License-Identifier: MIT

// Package tsp provides tour-level utilities for Travelling Salesman solvers:
// closed-tour validation, tour cost over a distance matrix and label
// rendering ("A->D->C->B->E->A").
//
// Design:
//   - No logging, no panics on user input - only sentinel errors from this file.
//   - O(n) time for every helper; no hidden allocations in cost loops.
package tsp

import "errors"

var (
	// ErrDimensionMismatch is returned when a tour's length or contents do not
	// fit the problem size (wrong length, out-of-range or repeated vertex).
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")

	// ErrOpenTour is returned when tour[0] != tour[n].
	ErrOpenTour = errors.New("tsp: tour does not return to its start")

	// ErrNonSquare is returned when a distance matrix is not square.
	ErrNonSquare = errors.New("tsp: distance matrix is not square")

	// ErrIncompleteGraph is returned when a tour edge has an infinite or NaN weight.
	ErrIncompleteGraph = errors.New("tsp: incomplete distance matrix")

	// ErrNegativeWeight is returned when a tour edge has a negative weight.
	ErrNegativeWeight = errors.New("tsp: negative edge weight")

	// ErrTooFewLabels is returned when a label alphabet is shorter than the
	// number of cities it must name.
	ErrTooFewLabels = errors.New("tsp: not enough city labels")
)
