// SPDX-License-Identifier: MIT

package boltzmann

import (
	"math"
	"math/rand"
)

// Sigmoid is the logistic squash used by the acceptance rule:
// sigmoid(x, T) = 1 / (1 + e^{x/T}).
func Sigmoid(x, T float64) float64 {
	return 1 / (1 + math.Exp(x/T))
}

// AcceptanceProbability returns the probability of accepting a move with
// energy change dE at temperature T on a network of size nodes:
//
//	dE ≤ 0: 1
//	dE > 0: (1/size) · log10(T) · sigmoid(e^{dE}, T)
//
// This is not the textbook e^{-dE/T}; it shrinks with both dE and network
// size. For T ≤ 1 the result is ≤ 0, so uphill moves are never taken.
// e^{dE} overflowing to +Inf yields 0, not NaN.
func AcceptanceProbability(dE, T float64, size int) float64 {
	if dE <= 0 {
		return 1
	}

	return (1 / float64(size)) * math.Log10(T) * Sigmoid(math.Exp(dE), T)
}

// Metropolis decides whether to accept a move. Downhill and neutral moves
// are always accepted without consuming randomness; uphill moves are
// accepted iff a uniform draw from [0,1) is below AcceptanceProbability.
func Metropolis(dE, T float64, size int, rng *rand.Rand) bool {
	if dE <= 0 {
		return true
	}

	return rng.Float64() < AcceptanceProbability(dE, T, size)
}
