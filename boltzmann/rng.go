// SPDX-License-Identifier: MIT

// Package boltzmann - RNG utilities.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each Run owns its own stream.
package boltzmann

import (
	"math/rand"
	"time"
)

// rngFromSeed returns a *rand.Rand.
// Policy: seed != 0 ⇒ deterministic stream; seed == 0 ⇒ a fresh
// time-derived seed, so independent runs explore different tours.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed))
}

// shuffleIntsInPlace performs an in-place Fisher–Yates shuffle of a.
// Complexity: O(n) time, O(1) extra space.
func shuffleIntsInPlace(a []int, rng *rand.Rand) {
	var i, j int
	for i = len(a) - 1; i > 0; i-- {
		j = rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// permRange returns a random permutation of 0..n-1.
// Complexity: O(n) time, O(n) space.
func permRange(n int, rng *rand.Rand) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	shuffleIntsInPlace(p, rng)

	return p
}
