// SPDX-License-Identifier: MIT
// Package: boltzmann/builder
//
// config.go — internal configuration and deterministic defaults.
//
// Defaults:
//   • idFn  = ExcelColumnIDFn ("A".."Z","AA",...)
//   • rng   = rand.New(rand.NewSource(DefaultSeed))
//   • scale = unset: 100 for random squares, 1 for Ring hops
//   • round = false

package builder

import "math/rand"

const (
	// DefaultSeed seeds stochastic builders when no RNG option is given.
	DefaultSeed int64 = 1

	// DefaultScale is the side of the square random points are drawn from.
	DefaultScale = 100.0

	// defaultHop is the Ring distance between neighbouring cities.
	defaultHop = 1.0
)

// builderConfig aggregates all knobs used by constructors.
type builderConfig struct {
	idFn  IDFn
	rng   *rand.Rand
	scale float64 // 0 = unset
	round bool
}

// newBuilderConfig applies opts in order over the defaults; last wins.
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn: ExcelColumnIDFn,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(DefaultSeed))
	}

	return cfg
}

// squareSide is the side of the square RandomEuclidean draws from.
func (c builderConfig) squareSide() float64 {
	if c.scale > 0 {
		return c.scale
	}

	return DefaultScale
}

// hop is the Ring unit length.
func (c builderConfig) hop() float64 {
	if c.scale > 0 {
		return c.scale
	}

	return defaultHop
}
