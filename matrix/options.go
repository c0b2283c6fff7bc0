// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for distance validation.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// DefaultEpsilon defines the non-negative tolerance used by structural checks
// (symmetry, zero diagonal).
const DefaultEpsilon = 1e-9

const panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"

// Options holds the resolved validation policy. Fields are unexported; public
// APIs consume ...Option.
type Options struct {
	eps       float64 // tolerance for symmetry and diagonal checks
	symmetric bool    // require |a_ij - a_ji| <= eps
}

// Option mutates Options. Safe to apply repeatedly.
type Option func(*Options)

// defaultOptions mirrors the distance-matrix contract: symmetric, zero
// diagonal, non-negative.
func defaultOptions() Options {
	return Options{
		eps:       DefaultEpsilon,
		symmetric: true,
	}
}

// gatherOptions applies opts over the defaults in order.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithEpsilon sets the structural tolerance. Panics on NaN, Inf or negative eps.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithoutSymmetry disables the symmetry requirement. Used when validating the
// raw upper-triangular payload before MirrorUpper.
func WithoutSymmetry() Option {
	return func(o *Options) { o.symmetric = false }
}
