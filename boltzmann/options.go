// SPDX-License-Identifier: MIT

package boltzmann

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/boltzmann/tsp"
)

// DefaultStopTemperature ends annealing once T ≤ 1.
const DefaultStopTemperature = 1.0

// ---------- Machine options ----------

type machineOptions struct {
	labels tsp.Labels
}

// MachineOption configures NewMachine.
type MachineOption func(*machineOptions)

// WithLabels sets the city names used in rendered tours. There must be at
// least as many labels as cities.
func WithLabels(labels tsp.Labels) MachineOption {
	return func(o *machineOptions) {
		o.labels = append(tsp.Labels(nil), labels...)
	}
}

func gatherMachineOptions(opts ...MachineOption) machineOptions {
	o := machineOptions{labels: tsp.LabelsFromAlphabet(tsp.DefaultLabels)}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// ---------- Anneal options ----------

type annealOptions struct {
	seed          int64
	rng           *rand.Rand
	stop          float64
	checks        bool
	maxIterations int
}

// AnnealOption configures Anneal.
type AnnealOption func(*annealOptions)

// WithSeed makes the run reproducible when seed != 0. Seed 0 draws a fresh
// time-derived seed.
func WithSeed(seed int64) AnnealOption {
	return func(o *annealOptions) { o.seed = seed }
}

// WithRand injects the random stream used for initialization, proposals and
// acceptance draws. It takes precedence over WithSeed.
func WithRand(rng *rand.Rand) AnnealOption {
	return func(o *annealOptions) { o.rng = rng }
}

// WithStopTemperature overrides DefaultStopTemperature. NaN is ignored.
func WithStopTemperature(stop float64) AnnealOption {
	return func(o *annealOptions) {
		if !math.IsNaN(stop) {
			o.stop = stop
		}
	}
}

// WithInvariantChecks validates the live state after every accepted move and
// stops the run (Run.Err) on the first violation.
func WithInvariantChecks(on bool) AnnealOption {
	return func(o *annealOptions) { o.checks = on }
}

// WithMaxIterations caps the number of records; 0 means unlimited. Hitting
// the cap ends the sequence and Run.Err reports ErrIterationLimit.
func WithMaxIterations(n int) AnnealOption {
	return func(o *annealOptions) {
		if n >= 0 {
			o.maxIterations = n
		}
	}
}

func gatherAnnealOptions(opts ...AnnealOption) annealOptions {
	o := annealOptions{stop: DefaultStopTemperature}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.rng == nil {
		o.rng = rngFromSeed(o.seed)
	}

	return o
}
