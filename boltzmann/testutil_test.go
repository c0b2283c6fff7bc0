// SPDX-License-Identifier: MIT

// Package boltzmann_test holds shared fixtures for the annealer tests.
package boltzmann_test

import (
	"testing"

	"github.com/katalvlaran/boltzmann/boltzmann"
	"github.com/katalvlaran/boltzmann/builder"
	"github.com/katalvlaran/boltzmann/matrix"
	"github.com/katalvlaran/boltzmann/tsp"
	"github.com/stretchr/testify/require"
)

const (
	// hCharge and bCharge are the reference hyperparameters.
	hCharge = 0.5
	bCharge = -0.2

	// startT is the reference start temperature.
	startT = 5000.0

	// seedDet fixes the random stream for reproducible tests.
	seedDet = int64(42)
)

// fiveCityRows is the reference symmetric 5-city table.
var fiveCityRows = [][]float64{
	{0, 10, 20, 5, 18},
	{10, 0, 15, 32, 10},
	{20, 15, 0, 25, 16},
	{5, 32, 25, 0, 35},
	{18, 10, 16, 35, 0},
}

func fiveCity(t *testing.T) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(fiveCityRows)
	require.NoError(t, err)

	return m
}

// ringDistances builds a symmetric n-city ring whose optimal tour costs n.
func ringDistances(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	m, err := builder.Ring(n)
	require.NoError(t, err)

	return m
}

func newMachine(t *testing.T, dist matrix.Matrix) *boltzmann.Machine {
	t.Helper()
	m, err := boltzmann.NewMachine(dist, hCharge, bCharge)
	require.NoError(t, err)

	return m
}

// assertValidTour checks a closed tour over n cities: length n+1, every
// city once in [0, n), closing entry equal to the first.
func assertValidTour(t *testing.T, tour []int, n int) {
	t.Helper()
	require.NoError(t, tsp.ValidateTour(tour, n), "tour %v", tour)
}
