// SPDX-License-Identifier: MIT
package boltzmann_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/boltzmann/boltzmann"
	"github.com/katalvlaran/boltzmann/tsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	fromTour := func(tour ...int) boltzmann.StateMatrix {
		s, err := boltzmann.StateMatrixFromTour(tour)
		require.NoError(t, err)
		return s
	}
	withExtra := func(s boltzmann.StateMatrix, c boltzmann.Coord) boltzmann.StateMatrix {
		out, err := s.Apply(boltzmann.Proposal{Activate: []boltzmann.Coord{c}})
		require.NoError(t, err)
		return out
	}
	without := func(s boltzmann.StateMatrix, c boltzmann.Coord) boltzmann.StateMatrix {
		out, err := s.Apply(boltzmann.Proposal{Deactivate: []boltzmann.Coord{c}})
		require.NoError(t, err)
		return out
	}
	valid := fromTour(0, 3, 2, 1, 4, 0)

	tests := []struct {
		name    string
		s       boltzmann.StateMatrix
		wantErr error
	}{
		{"valid", valid, nil},
		{"valid other start", fromTour(2, 0, 1, 2), nil},
		{"all off", boltzmann.NewStateMatrix(5), boltzmann.ErrNoActiveCity},
		{"empty column", without(valid, boltzmann.Coord{City: 2, Epoch: 2}), boltzmann.ErrNoActiveCity},
		{"double column", withExtra(valid, boltzmann.Coord{City: 4, Epoch: 2}), boltzmann.ErrMultipleActive},
		{"repeated city", fromTour(0, 1, 1, 0), boltzmann.ErrTourNotComplete},
		{"open loop", fromTour(0, 1, 2, 1), boltzmann.ErrTourNotComplete},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := boltzmann.Validate(tc.s)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, boltzmann.ErrTourNotComplete)
		})
	}
}

func TestExtractTour_RoundTrip(t *testing.T) {
	t.Parallel()

	want := []int{0, 3, 2, 1, 4, 0}
	s, err := boltzmann.StateMatrixFromTour(want)
	require.NoError(t, err)

	got, err := boltzmann.ExtractTour(s)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	d, err := boltzmann.TourDistance(got, fiveCity(t))
	require.NoError(t, err)
	assert.Equal(t, 73.0, d)
}

func TestStateMatrixFromTour_Errors(t *testing.T) {
	t.Parallel()

	_, err := boltzmann.StateMatrixFromTour([]int{0})
	assert.ErrorIs(t, err, boltzmann.ErrShapeMismatch)
	_, err = boltzmann.StateMatrixFromTour([]int{0, 5, 0})
	assert.ErrorIs(t, err, boltzmann.ErrCoordOutOfRange)
}

func TestStateMatrix_Format(t *testing.T) {
	t.Parallel()

	s, err := boltzmann.StateMatrixFromTour([]int{1, 0, 1})
	require.NoError(t, err)
	want := strings.Join([]string{
		"-- network state --",
		"   1 2 3",
		"A [0 1 0]",
		"B [1 0 1]",
		"",
	}, "\n")
	assert.Equal(t, want, s.String())
	assert.Contains(t, s.Format(tsp.Labels{"x", "y"}), "y [1 0 1]")
}

func TestMachine_TourReporting(t *testing.T) {
	t.Parallel()

	m := newMachine(t, fiveCity(t))
	_, err := m.Tour()
	assert.ErrorIs(t, err, boltzmann.ErrTourNotComplete, "fresh machine has no tour")
	_, err = m.Distance()
	assert.ErrorIs(t, err, boltzmann.ErrTourNotComplete)

	_, err = boltzmann.Anneal(m, startT, nil, boltzmann.WithSeed(seedDet))
	require.NoError(t, err)

	route, err := m.Tour()
	require.NoError(t, err)
	parts := strings.Split(route, tsp.Arrow)
	require.Len(t, parts, 6)
	assert.Equal(t, parts[0], parts[5])

	d, err := m.Distance()
	require.NoError(t, err)
	assert.Greater(t, d, 0.0)
}

func TestNewMachine_Labels(t *testing.T) {
	t.Parallel()

	_, err := boltzmann.NewMachine(fiveCity(t), hCharge, bCharge, boltzmann.WithLabels(tsp.Labels{"a", "b"}))
	assert.ErrorIs(t, err, tsp.ErrTooFewLabels)

	labels := tsp.Labels{"Kyiv", "Lviv", "Odesa", "Dnipro", "Kharkiv"}
	m, err := boltzmann.NewMachine(fiveCity(t), hCharge, bCharge, boltzmann.WithLabels(labels))
	require.NoError(t, err)
	labels[0] = "changed"
	assert.Equal(t, "Kyiv", m.Labels()[0], "labels are copied")
}

func TestNewMachine_CopiesDistances(t *testing.T) {
	t.Parallel()

	dist := fiveCity(t)
	m := newMachine(t, dist)
	require.NoError(t, dist.Set(0, 1, 99))
	v, err := m.Distances().At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)
	assert.Equal(t, hCharge, m.HamiltonianErrorCharge())
	assert.Equal(t, bCharge, m.BiasCharge())
	assert.Equal(t, 5, m.Cities())
}
