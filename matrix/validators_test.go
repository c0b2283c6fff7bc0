// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the distance validators.
package matrix_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/boltzmann/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fiveCityUpper is the upper-triangular table posted by the reference client.
var fiveCityUpper = [][]float64{
	{0, 10, 20, 5, 18},
	{0, 0, 15, 32, 10},
	{0, 0, 0, 25, 16},
	{0, 0, 0, 0, 35},
	{0, 0, 0, 0, 0},
}

// fiveCity is the same table in full symmetric form.
var fiveCity = [][]float64{
	{0, 10, 20, 5, 18},
	{10, 0, 15, 32, 10},
	{20, 15, 0, 25, 16},
	{5, 32, 25, 0, 35},
	{18, 10, 16, 35, 0},
}

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

func TestValidateDistances(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		m       matrix.Matrix
		opts    []matrix.Option
		wantErr error
	}{
		{"nil", nil, nil, matrix.ErrNilMatrix},
		{"non-square", mustDense(t, [][]float64{{0, 1, 2}, {1, 0, 3}}), nil, matrix.ErrNonSquare},
		{"negative", mustDense(t, [][]float64{{0, -1}, {-1, 0}}), nil, matrix.ErrNegative},
		{"diagonal", mustDense(t, [][]float64{{1, 2}, {2, 0}}), nil, matrix.ErrNonZeroDiagonal},
		{"asymmetric", mustDense(t, fiveCityUpper), nil, matrix.ErrAsymmetry},
		{"asymmetric allowed", mustDense(t, fiveCityUpper), []matrix.Option{matrix.WithoutSymmetry()}, nil},
		{"symmetric", mustDense(t, fiveCity), nil, nil},
		{"within eps", mustDense(t, [][]float64{{0, 1}, {1.05, 0}}), []matrix.Option{matrix.WithEpsilon(0.1)}, nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateDistances(tc.m, tc.opts...)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Truef(t, errors.Is(err, tc.wantErr),
				"expected errors.Is(%v, %v)", err, tc.wantErr)
		})
	}
}

func TestWithEpsilon_PanicsOnNegative(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { matrix.WithEpsilon(-1) })
}

func TestMirrorUpper(t *testing.T) {
	t.Parallel()

	sym, err := matrix.MirrorUpper(mustDense(t, fiveCityUpper))
	require.NoError(t, err)
	assert.Equal(t, fiveCity, sym.ToRows())
	require.NoError(t, matrix.ValidateDistances(sym))

	// A full symmetric matrix is not upper triangular: never silently doubled.
	_, err = matrix.MirrorUpper(mustDense(t, fiveCity))
	assert.ErrorIs(t, err, matrix.ErrNotTriangular)

	_, err = matrix.MirrorUpper(mustDense(t, [][]float64{{0, 1, 2}}))
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestIsUpperTriangular(t *testing.T) {
	t.Parallel()
	assert.True(t, matrix.IsUpperTriangular(mustDense(t, fiveCityUpper)))
	assert.False(t, matrix.IsUpperTriangular(mustDense(t, fiveCity)))
}
