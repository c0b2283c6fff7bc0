// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/boltzmann/matrix"
)

// Point is a city position in the plane.
type Point struct {
	X, Y float64
}

// Ring returns n cities on a cycle where neighbouring indices are one hop
// apart and d(i,j) = hop·min(|i-j|, n-|i-j|), hop = 1 unless WithScale is
// given. The optimal tour visits the cities in index order and costs n·hop.
//
// Errors: ErrTooFewCities if n < 2.
//
// Complexity: O(n²).
func Ring(n int, opts ...BuilderOption) (*matrix.Dense, error) {
	if n < 2 {
		return nil, fmt.Errorf("Ring(%d): %w", n, ErrTooFewCities)
	}
	cfg := newBuilderConfig(opts...)
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}

	var i, j, d int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = j - i
			if n-d < d {
				d = n - d
			}
			if err = setPair(m, i, j, float64(d)*cfg.hop()); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// Euclidean returns the straight-line distance table between points.
//
// Errors: ErrTooFewCities if len(points) < 2, ErrInvalidPoint on a NaN or
// infinite coordinate.
//
// Complexity: O(n²).
func Euclidean(points []Point, opts ...BuilderOption) (*matrix.Dense, error) {
	n := len(points)
	if n < 2 {
		return nil, fmt.Errorf("Euclidean(%d points): %w", n, ErrTooFewCities)
	}
	for i, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			return nil, fmt.Errorf("Euclidean: point %d (%g, %g): %w", i, p.X, p.Y, ErrInvalidPoint)
		}
	}
	cfg := newBuilderConfig(opts...)
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}

	var (
		i, j int
		d    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = math.Hypot(points[i].X-points[j].X, points[i].Y-points[j].Y)
			if cfg.round {
				d = math.Round(d)
			}
			if err = setPair(m, i, j, d); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// RandomEuclidean draws n points uniformly from [0, scale)², scale being
// DefaultScale unless WithScale is given, with the configured RNG and
// returns their distance table along with the points.
//
// Errors: ErrTooFewCities if n < 2.
//
// Complexity: O(n²).
func RandomEuclidean(n int, opts ...BuilderOption) (*matrix.Dense, []Point, error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("RandomEuclidean(%d): %w", n, ErrTooFewCities)
	}
	var (
		cfg    = newBuilderConfig(opts...)
		side   = cfg.squareSide()
		points = make([]Point, n)
	)
	for i := range points {
		points[i] = Point{X: cfg.rng.Float64() * side, Y: cfg.rng.Float64() * side}
	}
	m, err := Euclidean(points, opts...)
	if err != nil {
		return nil, nil, err
	}

	return m, points, nil
}

// UpperRows returns the rows of m with every entry below the diagonal
// zeroed, the upper-triangle form accepted by matrix.MirrorUpper and by
// the service's default request mode.
//
// Complexity: O(n²).
func UpperRows(m matrix.Matrix) ([][]float64, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, err
	}
	n := m.Rows()
	out := make([][]float64, n)

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j = i + 1; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out[i][j] = v
		}
	}

	return out, nil
}

func setPair(m *matrix.Dense, i, j int, v float64) error {
	if err := m.Set(i, j, v); err != nil {
		return err
	}

	return m.Set(j, i, v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
