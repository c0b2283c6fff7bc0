// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for distance-matrix checks.
//   - Return sentinel errors wrapped with a validator tag so call sites can
//     match with errors.Is and still read where the check failed.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate nothing.
//   - Symmetry check runs O(n²) on the upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf(
			fmt.Sprintf("ValidateSquare: %dx%d", m.Rows(), m.Cols()), ErrNonSquare)
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf anywhere in m.
// Assumes m is non-nil.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return err
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf(fmt.Sprintf("ValidateFinite: (%d,%d)", i, j), ErrNaNInf)
			}
		}
	}

	return nil
}

// ValidateNonNegative rejects negative entries.
// Assumes m is non-nil.
// Complexity: O(r*c).
func ValidateNonNegative(m Matrix) error {
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return err
			}
			if v < 0 {
				return validatorErrorf(fmt.Sprintf("ValidateNonNegative: (%d,%d)=%g", i, j, v), ErrNegative)
			}
		}
	}

	return nil
}

// ValidateZeroDiagonal checks |a_ii| <= eps for every i.
// Assumes m is square.
// Complexity: O(n).
func ValidateZeroDiagonal(m Matrix, eps float64) error {
	var (
		i   int
		v   float64
		err error
	)
	for i = 0; i < m.Rows(); i++ {
		if v, err = m.At(i, i); err != nil {
			return err
		}
		if math.Abs(v) > eps {
			return validatorErrorf(fmt.Sprintf("ValidateZeroDiagonal: (%d,%d)=%g", i, i, v), ErrNonZeroDiagonal)
		}
	}

	return nil
}

// ValidateSymmetric checks |a_ij - a_ji| <= eps over the upper triangle.
// Assumes m is square.
// Complexity: O(n²).
func ValidateSymmetric(m Matrix, eps float64) error {
	var (
		i, j     int
		aij, aji float64
		err      error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = i + 1; j < m.Cols(); j++ {
			if aij, err = m.At(i, j); err != nil {
				return err
			}
			if aji, err = m.At(j, i); err != nil {
				return err
			}
			if math.Abs(aij-aji) > eps {
				return validatorErrorf(
					fmt.Sprintf("ValidateSymmetric: (%d,%d)=%g vs (%d,%d)=%g", i, j, aij, j, i, aji), ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateDistances runs the full distance-matrix contract in a fixed order:
// NotNil → Square → Finite → NonNegative → ZeroDiagonal → Symmetric.
// The first violation wins; options may relax symmetry or change eps.
//
// Complexity: O(n²).
func ValidateDistances(m Matrix, opts ...Option) error {
	o := gatherOptions(opts...)

	if err := ValidateSquare(m); err != nil {
		return err
	}
	if err := ValidateFinite(m); err != nil {
		return err
	}
	if err := ValidateNonNegative(m); err != nil {
		return err
	}
	if err := ValidateZeroDiagonal(m, o.eps); err != nil {
		return err
	}
	if o.symmetric {
		return ValidateSymmetric(m, o.eps)
	}

	return nil
}
