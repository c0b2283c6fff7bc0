// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// IsUpperTriangular reports whether every entry strictly below the diagonal
// is exactly zero. Assumes m is square and non-nil.
// Complexity: O(n²).
func IsUpperTriangular(m Matrix) bool {
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 1; i < m.Rows(); i++ {
		for j = 0; j < i; j++ {
			v, err = m.At(i, j)
			if err != nil || v != 0 {
				return false
			}
		}
	}

	return true
}

// MirrorUpper returns D + Dᵀ − diag(D) for an upper-triangular D, i.e. the
// symmetric matrix whose upper triangle equals D's. This is how callers that
// only send the upper half of a distance table are normalized.
//
// Errors:
//   - ErrNilMatrix / ErrNonSquare from ValidateSquare.
//   - ErrNotTriangular if any entry below the diagonal is non-zero.
//
// Complexity: O(n²) time, O(n²) space.
func MirrorUpper(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, err
	}
	if !IsUpperTriangular(m) {
		return nil, fmt.Errorf("MirrorUpper: %w", ErrNotTriangular)
	}
	n := m.Rows()
	out, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*n+j] = v
			out.data[j*n+i] = v
		}
	}

	return out, nil
}
