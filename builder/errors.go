// SPDX-License-Identifier: MIT

package builder

import "errors"

var (
	// ErrTooFewCities is returned when an instance is requested with fewer than two cities.
	ErrTooFewCities = errors.New("builder: need at least 2 cities")

	// ErrInvalidPoint is returned when a coordinate is NaN or infinite.
	ErrInvalidPoint = errors.New("builder: point coordinates must be finite")

	// ErrNegativeCount is returned when Labels is asked for a negative count.
	ErrNegativeCount = errors.New("builder: negative label count")
)
