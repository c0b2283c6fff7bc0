// SPDX-License-Identifier: MIT

package server

import "errors"

var (
	// ErrEmptyRequest is returned when a request carries no distance matrix.
	ErrEmptyRequest = errors.New("server: distances are required")

	// ErrTooManyCities is returned when a request exceeds limits.max_cities.
	ErrTooManyCities = errors.New("server: too many cities")

	// ErrMalformedRequest is returned when the request body is not valid JSON.
	ErrMalformedRequest = errors.New("server: malformed request")

	// ErrAlreadyRunning is returned by Start on a running server.
	ErrAlreadyRunning = errors.New("server: already running")
)
