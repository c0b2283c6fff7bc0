// SPDX-License-Identifier: MIT

package boltzmann

import "errors"

var (
	// ErrTooFewCities is returned when the distance matrix has fewer than two cities.
	ErrTooFewCities = errors.New("boltzmann: need at least 2 cities")

	// ErrInvalidCharge is returned when a hyperparameter is NaN or ±Inf.
	// Magnitudes are not range checked.
	ErrInvalidCharge = errors.New("boltzmann: charge must be a finite number")

	// ErrShapeMismatch is returned when a StateMatrix does not match a Network.
	ErrShapeMismatch = errors.New("boltzmann: state shape does not match network")

	// ErrCoordOutOfRange is returned when a proposal references a node outside the grid.
	ErrCoordOutOfRange = errors.New("boltzmann: coordinate out of range")

	// ErrTourNotComplete marks a state that does not encode a Hamiltonian tour.
	// It is an expected, transient condition, never fatal to a run.
	ErrTourNotComplete = errors.New("boltzmann: hamiltonian tour not complete")

	// ErrNoActiveCity is returned when an epoch column has no active node.
	ErrNoActiveCity = errors.New("boltzmann: no active city in epoch")

	// ErrMultipleActive is returned when an epoch column has more than one active node.
	ErrMultipleActive = errors.New("boltzmann: multiple active cities in epoch")

	// ErrInvalidTemperature is returned when the start temperature is NaN or
	// does not exceed the stop temperature.
	ErrInvalidTemperature = errors.New("boltzmann: start temperature must exceed stop temperature")

	// ErrMachineConsumed is returned when Anneal is called twice on one Machine.
	ErrMachineConsumed = errors.New("boltzmann: machine already annealed")

	// ErrScheduleStalled is reported by Run.Err when the schedule returns a
	// non-positive or NaN decrement, which would never reach the stop temperature.
	ErrScheduleStalled = errors.New("boltzmann: schedule does not decrease temperature")

	// ErrIterationLimit is reported by Run.Err when WithMaxIterations cut the run short.
	ErrIterationLimit = errors.New("boltzmann: iteration limit reached")
)

// TourNotComplete is the text emitted in place of a distance when a record's
// state does not encode a Hamiltonian tour.
const TourNotComplete = "hamiltonian tour not complete"
