// SPDX-License-Identifier: MIT

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/katalvlaran/boltzmann/boltzmann"
	"github.com/katalvlaran/boltzmann/config"
	"github.com/katalvlaran/boltzmann/matrix"
	"github.com/katalvlaran/boltzmann/resources"
)

// Request is the body of POST / and the first frame of /ws. Omitted
// parameters fall back to the configured anneal defaults.
type Request struct {
	Distances  [][]float64 `json:"distances"`
	T          *float64    `json:"T,omitempty"`
	HCharge    *float64    `json:"h_charge,omitempty"`
	BCharge    *float64    `json:"b_charge,omitempty"`
	Triangular *bool       `json:"triangular,omitempty"` // default true: upper triangle, mirrored
	Seed       int64       `json:"seed,omitempty"`
}

// Frame types sent over /ws.
const (
	FrameRun    = "run"
	FrameRecord = "record"
	FrameDone   = "done"
	FrameError  = "error"
)

// Frame is one websocket message.
type Frame struct {
	Type    string            `json:"type"`
	RunID   string            `json:"run_id,omitempty"`
	Record  *boltzmann.Record `json:"record,omitempty"`
	Best    *boltzmann.Best   `json:"best,omitempty"`
	Records int               `json:"records,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// ErrorResponse is the JSON body of a rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// apiError pairs an error with the HTTP status it maps to.
type apiError struct {
	status int
	err    error
}

func (e *apiError) Error() string { return e.err.Error() }
func (e *apiError) Unwrap() error { return e.err }

func badRequest(err error) error { return &apiError{status: http.StatusBadRequest, err: err} }
func tooLarge(err error) error   { return &apiError{status: http.StatusRequestEntityTooLarge, err: err} }

// statusOf maps an error from decode/prepare to an HTTP status.
func statusOf(err error) int {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.status
	}

	return http.StatusInternalServerError
}

// prepared is a validated request, ready to stream.
type prepared struct {
	machine *boltzmann.Machine
	run     *boltzmann.Run
	cities  int
	startT  float64
}

// decodeRequest parses a JSON request body.
func decodeRequest(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, badRequest(fmt.Errorf("%w: %w", ErrMalformedRequest, err))
	}

	return req, nil
}

// prepare validates req against the limits, builds the machine and
// initializes the run. Nothing is written to the client until it succeeds.
func prepare(req Request, cfg *config.Config, guard *resources.Guard) (*prepared, error) {
	n := len(req.Distances)
	if n == 0 {
		return nil, badRequest(ErrEmptyRequest)
	}
	if n > cfg.Limits.MaxCities {
		return nil, tooLarge(fmt.Errorf("%w: %d > %d", ErrTooManyCities, n, cfg.Limits.MaxCities))
	}
	if guard != nil {
		if err := guard.Check(n); err != nil {
			if errors.Is(err, resources.ErrNetworkTooLarge) {
				return nil, tooLarge(err)
			}
			return nil, err
		}
	}

	dense, err := matrix.NewDenseFromRows(req.Distances)
	if err != nil {
		return nil, badRequest(err)
	}
	var dist matrix.Matrix = dense
	if req.Triangular == nil || *req.Triangular {
		if dist, err = matrix.MirrorUpper(dense); err != nil {
			return nil, badRequest(err)
		}
	}

	var (
		a      = cfg.Anneal
		startT = valueOr(req.T, a.Temperature)
		seed   = req.Seed
	)
	if seed == 0 {
		seed = a.Seed
	}
	m, err := boltzmann.NewMachine(dist, valueOr(req.HCharge, a.HCharge), valueOr(req.BCharge, a.BCharge),
		boltzmann.WithLabels(a.Labels))
	if err != nil {
		return nil, badRequest(err)
	}
	run, err := boltzmann.Anneal(m, startT, boltzmann.DefaultSchedule,
		boltzmann.WithSeed(seed),
		boltzmann.WithStopTemperature(a.StopTemperature))
	if err != nil {
		return nil, badRequest(err)
	}

	return &prepared{machine: m, run: run, cities: n, startT: startT}, nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}

	return *p
}
