// SPDX-License-Identifier: MIT

package boltzmann

import (
	"fmt"
	"iter"
	"math"
	"math/rand"
	"strconv"

	"github.com/katalvlaran/boltzmann/tsp"
)

// Record is one progress report, taken after the accept/reject decision of
// an iteration.
type Record struct {
	Iteration   int     `json:"iteration"`
	Temperature float64 `json:"temperature"`
	Tour        []int   `json:"tour,omitempty"`
	Route       string  `json:"route"`
	Distance    float64 `json:"distance"`
	Complete    bool    `json:"complete"`
	Accepted    bool    `json:"accepted"`
}

// Fields renders the record as [temperature, route, distance]. An incomplete
// tour renders TourNotComplete in both the route and distance fields.
func (r Record) Fields() []string {
	if !r.Complete {
		return []string{formatFloat(r.Temperature), TourNotComplete, TourNotComplete}
	}

	return []string{formatFloat(r.Temperature), r.Route, formatFloat(r.Distance)}
}

func formatFloat(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }

// Best is the shortest complete tour seen during a run.
type Best struct {
	Iteration   int         `json:"iteration"`
	Temperature float64     `json:"temperature"`
	Tour        []int       `json:"tour"`
	Route       string      `json:"route"`
	Distance    float64     `json:"distance"`
	States      StateMatrix `json:"-"`
}

// Run is a single annealing pass over one Machine.
//
// Lifecycle: Anneal initializes the machine (Initializing), Records drives
// the schedule loop (Annealing) and the sequence ends once T ≤ stop
// (Terminated). A Run is single-use: a second call to Records yields nothing.
// Not safe for concurrent use.
type Run struct {
	m        *Machine
	schedule Schedule
	rng      *rand.Rand
	opts     annealOptions

	temperature float64
	iterations  int
	started     bool
	best        Best
	haveBest    bool
	err         error
}

// Anneal prepares a run of m from startT using schedule (nil means
// DefaultSchedule). The machine is initialized with a random valid tour
// before Anneal returns, so m.States() is already a Hamiltonian tour.
//
// Errors: ErrInvalidTemperature, ErrMachineConsumed.
func Anneal(m *Machine, startT float64, schedule Schedule, opts ...AnnealOption) (*Run, error) {
	o := gatherAnnealOptions(opts...)
	if math.IsNaN(startT) || !(startT > o.stop) {
		return nil, fmt.Errorf("Anneal: start=%g stop=%g: %w", startT, o.stop, ErrInvalidTemperature)
	}
	if m.consumed {
		return nil, ErrMachineConsumed
	}
	if schedule == nil {
		schedule = DefaultSchedule
	}
	m.consumed = true
	m.initialize(o.rng)

	return &Run{
		m:           m,
		schedule:    schedule,
		rng:         o.rng,
		opts:        o,
		temperature: startT,
	}, nil
}

// Records returns the lazy record sequence. Each pull performs exactly one
// iteration: propose, score, accept or reject, report, cool down. Breaking
// out of the range loop leaves the machine in its last committed state.
func (r *Run) Records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		if r.started {
			return
		}
		r.started = true

		var (
			size = r.m.net.Size()
			rec  Record
			step float64
		)
		for r.temperature > r.opts.stop {
			if r.opts.maxIterations > 0 && r.iterations >= r.opts.maxIterations {
				r.err = fmt.Errorf("after %d records: %w", r.iterations, ErrIterationLimit)
				return
			}

			accepted, err := r.step(size)
			if err != nil {
				r.err = err
				return
			}

			rec = r.record(accepted)
			r.iterations++
			r.track(rec)
			if !yield(rec) {
				return
			}

			step = r.schedule(r.temperature)
			if !(step > 0) {
				r.err = fmt.Errorf("step %g at T=%g: %w", step, r.temperature, ErrScheduleStalled)
				return
			}
			r.temperature -= step
		}
	}
}

// step performs one propose/score/decide/apply cycle.
func (r *Run) step(size int) (bool, error) {
	p, err := r.m.Propose(r.rng)
	if err != nil {
		return false, fmt.Errorf("iteration %d: %w", r.iterations, err)
	}
	dE, err := r.m.EnergyDelta(p)
	if err != nil {
		return false, fmt.Errorf("iteration %d: %w", r.iterations, err)
	}
	if !Metropolis(dE, r.temperature, size, r.rng) {
		return false, nil
	}
	if err = r.m.Commit(p); err != nil {
		return false, fmt.Errorf("iteration %d: %w", r.iterations, err)
	}
	if r.opts.checks {
		if err = r.checkInvariants(); err != nil {
			return true, fmt.Errorf("iteration %d: invariant broken: %w", r.iterations, err)
		}
	}

	return true, nil
}

// checkInvariants validates the live grid and cross-checks the tour read
// from it as a closed index sequence.
func (r *Run) checkInvariants() error {
	tour, err := ExtractTour(r.m.States())
	if err != nil {
		return err
	}

	return tsp.ValidateTour(tour, r.m.Cities())
}

// record reads the post-decision state into a Record.
func (r *Run) record(accepted bool) Record {
	rec := Record{
		Iteration:   r.iterations,
		Temperature: r.temperature,
		Accepted:    accepted,
	}
	tour, err := ExtractTour(r.m.States())
	if err != nil {
		return rec
	}
	dist, err := TourDistance(tour, r.m.dist)
	if err != nil {
		return rec
	}
	route, err := tsp.FormatTour(tour, r.m.labels, tsp.Arrow)
	if err != nil {
		return rec
	}
	rec.Tour, rec.Route, rec.Distance, rec.Complete = tour, route, dist, true

	return rec
}

// track keeps the best complete tour; ties keep the earliest.
func (r *Run) track(rec Record) {
	if !rec.Complete || (r.haveBest && rec.Distance >= r.best.Distance) {
		return
	}
	r.best = Best{
		Iteration:   rec.Iteration,
		Temperature: rec.Temperature,
		Tour:        tsp.CopyTour(rec.Tour),
		Route:       rec.Route,
		Distance:    rec.Distance,
		States:      r.m.States(),
	}
	r.haveBest = true
}

// Err returns the error that ended the sequence early, or nil when it ran to
// the stop temperature or the consumer stopped pulling.
func (r *Run) Err() error { return r.err }

// Best returns the shortest complete tour emitted so far; ok is false before
// the first complete record.
func (r *Run) Best() (best Best, ok bool) { return r.best, r.haveBest }

// Iterations returns the number of records produced so far.
func (r *Run) Iterations() int { return r.iterations }

// Temperature returns the current temperature.
func (r *Run) Temperature() float64 { return r.temperature }

// Machine returns the machine being annealed.
func (r *Run) Machine() *Machine { return r.m }
