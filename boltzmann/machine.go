// SPDX-License-Identifier: MIT

package boltzmann

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/boltzmann/matrix"
	"github.com/katalvlaran/boltzmann/tsp"
)

// Machine owns a Network and the distance matrix it was built from, and
// exposes the state, energy, proposal and tour-reporting operations the
// annealing loop needs.
type Machine struct {
	net      *Network
	dist     matrix.Matrix
	labels   tsp.Labels
	hCharge  float64
	bCharge  float64
	consumed bool
}

// NewMachine validates dist and builds the machine's network.
//
// hCharge (hamiltonianErrorCharge) penalizes broken tours and should be
// large relative to transformed distances; bCharge (biasCharge) is the
// self weight and is usually small and negative. Neither is range checked.
//
// Errors: everything NewNetwork returns, plus tsp.ErrTooFewLabels.
func NewMachine(dist matrix.Matrix, hCharge, bCharge float64, opts ...MachineOption) (*Machine, error) {
	o := gatherMachineOptions(opts...)

	net, err := NewNetwork(dist, hCharge, bCharge)
	if err != nil {
		return nil, err
	}
	if err = o.labels.Check(net.Cities()); err != nil {
		return nil, fmt.Errorf("NewMachine: %w", err)
	}

	return &Machine{
		net:     net,
		dist:    dist.Clone(),
		labels:  o.labels,
		hCharge: hCharge,
		bCharge: bCharge,
	}, nil
}

// Network returns the machine's network.
func (m *Machine) Network() *Network { return m.net }

// Distances returns the machine's private copy of the distance matrix.
func (m *Machine) Distances() matrix.Matrix { return m.dist }

// Labels returns the city labels.
func (m *Machine) Labels() tsp.Labels { return m.labels }

// Cities returns the number of cities.
func (m *Machine) Cities() int { return m.net.Cities() }

// HamiltonianErrorCharge returns the penalty weight.
func (m *Machine) HamiltonianErrorCharge() float64 { return m.hCharge }

// BiasCharge returns the self weight.
func (m *Machine) BiasCharge() float64 { return m.bCharge }

// States returns a snapshot of the current node states.
func (m *Machine) States() StateMatrix { return m.net.States() }

// Consensus returns the energy of the current state.
func (m *Machine) Consensus() float64 {
	c, _ := Consensus(m.net.States(), m.net) // shapes always match

	return c
}

// Tour returns the current tour rendered with the machine's labels,
// e.g. "A->D->C->B->E->A".
// Errors: ErrTourNotComplete when the state is not a Hamiltonian tour.
func (m *Machine) Tour() (string, error) {
	tour, err := ExtractTour(m.net.States())
	if err != nil {
		return "", err
	}

	return tsp.FormatTour(tour, m.labels, tsp.Arrow)
}

// Distance returns the length of the current tour.
// Errors: ErrTourNotComplete when the state is not a Hamiltonian tour.
func (m *Machine) Distance() (float64, error) {
	tour, err := ExtractTour(m.net.States())
	if err != nil {
		return 0, err
	}

	return TourDistance(tour, m.dist)
}

// Propose draws a neighbor of the current state (see propose). It has no
// side effects on the machine.
func (m *Machine) Propose(rng *rand.Rand) (Proposal, error) {
	return propose(m.net.States(), rng)
}

// ProposedStates returns the snapshot the machine would have after p.
func (m *Machine) ProposedStates(p Proposal) (StateMatrix, error) {
	return m.net.States().Apply(p)
}

// EnergyDelta returns Consensus(proposed) − Consensus(current) for p.
// Errors: ErrCoordOutOfRange for a malformed proposal.
func (m *Machine) EnergyDelta(p Proposal) (float64, error) {
	cur := m.net.States()
	next, err := cur.Apply(p)
	if err != nil {
		return 0, err
	}

	return consensusDelta(m.net, cur, next, touchedIndices(m.net, p)), nil
}

// Commit applies p to the live network, all or nothing.
func (m *Machine) Commit(p Proposal) error {
	return m.net.apply(p)
}

// initialize places the cities on epochs [0, n) in random order and repeats
// the first city at epoch n, so the start state is always a valid tour.
func (m *Machine) initialize(rng *rand.Rand) {
	var (
		n     = m.net.Cities()
		order = permRange(n, rng)
		e     int
	)
	for e = 0; e < n; e++ {
		m.net.activate(order[e], e)
	}
	m.net.activate(order[0], n)
}
