// SPDX-License-Identifier: MIT

package boltzmann

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/boltzmann/matrix"
)

const (
	// distanceScale and the exponential decay map short distances to strongly
	// negative (favourable) weights: f(w) = distanceScale·e^{-w}.
	distanceScale = -100.0

	// ClosingReward is the weight between (city, 0) and (city, n): closing the
	// loop with the start city lowers consensus.
	ClosingReward = -1.0
)

// TransformDistance maps a distance w to a connection weight:
// f(w) = -100·e^{-w} for w ≠ 0, and 0 for w == 0 (a city to itself).
func TransformDistance(w float64) float64 {
	if w == 0 {
		return 0
	}

	return distanceScale * math.Exp(-w)
}

// Network is the n × (n+1) grid of binary nodes of a Boltzmann machine.
//
// Storage follows two contiguous arrays instead of a graph of node objects:
//   - weights: an N×N gonum tensor, N = n·(n+1); row i is the weight vector
//     of node i, where i = city·(n+1) + epoch.
//   - state: a parallel []bool of length N.
//
// Weights are fixed after NewNetwork; only state changes during annealing.
type Network struct {
	cities  int
	epochs  int
	weights *mat.Dense
	state   []bool
}

// NewNetwork validates dist and builds the weight tensor.
//
// For every node (city, epoch), its weight vector is filled in this order
// (later steps overwrite earlier ones):
//  1. every city at epochs (epoch±1) mod (n+1) gets f(dist[city][c]);
//  2. the same city at every epoch gets hCharge (no revisits);
//  3. every city at the same epoch gets hCharge (one city per epoch);
//  4. epoch 0 → every city at epoch n gets hCharge, except the same city,
//     which gets ClosingReward; epoch n mirrors this towards epoch 0;
//  5. the node itself gets bCharge (bias).
//
// All states start inactive.
//
// Errors: matrix validation sentinels (ErrNilMatrix, ErrNonSquare,
// ErrAsymmetry, ErrNonZeroDiagonal, ErrNegative, ErrNaNInf), ErrTooFewCities,
// ErrInvalidCharge.
//
// Complexity: O(n⁴) time and memory.
func NewNetwork(dist matrix.Matrix, hCharge, bCharge float64) (*Network, error) {
	if err := matrix.ValidateDistances(dist); err != nil {
		return nil, fmt.Errorf("NewNetwork: %w", err)
	}
	if !finite(hCharge) || !finite(bCharge) {
		return nil, fmt.Errorf("NewNetwork: h=%g b=%g: %w", hCharge, bCharge, ErrInvalidCharge)
	}

	n := dist.Rows()
	if n < 2 {
		return nil, fmt.Errorf("NewNetwork: n=%d: %w", n, ErrTooFewCities)
	}

	// Stage 1: transformed distance table f(d).
	var (
		fd   = make([][]float64, n)
		i, j int
		w    float64
		err  error
	)
	for i = 0; i < n; i++ {
		fd[i] = make([]float64, n)
		for j = 0; j < n; j++ {
			if w, err = dist.At(i, j); err != nil {
				return nil, fmt.Errorf("NewNetwork: %w", err)
			}
			fd[i][j] = TransformDistance(w)
		}
	}

	// Stage 2: allocate tensor and fill one weight vector per node.
	var (
		epochs = n + 1
		size   = n * epochs
		net    = &Network{
			cities:  n,
			epochs:  epochs,
			weights: mat.NewDense(size, size, nil),
			state:   make([]bool, size),
		}
		city, epoch int
	)
	for city = 0; city < n; city++ {
		for epoch = 0; epoch < epochs; epoch++ {
			net.fillRow(city, epoch, fd[city], hCharge, bCharge)
		}
	}

	return net, nil
}

// fillRow writes the weight vector of node (city, epoch). fdRow is the
// transformed distance row of city.
func (nw *Network) fillRow(city, epoch int, fdRow []float64, hCharge, bCharge float64) {
	var (
		row   = nw.weights.RawRowView(nw.index(city, epoch))
		n     = nw.cities
		next  = (epoch + 1) % nw.epochs
		prev  = (epoch - 1 + nw.epochs) % nw.epochs
		c, e  int
		other int
	)

	// Reward short hops to adjacent epochs.
	for c = 0; c < n; c++ {
		row[nw.index(c, next)] = fdRow[c]
		row[nw.index(c, prev)] = fdRow[c]
	}

	// No city twice in a tour.
	for e = 0; e < nw.epochs; e++ {
		row[nw.index(city, e)] = hCharge
	}

	// No two cities in one epoch.
	for c = 0; c < n; c++ {
		row[nw.index(c, epoch)] = hCharge
	}

	// Boundary epochs: close the loop with the same city only.
	switch epoch {
	case 0:
		other = n
	case n:
		other = 0
	default:
		other = -1
	}
	if other >= 0 {
		for c = 0; c < n; c++ {
			row[nw.index(c, other)] = hCharge
		}
		row[nw.index(city, other)] = ClosingReward
	}

	// Bias.
	row[nw.index(city, epoch)] = bCharge
}

// Cities returns n.
func (nw *Network) Cities() int { return nw.cities }

// Epochs returns n+1.
func (nw *Network) Epochs() int { return nw.epochs }

// Size returns the number of nodes, n·(n+1).
func (nw *Network) Size() int { return len(nw.state) }

// index maps (city, epoch) to a flat node index.
func (nw *Network) index(city, epoch int) int { return city*nw.epochs + epoch }

// Weight returns the connection weight from node a to node b.
func (nw *Network) Weight(a, b Coord) (float64, error) {
	if !nw.inRange(a) || !nw.inRange(b) {
		return 0, fmt.Errorf("Weight(%+v,%+v): %w", a, b, ErrCoordOutOfRange)
	}

	return nw.weights.At(nw.index(a.City, a.Epoch), nw.index(b.City, b.Epoch)), nil
}

// Weights exposes the weight tensor read-only.
func (nw *Network) Weights() mat.Matrix { return nw.weights }

func (nw *Network) inRange(c Coord) bool {
	return c.City >= 0 && c.City < nw.cities && c.Epoch >= 0 && c.Epoch < nw.epochs
}

// States returns a snapshot of the current node states.
// Complexity: O(n²).
func (nw *Network) States() StateMatrix {
	s := NewStateMatrix(nw.cities)
	copy(s.bits, nw.state)

	return s
}

// activate sets a node on without any invariant checks; used by initialization.
func (nw *Network) activate(city, epoch int) {
	nw.state[nw.index(city, epoch)] = true
}

// apply commits p to the live states: all deactivations, then all
// activations. Coordinates are checked before the first write, so a bad
// proposal leaves the network untouched.
func (nw *Network) apply(p Proposal) error {
	for _, c := range p.Deactivate {
		if !nw.inRange(c) {
			return fmt.Errorf("apply: deactivate %+v: %w", c, ErrCoordOutOfRange)
		}
	}
	for _, c := range p.Activate {
		if !nw.inRange(c) {
			return fmt.Errorf("apply: activate %+v: %w", c, ErrCoordOutOfRange)
		}
	}
	for _, c := range p.Deactivate {
		nw.state[nw.index(c.City, c.Epoch)] = false
	}
	for _, c := range p.Activate {
		nw.state[nw.index(c.City, c.Epoch)] = true
	}

	return nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
