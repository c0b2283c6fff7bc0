// SPDX-License-Identifier: MIT

package boltzmann

import (
	"fmt"
	"math/rand"
)

// Proposal describes a candidate move: nodes to switch off and nodes to
// switch on. It carries no reference to live state.
type Proposal struct {
	Activate   []Coord `json:"activate"`
	Deactivate []Coord `json:"deactivate"`
}

// propose swaps the active cities of two epoch columns of s.
//
// Algorithm:
//  1. Draw epoch1, epoch2 uniformly from [0, n]. Draws that name the same
//     tour position are redrawn: equal epochs, or the pair {0, n}, which
//     both hold the start city in a valid state. Such swaps are no-ops.
//  2. Read the unique active city of each column (city1, city2).
//  3. Deactivate (city1, epoch1), (city2, epoch2); activate (city1, epoch2),
//     (city2, epoch1).
//  4. If epoch1 is a boundary (0 or n), also move the paired boundary column
//     to city2; otherwise, if epoch2 is a boundary, move it to city1. This
//     keeps epoch 0 and epoch n on the same city.
//
// Errors: ErrNoActiveCity / ErrMultipleActive when a touched column breaks
// the one-city-per-epoch invariant. s is never modified.
//
// Complexity: O(n) expected.
func propose(s StateMatrix, rng *rand.Rand) (Proposal, error) {
	var (
		last           = s.epochs - 1
		epoch1, epoch2 int
	)
	for {
		epoch1 = rng.Intn(s.epochs)
		epoch2 = rng.Intn(s.epochs)
		if !samePosition(epoch1, epoch2, last) {
			break
		}
	}

	city1, err := s.Active(epoch1)
	if err != nil {
		return Proposal{}, fmt.Errorf("propose: %w", err)
	}
	city2, err := s.Active(epoch2)
	if err != nil {
		return Proposal{}, fmt.Errorf("propose: %w", err)
	}

	p := Proposal{
		Activate:   []Coord{{City: city1, Epoch: epoch2}, {City: city2, Epoch: epoch1}},
		Deactivate: []Coord{{City: city1, Epoch: epoch1}, {City: city2, Epoch: epoch2}},
	}

	var (
		boundary   = -1
		swappedIn  int
		pairedCity int
	)
	switch {
	case isBoundary(epoch1, last):
		boundary, swappedIn = pairedBoundary(epoch1, last), city2
	case isBoundary(epoch2, last):
		boundary, swappedIn = pairedBoundary(epoch2, last), city1
	}
	if boundary >= 0 {
		if pairedCity, err = s.Active(boundary); err != nil {
			return Proposal{}, fmt.Errorf("propose: %w", err)
		}
		p.Activate = append(p.Activate, Coord{City: swappedIn, Epoch: boundary})
		p.Deactivate = append(p.Deactivate, Coord{City: pairedCity, Epoch: boundary})
	}

	return p, nil
}

func isBoundary(epoch, last int) bool { return epoch == 0 || epoch == last }

// pairedBoundary maps 0 → last and last → 0.
func pairedBoundary(epoch, last int) int {
	if epoch == 0 {
		return last
	}

	return 0
}

// samePosition reports whether two epochs denote the same tour position.
func samePosition(a, b, last int) bool {
	return a == b || (isBoundary(a, last) && isBoundary(b, last))
}
