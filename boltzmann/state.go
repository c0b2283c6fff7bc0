// SPDX-License-Identifier: MIT

package boltzmann

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/boltzmann/tsp"
)

// Coord addresses one node of the grid.
type Coord struct {
	City  int `json:"city"`
	Epoch int `json:"epoch"`
}

// StateMatrix is a cities × epochs binary snapshot of node activations.
// It is always derived from a Network (Network.States) or from another
// snapshot (Apply); it never aliases live network state.
type StateMatrix struct {
	cities int
	epochs int
	bits   []bool // row-major: city*epochs + epoch
}

// NewStateMatrix returns an all-zero snapshot for n cities (n+1 epochs).
func NewStateMatrix(cities int) StateMatrix {
	return StateMatrix{
		cities: cities,
		epochs: cities + 1,
		bits:   make([]bool, cities*(cities+1)),
	}
}

// StateMatrixFromTour builds the snapshot that encodes a closed tour
// (len(tour) == n+1). The tour itself is not validated; use Validate on the
// result to check it.
func StateMatrixFromTour(tour []int) (StateMatrix, error) {
	n := len(tour) - 1
	if n < 1 {
		return StateMatrix{}, fmt.Errorf("StateMatrixFromTour: len=%d: %w", len(tour), ErrShapeMismatch)
	}
	s := NewStateMatrix(n)
	var e int
	for e = 0; e <= n; e++ {
		if tour[e] < 0 || tour[e] >= n {
			return StateMatrix{}, fmt.Errorf("StateMatrixFromTour: city %d: %w", tour[e], ErrCoordOutOfRange)
		}
		s.bits[s.index(tour[e], e)] = true
	}

	return s, nil
}

// Cities returns the number of cities (rows).
func (s StateMatrix) Cities() int { return s.cities }

// Epochs returns the number of epochs (columns), always Cities()+1.
func (s StateMatrix) Epochs() int { return s.epochs }

func (s StateMatrix) index(city, epoch int) int { return city*s.epochs + epoch }

func (s StateMatrix) inRange(c Coord) bool {
	return c.City >= 0 && c.City < s.cities && c.Epoch >= 0 && c.Epoch < s.epochs
}

// At reports whether node (city, epoch) is active. Out-of-range reads are false.
func (s StateMatrix) At(city, epoch int) bool {
	if !s.inRange(Coord{City: city, Epoch: epoch}) {
		return false
	}

	return s.bits[s.index(city, epoch)]
}

// Active returns the unique active city of an epoch column.
//
// Errors: ErrCoordOutOfRange, ErrNoActiveCity, ErrMultipleActive.
//
// Complexity: O(n).
func (s StateMatrix) Active(epoch int) (int, error) {
	if epoch < 0 || epoch >= s.epochs {
		return -1, fmt.Errorf("Active: epoch %d: %w", epoch, ErrCoordOutOfRange)
	}
	var (
		city  = -1
		c     int
		count int
	)
	for c = 0; c < s.cities; c++ {
		if s.bits[s.index(c, epoch)] {
			city = c
			count++
		}
	}
	switch {
	case count == 0:
		return -1, fmt.Errorf("Active: epoch %d: %w", epoch, ErrNoActiveCity)
	case count > 1:
		return -1, fmt.Errorf("Active: epoch %d has %d: %w", epoch, count, ErrMultipleActive)
	}

	return city, nil
}

// Clone returns an independent copy.
func (s StateMatrix) Clone() StateMatrix {
	out := StateMatrix{cities: s.cities, epochs: s.epochs, bits: make([]bool, len(s.bits))}
	copy(out.bits, s.bits)

	return out
}

// Equal reports whether two snapshots have the same shape and bits.
func (s StateMatrix) Equal(o StateMatrix) bool {
	if s.cities != o.cities || s.epochs != o.epochs || len(s.bits) != len(o.bits) {
		return false
	}
	for i := range s.bits {
		if s.bits[i] != o.bits[i] {
			return false
		}
	}

	return true
}

// Apply returns a copy of s with p applied: every Deactivate coordinate is
// cleared first, then every Activate coordinate is set. s is not modified.
//
// Errors: ErrCoordOutOfRange if any coordinate is outside the grid; in that
// case nothing is applied.
func (s StateMatrix) Apply(p Proposal) (StateMatrix, error) {
	if err := s.checkProposal(p); err != nil {
		return StateMatrix{}, err
	}
	out := s.Clone()
	for _, c := range p.Deactivate {
		out.bits[out.index(c.City, c.Epoch)] = false
	}
	for _, c := range p.Activate {
		out.bits[out.index(c.City, c.Epoch)] = true
	}

	return out, nil
}

func (s StateMatrix) checkProposal(p Proposal) error {
	for _, c := range p.Deactivate {
		if !s.inRange(c) {
			return fmt.Errorf("deactivate %+v: %w", c, ErrCoordOutOfRange)
		}
	}
	for _, c := range p.Activate {
		if !s.inRange(c) {
			return fmt.Errorf("activate %+v: %w", c, ErrCoordOutOfRange)
		}
	}

	return nil
}

// Vector returns the snapshot as a 0/1 gonum vector in network index order.
func (s StateMatrix) Vector() *mat.VecDense {
	data := make([]float64, len(s.bits))
	for i, on := range s.bits {
		if on {
			data[i] = 1
		}
	}

	return mat.NewVecDense(len(data), data)
}

// activeIndices lists the network indices of active nodes in ascending order.
func (s StateMatrix) activeIndices() []int {
	out := make([]int, 0, s.epochs)
	for i, on := range s.bits {
		if on {
			out = append(out, i)
		}
	}

	return out
}

// Format renders the grid as a table, one labelled row per city and
// 1-based epoch headers:
//
//	-- network state --
//	   1 2 3
//	A [1 0 1]
//	B [0 1 0]
func (s StateMatrix) Format(labels tsp.Labels) string {
	var (
		sb   strings.Builder
		c, e int
	)
	sb.WriteString("-- network state --\n  ")
	for e = 0; e < s.epochs; e++ {
		fmt.Fprintf(&sb, " %d", e+1)
	}
	sb.WriteString("\n")
	for c = 0; c < s.cities; c++ {
		if c < len(labels) {
			sb.WriteString(labels[c])
		} else {
			fmt.Fprintf(&sb, "%d", c)
		}
		sb.WriteString(" [")
		for e = 0; e < s.epochs; e++ {
			if e > 0 {
				sb.WriteString(" ")
			}
			if s.bits[s.index(c, e)] {
				sb.WriteString("1")
			} else {
				sb.WriteString("0")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// String renders the grid with the default A..Z labels.
func (s StateMatrix) String() string {
	return s.Format(tsp.LabelsFromAlphabet(tsp.DefaultLabels))
}
