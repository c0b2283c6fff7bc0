// SPDX-License-Identifier: MIT

package tsp

import (
	"fmt"
	"strings"
)

// DefaultLabels names cities A, B, C, … Z, one rune per city.
const DefaultLabels = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Arrow is the separator used between consecutive cities of a rendered tour.
const Arrow = "->"

// Labels maps a city index to a printable name.
type Labels []string

// LabelsFromAlphabet splits an alphabet into one single-rune label per city.
func LabelsFromAlphabet(alphabet string) Labels {
	out := make(Labels, 0, len(alphabet))
	for _, r := range alphabet {
		out = append(out, string(r))
	}

	return out
}

// Check returns ErrTooFewLabels if l cannot name n cities.
func (l Labels) Check(n int) error {
	if len(l) < n {
		return fmt.Errorf("have %d labels for %d cities: %w", len(l), n, ErrTooFewLabels)
	}

	return nil
}

// FormatTour renders a tour with the given labels joined by sep,
// e.g. FormatTour([]int{0,3,2,1,4,0}, labels, Arrow) == "A->D->C->B->E->A".
//
// Errors: ErrTooFewLabels if any index has no label.
//
// Complexity: O(len(tour)).
func FormatTour(tour []int, labels Labels, sep string) (string, error) {
	var (
		sb strings.Builder
		i  int
		v  int
	)
	for i, v = range tour {
		if v < 0 || v >= len(labels) {
			return "", fmt.Errorf("FormatTour: city %d: %w", v, ErrTooFewLabels)
		}
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(labels[v])
	}

	return sb.String(), nil
}
