// SPDX-License-Identifier: MIT

package boltzmann

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Consensus computes the energy of a state snapshot over a network's weights:
//
//	C(s) = 0.5 · Σ_i s_i · Σ_j w_ij · s_j = 0.5 · sᵀWs
//
// The 0.5 factor avoids counting each symmetric pair twice. Lower values mean
// fewer constraint violations and shorter encouraged hops. The result depends
// only on s and the static weights.
//
// Errors: ErrShapeMismatch if s was not taken from a network of this size.
//
// Complexity: O(N²) with N = n·(n+1).
func Consensus(s StateMatrix, nw *Network) (float64, error) {
	if s.cities != nw.cities || s.epochs != nw.epochs {
		return 0, fmt.Errorf("Consensus: %dx%d vs %dx%d: %w",
			s.cities, s.epochs, nw.cities, nw.epochs, ErrShapeMismatch)
	}
	v := s.Vector()

	return 0.5 * mat.Inner(v, nw.weights, v), nil
}

// consensusDelta returns Consensus(next) − Consensus(cur) without the full
// quadratic form. With δ = next − cur, which is non-zero only on the touched
// nodes K:
//
//	nextᵀW next − curᵀW cur = δᵀW cur + curᵀW δ + δᵀW δ
//
// Both cur and next must come from nw; touched must list every index where
// they differ (extra indices with δ=0 are harmless).
//
// Complexity: O(|K|·(n+1) + |K|²).
func consensusDelta(nw *Network, cur, next StateMatrix, touched []int) float64 {
	var (
		active = cur.activeIndices()
		delta  = make([]float64, len(touched))
		sum    float64
		a, b   int
		k, l   int
		i      int
	)
	for a, k = range touched {
		delta[a] = boolF(next.bits[k]) - boolF(cur.bits[k])
	}

	for a, k = range touched {
		if delta[a] == 0 {
			continue
		}
		// Row and column sums of W restricted to currently active nodes.
		for _, i = range active {
			sum += delta[a] * (nw.weights.At(k, i) + nw.weights.At(i, k))
		}
		for b, l = range touched {
			if delta[b] == 0 {
				continue
			}
			sum += delta[a] * delta[b] * nw.weights.At(k, l)
		}
	}

	return 0.5 * sum
}

// touchedIndices returns the distinct flat indices referenced by p.
func touchedIndices(nw *Network, p Proposal) []int {
	var (
		seen = make(map[int]struct{}, len(p.Activate)+len(p.Deactivate))
		out  = make([]int, 0, len(p.Activate)+len(p.Deactivate))
	)
	add := func(c Coord) {
		k := nw.index(c.City, c.Epoch)
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	for _, c := range p.Deactivate {
		add(c)
	}
	for _, c := range p.Activate {
		add(c)
	}

	return out
}

func boolF(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
