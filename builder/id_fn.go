// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/boltzmann/tsp"
)

// IDFn generates a city label from its zero-based index.
// It must be pure: the same idx always yields the same string.
type IDFn func(idx int) string

// SymbolIDFn returns the uppercase Latin letter for idx in [0..25], e.g. 0→"A", 25→"Z".
// Panics if idx < 0 or idx > 25.
func SymbolIDFn(idx int) string {
	if idx < 0 || idx > 25 {
		panic(fmt.Sprintf("SymbolIDFn: idx must be in [0,25], got %d", idx))
	}

	return string('A' + rune(idx))
}

// ExcelColumnIDFn returns the spreadsheet column name for idx,
// e.g. 0→"A", 25→"Z", 26→"AA", 701→"ZZ", 702→"AAA".
// The first 26 names match tsp.DefaultLabels.
// Complexity: O(log₂₆ idx).
// Panics if idx < 0.
func ExcelColumnIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnIDFn: idx must be ≥ 0, got %d", idx))
	}
	var (
		runes []rune
		i, j  int
	)
	for i = idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, 'A'+rune(i%26))
	}
	for i, j = 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// SymbolNumberIDFn returns prefix + decimal index, e.g. "c0", "c1", ...
// Panics if idx < 0.
func SymbolNumberIDFn(prefix string) IDFn {
	return func(idx int) string {
		if idx < 0 {
			panic(fmt.Sprintf("SymbolNumberIDFn: idx must be ≥ 0, got %d", idx))
		}
		return prefix + strconv.Itoa(idx)
	}
}

// Labels returns n city labels generated by the configured ID scheme
// (ExcelColumnIDFn unless WithIDScheme is given).
//
// Errors: ErrNegativeCount if n < 0.
func Labels(n int, opts ...BuilderOption) (tsp.Labels, error) {
	if n < 0 {
		return nil, fmt.Errorf("Labels(%d): %w", n, ErrNegativeCount)
	}
	cfg := newBuilderConfig(opts...)
	out := make(tsp.Labels, n)
	for i := range out {
		out[i] = cfg.idFn(i)
	}

	return out, nil
}
