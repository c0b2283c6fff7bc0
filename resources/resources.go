// SPDX-License-Identifier: MIT

// Package resources guards network construction against host memory.
//
// A machine over n cities holds a dense (n·(n+1))² float64 weight tensor, so
// memory grows with n⁴. Callers that accept untrusted sizes (the HTTP
// service, the CLI) check the estimate before building.
package resources

import (
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/mem"
)

// ErrNetworkTooLarge is returned when a network would not fit the memory budget.
var ErrNetworkTooLarge = errors.New("resources: network exceeds memory budget")

// ErrInvalidFraction is returned for a budget fraction outside (0, 1].
var ErrInvalidFraction = errors.New("resources: fraction must be in (0, 1]")

// NetworkBytes estimates the weight tensor size for n cities:
// (n·(n+1))² · 8 bytes.
func NetworkBytes(n int) uint64 {
	if n <= 0 {
		return 0
	}
	size := uint64(n) * uint64(n+1)

	return size * size * 8
}

// AvailableFunc reports available memory in bytes.
type AvailableFunc func() (uint64, error)

// SystemAvailable reads available virtual memory from the host.
func SystemAvailable() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("resources: virtual memory: %w", err)
	}

	return vm.Available, nil
}

// Guard rejects networks larger than Fraction of available memory.
type Guard struct {
	Fraction  float64
	Available AvailableFunc
}

// NewGuard returns a Guard over the host's available memory.
func NewGuard(fraction float64) *Guard {
	return &Guard{Fraction: fraction, Available: SystemAvailable}
}

// Check returns ErrNetworkTooLarge when NetworkBytes(n) exceeds the budget.
// A failed memory probe is returned as is; callers may choose to proceed.
func (g *Guard) Check(n int) error {
	if !(g.Fraction > 0 && g.Fraction <= 1) {
		return fmt.Errorf("%w: %g", ErrInvalidFraction, g.Fraction)
	}
	avail, err := g.Available()
	if err != nil {
		return err
	}
	var (
		need   = NetworkBytes(n)
		budget = uint64(float64(avail) * g.Fraction)
	)
	if need > budget {
		return fmt.Errorf("%w: %d cities need %d bytes, budget %d of %d available",
			ErrNetworkTooLarge, n, need, budget, avail)
	}

	return nil
}

// CheckNetworkFits checks n against fraction of the host's available memory.
func CheckNetworkFits(n int, fraction float64) error {
	return NewGuard(fraction).Check(n)
}
