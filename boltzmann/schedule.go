// SPDX-License-Identifier: MIT

package boltzmann

import "math"

// Schedule returns how much to lower the temperature after an iteration at
// temperature T: the next temperature is T − Schedule(T). A schedule must
// return positive steps for the run to terminate.
type Schedule func(T float64) float64

// DefaultSchedule drops T by log10(T) while T > 100 and by 0.1 afterwards:
// coarse steps early, fine steps near the stop temperature.
func DefaultSchedule(T float64) float64 {
	return LogSchedule(100, 0.1)(T)
}

// LogSchedule generalizes DefaultSchedule: log10(T) above threshold, a fixed
// fine step at or below it.
func LogSchedule(threshold, fine float64) Schedule {
	return func(T float64) float64 {
		if T > threshold {
			return math.Log10(T)
		}

		return fine
	}
}

// ConstantSchedule lowers T by the same step every iteration.
func ConstantSchedule(step float64) Schedule {
	return func(float64) float64 { return step }
}
