// SPDX-License-Identifier: MIT
// Package: boltzmann/builder
//
// Package builder generates travelling-salesman instances and city labels
// for demos, benchmarks and tests.
//
// Constructors:
//   - Ring(n):                cities on a cycle, distance = hop count.
//   - Euclidean(points):      straight-line distances between given points.
//   - RandomEuclidean(n):     n points drawn uniformly in [0, scale)², seeded.
//   - Labels(n):              n printable city names (Excel columns by default).
//   - UpperRows(m):           upper-triangle rows, the service wire format.
//
// Every constructor returns a symmetric *matrix.Dense with a zero diagonal
// that passes matrix.ValidateDistances.
//
// Determinism: stochastic builders draw only from the configured RNG.
// Without WithSeed or WithRand a fixed default seed is used, so two calls
// with identical options return identical instances.
package builder
