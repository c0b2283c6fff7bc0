// SPDX-License-Identifier: MIT

// Package boltzmann solves the Travelling Salesman Problem with a
// Boltzmann machine (a stochastic Hopfield network) and simulated annealing.
//
// 🚀 What is it?
//
//	A tour over n cities is encoded as the activation pattern of an
//	n × (n+1) grid of binary nodes: node (city, epoch) is on when the tour
//	visits city at position epoch. The extra epoch n repeats the start city
//	and closes the loop. Fixed weights between nodes reward short hops in
//	adjacent epochs and penalize broken tours; annealing then looks for a
//	low-consensus (low-energy) activation pattern.
//
// ✨ Key pieces:
//   - NewNetwork / NewMachine — build the weight tensor from a distance matrix
//     and two charges (hamiltonianErrorCharge, biasCharge).
//   - Consensus — 0.5·sᵀWs over a StateMatrix snapshot.
//   - Machine.Propose — swap the active cities of two epoch columns,
//     keeping epoch 0 and epoch n in sync.
//   - Metropolis — size-normalized acceptance rule.
//   - Anneal — lazy, single-use iter.Seq[Record] driven by a Schedule.
//   - Validate / ExtractTour / TourDistance — read tours back out of states.
//
// ⚙️ Usage:
//
//	m, err := boltzmann.NewMachine(dist, 0.5, -0.2)
//	if err != nil { /* malformed distances */ }
//	run, err := boltzmann.Anneal(m, 5000, boltzmann.DefaultSchedule, boltzmann.WithSeed(7))
//	if err != nil { /* bad temperature or reused machine */ }
//	for rec := range run.Records() {
//		fmt.Println(strings.Join(rec.Fields(), ","))
//	}
//	if err := run.Err(); err != nil { /* invariant or schedule failure */ }
//	best, _ := run.Best()
//
// Performance:
//
//   - Construction: O(n⁴) time and memory (dense weight tensor of side n·(n+1)).
//   - Per iteration: O(n) for the energy delta of a proposal, O(n²) to snapshot states.
//
// The package never logs and never shares state between runs; a Machine
// anneals exactly once.
package boltzmann
