// Package boltzmann is a travelling-salesman annealer built on a Boltzmann
// machine: an n×(n+1) grid of binary nodes (city × tour position) with fixed
// symmetric weights, cooled from a start temperature until the active nodes
// trace a short Hamiltonian tour.
//
// 🚀 What is in the box?
//
//	• matrix/    — dense distance matrices, validators, upper-triangle mirroring
//	• tsp/       — tour validation, cost and label rendering
//	• boltzmann/ — network weights, consensus energy, swap proposals,
//	               Metropolis acceptance and the lazy annealing loop
//	• stream/    — one CSV line per record, flushed as it is produced
//	• resources/ — memory guard for the n⁴-sized weight tensor
//	• config/    — YAML configuration and slog setup
//	• server/    — HTTP (CSV stream) and websocket service
//	• client/    — consumer for both endpoints
//	• cmd/       — anneal (local CLI), boltzmannd (service), boltzmann-client
//
// ✨ How a run works
//
//  1. Every epoch column of the grid holds exactly one active city and the
//     last column repeats the first, so the state always encodes a tour.
//  2. Each iteration swaps the cities of two tour positions, scores the
//     change with the consensus energy ½·sᵀWs and accepts it by the
//     Metropolis rule.
//  3. After every decision a Record (temperature, route, distance) is
//     produced, then the schedule lowers T; the run ends once T ≤ 1.
//
// Quick example (5 cities):
//
//	m, _ := boltzmann.NewMachine(dist, 0.5, -0.2)
//	run, _ := boltzmann.Anneal(m, 5000, boltzmann.DefaultSchedule)
//	for rec := range run.Records() {
//		fmt.Println(strings.Join(rec.Fields(), ","))
//	}
//	best, _ := run.Best()
//	// best.Route e.g. "A->D->C->B->E->A", best.Distance 73
//
// Service:
//
//	curl -N localhost:5000/ -d '{"distances":[[0,10,20,5,18],[0,0,15,32,10],
//	    [0,0,0,25,16],[0,0,0,0,35],[0,0,0,0,0]],"T":5000,"h_charge":0.5,"b_charge":-0.2}'
package boltzmann
