// SPDX-License-Identifier: MIT
package boltzmann_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/boltzmann/boltzmann"
	"github.com/katalvlaran/boltzmann/matrix"
)

// ExampleAnneal anneals the 5-city reference table given as an upper
// triangle and reports the best tour seen.
func ExampleAnneal() {
	upper, _ := matrix.NewDenseFromRows([][]float64{
		{0, 10, 20, 5, 18},
		{0, 0, 15, 32, 10},
		{0, 0, 0, 25, 16},
		{0, 0, 0, 0, 35},
		{0, 0, 0, 0, 0},
	})
	dist, _ := matrix.MirrorUpper(upper)

	m, err := boltzmann.NewMachine(dist, 0.5, -0.2)
	if err != nil {
		fmt.Println(err)
		return
	}
	run, err := boltzmann.Anneal(m, 5000, boltzmann.DefaultSchedule, boltzmann.WithSeed(42))
	if err != nil {
		fmt.Println(err)
		return
	}

	var first boltzmann.Record
	for rec := range run.Records() {
		if rec.Iteration == 0 {
			first = rec
		}
	}
	best, _ := run.Best()

	fmt.Println("stops:", len(strings.Split(best.Route, "->")))
	fmt.Println("improved:", best.Distance <= first.Distance)
	fmt.Println("err:", run.Err())
	// Output:
	// stops: 6
	// improved: true
	// err: <nil>
}
