// SPDX-License-Identifier: MIT

// Command anneal solves a travelling-salesman instance with the Boltzmann
// machine annealer and prints one record per iteration.
//
// Usage:
//
//	anneal [-T 5000] [-h-charge 0.5] [-b-charge -0.2] [-seed 0]
//	       [-matrix distances.json] [-triangular=true] [-random N]
//	       [-config config.yaml] [-states]
//
// Without -matrix the built-in 5-city table is used; -random N instead
// draws N cities in a 100×100 square (reproducible with -seed). On a terminal, a single
// live progress line replaces the CSV records. The best tour seen is always
// printed to stderr at the end.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/katalvlaran/boltzmann/boltzmann"
	"github.com/katalvlaran/boltzmann/builder"
	"github.com/katalvlaran/boltzmann/config"
	"github.com/katalvlaran/boltzmann/matrix"
	"github.com/katalvlaran/boltzmann/resources"
	"github.com/katalvlaran/boltzmann/stream"
	"github.com/katalvlaran/boltzmann/tsp"
)

// example is the built-in instance, upper triangle only.
var example = [][]float64{
	{0, 10, 20, 5, 18},
	{0, 0, 15, 32, 10},
	{0, 0, 0, 25, 16},
	{0, 0, 0, 0, 35},
	{0, 0, 0, 0, 0},
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "anneal:", err)
		}
		os.Exit(1)
	}
}

type options struct {
	temperature float64
	hCharge     float64
	bCharge     float64
	seed        int64
	matrixPath  string
	triangular  bool
	random      int
	configPath  string
	showStates  bool
}

func parseFlags(args []string, stderr io.Writer) (options, map[string]bool, error) {
	var (
		def = config.Default().Anneal
		o   options
		fs  = flag.NewFlagSet("anneal", flag.ContinueOnError)
	)
	fs.SetOutput(stderr)
	fs.Float64Var(&o.temperature, "T", def.Temperature, "start temperature")
	fs.Float64Var(&o.hCharge, "h-charge", def.HCharge, "hamiltonian error charge")
	fs.Float64Var(&o.bCharge, "b-charge", def.BCharge, "bias charge")
	fs.Int64Var(&o.seed, "seed", def.Seed, "random seed (0 = random)")
	fs.StringVar(&o.matrixPath, "matrix", "", "JSON file with the distance matrix (default: built-in 5-city table)")
	fs.BoolVar(&o.triangular, "triangular", true, "the matrix holds the upper triangle only")
	fs.IntVar(&o.random, "random", 0, "anneal N random cities instead of a matrix")
	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.BoolVar(&o.showStates, "states", false, "print the final network state table")
	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	return o, set, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, set, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return err
	}
	logger := cfg.Log.NewLogger(stderr).With(slog.String("component", "anneal"))

	// Explicit flags win over the config file.
	a := cfg.Anneal
	if set["T"] {
		a.Temperature = o.temperature
	}
	if set["h-charge"] {
		a.HCharge = o.hCharge
	}
	if set["b-charge"] {
		a.BCharge = o.bCharge
	}
	if set["seed"] {
		a.Seed = o.seed
	}

	var dist matrix.Matrix
	switch {
	case o.random > 0 && o.matrixPath != "":
		return errors.New("-random and -matrix are mutually exclusive")
	case o.random > 0:
		dist, err = randomDistances(o.random, a.Seed)
	default:
		dist, err = loadDistances(o.matrixPath, o.triangular)
	}
	if err != nil {
		return err
	}
	n := dist.Rows()
	labels := tsp.Labels(a.Labels)
	if len(labels) < n {
		if labels, err = builder.Labels(n); err != nil {
			return err
		}
	}
	if err = resources.CheckNetworkFits(n, cfg.Limits.MemoryFraction); err != nil {
		if errors.Is(err, resources.ErrNetworkTooLarge) {
			return err
		}
		logger.Warn("memory probe failed", slog.String("error", err.Error()))
	}

	m, err := boltzmann.NewMachine(dist, a.HCharge, a.BCharge, boltzmann.WithLabels(labels))
	if err != nil {
		return err
	}
	r, err := boltzmann.Anneal(m, a.Temperature, boltzmann.DefaultSchedule,
		boltzmann.WithSeed(a.Seed),
		boltzmann.WithStopTemperature(a.StopTemperature))
	if err != nil {
		return err
	}
	logger.Debug("annealing", slog.Int("cities", n), slog.Float64("T", a.Temperature),
		slog.Float64("h_charge", a.HCharge), slog.Float64("b_charge", a.BCharge))

	if isTerminalWriter(stdout) {
		err = progress(stdout, r)
	} else {
		err = csvOut(stdout, r)
	}
	if err != nil {
		return err
	}
	if err = r.Err(); err != nil {
		return err
	}

	if best, ok := r.Best(); ok {
		fmt.Fprintf(stderr, "best: %s distance %g (iteration %d, T=%g)\n",
			best.Route, best.Distance, best.Iteration, best.Temperature)
	}
	if o.showStates {
		fmt.Fprint(stderr, m.States().Format(m.Labels()))
	}

	return nil
}

// loadDistances reads a JSON [][]float64 from path, or returns the built-in
// example when path is empty.
func loadDistances(path string, triangular bool) (matrix.Matrix, error) {
	var rows [][]float64
	if path == "" {
		rows, triangular = example, true
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err = json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	d, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, err
	}
	if !triangular {
		return d, nil
	}

	return matrix.MirrorUpper(d)
}

// randomDistances draws n Euclidean cities with rounded distances. A zero
// seed falls back to the builder's fixed default.
func randomDistances(n int, seed int64) (matrix.Matrix, error) {
	opts := []builder.BuilderOption{builder.WithRounding()}
	if seed != 0 {
		opts = append(opts, builder.WithSeed(seed))
	}
	d, _, err := builder.RandomEuclidean(n, opts...)

	return d, err
}

func csvOut(w io.Writer, r *boltzmann.Run) error {
	bw := bufio.NewWriter(w)
	_, err := stream.Copy(stream.NewWriter(bw), r.Records())

	return err
}

// progress rewrites a single status line per record.
func progress(w io.Writer, r *boltzmann.Run) error {
	var err error
	for rec := range r.Records() {
		if rec.Complete {
			_, err = fmt.Fprintf(w, "\r\033[KT=%-10.4g %s  %g", rec.Temperature, rec.Route, rec.Distance)
		} else {
			_, err = fmt.Fprintf(w, "\r\033[KT=%-10.4g %s", rec.Temperature, boltzmann.TourNotComplete)
		}
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)

	return err
}

// isTerminalWriter reports whether w is an *os.File attached to a terminal.
func isTerminalWriter(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
