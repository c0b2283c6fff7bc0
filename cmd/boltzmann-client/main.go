// SPDX-License-Identifier: MIT

// Command boltzmann-client posts the 5-city example (or a random instance)
// to a running boltzmannd and saves the streamed records to a CSV file.
//
// Usage:
//
//	boltzmann-client [-url http://localhost:5000] [-out output.csv] [-ws]
//	                 [-random N -seed S]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/katalvlaran/boltzmann/builder"
	"github.com/katalvlaran/boltzmann/client"
	"github.com/katalvlaran/boltzmann/server"
)

// randomRequest draws n cities and sends them in upper-triangle form.
func randomRequest(n int, seed int64) (server.Request, error) {
	d, _, err := builder.RandomEuclidean(n, builder.WithSeed(seed), builder.WithRounding())
	if err != nil {
		return server.Request{}, err
	}
	rows, err := builder.UpperRows(d)
	if err != nil {
		return server.Request{}, err
	}
	req := example()
	req.Distances = rows
	req.Seed = seed

	return req, nil
}

func example() server.Request {
	var (
		t = 5000.0
		h = 0.5
		b = -0.2
	)

	return server.Request{
		Distances: [][]float64{
			{0, 10, 20, 5, 18},
			{0, 0, 15, 32, 10},
			{0, 0, 0, 25, 16},
			{0, 0, 0, 0, 35},
			{0, 0, 0, 0, 0},
		},
		T:       &t,
		HCharge: &h,
		BCharge: &b,
	}
}

func main() {
	var (
		url    = flag.String("url", "http://localhost:5000", "service base URL")
		out    = flag.String("out", "output.csv", "CSV output file")
		ws     = flag.Bool("ws", false, "use the websocket endpoint and log records instead of writing CSV")
		random = flag.Int("random", 0, "send N random cities instead of the 5-city example")
		seed   = flag.Int64("seed", builder.DefaultSeed, "seed for -random and the run")
	)
	flag.Parse()

	req := example()
	if *random > 0 {
		var err error
		if req, err = randomRequest(*random, *seed); err != nil {
			fmt.Fprintln(os.Stderr, "boltzmann-client:", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	c := client.New(*url, client.WithLogger(logger))

	var err error
	if *ws {
		err = streamWS(ctx, c, req, logger)
	} else {
		err = saveCSV(ctx, c, req, *out, logger)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "boltzmann-client:", err)
		os.Exit(1)
	}
}

func saveCSV(ctx context.Context, c *client.Client, req server.Request, path string, logger *slog.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	res, err := c.Anneal(ctx, req, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	attrs := []any{slog.String("file", path), slog.Int("records", res.Records)}
	if res.Best != nil {
		attrs = append(attrs, slog.String("best_route", res.Best.Route), slog.Float64("best_distance", res.Best.Distance))
	}
	logger.Info("saved", attrs...)

	return nil
}

func streamWS(ctx context.Context, c *client.Client, req server.Request, logger *slog.Logger) error {
	done, err := c.StreamWS(ctx, req, func(f server.Frame) error {
		logger.Debug("record",
			slog.Float64("T", f.Record.Temperature),
			slog.String("route", f.Record.Route))
		return nil
	})
	if err != nil {
		return err
	}
	if done.Best != nil {
		logger.Info("done",
			slog.String("run_id", done.RunID),
			slog.Int("records", done.Records),
			slog.String("best_route", done.Best.Route),
			slog.Float64("best_distance", done.Best.Distance))
	}

	return nil
}
