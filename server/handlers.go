// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/boltzmann/boltzmann"
	"github.com/katalvlaran/boltzmann/stream"
)

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

// readBody reads at most limits.max_body_bytes of r's body.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Limits.MaxBodyBytes))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, tooLarge(fmt.Errorf("%w: body over %d bytes", ErrMalformedRequest, tooBig.Limit))
		}
		return nil, badRequest(fmt.Errorf("%w: %w", ErrMalformedRequest, err))
	}

	return data, nil
}

// handleAnneal streams the records of one run as CSV lines.
func (s *Server) handleAnneal(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(w, r)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	req, err := decodeRequest(data)
	if err != nil {
		writeError(w, statusOf(err), err.Error())
		return
	}
	p, err := prepare(req, s.cfg, s.guard)
	if err != nil {
		s.logger.Warn("request rejected", slog.String("error", err.Error()))
		writeError(w, statusOf(err), err.Error())
		return
	}

	runID := uuid.NewString()
	w.Header().Set(runIDHeader, runID)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	sw := stream.NewWriter(w)
	_, _ = s.execute(r.Context(), s.logger, runID, p, func(rec boltzmann.Record) error {
		return sw.Write(rec)
	})
}

// execute drives one run, handing every record to emit. It stops when ctx is
// done, when emit fails, or when the run ends. It returns the number of
// records emitted and the error that ended the run early, if any.
func (s *Server) execute(ctx context.Context, logger *slog.Logger, runID string, p *prepared, emit func(boltzmann.Record) error) (int, error) {
	var (
		start = time.Now()
		count int
		err   error
	)
	ctx, span := s.tracer.Start(ctx, "boltzmann.Anneal",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("cities", p.cities),
			attribute.Float64("start_temperature", p.startT),
		),
	)
	defer span.End()
	logger = logger.With(slog.String("run_id", runID))
	logger.Info("run started", slog.Int("cities", p.cities), slog.Float64("T", p.startT))

	// Each pull of the sequence runs an iteration, so ctx is checked before
	// asking for the next record, not after it was computed.
	if err = ctx.Err(); err == nil {
		for rec := range p.run.Records() {
			if err = emit(rec); err != nil {
				break
			}
			count++
			if err = ctx.Err(); err != nil {
				break
			}
		}
	}
	if err == nil {
		err = p.run.Err()
	}

	span.SetAttributes(attribute.Int("records", count))
	attrs := []any{slog.Int("records", count), slog.Duration("duration", time.Since(start))}
	if best, ok := p.run.Best(); ok {
		span.SetAttributes(
			attribute.Float64("best_distance", best.Distance),
			attribute.String("best_route", best.Route),
		)
		attrs = append(attrs, slog.String("best_route", best.Route), slog.Float64("best_distance", best.Distance))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "run ended early")
		attrs = append(attrs, slog.String("error", err.Error()))
		logger.Warn("run ended early", attrs...)
		return count, err
	}
	logger.Info("run finished", attrs...)

	return count, nil
}
