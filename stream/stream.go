// SPDX-License-Identifier: MIT

// Package stream encodes annealing records as comma-separated lines, one per
// record, and decodes them back on the consumer side.
//
// Line format (three fields):
//
//	temperature,route,distance
//	5000,A->D->C->B->E->A,73
//	12.5,hamiltonian tour not complete,hamiltonian tour not complete
//
// Every record is flushed as soon as it is written so a remote consumer sees
// progress while the run is still going.
package stream

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/katalvlaran/boltzmann/boltzmann"
)

// ErrMalformedLine is returned by Decode for a line that is not a record.
var ErrMalformedLine = errors.New("stream: malformed record line")

type flusher interface{ Flush() }

type errFlusher interface{ Flush() error }

// Writer writes records to an underlying io.Writer.
// Not safe for concurrent use.
type Writer struct {
	dst io.Writer
	csv *csv.Writer
	n   int
}

// NewWriter wraps w. If w is an http.Flusher (Flush()) or a buffered writer
// (Flush() error), it is flushed after every record.
func NewWriter(w io.Writer) *Writer {
	return &Writer{dst: w, csv: csv.NewWriter(w)}
}

// Write encodes one record as a line and flushes it.
func (w *Writer) Write(rec boltzmann.Record) error {
	if err := w.csv.Write(rec.Fields()); err != nil {
		return fmt.Errorf("stream: record %d: %w", rec.Iteration, err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("stream: record %d: %w", rec.Iteration, err)
	}
	switch f := w.dst.(type) {
	case flusher:
		f.Flush()
	case errFlusher:
		if err := f.Flush(); err != nil {
			return fmt.Errorf("stream: flush: %w", err)
		}
	}
	w.n++

	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int { return w.n }

// Copy writes every record of seq until it ends or a write fails. It returns
// the number of records written.
func Copy(w *Writer, seq iter.Seq[boltzmann.Record]) (int, error) {
	var (
		start = w.n
		err   error
	)
	for rec := range seq {
		if err = w.Write(rec); err != nil {
			break
		}
	}

	return w.n - start, err
}

// Line is a decoded record line. Complete is false when the line carried the
// tour-not-complete marker; Distance is then zero.
type Line struct {
	Temperature float64
	Route       string
	Distance    float64
	Complete    bool
}

// Decode reads record lines from r and calls fn for each one, stopping at
// the first error fn returns.
//
// Errors: ErrMalformedLine (wrapped with the line number), read errors, or
// the error returned by fn.
func Decode(r io.Reader, fn func(Line) error) error {
	var (
		cr     = csv.NewReader(r)
		fields []string
		line   Line
		lineNo int
		err    error
	)
	cr.FieldsPerRecord = 3
	for {
		fields, err = cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		lineNo++
		if err != nil {
			return fmt.Errorf("%w: line %d: %w", ErrMalformedLine, lineNo, err)
		}
		if line, err = parseLine(fields); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err = fn(line); err != nil {
			return err
		}
	}
}

func parseLine(fields []string) (Line, error) {
	var (
		l   Line
		err error
	)
	if l.Temperature, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return Line{}, fmt.Errorf("%w: temperature %q", ErrMalformedLine, fields[0])
	}
	if fields[2] == boltzmann.TourNotComplete {
		return l, nil
	}
	if l.Distance, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return Line{}, fmt.Errorf("%w: distance %q", ErrMalformedLine, fields[2])
	}
	l.Route, l.Complete = fields[1], true

	return l, nil
}
