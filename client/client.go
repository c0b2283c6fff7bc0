// SPDX-License-Identifier: MIT

// Package client consumes the annealer service: the CSV stream of POST / and
// the frame stream of /ws.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/katalvlaran/boltzmann/server"
	"github.com/katalvlaran/boltzmann/stream"
)

// ErrRunFailed is returned when the service reports an error frame.
var ErrRunFailed = errors.New("client: run failed")

// StatusError is returned when the service rejects a request.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("client: status %d: %s", e.Code, e.Message)
}

// Result summarizes a streamed run.
type Result struct {
	RunID   string
	Records int
	Best    *stream.Line // shortest complete tour, nil if none
}

// Client talks to one annealer service.
type Client struct {
	baseURL string
	http    *http.Client
	dialer  *websocket.Dialer
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger replaces slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for the service at baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		dialer:  websocket.DefaultDialer,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.logger = c.logger.With(slog.String("component", "client"))

	return c
}

// Anneal posts req and copies the CSV stream into w as it arrives.
//
// Errors: *StatusError for a rejected request; stream.ErrMalformedLine for
// a corrupt stream; transport and write errors.
func (c *Client) Anneal(ctx context.Context, req server.Request, w io.Writer) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("client: encode request: %w", err)
	}
	hr, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("client: %w", err)
	}
	hr.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(hr)
	if err != nil {
		return Result{}, fmt.Errorf("client: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, statusError(resp)
	}

	res := Result{RunID: resp.Header.Get("X-Run-ID")}
	c.logger.Info("run accepted", slog.String("run_id", res.RunID), slog.Int("cities", len(req.Distances)))
	err = stream.Decode(io.TeeReader(resp.Body, w), func(l stream.Line) error {
		res.Records++
		if l.Complete && (res.Best == nil || l.Distance < res.Best.Distance) {
			best := l
			res.Best = &best
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("client: stream: %w", err)
	}
	c.logger.Info("run streamed", slog.String("run_id", res.RunID), slog.Int("records", res.Records))

	return res, nil
}

// StreamWS runs req over the websocket endpoint, calling fn for every record
// frame, and returns the final done frame.
//
// Errors: ErrRunFailed (with the service message) for an error frame, the
// error returned by fn, ctx cancellation, and transport errors.
func (c *Client) StreamWS(ctx context.Context, req server.Request, fn func(server.Frame) error) (server.Frame, error) {
	url := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/ws"
	conn, _, err := c.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return server.Frame{}, fmt.Errorf("client: dial %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if err = conn.WriteJSON(req); err != nil {
		return server.Frame{}, fmt.Errorf("client: send request: %w", err)
	}

	var frame server.Frame
	for {
		frame = server.Frame{}
		if err = conn.ReadJSON(&frame); err != nil {
			if ctx.Err() != nil {
				return server.Frame{}, ctx.Err()
			}
			return server.Frame{}, fmt.Errorf("client: read frame: %w", err)
		}
		switch frame.Type {
		case server.FrameRun:
			c.logger.Info("run accepted", slog.String("run_id", frame.RunID))
		case server.FrameRecord:
			if fn != nil {
				if err = fn(frame); err != nil {
					return server.Frame{}, err
				}
			}
		case server.FrameDone:
			return frame, nil
		case server.FrameError:
			return frame, fmt.Errorf("%w: %s", ErrRunFailed, frame.Error)
		default:
			c.logger.Debug("unknown frame", slog.String("type", frame.Type))
		}
	}
}

func statusError(resp *http.Response) error {
	var body server.ErrorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(data))
	}

	return &StatusError{Code: resp.StatusCode, Message: body.Error}
}
