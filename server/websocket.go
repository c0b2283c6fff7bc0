// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/katalvlaran/boltzmann/boltzmann"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed for the client to send its request frame.
	requestWait = 30 * time.Second
)

func (s *Server) upgrader() *websocket.Upgrader {
	allowed := make(map[string]bool, len(s.cfg.Server.CORSOrigins))
	for _, o := range s.cfg.Server.CORSOrigins {
		allowed[o] = true
	}

	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed["*"] || allowed[origin]
		},
	}
}

// handleWS runs one anneal per connection: the first text frame is the
// Request, then a run frame, one record frame per record and a done frame.
// Rejections and early ends are reported with an error frame.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		s.wsLogger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()
	logger := s.wsLogger

	conn.SetReadLimit(s.cfg.Limits.MaxBodyBytes)
	_ = conn.SetReadDeadline(time.Now().Add(requestWait))
	_, data, err := conn.ReadMessage()
	if err != nil {
		logger.Warn("no request frame", slog.String("error", err.Error()))
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	send := func(f Frame) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(f)
	}

	req, err := decodeRequest(data)
	if err != nil {
		_ = send(Frame{Type: FrameError, Error: err.Error()})
		return
	}
	p, err := prepare(req, s.cfg, s.guard)
	if err != nil {
		logger.Warn("request rejected", slog.String("error", err.Error()))
		_ = send(Frame{Type: FrameError, Error: err.Error()})
		return
	}

	runID := uuid.NewString()
	if err = send(Frame{Type: FrameRun, RunID: runID}); err != nil {
		return
	}

	// A read error means the peer went away; stop the run.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	count, err := s.execute(ctx, logger, runID, p, func(rec boltzmann.Record) error {
		return send(Frame{Type: FrameRecord, RunID: runID, Record: &rec})
	})
	if err != nil {
		_ = send(Frame{Type: FrameError, RunID: runID, Records: count, Error: err.Error()})
		return
	}

	done := Frame{Type: FrameDone, RunID: runID, Records: count}
	if best, ok := p.run.Best(); ok {
		done.Best = &best
	}
	if err = send(done); err != nil {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
		time.Now().Add(writeWait))
}
