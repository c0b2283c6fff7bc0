// SPDX-License-Identifier: MIT
package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boltzmann/boltzmann"
	"github.com/katalvlaran/boltzmann/config"
	"github.com/katalvlaran/boltzmann/resources"
	"github.com/katalvlaran/boltzmann/server"
	"github.com/katalvlaran/boltzmann/stream"
)

// fiveCityUpper is the reference table in the upper-triangular wire format.
var fiveCityUpper = [][]float64{
	{0, 10, 20, 5, 18},
	{0, 0, 15, 32, 10},
	{0, 0, 0, 25, 16},
	{0, 0, 0, 0, 35},
	{0, 0, 0, 0, 0},
}

var fiveCityFull = [][]float64{
	{0, 10, 20, 5, 18},
	{10, 0, 15, 32, 10},
	{20, 15, 0, 25, 16},
	{5, 32, 25, 0, 35},
	{18, 10, 16, 35, 0},
}

func ptr[T any](v T) *T { return &v }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, opts ...server.Option) *httptest.Server {
	t.Helper()
	s := server.New(config.Default(), quietLogger(), opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return ts
}

func post(t *testing.T, url string, req any) *http.Response {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestAnneal_StreamsCSV(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	resp := post(t, ts.URL+"/", server.Request{
		Distances: fiveCityUpper,
		T:         ptr(5000.0),
		HCharge:   ptr(0.5),
		BCharge:   ptr(-0.2),
		Seed:      42,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv"))
	_, err := uuid.Parse(resp.Header.Get("X-Run-ID"))
	assert.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var lines []stream.Line
	require.NoError(t, stream.Decode(resp.Body, func(l stream.Line) error {
		lines = append(lines, l)
		return nil
	}))
	require.Greater(t, len(lines), 1000)
	assert.Equal(t, 5000.0, lines[0].Temperature)
	for _, l := range lines {
		require.True(t, l.Complete)
		parts := strings.Split(l.Route, "->")
		require.Len(t, parts, 6)
		require.Equal(t, parts[0], parts[5])
		require.Greater(t, l.Temperature, 1.0)
	}
}

func TestAnneal_FullMatrix(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	resp := post(t, ts.URL+"/", server.Request{
		Distances:  fiveCityFull,
		T:          ptr(50.0),
		Triangular: ptr(false),
		Seed:       7,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// T=50 in 0.1 steps down to 1; rounding may add one step.
	assert.InDelta(t, 490, strings.Count(string(body), "\n"), 1)
}

func TestAnneal_Rejections(t *testing.T) {
	t.Parallel()

	tooMany := make([][]float64, config.DefaultMaxCities+1)
	for i := range tooMany {
		tooMany[i] = make([]float64, config.DefaultMaxCities+1)
	}
	negative := [][]float64{{0, -1}, {0, 0}}

	tests := []struct {
		name   string
		req    any
		status int
	}{
		{"empty", server.Request{}, http.StatusBadRequest},
		{"not json", "distances", http.StatusBadRequest},
		{"too many cities", server.Request{Distances: tooMany}, http.StatusRequestEntityTooLarge},
		{"full matrix sent as triangle", server.Request{Distances: fiveCityFull}, http.StatusBadRequest},
		{"ragged", server.Request{Distances: [][]float64{{0, 1}, {0}}}, http.StatusBadRequest},
		{"negative distance", server.Request{Distances: negative}, http.StatusBadRequest},
		{"single city", server.Request{Distances: [][]float64{{0}}}, http.StatusBadRequest},
		{"cold start", server.Request{Distances: fiveCityUpper, T: ptr(0.5)}, http.StatusBadRequest},
	}
	ts := newTestServer(t)
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			resp := post(t, ts.URL+"/", tc.req)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			var body server.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestAnneal_MemoryGuard(t *testing.T) {
	t.Parallel()

	guard := &resources.Guard{Fraction: 0.5, Available: func() (uint64, error) { return 1024, nil }}
	ts := newTestServer(t, server.WithGuard(guard))
	resp := post(t, ts.URL+"/", server.Request{Distances: fiveCityUpper})
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestRouting(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.test")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func TestWebSocket_Run(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(server.Request{Distances: fiveCityUpper, T: ptr(20.0), Seed: 3}))

	var frame server.Frame
	require.NoError(t, conn.ReadJSON(&frame))
	require.Equal(t, server.FrameRun, frame.Type)
	runID := frame.RunID
	_, err = uuid.Parse(runID)
	require.NoError(t, err)

	var records []boltzmann.Record
	for {
		frame = server.Frame{}
		require.NoError(t, conn.ReadJSON(&frame))
		if frame.Type != server.FrameRecord {
			break
		}
		require.NotNil(t, frame.Record)
		assert.Equal(t, runID, frame.RunID)
		records = append(records, *frame.Record)
	}
	require.Equal(t, server.FrameDone, frame.Type, "error frame: %s", frame.Error)
	assert.Equal(t, len(records), frame.Records)
	assert.InDelta(t, 190, len(records), 1)
	require.NotNil(t, frame.Best)
	assert.Len(t, frame.Best.Tour, 6)
	for _, rec := range records {
		assert.GreaterOrEqual(t, rec.Distance, frame.Best.Distance)
	}
}

func TestWebSocket_Rejected(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"distances": []}`)))
	var frame server.Frame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, server.FrameError, frame.Type)
	assert.Contains(t, frame.Error, "distances are required")
}

func TestServeAndShutdown(t *testing.T) {
	t.Parallel()

	s := server.New(nil, quietLogger())
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Serve(l) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + l.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after Shutdown")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	h := server.Chain(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
		server.RecoveryMiddleware(quietLogger()),
	)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestExecute_StopsOnCancelWithoutExtraIteration(t *testing.T) {
	t.Parallel()

	s := server.New(config.Default(), quietLogger(), server.WithGuard(nil))
	req := server.Request{Distances: fiveCityUpper, T: ptr(5000.0), Seed: 42}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	records, iterations, err := server.ExecuteRequest(ctx, s, req, func(boltzmann.Record) error {
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, records)
	assert.Equal(t, 1, iterations, "no iteration runs after the client is gone")

	done, stop := context.WithCancel(context.Background())
	stop()
	records, iterations, err = server.ExecuteRequest(done, s, req, func(boltzmann.Record) error {
		t.Fatal("nothing is emitted for a cancelled request")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, records)
	assert.Zero(t, iterations)
}
