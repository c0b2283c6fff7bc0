// SPDX-License-Identifier: MIT
package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/katalvlaran/boltzmann/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:5000", cfg.Server.Addr)
	assert.Equal(t, 5000.0, cfg.Anneal.Temperature)
	assert.Equal(t, 0.5, cfg.Anneal.HCharge)
	assert.Equal(t, -0.2, cfg.Anneal.BCharge)
	assert.Equal(t, 1.0, cfg.Anneal.StopTemperature)
	assert.Equal(t, config.DefaultMaxCities, cfg.Limits.MaxCities)
	require.Len(t, cfg.Anneal.Labels, config.DefaultMaxCities)
	assert.Equal(t, "A", cfg.Anneal.Labels[0])
	assert.Equal(t, "AA", cfg.Anneal.Labels[26])
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  addr: ":8080"
  shutdown_timeout: 3s
anneal:
  temperature: 800
  seed: 9
log:
  format: json
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 800.0, cfg.Anneal.Temperature)
	assert.Equal(t, int64(9), cfg.Anneal.Seed)
	assert.Equal(t, 0.5, cfg.Anneal.HCharge, "unset fields keep defaults")
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)

	tests := []struct {
		name string
		body string
	}{
		{"cold start", "anneal:\n  temperature: 1\n"},
		{"tiny limit", "limits:\n  max_cities: 1\n"},
		{"too few labels", "anneal:\n  labels: [a, b]\n"},
		{"bad fraction", "limits:\n  memory_fraction: 2\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"bad format", "log:\n  format: xml\n"},
		{"empty addr", "server:\n  addr: \"\"\n"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.Load(writeConfig(t, tc.body))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLogConfig_NewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := config.LogConfig{Level: "debug", Format: "json"}.NewLogger(&buf)
	logger.Debug("hello", "component", "test")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "test", entry["component"])

	buf.Reset()
	config.LogConfig{Level: "warn", Format: "text"}.NewLogger(&buf).Info("hidden")
	assert.Empty(t, buf.String())
}
