package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.ClientID)
	assert.Empty(t, cfg.OTelEndpoint)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	cfg, err := loadConfig(map[string]string{
		"PRODUCT_HUNT_TOKEN":       "key",
		"PRODUCT_HUNT_SECRET":      "secret",
		"LAUNCHFEED_HTTP_ADDR":     "127.0.0.1:8080",
		"LAUNCHFEED_HTTP_TIMEOUT":  "5s",
		"LAUNCHFEED_TIMEZONE":      "UTC",
		"LAUNCHFEED_LOG_LEVEL":     "debug",
		"LAUNCHFEED_LOG_FORMAT":    "json",
		"LAUNCHFEED_OTEL_ENDPOINT": "http://collector:4318",
	})
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.ClientID)
	assert.Equal(t, "secret", cfg.ClientSecret)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "http://collector:4318", cfg.OTelEndpoint)

	loc, err := cfg.location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadConfig_BadDuration(t *testing.T) {
	_, err := loadConfig(map[string]string{"LAUNCHFEED_HTTP_TIMEOUT": "soon"})
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	loc, err := config{}.location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	_, err = config{Timezone: "Mars/Olympus_Mons"}.location()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
		debug   bool
	}{
		{"text info", "info", "text", false, false},
		{"json debug", "debug", "json", false, true},
		{"upper case", "WARN", "JSON", false, false},
		{"bad level", "loud", "text", true, false},
		{"bad format", "info", "xml", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := config{LogLevel: tt.level, LogFormat: tt.format}.newLogger(&buf)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.debug, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestNewLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := config{LogLevel: "info", LogFormat: "json"}.newLogger(&buf)
	require.NoError(t, err)

	logger.Info("day aggregated", slog.String("date", "2024-03-15"))
	assert.Contains(t, buf.String(), `"msg":"day aggregated"`)
	assert.Contains(t, buf.String(), `"date":"2024-03-15"`)
}
