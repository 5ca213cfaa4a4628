package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// config holds raw env values for the launchfeed service.
type config struct {
	ClientID     string `env:"PRODUCT_HUNT_TOKEN"`
	ClientSecret string `env:"PRODUCT_HUNT_SECRET"`

	HTTPAddr        string        `env:"LAUNCHFEED_HTTP_ADDR"        envDefault:":3000"`
	HTTPTimeout     time.Duration `env:"LAUNCHFEED_HTTP_TIMEOUT"     envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"LAUNCHFEED_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Timezone        string        `env:"LAUNCHFEED_TIMEZONE"`

	LogLevel  string `env:"LAUNCHFEED_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LAUNCHFEED_LOG_FORMAT" envDefault:"text"`

	OTelEndpoint string `env:"LAUNCHFEED_OTEL_ENDPOINT"`
}

// loadConfig parses config from environ. A nil environ reads the process
// environment.
func loadConfig(environ map[string]string) (config, error) {
	var cfg config
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// location resolves Timezone. Empty means the host zone.
func (c config) location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

// newLogger builds the process logger from LogLevel and LogFormat.
func (c config) newLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.LogFormat) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log format %q: want text or json", c.LogFormat)
	}
}
