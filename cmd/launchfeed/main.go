// Command launchfeed serves the daily Product Hunt launch feed over HTTP.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	producthunt "github.com/anatolykoptev/go-producthunt"
	"github.com/anatolykoptev/go-producthunt/server"
	"github.com/anatolykoptev/go-producthunt/telemetry"
)

const serviceName = "launchfeed"

func main() {
	if err := run(); err != nil {
		slog.Error("launchfeed exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	logger, err := cfg.newLogger(os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("telemetry shutdown", slog.Any("error", err))
		}
	}()

	loc, err := cfg.location()
	if err != nil {
		return err
	}

	client, err := producthunt.NewClient(producthunt.ClientConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		HTTPTimeout:  cfg.HTTPTimeout,
		Location:     loc,
	})
	if err != nil {
		return err
	}

	slog.Info("launchfeed starting",
		slog.String("addr", cfg.HTTPAddr),
		slog.String("timezone", loc.String()),
		slog.Bool("tracing", cfg.OTelEndpoint != ""))

	srv := server.New(server.Config{
		Addr:            cfg.HTTPAddr,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, client)
	return srv.ListenAndServe(ctx)
}
