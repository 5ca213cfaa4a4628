// Package server exposes the launch feed over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	producthunt "github.com/anatolykoptev/go-producthunt"
	"github.com/anatolykoptev/go-producthunt/cache"
)

// Feed is the subset of the Product Hunt client the handlers need.
type Feed interface {
	FetchAllPosts(ctx context.Context, date string, pageSize int) (*producthunt.PostsResponse, error)
	FetchVotes(ctx context.Context, date string, first int) (producthunt.VoteCounts, error)
	CacheStats() []cache.EntryStats
}

// Config controls the listener.
type Config struct {
	// Addr is the listen address. Default: ":3000"
	Addr string
	// ShutdownTimeout bounds graceful shutdown. Default: 10s
	ShutdownTimeout time.Duration
}

// Server serves the launch feed endpoints.
type Server struct {
	cfg      Config
	feed     Feed
	app      *fiber.App
	validate *validator.Validate
}

// New builds a server with all routes and middleware registered.
func New(cfg Config, feed Feed) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":3000"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		cfg:      cfg,
		feed:     feed,
		validate: validator.New(),
	}

	app := fiber.New(fiber.Config{
		AppName:      "launchfeed",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(requestLogger())

	app.Get("/healthz", s.handleHealth)
	app.Get("/api/posts", s.handlePosts)
	app.Get("/api/votes", s.handleVotes)
	app.Get("/api/cache", s.handleCache)

	s.app = app
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	slog.Info("http server listening", slog.String("addr", s.cfg.Addr))
	err := s.app.Listen(s.cfg.Addr, fiber.ListenConfig{
		GracefulContext:       ctx,
		ShutdownTimeout:       s.cfg.ShutdownTimeout,
		DisableStartupMessage: true,
	})
	if err != nil {
		return err
	}
	slog.Info("http server stopped")
	return nil
}

// errorHandler renders every error as {"error": message}.
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	attrs := []any{
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Int("status", code),
		slog.String("request_id", requestid.FromContext(c)),
		slog.Any("error", err),
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed", attrs...)
	} else {
		slog.Debug("request rejected", attrs...)
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// requestLogger logs one line per request after the handler chain ran.
func requestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		slog.Info("http request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("date", c.Query("date")),
			slog.Int("status", status),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("request_id", requestid.FromContext(c)))
		return err
	}
}
