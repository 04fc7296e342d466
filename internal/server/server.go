// Package server exposes the dashboard over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/superstore-dash/internal/common"
	"github.com/Veraticus/superstore-dash/internal/dataset"
	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/render"
	"github.com/Veraticus/superstore-dash/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// DataSource yields the record set for a path. *dataset.Cache implements it.
type DataSource interface {
	Load(ctx context.Context, path string) (*dataset.RecordSet, error)
}

// SnapshotStore persists dashboards. *storage.SQLiteStorage implements it.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, source string, sel model.FilterSelection, dash model.DashboardView) (int64, error)
	GetSnapshot(ctx context.Context, id int64) (*storage.Snapshot, error)
}

// Config wires a server.
type Config struct {
	Data     DataSource
	Renderer *render.Renderer
	// Snapshots is optional; snapshot routes answer 501 without it.
	Snapshots SnapshotStore
	Path      string
	// Defaults apply when a query leaves a dimension out. Nil sets mean
	// every value.
	Defaults model.FilterSelection
}

// Server serves the dashboard API.
type Server struct {
	app *fiber.App
	cfg Config
}

// New builds the server and its routes.
func New(cfg Config) *Server {
	if cfg.Renderer == nil {
		cfg.Renderer = render.NewRenderer(render.Options{})
	}

	s := &Server{cfg: cfg}
	s.app = fiber.New(fiber.Config{
		AppName:               "superstore-dash",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	s.app.Use(recover.New())
	s.app.Use(requestLogger)

	s.app.Get("/healthz", s.health)

	api := s.app.Group("/api")
	api.Get("/filters", s.filters)
	api.Get("/summary", s.summary)
	api.Get("/dashboard", s.dashboard)
	api.Get("/views", s.catalog)
	api.Get("/views/:name", s.view)
	api.Get("/charts/:name", s.chart)
	api.Post("/snapshots", s.saveSnapshot)
	api.Get("/snapshots/:id", s.getSnapshot)

	return s
}

// App exposes the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Serve listens on addr until ctx is canceled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()

	slog.Info("Dashboard API listening", "addr", addr, "source", s.cfg.Path)

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	slog.Debug("HTTP request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start))
	return err
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, common.ErrUnknownView), errors.Is(err, storage.ErrSnapshotNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, common.ErrSourceUnreadable):
		code = fiber.StatusServiceUnavailable
	}

	if code >= fiber.StatusInternalServerError {
		common.LogError(err, "Request failed", common.Fields{"path": c.Path()})
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
