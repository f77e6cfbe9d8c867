// Package app wires the engine together: logger construction, action module
// registration, HCL workflow loading, registration, and execution.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/engine"
	"github.com/vk/flowgrid/internal/handlers"
	"github.com/vk/flowgrid/internal/hclgrid"
	"github.com/vk/flowgrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	handlers   *handlers.Handlers
	registry   *registry.Registry
	engine     *engine.Engine
	httpServer *http.Server
}

// NewApp constructs a fully initialized App: an isolated logger and
// registry, all action modules registered, and every workflow definition
// found under GridPath validated and stored. Registration failures (cycles,
// duplicate IDs, unknown actions) are startup errors.
func NewApp(outW io.Writer, cfg *Config, modules ...handlers.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	h := handlers.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(h)
	}
	logger.Debug("All action modules registered.", "count", len(modules))

	loader := hclgrid.NewLoader(h)
	defs, err := loader.Load(ctx, cfg.GridPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow definitions: %w", err)
	}

	reg := registry.New()
	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return nil, fmt.Errorf("failed to register workflow: %w", err)
		}
	}
	logger.Debug("Workflows registered.", "count", reg.Len())

	var opts []engine.Option
	if cfg.Parallelism > 0 {
		opts = append(opts, engine.WithParallelism(cfg.Parallelism))
	}
	if cfg.RetryBaseDelay > 0 {
		opts = append(opts, engine.WithRetryBaseDelay(cfg.RetryBaseDelay))
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		handlers: h,
		registry: reg,
		engine:   engine.New(reg, opts...),
	}, nil
}

// Registry returns the application's workflow registry. This is primarily
// for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Engine returns the application's execution engine. This is primarily for
// testing.
func (a *App) Engine() *engine.Engine {
	return a.engine
}
