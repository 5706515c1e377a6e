package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/zap"

	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/clock"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/config"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/instrumentation"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/kv"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/telemetry"
	"github.com/davidleathers/placeholder-numbers/internal/metrics"
	"github.com/davidleathers/placeholder-numbers/internal/service/generator"
	"github.com/davidleathers/placeholder-numbers/internal/service/preferences"
)

// app holds everything a command needs, built once per invocation
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	zap       *zap.Logger
	provider  *telemetry.Provider
	backend   kv.Store
	generator *generator.Service
	prefs     *preferences.Service
}

func newApp(ctx context.Context, configPath string, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	a := &app{
		cfg:    cfg,
		logger: telemetry.SetupLogger(cfg.LogLevel, cfg.LogFormat, stderr),
	}

	a.zap, err = telemetry.NewZapLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a.provider, err = telemetry.InitializeOpenTelemetry(ctx, cfg)
	if err != nil {
		_ = a.close(ctx)
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	registry, err := metrics.NewRegistry(metrics.DefaultMeterName)
	if err != nil {
		_ = a.close(ctx)
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	store, err := kv.New(ctx, &cfg.KV, a.zap)
	if err != nil {
		_ = a.close(ctx)
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.KV.Backend, err)
	}
	a.backend = instrumentation.NewTracedStore(store, cfg.KV.Backend, nil)

	a.generator = generator.NewService(ctx, a.backend,
		generator.NewRandom(), clock.System{}, registry, a.logger,
		generator.WithMaxAttempts(cfg.Generator.MaxAttempts))
	a.prefs = preferences.NewService(a.backend, a.logger)

	a.logger.DebugContext(ctx, "phonegen ready",
		"version", cfg.Version,
		"backend", cfg.KV.Backend,
		"session", a.generator.Session().ID())

	return a, nil
}

func (a *app) close(ctx context.Context) error {
	var errs []error

	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing store: %w", err))
		}
	}
	if a.provider != nil {
		if err := a.provider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.zap != nil {
		// stderr sync fails on some terminals; nothing useful to report
		_ = a.zap.Sync()
	}

	return errors.Join(errs...)
}
