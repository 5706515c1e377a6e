package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/davidleathers/placeholder-numbers/internal/domain/errors"
	"github.com/davidleathers/placeholder-numbers/internal/domain/values"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/clock"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/kv"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/telemetry"
	"github.com/davidleathers/placeholder-numbers/internal/service/dailystore"
)

// Service generates batches of unique placeholder numbers for one session. It
// owns the daily store and persists it after every batch.
type Service struct {
	backend     kv.Store
	store       *dailystore.Store
	rng         Random
	clock       clock.Clock
	metrics     MetricsCollector
	logger      *slog.Logger
	tracer      trace.Tracer
	validator   *Validator
	session     Session
	maxAttempts int
}

// Option configures a Service
type Option func(*Service)

// WithMaxAttempts overrides the number of random draws before the fallback
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithTracer overrides the tracer taken from the global provider
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// NewService loads today's store from backend and starts a session. metrics may
// be nil.
func NewService(
	ctx context.Context,
	backend kv.Store,
	rng Random,
	clk clock.Clock,
	metrics MetricsCollector,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		backend:     backend,
		rng:         rng,
		clock:       clk,
		metrics:     metrics,
		logger:      logger,
		tracer:      otel.Tracer("phonegen.generator"),
		validator:   NewValidator(),
		session:     NewSession(clk),
		maxAttempts: MaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.store = dailystore.Load(ctx, backend, clk, logger)
	return s
}

// Session returns the session this service generates for
func (s *Service) Session() Session {
	return s.session
}

// Generate validates cfg and produces cfg.Quantity unique numbers. A failure to
// persist the store is logged and reported in BatchResult.Saved; it does not fail
// the batch.
func (s *Service) Generate(ctx context.Context, cfg GenerationConfig) (*BatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "generator.Generate",
		trace.WithAttributes(
			attribute.Int("generator.quantity", cfg.Quantity),
			attribute.String("generator.format", cfg.Format.String()),
			attribute.String("generator.area_code", cfg.AreaCode),
		))
	defer span.End()

	if err := s.validator.Validate(cfg); err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.logger.DebugContext(ctx, "generation rejected", "error", err)
		return nil, err
	}

	if today := clock.Today(s.clock); s.store.RollOver(today) {
		s.logger.InfoContext(ctx, "new day, cleared generated numbers", "date", today)
	}

	start := time.Now()
	result := &BatchResult{
		Numbers:   make([]values.PhoneCandidate, 0, cfg.Quantity),
		SessionID: s.session.ID(),
	}

	collisions := 0
	for i := 0; i < cfg.Quantity; i++ {
		candidate, outcome, err := generateUnique(cfg, s.store, s.rng, s.clock, s.maxAttempts)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, errors.NewInternalError(fmt.Sprintf("failed to generate number %d of %d", i+1, cfg.Quantity)).
				WithCause(err)
		}

		collisions += outcome.collisions
		if outcome.fallback {
			result.Fallbacks++
			s.logger.WarnContext(ctx, "random attempts exhausted, used timestamp fallback",
				"number", candidate.Formatted(), "attempts", s.maxAttempts)
			if s.metrics != nil {
				s.metrics.RecordFallback(ctx)
			}
		}
		result.Numbers = append(result.Numbers, candidate)
	}
	result.Duration = time.Since(start)

	if err := s.store.Save(ctx, s.backend); err != nil {
		s.logger.WarnContext(ctx, "error saving generated numbers", "error", err)
		span.AddEvent("persistence failure", trace.WithAttributes(attribute.String("error", err.Error())))
		if s.metrics != nil {
			s.metrics.RecordPersistenceFailure(ctx, "save")
		}
	} else {
		result.Saved = true
	}

	if s.metrics != nil {
		s.metrics.RecordBatch(ctx, cfg.Quantity, cfg.Format.String(), result.Duration)
		if collisions > 0 {
			s.metrics.RecordCollisions(ctx, collisions)
		}
	}

	span.SetAttributes(
		attribute.Int("generator.fallbacks", result.Fallbacks),
		attribute.Int("generator.collisions", collisions),
	)

	s.logger.InfoContext(ctx, "generated phone numbers",
		"count", len(result.Numbers),
		"format", cfg.Format.String(),
		"duration", result.Duration,
		"fallbacks", result.Fallbacks,
		"unique_today", s.store.Len())

	return result, nil
}

// Stats reports the daily store counters
func (s *Service) Stats() Stats {
	return Stats{
		TotalGenerated: s.store.TotalCount(),
		UniqueToday:    s.store.Len(),
		Date:           s.store.Date(),
	}
}

// Reset clears today's numbers in memory and in the backend. A backend failure
// is returned, but the in-memory store is already cleared.
func (s *Service) Reset(ctx context.Context) error {
	s.store.Reset(clock.Today(s.clock))

	if err := dailystore.Purge(ctx, s.backend); err != nil {
		s.logger.WarnContext(ctx, "error clearing generated numbers", "error", err)
		if s.metrics != nil {
			s.metrics.RecordPersistenceFailure(ctx, "remove")
		}
		return err
	}

	s.logger.InfoContext(ctx, "generated numbers reset")
	return nil
}
