package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/kv"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/telemetry"
)

// TracedStore wraps a kv.Store with a span per operation
type TracedStore struct {
	store   kv.Store
	backend string
	tracer  trace.Tracer
}

// NewTracedStore instruments store. A nil tracer uses the global provider.
func NewTracedStore(store kv.Store, backend string, tracer trace.Tracer) *TracedStore {
	if tracer == nil {
		tracer = otel.Tracer("phonegen.kv")
	}
	return &TracedStore{store: store, backend: backend, tracer: tracer}
}

func (s *TracedStore) start(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "kv."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("kv.backend", s.backend),
			attribute.String("kv.key", key),
		))
}

// Get instruments kv.Store.Get. A missing key is recorded as an attribute, not an error.
func (s *TracedStore) Get(ctx context.Context, key string) (string, error) {
	ctx, span := s.start(ctx, "Get", key)
	defer span.End()

	value, err := s.store.Get(ctx, key)
	switch {
	case kv.IsNotFound(err):
		span.SetAttributes(attribute.Bool("kv.found", false))
	case err != nil:
		telemetry.RecordError(span, err)
	default:
		span.SetAttributes(
			attribute.Bool("kv.found", true),
			attribute.Int("kv.value_bytes", len(value)),
		)
	}
	return value, err
}

func (s *TracedStore) Set(ctx context.Context, key, value string) error {
	ctx, span := s.start(ctx, "Set", key)
	defer span.End()

	span.SetAttributes(attribute.Int("kv.value_bytes", len(value)))
	err := s.store.Set(ctx, key, value)
	telemetry.RecordError(span, err)
	return err
}

func (s *TracedStore) Remove(ctx context.Context, key string) error {
	ctx, span := s.start(ctx, "Remove", key)
	defer span.End()

	err := s.store.Remove(ctx, key)
	telemetry.RecordError(span, err)
	return err
}

func (s *TracedStore) Close() error {
	return s.store.Close()
}
