package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DefaultMeterName is the instrumentation scope used by the CLI
const DefaultMeterName = "phonegen"

// Registry holds the generator instruments. It satisfies the generator's
// MetricsCollector.
type Registry struct {
	meter metric.Meter

	NumbersGenerated    metric.Int64Counter
	Collisions          metric.Int64Counter
	Fallbacks           metric.Int64Counter
	BatchDuration       metric.Float64Histogram
	PersistenceFailures metric.Int64Counter
}

// NewRegistry creates the instruments on the global meter provider
func NewRegistry(meterName string) (*Registry, error) {
	return NewRegistryWithProvider(otel.GetMeterProvider(), meterName)
}

// NewRegistryWithProvider creates the instruments on mp
func NewRegistryWithProvider(mp metric.MeterProvider, meterName string) (*Registry, error) {
	r := &Registry{meter: mp.Meter(meterName)}

	if err := r.initGeneratorMetrics(); err != nil {
		return nil, err
	}
	if err := r.initPersistenceMetrics(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Registry) initGeneratorMetrics() error {
	var err error

	r.NumbersGenerated, err = r.meter.Int64Counter(
		"phonegen.numbers.generated",
		metric.WithDescription("Total number of phone numbers generated"),
	)
	if err != nil {
		return err
	}

	r.Collisions, err = r.meter.Int64Counter(
		"phonegen.numbers.collisions",
		metric.WithDescription("Candidates rejected because they were already generated today"),
	)
	if err != nil {
		return err
	}

	r.Fallbacks, err = r.meter.Int64Counter(
		"phonegen.numbers.fallbacks",
		metric.WithDescription("Numbers produced with the timestamp fallback"),
	)
	if err != nil {
		return err
	}

	r.BatchDuration, err = r.meter.Float64Histogram(
		"phonegen.batch.duration",
		metric.WithDescription("Duration of a generation batch in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500),
	)
	return err
}

func (r *Registry) initPersistenceMetrics() error {
	var err error

	r.PersistenceFailures, err = r.meter.Int64Counter(
		"phonegen.persistence.failures",
		metric.WithDescription("Failed reads or writes of the generated-number store"),
	)
	return err
}

// RecordBatch records a completed batch
func (r *Registry) RecordBatch(ctx context.Context, quantity int, format string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("format", format))

	r.NumbersGenerated.Add(ctx, int64(quantity), attrs)
	r.BatchDuration.Record(ctx, float64(duration.Microseconds())/1000.0, attrs)
}

// RecordCollisions records candidates that were redrawn
func (r *Registry) RecordCollisions(ctx context.Context, count int) {
	r.Collisions.Add(ctx, int64(count))
}

// RecordFallback records one timestamp fallback
func (r *Registry) RecordFallback(ctx context.Context) {
	r.Fallbacks.Add(ctx, 1)
}

// RecordPersistenceFailure records a store failure for operation (save, load, remove)
func (r *Registry) RecordPersistenceFailure(ctx context.Context, operation string) {
	r.PersistenceFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}
