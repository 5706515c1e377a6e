package generator

import (
	"context"
	"time"

	"github.com/davidleathers/placeholder-numbers/internal/domain/values"
)

// Random is the source of uniform draws used for synthesis
type Random interface {
	// Intn returns a uniform integer in [0, n)
	Intn(n int) int
}

// MetricsCollector defines the interface for collecting generation metrics
type MetricsCollector interface {
	// RecordBatch records a completed batch
	RecordBatch(ctx context.Context, quantity int, format string, duration time.Duration)
	// RecordCollisions records candidates rejected because they were already produced today
	RecordCollisions(ctx context.Context, count int)
	// RecordFallback records a timestamp-disambiguated number
	RecordFallback(ctx context.Context)
	// RecordPersistenceFailure records a failed load or save
	RecordPersistenceFailure(ctx context.Context, operation string)
}

// BatchResult is the outcome of one Generate call
type BatchResult struct {
	Numbers   []values.PhoneCandidate `json:"numbers"`
	SessionID string                  `json:"session_id"`
	Duration  time.Duration           `json:"duration"`
	Fallbacks int                     `json:"fallbacks"`
	Saved     bool                    `json:"saved"`
}

// Formatted returns the rendered numbers in generation order
func (r *BatchResult) Formatted() []string {
	out := make([]string, len(r.Numbers))
	for i, n := range r.Numbers {
		out[i] = n.Formatted()
	}
	return out
}

// Stats summarizes the daily store
type Stats struct {
	TotalGenerated int    `json:"total_generated"`
	UniqueToday    int    `json:"unique_today"`
	Date           string `json:"date"`
}
