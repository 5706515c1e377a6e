package dailystore

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/davidleathers/placeholder-numbers/internal/domain/errors"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/clock"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/kv"
)

// Persisted keys
const (
	NumbersKey = "pandaAI_generatedNumbers"
	DateKey    = "pandaAI_generationDate"
)

// Load reads today's store from backend. Data from another day is discarded and
// its keys removed. Read failures and malformed data yield an empty store; they
// are logged, never returned.
func Load(ctx context.Context, backend kv.Store, clk clock.Clock, logger *slog.Logger) *Store {
	today := clock.Today(clk)

	saved, err := backend.Get(ctx, NumbersKey)
	if err != nil && !kv.IsNotFound(err) {
		logger.WarnContext(ctx, "error loading generated numbers", "key", NumbersKey, "error", err)
		return New(today)
	}

	date, err := backend.Get(ctx, DateKey)
	if err != nil && !kv.IsNotFound(err) {
		logger.WarnContext(ctx, "error loading generation date", "key", DateKey, "error", err)
		return New(today)
	}

	if saved == "" || date != today {
		if saved != "" || date != "" {
			logger.InfoContext(ctx, "discarding generated numbers from a previous day",
				"stored_date", date, "today", today)
		}
		if err := Purge(ctx, backend); err != nil {
			logger.WarnContext(ctx, "error clearing expired generated numbers", "error", err)
		}
		return New(today)
	}

	var numbers []string
	if err := json.Unmarshal([]byte(saved), &numbers); err != nil {
		logger.WarnContext(ctx, "stored generated numbers are malformed", "error", err)
		return New(today)
	}

	logger.DebugContext(ctx, "loaded generated numbers", "count", len(numbers), "date", today)
	return newFromList(today, numbers)
}

// Save writes the store's entries and date to backend. The in-memory store stays
// authoritative whether or not this succeeds.
func (s *Store) Save(ctx context.Context, backend kv.Store) error {
	date := s.Date()

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		return errors.NewPersistenceError("save", "failed to encode generated numbers").WithCause(err)
	}

	if err := backend.Set(ctx, NumbersKey, string(data)); err != nil {
		return errors.NewPersistenceError("save", "failed to save generated numbers").WithCause(err)
	}

	if err := backend.Set(ctx, DateKey, date); err != nil {
		return errors.NewPersistenceError("save", "failed to save generation date").WithCause(err)
	}

	return nil
}

// Purge removes both persisted keys
func Purge(ctx context.Context, backend kv.Store) error {
	if err := backend.Remove(ctx, NumbersKey); err != nil {
		return errors.NewPersistenceError("remove", "failed to remove generated numbers").WithCause(err)
	}
	if err := backend.Remove(ctx, DateKey); err != nil {
		return errors.NewPersistenceError("remove", "failed to remove generation date").WithCause(err)
	}
	return nil
}
