package generator

import (
	"fmt"

	"github.com/davidleathers/placeholder-numbers/internal/domain/values"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/clock"
	"github.com/davidleathers/placeholder-numbers/internal/service/dailystore"
)

// uniqueOutcome describes how a unique candidate was obtained
type uniqueOutcome struct {
	collisions int
	fallback   bool
}

// GenerateUnique returns a candidate whose rendering was not yet produced today
// and records it in store. After MaxAttempts collisions the line number is
// replaced with the last four digits of the clock's millisecond timestamp and the
// result is recorded without a further check.
func GenerateUnique(cfg GenerationConfig, store *dailystore.Store, rng Random, clk clock.Clock) (values.PhoneCandidate, error) {
	candidate, _, err := generateUnique(cfg, store, rng, clk, MaxAttempts)
	return candidate, err
}

func generateUnique(cfg GenerationConfig, store *dailystore.Store, rng Random, clk clock.Clock, maxAttempts int) (values.PhoneCandidate, uniqueOutcome, error) {
	var outcome uniqueOutcome

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate, err := Synthesize(cfg, rng)
		if err != nil {
			return values.PhoneCandidate{}, outcome, err
		}

		if store.TryAdd(candidate.Formatted()) {
			return candidate, outcome, nil
		}
		outcome.collisions++
	}

	candidate, err := Synthesize(cfg, rng)
	if err != nil {
		return values.PhoneCandidate{}, outcome, err
	}

	candidate, err = candidate.WithLineNumber(timestampLineNumber(clk.Now().UnixMilli()))
	if err != nil {
		return values.PhoneCandidate{}, outcome, fmt.Errorf("fallback: %w", err)
	}

	store.ForceAdd(candidate.Formatted())
	outcome.fallback = true

	return candidate, outcome, nil
}
