package kv

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/config"
)

// New opens the backend selected by cfg.Backend and applies cfg.KeyPrefix
func New(ctx context.Context, cfg *config.KVConfig, logger *zap.Logger) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("kv config is required")
	}

	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	var (
		store Store
		err   error
	)

	switch cfg.Backend {
	case config.BackendSQLite:
		store, err = NewSQLiteStore(ctx, &cfg.SQLite, logger)
	case config.BackendRedis:
		store, err = NewRedisStore(&cfg.Redis, logger)
	case config.BackendPostgres:
		store, err = NewPostgresStore(ctx, &cfg.Postgres, logger)
	case config.BackendMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown kv backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("kv backend ready",
		zap.String("backend", cfg.Backend),
		zap.String("key_prefix", cfg.KeyPrefix))

	return WithPrefix(store, cfg.KeyPrefix), nil
}

// prefixedStore namespaces every key of an underlying store
type prefixedStore struct {
	Store
	prefix string
}

// WithPrefix returns a Store that prepends prefix to every key. An empty prefix
// returns store unchanged.
func WithPrefix(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	return &prefixedStore{Store: store, prefix: prefix}
}

func (p *prefixedStore) Get(ctx context.Context, key string) (string, error) {
	value, err := p.Store.Get(ctx, p.prefix+key)
	if IsNotFound(err) {
		return "", ErrKeyNotFound{Key: key}
	}
	return value, err
}

func (p *prefixedStore) Set(ctx context.Context, key, value string) error {
	return p.Store.Set(ctx, p.prefix+key, value)
}

func (p *prefixedStore) Remove(ctx context.Context, key string) error {
	return p.Store.Remove(ctx, p.prefix+key)
}
