package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/config"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// postgresStore implements the Store interface on a PostgreSQL table
type postgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore connects to cfg.URL and ensures the kv_entries table exists
func NewPostgresStore(ctx context.Context, cfg *config.PostgresConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("postgres url is required")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres pool creation failed: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres schema setup failed: %w", err)
	}

	logger.Debug("postgres store initialized", zap.Int32("max_conns", poolCfg.MaxConns))

	return &postgresStore{
		pool:   pool,
		logger: logger,
	}, nil
}

// Get retrieves a value by key
func (p *postgresStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := p.pool.QueryRow(ctx, `SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrKeyNotFound{Key: key}
		}
		p.logger.Error("postgres get failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("postgres get failed: %w", err)
	}

	return value, nil
}

// Set stores a value, replacing any previous one
func (p *postgresStore) Set(ctx context.Context, key, value string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		p.logger.Error("postgres set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("postgres set failed: %w", err)
	}

	return nil
}

// Remove deletes a key
func (p *postgresStore) Remove(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM kv_entries WHERE key = $1`, key); err != nil {
		p.logger.Error("postgres delete failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("postgres delete failed: %w", err)
	}

	return nil
}

// Close closes the connection pool
func (p *postgresStore) Close() error {
	p.pool.Close()
	return nil
}
