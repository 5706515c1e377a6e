package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/config"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// sqliteStore implements the Store interface on a local SQLite file. It is the
// default backend.
type sqliteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (and creates if needed) the database at cfg.Path
func NewSQLiteStore(ctx context.Context, cfg *config.SQLiteConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if cfg == nil || cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open failed: %w", err)
	}
	// a single writer keeps the file lock simple
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema setup failed: %w", err)
	}

	logger.Debug("sqlite store initialized", zap.String("path", cfg.Path))

	return &sqliteStore{
		db:     db,
		logger: logger,
	}, nil
}

// Get retrieves a value by key
func (s *sqliteStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound{Key: key}
		}
		s.logger.Error("sqlite get failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("sqlite get failed: %w", err)
	}

	return value, nil
}

// Set stores a value, replacing any previous one
func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	if err != nil {
		s.logger.Error("sqlite set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("sqlite set failed: %w", err)
	}

	return nil
}

// Remove deletes a key
func (s *sqliteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		s.logger.Error("sqlite delete failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("sqlite delete failed: %w", err)
	}

	return nil
}

// Close closes the database handle
func (s *sqliteStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("sqlite close failed", zap.Error(err))
		return fmt.Errorf("sqlite close failed: %w", err)
	}

	return nil
}
