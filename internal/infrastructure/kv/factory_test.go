package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/config"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("memory backend", func(t *testing.T) {
		cfg := config.Defaults().KV
		cfg.Backend = config.BackendMemory

		store, err := New(ctx, &cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		defer store.Close()

		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("sqlite backend", func(t *testing.T) {
		cfg := config.Defaults().KV
		cfg.SQLite.Path = filepath.Join(t.TempDir(), "phonegen.db")

		store, err := New(ctx, &cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		defer store.Close()

		require.NoError(t, store.Set(ctx, "k", "v"))
	})

	t.Run("redis backend", func(t *testing.T) {
		mr := miniredis.RunT(t)

		cfg := config.Defaults().KV
		cfg.Backend = config.BackendRedis
		cfg.Redis.URL = mr.Addr()
		cfg.KeyPrefix = "phonegen:"

		store, err := New(ctx, &cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		defer store.Close()

		require.NoError(t, store.Set(ctx, "pandaAI_theme", "dark"))

		raw, err := mr.Get("phonegen:pandaAI_theme")
		require.NoError(t, err)
		assert.Equal(t, "dark", raw)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := config.KVConfig{Backend: "etcd"}
		_, err := New(ctx, &cfg, zaptest.NewLogger(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown kv backend")
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := New(ctx, nil, zaptest.NewLogger(t))
		assert.Error(t, err)
	})
}

func TestWithPrefix(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	store := WithPrefix(inner, "tenant:")

	require.NoError(t, store.Set(ctx, "key", "value"))

	raw, err := inner.Get(ctx, "tenant:key")
	require.NoError(t, err)
	assert.Equal(t, "value", raw)

	_, err = inner.Get(ctx, "key")
	assert.True(t, IsNotFound(err))

	_, err = store.Get(ctx, "missing")
	var notFound ErrKeyNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Key, "prefix must not leak into errors")

	require.NoError(t, store.Remove(ctx, "key"))
	assert.Equal(t, 0, inner.Len())

	assert.Same(t, inner, WithPrefix(inner, ""))
}
