package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.KV.Backend)
	assert.Equal(t, "phonegen.db", cfg.KV.SQLite.Path)
	assert.Equal(t, 100, cfg.Generator.MaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.KV.Redis.DialTimeout)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
kv:
  backend: redis
  key_prefix: "demo:"
  redis:
    url: "cache.internal:6379"
    dial_timeout: 2s
generator:
  max_attempts: 10
`), 0o600))

	t.Setenv("PHONEGEN_KV_REDIS_DB", "3")
	t.Setenv("PHONEGEN_KV_REDIS_DIAL_TIMEOUT", "750ms")
	t.Setenv("PHONEGEN_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, BackendRedis, cfg.KV.Backend)
	assert.Equal(t, "demo:", cfg.KV.KeyPrefix)
	assert.Equal(t, "cache.internal:6379", cfg.KV.Redis.URL)
	assert.Equal(t, 3, cfg.KV.Redis.DB)
	assert.Equal(t, 750*time.Millisecond, cfg.KV.Redis.DialTimeout)
	assert.Equal(t, 10, cfg.Generator.MaxAttempts)
	// untouched defaults survive
	assert.Equal(t, 3*time.Second, cfg.KV.Redis.ReadTimeout)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"PHONEGEN_LOG_LEVEL":               "log_level",
		"PHONEGEN_KV_BACKEND":              "kv.backend",
		"PHONEGEN_KV_KEY_PREFIX":           "kv.key_prefix",
		"PHONEGEN_KV_REDIS_URL":            "kv.redis.url",
		"PHONEGEN_KV_SQLITE_BUSY_TIMEOUT":  "kv.sqlite.busy_timeout",
		"PHONEGEN_GENERATOR_MAX_ATTEMPTS":  "generator.max_attempts",
		"PHONEGEN_TELEMETRY_OTLP_ENDPOINT": "telemetry.otlp_endpoint",
	}

	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:   "memory backend",
			mutate: func(c *Config) { c.KV.Backend = BackendMemory },
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.KV.Backend = "etcd" },
			wantErr: "unknown kv backend",
		},
		{
			name: "postgres without url",
			mutate: func(c *Config) {
				c.KV.Backend = BackendPostgres
				c.KV.Postgres.URL = ""
			},
			wantErr: "kv.postgres.url",
		},
		{
			name:    "zero attempts",
			mutate:  func(c *Config) { c.Generator.MaxAttempts = 0 },
			wantErr: "max_attempts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
