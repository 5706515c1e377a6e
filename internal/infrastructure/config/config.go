package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPath is read when no explicit path is given. It is optional.
const DefaultConfigPath = "configs/config.yaml"

// EnvPrefix is the prefix for environment overrides, e.g. PHONEGEN_KV_BACKEND.
const EnvPrefix = "PHONEGEN_"

type Config struct {
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	LogLevel    string `koanf:"log_level"`
	LogFormat   string `koanf:"log_format"`

	KV        KVConfig        `koanf:"kv"`
	Generator GeneratorConfig `koanf:"generator"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// Backend names accepted in kv.backend
const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type KVConfig struct {
	Backend   string `koanf:"backend"`
	KeyPrefix string `koanf:"key_prefix"`

	Redis    RedisConfig    `koanf:"redis"`
	SQLite   SQLiteConfig   `koanf:"sqlite"`
	Postgres PostgresConfig `koanf:"postgres"`
}

type RedisConfig struct {
	URL          string        `koanf:"url"`
	Password     string        `koanf:"password"`
	DB           int           `koanf:"db"`
	MaxRetries   int           `koanf:"max_retries"`
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type SQLiteConfig struct {
	Path        string        `koanf:"path"`
	BusyTimeout time.Duration `koanf:"busy_timeout"`
}

type PostgresConfig struct {
	URL            string        `koanf:"url"`
	MaxConns       int32         `koanf:"max_conns"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

type GeneratorConfig struct {
	MaxAttempts int `koanf:"max_attempts"`
}

type TelemetryConfig struct {
	Enabled       bool          `koanf:"enabled"`
	OTLPEndpoint  string        `koanf:"otlp_endpoint"`
	SamplingRate  float64       `koanf:"sampling_rate"`
	ExportTimeout time.Duration `koanf:"export_timeout"`
	BatchTimeout  time.Duration `koanf:"batch_timeout"`
}

// Defaults returns the configuration used before any file or env overrides
func Defaults() *Config {
	return &Config{
		Version:     "dev",
		Environment: "development",
		LogLevel:    "warn",
		LogFormat:   "text",
		KV: KVConfig{
			Backend: BackendSQLite,
			Redis: RedisConfig{
				URL:          "localhost:6379",
				DB:           0,
				MaxRetries:   3,
				DialTimeout:  5 * time.Second,
				ReadTimeout:  3 * time.Second,
				WriteTimeout: 3 * time.Second,
			},
			SQLite: SQLiteConfig{
				Path:        "phonegen.db",
				BusyTimeout: 5 * time.Second,
			},
			Postgres: PostgresConfig{
				MaxConns:       4,
				ConnectTimeout: 5 * time.Second,
			},
		},
		Generator: GeneratorConfig{
			MaxAttempts: 100,
		},
		Telemetry: TelemetryConfig{
			Enabled:       false,
			OTLPEndpoint:  "localhost:4317",
			SamplingRate:  1.0,
			ExportTimeout: 30 * time.Second,
			BatchTimeout:  5 * time.Second,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// PHONEGEN_ environment variables, in that order of precedence.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// The default file is optional; an explicitly requested one is not.
	if path == "" {
		if _, err := os.Stat(DefaultConfigPath); err == nil {
			path = DefaultConfigPath
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKey(s)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envKey maps PHONEGEN_KV_REDIS_URL to kv.redis.url. Known multi-word leaf keys
// keep their underscore.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, leaf := range multiWordKeys {
		if strings.HasSuffix(key, leaf) {
			head := strings.TrimSuffix(key, leaf)
			return strings.ReplaceAll(head, "_", ".") + leaf
		}
	}
	return strings.ReplaceAll(key, "_", ".")
}

var multiWordKeys = []string{
	"log_level", "log_format", "key_prefix", "max_retries", "dial_timeout",
	"read_timeout", "write_timeout", "busy_timeout", "max_conns", "connect_timeout",
	"max_attempts", "otlp_endpoint", "sampling_rate", "export_timeout", "batch_timeout",
}

// Validate checks cross-field constraints that koanf cannot express
func (c *Config) Validate() error {
	switch c.KV.Backend {
	case BackendSQLite:
		if c.KV.SQLite.Path == "" {
			return fmt.Errorf("kv.sqlite.path is required for the sqlite backend")
		}
	case BackendRedis:
		if c.KV.Redis.URL == "" {
			return fmt.Errorf("kv.redis.url is required for the redis backend")
		}
	case BackendPostgres:
		if c.KV.Postgres.URL == "" {
			return fmt.Errorf("kv.postgres.url is required for the postgres backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown kv backend %q", c.KV.Backend)
	}

	if c.Generator.MaxAttempts < 1 {
		return fmt.Errorf("generator.max_attempts must be positive, got %d", c.Generator.MaxAttempts)
	}

	return nil
}
