package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends
const (
	BackendAuto     = "auto"
	BackendFile     = "file"
	BackendKV       = "kv"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Defaults
const (
	DefaultPort       = 5000
	DefaultDataFile   = "judge_data.json"
	DefaultRecordName = "judge_data"
	DefaultKVTimeout  = 5 * time.Second
)

type Config struct {
	Port        int
	Backend     string
	DataFile    string
	KVURL       string
	KVToken     string
	RecordName  string
	KVTimeout   time.Duration
	DatabaseURL string
	RedisURL    string
	StaticDir   string
	StrictSave  bool
	LogLevel    string
}

// HasKVCredentials reports whether both the KV REST URL and token are set.
func (c Config) HasKVCredentials() bool {
	return c.KVURL != "" && c.KVToken != ""
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var strictSave string

	fs := flag.NewFlagSet("pitch-roast", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.Backend, "b", "", "Storage backend (auto, file, kv, sqlite, postgres, redis)")
	fs.StringVar(&cfg.DataFile, "f", "", "Path of the JSON data file")
	fs.StringVar(&cfg.RecordName, "record", "", "Record name holding the document")
	fs.DurationVar(&cfg.KVTimeout, "kv-timeout", 0, "Timeout for KV REST calls")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.RedisURL, "redis-url", "", "Redis URL")
	fs.StringVar(&cfg.StaticDir, "s", "", "Directory holding the judge form and dashboard pages")
	fs.StringVar(&strictSave, "strict-save", "", "Fail requests whose save fails (true/false)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.KVURL, "kv-url", "", "KV REST API URL (prefer env)")
	fs.StringVar(&cfg.KVToken, "kv-token", "", "KV REST API token (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	cfg.Backend = fallback(cfg.Backend, "STORAGE_BACKEND", BackendAuto)
	cfg.Backend = strings.ToLower(cfg.Backend)
	cfg.DataFile = fallback(cfg.DataFile, "DATA_FILE", DefaultDataFile)
	cfg.KVURL = fallback(cfg.KVURL, "KV_REST_API_URL", "")
	cfg.KVToken = fallback(cfg.KVToken, "KV_REST_API_TOKEN", "")
	cfg.RecordName = fallback(cfg.RecordName, "KV_RECORD", DefaultRecordName)
	cfg.DatabaseURL = fallback(cfg.DatabaseURL, "DATABASE_URL", "")
	cfg.RedisURL = fallback(cfg.RedisURL, "REDIS_URL", "")
	cfg.StaticDir = fallback(cfg.StaticDir, "STATIC_DIR", ".")
	cfg.LogLevel = fallback(cfg.LogLevel, "LOG_LEVEL", "info")

	if cfg.KVTimeout == 0 {
		if s := os.Getenv("KV_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid KV_TIMEOUT env variable")
			}
			cfg.KVTimeout = d
		} else {
			cfg.KVTimeout = DefaultKVTimeout
		}
	}
	if cfg.KVTimeout < 0 {
		return Config{}, errors.New("kv timeout must be positive")
	}

	strictSave = fallback(strictSave, "STRICT_SAVE", "false")
	strict, err := strconv.ParseBool(strictSave)
	if err != nil {
		return Config{}, errors.New("invalid strict-save value")
	}
	cfg.StrictSave = strict

	// Backend-specific requirements
	switch cfg.Backend {
	case BackendAuto, BackendFile, BackendKV:
	case BackendSQLite, BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("database URL required for %s backend (use -d or DATABASE_URL env)", cfg.Backend)
		}
	case BackendRedis:
		if cfg.RedisURL == "" {
			return Config{}, errors.New("redis URL required for redis backend (use --redis-url or REDIS_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	return cfg, nil
}

func fallback(value, envKey, def string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return def
}
