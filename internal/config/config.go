package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const DefaultStorageKey = "presupuesto"

type Config struct {
	// Storage
	DataBackend  string
	SQLiteDBPath string
	DataDir      string
	StorageKey   string

	// Read cache in front of the store
	CacheTTL  time.Duration
	CacheSize int

	// Notification lifetimes
	NotifySuccess   time.Duration
	NotifyError     time.Duration
	NotifyExhausted time.Duration

	// Logging
	LogLevel string
	LogFile  string
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		DataBackend:     "sqlite",
		SQLiteDBPath:    "./data/presupuesto.db",
		DataDir:         "./data",
		StorageKey:      DefaultStorageKey,
		CacheTTL:        5 * time.Minute,
		CacheSize:       16,
		NotifySuccess:   2 * time.Second,
		NotifyError:     2 * time.Second,
		NotifyExhausted: 5 * time.Second,
		LogLevel:        "info",
	}
}

// Load builds the configuration from defaults, the optional TOML file and the
// environment, in that order of increasing priority.
func Load() (*Config, error) {
	cfg := Defaults()

	if err := cfg.loadFile(FilePath()); err != nil {
		return cfg, err
	}

	cfg.DataBackend = getEnv("DATA_BACKEND", cfg.DataBackend)
	cfg.SQLiteDBPath = getEnv("SQLITE_DB_PATH", cfg.SQLiteDBPath)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.StorageKey = getEnv("STORAGE_KEY", cfg.StorageKey)

	cfg.CacheTTL = getEnvDuration("CACHE_TTL", cfg.CacheTTL)
	cfg.CacheSize = getEnvInt("CACHE_SIZE", cfg.CacheSize)

	cfg.NotifySuccess = getEnvDuration("NOTIFY_SUCCESS", cfg.NotifySuccess)
	cfg.NotifyError = getEnvDuration("NOTIFY_ERROR", cfg.NotifyError)
	cfg.NotifyExhausted = getEnvDuration("NOTIFY_EXHAUSTED", cfg.NotifyExhausted)

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("PRESUPUESTO_LOG_FILE", cfg.LogFile)
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "presupuesto.log")
	}

	return cfg, nil
}

// FilePath returns $PRESUPUESTO_CONFIG, or config.toml under the XDG config
// directory.
func FilePath() string {
	if p := os.Getenv("PRESUPUESTO_CONFIG"); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "presupuesto", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "presupuesto", "config.toml")
}

// fileConfig mirrors Config with durations as strings ("2s", "5m").
type fileConfig struct {
	DataBackend     *string `toml:"data_backend"`
	SQLiteDBPath    *string `toml:"sqlite_db_path"`
	DataDir         *string `toml:"data_dir"`
	StorageKey      *string `toml:"storage_key"`
	CacheTTL        *string `toml:"cache_ttl"`
	CacheSize       *int    `toml:"cache_size"`
	NotifySuccess   *string `toml:"notify_success"`
	NotifyError     *string `toml:"notify_error"`
	NotifyExhausted *string `toml:"notify_exhausted"`
	LogLevel        *string `toml:"log_level"`
	LogFile         *string `toml:"log_file"`
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	setString(&c.DataBackend, fc.DataBackend)
	setString(&c.SQLiteDBPath, fc.SQLiteDBPath)
	setString(&c.DataDir, fc.DataDir)
	setString(&c.StorageKey, fc.StorageKey)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.LogFile, fc.LogFile)
	if fc.CacheSize != nil {
		c.CacheSize = *fc.CacheSize
	}

	var errs []string
	for _, d := range []struct {
		name string
		dst  *time.Duration
		src  *string
	}{
		{"cache_ttl", &c.CacheTTL, fc.CacheTTL},
		{"notify_success", &c.NotifySuccess, fc.NotifySuccess},
		{"notify_error", &c.NotifyError, fc.NotifyError},
		{"notify_exhausted", &c.NotifyExhausted, fc.NotifyExhausted},
	} {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", d.name, err))
			continue
		}
		*d.dst = v
	}
	if len(errs) > 0 {
		return fmt.Errorf("parsing config %s: %s", path, strings.Join(errs, "; "))
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"memory", "sqlite", "file"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}
	if c.DataBackend == "file" && c.DataDir == "" {
		errors = append(errors, "data directory cannot be empty when using file backend")
	}

	if strings.TrimSpace(c.StorageKey) == "" {
		errors = append(errors, "storage key cannot be empty")
	}

	if c.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must not be negative", c.CacheTTL))
	}
	if c.CacheTTL > 0 && (c.CacheSize < 1 || c.CacheSize > 1024) {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be between 1 and 1024", c.CacheSize))
	}

	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"success notification", c.NotifySuccess},
		{"error notification", c.NotifyError},
		{"exhausted notification", c.NotifyExhausted},
	} {
		if d.value < 100*time.Millisecond || d.value > time.Minute {
			errors = append(errors, fmt.Sprintf("invalid %s duration %v: must be between 100ms and 1m", d.name, d.value))
		}
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level '%s': must be one of debug, info, warn, error", s)
	}
	return l, nil
}

func setString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
