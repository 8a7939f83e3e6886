package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return *Defaults()
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "memory backend without paths",
			mutate:  func(c *Config) { c.DataBackend = "memory"; c.SQLiteDBPath = ""; c.DataDir = "" },
			wantErr: false,
		},
		{
			name:    "cache disabled ignores size",
			mutate:  func(c *Config) { c.CacheTTL = 0; c.CacheSize = 0 },
			wantErr: false,
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [memory sqlite file]",
		},
		{
			name:        "sqlite backend missing database path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "file backend missing directory",
			mutate:      func(c *Config) { c.DataBackend = "file"; c.DataDir = "" },
			wantErr:     true,
			errorString: "data directory cannot be empty when using file backend",
		},
		{
			name:        "blank storage key",
			mutate:      func(c *Config) { c.StorageKey = "  " },
			wantErr:     true,
			errorString: "storage key cannot be empty",
		},
		{
			name:        "negative cache ttl",
			mutate:      func(c *Config) { c.CacheTTL = -time.Second },
			wantErr:     true,
			errorString: "invalid cache TTL -1s: must not be negative",
		},
		{
			name:        "cache size too large",
			mutate:      func(c *Config) { c.CacheSize = 5000 },
			wantErr:     true,
			errorString: "invalid cache size 5000: must be between 1 and 1024",
		},
		{
			name:        "notification too short",
			mutate:      func(c *Config) { c.NotifySuccess = 10 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid success notification duration 10ms",
		},
		{
			name:        "notification too long",
			mutate:      func(c *Config) { c.NotifyExhausted = time.Hour },
			wantErr:     true,
			errorString: "invalid exhausted notification duration 1h0m0s",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Expected error to contain '%s', but got: %s", tt.errorString, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.DataBackend = "bogus"
	cfg.StorageKey = ""
	cfg.LogLevel = "nope"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected error")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 3 {
		t.Errorf("Expected 3 aggregated errors, got %d: %s", got, err)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATA_BACKEND", "SQLITE_DB_PATH", "DATA_DIR", "STORAGE_KEY",
		"CACHE_TTL", "CACHE_SIZE", "NOTIFY_SUCCESS", "NOTIFY_ERROR",
		"NOTIFY_EXHAUSTED", "LOG_LEVEL", "PRESUPUESTO_LOG_FILE",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("PRESUPUESTO_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataBackend != "sqlite" || cfg.StorageKey != "presupuesto" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.NotifySuccess != 2*time.Second || cfg.NotifyExhausted != 5*time.Second {
		t.Errorf("unexpected notification defaults: %v %v", cfg.NotifySuccess, cfg.NotifyExhausted)
	}
	if cfg.LogFile != filepath.Join("./data", "presupuesto.log") {
		t.Errorf("unexpected log file default %q", cfg.LogFile)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_BACKEND", "file")
	t.Setenv("DATA_DIR", "/tmp/presupuesto")
	t.Setenv("CACHE_TTL", "0")
	t.Setenv("CACHE_SIZE", "not-a-number")
	t.Setenv("NOTIFY_ERROR", "3s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataBackend != "file" || cfg.DataDir != "/tmp/presupuesto" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("expected cache disabled, got %v", cfg.CacheTTL)
	}
	if cfg.CacheSize != 16 {
		t.Errorf("invalid int must keep the default, got %d", cfg.CacheSize)
	}
	if cfg.NotifyError != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.NotifyError)
	}
	if cfg.LogFile != filepath.Join("/tmp/presupuesto", "presupuesto.log") {
		t.Errorf("log file should follow DATA_DIR, got %q", cfg.LogFile)
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
data_backend = "memory"
storage_key = "budget"
cache_ttl = "1m"
cache_size = 8
notify_exhausted = "10s"
log_level = "warn"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PRESUPUESTO_CONFIG", path)
	t.Setenv("STORAGE_KEY", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataBackend != "memory" || cfg.CacheTTL != time.Minute || cfg.CacheSize != 8 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.NotifyExhausted != 10*time.Second || cfg.LogLevel != "warn" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.StorageKey != "from-env" {
		t.Errorf("environment must win over file, got %q", cfg.StorageKey)
	}
	if cfg.SQLiteDBPath != "./data/presupuesto.db" {
		t.Errorf("unset file keys must keep defaults, got %q", cfg.SQLiteDBPath)
	}
}

func TestLoad_BadTOMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("cache_ttl = \"forever\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PRESUPUESTO_CONFIG", path)

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "cache_ttl") {
		t.Fatalf("expected cache_ttl parse error, got %v", err)
	}

	if err := os.WriteFile(path, []byte("this is = = not toml"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected TOML syntax error")
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"debug", "INFO", "warn", "error"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel(""); err == nil {
		t.Error("expected error for empty level")
	}
}
