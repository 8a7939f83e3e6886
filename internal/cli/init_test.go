package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"presupuesto/internal/config"
	applog "presupuesto/internal/log"
)

func TestSetupLoggerWritesToFile(t *testing.T) {
	cfg := config.Defaults()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "presupuesto.log")
	cfg.LogLevel = "debug"

	logger, closer := SetupLogger(cfg)
	logger.Debug("hello from test", "answer", 42)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") || !strings.Contains(string(data), "answer=42") {
		t.Fatalf("unexpected log contents: %s", data)
	}
}

func TestInitBackendMemory(t *testing.T) {
	cfg := config.Defaults()
	cfg.DataBackend = "memory"
	cfg.CacheTTL = 0
	cfg.DataDir = t.TempDir()
	cfg.LogFile = filepath.Join(t.TempDir(), "presupuesto.log")

	logger, closer := SetupLogger(cfg)
	defer closer.Close()

	res := InitBackend(context.Background(), logger, cfg)
	defer res.Close()

	ctx := context.Background()
	if err := res.Store.Set(ctx, cfg.StorageKey, "{}"); err != nil {
		t.Fatal(err)
	}
	if v, ok, err := res.Store.Get(ctx, cfg.StorageKey); err != nil || !ok || v != "{}" {
		t.Fatalf("unexpected get: %q %v %v", v, ok, err)
	}
}

func TestConfigErrorIsTaggedAsConfiguration(t *testing.T) {
	t.Setenv("PRESUPUESTO_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("DATA_BACKEND", "postgres")

	_, err := loadConfig()
	if err == nil {
		t.Fatal("expected an invalid backend to fail validation")
	}

	var buf bytes.Buffer
	logConfigError(applog.New(applog.Config{Handler: slog.NewTextHandler(&buf, nil)}), err)
	out := buf.String()
	if !strings.Contains(out, "error_type=configuration_error") || !strings.Contains(out, "postgres") {
		t.Fatalf("unexpected log: %s", out)
	}
}
