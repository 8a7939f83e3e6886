// Package cli provides the process-level setup shared by the command:
// environment, configuration, logging, storage and signal handling.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"presupuesto/internal/backend"
	"presupuesto/internal/config"
	applog "presupuesto/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on failure. The log file is not
// open yet, so the failure is logged to stderr with the default logger.
func LoadAndValidateConfig() *config.Config {
	cfg, err := loadConfig()
	if err != nil {
		logConfigError(applog.New(applog.DefaultConfig()), err)
		os.Exit(1)
	}
	return cfg
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func logConfigError(logger *applog.Logger, err error) {
	logger.Error("Invalid configuration",
		applog.NewFields().
			WithOperation(applog.OpStartup).
			WithError(err, applog.ErrorTypeConfiguration).
			ToSlice()...)
}

// SetupLogger opens the log file named by the config and installs it as the
// default logger. The terminal belongs to the UI, so records never go to
// stdout. If the file cannot be opened, logging is discarded.
func SetupLogger(cfg *config.Config) (*applog.Logger, io.Closer) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}

	logger, closer, err := applog.OpenFile(cfg.LogFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "presupuesto: logging disabled: %v\n", err)
		logger, closer = applog.Discard(), nopCloser{}
	}
	applog.SetDefault(logger)
	return logger, closer
}

// InitBackend creates the configured store.
// Returns the backend or exits the process on failure.
func InitBackend(ctx context.Context, logger *applog.Logger, cfg *config.Config) *backend.BackendResult {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		fmt.Fprintf(os.Stderr, "presupuesto: %v\n", err)
		os.Exit(1)
	}

	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend",
			applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		fmt.Fprintf(os.Stderr, "presupuesto: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Storage backend ready", applog.FieldBackend, cfg.DataBackend)
	return res
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
