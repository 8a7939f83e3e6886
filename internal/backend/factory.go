package backend

import (
	"context"
	"fmt"

	"presupuesto/internal/cache"
	applog "presupuesto/internal/log"
	"presupuesto/internal/storage"
	"presupuesto/internal/storage/file"
	"presupuesto/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory. A nil logger discards records.
func NewFactory(logger *applog.Logger) Factory {
	return &DefaultFactory{
		logger: applog.OrDiscard(logger).WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		res *BackendResult
		err error
	)
	switch config.Type {
	case SQLiteBackend:
		res, err = f.createSQLiteBackend(config)
	case FileBackend:
		res, err = f.createFileBackend(config)
	case MemoryBackend:
		res, err = f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if config.CacheTTL > 0 {
		f.wrapWithCache(ctx, res, config)
	}
	return res, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Store:   repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createFileBackend(config Config) (*BackendResult, error) {
	store, err := file.New(config.DataDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	f.logger.Info("Initialized file backend", "data_directory", config.DataDirectory)

	return &BackendResult{Store: store}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	store := memory.NewFromFiles(dataDir, config.SeedKeys...)

	f.logger.Info("Initialized memory backend", "data_directory", dataDir, "seeded_keys", store.Len())

	return &BackendResult{Store: store}, nil
}

// wrapWithCache puts an LRU in front of the store and sweeps expired entries
// every TTL until cleanup.
func (f *DefaultFactory) wrapWithCache(ctx context.Context, res *BackendResult, config Config) {
	lru := cache.NewLRUCache[string](config.CacheSize, config.CacheTTL)
	mgr := cache.NewManager()
	mgr.Register(lru)
	mgr.Start(context.WithoutCancel(ctx), config.CacheTTL)

	inner := res.Cleanup
	res.Store = storage.NewCached(res.Store, lru)
	res.Cleanup = func() error {
		mgr.Stop()
		s := lru.Stats()
		f.logger.Info("Store cache closed",
			applog.FieldOperation, applog.OpShutdown,
			"hits", s.Hits, "misses", s.Misses, "evictions", s.Evictions, "expired", s.Expired)
		if inner != nil {
			return inner()
		}
		return nil
	}

	f.logger.Info("Enabled store cache", "ttl", config.CacheTTL, "size", config.CacheSize)
}
