package services

import (
	"context"
	"errors"
	"fmt"

	"presupuesto/internal/core"
	applog "presupuesto/internal/log"
	"presupuesto/internal/storage"
)

// ErrNoLedger means no usable ledger is stored: the key is absent or its
// record could not be decoded. Either way the caller starts the creation flow.
var ErrNoLedger = errors.New("no ledger stored")

// BudgetService persists the single ledger record under one storage key.
type BudgetService struct {
	store  storage.Store
	key    string
	logger *applog.Logger
}

func NewBudgetService(store storage.Store, key string, logger *applog.Logger) *BudgetService {
	return &BudgetService{
		store:  store,
		key:    key,
		logger: applog.OrDiscard(logger).WithComponent(applog.ComponentStorage).With(applog.FieldStorageKey, key),
	}
}

// Key returns the storage key of the ledger record.
func (s *BudgetService) Key() string { return s.key }

// Load restores the stored ledger. A corrupt record is logged and reported as
// ErrNoLedger so the session falls back to creating a new budget.
func (s *BudgetService) Load(ctx context.Context) (*core.Ledger, error) {
	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if !ok {
		return nil, ErrNoLedger
	}

	ledger, err := core.UnmarshalLedger(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "Stored ledger is unreadable, starting over",
			applog.NewFields().
				WithOperation(applog.OpRestore).
				WithError(err, applog.ErrorTypeCorrupt).
				ToSlice()...)
		return nil, fmt.Errorf("%w: %v", ErrNoLedger, err)
	}

	s.logger.InfoContext(ctx, "Ledger restored",
		applog.NewFields().WithOperation(applog.OpRestore).WithLedger(ledger).ToSlice()...)
	return ledger, nil
}

// Save writes the full ledger state. Callers save only after a mutation has
// recomputed the remaining balance.
func (s *BudgetService) Save(ctx context.Context, ledger *core.Ledger) error {
	raw, err := core.MarshalLedger(ledger)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	s.logger.DebugContext(ctx, "Ledger saved", "bytes", len(raw))
	return nil
}

// Reset deletes the stored record. No empty ledger is written in its place.
func (s *BudgetService) Reset(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("reset ledger: %w", err)
	}
	s.logger.InfoContext(ctx, "Ledger reset", applog.FieldOperation, applog.OpReset)
	return nil
}
