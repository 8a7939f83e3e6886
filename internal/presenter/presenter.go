// Package presenter turns user actions into ledger operations and ledger
// state into what the user sees.
//
// The presenter owns the session's single ledger. Each mutation runs on a
// copy, is persisted, and only then replaces the live ledger, so a failed
// write leaves both the screen and the store on the previous state.
package presenter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"presupuesto/internal/core"
	applog "presupuesto/internal/log"
	"presupuesto/internal/services"
	"presupuesto/internal/trace"
)

// Repository persists the ledger record.
type Repository interface {
	Load(ctx context.Context) (*core.Ledger, error)
	Save(ctx context.Context, l *core.Ledger) error
	Reset(ctx context.Context) error
}

// Durations sets how long each kind of notification stays visible.
type Durations struct {
	Success   time.Duration
	Error     time.Duration
	Exhausted time.Duration
}

func DefaultDurations() Durations {
	return Durations{Success: 2 * time.Second, Error: 2 * time.Second, Exhausted: 5 * time.Second}
}

const (
	msgExpenseAdded   = "Expense added"
	msgExpenseRemoved = "Expense removed"
	msgExhausted      = "The budget is exhausted"
	msgSaveFailed     = "Could not save the budget"
)

type Presenter struct {
	repo      Repository
	notifier  *Notifier
	logger    *applog.Logger
	durations Durations
	ledger    *core.Ledger
}

func New(repo Repository, notifier *Notifier, logger *applog.Logger, d Durations) *Presenter {
	if notifier == nil {
		notifier = NewNotifier()
	}
	return &Presenter{
		repo:      repo,
		notifier:  notifier,
		logger:    applog.OrDiscard(logger).WithComponent(applog.ComponentPresenter),
		durations: d,
	}
}

// Notifier returns the notifier used for transient messages.
func (p *Presenter) Notifier() *Notifier { return p.notifier }

// Start restores the stored ledger. needsBudget is true when nothing usable
// is stored and the user must be asked for a total.
func (p *Presenter) Start(ctx context.Context) (needsBudget bool, err error) {
	ledger, err := p.repo.Load(ctx)
	if errors.Is(err, services.ErrNoLedger) {
		p.ledger = nil
		return true, nil
	}
	if err != nil {
		return false, err
	}
	p.ledger = ledger
	return false, nil
}

// CreateBudget validates the prompt answer, creates the ledger and saves it.
func (p *Presenter) CreateBudget(ctx context.Context, raw string) error {
	ctx = trace.WithOperationID(ctx)
	total, err := ValidateBudget(raw)
	if err != nil {
		return err
	}
	ledger, err := core.NewLedger(total)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBudget, err)
	}
	return p.commit(ctx, ledger, applog.OpCreate)
}

// AddExpense validates the form and records the expense. Rejected input
// posts an error notification and leaves the ledger unchanged.
func (p *Presenter) AddExpense(ctx context.Context, in ExpenseInput) error {
	ctx = trace.WithOperationID(ctx)
	if p.ledger == nil {
		return ErrNoBudget
	}
	if p.ledger.Classify().Exhausted {
		return p.reject(ctx, ErrBudgetExhausted)
	}

	name, amount, err := in.Parse()
	if err != nil {
		return p.reject(ctx, err)
	}
	expense, err := core.NewExpense(name, amount)
	if err != nil {
		return p.reject(ctx, err)
	}

	next := p.ledger.Clone()
	if _, err := next.AddExpense(expense); err != nil {
		return p.reject(ctx, err)
	}
	if err := p.commit(ctx, next, applog.OpAppend, applog.NewFields().WithExpense(expense).ToSlice()...); err != nil {
		return err
	}

	p.notifier.Post(KindSuccess, msgExpenseAdded, p.durations.Success)
	p.checkExhausted()
	return nil
}

// RemoveExpense deletes the expense with the given id. Unknown ids are a
// no-op and nothing is written.
func (p *Presenter) RemoveExpense(ctx context.Context, id string) error {
	if p.ledger == nil {
		return ErrNoBudget
	}
	if !p.ledger.Contains(id) {
		return nil
	}

	ctx = trace.WithOperationID(ctx)
	next := p.ledger.Clone()
	next.RemoveExpense(id)
	if err := p.commit(ctx, next, applog.OpDelete, applog.FieldExpenseID, id); err != nil {
		return err
	}

	p.notifier.Post(KindSuccess, msgExpenseRemoved, p.durations.Success)
	p.checkExhausted()
	return nil
}

// Reset deletes the stored record and drops the ledger. The next Start asks
// for a new budget.
func (p *Presenter) Reset(ctx context.Context) error {
	ctx = trace.WithOperationID(ctx)
	if err := p.repo.Reset(ctx); err != nil {
		p.notifier.Post(KindError, msgSaveFailed, p.durations.Error)
		p.logger.ErrorContext(ctx, "Reset failed",
			applog.NewFields().WithOperation(applog.OpReset).WithError(err, applog.ErrorTypeStorage).ToSlice()...)
		return err
	}
	p.ledger = nil
	return nil
}

// View returns the current presentation state.
func (p *Presenter) View() View {
	return buildView(p.ledger, p.notifier.Active())
}

// Ledger returns the live ledger, or nil before a budget exists.
func (p *Presenter) Ledger() *core.Ledger { return p.ledger }

// commit persists next and installs it as the live ledger.
func (p *Presenter) commit(ctx context.Context, next *core.Ledger, op string, extra ...any) error {
	if err := p.repo.Save(ctx, next); err != nil {
		p.notifier.Post(KindError, msgSaveFailed, p.durations.Error)
		p.logger.ErrorContext(ctx, "Ledger not saved",
			append(applog.NewFields().WithOperation(op).WithError(err, applog.ErrorTypeStorage).ToSlice(), extra...)...)
		return err
	}
	p.ledger = next
	p.logger.InfoContext(ctx, "Ledger updated",
		append(applog.NewFields().WithOperation(op).WithLedger(next).ToSlice(), extra...)...)
	return nil
}

func (p *Presenter) reject(ctx context.Context, err error) error {
	p.notifier.Post(KindError, errorMessage(err), p.durations.Error)
	p.logger.DebugContext(ctx, "Input rejected", applog.NewFields().WithOperation(applog.OpValidate).WithError(err, applog.ErrorTypeValidation).ToSlice()...)
	return err
}

func (p *Presenter) checkExhausted() {
	if p.ledger.Classify().Exhausted {
		p.notifier.Post(KindError, msgExhausted, p.durations.Exhausted)
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingFields):
		return "All fields are required"
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, core.ErrInvalidAmount):
		return "Invalid amount"
	case errors.Is(err, ErrBudgetExhausted):
		return msgExhausted
	case errors.Is(err, core.ErrNameTooLong):
		return "Name is too long"
	default:
		return err.Error()
	}
}
