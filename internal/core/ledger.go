package core

import (
	"fmt"
	"slices"
)

// Ledger is the budget aggregate: a fixed total, the recorded expenses in
// insertion order, and the remaining balance.
//
// remaining always equals total minus the sum of the expense amounts after
// any mutation. RestoreLedger is the only path that installs a remaining
// value without computing it.
type Ledger struct {
	total     Money
	remaining Money
	expenses  []Expense
}

// State is an immutable snapshot of a ledger handed to callers after each
// operation.
type State struct {
	Total     Money
	Remaining Money
	Expenses  []Expense
}

// NewLedger creates an empty ledger whose remaining balance equals total.
func NewLedger(total Money) (*Ledger, error) {
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTotal, total)
	}
	return &Ledger{total: total, remaining: total}, nil
}

// RestoreLedger rehydrates a ledger from persisted fields. The stored
// remaining balance is trusted as-is.
func RestoreLedger(total, remaining Money, expenses []Expense) *Ledger {
	return &Ledger{
		total:     total,
		remaining: remaining,
		expenses:  slices.Clone(expenses),
	}
}

func (l *Ledger) Total() Money     { return l.total }
func (l *Ledger) Remaining() Money { return l.remaining }

// Expenses returns a copy of the expenses, oldest first.
func (l *Ledger) Expenses() []Expense {
	return slices.Clone(l.expenses)
}

// Spent returns the sum of all expense amounts.
func (l *Ledger) Spent() Money {
	return sumAmounts(l.expenses)
}

// Contains reports whether an expense with the given id is recorded.
func (l *Ledger) Contains(id string) bool {
	return slices.ContainsFunc(l.expenses, func(e Expense) bool { return e.ID == id })
}

// Snapshot returns the current state.
func (l *Ledger) Snapshot() State {
	return State{Total: l.total, Remaining: l.remaining, Expenses: l.Expenses()}
}

// Clone returns an independent copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	return RestoreLedger(l.total, l.remaining, l.expenses)
}

// AddExpense appends e and recomputes the remaining balance. The previous
// expense slice is left untouched; a new one is installed.
func (l *Ledger) AddExpense(e Expense) (State, error) {
	if err := e.Validate(); err != nil {
		return l.Snapshot(), err
	}
	if l.Contains(e.ID) {
		return l.Snapshot(), fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
	}

	next := make([]Expense, 0, len(l.expenses)+1)
	next = append(next, l.expenses...)
	next = append(next, e)
	l.install(next)
	return l.Snapshot(), nil
}

// RemoveExpense drops every expense with the given id and recomputes the
// remaining balance. Removing an unknown id leaves the ledger unchanged.
func (l *Ledger) RemoveExpense(id string) State {
	if !l.Contains(id) {
		return l.Snapshot()
	}
	next := make([]Expense, 0, len(l.expenses))
	for _, e := range l.expenses {
		if e.ID != id {
			next = append(next, e)
		}
	}
	l.install(next)
	return l.Snapshot()
}

// Classify reports the status category of the ledger.
func (l *Ledger) Classify() Classification {
	return Classify(l.total, l.remaining)
}

// install swaps in a new expense slice together with its recomputed balance.
func (l *Ledger) install(expenses []Expense) {
	remaining := l.total.Sub(sumAmounts(expenses))
	l.expenses = expenses
	l.remaining = remaining
}

func sumAmounts(expenses []Expense) Money {
	var spent Money
	for _, e := range expenses {
		spent = spent.Add(e.Amount)
	}
	return spent
}
