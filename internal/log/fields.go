package log

import "presupuesto/internal/core"

// Common field names for structured logging
const (
	FieldComponent      = "component"
	FieldOperation      = "operation"
	FieldOperationID    = "operation_id"
	FieldError          = "error"
	FieldErrorType      = "error_type"
	FieldStorageKey     = "storage_key"
	FieldBackend        = "backend"
	FieldExpenseID      = "expense_id"
	FieldExpenseName    = "expense_name"
	FieldAmountCents    = "amount_cents"
	FieldTotalCents     = "total_cents"
	FieldRemainingCents = "remaining_cents"
	FieldExpenseCount   = "expense_count"
	FieldStatus         = "status"
	FieldExhausted      = "exhausted"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentStorage   = "storage"
	ComponentPresenter = "presenter"
	ComponentTUI       = "tui"
	ComponentBackend   = "backend"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRestore  = "restore"
	OpAppend   = "append"
	OpDelete   = "delete"
	OpReset    = "reset"
	OpValidate = "validate"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeStorage       = "storage_error"
	ErrorTypeCorrupt       = "corrupt_record"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error fields
func (f LogFields) WithError(err error, errorType string) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
		f[FieldErrorType] = errorType
	}
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(e core.Expense) LogFields {
	f[FieldExpenseID] = e.ID
	f[FieldExpenseName] = e.Name
	f[FieldAmountCents] = e.Amount.Cents
	return f
}

// WithLedger adds the balance and status of a ledger
func (f LogFields) WithLedger(l *core.Ledger) LogFields {
	c := l.Classify()
	f[FieldTotalCents] = l.Total().Cents
	f[FieldRemainingCents] = l.Remaining().Cents
	f[FieldExpenseCount] = len(l.Expenses())
	f[FieldStatus] = c.Status.String()
	f[FieldExhausted] = c.Exhausted
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
