package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ledgerRecord is the persisted shape of a ledger. Field names follow the
// record written by earlier versions of the app so existing data loads.
type ledgerRecord struct {
	Total     Money           `json:"total"`
	Remaining Money           `json:"restante"`
	Expenses  []expenseRecord `json:"gastos"`
}

type expenseRecord struct {
	ID     recordID `json:"id"`
	Name   string   `json:"nombre"`
	Amount Money    `json:"cantidad"`
}

// recordID is written as a JSON string. Older records used millisecond
// timestamps as numeric ids; those decode to their decimal text.
type recordID string

func (id *recordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = recordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expense id must be a string or number: %w", err)
	}
	*id = recordID(n.String())
	return nil
}

// MarshalLedger serializes the full ledger state to a single string record.
func MarshalLedger(l *Ledger) (string, error) {
	rec := ledgerRecord{
		Total:     l.total,
		Remaining: l.remaining,
		Expenses:  make([]expenseRecord, len(l.expenses)),
	}
	for i, e := range l.expenses {
		rec.Expenses[i] = expenseRecord{ID: recordID(e.ID), Name: e.Name, Amount: e.Amount}
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal ledger: %w", err)
	}
	return string(b), nil
}

// storedLedger is the decode side of ledgerRecord. Records written by older
// versions are restored as they are: only the shape is checked, not the rules
// applied to new entries.
type storedLedger struct {
	Total     decimal.Decimal `json:"total"`
	Remaining *Money          `json:"restante"`
	Expenses  []storedExpense `json:"gastos"`
}

type storedExpense struct {
	ID     recordID        `json:"id"`
	Name   string          `json:"nombre"`
	Amount decimal.Decimal `json:"cantidad"`
}

// UnmarshalLedger rebuilds a ledger from a stored record.
//
// A record that is not valid JSON, has a non-positive total, or holds an
// expense without id, name or positive amount yields an error wrapping
// ErrCorruptRecord. Anything else loads:
//   - names longer than new entries allow are kept as written
//   - a positive amount below one cent is rounded up to one cent
//   - a repeated id is re-keyed to the first free "<id>-N"
//   - a missing restante is recomputed from the total and the expenses
func UnmarshalLedger(s string) (*Ledger, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty record", ErrCorruptRecord)
	}

	var rec storedLedger
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	total, err := storedAmount(rec.Total)
	if err != nil {
		return nil, fmt.Errorf("%w: total: %v", ErrCorruptRecord, err)
	}

	expenses := make([]Expense, 0, len(rec.Expenses))
	seen := make(map[string]struct{}, len(rec.Expenses))
	for i, r := range rec.Expenses {
		id := string(r.ID)
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: expense %d: %v", ErrCorruptRecord, i, ErrEmptyID)
		}
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("%w: expense %d: %v", ErrCorruptRecord, i, ErrEmptyName)
		}
		amount, err := storedAmount(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: expense %d: %v", ErrCorruptRecord, i, err)
		}
		if _, dup := seen[id]; dup {
			id = freeID(id, seen)
		}
		seen[id] = struct{}{}
		expenses = append(expenses, Expense{ID: id, Name: r.Name, Amount: amount})
	}

	remaining := total.Sub(sumAmounts(expenses))
	if rec.Remaining != nil {
		remaining = *rec.Remaining
	}
	return RestoreLedger(total, remaining, expenses), nil
}

// storedAmount converts a stored positive amount to cents, rounding anything
// below one cent up to one cent.
func storedAmount(d decimal.Decimal) (Money, error) {
	if !d.IsPositive() {
		return Money{}, ErrInvalidAmount
	}
	m, err := MoneyFromDecimal(d)
	if err != nil {
		return Money{}, err
	}
	if m.Cents == 0 {
		m.Cents = 1
	}
	return m, nil
}

func freeID(id string, seen map[string]struct{}) string {
	for n := 1; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if _, taken := seen[candidate]; !taken {
			return candidate
		}
	}
}
