package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const maxNameLength = 200

type (
	Money struct {
		Cents int64
	}

	// Expense is a single recorded outflow. Expenses are never edited in
	// place; the ledger only appends and removes them.
	Expense struct {
		ID     string
		Name   string
		Amount Money
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidTotal  = errors.New("invalid total")
	ErrEmptyName     = errors.New("empty name")
	ErrNameTooLong   = fmt.Errorf("name too long (max %d characters)", maxNameLength)
	ErrEmptyID       = errors.New("empty expense id")
	ErrDuplicateID   = errors.New("duplicate expense id")
	ErrCorruptRecord = errors.New("corrupt ledger record")
)

func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > MaxCents {
		return ErrInvalidAmount
	}
	return nil
}

// NewExpense builds a validated expense with a fresh random identifier.
func NewExpense(name string, amount Money) (Expense, error) {
	e := Expense{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(name),
		Amount: amount,
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyID
	}
	if len(strings.TrimSpace(e.Name)) == 0 {
		return ErrEmptyName
	}
	if len(e.Name) > maxNameLength {
		return ErrNameTooLong
	}
	return e.Amount.Validate()
}
