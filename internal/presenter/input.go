package presenter

import (
	"errors"
	"strings"

	"presupuesto/internal/core"
)

var (
	ErrInvalidBudget   = errors.New("please enter a valid budget")
	ErrMissingFields   = errors.New("all fields are required")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrBudgetExhausted = errors.New("the budget is exhausted")
	ErrNoBudget        = errors.New("no budget has been set")
)

// ValidateBudget parses the raw answer to the budget prompt. Empty,
// non-numeric and non-positive answers are rejected with ErrInvalidBudget.
func ValidateBudget(raw string) (core.Money, error) {
	m, err := core.ParseAmount(raw)
	if err != nil {
		return core.Money{}, ErrInvalidBudget
	}
	return m, nil
}

// ExpenseInput is the raw expense form.
type ExpenseInput struct {
	Name   string
	Amount string
}

// Parse validates the form fields. An empty field yields ErrMissingFields;
// a non-numeric or non-positive amount yields ErrInvalidAmount.
func (in ExpenseInput) Parse() (name string, amount core.Money, err error) {
	name = strings.TrimSpace(in.Name)
	rawAmount := strings.TrimSpace(in.Amount)
	if name == "" || rawAmount == "" {
		return "", core.Money{}, ErrMissingFields
	}
	amount, err = core.ParseAmount(rawAmount)
	if err != nil {
		return "", core.Money{}, ErrInvalidAmount
	}
	return name, amount, nil
}
