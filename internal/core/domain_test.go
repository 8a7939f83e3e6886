package core

import (
	"errors"
	"strings"
	"testing"
)

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -5}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
	if err := (Money{Cents: MaxCents + 1}).Validate(); err == nil {
		t.Fatalf("expected error above MaxCents")
	}
}

func TestNewExpense(t *testing.T) {
	e, err := NewExpense("  rent  ", Money{Cents: 8000})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if e.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if e.Name != "rent" {
		t.Fatalf("expected trimmed name, got %q", e.Name)
	}

	other, _ := NewExpense("rent", Money{Cents: 8000})
	if other.ID == e.ID {
		t.Fatalf("expected distinct ids for back-to-back expenses, both %q", e.ID)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{ID: "1", Name: "ok", Amount: Money{Cents: 100}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		e    Expense
		want error
	}{
		{Expense{ID: "", Name: "a", Amount: Money{Cents: 1}}, ErrEmptyID},
		{Expense{ID: "1", Name: "   ", Amount: Money{Cents: 1}}, ErrEmptyName},
		{Expense{ID: "1", Name: strings.Repeat("x", 201), Amount: Money{Cents: 1}}, ErrNameTooLong},
		{Expense{ID: "1", Name: "a", Amount: Money{Cents: 0}}, ErrInvalidAmount},
	}
	for i, tc := range bads {
		if err := tc.e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}
