package presenter

import (
	"errors"
	"testing"
)

func TestValidateBudget(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"100", 10000, true},
		{" 250,75 ", 25075, true},
		{"+100", 10000, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"0", 0, false},
		{"-50", 0, false},
	}
	for _, tc := range cases {
		got, err := ValidateBudget(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.cents {
				t.Fatalf("%q: expected %d, got %d (err=%v)", tc.in, tc.cents, got.Cents, err)
			}
		} else if !errors.Is(err, ErrInvalidBudget) {
			t.Fatalf("%q: expected ErrInvalidBudget, got %v", tc.in, err)
		}
	}
}

func TestExpenseInputParse(t *testing.T) {
	cases := []struct {
		name string
		in   ExpenseInput
		want error
	}{
		{"valid", ExpenseInput{Name: " coffee ", Amount: "3.5"}, nil},
		{"plus sign", ExpenseInput{Name: "coffee", Amount: "+3,50"}, nil},
		{"empty name", ExpenseInput{Name: "", Amount: "3"}, ErrMissingFields},
		{"empty amount", ExpenseInput{Name: "coffee", Amount: " "}, ErrMissingFields},
		{"text amount", ExpenseInput{Name: "coffee", Amount: "three"}, ErrInvalidAmount},
		{"zero amount", ExpenseInput{Name: "coffee", Amount: "0"}, ErrInvalidAmount},
		{"negative amount", ExpenseInput{Name: "coffee", Amount: "-3"}, ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			name, amount, err := tc.in.Parse()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if tc.want == nil && (name != "coffee" || amount.Cents != 350) {
				t.Fatalf("unexpected parse result %q %d", name, amount.Cents)
			}
		})
	}
}
