package core

import (
	"errors"
	"testing"
)

func validInput() CreateInput {
	return CreateInput{
		Description: "coffee",
		Amount:      4.5,
		Category:    "food",
		Date:        "2024-01-01",
	}
}

func TestCreateInputValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*CreateInput)
		field   string
	}{
		{"missing description", func(in *CreateInput) { in.Description = "" }, "description"},
		{"blank description", func(in *CreateInput) { in.Description = "   " }, "description"},
		{"zero amount", func(in *CreateInput) { in.Amount = 0 }, "amount"},
		{"missing category", func(in *CreateInput) { in.Category = "" }, "category"},
		{"missing date", func(in *CreateInput) { in.Date = "" }, "date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := in.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}

	if err := validInput().Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestNewExpenseAssignsIdentity(t *testing.T) {
	in := validInput()
	a, err := NewExpense(in)
	if err != nil {
		t.Fatalf("NewExpense: %v", err)
	}
	b, err := NewExpense(in)
	if err != nil {
		t.Fatalf("NewExpense: %v", err)
	}

	if a.ID == "" || b.ID == "" {
		t.Fatalf("expected generated ids, got %q and %q", a.ID, b.ID)
	}
	if a.ID == b.ID {
		t.Fatalf("ids must be unique, both were %q", a.ID)
	}
	if len(a.Timestamp) != len(TimestampLayout) {
		t.Fatalf("timestamp %q is not fixed-width %q", a.Timestamp, TimestampLayout)
	}
	// Later creates must never sort before earlier ones.
	if b.Timestamp < a.Timestamp {
		t.Fatalf("timestamps not monotone: %q then %q", a.Timestamp, b.Timestamp)
	}
	if a.IsReimbursement || a.ReimbursementAmount != 0 {
		t.Fatalf("optional fields must default to false/0, got %v/%v", a.IsReimbursement, a.ReimbursementAmount)
	}
}

func TestRowRoundTrip(t *testing.T) {
	exp, err := NewExpense(CreateInput{
		Description:         "train ticket",
		Amount:              12.3,
		Category:            "travel",
		Date:                "2024-02-29",
		IsReimbursement:     true,
		ReimbursementAmount: 12.3,
	})
	if err != nil {
		t.Fatalf("NewExpense: %v", err)
	}

	row := exp.Row()
	if len(row) != len(Header()) {
		t.Fatalf("row width %d, header width %d", len(row), len(Header()))
	}

	got, err := ExpenseFromRow(row)
	if err != nil {
		t.Fatalf("ExpenseFromRow: %v", err)
	}
	if got != exp {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, exp)
	}
}

func TestExpenseFromRowCoercion(t *testing.T) {
	row := []string{"id-1", "lunch", "9,90", "food", "2024-01-02", "TRUE", "", "2024-01-02T12:00:00.000000"}
	got, err := ExpenseFromRow(row)
	if err != nil {
		t.Fatalf("ExpenseFromRow: %v", err)
	}
	if got.Amount != 9.9 {
		t.Fatalf("decimal comma not coerced, amount=%v", got.Amount)
	}
	if !got.IsReimbursement {
		t.Fatalf("expected TRUE coerced to true")
	}
	if got.ReimbursementAmount != 0 {
		t.Fatalf("empty cell must coerce to 0, got %v", got.ReimbursementAmount)
	}

	// Short rows pad with empty cells instead of failing.
	short, err := ExpenseFromRow([]string{"id-2", "snack", "1.5", "food", "2024-01-03"})
	if err != nil {
		t.Fatalf("short row: %v", err)
	}
	if short.IsReimbursement || short.Timestamp != "" {
		t.Fatalf("unexpected padding result: %+v", short)
	}

	if _, err := ExpenseFromRow([]string{"id-3", "bad", "not-a-number", "x", "y", "false", "0", "z"}); err == nil {
		t.Fatalf("expected coercion error for non-numeric amount")
	}
}

func TestHeaderContract(t *testing.T) {
	want := []string{"id", "description", "amount", "category", "date", "isReimbursement", "reimbursementAmount", "timestamp"}
	got := Header()
	if len(got) != len(want) {
		t.Fatalf("header width %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("header[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
