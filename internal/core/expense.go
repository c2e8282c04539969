package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is fixed-width so that lexical order equals chronological
// order. List ordering depends on this.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Header is the exact column order of the backing table. The whole-table
// write rewrites this row first.
func Header() []string {
	return []string{
		"id",
		"description",
		"amount",
		"category",
		"date",
		"isReimbursement",
		"reimbursementAmount",
		"timestamp",
	}
}

type (
	// Expense is the only entity of the system. It is created once, never
	// mutated, and eventually removed from the collection.
	Expense struct {
		ID                  string  `json:"id"`
		Description         string  `json:"description"`
		Amount              float64 `json:"amount"`
		Category            string  `json:"category"`
		Date                string  `json:"date"`
		IsReimbursement     bool    `json:"isReimbursement"`
		ReimbursementAmount float64 `json:"reimbursementAmount"`
		Timestamp           string  `json:"timestamp"`
	}

	// CreateInput carries the caller-supplied fields of a new expense.
	// ID and Timestamp are always assigned server-side.
	CreateInput struct {
		Description         string  `json:"description"`
		Amount              float64 `json:"amount"`
		Category            string  `json:"category"`
		Date                string  `json:"date"`
		IsReimbursement     bool    `json:"isReimbursement"`
		ReimbursementAmount float64 `json:"reimbursementAmount"`
	}
)

// ValidationError reports a required create field that is missing or empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "Missing " + e.Field
}

// Validate checks the required create fields. A zero amount counts as
// missing, matching the falsy-check contract of the API.
func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return &ValidationError{Field: "description"}
	}
	if in.Amount == 0 {
		return &ValidationError{Field: "amount"}
	}
	if strings.TrimSpace(in.Category) == "" {
		return &ValidationError{Field: "category"}
	}
	if strings.TrimSpace(in.Date) == "" {
		return &ValidationError{Field: "date"}
	}
	return nil
}

// NewExpense validates the input and builds a record with a fresh unique ID
// and the current instant as its creation timestamp.
func NewExpense(in CreateInput) (Expense, error) {
	if err := in.Validate(); err != nil {
		return Expense{}, err
	}
	return Expense{
		ID:                  uuid.NewString(),
		Description:         in.Description,
		Amount:              in.Amount,
		Category:            in.Category,
		Date:                in.Date,
		IsReimbursement:     in.IsReimbursement,
		ReimbursementAmount: in.ReimbursementAmount,
		Timestamp:           time.Now().UTC().Format(TimestampLayout),
	}, nil
}

// Row serializes the expense into text cells in Header order. The backing
// store is text-only; numeric and boolean fields are written as strings.
func (e Expense) Row() []string {
	return []string{
		e.ID,
		e.Description,
		formatAmount(e.Amount),
		e.Category,
		e.Date,
		strconv.FormatBool(e.IsReimbursement),
		formatAmount(e.ReimbursementAmount),
		e.Timestamp,
	}
}

// ExpenseFromRow coerces a row of text cells back into a typed record.
// Rows shorter than the header are padded with empty cells; a cell that
// cannot be coerced fails the whole read.
func ExpenseFromRow(cells []string) (Expense, error) {
	row := make([]string, len(Header()))
	copy(row, cells)

	amount, err := parseAmount(row[2])
	if err != nil {
		return Expense{}, fmt.Errorf("coerce amount %q: %w", row[2], err)
	}
	reimb, err := parseAmount(row[6])
	if err != nil {
		return Expense{}, fmt.Errorf("coerce reimbursementAmount %q: %w", row[6], err)
	}

	return Expense{
		ID:                  row[0],
		Description:         row[1],
		Amount:              amount,
		Category:            row[3],
		Date:                row[4],
		IsReimbursement:     parseBool(row[5]),
		ReimbursementAmount: reimb,
		Timestamp:           row[7],
	}, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	// Spreadsheet locales may render a decimal comma.
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no":
		return false
	}
	return true
}
