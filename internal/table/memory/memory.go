// Package memory holds the table in process memory. It backs local
// development and tests.
package memory

import (
	"context"
	"sync"

	"expenses/internal/table"
)

type Table struct {
	mu     sync.Mutex
	header []string
	rows   [][]string
}

var _ table.Table = (*Table)(nil)

func New() *Table {
	return &Table{}
}

// Seed replaces the current content without going through the port. Test
// helper for pre-populating state.
func (t *Table) Seed(header []string, rows [][]string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.header = copyRow(header)
	t.rows = copyRows(rows)
}

func (t *Table) ReadAll(_ context.Context) ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyRows(t.rows), nil
}

func (t *Table) ReplaceAll(_ context.Context, header []string, rows [][]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.header = copyRow(header)
	t.rows = copyRows(rows)
	return nil
}

// Header returns the last written header row.
func (t *Table) Header() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return copyRow(t.header)
}

func copyRow(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyRows(in [][]string) [][]string {
	out := make([][]string, len(in))
	for i, r := range in {
		out[i] = copyRow(r)
	}
	return out
}
