// Package table defines the port to the tabular backing store.
package table

import "context"

// Table is the whole-table view the gateway works against. There is no
// per-row granularity: every operation touches the full table.
type Table interface {
	// ReadAll returns every data row below the header, in physical order.
	ReadAll(ctx context.Context) ([][]string, error)

	// ReplaceAll clears the table and rewrites the header row plus the
	// given data rows. The write is not atomic: a failure mid-write can
	// leave the table header-only or with partial content. Implementations
	// must surface such failures, never mask them.
	ReplaceAll(ctx context.Context, header []string, rows [][]string) error
}
