// Package backend selects and builds the table implementation behind the
// store from configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"expenses/internal/config"
	"expenses/internal/table"
	"expenses/internal/table/google"
	"expenses/internal/table/memory"
	"expenses/internal/table/sqlite"
)

type Type string

const (
	Memory Type = "memory"
	Sheets Type = "sheets"
	SQLite Type = "sqlite"
)

// Result bundles the built table with its cleanup function. Cleanup is never
// nil; for backends without resources to release it is a no-op.
type Result struct {
	Table   table.Table
	Cleanup func() error
}

// New builds the table named by cfg.DataBackend.
func New(ctx context.Context, cfg *config.Config) (*Result, error) {
	switch Type(cfg.DataBackend) {
	case Memory:
		slog.InfoContext(ctx, "Using in-memory backend")
		return &Result{
			Table:   memory.New(),
			Cleanup: func() error { return nil },
		}, nil

	case Sheets:
		client, err := google.New(ctx, google.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsJSON: cfg.GoogleCredsJSON,
			CredentialsFile: cfg.GoogleCredsFile,
		})
		if err != nil {
			return nil, fmt.Errorf("create sheets backend: %w", err)
		}
		return &Result{
			Table:   client,
			Cleanup: func() error { return nil },
		}, nil

	case SQLite:
		t, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("create sqlite backend: %w", err)
		}
		slog.InfoContext(ctx, "Using sqlite backend", "path", cfg.SQLiteDBPath)
		return &Result{
			Table:   t,
			Cleanup: t.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.DataBackend)
	}
}
