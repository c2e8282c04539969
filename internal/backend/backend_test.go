package backend

import (
	"context"
	"path/filepath"
	"testing"

	"expenses/internal/config"
)

func TestNewMemory(t *testing.T) {
	res, err := New(context.Background(), &config.Config{DataBackend: "memory"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if res.Table == nil {
		t.Fatal("Table is nil")
	}
	if err := res.Cleanup(); err != nil {
		t.Errorf("Cleanup() error = %v", err)
	}
}

func TestNewSQLite(t *testing.T) {
	res, err := New(context.Background(), &config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: filepath.Join(t.TempDir(), "expenses.db"),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer res.Cleanup()

	rows, err := res.Table.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("fresh table has %d rows, want 0", len(rows))
	}
}

func TestNewUnknownBackend(t *testing.T) {
	if _, err := New(context.Background(), &config.Config{DataBackend: "postgres"}); err == nil {
		t.Fatal("New() = nil error for unknown backend")
	}
}

func TestNewSheetsWithoutSpreadsheetID(t *testing.T) {
	if _, err := New(context.Background(), &config.Config{DataBackend: "sheets"}); err == nil {
		t.Fatal("New() = nil error for sheets without spreadsheet id")
	}
}
