// Package sqlite keeps the table in a local SQLite file. It mirrors the
// whole-table contract of the spreadsheet adapter: ReplaceAll drops every row
// and reinserts the survivors.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"expenses/internal/table"

	_ "modernc.org/sqlite"
)

type Table struct {
	db *sql.DB
}

var _ table.Table = (*Table)(nil)

func New(dbPath string) (*Table, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Table{db: db}, nil
}

func (t *Table) Close() error {
	if t.db != nil {
		return t.db.Close()
	}
	return nil
}

func (t *Table) ReadAll(ctx context.Context) ([][]string, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, description, amount, category, date, is_reimbursement, reimbursement_amount, created_at
		FROM expense_rows
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select expense rows: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		cells := make([]string, 8)
		dest := make([]any, len(cells))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}
	return out, nil
}

// ReplaceAll rewrites the whole table. Unlike the spreadsheet adapter this
// runs in a transaction, so a failed write rolls back instead of leaving
// partial content.
func (t *Table) ReplaceAll(ctx context.Context, header []string, rows [][]string) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_rows`); err != nil {
		return fmt.Errorf("clear expense rows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO expense_rows (position, id, description, amount, category, date, is_reimbursement, reimbursement_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for pos, row := range rows {
		// The schema is the header; rows are padded to its width.
		cells := make([]string, 8)
		copy(cells, row)
		args := make([]any, 0, len(cells)+1)
		args = append(args, pos)
		for _, c := range cells {
			args = append(args, c)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}
