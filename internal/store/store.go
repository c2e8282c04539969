// Package store implements the expense store gateway: list, create and
// delete over a whole-table backing store.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"expenses/internal/core"
	"expenses/internal/table"
)

var (
	// ErrStoreRead marks a failed or unparsable full-table read. It is
	// always propagated, never degraded to an empty result.
	ErrStoreRead = errors.New("store read failed")

	// ErrStoreWrite marks a failed whole-table write. The in-flight record
	// is lost: there is no rollback and no retry.
	ErrStoreWrite = errors.New("store write failed")
)

// EventPublisher receives expense lifecycle notifications. Publishing is
// fire-and-forget: failures are logged, never surfaced to the caller.
type EventPublisher interface {
	ExpenseCreated(ctx context.Context, id string) error
	ExpenseDeleted(ctx context.Context, id string) error
}

// Store mediates between request handlers and the backing table. The mutex
// serializes the read-modify-write cycle so concurrent requests within this
// process cannot silently discard each other's writes. Writers outside the
// process still race last-write-wins on the whole table.
type Store struct {
	mu     sync.Mutex
	table  table.Table
	events EventPublisher
}

func New(t table.Table, events EventPublisher) *Store {
	return &Store{table: t, events: events}
}

// List reads every row, coerces cell types and returns the collection sorted
// by timestamp descending. Ties keep store order.
func (s *Store) List(ctx context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Create validates the input, assigns identity, prepends the record to the
// current collection and persists the whole table.
func (s *Store) Create(ctx context.Context, in core.CreateInput) (core.Expense, error) {
	exp, err := core.NewExpense(in)
	if err != nil {
		return core.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return core.Expense{}, err
	}

	all := make([]core.Expense, 0, len(current)+1)
	all = append(all, exp)
	all = append(all, current...)

	if err := s.save(ctx, all); err != nil {
		return core.Expense{}, err
	}

	s.publish(ctx, func(ctx context.Context) error { return s.events.ExpenseCreated(ctx, exp.ID) },
		"created", exp.ID)
	return exp, nil
}

// Delete removes every record matching id and persists the filtered table.
// A non-existent id is a no-op success.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]core.Expense, 0, len(current))
	for _, e := range current {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	if err := s.save(ctx, kept); err != nil {
		return err
	}

	s.publish(ctx, func(ctx context.Context) error { return s.events.ExpenseDeleted(ctx, id) },
		"deleted", id)
	return nil
}

func (s *Store) load(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.table.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}

	out := make([]core.Expense, 0, len(rows))
	for i, row := range rows {
		exp, err := core.ExpenseFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrStoreRead, i, err)
		}
		out = append(out, exp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out, nil
}

func (s *Store) save(ctx context.Context, all []core.Expense) error {
	rows := make([][]string, len(all))
	for i, e := range all {
		rows[i] = e.Row()
	}
	if err := s.table.ReplaceAll(ctx, core.Header(), rows); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	return nil
}

func (s *Store) publish(ctx context.Context, fn func(context.Context) error, action, id string) {
	if s.events == nil {
		return
	}
	if err := fn(ctx); err != nil {
		slog.WarnContext(ctx, "Expense event publish failed",
			"action", action,
			"expense_id", id,
			"error", err)
	}
}
