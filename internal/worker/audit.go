// Package worker holds the audit consumer that records expense lifecycle
// events arriving from the broker.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"expenses/internal/events"
)

// Auditor writes an audit trail entry for every expense event it receives.
type Auditor struct {
	logger *slog.Logger
}

func NewAuditor(logger *slog.Logger) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{logger: logger}
}

// HandleEvent processes one event. Unknown actions are an error so the
// delivery gets rejected instead of silently acked.
func (a *Auditor) HandleEvent(ctx context.Context, ev *events.ExpenseEvent) error {
	switch ev.Action {
	case events.ActionCreated:
		a.logger.InfoContext(ctx, "Audit: expense created",
			"expense_id", ev.ID,
			"occurred_at", ev.Timestamp)
	case events.ActionDeleted:
		a.logger.InfoContext(ctx, "Audit: expense deleted",
			"expense_id", ev.ID,
			"occurred_at", ev.Timestamp)
	default:
		return fmt.Errorf("unknown event action %q", ev.Action)
	}
	return nil
}
