package worker

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"expenses/internal/events"
)

func TestHandleEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   *events.ExpenseEvent
		wantErr bool
		wantLog string
	}{
		{
			name:    "created event",
			event:   &events.ExpenseEvent{ID: "abc", Action: events.ActionCreated, Timestamp: time.Now()},
			wantLog: "expense created",
		},
		{
			name:    "deleted event",
			event:   &events.ExpenseEvent{ID: "abc", Action: events.ActionDeleted, Timestamp: time.Now()},
			wantLog: "expense deleted",
		},
		{
			name:    "unknown action",
			event:   &events.ExpenseEvent{ID: "abc", Action: "renamed", Timestamp: time.Now()},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			auditor := NewAuditor(slog.New(slog.NewTextHandler(&buf, nil)))

			err := auditor.HandleEvent(context.Background(), tt.event)
			if tt.wantErr {
				if err == nil {
					t.Fatal("HandleEvent() = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("HandleEvent() error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", buf.String(), tt.wantLog)
			}
		})
	}
}

func TestNewAuditorDefaultsLogger(t *testing.T) {
	a := NewAuditor(nil)
	if a.logger == nil {
		t.Fatal("logger is nil")
	}
}
