package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Action is the lifecycle transition an event reports. The record model has
// exactly two: a record appears, a record disappears.
type Action string

const (
	ActionCreated Action = "created"
	ActionDeleted Action = "deleted"
)

// ExpenseEvent is the message published after a successful create or delete.
// It carries only the record id; consumers needing full data read the store.
type ExpenseEvent struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCreatedEvent(id string) *ExpenseEvent {
	return &ExpenseEvent{ID: id, Action: ActionCreated, Timestamp: time.Now()}
}

func NewDeletedEvent(id string) *ExpenseEvent {
	return &ExpenseEvent{ID: id, Action: ActionDeleted, Timestamp: time.Now()}
}

func (e *ExpenseEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event missing expense id")
	}
	switch e.Action {
	case ActionCreated, ActionDeleted:
		return nil
	default:
		return fmt.Errorf("unknown event action %q", e.Action)
	}
}

func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var ev ExpenseEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
