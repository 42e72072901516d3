package model

import (
	"encoding/json"
	"time"
)

const (
	TaskLogCreate = "CREATE"
	TaskLogUpdate = "UPDATE"
	TaskLogDelete = "DELETE"
)

// TaskLog is an append-only record of a task mutation. OldValues/NewValues
// are JSON snapshots of the task before and after the operation.
type TaskLog struct {
	ID        string          `json:"id"`
	TaskID    int64           `json:"task_id"`
	UserID    int64           `json:"user_id"`
	Action    string          `json:"action"`
	OldValues json.RawMessage `json:"old_values,omitempty"`
	NewValues json.RawMessage `json:"new_values,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
