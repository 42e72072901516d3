package model

import (
	"time"
)

// TaskType names are unique case-insensitively; Slug is the normalized form
// the uniqueness check runs against.
type TaskType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
