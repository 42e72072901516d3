package model

import (
	"time"
)

type Task struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	EndDate     time.Time `json:"end_date"`
	Completed   bool      `json:"completed"`
	UserID      int64     `json:"user_id"`
	TypeID      *int64    `json:"type_id,omitempty"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined display fields, populated on reads only.
	UserName      string `json:"user_name,omitempty"`
	TypeName      string `json:"type_name,omitempty"`
	CreatedByName string `json:"created_by_name,omitempty"`
}
