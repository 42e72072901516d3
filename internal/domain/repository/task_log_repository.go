package repository

import (
	"context"
	"database/sql"
	"fmt"

	"taskreg/internal/domain/model"
)

// TaskLogRepository is append-only; log rows are never updated or deleted.
type TaskLogRepository interface {
	Append(ctx context.Context, entry *model.TaskLog) error
}

type pgTaskLogRepository struct {
	db *sql.DB
}

func NewPgTaskLogRepository(db *sql.DB) TaskLogRepository {
	return &pgTaskLogRepository{db: db}
}

func (r *pgTaskLogRepository) Append(ctx context.Context, entry *model.TaskLog) error {
	query := `INSERT INTO task_logs (id, task_id, user_id, action, old_values, new_values)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.TaskID, entry.UserID, entry.Action,
		[]byte(entry.OldValues), []byte(entry.NewValues),
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgTaskLogRepository.Append: %w", err)
	}
	return nil
}
