package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskreg/internal/common"
	"taskreg/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type TaskTypeRepository interface {
	List(ctx context.Context) ([]model.TaskType, error)
	FindByID(ctx context.Context, id int64) (*model.TaskType, error)
	Create(ctx context.Context, taskType *model.TaskType) error
	Update(ctx context.Context, taskType *model.TaskType) error
	Delete(ctx context.Context, id int64) error
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)
}

type pgTaskTypeRepository struct {
	db *sql.DB
}

func NewPgTaskTypeRepository(db *sql.DB) TaskTypeRepository {
	return &pgTaskTypeRepository{db: db}
}

func (r *pgTaskTypeRepository) List(ctx context.Context) ([]model.TaskType, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM task_types ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgTaskTypeRepository.List: %w", err)
	}
	defer rows.Close()

	types := []model.TaskType{}
	for rows.Next() {
		var t model.TaskType
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgTaskTypeRepository.List: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *pgTaskTypeRepository) FindByID(ctx context.Context, id int64) (*model.TaskType, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM task_types WHERE id = $1`
	t := &model.TaskType{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTaskTypeRepository.FindByID: %w", err)
	}
	return t, nil
}

func (r *pgTaskTypeRepository) Create(ctx context.Context, taskType *model.TaskType) error {
	query := `INSERT INTO task_types (name, slug)
	          VALUES ($1, $2)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, taskType.Name, taskType.Slug).
		Scan(&taskType.ID, &taskType.CreatedAt, &taskType.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("task type with given name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTaskTypeRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTaskTypeRepository) Update(ctx context.Context, taskType *model.TaskType) error {
	query := `UPDATE task_types
	          SET name = $1, slug = $2, updated_at = NOW()
	          WHERE id = $3
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, taskType.Name, taskType.Slug, taskType.ID).
		Scan(&taskType.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("task type with given name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgTaskTypeRepository.Update: %w", err)
	}
	return nil
}

func (r *pgTaskTypeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM task_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgTaskTypeRepository.Delete: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgTaskTypeRepository) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM task_types WHERE slug = $1 AND id <> $2)`
	var taken bool
	if err := r.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("pgTaskTypeRepository.SlugTaken: %w", err)
	}
	return taken, nil
}
