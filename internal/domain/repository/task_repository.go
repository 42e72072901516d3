package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"taskreg/internal/common"
	"taskreg/internal/domain/model"
)

// OwnershipScope restricts a task query to rows the given user is assignee
// or creator of. A nil scope means no row-level restriction.
type OwnershipScope struct {
	UserID int64
}

// TaskFilter carries the caller-supplied filters plus the role-based scope.
// The scope always ANDs with the rest; it is never replaced by them.
type TaskFilter struct {
	Completed *bool
	UserID    *int64
	TypeID    *int64
	Scope     *OwnershipScope
}

type TaskRepository interface {
	List(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	FindByID(ctx context.Context, id int64) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id int64) error
	CountByType(ctx context.Context, typeID int64) (int, error)
	CountForUser(ctx context.Context, userID int64) (int, error)
}

type pgTaskRepository struct {
	db *sql.DB
}

func NewPgTaskRepository(db *sql.DB) TaskRepository {
	return &pgTaskRepository{db: db}
}

const taskSelect = `
	SELECT t.id, t.name, COALESCE(t.description, ''), t.end_date, t.completed,
	       t.user_id, t.type_id, t.created_by, t.created_at, t.updated_at,
	       u.name AS user_name, COALESCE(tt.name, '') AS type_name, c.name AS created_by_name
	FROM tasks t
	INNER JOIN users u ON t.user_id = u.id
	LEFT JOIN task_types tt ON t.type_id = tt.id
	INNER JOIN users c ON t.created_by = c.id`

func scanTask(scanner interface{ Scan(...interface{}) error }, task *model.Task) error {
	return scanner.Scan(
		&task.ID, &task.Name, &task.Description, &task.EndDate, &task.Completed,
		&task.UserID, &task.TypeID, &task.CreatedBy, &task.CreatedAt, &task.UpdatedAt,
		&task.UserName, &task.TypeName, &task.CreatedByName,
	)
}

func (r *pgTaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := taskSelect
	var conditions []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Scope != nil {
		p := arg(filter.Scope.UserID)
		conditions = append(conditions, "(t.user_id = "+p+" OR t.created_by = "+p+")")
	}
	if filter.Completed != nil {
		conditions = append(conditions, "t.completed = "+arg(*filter.Completed))
	}
	if filter.UserID != nil {
		conditions = append(conditions, "t.user_id = "+arg(*filter.UserID))
	}
	if filter.TypeID != nil {
		conditions = append(conditions, "t.type_id = "+arg(*filter.TypeID))
	}

	if len(conditions) > 0 {
		query += "\n\tWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n\tORDER BY t.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgTaskRepository.List: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var task model.Task
		if err := scanTask(rows, &task); err != nil {
			return nil, fmt.Errorf("pgTaskRepository.List: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *pgTaskRepository) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	query := taskSelect + "\n\tWHERE t.id = $1"
	task := &model.Task{}
	if err := scanTask(r.db.QueryRowContext(ctx, query, id), task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTaskRepository.FindByID: %w", err)
	}
	return task, nil
}

func (r *pgTaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `INSERT INTO tasks (name, description, end_date, completed, user_id, type_id, created_by)
	          VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		task.Name, task.Description, task.EndDate, task.Completed,
		task.UserID, task.TypeID, task.CreatedBy,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTaskRepository) Update(ctx context.Context, task *model.Task) error {
	query := `UPDATE tasks
	          SET name = $1, description = NULLIF($2, ''), end_date = $3, completed = $4,
	              user_id = $5, type_id = $6, updated_at = NOW()
	          WHERE id = $7
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		task.Name, task.Description, task.EndDate, task.Completed,
		task.UserID, task.TypeID, task.ID,
	).Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgTaskRepository.Update: %w", err)
	}
	return nil
}

func (r *pgTaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgTaskRepository.Delete: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgTaskRepository) CountByType(ctx context.Context, typeID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE type_id = $1`, typeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgTaskRepository.CountByType: %w", err)
	}
	return count, nil
}

func (r *pgTaskRepository) CountForUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = $1 OR created_by = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgTaskRepository.CountForUser: %w", err)
	}
	return count, nil
}
