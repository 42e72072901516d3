package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"taskreg/internal/common"
	"taskreg/internal/domain/model"
	"taskreg/internal/domain/repository"

	"github.com/google/uuid"
)

type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	typeRepo repository.TaskTypeRepository
	logRepo  repository.TaskLogRepository

	clock func() time.Time
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	typeRepo repository.TaskTypeRepository,
	logRepo repository.TaskLogRepository,
) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		typeRepo: typeRepo,
		logRepo:  logRepo,
		clock:    time.Now,
	}
}

type ListTasksRequest struct {
	Filter    string // "completed", "in-progress" or empty
	UserID    *int64
	TypeID    *int64
	Completed *bool
}

type TaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	EndDate     string `json:"end_date"`
	UserID      int64  `json:"user_id"`
	TypeID      *int64 `json:"type_id"`
	Completed   bool   `json:"completed"`
}

// List returns the tasks visible to the caller. The role-based scope is
// applied first; every caller-supplied filter narrows within it. A regular
// user filtering on someone else's user_id gets the intersection (usually
// empty), not an error — the scope always wins silently.
func (s *TaskService) List(ctx context.Context, identity model.Identity, req ListTasksRequest) ([]model.Task, error) {
	filter := repository.TaskFilter{
		UserID:    req.UserID,
		TypeID:    req.TypeID,
		Completed: req.Completed,
		Scope:     VisibilityScope(identity),
	}

	switch req.Filter {
	case "completed":
		completed := true
		filter.Completed = &completed
	case "in-progress":
		completed := false
		filter.Completed = &completed
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get fetches one task. A row outside the caller's scope reports
// common.ErrNotFound, indistinguishable from a missing id.
func (s *TaskService) Get(ctx context.Context, identity model.Identity, id int64) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanMutateTask(identity, task) {
		return nil, common.ErrNotFound
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, identity model.Identity, req TaskRequest) (*model.Task, error) {
	endDate, err := s.validateTaskRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		Name:        req.Name,
		Description: req.Description,
		EndDate:     endDate,
		Completed:   req.Completed,
		UserID:      req.UserID,
		TypeID:      req.TypeID,
		CreatedBy:   identity.ID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logOperation(ctx, task.ID, identity.ID, model.TaskLogCreate, nil, task)
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, identity model.Identity, id int64, req TaskRequest) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanMutateTask(identity, task) {
		return nil, common.ErrNotFound
	}

	endDate, err := s.validateTaskRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	old := *task
	task.Name = req.Name
	task.Description = req.Description
	task.EndDate = endDate
	task.Completed = req.Completed
	task.UserID = req.UserID
	task.TypeID = req.TypeID

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logOperation(ctx, task.ID, identity.ID, model.TaskLogUpdate, &old, task)
	return task, nil
}

// Delete removes a task. Completed tasks cannot be deleted by anyone,
// ownership notwithstanding.
func (s *TaskService) Delete(ctx context.Context, identity model.Identity, id int64) error {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanMutateTask(identity, task) {
		return common.ErrNotFound
	}
	if task.Completed {
		return common.ErrTaskCompleted
	}

	s.logOperation(ctx, task.ID, identity.ID, model.TaskLogDelete, task, nil)

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// validateTaskRequest checks field rules and that the referenced assignee is
// an active user and the type, when given, exists.
func (s *TaskService) validateTaskRequest(ctx context.Context, req TaskRequest) (time.Time, error) {
	if err := validateName(req.Name); err != nil {
		return time.Time{}, err
	}
	if err := validateDescription(req.Description); err != nil {
		return time.Time{}, err
	}
	endDate, err := parseEndDate(req.EndDate, s.clock())
	if err != nil {
		return time.Time{}, err
	}
	if req.UserID < 1 {
		return time.Time{}, validationError("user_id must be a positive number")
	}

	if _, err := s.userRepo.FindActiveByID(ctx, req.UserID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return time.Time{}, fmt.Errorf("assigned user not found or inactive: %w", common.ErrBadRequest)
		}
		return time.Time{}, fmt.Errorf("failed to check assigned user: %w", err)
	}
	if req.TypeID != nil {
		if _, err := s.typeRepo.FindByID(ctx, *req.TypeID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return time.Time{}, fmt.Errorf("task type not found: %w", common.ErrBadRequest)
			}
			return time.Time{}, fmt.Errorf("failed to check task type: %w", err)
		}
	}
	return endDate, nil
}

// logOperation appends an audit entry. Failures are logged and swallowed so
// an audit outage never fails the mutation itself.
func (s *TaskService) logOperation(ctx context.Context, taskID, actorID int64, action string, oldTask, newTask *model.Task) {
	entry := &model.TaskLog{
		ID:     uuid.NewString(),
		TaskID: taskID,
		UserID: actorID,
		Action: action,
	}
	if oldTask != nil {
		if data, err := json.Marshal(oldTask); err == nil {
			entry.OldValues = data
		}
	}
	if newTask != nil {
		if data, err := json.Marshal(newTask); err == nil {
			entry.NewValues = data
		}
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		log.Printf("failed to append task log for task %d: %v", taskID, err)
	}
}
