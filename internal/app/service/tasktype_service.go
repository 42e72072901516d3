package service

import (
	"context"
	"fmt"

	"taskreg/internal/common"
	"taskreg/internal/domain/model"
	"taskreg/internal/domain/repository"

	"github.com/gosimple/slug"
)

type TaskTypeService struct {
	typeRepo repository.TaskTypeRepository
	taskRepo repository.TaskRepository
}

func NewTaskTypeService(typeRepo repository.TaskTypeRepository, taskRepo repository.TaskRepository) *TaskTypeService {
	return &TaskTypeService{typeRepo: typeRepo, taskRepo: taskRepo}
}

func (s *TaskTypeService) List(ctx context.Context) ([]model.TaskType, error) {
	types, err := s.typeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list task types: %w", err)
	}
	return types, nil
}

func (s *TaskTypeService) Get(ctx context.Context, id int64) (*model.TaskType, error) {
	return s.typeRepo.FindByID(ctx, id)
}

// Create enforces case-insensitive name uniqueness through the slugged form:
// "Bug Fix" and "bug fix" normalize to the same slug and collide.
func (s *TaskTypeService) Create(ctx context.Context, name string) (*model.TaskType, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	taskType := &model.TaskType{Name: name, Slug: slug.Make(name)}
	taken, err := s.typeRepo.SlugTaken(ctx, taskType.Slug, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check task type name: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("task type with given name already exists: %w", common.ErrConflict)
	}

	if err := s.typeRepo.Create(ctx, taskType); err != nil {
		return nil, fmt.Errorf("failed to create task type: %w", err)
	}
	return taskType, nil
}

func (s *TaskTypeService) Update(ctx context.Context, id int64, name string) (*model.TaskType, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	taskType, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newSlug := slug.Make(name)
	taken, err := s.typeRepo.SlugTaken(ctx, newSlug, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check task type name: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("task type with given name already exists: %w", common.ErrConflict)
	}

	taskType.Name = name
	taskType.Slug = newSlug
	if err := s.typeRepo.Update(ctx, taskType); err != nil {
		return nil, fmt.Errorf("failed to update task type: %w", err)
	}
	return taskType, nil
}

// Delete refuses while any task still references the type.
func (s *TaskTypeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.typeRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.taskRepo.CountByType(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count tasks for type: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("task type is referenced by %d task(s): %w", count, common.ErrConflict)
	}

	if err := s.typeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task type: %w", err)
	}
	return nil
}
