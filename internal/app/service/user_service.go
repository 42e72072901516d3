package service

import (
	"context"
	"fmt"

	"taskreg/internal/common"
	"taskreg/internal/common/security"
	"taskreg/internal/domain/model"
	"taskreg/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository

	bcryptCost      int
	defaultPassword string
}

func NewUserService(userRepo repository.UserRepository, taskRepo repository.TaskRepository, bcryptCost int, defaultPassword string) *UserService {
	return &UserService{
		userRepo:        userRepo,
		taskRepo:        taskRepo,
		bcryptCost:      bcryptCost,
		defaultPassword: defaultPassword,
	}
}

type UserRequest struct {
	Name     string     `json:"name"`
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
	Active   bool       `json:"active"`
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) ListActive(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// Create registers an account. When no password is supplied the configured
// default is hashed in, matching the original provisioning flow.
func (s *UserService) Create(ctx context.Context, req UserRequest) (*model.User, error) {
	if err := s.validateUserRequest(req); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.UsernameTaken(ctx, req.Username, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("user with given username already exists: %w", common.ErrConflict)
	}

	password := req.Password
	if password == "" {
		password = s.defaultPassword
	}
	digest, err := security.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:           req.Name,
		Username:       req.Username,
		PasswordDigest: digest,
		Active:         req.Active,
		Role:           req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Update rewrites the account fields. The digest is replaced only when a new
// password arrives; an empty password leaves the stored one untouched.
func (s *UserService) Update(ctx context.Context, id int64, req UserRequest) (*model.User, error) {
	if err := s.validateUserRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.userRepo.UsernameTaken(ctx, req.Username, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("user with given username already exists: %w", common.ErrConflict)
	}

	user.Name = req.Name
	user.Username = req.Username
	user.Role = req.Role
	user.Active = req.Active
	if req.Password != "" {
		digest, err := security.HashPassword(req.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordDigest = digest
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete refuses to remove the caller's own account and any account that
// still owns or created tasks.
func (s *UserService) Delete(ctx context.Context, actor model.Identity, id int64) error {
	if actor.ID == id {
		return fmt.Errorf("cannot delete your own account: %w", common.ErrBadRequest)
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.taskRepo.CountForUser(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count tasks for user: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("user has %d associated task(s): %w", count, common.ErrConflict)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *UserService) validateUserRequest(req UserRequest) error {
	if err := validateName(req.Name); err != nil {
		return err
	}
	if err := validateUsername(req.Username); err != nil {
		return err
	}
	return validateRole(req.Role)
}
