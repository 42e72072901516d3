package service

import (
	"context"
	"strings"
	"time"

	"taskreg/internal/common"
	"taskreg/internal/domain/model"
	"taskreg/internal/domain/repository"
)

// In-memory repository fakes. Each mirrors what the SQL implementation
// would do closely enough for the service-level behavior under test.

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
	err    error // when set, every call fails with it
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[int64]*model.User{}, nextID: 1}
	for _, u := range users {
		if u.ID >= repo.nextID {
			repo.nextID = u.ID + 1
		}
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if r.err != nil {
		return r.err
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[user.ID]; !ok {
		return common.ErrNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindActiveByID(ctx context.Context, id int64) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.users[id]
	if !ok || !user.Active {
		return nil, common.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindActiveByUsername(ctx context.Context, username string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, user := range r.users {
		if user.Username == username && user.Active {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	users := []model.User{}
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *fakeUserRepo) ListActive(ctx context.Context) ([]model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	users := []model.User{}
	for _, user := range r.users {
		if user.Active {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, user := range r.users {
		if user.ID != excludeID && strings.EqualFold(user.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

type fakeTaskRepo struct {
	tasks      map[int64]*model.Task
	nextID     int64
	lastFilter repository.TaskFilter
	err        error
}

func newFakeTaskRepo(tasks ...*model.Task) *fakeTaskRepo {
	repo := &fakeTaskRepo{tasks: map[int64]*model.Task{}, nextID: 1}
	for _, t := range tasks {
		if t.ID >= repo.nextID {
			repo.nextID = t.ID + 1
		}
		repo.tasks[t.ID] = t
	}
	return repo
}

func (r *fakeTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.lastFilter = filter
	tasks := []model.Task{}
	for _, task := range r.tasks {
		if filter.Scope != nil &&
			task.UserID != filter.Scope.UserID && task.CreatedBy != filter.Scope.UserID {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		if filter.UserID != nil && task.UserID != *filter.UserID {
			continue
		}
		if filter.TypeID != nil && (task.TypeID == nil || *task.TypeID != *filter.TypeID) {
			continue
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func (r *fakeTaskRepo) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	task, ok := r.tasks[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *model.Task) error {
	if r.err != nil {
		return r.err
	}
	task.ID = r.nextID
	r.nextID++
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *model.Task) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.tasks[task.ID]; !ok {
		return common.ErrNotFound
	}
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id int64) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.tasks[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) CountByType(ctx context.Context, typeID int64) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	count := 0
	for _, task := range r.tasks {
		if task.TypeID != nil && *task.TypeID == typeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTaskRepo) CountForUser(ctx context.Context, userID int64) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	count := 0
	for _, task := range r.tasks {
		if task.UserID == userID || task.CreatedBy == userID {
			count++
		}
	}
	return count, nil
}

type fakeTypeRepo struct {
	types  map[int64]*model.TaskType
	nextID int64
	err    error
}

func newFakeTypeRepo(types ...*model.TaskType) *fakeTypeRepo {
	repo := &fakeTypeRepo{types: map[int64]*model.TaskType{}, nextID: 1}
	for _, t := range types {
		if t.ID >= repo.nextID {
			repo.nextID = t.ID + 1
		}
		repo.types[t.ID] = t
	}
	return repo
}

func (r *fakeTypeRepo) List(ctx context.Context) ([]model.TaskType, error) {
	if r.err != nil {
		return nil, r.err
	}
	types := []model.TaskType{}
	for _, t := range r.types {
		types = append(types, *t)
	}
	return types, nil
}

func (r *fakeTypeRepo) FindByID(ctx context.Context, id int64) (*model.TaskType, error) {
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.types[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTypeRepo) Create(ctx context.Context, taskType *model.TaskType) error {
	if r.err != nil {
		return r.err
	}
	taskType.ID = r.nextID
	r.nextID++
	copied := *taskType
	r.types[taskType.ID] = &copied
	return nil
}

func (r *fakeTypeRepo) Update(ctx context.Context, taskType *model.TaskType) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.types[taskType.ID]; !ok {
		return common.ErrNotFound
	}
	copied := *taskType
	r.types[taskType.ID] = &copied
	return nil
}

func (r *fakeTypeRepo) Delete(ctx context.Context, id int64) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.types[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.types, id)
	return nil
}

func (r *fakeTypeRepo) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, t := range r.types {
		if t.ID != excludeID && t.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

type fakeLogRepo struct {
	entries []model.TaskLog
	err     error
}

func (r *fakeLogRepo) Append(ctx context.Context, entry *model.TaskLog) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *entry)
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]int64
	ttls     map[string]time.Duration
	err      error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (r *fakeSessionRepo) Put(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.sessions[token] = userID
	r.ttls[token] = ttl
	return nil
}

func (r *fakeSessionRepo) Get(ctx context.Context, token string) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	userID, ok := r.sessions[token]
	if !ok {
		return 0, common.ErrNotFound
	}
	return userID, nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, token string) error {
	if r.err != nil {
		return r.err
	}
	delete(r.sessions, token)
	return nil
}
