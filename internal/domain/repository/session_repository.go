package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"taskreg/internal/common"

	"github.com/redis/go-redis/v9"
)

// SessionRepository stores bearer tokens. Entries are created and deleted,
// never updated in place; expiry is enforced by the store itself.
type SessionRepository interface {
	Put(ctx context.Context, token string, userID int64, ttl time.Duration) error
	Get(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

type redisSessionRepository struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisSessionRepository(rdb *redis.Client, prefix string) SessionRepository {
	return &redisSessionRepository{rdb: rdb, prefix: prefix}
}

func (r *redisSessionRepository) key(token string) string {
	return r.prefix + token
}

func (r *redisSessionRepository) Put(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	err := r.rdb.Set(ctx, r.key(token), strconv.FormatInt(userID, 10), ttl).Err()
	if err != nil {
		return fmt.Errorf("redisSessionRepository.Put: %w", err)
	}
	return nil
}

// Get returns common.ErrNotFound for tokens that were never issued, were
// destroyed, or whose TTL has lapsed; redis does not distinguish the three.
func (r *redisSessionRepository) Get(ctx context.Context, token string) (int64, error) {
	val, err := r.rdb.Get(ctx, r.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("redisSessionRepository.Get: %w", err)
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redisSessionRepository.Get: corrupt session value: %w", err)
	}
	return userID, nil
}

// Delete is idempotent; removing an absent token is not an error.
func (r *redisSessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.rdb.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("redisSessionRepository.Delete: %w", err)
	}
	return nil
}
