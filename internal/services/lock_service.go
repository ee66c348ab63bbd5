package services

import (
	"context"
	"time"

	"gocart/pkg/cache"
)

// ReleaseFunc frees a held lock.
type ReleaseFunc func(ctx context.Context) error

// LockService serializes operations that must not run concurrently for the
// same key, such as wheel spins per account.
type LockService interface {
	// Acquire takes the named lock, returning held=false when another
	// session already holds it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (release ReleaseFunc, held bool, err error)
}

type redisLockService struct {
	cache *cache.RedisCache
}

func NewRedisLockService(redisCache *cache.RedisCache) LockService {
	return &redisLockService{cache: redisCache}
}

func (s *redisLockService) Acquire(ctx context.Context, name string, ttl time.Duration) (ReleaseFunc, bool, error) {
	lock, held, err := s.cache.AcquireLock(ctx, name, ttl)
	if err != nil || !held {
		return nil, held, err
	}
	return lock.Release, true, nil
}
