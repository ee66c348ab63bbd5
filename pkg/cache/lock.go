package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only when the caller still holds it, so a
// lock that expired and was re-acquired by another session is never released
// by the original holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is a single-node Redis mutex built on SET NX with a random token.
type Lock struct {
	client *redis.Client
	key    string
	token  string
	ttl    time.Duration
}

// AcquireLock attempts to take the named lock. It returns (nil, false, nil)
// when the lock is already held by someone else.
func (r *RedisCache) AcquireLock(ctx context.Context, name string, ttl time.Duration) (*Lock, bool, error) {
	token := fmt.Sprintf("%d", time.Now().UnixNano())

	ok, err := r.client.SetNX(ctx, name, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", name, err)
	}
	if !ok {
		return nil, false, nil
	}

	return &Lock{
		client: r.client,
		key:    name,
		token:  token,
		ttl:    ttl,
	}, true, nil
}

// Release frees the lock if this holder still owns it.
func (l *Lock) Release(ctx context.Context) error {
	err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	return nil
}
