package locks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only when it still holds our token,
// so an expired lock reacquired by another instance is never released here.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedis creates a Locker backed by Redis SET NX with a TTL, for
// deployments where multiple service instances review the same queue.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) Locker {
	return &redisLocker{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With("system", "locks"),
	}
}

func (r *redisLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	lockKey := r.prefix + key
	token := uuid.New().String()

	ok, err := r.client.SetNX(ctx, lockKey, token, r.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lockKey, err)
	}
	if !ok {
		return nil, ErrHeld
	}

	return func() {
		// Release runs on a fresh context; the caller's context may
		// already be cancelled by the time the pipeline unwinds.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, r.client, []string{lockKey}, token).Err(); err != nil {
			r.logger.Warn("lock release failed", "key", lockKey, "error", err)
		}
	}, nil
}
