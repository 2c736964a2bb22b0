package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "pediacenter:lock:"

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a single instance SET NX lock with an expiry.
type Redis struct {
	client        redis.UniversalClient
	key           string
	ttl           time.Duration
	retryInterval time.Duration
}

func NewRedis(client redis.UniversalClient, key string, ttl time.Duration) *Redis {
	return &Redis{
		client:        client,
		key:           redisKeyPrefix + key,
		ttl:           ttl,
		retryInterval: defaultRetryInterval,
	}
}

func (r *Redis) Acquire(ctx context.Context) (Release, error) {
	token := uuid.NewString()

	err := retry(ctx, r.retryInterval, func() (bool, error) {
		ok, err := r.client.SetNX(ctx, r.key, token, r.ttl).Result()
		if err != nil {
			return false, fmt.Errorf("set lock: %w", err)
		}
		return ok, nil
	})
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		return releaseScript.Run(ctx, r.client, []string{r.key}, token).Err()
	}, nil
}
