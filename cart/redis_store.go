package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists carts under "ace-store-cart:<sessionID>". Carts carry
// no TTL: an abandoned cart survives until its session returns or checks out.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	data, err := r.client.Get(ctx, storeKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return unmarshalItems(data)
}

func (r *RedisStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	data, err := marshalItems(c)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, storeKey(sessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func storeKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", Namespace, sessionID)
}
