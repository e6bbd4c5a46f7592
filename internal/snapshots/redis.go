package snapshots

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/storefront/pkg/redis"
)

// RedisStore keeps each snapshot as a single string value without expiry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	blob, err := s.client.LoadSnapshot(ctx, key)
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, payload []byte) error {
	return s.client.SaveSnapshot(ctx, key, payload)
}
