package blobstore

import (
	"context"
	"time"

	redisclient "github.com/angelmondragon/storefront/pkg/redis"
)

type redisKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	StateKey(namespace, name string) string
}

// RedisStore keeps blobs in Redis so several devices can share one cart.
type RedisStore struct {
	client    redisKV
	namespace string
}

func NewRedisStore(client redisKV, namespace string) *RedisStore {
	return &RedisStore{client: client, namespace: namespace}
}

func (r *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, r.client.StateKey(r.namespace, key))
	if redisclient.IsNil(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(raw), nil
}

func (r *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, r.client.StateKey(r.namespace, key), string(data), 0)
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.client.StateKey(r.namespace, key))
}
