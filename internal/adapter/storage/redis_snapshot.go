package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "cart:"

// RedisSnapshotStore is the key-value snapshot sink that carries the cart
// across restarts.
type RedisSnapshotStore struct {
	client *redis.Client
}

func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

func (r *RedisSnapshotStore) Save(ctx context.Context, key string, blob []byte) error {
	return r.client.Set(ctx, snapshotKeyPrefix+key, blob, 0).Err()
}

func (r *RedisSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	blob, err := r.client.Get(ctx, snapshotKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}
