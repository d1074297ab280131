package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultRedisNamespace = "cyclecare"

type RedisKeyValueStore struct {
	client    *redis.Client
	namespace string
}

func OpenRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	options, err := redis.ParseURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func NewRedisKeyValueStore(client *redis.Client, namespace string) *RedisKeyValueStore {
	namespace = strings.Trim(strings.TrimSpace(namespace), ":")
	if namespace == "" {
		namespace = defaultRedisNamespace
	}
	return &RedisKeyValueStore{client: client, namespace: namespace}
}

func (store *RedisKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := store.client.Get(ctx, store.namespacedKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (store *RedisKeyValueStore) Set(ctx context.Context, key string, value string) error {
	return store.client.Set(ctx, store.namespacedKey(key), value, 0).Err()
}

func (store *RedisKeyValueStore) Delete(ctx context.Context, key string) error {
	return store.client.Del(ctx, store.namespacedKey(key)).Err()
}

func (store *RedisKeyValueStore) namespacedKey(key string) string {
	return store.namespace + ":" + key
}
