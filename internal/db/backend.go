package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

var ErrUnknownBackend = errors.New("unknown store backend")

type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// Backend is an opened key-value substrate together with its release hook.
type Backend struct {
	Name  string
	Store KeyValueStore
	close func() error
}

type BackendOptions struct {
	Kind           string
	SQLitePath     string
	RedisURL       string
	RedisNamespace string
}

func OpenBackend(ctx context.Context, options BackendOptions) (*Backend, error) {
	switch strings.ToLower(strings.TrimSpace(options.Kind)) {
	case "", BackendSQLite:
		database, err := OpenSQLite(options.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Name:  BackendSQLite,
			Store: NewKeyValueRepository(database),
			close: func() error { return CloseSQLite(database) },
		}, nil
	case BackendRedis:
		client, err := OpenRedis(ctx, options.RedisURL)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Name:  BackendRedis,
			Store: NewRedisKeyValueStore(client, options.RedisNamespace),
			close: client.Close,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, options.Kind)
	}
}

func (backend *Backend) Close() error {
	if backend == nil || backend.close == nil {
		return nil
	}
	return backend.close()
}
