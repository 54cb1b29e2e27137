package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisStorage struct {
	Connection *redis.Client
	prefix     string
}

func NewRedisStorage(ctx context.Context, addr, prefix string) (*RedisStorage, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	_, err := conn.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStorageWithClient(conn, prefix), nil
}

// NewRedisStorageWithClient wraps an already connected client.
func NewRedisStorageWithClient(conn *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{Connection: conn, prefix: prefix}
}

func (that *RedisStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	response, err := that.Connection.Get(ctx, that.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return response, true, nil
}

func (that *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := that.Connection.Set(ctx, that.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

// SetMany writes all values inside one MULTI/EXEC transaction.
func (that *RedisStorage) SetMany(ctx context.Context, values map[string][]byte) error {
	_, err := that.Connection.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range values {
			pipe.Set(ctx, that.prefix+key, value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set values in transaction: %w", err)
	}

	return nil
}

func (that *RedisStorage) Close() error {
	return that.Connection.Close()
}
