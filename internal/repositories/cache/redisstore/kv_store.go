package redisstore

import (
	"context"
	"errors"
	"fmt"

	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// Options configures the Redis connection.
type Options struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// KVStore stores every key as a plain Redis string.
type KVStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

var (
	_ portsrepo.KeyValueStore = (*KVStore)(nil)
	_ portsrepo.BatchWriter   = (*KVStore)(nil)
	_ portsrepo.Closer        = (*KVStore)(nil)
)

// NewKVStore connects to Redis and pings it.
func NewKVStore(ctx context.Context, opts Options) (*KVStore, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &KVStore{client: client, keyPrefix: opts.KeyPrefix}, nil
}

// NewKVStoreWithClient wraps an existing client.
func NewKVStoreWithClient(client redis.UniversalClient, keyPrefix string) *KVStore {
	return &KVStore{client: client, keyPrefix: keyPrefix}
}

func (s *KVStore) key(k string) string {
	return s.keyPrefix + k
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// SetMany writes all entries inside MULTI/EXEC.
func (s *KVStore) SetMany(ctx context.Context, entries map[string]string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range entries {
			pipe.Set(ctx, s.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis multi set: %w", err)
	}
	return nil
}

func (s *KVStore) Close() error {
	return s.client.Close()
}
