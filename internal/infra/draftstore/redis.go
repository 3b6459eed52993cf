package draftstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"testdrive-hub/internal/infra"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// ConnectRedis opens a client and verifies it with PING.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to store draft", err, infra.KindDBFailure)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, infra.WrapRepoErr("draft not found", err, infra.KindNotFound)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read draft", err, infra.KindDBFailure)
	}
	return data, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return infra.WrapRepoErr("failed to delete draft", err, infra.KindDBFailure)
	}
	return nil
}
