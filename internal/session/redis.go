package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage 把会话字段存放在 redis 中，键按会话 ID 做命名空间隔离
type RedisStorage struct {
	client *redis.Client
	sid    string
}

func NewRedisStorage(client *redis.Client, sid string) *RedisStorage {
	return &RedisStorage{
		client: client,
		sid:    sid,
	}
}

func (s *RedisStorage) key(field string) string {
	return fmt.Sprintf("session_%s_%s", s.sid, field)
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (s *RedisStorage) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(key), value, ttl).Err()
}

func (s *RedisStorage) Del(ctx context.Context, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, s.key(k))
	}
	return s.client.Del(ctx, full...).Err()
}
