package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session: key not found")

// Storage 是会话数据的持久化后端，键为会话内的字段名
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
