package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/domain"
)

// 持久化存储中的键名
const (
	keyToken    = "token"
	keyUserInfo = "userInfo"
)

// Store 持有当前会话的 token 和用户信息，所有修改都会立刻写回持久化存储
type Store struct {
	storage  Storage
	ttl      time.Duration
	token    string
	userInfo *domain.UserInfo
}

// NewStore 从持久化存储中恢复会话状态
func NewStore(ctx context.Context, storage Storage, ttl time.Duration) (*Store, error) {
	s := &Store{
		storage: storage,
		ttl:     ttl,
	}

	token, err := storage.Get(ctx, keyToken)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	s.token = token

	raw, err := storage.Get(ctx, keyUserInfo)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return s, nil
	}

	info := &domain.UserInfo{}
	if err := json.Unmarshal([]byte(raw), info); err != nil {
		// 存储中的内容无法解析时按没有用户信息处理
		return s, nil
	}
	s.userInfo = info

	return s, nil
}

func (s *Store) Token() string {
	return s.token
}

func (s *Store) UserInfo() *domain.UserInfo {
	return s.userInfo
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	s.token = token
	return s.storage.Set(ctx, keyToken, token, s.ttl)
}

func (s *Store) SetUserInfo(ctx context.Context, info *domain.UserInfo) error {
	s.userInfo = info

	raw, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, keyUserInfo, string(raw), s.ttl)
}

// Logout 清除内存和持久化存储中的 token 与用户信息
func (s *Store) Logout(ctx context.Context) error {
	s.token = ""
	s.userInfo = nil
	return s.storage.Del(ctx, keyToken, keyUserInfo)
}
