package apiclient

import (
	"context"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/domain"
)

// LoginResult 是登录成功后后端返回的数据
type LoginResult struct {
	Token    string           `json:"token"`
	UserInfo *domain.UserInfo `json:"userInfo"`
}

func (c *Client) Login(ctx context.Context, username string, password string) (*LoginResult, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	result := &LoginResult{}
	if err := c.Post(ctx, "/auth/login", body, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Profile 获取当前登录用户的信息
func (c *Client) Profile(ctx context.Context) (*domain.UserInfo, error) {
	info := &domain.UserInfo{}
	if err := c.Get(ctx, "/users/profile", info); err != nil {
		return nil, err
	}
	return info, nil
}
