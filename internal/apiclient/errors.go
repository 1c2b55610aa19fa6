package apiclient

import (
	"errors"
	"fmt"
)

// ErrSessionExpired 表示 token 已过期或无效，本地会话已被清除，调用方应跳转到登录页
var ErrSessionExpired = errors.New("session expired or invalid")

// BusinessError 是业务层面的失败，对应响应体中非 0 的 code
type BusinessError struct {
	Code    int
	Message string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("business error %d: %s", e.Code, e.Message)
}

// StatusError 是 HTTP 层面的失败
type StatusError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}
