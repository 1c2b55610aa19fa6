package domain

import "encoding/json"

// Envelope 是后端所有响应的统一格式，code 为 0 表示成功，非 0 表示失败
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// 与后端约定的业务码
const (
	CodeSuccess      = 0 // 操作成功
	CodeTokenExpired = 1 // token 过期或无效，通用错误
	CodeLoginFailed  = 2 // 登录失败
)
