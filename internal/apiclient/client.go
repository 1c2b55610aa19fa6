package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/domain"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/notifier"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/session"
)

// Client 封装对后端 API 的调用：出站时附加凭证，入站时统一处理业务码和 HTTP 错误，
// 这样各个页面模块不需要各自重复错误处理
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
	notifier   notifier.Notifier
}

func NewClient(baseURL string, timeout time.Duration, store *session.Store, n notifier.Notifier) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		store:    store,
		notifier: n,
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

// Do 发起一次请求并把响应中的 data 解码到 out，out 为 nil 时丢弃 data
func (c *Client) Do(ctx context.Context, method string, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			// 请求尚未发出就失败了
			c.notifier.Error(ctx, "请求失败，请稍后再试")
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		c.notifier.Error(ctx, "请求失败，请稍后再试")
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// 存在 token 时附加凭证，未登录的请求照常发出
	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// 请求已发出但没有收到响应
		c.notifier.Error(ctx, "网络连接失败，请检查网络")
		return err
	}
	defer resp.Body.Close()

	// 响应体不是统一格式时按空响应体处理
	envelope := &domain.Envelope{}
	if err := json.NewDecoder(resp.Body).Decode(envelope); err != nil {
		envelope = &domain.Envelope{}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.handleStatusError(ctx, resp.StatusCode, envelope)
	}

	if envelope.Code != domain.CodeSuccess && envelope.Message != "" {
		c.notifier.Error(ctx, envelope.Message)
		return &BusinessError{Code: envelope.Code, Message: envelope.Message}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) handleStatusError(ctx context.Context, status int, envelope *domain.Envelope) error {
	switch status {
	case http.StatusUnauthorized:
		// 两种情况：1. 登录失败 2. token 过期或无效，通过业务码区分
		if envelope.Code == domain.CodeLoginFailed && envelope.Message != "" {
			c.notifier.Error(ctx, envelope.Message)
		} else {
			// token 过期或无效，清除本地会话，由调用方跳转到登录页
			if err := c.store.Logout(ctx); err != nil {
				slog.Error("无法清除本地会话", "error", err)
			}
			return fmt.Errorf("%w: http %d", ErrSessionExpired, status)
		}
	case http.StatusForbidden:
		c.notifyWithFallback(ctx, envelope.Message, "暂无权限进行此操作")
	case http.StatusNotFound:
		c.notifyWithFallback(ctx, envelope.Message, "请求的资源不存在")
	case http.StatusUnprocessableEntity:
		// 表单校验错误，只展示具体的错误信息
		if envelope.Message != "" {
			c.notifier.Error(ctx, envelope.Message)
		}
	case http.StatusInternalServerError:
		c.notifyWithFallback(ctx, envelope.Message, "服务器错误，请稍后再试")
	default:
		c.notifier.Error(ctx, "网络错误，请稍后再试")
	}

	return &StatusError{StatusCode: status, Code: envelope.Code, Message: envelope.Message}
}

func (c *Client) notifyWithFallback(ctx context.Context, msg string, fallback string) {
	if msg == "" {
		msg = fallback
	}
	c.notifier.Error(ctx, msg)
}
