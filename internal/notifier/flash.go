package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/session"
)

const flashKey = "flash"

// Message 是一条等待展示的提示
type Message struct {
	Level   string `json:"level"`
	Content string `json:"content"`
}

// Flash 把提示追加到会话存储中，由页面通过接口取走后展示
type Flash struct {
	storage session.Storage
	ttl     time.Duration
}

func NewFlash(storage session.Storage, ttl time.Duration) *Flash {
	return &Flash{
		storage: storage,
		ttl:     ttl,
	}
}

func (f *Flash) Success(ctx context.Context, msg string) {
	f.push(ctx, "success", msg)
}

func (f *Flash) Warning(ctx context.Context, msg string) {
	f.push(ctx, "warning", msg)
}

func (f *Flash) Error(ctx context.Context, msg string) {
	f.push(ctx, "error", msg)
}

// Drain 取走并清空当前会话的所有提示
func (f *Flash) Drain(ctx context.Context) ([]Message, error) {
	messages, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return []Message{}, nil
	}

	if err := f.storage.Del(ctx, flashKey); err != nil {
		return nil, err
	}
	return messages, nil
}

func (f *Flash) push(ctx context.Context, level string, content string) {
	messages, err := f.load(ctx)
	if err != nil {
		slog.Error("无法读取待展示的提示", "error", err)
		messages = nil
	}
	messages = append(messages, Message{Level: level, Content: content})

	raw, err := json.Marshal(messages)
	if err != nil {
		slog.Error("无法序列化提示", "error", err)
		return
	}
	if err := f.storage.Set(ctx, flashKey, string(raw), f.ttl); err != nil {
		slog.Error("无法保存提示", "error", err)
	}
}

func (f *Flash) load(ctx context.Context) ([]Message, error) {
	raw, err := f.storage.Get(ctx, flashKey)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var messages []Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
