package notifier

import (
	"context"
	"log/slog"
)

// Notifier 向用户展示提示消息，对应页面上的消息弹窗
type Notifier interface {
	Success(ctx context.Context, msg string)
	Warning(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// Log 在没有会话可用时把提示降级为日志
type Log struct{}

func (Log) Success(ctx context.Context, msg string) {
	slog.Info("提示", "message", msg)
}

func (Log) Warning(ctx context.Context, msg string) {
	slog.Warn("提示", "message", msg)
}

func (Log) Error(ctx context.Context, msg string) {
	slog.Error("提示", "message", msg)
}
