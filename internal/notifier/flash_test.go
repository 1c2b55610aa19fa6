package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/session"
)

func TestFlashPushAndDrain(t *testing.T) {
	ctx := context.Background()
	flash := NewFlash(session.NewMemoryStorage(), time.Hour)

	flash.Warning(ctx, "请先登录")
	flash.Error(ctx, "暂无权限访问该页面")

	messages, err := flash.Drain(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, Message{Level: "warning", Content: "请先登录"}, messages[0])
	assert.Equal(t, Message{Level: "error", Content: "暂无权限访问该页面"}, messages[1])
}

func TestFlashDrainClears(t *testing.T) {
	ctx := context.Background()
	flash := NewFlash(session.NewMemoryStorage(), time.Hour)

	flash.Success(ctx, "登录成功")

	_, err := flash.Drain(ctx)
	require.NoError(t, err)

	messages, err := flash.Drain(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.NotNil(t, messages)
}

func TestFlashDrainEmptySession(t *testing.T) {
	messages, err := NewFlash(session.NewMemoryStorage(), time.Hour).Drain(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}
