package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/domain"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/notifier"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store, *notifier.Recorder) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, err := session.NewStore(context.Background(), session.NewMemoryStorage(), time.Hour)
	require.NoError(t, err)

	recorder := &notifier.Recorder{}
	return NewClient(server.URL, 2*time.Second, store, recorder), store, recorder
}

func TestDoAttachesBearerToken(t *testing.T) {
	var authorization string
	client, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"code":0,"message":"","data":null}`)
	}))

	require.NoError(t, client.Get(context.Background(), "/ping", nil))
	assert.Empty(t, authorization)

	require.NoError(t, store.SetToken(context.Background(), "tok_abc"))
	require.NoError(t, client.Get(context.Background(), "/ping", nil))
	assert.Equal(t, "Bearer tok_abc", authorization)
}

func TestDoDecodesData(t *testing.T) {
	client, _, recorder := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"message":"获取成功","data":{"id":1,"name":"张老师","role":"teacher"}}`)
	}))

	info := &domain.UserInfo{}
	require.NoError(t, client.Get(context.Background(), "/users/profile", info))

	assert.Equal(t, int64(1), info.ID)
	assert.Equal(t, domain.RoleTeacher, info.Role)
	assert.Empty(t, recorder.Messages)
}

func TestDoBusinessError(t *testing.T) {
	client, _, recorder := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":3,"message":"课程不在报名时间内","data":null}`)
	}))

	err := client.Post(context.Background(), "/courses", map[string]string{}, nil)

	var businessErr *BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, 3, businessErr.Code)
	require.Len(t, recorder.Messages, 1)
	assert.Equal(t, "课程不在报名时间内", recorder.Messages[0].Content)
}

func TestDoLoginFailedKeepsSession(t *testing.T) {
	client, store, recorder := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"code":2,"message":"用户名或密码错误","data":null}`)
	}))
	require.NoError(t, store.SetToken(context.Background(), "tok_old"))

	err := client.Post(context.Background(), "/auth/login", map[string]string{}, nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.False(t, errors.Is(err, ErrSessionExpired))
	assert.Equal(t, "tok_old", store.Token())
	require.Len(t, recorder.Messages, 1)
	assert.Equal(t, "用户名或密码错误", recorder.Messages[0].Content)
}

func TestDoSessionExpiredClearsSession(t *testing.T) {
	client, store, recorder := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"code":1,"message":"token 已过期","data":null}`)
	}))
	require.NoError(t, store.SetToken(context.Background(), "tok_old"))
	require.NoError(t, store.SetUserInfo(context.Background(), &domain.UserInfo{ID: 1, Role: domain.RoleTeacher}))

	err := client.Get(context.Background(), "/users/profile", nil)

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, store.Token())
	assert.Nil(t, store.UserInfo())
	// 会话过期由调用方跳转处理，不弹提示
	assert.Empty(t, recorder.Messages)
}

func TestDoStatusErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   []string
	}{
		{
			name:   "403 默认提示",
			status: http.StatusForbidden,
			body:   `{"code":1,"message":"","data":null}`,
			want:   []string{"暂无权限进行此操作"},
		},
		{
			name:   "403 带消息",
			status: http.StatusForbidden,
			body:   `{"code":1,"message":"只有教师可以创建课程","data":null}`,
			want:   []string{"只有教师可以创建课程"},
		},
		{
			name:   "404",
			status: http.StatusNotFound,
			body:   `{"code":1,"message":"","data":null}`,
			want:   []string{"请求的资源不存在"},
		},
		{
			name:   "422 无消息时不提示",
			status: http.StatusUnprocessableEntity,
			body:   `{"code":1,"message":"","data":null}`,
			want:   nil,
		},
		{
			name:   "422 带消息",
			status: http.StatusUnprocessableEntity,
			body:   `{"code":1,"message":"课程名称不能为空","data":null}`,
			want:   []string{"课程名称不能为空"},
		},
		{
			name:   "500",
			status: http.StatusInternalServerError,
			body:   `{"code":1,"message":"","data":null}`,
			want:   []string{"服务器错误，请稍后再试"},
		},
		{
			name:   "其他状态码",
			status: http.StatusTeapot,
			body:   ``,
			want:   []string{"网络错误，请稍后再试"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, recorder := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))

			err := client.Get(context.Background(), "/courses", nil)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.StatusCode)

			var contents []string
			for _, msg := range recorder.Messages {
				contents = append(contents, msg.Content)
			}
			assert.Equal(t, tt.want, contents)
		})
	}
}

func TestDoConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	store, err := session.NewStore(context.Background(), session.NewMemoryStorage(), time.Hour)
	require.NoError(t, err)
	recorder := &notifier.Recorder{}
	client := NewClient(server.URL, time.Second, store, recorder)

	err = client.Get(context.Background(), "/courses", nil)

	require.Error(t, err)
	require.Len(t, recorder.Messages, 1)
	assert.Equal(t, "网络连接失败，请检查网络", recorder.Messages[0].Content)
}

func TestDoInvalidRequest(t *testing.T) {
	client, _, recorder := newTestClient(t, http.NotFoundHandler())

	err := client.Do(context.Background(), "BAD METHOD", "/courses", nil, nil)

	require.Error(t, err)
	require.Len(t, recorder.Messages, 1)
	assert.Equal(t, "请求失败，请稍后再试", recorder.Messages[0].Content)
}
