package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/apiclient"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/notifier"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/session"
)

type ContextKey string

var SessionCtxKey ContextKey = "session"

// RequestSession 是绑定到单个请求的会话上下文
type RequestSession struct {
	Store *session.Store
	Flash *notifier.Flash
	API   *apiclient.Client
}

func (h *Handler) session(r *http.Request) *RequestSession {
	return r.Context().Value(SessionCtxKey).(*RequestSession)
}
