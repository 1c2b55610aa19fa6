package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/apiclient"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/notifier"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/session"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("已处理请求", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 这里如果用 slog 的话会很乱
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)

		status := rw.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		h.metrics.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
		h.metrics.RequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

// withSession 把请求 cookie 对应的会话装配到 context 中，
// 没有 cookie 的访客也会分配一个空会话，保证未登录请求照常处理
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sid := h.sessions.SessionID(r)
		if sid == "" {
			newSID, err := session.NewSessionID()
			if err != nil {
				h.internalServerError(w, r, err)
				return
			}
			if err := h.sessions.Issue(w, newSID, ""); err != nil {
				h.internalServerError(w, r, err)
				return
			}
			sid = newSID
		}

		storage := h.newStorage(sid)
		store, err := session.NewStore(ctx, storage, h.sessionTTL())
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		flash := notifier.NewFlash(storage, h.sessionTTL())
		api := apiclient.NewClient(h.config.API.BaseURL, time.Duration(h.config.API.Timeout)*time.Second, store, flash)

		ctx = context.WithValue(ctx, SessionCtxKey, &RequestSession{
			Store: store,
			Flash: flash,
			API:   api,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// guard 在路由到页面之前执行跳转守卫
func (h *Handler) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs := h.session(r)

		defer func() {
			if err := recover(); err != nil {
				slog.Error("路由处理失败", "path", r.URL.Path, "error", err)
				rs.Flash.Error(r.Context(), "页面加载失败")
				h.failResponse(w, r, http.StatusInternalServerError, "页面加载失败")
			}
		}()

		decision := h.routeGuard.Decide(r.Context(), rs.Store, rs.Flash, r.URL.Path)
		if !decision.Allow {
			http.Redirect(w, r, decision.Redirect, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) sessionTTL() time.Duration {
	return time.Duration(h.config.Session.MaxAge) * time.Second
}
