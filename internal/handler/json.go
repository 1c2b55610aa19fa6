package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/apiclient"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/domain"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("服务器内部错误", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "服务器内部错误", http.StatusInternalServerError)
	}
}

// Response 与后端使用同一种信封格式，code 为 0 表示成功
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Code:    domain.CodeSuccess,
		Message: msg,
		Data:    data,
	})
}

// failResponse 返回由本服务产生的业务失败，业务码用通用错误码
func (h *Handler) failResponse(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, Response{
		Code:    domain.CodeTokenExpired,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.failResponse(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.failResponse(w, r, http.StatusUnprocessableEntity, validationErrors[0].Translate(h.translator))
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Code:    domain.CodeTokenExpired,
		Message: "服务器内部错误",
		Data:    nil,
	})
}

// apiError 把请求管线返回的错误转换成给浏览器的响应，会话失效时强制跳转到登录页
func (h *Handler) apiError(w http.ResponseWriter, r *http.Request, err error) {
	var businessErr *apiclient.BusinessError
	var statusErr *apiclient.StatusError

	switch {
	case errors.Is(err, apiclient.ErrSessionExpired):
		h.sessions.Clear(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.As(err, &businessErr):
		h.writeJSON(w, r, http.StatusOK, Response{
			Code:    businessErr.Code,
			Message: businessErr.Message,
			Data:    nil,
		})
	case errors.As(err, &statusErr):
		h.writeJSON(w, r, statusErr.StatusCode, Response{
			Code:    statusErr.Code,
			Message: statusErr.Message,
			Data:    nil,
		})
	default:
		h.internalServerError(w, r, err)
	}
}
