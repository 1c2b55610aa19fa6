package handler

import (
	"net/http"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rs := h.session(r)

	result, err := rs.API.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	if err := rs.Store.SetToken(r.Context(), result.Token); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if result.UserInfo != nil {
		if err := rs.Store.SetUserInfo(r.Context(), result.UserInfo); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	// 重新签发 cookie，使会话有效期与后端 token 对齐
	sid := h.sessions.SessionID(r)
	if sid != "" {
		if err := h.sessions.Issue(w, sid, result.Token); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "登录成功", result.UserInfo)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	rs := h.session(r)

	if err := rs.Store.Logout(r.Context()); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	h.sessions.Clear(w)

	h.successResponse(w, r, "登出成功", nil)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	rs := h.session(r)

	if rs.Store.Token() == "" {
		h.failResponse(w, r, http.StatusUnauthorized, "用户未登录")
		return
	}

	userInfo := rs.Store.UserInfo()
	if userInfo == nil {
		// 会话中没有缓存时向后端请求一次并缓存
		info, err := rs.API.Profile(r.Context())
		if err != nil {
			h.apiError(w, r, err)
			return
		}
		if err := rs.Store.SetUserInfo(r.Context(), info); err != nil {
			h.internalServerError(w, r, err)
			return
		}
		userInfo = info
	}

	h.successResponse(w, r, "获取成功", userInfo)
}

// GetNotifications 取走当前会话中等待展示的提示
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	rs := h.session(r)

	messages, err := rs.Flash.Drain(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取成功", messages)
}

// LoginPage 返回登录页所需的数据，页面本身的渲染由前端静态资源完成
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "获取成功", map[string]string{
		"redirect": r.URL.Query().Get("redirect"),
	})
}

func (h *Handler) ForbiddenPage(w http.ResponseWriter, r *http.Request) {
	h.failResponse(w, r, http.StatusForbidden, "暂无权限访问该页面")
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.failResponse(w, r, http.StatusNotFound, "页面不存在")
}
