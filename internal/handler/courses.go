package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/domain"
)

// pagination 从查询参数中解析分页，非法值回退到默认分页
func (h *Handler) pagination(r *http.Request) domain.Pagination {
	p := domain.DefaultPagination()
	if v, err := strconv.Atoi(r.URL.Query().Get("currentPage")); err == nil && v >= 1 {
		p.CurrentPage = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && v > 0 {
		p.PageSize = v
	}
	return p
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.failResponse(w, r, http.StatusUnprocessableEntity, "ID 无效")
		return 0, false
	}
	return id, true
}

func (h *Handler) TeacherDashboard(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "获取成功", h.session(r).Store.UserInfo())
}

func (h *Handler) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "获取成功", h.session(r).Store.UserInfo())
}

func (h *Handler) TeacherCourses(w http.ResponseWriter, r *http.Request) {
	rs := h.session(r)

	list, err := rs.API.TeacherCourses(r.Context(), h.pagination(r))
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取成功", list)
}

func (h *Handler) TeacherCourseDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rs := h.session(r)
	course, err := rs.API.TeacherCourse(r.Context(), id)
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取成功", course)
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	req := &domain.CreateCourseRequest{}

	if err := h.readJSON(r, req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rs := h.session(r)
	course, err := rs.API.CreateCourse(r.Context(), req)
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建成功", course)
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	req := &domain.UpdateCourseRequest{}
	if err := h.readJSON(r, req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rs := h.session(r)
	course, err := rs.API.UpdateCourse(r.Context(), id, req)
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新成功", course)
}

func (h *Handler) StudentCourses(w http.ResponseWriter, r *http.Request) {
	rs := h.session(r)

	list, err := rs.API.StudentCourses(r.Context(), h.pagination(r))
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取成功", list)
}

func (h *Handler) StudentCourseDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rs := h.session(r)
	course, err := rs.API.StudentCourse(r.Context(), id)
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取成功", course)
}
