package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/apiclient"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/config"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/domain"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/guard"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/metrics"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/notifier"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/payment"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/session"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	translator ut.Translator
	sessions   *session.Manager
	routeGuard *guard.Guard
	payments   *payment.Service
	metrics    *metrics.Metrics
	registry   *prometheus.Registry

	// newStorage 按会话 ID 构造持久化存储，测试时替换为内存实现
	newStorage func(sid string) session.Storage

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, rdb *redis.Client, sessions *session.Manager, payments *payment.Service) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zhLocale := zh.New()
	uni := ut.New(zhLocale, zhLocale)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()

	h := &Handler{
		validate:   validate,
		config:     cfg,
		translator: trans,
		sessions:   sessions,
		payments:   payments,
		metrics:    metrics.New(registry),
		registry:   registry,
		newStorage: func(sid string) session.Storage {
			return session.NewRedisStorage(rdb, sid)
		},

		Mux: chi.NewRouter(),
	}
	h.routeGuard = guard.New(h.resolveUser)

	return h, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.observe)

	h.Mux.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))

	h.Mux.Group(func(r chi.Router) {
		r.Use(h.withSession)

		// 会话与通知
		r.Post("/api/login", h.Login)
		r.Post("/api/logout", h.Logout)
		r.Get("/api/profile", h.GetProfile)
		r.Get("/api/notifications", h.GetNotifications)

		// 页面路由，全部经过跳转守卫
		r.Group(func(r chi.Router) {
			r.Use(h.guard)

			r.Get("/login", h.LoginPage)
			r.Get("/403", h.ForbiddenPage)

			// 教师端
			r.Get("/teacher", h.TeacherDashboard)
			r.Get("/teacher/courses", h.TeacherCourses)
			r.Post("/teacher/courses", h.CreateCourse)
			r.Get("/teacher/courses/{id}", h.TeacherCourseDetail)
			r.Patch("/teacher/courses/{id}", h.UpdateCourse)
			r.Get("/teacher/bills", h.TeacherBills)
			r.Get("/teacher/bills/export", h.ExportTeacherBills)
			r.Post("/teacher/bills", h.CreateInvoice)
			r.Post("/teacher/bills/{id}/send", h.SendInvoice)

			// 学生端
			r.Get("/student", h.StudentDashboard)
			r.Get("/student/courses", h.StudentCourses)
			r.Get("/student/courses/{id}", h.StudentCourseDetail)
			r.Get("/student/bills", h.StudentBills)
			r.Get("/student/bills/export", h.ExportStudentBills)
			r.Get("/student/bills/{id}", h.StudentBillDetail)
			r.Post("/student/bills/{id}/pay", h.PayBill)

			// 兜底 404 页面，根路径的按角色跳转由守卫完成
			r.HandleFunc("/*", h.NotFound)
		})
	})
}

// resolveUser 供跳转守卫在会话缺少用户信息时向后端请求。
// 守卫失败时会给出统一提示，所以这里管线内的通知降级为日志
func (h *Handler) resolveUser(ctx context.Context, store *session.Store) (*domain.UserInfo, error) {
	client := apiclient.NewClient(h.config.API.BaseURL, time.Duration(h.config.API.Timeout)*time.Second, store, notifier.Log{})
	return client.Profile(ctx)
}
