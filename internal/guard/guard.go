package guard

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/domain"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/notifier"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/session"
)

// ResolveUserFunc 在会话中缺少用户信息时向后端请求用户信息
type ResolveUserFunc func(ctx context.Context, store *session.Store) (*domain.UserInfo, error)

// Guard 在每次页面跳转前决定放行还是重定向
type Guard struct {
	whitelist    []string
	errorPages   []string
	roleRouteMap map[domain.Role][]string
	resolveUser  ResolveUserFunc
}

// Decision 是一次跳转检查的结果：放行，或重定向到 Redirect
type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(target string) Decision {
	return Decision{Redirect: target}
}

func New(resolveUser ResolveUserFunc) *Guard {
	return &Guard{
		// 无需登录即可访问的路由
		whitelist: []string{"/login"},
		// 已登录用户都可以访问的错误页，否则重定向到 /403 会形成循环
		errorPages: []string{"/403"},
		// 角色与路由前缀的映射
		roleRouteMap: map[domain.Role][]string{
			domain.RoleTeacher: {"/teacher"},
			domain.RoleStudent: {"/student"},
		},
		resolveUser: resolveUser,
	}
}

// Decide 按顺序执行跳转检查：白名单、登录态、用户信息、首页重定向、角色前缀
func (g *Guard) Decide(ctx context.Context, store *session.Store, n notifier.Notifier, path string) Decision {
	token := store.Token()

	// 白名单路由直接放行，已登录用户访问登录页时跳回首页
	if slices.Contains(g.whitelist, path) {
		if token != "" {
			return redirect("/")
		}
		return allow()
	}

	// 未登录时跳转到登录页，并带上原本要访问的地址
	if token == "" {
		n.Warning(ctx, "请先登录")
		return redirect("/login?redirect=" + path)
	}

	// 已登录但没有用户信息时向后端请求一次，失败则清除会话重新登录
	userInfo := store.UserInfo()
	if userInfo == nil {
		info, err := g.resolveUser(ctx, store)
		if err != nil {
			if logoutErr := store.Logout(ctx); logoutErr != nil {
				slog.Error("无法清除本地会话", "error", logoutErr)
			}
			n.Error(ctx, "获取用户信息失败，请重新登录")
			return redirect("/login")
		}
		if err := store.SetUserInfo(ctx, info); err != nil {
			slog.Error("无法保存用户信息", "error", err)
		}
		userInfo = info
	}

	if slices.Contains(g.errorPages, path) {
		return allow()
	}

	// 根路径按角色跳转到对应首页
	if path == "/" {
		return redirect("/" + string(userInfo.Role))
	}

	if g.permitted(path, userInfo.Role) {
		return allow()
	}

	n.Error(ctx, "暂无权限访问该页面")
	return redirect("/403")
}

func (g *Guard) permitted(path string, role domain.Role) bool {
	prefixes, ok := g.roleRouteMap[role]
	if !ok {
		return false
	}
	return slices.ContainsFunc(prefixes, func(prefix string) bool {
		return strings.HasPrefix(path, prefix)
	})
}
