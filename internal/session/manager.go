package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/securecookie"
)

// Manager 负责浏览器 cookie 与会话 ID 之间的转换
type Manager struct {
	cookieName string
	codec      *securecookie.SecureCookie
	maxAge     time.Duration
	secure     bool
}

func NewManager(cookieName string, hashKey, blockKey []byte, maxAge time.Duration, secure bool) *Manager {
	if len(blockKey) == 0 {
		blockKey = nil
	}
	return &Manager{
		cookieName: cookieName,
		codec:      securecookie.New(hashKey, blockKey),
		maxAge:     maxAge,
		secure:     secure,
	}
}

// NewSessionID 生成随机的会话 ID
func NewSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// SessionID 从请求 cookie 中解出会话 ID，没有或无效时返回空串
func (m *Manager) SessionID(r *http.Request) string {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return ""
	}

	var sid string
	if err := m.codec.Decode(m.cookieName, cookie.Value, &sid); err != nil {
		return ""
	}
	return sid
}

// Issue 把会话 ID 签名后写入 cookie，有效期尽量与后端 token 对齐
func (m *Manager) Issue(w http.ResponseWriter, sid string, token string) error {
	encoded, err := m.codec.Encode(m.cookieName, sid)
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Expires:  time.Now().Add(m.TTL(token)),
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
	}
	if m.secure {
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)
	return nil
}

// TTL 返回会话的有效期：token 是 JWT 时取其 exp，否则用配置的默认值
func (m *Manager) TTL(token string) time.Duration {
	if token == "" {
		return m.maxAge
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	// 这里只是为了读出过期时间，签名由后端校验
	if _, _, err := parser.ParseUnverified(token, claims); err == nil && claims.ExpiresAt != nil {
		if d := time.Until(claims.ExpiresAt.Time); d > 0 {
			return d
		}
	}
	return m.maxAge
}

// Clear 让浏览器删除会话 cookie
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:    m.cookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})
}
