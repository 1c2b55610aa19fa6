package domain

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// UserInfo 是缓存在会话中的当前用户身份
type UserInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}
