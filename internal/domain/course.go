package domain

import "time"

type Course struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TeacherName string    `json:"teacherName"`
	Price       int64     `json:"price"` // 单位为分
	Schedule    string    `json:"schedule"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateCourseRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"gte=0"`
	Schedule    string `json:"schedule"`
}

type UpdateCourseRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Schedule    *string `json:"schedule,omitempty"`
}
