package apiclient

import (
	"context"
	"fmt"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/domain"
)

// CourseList 是课程列表接口返回的数据
type CourseList struct {
	Items      []domain.Course   `json:"items"`
	Pagination domain.Pagination `json:"pagination"`
}

// 课程相关接口，路径与后端约定保持一致

func (c *Client) StudentCourses(ctx context.Context, p domain.Pagination) (*CourseList, error) {
	list := &CourseList{}
	if err := c.Get(ctx, listPath("/courses/student-courses", p), list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) StudentCourse(ctx context.Context, id int64) (*domain.Course, error) {
	course := &domain.Course{}
	if err := c.Get(ctx, fmt.Sprintf("/courses/student-courses/%d", id), course); err != nil {
		return nil, err
	}
	return course, nil
}

func (c *Client) TeacherCourses(ctx context.Context, p domain.Pagination) (*CourseList, error) {
	list := &CourseList{}
	if err := c.Get(ctx, listPath("/courses/teacher-courses", p), list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) TeacherCourse(ctx context.Context, id int64) (*domain.Course, error) {
	course := &domain.Course{}
	if err := c.Get(ctx, fmt.Sprintf("/courses/teacher-courses/%d", id), course); err != nil {
		return nil, err
	}
	return course, nil
}

func (c *Client) CreateCourse(ctx context.Context, req *domain.CreateCourseRequest) (*domain.Course, error) {
	course := &domain.Course{}
	if err := c.Post(ctx, "/courses", req, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id int64, req *domain.UpdateCourseRequest) (*domain.Course, error) {
	course := &domain.Course{}
	if err := c.Patch(ctx, fmt.Sprintf("/courses/%d", id), req, course); err != nil {
		return nil, err
	}
	return course, nil
}

func listPath(path string, p domain.Pagination) string {
	return fmt.Sprintf("%s?currentPage=%d&pageSize=%d", path, p.CurrentPage, p.PageSize)
}
