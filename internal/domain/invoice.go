package domain

import "time"

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusFailed  InvoiceStatus = "failed"
)

type Invoice struct {
	ID          int64         `json:"id"`
	CourseName  string        `json:"courseName"`
	StudentName string        `json:"studentName"`
	Amount      int64         `json:"amount"` // 单位为分
	Currency    string        `json:"currency"`
	Status      InvoiceStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	PaidAt      *time.Time    `json:"paidAt,omitempty"`
}

type CreateInvoiceRequest struct {
	CourseID  int64  `json:"courseId" validate:"required"`
	StudentID int64  `json:"studentId" validate:"required"`
	Amount    int64  `json:"amount" validate:"gt=0"`
	Currency  string `json:"currency" validate:"required,len=3"`
}

// StatusTag 是账单状态在页面上的标签样式和文案
type StatusTag struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

func (s InvoiceStatus) Tag() StatusTag {
	switch s {
	case InvoiceStatusPending:
		return StatusTag{Type: "warning", Label: "待支付"}
	case InvoiceStatusPaid:
		return StatusTag{Type: "success", Label: "已支付"}
	case InvoiceStatusFailed:
		return StatusTag{Type: "danger", Label: "支付失败"}
	default:
		return StatusTag{Type: "info", Label: "未知状态"}
	}
}
