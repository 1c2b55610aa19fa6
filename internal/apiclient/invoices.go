package apiclient

import (
	"context"
	"fmt"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/domain"
)

// InvoiceList 是账单列表接口返回的数据
type InvoiceList struct {
	Items      []domain.Invoice  `json:"items"`
	Pagination domain.Pagination `json:"pagination"`
}

// 账单相关接口，路径与后端约定保持一致

func (c *Client) CreateInvoice(ctx context.Context, req *domain.CreateInvoiceRequest) (*domain.Invoice, error) {
	invoice := &domain.Invoice{}
	if err := c.Post(ctx, "/invoices", req, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// SendInvoice 把账单发送给学生
func (c *Client) SendInvoice(ctx context.Context, id int64) error {
	return c.Post(ctx, fmt.Sprintf("/invoices/%d/send", id), nil, nil)
}

func (c *Client) StudentInvoices(ctx context.Context, p domain.Pagination) (*InvoiceList, error) {
	list := &InvoiceList{}
	if err := c.Get(ctx, listPath("/invoices/student-invoices", p), list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) StudentInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	invoice := &domain.Invoice{}
	if err := c.Get(ctx, fmt.Sprintf("/invoices/student-invoices/%d", id), invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (c *Client) TeacherInvoices(ctx context.Context, p domain.Pagination) (*InvoiceList, error) {
	list := &InvoiceList{}
	if err := c.Get(ctx, listPath("/invoices/teacher-invoices", p), list); err != nil {
		return nil, err
	}
	return list, nil
}
