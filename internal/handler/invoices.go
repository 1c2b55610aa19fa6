package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/domain"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/export"
	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/payment"
)

func (h *Handler) TeacherBills(w http.ResponseWriter, r *http.Request) {
	rs := h.session(r)

	list, err := rs.API.TeacherInvoices(r.Context(), h.pagination(r))
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取成功", list)
}

func (h *Handler) StudentBills(w http.ResponseWriter, r *http.Request) {
	rs := h.session(r)

	list, err := rs.API.StudentInvoices(r.Context(), h.pagination(r))
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取成功", list)
}

func (h *Handler) StudentBillDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rs := h.session(r)
	invoice, err := rs.API.StudentInvoice(r.Context(), id)
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取成功", invoice)
}

func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	req := &domain.CreateInvoiceRequest{}

	if err := h.readJSON(r, req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rs := h.session(r)
	invoice, err := rs.API.CreateInvoice(r.Context(), req)
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建成功", invoice)
}

func (h *Handler) SendInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rs := h.session(r)
	if err := rs.API.SendInvoice(r.Context(), id); err != nil {
		h.apiError(w, r, err)
		return
	}

	h.successResponse(w, r, "发送成功", nil)
}

func (h *Handler) ExportTeacherBills(w http.ResponseWriter, r *http.Request) {
	rs := h.session(r)

	list, err := rs.API.TeacherInvoices(r.Context(), h.pagination(r))
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	h.exportBills(w, r, "teacher-bills", list.Items)
}

func (h *Handler) ExportStudentBills(w http.ResponseWriter, r *http.Request) {
	rs := h.session(r)

	list, err := rs.API.StudentInvoices(r.Context(), h.pagination(r))
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	h.exportBills(w, r, "student-bills", list.Items)
}

func (h *Handler) exportBills(w http.ResponseWriter, r *http.Request, base string, invoices []domain.Invoice) {
	columns := []export.Column[domain.Invoice]{
		{Title: "账单编号", Value: func(inv domain.Invoice) string { return strconv.FormatInt(inv.ID, 10) }},
		{Title: "课程", Key: "courseName"},
		{Title: "学生", Key: "studentName"},
		{Title: "金额", Value: func(inv domain.Invoice) string { return fmt.Sprintf("%.2f", float64(inv.Amount)/100) }},
		{Title: "状态", Value: func(inv domain.Invoice) string { return inv.Status.Tag().Label }},
	}

	content, err := export.CSV(invoices, columns)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	filename := export.Filename(base, time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(content); err != nil {
		h.logInternalServerError(r, err)
	}
}

// PayBill 对账单发起一次支付令牌化，金额以后端记录为准
func (h *Handler) PayBill(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rs := h.session(r)
	invoice, err := rs.API.StudentInvoice(r.Context(), id)
	if err != nil {
		h.apiError(w, r, err)
		return
	}
	if invoice.Status == domain.InvoiceStatusPaid {
		h.failResponse(w, r, http.StatusOK, "账单已支付")
		return
	}

	cfg := payment.Config{
		Amount:      invoice.Amount,
		Currency:    invoice.Currency,
		Description: invoice.CourseName,
	}
	if err := h.validate.Struct(cfg); err != nil {
		h.badRequest(w, r, err)
		return
	}

	token, err := h.payments.CreatePayment(r.Context(), cfg)
	if err != nil {
		h.metrics.PaymentsTotal.WithLabelValues("failure").Inc()
		switch {
		case errors.Is(err, payment.ErrCancelled):
			h.failResponse(w, r, http.StatusOK, "支付已取消")
		default:
			slog.Error("支付令牌化失败", "invoice", id, "error", err)
			h.failResponse(w, r, http.StatusOK, "支付失败，请稍后再试")
		}
		return
	}
	h.metrics.PaymentsTotal.WithLabelValues("success").Inc()

	h.successResponse(w, r, "支付成功", map[string]string{"token": token})
}
