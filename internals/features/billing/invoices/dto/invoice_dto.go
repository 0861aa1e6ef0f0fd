// file: internals/features/billing/invoices/dto/invoice_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"tutorku_backend/internals/features/billing/invoices/model"
	"tutorku_backend/internals/features/billing/invoices/service"
)

/* ======================
   Request DTO
====================== */

// Query preview settlement / create invoice memakai (year, month)
// supaya klien tidak perlu menghitung batas periode sendiri.
type SettlementPreviewQuery struct {
	GroupID   uuid.UUID `query:"group_id" validate:"required"`
	StudentID uuid.UUID `query:"student_id" validate:"required"`
	Year      int       `query:"year" validate:"required,min=2000,max=2100"`
	Month     int       `query:"month" validate:"required,min=1,max=12"`
}

type InvoiceCreateRequest struct {
	GroupID     uuid.UUID `json:"group_id" validate:"required"`
	StudentID   uuid.UUID `json:"student_id" validate:"required"`
	Year        int       `json:"year" validate:"required,min=2000,max=2100"`
	Month       int       `json:"month" validate:"required,min=1,max=12"`
	BillingType string    `json:"billing_type" validate:"required,oneof=prepaid postpaid"`
	Memo        *string   `json:"memo" validate:"omitempty,max=500"`
}

func (r InvoiceCreateRequest) ToInput() service.CreateInvoiceInput {
	start, end := service.MonthPeriod(r.Year, time.Month(r.Month))
	return service.CreateInvoiceInput{
		GroupID:     r.GroupID,
		StudentID:   r.StudentID,
		PeriodStart: start,
		PeriodEnd:   end,
		BillingType: model.BillingType(r.BillingType),
		Memo:        r.Memo,
	}
}

type InvoiceCancelRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type ManualPaymentRequest struct {
	Method    string  `json:"method" validate:"required,oneof=card account easy_pay cash other"`
	AmountIDR int     `json:"amount_idr" validate:"required,gt=0"`
	Note      *string `json:"note" validate:"omitempty,max=500"`
}

/* ======================
   Response DTO
====================== */

type SettlementPreviewResponse struct {
	GroupID           uuid.UUID `json:"group_id"`
	StudentID         uuid.UUID `json:"student_id"`
	PeriodStart       time.Time `json:"period_start"`
	PeriodEnd         time.Time `json:"period_end"`
	Attended          int       `json:"attended_lessons"`
	Absent            int       `json:"absent_lessons"`
	LessonRateIDR     int       `json:"lesson_rate_idr"`
	ContractedLessons int       `json:"contracted_lessons"`
	AmountDueIDR      int       `json:"amount_due_idr"`
}

func ToSettlementPreviewResponse(q SettlementPreviewQuery, start, end time.Time, s service.PeriodSummary) SettlementPreviewResponse {
	return SettlementPreviewResponse{
		GroupID:           q.GroupID,
		StudentID:         q.StudentID,
		PeriodStart:       start,
		PeriodEnd:         end,
		Attended:          s.Attended,
		Absent:            s.Absent,
		LessonRateIDR:     s.LessonRateIDR,
		ContractedLessons: s.ContractedLessons,
		AmountDueIDR:      s.AmountDueIDR,
	}
}

type InvoiceResponse struct {
	InvoiceID         uuid.UUID           `json:"invoice_id"`
	InvoiceNumber     string              `json:"invoice_number"`
	TeacherID         uuid.UUID           `json:"teacher_id"`
	GroupID           uuid.UUID           `json:"group_id"`
	StudentID         uuid.UUID           `json:"student_id"`
	PeriodStart       time.Time           `json:"period_start"`
	PeriodEnd         time.Time           `json:"period_end"`
	BillingType       model.BillingType   `json:"billing_type"`
	Status            model.InvoiceStatus `json:"status"`
	LessonRateIDR     int                 `json:"lesson_rate_idr"`
	ContractedLessons int                 `json:"contracted_lessons"`
	AttendedLessons   int                 `json:"attended_lessons"`
	AbsentLessons     int                 `json:"absent_lessons"`
	AmountDueIDR      int                 `json:"amount_due_idr"`
	AmountPaidIDR     int                 `json:"amount_paid_idr"`
	DueDate           *time.Time          `json:"due_date,omitempty"`
	Memo              *string             `json:"memo,omitempty"`
	SentAt            *time.Time          `json:"sent_at,omitempty"`
	PaidAt            *time.Time          `json:"paid_at,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}

func ToInvoiceResponse(m model.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:         m.InvoiceID,
		InvoiceNumber:     m.InvoiceNumber,
		TeacherID:         m.InvoiceTeacherID,
		GroupID:           m.InvoiceGroupID,
		StudentID:         m.InvoiceStudentID,
		PeriodStart:       m.InvoicePeriodStart,
		PeriodEnd:         m.InvoicePeriodEnd,
		BillingType:       m.InvoiceBillingType,
		Status:            m.InvoiceStatus,
		LessonRateIDR:     m.InvoiceLessonRateIDR,
		ContractedLessons: m.InvoiceContractedLessons,
		AttendedLessons:   m.InvoiceAttendedLessons,
		AbsentLessons:     m.InvoiceAbsentLessons,
		AmountDueIDR:      m.InvoiceAmountDueIDR,
		AmountPaidIDR:     m.InvoiceAmountPaidIDR,
		DueDate:           m.InvoiceDueDate,
		Memo:              m.InvoiceMemo,
		SentAt:            m.InvoiceSentAt,
		PaidAt:            m.InvoicePaidAt,
		CreatedAt:         m.InvoiceCreatedAt,
	}
}

func ToInvoiceResponses(ms []model.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToInvoiceResponse(m))
	}
	return out
}

type TransactionResponse struct {
	TransactionID uuid.UUID             `json:"transaction_id"`
	InvoiceID     uuid.UUID             `json:"invoice_id"`
	Type          model.TransactionType `json:"type"`
	AmountIDR     int                   `json:"amount_idr"`
	Note          *string               `json:"note,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

func ToTransactionResponses(ms []model.InvoiceTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, TransactionResponse{
			TransactionID: m.TransactionID,
			InvoiceID:     m.TransactionInvoiceID,
			Type:          m.TransactionType,
			AmountIDR:     m.TransactionAmountIDR,
			Note:          m.TransactionNote,
			CreatedAt:     m.TransactionCreatedAt,
		})
	}
	return out
}
