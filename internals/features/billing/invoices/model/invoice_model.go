// file: internals/features/billing/invoices/model/invoice_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM — status & tipe invoice.
   Enum tertutup: setiap transisi dicek lewat method di sini,
   bukan perbandingan string bebas di tempat lain.
========================================================= */

type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusCanceled      InvoiceStatus = "canceled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPartiallyPaid,
		InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCanceled:
		return true
	}
	return false
}

// CanSend: kirim hanya dari draft.
func (s InvoiceStatus) CanSend() bool {
	return s == InvoiceStatusDraft
}

// CanCancel: batal hanya dari draft/sent (syarat amount_paid == 0
// dicek di service, bukan di sini).
func (s InvoiceStatus) CanCancel() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusSent
}

// AcceptsPayment: semua status kecuali canceled masih bisa menerima
// pembayaran (termasuk overdue).
func (s InvoiceStatus) AcceptsPayment() bool {
	return s.Valid() && s != InvoiceStatusCanceled
}

// NextStatusAfterPayment menghitung ulang status setelah amount_paid
// berubah: paid bila lunas, partially_paid bila ada pembayaran,
// selain itu status tidak berubah.
func NextStatusAfterPayment(current InvoiceStatus, amountPaidIDR, amountDueIDR int) InvoiceStatus {
	if amountPaidIDR >= amountDueIDR {
		return InvoiceStatusPaid
	}
	if amountPaidIDR > 0 {
		return InvoiceStatusPartiallyPaid
	}
	return current
}

type BillingType string

const (
	BillingTypePrepaid  BillingType = "prepaid"
	BillingTypePostpaid BillingType = "postpaid"
)

func (t BillingType) Valid() bool {
	return t == BillingTypePrepaid || t == BillingTypePostpaid
}

/* =========================================================
   MODEL
========================================================= */

type Invoice struct {
	// PK
	InvoiceID uuid.UUID `gorm:"column:invoice_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"invoice_id"`

	// Nomor unik global, format TUT-<tahun>-<seq>
	InvoiceNumber string `gorm:"column:invoice_number;type:varchar(20);not null;uniqueIndex" json:"invoice_number"`

	// Pihak-pihak
	InvoiceTeacherID uuid.UUID `gorm:"column:invoice_teacher_id;type:uuid;not null;index" json:"invoice_teacher_id"`
	InvoiceGroupID   uuid.UUID `gorm:"column:invoice_group_id;type:uuid;not null;index:ix_invoice_period,priority:1" json:"invoice_group_id"`
	InvoiceStudentID uuid.UUID `gorm:"column:invoice_student_id;type:uuid;not null;index:ix_invoice_period,priority:2" json:"invoice_student_id"`

	// Periode tagihan (kalender bulanan, inklusif)
	InvoicePeriodStart time.Time `gorm:"column:invoice_period_start;type:date;not null;index:ix_invoice_period,priority:3" json:"invoice_period_start"`
	InvoicePeriodEnd   time.Time `gorm:"column:invoice_period_end;type:date;not null;index:ix_invoice_period,priority:4" json:"invoice_period_end"`

	InvoiceBillingType BillingType   `gorm:"column:invoice_billing_type;type:varchar(10);not null" json:"invoice_billing_type"`
	InvoiceStatus      InvoiceStatus `gorm:"column:invoice_status;type:varchar(16);not null;default:'draft';index:ix_invoice_period,priority:5" json:"invoice_status"`

	// Snapshot hasil settlement saat invoice dibuat
	InvoiceLessonRateIDR     int `gorm:"column:invoice_lesson_rate_idr;not null;check:invoice_lesson_rate_idr>=0" json:"invoice_lesson_rate_idr"`
	InvoiceContractedLessons int `gorm:"column:invoice_contracted_lessons;not null" json:"invoice_contracted_lessons"`
	InvoiceAttendedLessons   int `gorm:"column:invoice_attended_lessons;not null" json:"invoice_attended_lessons"`
	InvoiceAbsentLessons     int `gorm:"column:invoice_absent_lessons;not null" json:"invoice_absent_lessons"`

	// Nominal
	InvoiceAmountDueIDR  int `gorm:"column:invoice_amount_due_idr;not null;check:invoice_amount_due_idr>=0" json:"invoice_amount_due_idr"`
	InvoiceAmountPaidIDR int `gorm:"column:invoice_amount_paid_idr;not null;default:0;check:invoice_amount_paid_idr>=0" json:"invoice_amount_paid_idr"`
	InvoiceDiscountIDR   int `gorm:"column:invoice_discount_idr;not null;default:0" json:"invoice_discount_idr"`

	InvoiceDueDate *time.Time `gorm:"column:invoice_due_date;type:date" json:"invoice_due_date,omitempty"`
	InvoiceMemo    *string    `gorm:"column:invoice_memo;type:text" json:"invoice_memo,omitempty"`

	// Timestamps
	InvoiceCreatedAt time.Time      `gorm:"column:invoice_created_at;not null;default:now()" json:"invoice_created_at"`
	InvoiceUpdatedAt time.Time      `gorm:"column:invoice_updated_at;not null;default:now()" json:"invoice_updated_at"`
	InvoiceSentAt    *time.Time     `gorm:"column:invoice_sent_at" json:"invoice_sent_at,omitempty"`
	InvoicePaidAt    *time.Time     `gorm:"column:invoice_paid_at" json:"invoice_paid_at,omitempty"`
	InvoiceDeletedAt gorm.DeletedAt `gorm:"column:invoice_deleted_at;index" json:"-"`
}

func (Invoice) TableName() string {
	return "invoices"
}

func (m *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.InvoiceCreatedAt.IsZero() {
		m.InvoiceCreatedAt = now
	}
	m.InvoiceUpdatedAt = now
	return nil
}

func (m *Invoice) BeforeUpdate(tx *gorm.DB) (err error) {
	m.InvoiceUpdatedAt = time.Now()
	return nil
}
