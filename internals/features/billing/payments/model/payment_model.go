// file: internals/features/billing/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM — metode & status pembayaran
========================================================= */

type PaymentMethod string

const (
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodAccount PaymentMethod = "account"
	PaymentMethodEasyPay PaymentMethod = "easy_pay"
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodOther   PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodAccount, PaymentMethodEasyPay,
		PaymentMethodCash, PaymentMethodOther:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusSuccess  PaymentStatus = "success"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusCanceled PaymentStatus = "canceled"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSuccess, PaymentStatusFailed,
		PaymentStatusCanceled, PaymentStatusRefunded:
		return true
	}
	return false
}

/* =========================================================
   MODEL
   Payment dimiliki penuh oleh invoice-nya; baris hanya hilang
   lewat cascade delete invoice (yang tidak terjadi di operasi
   normal — invoice dibatalkan, bukan dihapus).
========================================================= */

type Payment struct {
	// PK
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_id"`

	// FK → invoices(invoice_id)
	PaymentInvoiceID uuid.UUID `gorm:"column:payment_invoice_id;type:uuid;not null;index;constraint:OnDelete:CASCADE" json:"payment_invoice_id"`

	PaymentMethod    PaymentMethod `gorm:"column:payment_method;type:varchar(12);not null" json:"payment_method"`
	PaymentStatus    PaymentStatus `gorm:"column:payment_status;type:varchar(12);not null;default:'pending';index" json:"payment_status"`
	PaymentAmountIDR int           `gorm:"column:payment_amount_idr;not null;check:payment_amount_idr>0" json:"payment_amount_idr"`

	// Korelasi payment provider (Midtrans dsb.)
	PaymentProvider        *string        `gorm:"column:payment_provider;type:varchar(30)" json:"payment_provider,omitempty"`
	PaymentProviderOrderID *string        `gorm:"column:payment_provider_order_id;type:varchar(80);uniqueIndex" json:"payment_provider_order_id,omitempty"`
	PaymentProviderTxnID   *string        `gorm:"column:payment_provider_txn_id;type:varchar(80)" json:"payment_provider_txn_id,omitempty"`
	PaymentMaskedCard      *string        `gorm:"column:payment_masked_card;type:varchar(24)" json:"payment_masked_card,omitempty"`
	PaymentPayload         datatypes.JSON `gorm:"column:payment_payload;type:jsonb" json:"payment_payload,omitempty"`

	// Alasan gagal/batal
	PaymentFailureReason *string `gorm:"column:payment_failure_reason;type:text" json:"payment_failure_reason,omitempty"`

	// Timestamps per fase
	PaymentRequestedAt time.Time  `gorm:"column:payment_requested_at;not null;default:now()" json:"payment_requested_at"`
	PaymentApprovedAt  *time.Time `gorm:"column:payment_approved_at" json:"payment_approved_at,omitempty"`
	PaymentCanceledAt  *time.Time `gorm:"column:payment_canceled_at" json:"payment_canceled_at,omitempty"`
	PaymentRefundedAt  *time.Time `gorm:"column:payment_refunded_at" json:"payment_refunded_at,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

func (m *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if m.PaymentRequestedAt.IsZero() {
		m.PaymentRequestedAt = time.Now()
	}
	return nil
}
