// file: internals/features/billing/invoices/model/invoice_transaction_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM — tipe entri ledger
========================================================= */

type TransactionType string

const (
	TransactionTypeCharge     TransactionType = "charge"
	TransactionTypeRefund     TransactionType = "refund"
	TransactionTypeAdjustment TransactionType = "adjustment"
	TransactionTypeCarryover  TransactionType = "carryover"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeCharge, TransactionTypeRefund, TransactionTypeAdjustment, TransactionTypeCarryover:
		return true
	}
	return false
}

// AmountSignValid mengecek konvensi tanda nominal:
// charge/carryover positif, refund negatif, adjustment bebas tanda.
func (t TransactionType) AmountSignValid(amountIDR int) bool {
	switch t {
	case TransactionTypeCharge, TransactionTypeCarryover:
		return amountIDR >= 0
	case TransactionTypeRefund:
		return amountIDR <= 0
	case TransactionTypeAdjustment:
		return true
	}
	return false
}

/* =========================================================
   MODEL — append-only.
   Tidak ada kode yang meng-update/menghapus baris ini;
   histori transaksi adalah sumber kebenaran untuk audit.
========================================================= */

type InvoiceTransaction struct {
	// PK
	TransactionID uuid.UUID `gorm:"column:transaction_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"transaction_id"`

	// FK → invoices(invoice_id)
	TransactionInvoiceID uuid.UUID `gorm:"column:transaction_invoice_id;type:uuid;not null;index" json:"transaction_invoice_id"`

	TransactionType      TransactionType `gorm:"column:transaction_type;type:varchar(12);not null" json:"transaction_type"`
	TransactionAmountIDR int             `gorm:"column:transaction_amount_idr;not null" json:"transaction_amount_idr"`
	TransactionNote      *string         `gorm:"column:transaction_note;type:text" json:"transaction_note,omitempty"`

	TransactionCreatedAt time.Time `gorm:"column:transaction_created_at;not null;default:now()" json:"transaction_created_at"`
}

func (InvoiceTransaction) TableName() string {
	return "invoice_transactions"
}

func (m *InvoiceTransaction) BeforeCreate(tx *gorm.DB) (err error) {
	if m.TransactionCreatedAt.IsZero() {
		m.TransactionCreatedAt = time.Now()
	}
	return nil
}
