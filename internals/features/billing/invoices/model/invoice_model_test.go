// file: internals/features/billing/invoices/model/invoice_model_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatus_Valid(t *testing.T) {
	for _, s := range []InvoiceStatus{
		InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPartiallyPaid,
		InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCanceled,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, InvoiceStatus("void").Valid())
	assert.False(t, InvoiceStatus("").Valid())
}

func TestInvoiceStatus_CanSend(t *testing.T) {
	assert.True(t, InvoiceStatusDraft.CanSend())

	for _, s := range []InvoiceStatus{
		InvoiceStatusSent, InvoiceStatusPartiallyPaid, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCanceled,
	} {
		assert.False(t, s.CanSend(), string(s))
	}
}

func TestInvoiceStatus_CanCancel(t *testing.T) {
	assert.True(t, InvoiceStatusDraft.CanCancel())
	assert.True(t, InvoiceStatusSent.CanCancel())

	// sudah ada uang masuk / sudah final → tidak bisa batal
	for _, s := range []InvoiceStatus{
		InvoiceStatusPartiallyPaid, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCanceled,
	} {
		assert.False(t, s.CanCancel(), string(s))
	}
}

func TestInvoiceStatus_AcceptsPayment(t *testing.T) {
	// overdue tetap bisa dibayar
	for _, s := range []InvoiceStatus{
		InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPartiallyPaid,
		InvoiceStatusPaid, InvoiceStatusOverdue,
	} {
		assert.True(t, s.AcceptsPayment(), string(s))
	}
	assert.False(t, InvoiceStatusCanceled.AcceptsPayment())
	assert.False(t, InvoiceStatus("void").AcceptsPayment())
}

func TestNextStatusAfterPayment(t *testing.T) {
	cases := []struct {
		name    string
		current InvoiceStatus
		paid    int
		due     int
		want    InvoiceStatus
	}{
		{"pembayaran parsial dari sent", InvoiceStatusSent, 50000, 200000, InvoiceStatusPartiallyPaid},
		{"pembayaran parsial kedua belum lunas", InvoiceStatusPartiallyPaid, 150000, 200000, InvoiceStatusPartiallyPaid},
		{"pas lunas", InvoiceStatusPartiallyPaid, 200000, 200000, InvoiceStatusPaid},
		{"overdue dibayar penuh", InvoiceStatusOverdue, 200000, 200000, InvoiceStatusPaid},
		{"overdue dibayar sebagian", InvoiceStatusOverdue, 100000, 200000, InvoiceStatusPartiallyPaid},
		{"belum ada pembayaran status tetap", InvoiceStatusSent, 0, 200000, InvoiceStatusSent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextStatusAfterPayment(tc.current, tc.paid, tc.due))
		})
	}
}

func TestBillingType_Valid(t *testing.T) {
	assert.True(t, BillingTypePrepaid.Valid())
	assert.True(t, BillingTypePostpaid.Valid())
	assert.False(t, BillingType("hybrid").Valid())
}

func TestTransactionType_AmountSignValid(t *testing.T) {
	cases := []struct {
		name   string
		typ    TransactionType
		amount int
		want   bool
	}{
		{"charge positif", TransactionTypeCharge, 200000, true},
		{"charge nol", TransactionTypeCharge, 0, true},
		{"charge negatif ditolak", TransactionTypeCharge, -1, false},
		{"refund negatif", TransactionTypeRefund, -50000, true},
		{"refund positif ditolak", TransactionTypeRefund, 50000, false},
		{"adjustment bebas tanda", TransactionTypeAdjustment, -10000, true},
		{"adjustment positif", TransactionTypeAdjustment, 10000, true},
		{"carryover positif", TransactionTypeCarryover, 5000, true},
		{"carryover negatif ditolak", TransactionTypeCarryover, -5000, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.typ.AmountSignValid(tc.amount))
		})
	}
}
