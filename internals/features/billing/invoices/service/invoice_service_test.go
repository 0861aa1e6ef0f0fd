// file: internals/features/billing/invoices/service/invoice_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorku_backend/internals/features/billing/invoices/model"
)

func testInvoice(status model.InvoiceStatus, amountDueIDR, amountPaidIDR int) *model.Invoice {
	return &model.Invoice{
		InvoiceID:            uuid.New(),
		InvoiceNumber:        "TUT-2025-001",
		InvoiceTeacherID:     uuid.New(),
		InvoiceGroupID:       uuid.New(),
		InvoiceStudentID:     uuid.New(),
		InvoiceStatus:        status,
		InvoiceAmountDueIDR:  amountDueIDR,
		InvoiceAmountPaidIDR: amountPaidIDR,
	}
}

func assertConflict(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T", err)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

/* ======================
   applySuccessfulPayment
====================== */

func TestApplySuccessfulPayment_SequentialPaymentsSumToAmountPaid(t *testing.T) {
	now := time.Now()
	inv := testInvoice(model.InvoiceStatusSent, 200000, 0)

	// pembayaran pertama: parsial
	require.NoError(t, applySuccessfulPayment(inv, 50000, now))
	assert.Equal(t, 50000, inv.InvoiceAmountPaidIDR)
	assert.Equal(t, model.InvoiceStatusPartiallyPaid, inv.InvoiceStatus)
	assert.Nil(t, inv.InvoicePaidAt)

	// pembayaran kedua: tepat melunasi sisa
	require.NoError(t, applySuccessfulPayment(inv, 150000, now))
	assert.Equal(t, 200000, inv.InvoiceAmountPaidIDR)
	assert.Equal(t, model.InvoiceStatusPaid, inv.InvoiceStatus)
	require.NotNil(t, inv.InvoicePaidAt)

	// amount_paid == jumlah seluruh pembayaran sukses, tidak lebih
	assert.Equal(t, inv.InvoiceAmountDueIDR, inv.InvoiceAmountPaidIDR)
}

func TestApplySuccessfulPayment_OverpaymentRejected(t *testing.T) {
	inv := testInvoice(model.InvoiceStatusSent, 400000, 0)

	err := applySuccessfulPayment(inv, 450000, time.Now())
	assertConflict(t, err)

	// invoice tidak berubah sama sekali
	assert.Equal(t, 0, inv.InvoiceAmountPaidIDR)
	assert.Equal(t, model.InvoiceStatusSent, inv.InvoiceStatus)
	assert.Nil(t, inv.InvoicePaidAt)
}

func TestApplySuccessfulPayment_PartialThenOverpayRejected(t *testing.T) {
	now := time.Now()
	inv := testInvoice(model.InvoiceStatusSent, 200000, 0)

	require.NoError(t, applySuccessfulPayment(inv, 150000, now))

	// sisa 50000 — bayar 60000 harus ditolak, saldo tidak berubah
	assertConflict(t, applySuccessfulPayment(inv, 60000, now))
	assert.Equal(t, 150000, inv.InvoiceAmountPaidIDR)
	assert.Equal(t, model.InvoiceStatusPartiallyPaid, inv.InvoiceStatus)
}

func TestApplySuccessfulPayment_PaidInvoiceRejectsFurtherPayment(t *testing.T) {
	now := time.Now()
	inv := testInvoice(model.InvoiceStatusSent, 200000, 0)
	require.NoError(t, applySuccessfulPayment(inv, 200000, now))
	require.Equal(t, model.InvoiceStatusPaid, inv.InvoiceStatus)

	assertConflict(t, applySuccessfulPayment(inv, 1, now))
	assert.Equal(t, 200000, inv.InvoiceAmountPaidIDR, "amount_paid tidak boleh melewati amount_due")
}

func TestApplySuccessfulPayment_CanceledInvoiceRejected(t *testing.T) {
	inv := testInvoice(model.InvoiceStatusCanceled, 200000, 0)
	assertConflict(t, applySuccessfulPayment(inv, 50000, time.Now()))
}

func TestApplySuccessfulPayment_NonPositiveAmountRejected(t *testing.T) {
	inv := testInvoice(model.InvoiceStatusSent, 200000, 0)

	for _, amount := range []int{0, -50000} {
		err := applySuccessfulPayment(inv, amount, time.Now())
		require.Error(t, err)
		fe, ok := err.(*fiber.Error)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	}
	assert.Equal(t, 0, inv.InvoiceAmountPaidIDR)
}

func TestApplySuccessfulPayment_OverduePaidInFull(t *testing.T) {
	// invoice lewat jatuh tempo masih bisa dilunasi
	inv := testInvoice(model.InvoiceStatusOverdue, 300000, 0)
	require.NoError(t, applySuccessfulPayment(inv, 300000, time.Now()))
	assert.Equal(t, model.InvoiceStatusPaid, inv.InvoiceStatus)
	assert.NotNil(t, inv.InvoicePaidAt)
}

/* ======================
   retireReplacedInvoice
====================== */

func TestRetireReplacedInvoice(t *testing.T) {
	t.Run("invoice bersih dibatalkan dengan jejak memo", func(t *testing.T) {
		memo := "catatan awal"
		inv := testInvoice(model.InvoiceStatusSent, 200000, 0)
		inv.InvoiceMemo = &memo

		require.NoError(t, retireReplacedInvoice(inv))
		assert.Equal(t, model.InvoiceStatusCanceled, inv.InvoiceStatus)
		require.NotNil(t, inv.InvoiceMemo)
		assert.Contains(t, *inv.InvoiceMemo, "catatan awal")
		assert.Contains(t, *inv.InvoiceMemo, "digantikan")
	})

	t.Run("draft tanpa memo", func(t *testing.T) {
		inv := testInvoice(model.InvoiceStatusDraft, 200000, 0)
		require.NoError(t, retireReplacedInvoice(inv))
		assert.Equal(t, model.InvoiceStatusCanceled, inv.InvoiceStatus)
		require.NotNil(t, inv.InvoiceMemo)
	})

	t.Run("sudah ada pembayaran tidak boleh digantikan", func(t *testing.T) {
		inv := testInvoice(model.InvoiceStatusPartiallyPaid, 200000, 50000)
		assertConflict(t, retireReplacedInvoice(inv))
		assert.Equal(t, model.InvoiceStatusPartiallyPaid, inv.InvoiceStatus, "status tidak berubah saat ditolak")
	})
}

/* ======================
   ensureCancelable
====================== */

func TestEnsureCancelable(t *testing.T) {
	t.Run("draft dan sent tanpa pembayaran boleh batal", func(t *testing.T) {
		assert.NoError(t, ensureCancelable(testInvoice(model.InvoiceStatusDraft, 200000, 0)))
		assert.NoError(t, ensureCancelable(testInvoice(model.InvoiceStatusSent, 200000, 0)))
	})

	t.Run("status lanjut ditolak", func(t *testing.T) {
		for _, s := range []model.InvoiceStatus{
			model.InvoiceStatusPartiallyPaid, model.InvoiceStatusPaid,
			model.InvoiceStatusOverdue, model.InvoiceStatusCanceled,
		} {
			assertConflict(t, ensureCancelable(testInvoice(s, 200000, 0)))
		}
	})

	t.Run("sent dengan pembayaran ditolak", func(t *testing.T) {
		assertConflict(t, ensureCancelable(testInvoice(model.InvoiceStatusSent, 200000, 50000)))
	})
}
