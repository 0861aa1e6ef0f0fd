// file: internals/features/billing/invoices/service/ledger.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/features/billing/invoices/model"
)

/* =========================================================
   Transaction Ledger
   Penulisan HANYA lewat appendTransaction (unexported) sebagai
   efek samping transisi InvoiceService — tidak ada API mutasi
   publik, supaya invariant amount_paid vs jumlah transaksi
   tidak bisa dilewati caller lain.
========================================================= */

// appendTransaction menulis satu entri ledger di dalam transaksi tx.
func appendTransaction(tx *gorm.DB, invoiceID uuid.UUID, trxType model.TransactionType, amountIDR int, note string) error {
	if !trxType.Valid() || !trxType.AmountSignValid(amountIDR) {
		return gorm.ErrInvalidData
	}
	entry := model.InvoiceTransaction{
		TransactionInvoiceID: invoiceID,
		TransactionType:      trxType,
		TransactionAmountIDR: amountIDR,
		TransactionNote:      &note,
	}
	return tx.Create(&entry).Error
}

// ListTransactions mengembalikan histori ledger satu invoice,
// terlama dulu. Query murni tanpa state cursor — aman diulang.
func ListTransactions(ctx context.Context, db *gorm.DB, invoiceID uuid.UUID) ([]model.InvoiceTransaction, error) {
	var list []model.InvoiceTransaction
	if err := db.WithContext(ctx).
		Where("transaction_invoice_id = ?", invoiceID).
		Order("transaction_created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
