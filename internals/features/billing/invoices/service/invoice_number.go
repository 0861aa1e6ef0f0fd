// file: internals/features/billing/invoices/service/invoice_number.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

/* =========================================================
   Numbering Authority
   Nomor invoice: TUT-<tahun>-<seq>, seq naik monoton per tahun
   dan reset ke 1 setiap tahun baru. Dihitung dari maksimum yang
   tersimpan (bukan counter in-memory) supaya selamat dari
   restart proses. Keunikan dijaga unique index di kolom
   invoice_number + retry sekali saat bentrok.
========================================================= */

const invoiceNumberPrefix = "TUT"

// FormatInvoiceNumber merender TUT-<year>-<seq>.
// Seq dipad 3 digit sampai mencapai 1000, setelah itu tanpa padding.
func FormatInvoiceNumber(year, seq int) string {
	if seq < 1000 {
		return fmt.Sprintf("%s-%d-%03d", invoiceNumberPrefix, year, seq)
	}
	return fmt.Sprintf("%s-%d-%d", invoiceNumberPrefix, year, seq)
}

// NextInvoiceNumber mengambil sequence tertinggi tahun tsb dari DB
// lalu mengembalikan nomor berikutnya. Dipanggil di dalam transaksi
// insert invoice.
func NextInvoiceNumber(ctx context.Context, tx *gorm.DB, year int) (string, error) {
	var maxSeq int
	// suffix numerik di-extract supaya urutannya numerik, bukan leksikografis
	if err := tx.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(invoice_number FROM '[0-9]+$') AS INT)), 0)
		FROM invoices
		WHERE invoice_number LIKE ?
	`, fmt.Sprintf("%s-%d-%%", invoiceNumberPrefix, year)).Scan(&maxSeq).Error; err != nil {
		return "", err
	}
	return FormatInvoiceNumber(year, maxSeq+1), nil
}

// isUniqueViolation mendeteksi pelanggaran unique constraint
// (race nomor invoice / duplikasi lain) untuk strategi retry.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
