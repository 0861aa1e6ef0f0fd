// file: internals/features/billing/invoices/service/invoice_number_test.go
package service

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFormatInvoiceNumber(t *testing.T) {
	cases := []struct {
		name string
		year int
		seq  int
		want string
	}{
		{"seq pertama dipad 3 digit", 2025, 1, "TUT-2025-001"},
		{"seq dua digit", 2025, 42, "TUT-2025-042"},
		{"batas atas padding", 2025, 999, "TUT-2025-999"},
		{"lewat 999 tanpa padding", 2025, 1000, "TUT-2025-1000"},
		{"jauh di atas seribu", 2025, 12345, "TUT-2025-12345"},
		{"tahun berbeda", 2026, 1, "TUT-2026-001"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatInvoiceNumber(tc.year, tc.seq))
		})
	}
}

func TestFormatInvoiceNumber_MonotonicAroundPaddingBoundary(t *testing.T) {
	// transisi 999 → 1000 tidak boleh menghasilkan nomor yang sama
	// atau format yang ambigu
	a := FormatInvoiceNumber(2025, 999)
	b := FormatInvoiceNumber(2025, 1000)
	assert.NotEqual(t, a, b)
	assert.Equal(t, "TUT-2025-999", a)
	assert.Equal(t, "TUT-2025-1000", b)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("koneksi putus")))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "40001"}))
}
