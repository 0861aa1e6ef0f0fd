// file: internals/features/billing/payments/service/midtrans_test.go
package service

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tutorku_backend/internals/features/billing/payments/model"
)

func TestMapMidtransStatus(t *testing.T) {
	cases := []struct {
		name              string
		transactionStatus string
		fraudStatus       string
		want              model.PaymentStatus
	}{
		{"settlement", "settlement", "", model.PaymentStatusSuccess},
		{"capture accept", "capture", "accept", model.PaymentStatusSuccess},
		{"capture tanpa fraud_status", "capture", "", model.PaymentStatusSuccess},
		{"capture challenge masih pending", "capture", "challenge", model.PaymentStatusPending},
		{"capture deny gagal", "capture", "deny", model.PaymentStatusFailed},
		{"pending", "pending", "", model.PaymentStatusPending},
		{"deny", "deny", "", model.PaymentStatusFailed},
		{"failure", "failure", "", model.PaymentStatusFailed},
		{"cancel", "cancel", "", model.PaymentStatusCanceled},
		{"expire", "expire", "", model.PaymentStatusCanceled},
		{"refund", "refund", "", model.PaymentStatusRefunded},
		{"partial refund", "partial_refund", "", model.PaymentStatusRefunded},
		{"status asing dianggap pending", "somethingnew", "", model.PaymentStatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapMidtransStatus(tc.transactionStatus, tc.fraudStatus))
		})
	}
}

func TestVerifySignature(t *testing.T) {
	const (
		orderID     = "TUT-2025-001-a1b2c3d4"
		statusCode  = "200"
		grossAmount = "200000.00"
		serverKey   = "SB-Mid-server-abc123"
	)

	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	valid := hex.EncodeToString(sum[:])

	t.Run("signature benar", func(t *testing.T) {
		assert.True(t, VerifySignature(orderID, statusCode, grossAmount, valid, serverKey))
	})

	t.Run("signature uppercase tetap diterima", func(t *testing.T) {
		assert.True(t, VerifySignature(orderID, statusCode, grossAmount, strings.ToUpper(valid), serverKey))
	})

	t.Run("signature kosong ditolak", func(t *testing.T) {
		assert.False(t, VerifySignature(orderID, statusCode, grossAmount, "", serverKey))
	})

	t.Run("server key beda ditolak", func(t *testing.T) {
		assert.False(t, VerifySignature(orderID, statusCode, grossAmount, valid, "key-lain"))
	})

	t.Run("payload diubah ditolak", func(t *testing.T) {
		assert.False(t, VerifySignature(orderID, statusCode, "1.00", valid, serverKey))
	})
}
