// file: internals/features/billing/payments/service/midtrans.go
package service

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	invoiceModel "tutorku_backend/internals/features/billing/invoices/model"
	"tutorku_backend/internals/features/billing/payments/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans harus dipanggil saat bootstrap app.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

/* =========================================================
   Snap token untuk checkout invoice
========================================================= */

func GenerateSnapToken(inv invoiceModel.Invoice, p model.Payment) (string, string, error) {
	if p.PaymentAmountIDR <= 0 {
		return "", "", errors.New("invalid payment_amount_idr")
	}
	if p.PaymentProviderOrderID == nil || *p.PaymentProviderOrderID == "" {
		return "", "", errors.New("payment_provider_order_id is required (used as OrderID)")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  *p.PaymentProviderOrderID,
			GrossAmt: int64(p.PaymentAmountIDR),
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       inv.InvoiceNumber,
				Price:    int64(p.PaymentAmountIDR),
				Qty:      1,
				Name:     fmt.Sprintf("Tagihan les %s", inv.InvoiceNumber),
				Category: "TUTORING",
			},
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

/* =========================================================
   Webhook helpers
========================================================= */

// VerifySignature — SHA512(order_id + status_code + gross_amount + ServerKey).
func VerifySignature(orderID, statusCode, grossAmount, signatureKey, serverKey string) bool {
	want := strings.ToLower(signatureKey)
	if want == "" {
		return false
	}
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:]) == want
}

// MapMidtransStatus memetakan (transaction_status, fraud_status) dari
// Midtrans ke status payment internal. Dipisah sebagai fungsi murni
// supaya gampang diuji tanpa gateway.
//
// transaction_status: capture, settlement, pending, deny, cancel,
// expire, refund, partial_refund, failure.
func MapMidtransStatus(transactionStatus, fraudStatus string) model.PaymentStatus {
	switch transactionStatus {
	case "capture":
		switch fraudStatus {
		case "accept", "":
			return model.PaymentStatusSuccess
		case "challenge":
			return model.PaymentStatusPending
		default: // deny
			return model.PaymentStatusFailed
		}
	case "settlement":
		return model.PaymentStatusSuccess
	case "pending":
		return model.PaymentStatusPending
	case "deny", "failure":
		return model.PaymentStatusFailed
	case "cancel", "expire":
		return model.PaymentStatusCanceled
	case "refund", "partial_refund":
		return model.PaymentStatusRefunded
	}
	return model.PaymentStatusPending
}
