// file: internals/features/billing/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"tutorku_backend/internals/features/billing/payments/model"
)

/* ======================
   Request DTO
====================== */

// Payload notifikasi Midtrans. Field lain di payload aman diabaikan.
type MidtransNotifRequest struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"` // capture, settlement, pending, deny, cancel, expire, refund, partial_refund, failure
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"` // string dari Midtrans
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"` // accept / challenge / deny
	TransactionID     string `json:"transaction_id"`
	MaskedCard        string `json:"masked_card"`
	SettlementTime    string `json:"settlement_time"`
}

/* ======================
   Response DTO
====================== */

type CheckoutResponse struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	OrderID     string    `json:"order_id"`
	AmountIDR   int       `json:"amount_idr"`
	SnapToken   string    `json:"snap_token"`
	RedirectURL string    `json:"redirect_url"`
}

type PaymentResponse struct {
	PaymentID       uuid.UUID           `json:"payment_id"`
	InvoiceID       uuid.UUID           `json:"invoice_id"`
	Method          model.PaymentMethod `json:"method"`
	Status          model.PaymentStatus `json:"status"`
	AmountIDR       int                 `json:"amount_idr"`
	Provider        *string             `json:"provider,omitempty"`
	ProviderOrderID *string             `json:"provider_order_id,omitempty"`
	FailureReason   *string             `json:"failure_reason,omitempty"`
	RequestedAt     time.Time           `json:"requested_at"`
	ApprovedAt      *time.Time          `json:"approved_at,omitempty"`
}

func ToPaymentResponse(m model.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       m.PaymentID,
		InvoiceID:       m.PaymentInvoiceID,
		Method:          m.PaymentMethod,
		Status:          m.PaymentStatus,
		AmountIDR:       m.PaymentAmountIDR,
		Provider:        m.PaymentProvider,
		ProviderOrderID: m.PaymentProviderOrderID,
		FailureReason:   m.PaymentFailureReason,
		RequestedAt:     m.PaymentRequestedAt,
		ApprovedAt:      m.PaymentApprovedAt,
	}
}

func ToPaymentResponses(ms []model.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToPaymentResponse(m))
	}
	return out
}
