// file: internals/features/billing/payments/controller/payment_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	invoiceModel "tutorku_backend/internals/features/billing/invoices/model"
	invoiceService "tutorku_backend/internals/features/billing/invoices/service"
	"tutorku_backend/internals/features/billing/payments/dto"
	"tutorku_backend/internals/features/billing/payments/model"
	"tutorku_backend/internals/features/billing/payments/service"
	groupService "tutorku_backend/internals/features/groups/service"
	notifService "tutorku_backend/internals/features/notifications/service"
	helper "tutorku_backend/internals/helpers"
)

type PaymentHandler struct {
	DB                *gorm.DB
	Svc               *invoiceService.InvoiceService
	MidtransServerKey string
}

func NewPaymentHandler(db *gorm.DB, settings configs.BillingSettings, serverKey string) *PaymentHandler {
	return &PaymentHandler{
		DB:                db,
		Svc:               invoiceService.NewInvoiceService(db, settings, notifService.NewEmitter(db)),
		MidtransServerKey: serverKey,
	}
}

// canPayInvoice: siswa tertagih, ortu terkaitnya, atau teacher
// pemilik invoice.
func (h *PaymentHandler) canPayInvoice(c *fiber.Ctx, inv *invoiceModel.Invoice, userID uuid.UUID) (bool, error) {
	if userID == inv.InvoiceStudentID || userID == inv.InvoiceTeacherID {
		return true, nil
	}
	parents, err := groupService.ListStudentParents(c.Context(), h.DB, inv.InvoiceGroupID, inv.InvoiceStudentID)
	if err != nil {
		return false, err
	}
	for _, p := range parents {
		if p == userID {
			return true, nil
		}
	}
	return false, nil
}

// -----------------------------------------
// Checkout (POST /invoices/:id/checkout)
// Buka payment pending + minta Snap token ke Midtrans.
// -----------------------------------------
func (h *PaymentHandler) Checkout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var inv invoiceModel.Invoice
	if err := h.DB.First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "invoice tidak ditemukan")
	}
	ok, err := h.canPayInvoice(c, &inv, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "tidak berhak membayar invoice ini")
	}

	locked, p, err := h.Svc.OpenGatewayPayment(c.Context(), invoiceID, "midtrans")
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	token, redirectURL, err := service.GenerateSnapToken(*locked, *p)
	if err != nil {
		// gagal dapat token: tutup payment pending supaya tidak nyangkut
		_ = h.Svc.FailGatewayPayment(c.Context(), *p.PaymentProviderOrderID,
			model.PaymentStatusFailed, "snap token gagal: "+err.Error(), nil)
		return helper.JsonError(c, fiber.StatusBadGateway, "gagal membuat transaksi gateway")
	}

	return helper.JsonCreated(c, "checkout dibuat", dto.CheckoutResponse{
		PaymentID:   p.PaymentID,
		OrderID:     *p.PaymentProviderOrderID,
		AmountIDR:   p.PaymentAmountIDR,
		SnapToken:   token,
		RedirectURL: redirectURL,
	})
}

// -----------------------------------------
// ListByInvoice (GET /invoices/:id/payments)
// -----------------------------------------
func (h *PaymentHandler) ListByInvoice(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var inv invoiceModel.Invoice
	if err := h.DB.First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "invoice tidak ditemukan")
	}
	ok, err := h.canPayInvoice(c, &inv, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "tidak berhak melihat pembayaran invoice ini")
	}

	var list []model.Payment
	if err := h.DB.
		Where("payment_invoice_id = ?", invoiceID).
		Order("payment_requested_at ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToPaymentResponses(list))
}

// -----------------------------------------
// MidtransWebhook (POST /payments/notification) — tanpa auth JWT,
// diverifikasi lewat signature. Balas 200 untuk kasus yang diabaikan
// supaya Midtrans tidak retry terus.
// -----------------------------------------
func (h *PaymentHandler) MidtransWebhook(c *fiber.Ctx) error {
	var notif dto.MidtransNotifRequest
	if err := c.BodyParser(&notif); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload: "+err.Error())
	}

	if !service.VerifySignature(notif.OrderID, notif.StatusCode, notif.GrossAmount,
		notif.SignatureKey, h.MidtransServerKey) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid signature")
	}

	// fiber memakai ulang buffer body setelah handler selesai — copy dulu
	payload := datatypes.JSON(append([]byte(nil), c.Body()...))
	mapped := service.MapMidtransStatus(notif.TransactionStatus, notif.FraudStatus)

	switch mapped {
	case model.PaymentStatusSuccess:
		var txnID, masked *string
		if notif.TransactionID != "" {
			txnID = &notif.TransactionID
		}
		if notif.MaskedCard != "" {
			masked = &notif.MaskedCard
		}
		if _, err := h.Svc.ConfirmGatewayPayment(c.Context(), notif.OrderID, txnID, masked, payload); err != nil {
			if fe, okErr := err.(*fiber.Error); okErr && fe.Code == fiber.StatusNotFound {
				log.Printf("[WARN] webhook midtrans: payment tidak ditemukan order_id=%s", notif.OrderID)
				return helper.JsonOK(c, "ignored", fiber.Map{"reason": "payment not found"})
			}
			return helper.JsonFromError(c, err)
		}

	case model.PaymentStatusFailed, model.PaymentStatusCanceled:
		reason := notif.TransactionStatus
		if notif.FraudStatus != "" {
			reason += "/" + notif.FraudStatus
		}
		if err := h.Svc.FailGatewayPayment(c.Context(), notif.OrderID, mapped, reason, payload); err != nil {
			if fe, okErr := err.(*fiber.Error); okErr && fe.Code == fiber.StatusNotFound {
				log.Printf("[WARN] webhook midtrans: payment tidak ditemukan order_id=%s", notif.OrderID)
				return helper.JsonOK(c, "ignored", fiber.Map{"reason": "payment not found"})
			}
			return helper.JsonFromError(c, err)
		}

	default:
		// pending / refund: belum ada aksi di sisi invoice
		log.Printf("[INFO] webhook midtrans: status %s diabaikan order_id=%s",
			notif.TransactionStatus, notif.OrderID)
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"order_id":           notif.OrderID,
		"transaction_status": notif.TransactionStatus,
		"payment_status":     mapped,
	})
}
