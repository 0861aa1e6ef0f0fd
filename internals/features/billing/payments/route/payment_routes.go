// file: internals/features/billing/payments/route/payment_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	"tutorku_backend/internals/features/billing/payments/controller"
	"tutorku_backend/internals/middlewares"
)

func PaymentRoutes(api fiber.Router, db *gorm.DB, settings configs.BillingSettings) {
	h := controller.NewPaymentHandler(db, settings, configs.MidtransServerKey)

	billing := api.Group("/billing")
	writeGuard := middlewares.BillingWriteRateLimiter()

	// checkout & riwayat payment per invoice — siswa/ortu/teacher
	billing.Post("/invoices/:id/checkout", writeGuard, h.Checkout)
	billing.Get("/invoices/:id/payments/history", h.ListByInvoice)

	// webhook Midtrans — di-skip AuthMiddleware, diverifikasi signature
	billing.Post("/payments/notification", h.MidtransWebhook)
}
