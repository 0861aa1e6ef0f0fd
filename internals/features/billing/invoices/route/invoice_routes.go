// file: internals/features/billing/invoices/route/invoice_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	"tutorku_backend/internals/constants"
	"tutorku_backend/internals/features/billing/invoices/controller"
	"tutorku_backend/internals/middlewares"
	authMiddleware "tutorku_backend/internals/middlewares/auth"
)

func InvoiceRoutes(api fiber.Router, db *gorm.DB, settings configs.BillingSettings) {
	h := controller.NewInvoiceHandler(db, settings)

	billing := api.Group("/billing")
	writeGuard := middlewares.BillingWriteRateLimiter()

	teacherOnly := authMiddleware.OnlyRolesSlice(
		constants.RoleErrorTeacher("kelola tagihan"),
		constants.TeacherAndAbove,
	)
	adminOnly := authMiddleware.OnlyRolesSlice(
		constants.RoleErrorAdmin("sweep jatuh tempo"),
		constants.AdminOnly,
	)

	// settlement preview — baca saja
	billing.Get("/settlements/preview", teacherOnly, h.PreviewSettlement)

	inv := billing.Group("/invoices")
	inv.Get("/", teacherOnly, h.List)
	inv.Post("/", teacherOnly, writeGuard, h.Create)
	inv.Get("/:id", teacherOnly, h.GetByID)
	inv.Post("/:id/send", teacherOnly, writeGuard, h.Send)
	inv.Post("/:id/cancel", teacherOnly, writeGuard, h.Cancel)
	inv.Post("/:id/payments", teacherOnly, writeGuard, h.ApplyPayment)
	inv.Get("/:id/transactions", teacherOnly, h.ListTransactions)

	// sweep overdue dipicu manual dari sisi admin
	inv.Post("/overdue/sweep", adminOnly, h.MarkOverdue)
}
