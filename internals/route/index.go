// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	attendanceRoute "tutorku_backend/internals/features/attendance/route"
	invoiceRoute "tutorku_backend/internals/features/billing/invoices/route"
	paymentRoute "tutorku_backend/internals/features/billing/payments/route"
	groupRoute "tutorku_backend/internals/features/groups/route"
	notificationRoute "tutorku_backend/internals/features/notifications/route"
	authMiddleware "tutorku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	settings := configs.LoadBillingSettings()

	// semua endpoint /api butuh JWT; webhook gateway di-skip di dalam
	// AuthMiddleware (diverifikasi lewat signature Midtrans)
	api := app.Group("/api", authMiddleware.AuthMiddleware())

	log.Println("[INFO] Mounting Group routes...")
	groupRoute.GroupRoutes(api, db)

	log.Println("[INFO] Mounting Attendance routes...")
	attendanceRoute.AttendanceRoutes(api, db)

	log.Println("[INFO] Mounting Billing routes...")
	invoiceRoute.InvoiceRoutes(api, db, settings)
	paymentRoute.PaymentRoutes(api, db, settings)

	log.Println("[INFO] Mounting Notification routes...")
	notificationRoute.NotificationRoutes(api, db)
}
