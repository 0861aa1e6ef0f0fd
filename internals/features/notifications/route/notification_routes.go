// file: internals/features/notifications/route/notification_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorku_backend/internals/features/notifications/controller"
)

func NotificationRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.NotificationHandler{DB: db}

	n := api.Group("/notifications")
	n.Get("/", h.ListMine)
	n.Post("/:id/read", h.MarkRead)
}
