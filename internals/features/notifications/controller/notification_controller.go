// file: internals/features/notifications/controller/notification_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/features/notifications/model"
	helper "tutorku_backend/internals/helpers"
)

type NotificationHandler struct {
	DB *gorm.DB
}

// -----------------------------------------
// ListMine (GET /notifications) — notifikasi untuk user login
// -----------------------------------------
func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.Notification{}).
		Where("? = ANY(notification_recipients)", userID.String())
	if v := c.Query("type"); v != "" {
		q = q.Where("notification_type = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.Notification
	if err := q.Order("notification_created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", list, helper.BuildMeta(total, p))
}

// -----------------------------------------
// MarkRead (POST /notifications/:id/read)
// -----------------------------------------
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var n model.Notification
	if err := h.DB.
		Where("notification_id = ? AND ? = ANY(notification_recipients)", id, userID.String()).
		First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "notifikasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	n.NotificationReadAt = &now
	if err := h.DB.Save(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "marked as read", n)
}
