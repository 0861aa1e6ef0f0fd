// file: internals/features/attendance/controller/lesson_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/features/attendance/dto"
	"tutorku_backend/internals/features/attendance/model"
	groupModel "tutorku_backend/internals/features/groups/model"
	helper "tutorku_backend/internals/helpers"
)

var validate = validator.New()

type LessonHandler struct {
	DB *gorm.DB
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// Ambil grup + pastikan caller adalah owner-nya.
func (h *LessonHandler) mustOwnGroup(c *fiber.Ctx, groupID uuid.UUID) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var g groupModel.StudyGroup
	if err := h.DB.First(&g, "study_group_id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "grup tidak ditemukan")
		}
		return err
	}
	if g.StudyGroupOwnerTeacherID != teacherID {
		return fiber.NewError(fiber.StatusForbidden, "bukan pemilik grup")
	}
	return nil
}

// -----------------------------------------
// List (GET /lessons?group_id=&date_from=&date_to=&status=)
// -----------------------------------------
func (h *LessonHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "start_at", "asc", helper.DefaultOpts)

	q := h.DB.Model(&model.Lesson{})
	if v := c.Query("group_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("lesson_group_id = ?", id)
		}
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("lesson_status = ?", v)
	}
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q = q.Where("lesson_start_at >= ?", t)
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			q = q.Where("lesson_start_at <= ?", t)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.Lesson
	if err := q.Order("lesson_start_at ASC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.ToLessonResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Create (POST /lessons) — hanya owner grup
// -----------------------------------------
func (h *LessonHandler) Create(c *fiber.Ctx) error {
	var in dto.LessonCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if err := h.mustOwnGroup(c, in.GroupID); err != nil {
		return helper.JsonFromError(c, err)
	}

	m := in.ToModel()
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "created", dto.ToLessonResponse(m))
}

// -----------------------------------------
// SetStatus (POST /lessons/:id/status) — scheduled|completed|canceled
// -----------------------------------------
func (h *LessonHandler) SetStatus(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.LessonStatusDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	status := model.LessonStatus(in.Status)
	if !status.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "status tidak dikenal")
	}

	var m model.Lesson
	if err := h.DB.First(&m, "lesson_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "lesson tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := h.mustOwnGroup(c, m.LessonGroupID); err != nil {
		return helper.JsonFromError(c, err)
	}

	m.LessonStatus = status
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "status updated", dto.ToLessonResponse(m))
}
