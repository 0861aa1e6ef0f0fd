// file: internals/features/groups/controller/study_group_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/features/groups/dto"
	"tutorku_backend/internals/features/groups/model"
	"tutorku_backend/internals/features/groups/service"
	helper "tutorku_backend/internals/helpers"
)

var validate = validator.New()

type StudyGroupHandler struct {
	DB *gorm.DB
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// -----------------------------------------
// List (GET /groups) — grup milik teacher login
// -----------------------------------------
func (h *StudyGroupHandler) List(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.StudyGroup{}).
		Where("study_group_owner_teacher_id = ?", teacherID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.StudyGroup
	if err := q.
		Order("study_group_created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToStudyGroupResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Create (POST /groups)
// -----------------------------------------
func (h *StudyGroupHandler) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var in dto.StudyGroupCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	code, err := service.GenerateInviteCode()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal generate invite code")
	}

	m := in.ToModel(teacherID, code)
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "created", dto.ToStudyGroupResponse(m))
}

// -----------------------------------------
// GetByID (GET /groups/:id)
// -----------------------------------------
func (h *StudyGroupHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m model.StudyGroup
	if err := h.DB.First(&m, "study_group_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "grup tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToStudyGroupResponse(m))
}

// -----------------------------------------
// Update (PATCH /groups/:id) — hanya owner
// -----------------------------------------
func (h *StudyGroupHandler) Update(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.StudyGroupUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var m model.StudyGroup
	if err := h.DB.First(&m, "study_group_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "grup tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if m.StudyGroupOwnerTeacherID != teacherID {
		return helper.JsonError(c, fiber.StatusForbidden, "bukan pemilik grup")
	}

	dto.ApplyStudyGroupUpdate(&m, in)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "updated", dto.ToStudyGroupResponse(m))
}

// -----------------------------------------
// Delete (DELETE /groups/:id) — soft delete, hanya owner
// -----------------------------------------
func (h *StudyGroupHandler) Delete(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var m model.StudyGroup
	if err := h.DB.First(&m, "study_group_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "grup tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if m.StudyGroupOwnerTeacherID != teacherID {
		return helper.JsonError(c, fiber.StatusForbidden, "bukan pemilik grup")
	}
	if err := h.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "deleted", dto.ToStudyGroupResponse(m))
}
