// file: internals/features/groups/controller/study_group_member_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tutorku_backend/internals/features/groups/dto"
	"tutorku_backend/internals/features/groups/model"
	helper "tutorku_backend/internals/helpers"
)

type StudyGroupMemberHandler struct {
	DB *gorm.DB
}

// -----------------------------------------
// ListMembers (GET /groups/:id/members)
// -----------------------------------------
func (h *StudyGroupMemberHandler) ListMembers(c *fiber.Ctx) error {
	groupID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	q := h.DB.Model(&model.StudyGroupMember{}).
		Where("study_group_member_group_id = ?", groupID)
	if v := strings.TrimSpace(c.Query("role")); v != "" {
		q = q.Where("study_group_member_role = ?", strings.ToLower(v))
	}

	var list []model.StudyGroupMember
	if err := q.Order("study_group_member_joined_at ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToStudyGroupMemberResponses(list))
}

// -----------------------------------------
// AddMember (POST /groups/:id/members) — hanya owner
// -----------------------------------------
func (h *StudyGroupMemberHandler) AddMember(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	groupID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.StudyGroupMemberAddDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	role := model.StudyGroupMemberRole(in.Role)
	if !role.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "role tidak dikenal")
	}
	// parent wajib menunjuk siswa yang diikuti
	if role == model.StudyGroupMemberRoleParent && in.StudentID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "parent wajib menyertakan student_id")
	}

	var g model.StudyGroup
	if err := h.DB.First(&g, "study_group_id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "grup tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if g.StudyGroupOwnerTeacherID != teacherID {
		return helper.JsonError(c, fiber.StatusForbidden, "bukan pemilik grup")
	}

	m := model.StudyGroupMember{
		StudyGroupMemberGroupID:   groupID,
		StudyGroupMemberUserID:    in.UserID,
		StudyGroupMemberRole:      role,
		StudyGroupMemberStudentID: in.StudentID,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		// unique (group_id, user_id) → sudah jadi anggota
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "user sudah menjadi anggota grup")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "member added", dto.ToStudyGroupMemberResponse(m))
}

// -----------------------------------------
// RemoveMember (DELETE /groups/:id/members/:member_id) — hanya owner
// -----------------------------------------
func (h *StudyGroupMemberHandler) RemoveMember(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	groupID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	memberID, err := parseUUIDParam(c, "member_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid member_id")
	}

	var g model.StudyGroup
	if err := h.DB.First(&g, "study_group_id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "grup tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if g.StudyGroupOwnerTeacherID != teacherID {
		return helper.JsonError(c, fiber.StatusForbidden, "bukan pemilik grup")
	}

	var m model.StudyGroupMember
	if err := h.DB.First(&m, "study_group_member_id = ? AND study_group_member_group_id = ?", memberID, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "anggota tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "member removed", dto.ToStudyGroupMemberResponse(m))
}
