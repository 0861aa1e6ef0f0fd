// file: internals/features/attendance/controller/attendance_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tutorku_backend/internals/features/attendance/dto"
	"tutorku_backend/internals/features/attendance/model"
	helper "tutorku_backend/internals/helpers"
)

type AttendanceHandler struct {
	DB *gorm.DB
}

// -----------------------------------------
// ListByLesson (GET /lessons/:id/attendances)
// -----------------------------------------
func (h *AttendanceHandler) ListByLesson(c *fiber.Ctx) error {
	lessonID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var list []model.LessonAttendance
	if err := h.DB.
		Where("attendance_lesson_id = ?", lessonID).
		Order("attendance_created_at ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToAttendanceResponses(list))
}

// -----------------------------------------
// Record (POST /lessons/:id/attendances) — upsert per (lesson, student)
// Hanya owner grup; absensi boleh dikoreksi selama belum ditagih.
// -----------------------------------------
func (h *AttendanceHandler) Record(c *fiber.Ctx) error {
	lessonHandler := &LessonHandler{DB: h.DB}

	lessonID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.AttendanceRecordDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	status := model.AttendanceStatus(in.Status)
	if !status.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "status tidak dikenal")
	}

	var lesson model.Lesson
	if err := h.DB.First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "lesson tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if err := lessonHandler.mustOwnGroup(c, lesson.LessonGroupID); err != nil {
		return helper.JsonFromError(c, err)
	}

	m := model.LessonAttendance{
		AttendanceLessonID:  lessonID,
		AttendanceStudentID: in.StudentID,
		AttendanceStatus:    status,
		AttendanceNote:      in.Note,
	}
	// ON CONFLICT (lesson, student) → update status & note
	if err := h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "attendance_lesson_id"},
			{Name: "attendance_student_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"attendance_status", "attendance_note", "attendance_updated_at",
		}),
	}).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "attendance recorded", dto.ToAttendanceResponse(m))
}
