// file: internals/features/attendance/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"tutorku_backend/internals/features/attendance/model"
)

/* =========================================================
   REQUEST DTO
========================================================= */

type LessonCreateDTO struct {
	GroupID uuid.UUID `json:"group_id" validate:"required"`
	Title   string    `json:"title" validate:"required,min=2,max=160"`
	StartAt time.Time `json:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at" validate:"required,gtfield=StartAt"`
}

type LessonStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed canceled"`
}

type AttendanceRecordDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present late early_leave absent"`
	Note      *string   `json:"note" validate:"omitempty,max=500"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type LessonResponse struct {
	LessonID  uuid.UUID `json:"lesson_id"`
	GroupID   uuid.UUID `json:"group_id"`
	Title     string    `json:"title"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type AttendanceResponse struct {
	AttendanceID uuid.UUID `json:"attendance_id"`
	LessonID     uuid.UUID `json:"lesson_id"`
	StudentID    uuid.UUID `json:"student_id"`
	Status       string    `json:"status"`
	Note         *string   `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

/* =========================================================
   CONVERTERS
========================================================= */

func (in LessonCreateDTO) ToModel() model.Lesson {
	return model.Lesson{
		LessonGroupID: in.GroupID,
		LessonTitle:   in.Title,
		LessonStartAt: in.StartAt,
		LessonEndAt:   in.EndAt,
		LessonStatus:  model.LessonStatusScheduled,
	}
}

func ToLessonResponse(m model.Lesson) LessonResponse {
	return LessonResponse{
		LessonID:  m.LessonID,
		GroupID:   m.LessonGroupID,
		Title:     m.LessonTitle,
		StartAt:   m.LessonStartAt,
		EndAt:     m.LessonEndAt,
		Status:    string(m.LessonStatus),
		CreatedAt: m.LessonCreatedAt,
	}
}

func ToLessonResponses(items []model.Lesson) []LessonResponse {
	out := make([]LessonResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToLessonResponse(it))
	}
	return out
}

func ToAttendanceResponse(m model.LessonAttendance) AttendanceResponse {
	return AttendanceResponse{
		AttendanceID: m.AttendanceID,
		LessonID:     m.AttendanceLessonID,
		StudentID:    m.AttendanceStudentID,
		Status:       string(m.AttendanceStatus),
		Note:         m.AttendanceNote,
		CreatedAt:    m.AttendanceCreatedAt,
	}
}

func ToAttendanceResponses(items []model.LessonAttendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToAttendanceResponse(it))
	}
	return out
}
