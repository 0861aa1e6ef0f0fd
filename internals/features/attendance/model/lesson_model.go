// file: internals/features/attendance/model/lesson_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status jadwal pertemuan
// =========================================================

type LessonStatus string

const (
	LessonStatusScheduled LessonStatus = "scheduled"
	LessonStatusCompleted LessonStatus = "completed"
	LessonStatusCanceled  LessonStatus = "canceled"
)

func (s LessonStatus) Valid() bool {
	switch s {
	case LessonStatusScheduled, LessonStatusCompleted, LessonStatusCanceled:
		return true
	}
	return false
}

// =========================================================
// MODEL
// =========================================================

type Lesson struct {
	// PK
	LessonID uuid.UUID `gorm:"column:lesson_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"lesson_id"`

	// FK → study_groups(study_group_id)
	LessonGroupID uuid.UUID `gorm:"column:lesson_group_id;type:uuid;not null;index:ix_lesson_group" json:"lesson_group_id"`

	LessonTitle string `gorm:"column:lesson_title;type:varchar(160);not null" json:"lesson_title"`

	// Billing menghitung pertemuan berdasarkan start time-nya
	LessonStartAt time.Time `gorm:"column:lesson_start_at;not null;index:ix_lesson_start" json:"lesson_start_at"`
	LessonEndAt   time.Time `gorm:"column:lesson_end_at;not null" json:"lesson_end_at"`

	LessonStatus LessonStatus `gorm:"column:lesson_status;type:varchar(12);not null;default:'scheduled';index:ix_lesson_status" json:"lesson_status"`

	LessonCreatedAt time.Time      `gorm:"column:lesson_created_at;not null;default:now()" json:"lesson_created_at"`
	LessonUpdatedAt time.Time      `gorm:"column:lesson_updated_at;not null;default:now()" json:"lesson_updated_at"`
	LessonDeletedAt gorm.DeletedAt `gorm:"column:lesson_deleted_at;index" json:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func (m *Lesson) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.LessonCreatedAt.IsZero() {
		m.LessonCreatedAt = now
	}
	m.LessonUpdatedAt = now
	return nil
}

func (m *Lesson) BeforeUpdate(tx *gorm.DB) (err error) {
	m.LessonUpdatedAt = time.Now()
	return nil
}
