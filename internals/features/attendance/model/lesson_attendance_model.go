// file: internals/features/attendance/model/lesson_attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status kehadiran per siswa per pertemuan
// =========================================================

type AttendanceStatus string

const (
	AttendanceStatusPresent    AttendanceStatus = "present"
	AttendanceStatusLate       AttendanceStatus = "late"
	AttendanceStatusEarlyLeave AttendanceStatus = "early_leave"
	AttendanceStatusAbsent     AttendanceStatus = "absent"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusLate, AttendanceStatusEarlyLeave, AttendanceStatusAbsent:
		return true
	}
	return false
}

// Countable: kehadiran apapun selain absent dihitung sebagai
// sesi billable (hadir/telat/pulang cepat tetap ditagih).
func (s AttendanceStatus) Countable() bool {
	return s.Valid() && s != AttendanceStatusAbsent
}

// =========================================================
// MODEL
// =========================================================

type LessonAttendance struct {
	// PK
	AttendanceID uuid.UUID `gorm:"column:attendance_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`

	// FK → lessons(lesson_id); satu record per (lesson, student)
	AttendanceLessonID  uuid.UUID `gorm:"column:attendance_lesson_id;type:uuid;not null;index;uniqueIndex:uniq_lesson_student,priority:1" json:"attendance_lesson_id"`
	AttendanceStudentID uuid.UUID `gorm:"column:attendance_student_id;type:uuid;not null;index;uniqueIndex:uniq_lesson_student,priority:2" json:"attendance_student_id"`

	AttendanceStatus AttendanceStatus `gorm:"column:attendance_status;type:varchar(12);not null" json:"attendance_status"`
	AttendanceNote   *string          `gorm:"column:attendance_note;type:text" json:"attendance_note,omitempty"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;not null;default:now()" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;not null;default:now()" json:"attendance_updated_at"`
}

func (LessonAttendance) TableName() string {
	return "lesson_attendances"
}

func (m *LessonAttendance) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.AttendanceCreatedAt.IsZero() {
		m.AttendanceCreatedAt = now
	}
	m.AttendanceUpdatedAt = now
	return nil
}

func (m *LessonAttendance) BeforeUpdate(tx *gorm.DB) (err error) {
	m.AttendanceUpdatedAt = time.Now()
	return nil
}
