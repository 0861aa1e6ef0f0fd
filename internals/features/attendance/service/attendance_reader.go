// file: internals/features/attendance/service/attendance_reader.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/features/attendance/model"
)

/* =========================================================
   Reader — kontrak read-only yang dikonsumsi settlement.
   Billing tidak pernah menulis ke tabel attendance.
========================================================= */

// LessonAttendanceRow adalah satu pertemuan completed dalam periode,
// dengan status kehadiran siswa. Status nil = belum diabsen
// (tidak dihitung hadir maupun absen).
type LessonAttendanceRow struct {
	LessonID uuid.UUID
	Status   *model.AttendanceStatus
}

// ListCompletedLessonAttendance mengembalikan seluruh pertemuan
// completed milik grup yang start time-nya jatuh dalam
// [periodStart, periodEnd] (inklusif), LEFT JOIN ke absensi siswa.
// Query murni, aman dipanggil berulang untuk preview.
func ListCompletedLessonAttendance(
	ctx context.Context,
	db *gorm.DB,
	groupID, studentID uuid.UUID,
	periodStart, periodEnd time.Time,
) ([]LessonAttendanceRow, error) {
	var rows []struct {
		LessonID uuid.UUID `gorm:"column:lesson_id"`
		Status   *string   `gorm:"column:attendance_status"`
	}

	// batas akhir inklusif: geser ke awal hari berikutnya
	endExclusive := periodEnd.AddDate(0, 0, 1)

	if err := db.WithContext(ctx).Raw(`
		SELECT l.lesson_id, a.attendance_status
		FROM lessons l
		LEFT JOIN lesson_attendances a
		       ON a.attendance_lesson_id = l.lesson_id
		      AND a.attendance_student_id = ?
		WHERE l.lesson_group_id = ?
		  AND l.lesson_status = 'completed'
		  AND l.lesson_deleted_at IS NULL
		  AND l.lesson_start_at >= ?
		  AND l.lesson_start_at < ?
		ORDER BY l.lesson_start_at ASC
	`, studentID, groupID, periodStart, endExclusive).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]LessonAttendanceRow, 0, len(rows))
	for _, r := range rows {
		var st *model.AttendanceStatus
		if r.Status != nil {
			s := model.AttendanceStatus(*r.Status)
			st = &s
		}
		out = append(out, LessonAttendanceRow{LessonID: r.LessonID, Status: st})
	}
	return out, nil
}
