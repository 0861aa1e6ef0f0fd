// file: internals/features/attendance/model/lesson_attendance_model_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceStatus_Countable(t *testing.T) {
	// hadir/telat/pulang cepat semuanya billable
	assert.True(t, AttendanceStatusPresent.Countable())
	assert.True(t, AttendanceStatusLate.Countable())
	assert.True(t, AttendanceStatusEarlyLeave.Countable())

	assert.False(t, AttendanceStatusAbsent.Countable())
	assert.False(t, AttendanceStatus("sick").Countable())
}

func TestLessonStatus_Valid(t *testing.T) {
	assert.True(t, LessonStatusScheduled.Valid())
	assert.True(t, LessonStatusCompleted.Valid())
	assert.True(t, LessonStatusCanceled.Valid())
	assert.False(t, LessonStatus("done").Valid())
}
