// file: internals/features/billing/invoices/service/settlement_test.go
package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorku_backend/internals/configs"
	attendanceModel "tutorku_backend/internals/features/attendance/model"
	attendanceService "tutorku_backend/internals/features/attendance/service"
)

func row(status *attendanceModel.AttendanceStatus) attendanceService.LessonAttendanceRow {
	return attendanceService.LessonAttendanceRow{
		LessonID: uuid.New(),
		Status:   status,
	}
}

func statusPtr(s attendanceModel.AttendanceStatus) *attendanceModel.AttendanceStatus {
	return &s
}

func TestCountAttendance(t *testing.T) {
	present := statusPtr(attendanceModel.AttendanceStatusPresent)
	late := statusPtr(attendanceModel.AttendanceStatusLate)
	early := statusPtr(attendanceModel.AttendanceStatusEarlyLeave)
	absent := statusPtr(attendanceModel.AttendanceStatusAbsent)

	cases := []struct {
		name         string
		rows         []attendanceService.LessonAttendanceRow
		wantAttended int
		wantAbsent   int
	}{
		{
			name:         "tanpa baris sama sekali",
			rows:         nil,
			wantAttended: 0,
			wantAbsent:   0,
		},
		{
			name:         "lesson tanpa record absensi tidak dihitung",
			rows:         []attendanceService.LessonAttendanceRow{row(nil), row(nil)},
			wantAttended: 0,
			wantAbsent:   0,
		},
		{
			name: "present, late, early_leave semua ditagih",
			rows: []attendanceService.LessonAttendanceRow{
				row(present), row(late), row(early),
			},
			wantAttended: 3,
			wantAbsent:   0,
		},
		{
			name: "absent dihitung terpisah",
			rows: []attendanceService.LessonAttendanceRow{
				row(present), row(absent), row(absent),
			},
			wantAttended: 1,
			wantAbsent:   2,
		},
		{
			name: "campuran lengkap",
			rows: []attendanceService.LessonAttendanceRow{
				row(present), row(late), row(nil), row(absent), row(early), row(nil),
			},
			wantAttended: 3,
			wantAbsent:   1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attended, absent := CountAttendance(tc.rows)
			assert.Equal(t, tc.wantAttended, attended, "attended")
			assert.Equal(t, tc.wantAbsent, absent, "absent")
		})
	}
}

func TestCountAttendance_Idempotent(t *testing.T) {
	rows := []attendanceService.LessonAttendanceRow{
		row(statusPtr(attendanceModel.AttendanceStatusPresent)),
		row(statusPtr(attendanceModel.AttendanceStatusAbsent)),
		row(nil),
	}
	a1, b1 := CountAttendance(rows)
	a2, b2 := CountAttendance(rows)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}

func TestValidateMinimumAmount(t *testing.T) {
	settings := configs.BillingSettings{MinInvoiceAmountIDR: 10000}

	t.Run("di bawah minimum ditolak", func(t *testing.T) {
		err := ValidateMinimumAmount(settings, 9999)
		require.Error(t, err)
		fe, ok := err.(*fiber.Error)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	})

	t.Run("tepat di minimum lolos", func(t *testing.T) {
		assert.NoError(t, ValidateMinimumAmount(settings, 10000))
	})

	t.Run("di atas minimum lolos", func(t *testing.T) {
		assert.NoError(t, ValidateMinimumAmount(settings, 150000))
	})

	t.Run("nol ditolak", func(t *testing.T) {
		assert.Error(t, ValidateMinimumAmount(settings, 0))
	})
}

func TestMonthPeriod(t *testing.T) {
	cases := []struct {
		name      string
		year      int
		month     time.Month
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "maret 31 hari",
			year:      2025,
			month:     time.March,
			wantStart: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "april 30 hari",
			year:      2025,
			month:     time.April,
			wantStart: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "februari tahun biasa",
			year:      2025,
			month:     time.February,
			wantStart: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "februari tahun kabisat",
			year:      2024,
			month:     time.February,
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := MonthPeriod(tc.year, tc.month)
			assert.True(t, start.Equal(tc.wantStart), "start %v", start)
			assert.True(t, end.Equal(tc.wantEnd), "end %v", end)
			assert.True(t, ValidMonthPeriod(start, end))
		})
	}
}

func TestValidMonthPeriod_Rejects(t *testing.T) {
	// mulai bukan tanggal 1
	assert.False(t, ValidMonthPeriod(
		time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	))
	// akhir bukan hari terakhir bulan
	assert.False(t, ValidMonthPeriod(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC),
	))
	// lintas bulan
	assert.False(t, ValidMonthPeriod(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
	))
}
